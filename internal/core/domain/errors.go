package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrUnauthorized       = errors.New("session rejected by server")
	ErrUserExists         = errors.New("user already exists")
	ErrNoToken            = errors.New("no stored token")
)

var (
	ErrMortgageNotFound = errors.New("mortgage not found")
	ErrMissingID        = errors.New("mortgage has no identifier")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidChoice    = errors.New("value not among the allowed choices")
	ErrFormNotReady     = errors.New("form is not ready to submit")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrDeleteInProgress = errors.New("delete already in progress")
	ErrOverlayClosed    = errors.New("edit overlay is closed")
)
