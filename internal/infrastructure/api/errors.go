package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Unwrap maps status codes to domain errors so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrMortgageNotFound
	case http.StatusConflict:
		return domain.ErrUserExists
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
}

// parseError reads {"detail": ...} or {"error": ...}. A detail that is not a
// string (validation lists) is kept as raw JSON.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		e.Message = strings.TrimSpace(string(body))
		return e
	}
	switch {
	case len(eb.Detail) > 0:
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			e.Message = s
		} else {
			e.Message = string(eb.Detail)
		}
	case eb.Error != "":
		e.Message = eb.Error
	}
	return e
}

func outcome(status int) string {
	switch {
	case status < 300:
		return "ok"
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status < 500:
		return "client_error"
	default:
		return "server_error"
	}
}
