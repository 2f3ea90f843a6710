package ports

import (
	"context"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

// MortgageAPI is the record side of the backend. Every call is authenticated
// with the given bearer token and scoped to its owner.
type MortgageAPI interface {
	List(ctx context.Context, token string) ([]domain.Mortgage, error)
	Create(ctx context.Context, token string, payload domain.MortgagePayload) (*domain.Mortgage, error)
	Update(ctx context.Context, token string, id domain.MortgageID, payload domain.MortgagePayload) (*domain.Mortgage, error)
	Delete(ctx context.Context, token string, id domain.MortgageID) error
}
