package ports

import (
	"context"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

// AuthAPI is the token-issuing side of the backend.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	// Validate returns nil when the backend accepts token.
	Validate(ctx context.Context, token string) error
	Register(ctx context.Context, creds domain.Credentials) error
}
