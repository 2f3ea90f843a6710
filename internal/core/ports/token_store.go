package ports

import "context"

// TokenStore persists the bearer credential between runs.
type TokenStore interface {
	// Load returns domain.ErrNoToken when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	// Clear removes the token; clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
