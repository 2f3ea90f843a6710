package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewTokenStore(path)
	ctx := context.Background()

	if _, err := s.Load(ctx); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if err := s.Save(ctx, "abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != `{"token":"abc"}` {
		t.Fatalf("unexpected file body %s", raw)
	}

	tok, err := s.Load(ctx)
	if err != nil || tok != "abc" {
		t.Fatalf("Load = %q, %v", tok, err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestTokenStore_EmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	empty := filepath.Join(dir, "empty.json")
	_ = os.WriteFile(empty, []byte(`{"token":""}`), 0o600)
	if _, err := NewTokenStore(empty).Load(ctx); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("empty token should read as absent, got %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	_ = os.WriteFile(corrupt, []byte(`not json`), 0o600)
	_, err := NewTokenStore(corrupt).Load(ctx)
	if err == nil || errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("corrupt file should surface a decode error, got %v", err)
	}
}
