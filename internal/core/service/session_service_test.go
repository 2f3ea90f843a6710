package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

func TestSessionService_Bootstrap_NoToken(t *testing.T) {
	api := &stubAuthAPI{}
	s := NewSessionService(api, &memTokenStore{}, discardLogger)

	if s.State() != domain.AuthLoading {
		t.Fatalf("expected loading before bootstrap, got %s", s.State())
	}
	state, err := s.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if state != domain.AuthUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", state)
	}
	if api.validateCalls != 0 {
		t.Fatalf("expected no validate call without a token, got %d", api.validateCalls)
	}
}

func TestSessionService_Bootstrap_ValidToken(t *testing.T) {
	api := &stubAuthAPI{validateFn: func(_ context.Context, token string) error {
		if token != "stored" {
			t.Fatalf("validated %q, want stored token", token)
		}
		return nil
	}}
	s := NewSessionService(api, &memTokenStore{token: "stored"}, discardLogger)

	state, err := s.Bootstrap(context.Background())
	if err != nil || state != domain.AuthAuthenticated {
		t.Fatalf("Bootstrap = %s, %v", state, err)
	}
	tok, err := s.Token()
	if err != nil || tok != "stored" {
		t.Fatalf("Token = %q, %v", tok, err)
	}
}

func TestSessionService_Bootstrap_RejectedTokenIsCleared(t *testing.T) {
	api := &stubAuthAPI{validateFn: func(context.Context, string) error {
		return fmt.Errorf("validate: %w", domain.ErrUnauthorized)
	}}
	store := &memTokenStore{token: "expired"}
	s := NewSessionService(api, store, discardLogger)

	state, err := s.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("rejection should not be an error: %v", err)
	}
	if state != domain.AuthUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", state)
	}
	if store.get() != "" {
		t.Fatalf("expected token cleared, still %q", store.get())
	}
	if _, err := s.Token(); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("protected token should be unavailable, got %v", err)
	}
}

func TestSessionService_Bootstrap_NetworkErrorClearsToken(t *testing.T) {
	api := &stubAuthAPI{validateFn: func(context.Context, string) error {
		return errors.New("connection refused")
	}}
	store := &memTokenStore{token: "stored"}
	s := NewSessionService(api, store, discardLogger)

	state, _ := s.Bootstrap(context.Background())
	if state != domain.AuthUnauthenticated || store.get() != "" {
		t.Fatalf("state=%s token=%q, want unauthenticated and cleared", state, store.get())
	}
}

func TestSessionService_Bootstrap_RunsOnce(t *testing.T) {
	api := &stubAuthAPI{}
	s := NewSessionService(api, &memTokenStore{token: "stored"}, discardLogger)

	for i := 0; i < 3; i++ {
		if _, err := s.Bootstrap(context.Background()); err != nil {
			t.Fatalf("Bootstrap: %v", err)
		}
	}
	if api.validateCalls != 1 {
		t.Fatalf("expected one validate call, got %d", api.validateCalls)
	}
}

func TestSessionService_Login_Success(t *testing.T) {
	store := &memTokenStore{}
	s := NewSessionService(&stubAuthAPI{}, store, discardLogger)
	_, _ = s.Bootstrap(context.Background())

	if err := s.Login(context.Background(), domain.Credentials{Username: "asha", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated")
	}
	if store.get() != "token-asha" {
		t.Fatalf("stored token = %q", store.get())
	}
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	api := &stubAuthAPI{loginFn: func(context.Context, domain.Credentials) (string, error) {
		return "", domain.ErrInvalidCredentials
	}}
	store := &memTokenStore{}
	s := NewSessionService(api, store, discardLogger)
	_, _ = s.Bootstrap(context.Background())

	err := s.Login(context.Background(), domain.Credentials{Username: "asha", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("should remain unauthenticated")
	}
	if store.get() != "" || store.saves != 0 {
		t.Fatalf("no token should be stored, got %q (%d saves)", store.get(), store.saves)
	}
}

func TestSessionService_Login_EmptyFieldsSkipRequest(t *testing.T) {
	api := &stubAuthAPI{}
	s := NewSessionService(api, &memTokenStore{}, discardLogger)

	if err := s.Login(context.Background(), domain.Credentials{Username: " ", Password: "x"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if api.loginCalls != 0 {
		t.Fatalf("expected no login request, got %d", api.loginCalls)
	}
}

func TestSessionService_Logout_IsLocal(t *testing.T) {
	s, store := loggedInSession()

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Authenticated() || store.get() != "" {
		t.Fatalf("expected logged out and token cleared")
	}
}

func TestSessionService_Reject(t *testing.T) {
	s, store := loggedInSession()

	s.Reject(context.Background(), errors.New("boom"))
	if !s.Authenticated() {
		t.Fatalf("unrelated error must not end the session")
	}

	s.Reject(context.Background(), fmt.Errorf("list: %w", domain.ErrUnauthorized))
	if s.Authenticated() || store.get() != "" {
		t.Fatalf("unauthorized error must end the session")
	}
}

func TestSessionService_Register(t *testing.T) {
	var got domain.Credentials
	api := &stubAuthAPI{registerFn: func(_ context.Context, c domain.Credentials) error {
		got = c
		return nil
	}}
	s := NewSessionService(api, &memTokenStore{}, discardLogger)

	if err := s.Register(context.Background(), domain.Credentials{Username: "ravi", Password: "pw"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got.Username != "ravi" {
		t.Fatalf("unexpected register args: %+v", got)
	}
	if s.Authenticated() {
		t.Fatalf("register must not log in")
	}
}
