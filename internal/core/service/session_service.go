package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/ports"
)

// Credential is what authenticated operations need from the session: the
// bearer token, and a way to report that the server rejected it.
type Credential interface {
	Token() (string, error)
	Reject(ctx context.Context, err error)
}

// SessionService is the Auth Gate and the single owner of the bearer
// credential. It sets the token on login and clears it on logout or when the
// backend rejects it.
type SessionService struct {
	api   ports.AuthAPI
	store ports.TokenStore
	log   zerolog.Logger

	mu    sync.RWMutex
	token string
	state domain.AuthState

	bootOnce  sync.Once
	bootState domain.AuthState
	bootErr   error
}

func NewSessionService(api ports.AuthAPI, store ports.TokenStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		api:   api,
		store: store,
		log:   log,
		state: domain.AuthLoading,
	}
}

// Bootstrap validates the stored credential. It runs once per process; later
// calls return the first outcome. A failed validation is not an error: it
// clears the token and yields AuthUnauthenticated.
func (s *SessionService) Bootstrap(ctx context.Context) (domain.AuthState, error) {
	s.bootOnce.Do(func() {
		s.bootState, s.bootErr = s.bootstrap(ctx)
	})
	return s.bootState, s.bootErr
}

func (s *SessionService) bootstrap(ctx context.Context) (domain.AuthState, error) {
	token, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNoToken) || (err == nil && token == "") {
		s.setState("", domain.AuthUnauthenticated)
		return domain.AuthUnauthenticated, nil
	}
	if err != nil {
		s.setState("", domain.AuthUnauthenticated)
		return domain.AuthUnauthenticated, fmt.Errorf("bootstrap session: %w", err)
	}

	if err := s.api.Validate(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("stored session rejected, clearing token")
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to clear rejected token")
		}
		s.setState("", domain.AuthUnauthenticated)
		return domain.AuthUnauthenticated, nil
	}

	s.setState(token, domain.AuthAuthenticated)
	s.log.Info().Msg("stored session validated")
	return domain.AuthAuthenticated, nil
}

// Login exchanges credentials for a token and persists it. On any failure
// the session is cleared and left unauthenticated.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return domain.ErrInvalidCredentials
	}

	token, err := s.api.Login(ctx, creds)
	if err == nil && token == "" {
		err = domain.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Warn().Err(err).Str("username", creds.Username).Msg("login failed")
		s.clear(ctx)
		return fmt.Errorf("login: %w", err)
	}

	if err := s.store.Save(ctx, token); err != nil {
		s.clear(ctx)
		return fmt.Errorf("login: persist token: %w", err)
	}
	s.setState(token, domain.AuthAuthenticated)
	s.log.Info().Str("username", creds.Username).Msg("logged in")
	return nil
}

// Logout is local: the token is dropped without telling the server.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.state = domain.AuthUnauthenticated
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Msg("logged out")
	return nil
}

// Register creates an account. It does not log in.
func (s *SessionService) Register(ctx context.Context, creds domain.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return domain.ErrInvalidCredentials
	}
	if err := s.api.Register(ctx, creds); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("username", creds.Username).Msg("registered")
	return nil
}

func (s *SessionService) State() domain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) Authenticated() bool {
	return s.State() == domain.AuthAuthenticated
}

// Token returns the bearer token, or ErrUnauthenticated when there is none.
func (s *SessionService) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != domain.AuthAuthenticated || s.token == "" {
		return "", domain.ErrUnauthenticated
	}
	return s.token, nil
}

// Reject invalidates the session when err says the server refused the
// token. Other errors are ignored.
func (s *SessionService) Reject(ctx context.Context, err error) {
	if !errors.Is(err, domain.ErrUnauthorized) {
		return
	}
	s.log.Warn().Err(err).Msg("server rejected session, logging out")
	s.clear(ctx)
}

func (s *SessionService) clear(ctx context.Context) {
	s.setState("", domain.AuthUnauthenticated)
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear token")
	}
}

func (s *SessionService) setState(token string, state domain.AuthState) {
	s.mu.Lock()
	s.token = token
	s.state = state
	s.mu.Unlock()
}
