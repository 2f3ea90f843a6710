package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub backend
// ---------------------------------------------------------------------------

type stubMortgageAPI struct {
	mu sync.Mutex

	listFn   func(ctx context.Context, token string) ([]domain.Mortgage, error)
	createFn func(ctx context.Context, token string, p domain.MortgagePayload) (*domain.Mortgage, error)
	updateFn func(ctx context.Context, token string, id domain.MortgageID, p domain.MortgagePayload) (*domain.Mortgage, error)
	deleteFn func(ctx context.Context, token string, id domain.MortgageID) error

	listCalls   int
	createCalls []domain.MortgagePayload
	updateCalls []domain.MortgagePayload
	deleteCalls []domain.MortgageID
	tokens      []string
}

func (s *stubMortgageAPI) List(ctx context.Context, token string) ([]domain.Mortgage, error) {
	s.mu.Lock()
	s.listCalls++
	s.tokens = append(s.tokens, token)
	fn := s.listFn
	s.mu.Unlock()
	if fn == nil {
		return []domain.Mortgage{}, nil
	}
	return fn(ctx, token)
}

func (s *stubMortgageAPI) Create(ctx context.Context, token string, p domain.MortgagePayload) (*domain.Mortgage, error) {
	s.mu.Lock()
	s.createCalls = append(s.createCalls, p)
	s.tokens = append(s.tokens, token)
	fn := s.createFn
	s.mu.Unlock()
	if fn == nil {
		return &domain.Mortgage{ID: "1", CreditScore: p.CreditScore}, nil
	}
	return fn(ctx, token, p)
}

func (s *stubMortgageAPI) Update(ctx context.Context, token string, id domain.MortgageID, p domain.MortgagePayload) (*domain.Mortgage, error) {
	s.mu.Lock()
	s.updateCalls = append(s.updateCalls, p)
	s.tokens = append(s.tokens, token)
	fn := s.updateFn
	s.mu.Unlock()
	if fn == nil {
		return &domain.Mortgage{ID: id, CreditScore: p.CreditScore}, nil
	}
	return fn(ctx, token, id, p)
}

func (s *stubMortgageAPI) Delete(ctx context.Context, token string, id domain.MortgageID) error {
	s.mu.Lock()
	s.deleteCalls = append(s.deleteCalls, id)
	s.tokens = append(s.tokens, token)
	fn := s.deleteFn
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, token, id)
}

func (s *stubMortgageAPI) counts() (list, create, update, del int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, len(s.createCalls), len(s.updateCalls), len(s.deleteCalls)
}

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (string, error)
	validateFn func(ctx context.Context, token string) error
	registerFn func(ctx context.Context, creds domain.Credentials) error

	validateCalls int
	loginCalls    int
}

func (s *stubAuthAPI) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	s.loginCalls++
	if s.loginFn == nil {
		return "token-" + creds.Username, nil
	}
	return s.loginFn(ctx, creds)
}

func (s *stubAuthAPI) Validate(ctx context.Context, token string) error {
	s.validateCalls++
	if s.validateFn == nil {
		return nil
	}
	return s.validateFn(ctx, token)
}

func (s *stubAuthAPI) Register(ctx context.Context, creds domain.Credentials) error {
	if s.registerFn == nil {
		return nil
	}
	return s.registerFn(ctx, creds)
}

type memTokenStore struct {
	mu    sync.Mutex
	token string
	saves int
}

func (m *memTokenStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", domain.ErrNoToken
	}
	return m.token, nil
}

func (m *memTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.saves++
	return nil
}

func (m *memTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memTokenStore) get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// loggedInSession returns a session already authenticated with token "tok".
func loggedInSession() (*SessionService, *memTokenStore) {
	store := &memTokenStore{token: "tok"}
	s := NewSessionService(&stubAuthAPI{}, store, discardLogger)
	if _, err := s.Bootstrap(context.Background()); err != nil {
		panic(err)
	}
	return s, store
}

func validEntries() map[domain.Field]string {
	return map[domain.Field]string{
		domain.FieldCreditScore:   "750",
		domain.FieldLoanAmount:    "2000000",
		domain.FieldPropertyValue: "3000000",
		domain.FieldAnnualIncome:  "1200000",
		domain.FieldDebtAmount:    "50000",
		domain.FieldLoanType:      "fixed",
		domain.FieldPropertyType:  "condo",
	}
}

func fill(f *FormController, entries map[domain.Field]string) error {
	for _, field := range domain.Fields {
		v, ok := entries[field]
		if !ok {
			continue
		}
		if err := f.SetField(string(field), v); err != nil {
			return err
		}
	}
	return nil
}
