package devapi

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

type record struct {
	owner   string
	payload domain.MortgagePayload
}

// Store keeps users and mortgages in memory. Mortgages are scoped to the
// user that created them; a foreign id behaves like a missing one.
type Store struct {
	rate Rater

	mu        sync.RWMutex
	users     map[string]string // username -> bcrypt hash
	mortgages map[int]record
	nextID    int
}

func NewStore(rate Rater) *Store {
	if rate == nil {
		rate = DefaultRater
	}
	return &Store{
		rate:      rate,
		users:     make(map[string]string),
		mortgages: make(map[int]record),
		nextID:    1,
	}
}

func (s *Store) addUser(username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return domain.ErrUserExists
	}
	s.users[username] = hash
	return nil
}

func (s *Store) userHash(username string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.users[username]
	return h, ok
}

func (s *Store) List(_ context.Context, owner string) ([]domain.Mortgage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.mortgages))
	for id, r := range s.mortgages {
		if r.owner == owner {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]domain.Mortgage, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.view(id, s.mortgages[id].payload))
	}
	return out, nil
}

func (s *Store) Create(_ context.Context, owner string, p domain.MortgagePayload) (*domain.Mortgage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	p.ID = ""
	s.mortgages[id] = record{owner: owner, payload: p}
	m := s.view(id, p)
	return &m, nil
}

func (s *Store) Update(_ context.Context, owner string, id int, p domain.MortgagePayload) (*domain.Mortgage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.mortgages[id]
	if !ok || r.owner != owner {
		return nil, domain.ErrMortgageNotFound
	}
	p.ID = ""
	r.payload = p
	s.mortgages[id] = r
	m := s.view(id, p)
	return &m, nil
}

func (s *Store) Delete(_ context.Context, owner string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.mortgages[id]
	if !ok || r.owner != owner {
		return domain.ErrMortgageNotFound
	}
	delete(s.mortgages, id)
	return nil
}

func (s *Store) view(id int, p domain.MortgagePayload) domain.Mortgage {
	return domain.Mortgage{
		ID:            domain.MortgageID(strconv.Itoa(id)),
		CreditScore:   p.CreditScore,
		LoanAmount:    p.LoanAmount,
		PropertyValue: p.PropertyValue,
		AnnualIncome:  p.AnnualIncome,
		DebtAmount:    p.DebtAmount,
		LoanType:      p.LoanType,
		PropertyType:  p.PropertyType,
		CreditRating:  s.rate(p),
	}
}
