package devapi

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

const defaultTokenTTL = 2 * time.Hour

// AuthService implements registration and login against the Store.
type AuthService struct {
	store     *Store
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(store *Store, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Register(_ context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.addUser(username, string(hash))
}

func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	hash, ok := s.store.userHash(username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.generateToken(username)
}

// Exists reports whether username is registered. Tokens for deleted or
// unknown users are rejected on validate.
func (s *AuthService) Exists(_ context.Context, username string) bool {
	_, ok := s.store.userHash(username)
	return ok
}

func (s *AuthService) generateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
