package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

const (
	keyPrefix   = "mortgage:session:"
	pingTimeout = 5 * time.Second
)

// TokenStore keeps the bearer token in Redis so several terminals on one
// host share a session.
// Key format: mortgage:session:<key>
type TokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Options selects the server and the session slot. A zero TTL keeps the
// token until cleared; the backend's own expiry still applies.
type Options struct {
	Addr string
	DB   int
	Key  string
	TTL  time.Duration
}

// Open dials Redis and returns a store only once the server answers a ping.
func Open(ctx context.Context, opts Options) (*TokenStore, error) {
	if opts.Key == "" {
		return nil, errors.New("redis token store: empty session key")
	}
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		DB:          opts.DB,
		DialTimeout: pingTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis token store %s: %w", opts.Addr, err)
	}
	return &TokenStore{client: client, key: keyPrefix + opts.Key, ttl: opts.TTL}, nil
}

// Close releases the connection pool.
func (s *TokenStore) Close() error {
	return s.client.Close()
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return v, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
