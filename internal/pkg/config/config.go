package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

type Config struct {
	Env             string `env:"ENV,              default=development"`
	LogLevel        string `env:"LOG_LEVEL,        default=info"`
	LogFile         string `env:"LOG_FILE"`
	LogPretty       bool   `env:"LOG_PRETTY,       default=false"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`

	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	DevAPI  DevAPIConfig
}

type APIConfig struct {
	URL     string        `env:"MORTGAGE_API_URL, default=http://127.0.0.1:8000"`
	Timeout time.Duration `env:"REQUEST_TIMEOUT,  default=10s"`
}

// SessionConfig selects where the bearer token lives between runs.
type SessionConfig struct {
	Store string `env:"SESSION_STORE, default=file"`
	File  string `env:"SESSION_FILE"`
	Key   string `env:"SESSION_KEY,   default=token"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// DevAPIConfig configures the local stand-in backend.
type DevAPIConfig struct {
	Port      string        `env:"PORT,       default=8000"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=2h"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return process(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from env instead of the process environment.
func LoadFrom(ctx context.Context, env map[string]string) (*Config, error) {
	return process(ctx, envconfig.MapLookuper(env))
}

func process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Session.File == "" {
		cfg.Session.File = defaultSessionFile(cfg.Session.Key)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Session.Store {
	case StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", StoreFile, StoreRedis, c.Session.Store))
	}
	if c.Session.Key == "" {
		errs = append(errs, errors.New("SESSION_KEY must not be empty"))
	}
	if c.API.URL == "" {
		errs = append(errs, errors.New("MORTGAGE_API_URL must not be empty"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func defaultSessionFile(key string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "mortgage-center", key+".json")
}
