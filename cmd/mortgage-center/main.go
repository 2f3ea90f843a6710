// Command mortgage-center is the terminal client for submitting and managing
// mortgage applications.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/ports"
	"github.com/mortgagecenter/mortgage-client/internal/core/service"
	"github.com/mortgagecenter/mortgage-client/internal/infrastructure/api"
	filestore "github.com/mortgagecenter/mortgage-client/internal/infrastructure/db/file"
	redisstore "github.com/mortgagecenter/mortgage-client/internal/infrastructure/db/redis"
	"github.com/mortgagecenter/mortgage-client/internal/infrastructure/metrics"
	"github.com/mortgagecenter/mortgage-client/internal/pkg/config"
	"github.com/mortgagecenter/mortgage-client/internal/tui"
	"github.com/mortgagecenter/mortgage-client/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mortgage-center:", err)
		os.Exit(1)
	}
}

func run() error {
	apiURL := flag.String("api", "", "Override backend base URL (e.g. http://127.0.0.1:8000)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if *apiURL != "" {
		cfg.API.URL = *apiURL
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(filepath.Dir(cfg.Session.File), "client.log")
	}
	log, err := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		File:    logFile,
		Service: "mortgage-center",
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	store, closeStore, err := newTokenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := api.NewClient(cfg.API.URL, cfg.API.Timeout, log)
	session := service.NewSessionService(client, store, log)
	ws := service.NewWorkspace(session, client, log)

	log.Info().Str("api", cfg.API.URL).Str("session_store", cfg.Session.Store).Msg("starting")
	_, runErr := tea.NewProgram(tui.New(ws, cfg.API.Timeout, log), tea.WithAltScreen()).Run()

	writeMetrics(cfg.MetricsTextfile, log)
	if runErr != nil {
		return fmt.Errorf("run ui: %w", runErr)
	}
	return nil
}

func newTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, func(), error) {
	if cfg.Session.Store != config.StoreRedis {
		return filestore.NewTokenStore(cfg.Session.File), func() {}, nil
	}
	store, err := redisstore.Open(ctx, redisstore.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
		Key:  cfg.Session.Key,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func writeMetrics(path string, log zerolog.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("metrics dump failed")
	}
}
