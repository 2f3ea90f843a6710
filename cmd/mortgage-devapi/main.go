// Command mortgage-devapi serves an in-memory mortgage backend for local
// development against the terminal client.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mortgagecenter/mortgage-client/internal/devapi"
	"github.com/mortgagecenter/mortgage-client/internal/pkg/config"
	"github.com/mortgagecenter/mortgage-client/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mortgage-devapi:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log, err := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		File:    cfg.LogFile,
		Service: "mortgage-devapi",
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	e := devapi.NewRouter(devapi.Options{
		JWTSecret: cfg.DevAPI.JWTSecret,
		TokenTTL:  cfg.DevAPI.TokenTTL,
		Logger:    log,
	})

	addr := ":" + cfg.DevAPI.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return e.Shutdown(shutdownCtx)
}
