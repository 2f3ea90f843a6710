// Package devapi is an in-memory stand-in for the mortgage backend, used by
// the client's integration tests and for local development.
package devapi

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/devapi/handler"
	"github.com/mortgagecenter/mortgage-client/internal/devapi/middleware"
)

// Options configures NewRouter. Zero values are usable.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Rater     Rater
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics. A fresh one is created when nil so
	// several servers can run in one process.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devapi",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(requestLogger(opts.Logger))

	// --- Dependencies ---
	store := NewStore(opts.Rater)
	authService := NewAuthService(store, opts.JWTSecret, opts.TokenTTL)
	authHandler := handler.NewAuthHandler(authService, store)
	mortgageHandler := handler.NewMortgageHandler(store)
	auth := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/validate", authHandler.Validate, auth)

	// --- Mortgage routes ---
	m := e.Group("/api/mortgages", auth)
	m.GET("", mortgageHandler.List)
	m.POST("", mortgageHandler.Create)
	m.PUT("/:id", mortgageHandler.Update)
	m.DELETE("/:id", mortgageHandler.Delete)

	// --- Probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
