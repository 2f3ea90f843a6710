// Package api is the HTTP adapter for the mortgage backend. It implements
// ports.AuthAPI and ports.MortgageAPI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/infrastructure/metrics"
)

const maxBodyBytes = 1 << 20

// Client talks JSON to the backend rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var out tokenResponse
	err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", creds, &out)
	if errors.Is(err, domain.ErrUnauthorized) {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) Validate(ctx context.Context, token string) error {
	return c.do(ctx, "validate", http.MethodGet, "/api/auth/validate", token, nil, nil)
}

func (c *Client) Register(ctx context.Context, creds domain.Credentials) error {
	return c.do(ctx, "register", http.MethodPost, "/api/auth/register", "", creds, nil)
}

func (c *Client) List(ctx context.Context, token string) ([]domain.Mortgage, error) {
	var out []domain.Mortgage
	if err := c.do(ctx, "list", http.MethodGet, "/api/mortgages", token, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Mortgage{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, token string, payload domain.MortgagePayload) (*domain.Mortgage, error) {
	var out domain.Mortgage
	if err := c.do(ctx, "create", http.MethodPost, "/api/mortgages", token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, token string, id domain.MortgageID, payload domain.MortgagePayload) (*domain.Mortgage, error) {
	if id == "" {
		return nil, domain.ErrMissingID
	}
	var out domain.Mortgage
	if err := c.do(ctx, "update", http.MethodPut, mortgagePath(id), token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, token string, id domain.MortgageID) error {
	if id == "" {
		return domain.ErrMissingID
	}
	return c.do(ctx, "delete", http.MethodDelete, mortgagePath(id), token, nil, nil)
}

func mortgagePath(id domain.MortgageID) string {
	return "/api/mortgages/" + url.PathEscape(string(id))
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
// Non-2xx responses come back as *Error.
func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With().Str("operation", op).Str("request_id", reqID).Logger()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		log.Error().Err(err).Msg("backend request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(op, outcome(resp.StatusCode)).Inc()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseError(resp.StatusCode, raw)
		log.Warn().Int("status", resp.StatusCode).Str("detail", apiErr.Message).Msg("backend rejected request")
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("backend request completed")
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
