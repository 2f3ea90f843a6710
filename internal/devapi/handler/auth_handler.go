package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthService is the account side of the development backend.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Exists(ctx context.Context, username string) bool
}

type AuthHandler struct {
	authService AuthService
	mortgages   MortgageService
}

func NewAuthHandler(authService AuthService, mortgages MortgageService) *AuthHandler {
	return &AuthHandler{authService: authService, mortgages: mortgages}
}

// Register creates a new user account. It does not issue a token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully"})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout is a no-op on the server; clients drop the token locally.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Validate confirms the bearer token still names a known user.
func (h *AuthHandler) Validate(c echo.Context) error {
	username, err := ctxUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if !h.authService.Exists(ctx, username) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	mortgages, err := h.mortgages.List(ctx, username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, validateResponse{Username: username, Mortgages: mortgages})
}
