package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

// MortgageService stores applications per owner.
type MortgageService interface {
	List(ctx context.Context, owner string) ([]domain.Mortgage, error)
	Create(ctx context.Context, owner string, p domain.MortgagePayload) (*domain.Mortgage, error)
	Update(ctx context.Context, owner string, id int, p domain.MortgagePayload) (*domain.Mortgage, error)
	Delete(ctx context.Context, owner string, id int) error
}

type MortgageHandler struct {
	service MortgageService
}

func NewMortgageHandler(service MortgageService) *MortgageHandler {
	return &MortgageHandler{service: service}
}

func (h *MortgageHandler) List(c echo.Context) error {
	owner, err := ctxUser(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MortgageHandler) Create(c echo.Context) error {
	owner, err := ctxUser(c)
	if err != nil {
		return err
	}
	req, err := bindMortgage(c)
	if err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), owner, req.payload())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MortgageHandler) Update(c echo.Context) error {
	owner, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req, err := bindMortgage(c)
	if err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), owner, id, req.payload())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MortgageHandler) Delete(c echo.Context) error {
	owner, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), owner, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindMortgage(c echo.Context) (mortgageRequest, error) {
	var req mortgageRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, nil
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "mortgage id must be a positive integer")
	}
	return id, nil
}
