package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

type stubMortgageService struct {
	items     []domain.Mortgage
	created   []domain.MortgagePayload
	updatedID int
	deleteErr error
}

func (s *stubMortgageService) List(context.Context, string) ([]domain.Mortgage, error) {
	return s.items, nil
}

func (s *stubMortgageService) Create(_ context.Context, _ string, p domain.MortgagePayload) (*domain.Mortgage, error) {
	s.created = append(s.created, p)
	return &domain.Mortgage{ID: "7", CreditScore: p.CreditScore, CreditRating: "A"}, nil
}

func (s *stubMortgageService) Update(_ context.Context, _ string, id int, p domain.MortgagePayload) (*domain.Mortgage, error) {
	s.updatedID = id
	return &domain.Mortgage{ID: domain.MortgageID("7"), CreditScore: p.CreditScore}, nil
}

func (s *stubMortgageService) Delete(context.Context, string, int) error {
	return s.deleteErr
}

const validBody = `{"credit_score":750,"loan_amount":1500000,"property_value":5000000,"annual_income":1200000,"debt_amount":0,"loan_type":"fixed","property_type":"single_family"}`

func TestMortgageHandler_Create(t *testing.T) {
	e := newEcho()
	svc := &stubMortgageService{}
	h := NewMortgageHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/mortgages", validBody), rec)
	c.Set("username", "alice")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.created) != 1 || svc.created[0].LoanAmount != 1500000 {
		t.Fatalf("unexpected payload: %+v", svc.created)
	}
	if !strings.Contains(rec.Body.String(), `"id":7`) {
		t.Fatalf("id should be numeric on the wire: %s", rec.Body.String())
	}
}

func TestMortgageHandler_Create_Validation(t *testing.T) {
	e := newEcho()
	h := NewMortgageHandler(&stubMortgageService{})

	cases := map[string]string{
		"score too low": strings.Replace(validBody, `"credit_score":750`, `"credit_score":200`, 1),
		"bad loan type": strings.Replace(validBody, `"fixed"`, `"balloon"`, 1),
		"small income":  strings.Replace(validBody, `"annual_income":1200000`, `"annual_income":1000`, 1),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/mortgages", body), httptest.NewRecorder())
			c.Set("username", "alice")

			err := h.Create(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func TestMortgageHandler_UpdateUsesPathID(t *testing.T) {
	e := newEcho()
	svc := &stubMortgageService{}
	h := NewMortgageHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/api/mortgages/3", strings.Replace(validBody, "{", `{"id":99,`, 1)), rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("username", "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.updatedID != 3 {
		t.Fatalf("expected path id 3, got %d", svc.updatedID)
	}
}

func TestMortgageHandler_DeleteBadID(t *testing.T) {
	e := newEcho()
	h := NewMortgageHandler(&stubMortgageService{})

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/mortgages/abc", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("username", "alice")

	err := h.Delete(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestMortgageHandler_DeleteNoContent(t *testing.T) {
	e := newEcho()
	h := NewMortgageHandler(&stubMortgageService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/mortgages/1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("username", "alice")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestMortgageHandler_RequiresUser(t *testing.T) {
	e := newEcho()
	h := NewMortgageHandler(&stubMortgageService{})
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/mortgages", nil), httptest.NewRecorder())

	err := h.List(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
