package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) RefreshAfterMutation(context.Context) error {
	r.calls++
	return r.err
}

func persistedRecord() domain.Mortgage {
	return domain.Mortgage{
		ID:            "42",
		CreditScore:   720,
		LoanAmount:    2500000,
		PropertyValue: 4000000,
		AnnualIncome:  1800000,
		DebtAmount:    0,
		LoanType:      domain.LoanAdjustable,
		PropertyType:  domain.PropertyTownhouse,
		CreditRating:  "BBB",
	}
}

func newTestOverlay(api *stubMortgageAPI) (*EditOverlay, *countingRefresher) {
	s, _ := loggedInSession()
	r := &countingRefresher{}
	return NewEditOverlay(api, s, r, NewFieldValidator(), discardLogger), r
}

func TestEditOverlay_ClosedHoldsNothing(t *testing.T) {
	o, _ := newTestOverlay(&stubMortgageAPI{})

	if o.IsOpen() || o.Form() != nil {
		t.Fatalf("new overlay should be closed")
	}
	if err := o.SetField("credit_score", "700"); !errors.Is(err, domain.ErrOverlayClosed) {
		t.Fatalf("expected ErrOverlayClosed, got %v", err)
	}
	if _, err := o.Submit(context.Background()); !errors.Is(err, domain.ErrOverlayClosed) {
		t.Fatalf("expected ErrOverlayClosed, got %v", err)
	}
}

func TestEditOverlay_OpenSeedsFromRecord(t *testing.T) {
	o, _ := newTestOverlay(&stubMortgageAPI{})

	if err := o.Open(persistedRecord()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	d := o.Form().Draft()
	if d.ID != "42" || d.CreditScore != "720" || d.LoanAmount != "2500000" || d.DebtAmount != "0" {
		t.Fatalf("unexpected seed: %+v", d)
	}
	if d.LoanType != domain.LoanAdjustable || d.PropertyType != domain.PropertyTownhouse {
		t.Fatalf("choices not seeded: %+v", d)
	}
	if o.Form().State() != FormReady {
		t.Fatalf("valid record should open ready, got %s", o.Form().State())
	}
	if o.Form().Mode() != ModeUpdate {
		t.Fatalf("overlay form must be in update mode")
	}
}

func TestEditOverlay_OpenRejectsDraft(t *testing.T) {
	o, _ := newTestOverlay(&stubMortgageAPI{})
	rec := persistedRecord()
	rec.ID = ""

	if err := o.Open(rec); !errors.Is(err, domain.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if o.IsOpen() {
		t.Fatalf("overlay opened for a record without id")
	}
}

func TestEditOverlay_ReopenDiscardsEdits(t *testing.T) {
	o, _ := newTestOverlay(&stubMortgageAPI{})
	_ = o.Open(persistedRecord())
	_ = o.SetField("credit_score", "100")
	o.Close()

	other := persistedRecord()
	other.ID = "43"
	other.CreditScore = 810
	_ = o.Open(other)
	d := o.Form().Draft()
	if d.ID != "43" || d.CreditScore != "810" {
		t.Fatalf("overlay kept stale edits: %+v", d)
	}
	if o.Form().Error(domain.FieldCreditScore) != "" {
		t.Fatalf("stale validation message carried over")
	}
}

func TestEditOverlay_SubmitUpdatesAndCloses(t *testing.T) {
	api := &stubMortgageAPI{}
	o, r := newTestOverlay(api)
	_ = o.Open(persistedRecord())
	_ = o.SetField("loan_amount", "30,00,000")

	if _, err := o.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, creates, updates, _ := api.counts(); updates != 1 || creates != 0 {
		t.Fatalf("expected one update and no create, got update=%d create=%d", updates, creates)
	}
	p := api.updateCalls[0]
	if p.ID != "42" || p.LoanAmount != 3000000 || p.CreditScore != 720 {
		t.Fatalf("unexpected update payload: %+v", p)
	}
	if r.calls != 1 {
		t.Fatalf("expected list refresh after update, got %d", r.calls)
	}
	if o.IsOpen() {
		t.Fatalf("overlay should close after a successful update")
	}
}

func TestEditOverlay_SubmitFailureStaysOpen(t *testing.T) {
	api := &stubMortgageAPI{updateFn: func(context.Context, string, domain.MortgageID, domain.MortgagePayload) (*domain.Mortgage, error) {
		return nil, domain.ErrMortgageNotFound
	}}
	o, r := newTestOverlay(api)
	_ = o.Open(persistedRecord())
	_ = o.SetField("credit_score", "801")

	if _, err := o.Submit(context.Background()); !errors.Is(err, domain.ErrMortgageNotFound) {
		t.Fatalf("expected ErrMortgageNotFound, got %v", err)
	}
	if !o.IsOpen() {
		t.Fatalf("overlay closed on failure")
	}
	if got := o.Form().Draft().CreditScore; got != "801" {
		t.Fatalf("edit lost on failure: %q", got)
	}
	if r.calls != 0 {
		t.Fatalf("failed update must not refresh")
	}
}

func TestEditOverlay_InvalidEditBlocksSave(t *testing.T) {
	api := &stubMortgageAPI{}
	o, _ := newTestOverlay(api)
	_ = o.Open(persistedRecord())
	_ = o.SetField("annual_income", "1000")

	if _, err := o.Submit(context.Background()); !errors.Is(err, domain.ErrFormNotReady) {
		t.Fatalf("expected ErrFormNotReady, got %v", err)
	}
	if _, _, updates, _ := api.counts(); updates != 0 {
		t.Fatalf("invalid edit reached the backend")
	}
}
