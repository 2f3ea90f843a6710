package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/ports"
	"github.com/mortgagecenter/mortgage-client/internal/infrastructure/metrics"
	"github.com/mortgagecenter/mortgage-client/internal/pkg/money"
)

// FormMode selects what a submission does with the draft.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeUpdate FormMode = "update"
)

// FormState is the observable state of a form.
//
//	idle → (validating) → ready | blocked
//	ready → submitting → idle (success) | ready (failure)
type FormState string

const (
	FormIdle       FormState = "idle"
	FormBlocked    FormState = "blocked"
	FormReady      FormState = "ready"
	FormSubmitting FormState = "submitting"
)

// SuccessFunc runs after the backend accepted a submission.
type SuccessFunc func(ctx context.Context, form *FormController, record *domain.Mortgage)

// FormController owns a draft, its validation messages and the submission
// lifecycle. The same type backs the new-application form (ModeCreate) and
// the edit overlay (ModeUpdate).
type FormController struct {
	mode      FormMode
	api       ports.MortgageAPI
	cred      Credential
	validator *FieldValidator
	onSuccess SuccessFunc
	log       zerolog.Logger

	mu         sync.Mutex
	initial    domain.Draft
	draft      domain.Draft
	errs       ValidationErrors
	touched    bool
	submitting bool
	lastErr    error
}

// NewCreateForm returns a form that starts from empty defaults and submits
// new applications.
func NewCreateForm(api ports.MortgageAPI, cred Credential, v *FieldValidator, onSuccess SuccessFunc, log zerolog.Logger) *FormController {
	return newForm(ModeCreate, api, cred, v, domain.NewDraft(), onSuccess, log)
}

// NewUpdateForm returns a form seeded from record that submits updates keyed
// by its identifier. Seeded values are validated like typed ones.
func NewUpdateForm(api ports.MortgageAPI, cred Credential, v *FieldValidator, record domain.Mortgage, onSuccess SuccessFunc, log zerolog.Logger) (*FormController, error) {
	if !record.Persisted() {
		return nil, domain.ErrMissingID
	}
	f := newForm(ModeUpdate, api, cred, v, record.Draft(), onSuccess, log)
	for _, field := range domain.Fields {
		f.errs[field] = f.validator.Check(field, f.draft.Get(field))
	}
	f.touched = true
	return f, nil
}

func newForm(mode FormMode, api ports.MortgageAPI, cred Credential, v *FieldValidator, seed domain.Draft, onSuccess SuccessFunc, log zerolog.Logger) *FormController {
	if v == nil {
		v = NewFieldValidator()
	}
	return &FormController{
		mode:      mode,
		api:       api,
		cred:      cred,
		validator: v,
		onSuccess: onSuccess,
		log:       log.With().Str("form", string(mode)).Logger(),
		initial:   seed,
		draft:     seed,
		errs:      make(ValidationErrors),
	}
}

func (c *FormController) Mode() FormMode { return c.mode }

// SetField validates raw and commits it. A validation failure is recorded in
// Errors but does not stop the value from being stored. Currency fields are
// stored stripped of formatting. Choice fields only accept their enumerated
// values.
func (c *FormController) SetField(name string, raw string) error {
	field := domain.Field(name)
	if !field.Known() {
		return fmt.Errorf("set %q: %w", name, domain.ErrUnknownField)
	}
	if field.IsChoice() && !validChoice(field, raw) {
		return fmt.Errorf("set %s=%q: %w", field, raw, domain.ErrInvalidChoice)
	}
	if field.IsCurrency() {
		raw = money.Parse(raw)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return domain.ErrSubmitInProgress
	}

	msg := c.validator.Check(field, raw)
	if msg != "" {
		metrics.ValidationFailuresTotal.WithLabelValues(string(field)).Inc()
	}
	c.errs[field] = msg
	c.draft = c.draft.With(field, raw)
	c.touched = true
	return nil
}

// Reset restores the form to the values it started from.
func (c *FormController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return
	}
	c.resetLocked()
}

func (c *FormController) resetLocked() {
	c.draft = c.initial
	c.errs = make(ValidationErrors)
	c.touched = false
	c.lastErr = nil
}

// Submit sends the draft to the backend. It refuses with ErrFormNotReady
// unless CanSubmit, and with ErrSubmitInProgress while a previous call is
// outstanding; in both cases no request is made. On failure the draft is
// kept and the error is retained in LastError.
func (c *FormController) Submit(ctx context.Context) (*domain.Mortgage, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	}
	if !c.readyLocked() {
		c.mu.Unlock()
		return nil, domain.ErrFormNotReady
	}
	draft := c.draft
	c.submitting = true
	c.lastErr = nil
	c.mu.Unlock()

	record, err := c.send(ctx, draft)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		metrics.FormSubmissionsTotal.WithLabelValues(string(c.mode), "error").Inc()
		c.log.Error().Err(err).Str("id", string(draft.ID)).Msg("submission failed")
		c.cred.Reject(ctx, err)
		return nil, err
	}
	if c.mode == ModeCreate {
		c.resetLocked()
	}
	c.mu.Unlock()

	metrics.FormSubmissionsTotal.WithLabelValues(string(c.mode), "ok").Inc()
	if record != nil {
		c.log.Info().Str("id", string(record.ID)).Msg("submission accepted")
	}
	if c.onSuccess != nil {
		c.onSuccess(ctx, c, record)
	}
	return record, nil
}

func (c *FormController) send(ctx context.Context, draft domain.Draft) (*domain.Mortgage, error) {
	token, err := c.cred.Token()
	if err != nil {
		return nil, err
	}
	payload, err := payloadFromDraft(draft)
	if err != nil {
		return nil, err
	}
	switch c.mode {
	case ModeUpdate:
		if draft.ID == "" {
			return nil, domain.ErrMissingID
		}
		return c.api.Update(ctx, token, draft.ID, payload)
	default:
		payload.ID = ""
		return c.api.Create(ctx, token, payload)
	}
}

// CanSubmit reports whether every required field is filled, no validation
// message is set and nothing is in flight.
func (c *FormController) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.submitting && c.readyLocked()
}

func (c *FormController) readyLocked() bool {
	return c.draft.Complete() && c.errs.Clean()
}

func (c *FormController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.submitting:
		return FormSubmitting
	case !c.touched:
		return FormIdle
	case c.readyLocked():
		return FormReady
	default:
		return FormBlocked
	}
}

// Draft returns a copy of the current values.
func (c *FormController) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns a copy of the validation messages.
func (c *FormController) Errors() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.clone()
}

// Error returns the validation message for one field.
func (c *FormController) Error(field domain.Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[field]
}

// LastError is the error of the most recent failed submission, cleared by
// the next attempt.
func (c *FormController) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Display returns the field as the form shows it: currency fields formatted
// with grouping, everything else raw.
func (c *FormController) Display(field domain.Field) string {
	raw := c.Draft().Get(field)
	if field.IsCurrency() && raw != "" {
		return money.Format(raw)
	}
	return raw
}

func validChoice(field domain.Field, v string) bool {
	switch field {
	case domain.FieldLoanType:
		return domain.LoanType(v).Valid()
	case domain.FieldPropertyType:
		return domain.PropertyType(v).Valid()
	}
	return false
}
