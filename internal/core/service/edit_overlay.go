package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/ports"
)

// Refresher is the part of the list the forms are allowed to touch.
type Refresher interface {
	RefreshAfterMutation(ctx context.Context) error
}

// EditOverlay edits one persisted record through an update-mode form. It
// keeps no state while closed: every Open seeds a fresh form.
type EditOverlay struct {
	api       ports.MortgageAPI
	cred      Credential
	list      Refresher
	validator *FieldValidator
	log       zerolog.Logger

	mu   sync.Mutex
	form *FormController
}

func NewEditOverlay(api ports.MortgageAPI, cred Credential, list Refresher, v *FieldValidator, log zerolog.Logger) *EditOverlay {
	return &EditOverlay{
		api:       api,
		cred:      cred,
		list:      list,
		validator: v,
		log:       log,
	}
}

// Open seeds the overlay from record, discarding any earlier edits.
func (o *EditOverlay) Open(record domain.Mortgage) error {
	form, err := NewUpdateForm(o.api, o.cred, o.validator, record, o.saved, o.log)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.form = form
	o.mu.Unlock()
	return nil
}

// Close drops the form and everything typed into it.
func (o *EditOverlay) Close() {
	o.mu.Lock()
	o.form = nil
	o.mu.Unlock()
}

func (o *EditOverlay) IsOpen() bool {
	return o.Form() != nil
}

// Form returns the open form, or nil while closed.
func (o *EditOverlay) Form() *FormController {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.form
}

// SetField edits the open record.
func (o *EditOverlay) SetField(name, raw string) error {
	form := o.Form()
	if form == nil {
		return domain.ErrOverlayClosed
	}
	return form.SetField(name, raw)
}

// Submit saves the open record. On success the list is refreshed and the
// overlay closes; on failure it stays open with the edits intact.
func (o *EditOverlay) Submit(ctx context.Context) (*domain.Mortgage, error) {
	form := o.Form()
	if form == nil {
		return nil, domain.ErrOverlayClosed
	}
	return form.Submit(ctx)
}

func (o *EditOverlay) saved(ctx context.Context, form *FormController, _ *domain.Mortgage) {
	if err := o.list.RefreshAfterMutation(ctx); err != nil {
		o.log.Warn().Err(err).Msg("refresh after update failed")
	}
	o.mu.Lock()
	if o.form == form {
		o.form = nil
	}
	o.mu.Unlock()
}
