package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/ports"
)

// View is a tab of the mortgage center.
type View string

const (
	ViewApplication  View = "application"
	ViewApplications View = "applications"
)

// Workspace wires the controllers of an authenticated session together and
// tracks which tab is active.
type Workspace struct {
	Session *SessionService
	Form    *FormController
	List    *ListController
	Edit    *EditOverlay

	log zerolog.Logger

	mu   sync.Mutex
	view View
}

func NewWorkspace(session *SessionService, api ports.MortgageAPI, log zerolog.Logger) *Workspace {
	v := NewFieldValidator()
	w := &Workspace{
		Session: session,
		log:     log,
		view:    ViewApplication,
	}
	w.List = NewListController(api, session, log)
	w.Edit = NewEditOverlay(api, session, w.List, v, log)
	w.Form = NewCreateForm(api, session, v, w.created, log)
	return w
}

func (w *Workspace) created(ctx context.Context, _ *FormController, _ *domain.Mortgage) {
	if err := w.List.RefreshAfterMutation(ctx); err != nil {
		w.log.Warn().Err(err).Msg("refresh after create failed")
	}
	w.SetView(ViewApplications)
}

func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

func (w *Workspace) SetView(v View) {
	w.mu.Lock()
	w.view = v
	w.mu.Unlock()
}

// Logout ends the session and drops everything loaded under it.
func (w *Workspace) Logout(ctx context.Context) error {
	w.Edit.Close()
	w.List.Clear()
	w.Form.Reset()
	w.SetView(ViewApplication)
	return w.Session.Logout(ctx)
}
