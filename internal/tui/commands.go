package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/service"
)

type bootMsg struct {
	state domain.AuthState
	err   error
}

type loginMsg struct{ err error }

type registerMsg struct{ err error }

type submitMsg struct{ err error }

type refreshMsg struct{ err error }

type deleteMsg struct {
	id  domain.MortgageID
	err error
}

type editSavedMsg struct{ err error }

// runner executes workspace operations off the UI goroutine. Each call gets
// its own context bounded by timeout; nothing is cancelled once issued.
type runner struct {
	ws      *service.Workspace
	timeout time.Duration
}

func (r runner) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r runner) bootstrap() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		state, err := r.ws.Session.Bootstrap(ctx)
		return bootMsg{state: state, err: err}
	}
}

func (r runner) login(creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return loginMsg{err: r.ws.Session.Login(ctx, creds)}
	}
}

func (r runner) register(creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return registerMsg{err: r.ws.Session.Register(ctx, creds)}
	}
}

func (r runner) submit() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		_, err := r.ws.Form.Submit(ctx)
		return submitMsg{err: err}
	}
}

func (r runner) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return refreshMsg{err: r.ws.List.Refresh(ctx)}
	}
}

func (r runner) delete(id domain.MortgageID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		return deleteMsg{id: id, err: r.ws.List.Delete(ctx, id)}
	}
}

func (r runner) saveEdit() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := r.ctx()
		defer cancel()
		_, err := r.ws.Edit.Submit(ctx)
		return editSavedMsg{err: err}
	}
}
