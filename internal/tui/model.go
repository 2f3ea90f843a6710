// Package tui is the terminal front end of the mortgage center. It renders
// the Auth Gate, the application form, the applications list and the edit
// overlay, and runs every backend call as a bubbletea command.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/service"
)

type screen int

const (
	screenLoading screen = iota
	screenAuth
	screenWorkspace
)

const (
	authUsername = iota
	authPassword
)

// Model is the root bubbletea model.
type Model struct {
	ws  *service.Workspace
	run runner
	log zerolog.Logger

	screen  screen
	width   int
	height  int
	spinner spinner.Model

	auth        [2]textinput.Model
	authFocus   int
	registering bool
	authBusy    bool
	authNote    string
	authErr     string

	form    formPane
	edit    formPane
	cursor  int
	status  string
	errText string
}

// New builds the model. timeout bounds every backend call.
func New(ws *service.Workspace, timeout time.Duration, log zerolog.Logger) Model {
	m := Model{
		ws:      ws,
		run:     runner{ws: ws, timeout: timeout},
		log:     log,
		screen:  screenLoading,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		form:    newFormPane(),
		edit:    newFormPane(),
	}

	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Width = 32
	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128
	pass.Width = 32
	m.auth = [2]textinput.Model{user, pass}
	m.auth[authUsername].Focus()

	m.form.sync(ws.Form)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run.bootstrap())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.screen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("session bootstrap failed")
			m.authErr = msg.err.Error()
		}
		if msg.state == domain.AuthAuthenticated {
			return m.enterWorkspace()
		}
		m.screen = screenAuth
		return m, nil

	case loginMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = authMessage(msg.err)
			return m, nil
		}
		m.auth[authPassword].SetValue("")
		return m.enterWorkspace()

	case registerMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = authMessage(msg.err)
			return m, nil
		}
		m.registering = false
		m.authErr = ""
		m.authNote = "Account created. Log in to continue."
		m.auth[authPassword].SetValue("")
		return m, nil

	case submitMsg:
		m.form.sync(m.ws.Form)
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m.checkSession()
		}
		m.errText = ""
		m.status = "Application submitted."
		m.cursor = 0
		return m.checkSession()

	case refreshMsg:
		if msg.err != nil {
			m.errText = "Could not load applications: " + msg.err.Error()
			return m.checkSession()
		}
		m.clampCursor()
		return m, nil

	case deleteMsg:
		if msg.err != nil {
			m.errText = "Delete failed: " + msg.err.Error()
			return m.checkSession()
		}
		m.errText = ""
		m.status = "Application deleted."
		m.clampCursor()
		return m, nil

	case editSavedMsg:
		if msg.err != nil {
			if form := m.ws.Edit.Form(); form != nil {
				m.edit.sync(form)
			}
			return m.checkSession()
		}
		m.errText = ""
		m.status = "Application updated."
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenAuth:
			return m.updateAuth(msg)
		case screenWorkspace:
			if !m.ws.Session.Authenticated() {
				return m.logout("Please log in.")
			}
			return m.updateWorkspace(msg)
		}
	}
	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.auth[m.authFocus].Blur()
		m.authFocus = 1 - m.authFocus
		return m, m.auth[m.authFocus].Focus()
	case "ctrl+r":
		m.registering = !m.registering
		m.authErr, m.authNote = "", ""
		return m, nil
	case "esc":
		return m, tea.Quit
	case "enter":
		if m.authBusy {
			return m, nil
		}
		creds := domain.Credentials{
			Username: m.auth[authUsername].Value(),
			Password: m.auth[authPassword].Value(),
		}
		m.authBusy = true
		m.authErr, m.authNote = "", ""
		if m.registering {
			return m, m.run.register(creds)
		}
		return m, m.run.login(creds)
	}

	var cmd tea.Cmd
	m.auth[m.authFocus], cmd = m.auth[m.authFocus].Update(msg)
	return m, cmd
}

func (m Model) updateWorkspace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+o":
		return m.logout("Logged out.")
	case "ctrl+t":
		if m.ws.Edit.IsOpen() {
			return m, nil
		}
		if m.ws.View() == service.ViewApplication {
			m.ws.SetView(service.ViewApplications)
			return m, m.run.refresh()
		}
		m.ws.SetView(service.ViewApplication)
		return m, nil
	}

	if m.ws.View() == service.ViewApplication {
		return m.updateForm(msg)
	}
	if m.ws.Edit.IsOpen() {
		return m.updateOverlay(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.ws.Form
	switch msg.String() {
	case "tab", "down":
		m.form.move(1)
		return m, nil
	case "shift+tab", "up":
		m.form.move(-1)
		return m, nil
	case "ctrl+r":
		form.Reset()
		m.form.sync(form)
		m.errText = ""
		return m, nil
	case "enter":
		if !form.CanSubmit() {
			if form.State() != service.FormSubmitting {
				m.errText = "Fill in every required field and fix the errors above."
			}
			return m, nil
		}
		m.errText, m.status = "", ""
		return m, m.run.submit()
	}

	cmd, err := m.form.edit(form, msg)
	if err != nil && !errors.Is(err, domain.ErrSubmitInProgress) {
		m.errText = err.Error()
	}
	return m, cmd
}

func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.ws.Edit.Form()
	if form == nil {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.ws.Edit.Close()
		return m, nil
	case "tab", "down":
		m.edit.move(1)
		return m, nil
	case "shift+tab", "up":
		m.edit.move(-1)
		return m, nil
	case "enter":
		if !form.CanSubmit() {
			return m, nil
		}
		return m, m.run.saveEdit()
	}

	cmd, err := m.edit.edit(form, msg)
	if err != nil && !errors.Is(err, domain.ErrSubmitInProgress) {
		m.errText = err.Error()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ws.List.Items()
	switch msg.String() {
	case "tab":
		m.ws.SetView(service.ViewApplication)
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case "r":
		m.status = "Refreshing..."
		return m, m.run.refresh()
	case "e", "enter":
		if len(items) == 0 {
			return m, nil
		}
		if err := m.ws.Edit.Open(items[m.cursor]); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.edit = newFormPane()
		m.edit.sync(m.ws.Edit.Form())
		m.errText, m.status = "", ""
		return m, nil
	case "d", "delete":
		if len(items) == 0 {
			return m, nil
		}
		id := items[m.cursor].ID
		if m.ws.List.Deleting(id) {
			return m, nil
		}
		m.status = "Deleting..."
		return m, m.run.delete(id)
	}
	return m, nil
}

func (m Model) enterWorkspace() (tea.Model, tea.Cmd) {
	m.screen = screenWorkspace
	m.authErr, m.authNote = "", ""
	m.errText, m.status = "", ""
	return m, m.run.refresh()
}

// checkSession routes back to the Auth Gate when a call invalidated the
// session.
func (m Model) checkSession() (tea.Model, tea.Cmd) {
	if m.screen == screenWorkspace && !m.ws.Session.Authenticated() {
		return m.logout("Your session has expired. Please log in again.")
	}
	return m, nil
}

// logout drops the session and everything loaded under it. It runs on the
// UI goroutine so a later login cannot race the clear.
func (m Model) logout(note string) (tea.Model, tea.Cmd) {
	ctx, cancel := m.run.ctx()
	defer cancel()
	if err := m.ws.Logout(ctx); err != nil {
		m.log.Error().Err(err).Msg("logout failed")
	}

	m.screen = screenAuth
	m.authNote = note
	m.authErr, m.errText, m.status = "", "", ""
	m.cursor = 0
	m.form = newFormPane()
	m.form.sync(m.ws.Form)
	return m, nil
}

func (m *Model) clampCursor() {
	n := m.ws.List.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, domain.ErrUserExists):
		return "That username is already taken."
	}
	return err.Error()
}
