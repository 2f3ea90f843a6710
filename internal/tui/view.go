package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/service"
	"github.com/mortgagecenter/mortgage-client/internal/pkg/money"
)

func (m Model) View() string {
	var body string
	switch {
	case m.screen == screenLoading:
		body = m.spinner.View() + " Checking your session..."
	case m.screen == screenWorkspace && m.ws.Session.Authenticated():
		body = m.workspaceView()
	default:
		body = m.authView()
	}
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
	}
	return body
}

func (m Model) authView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mortgage Center") + "\n\n")
	if m.registering {
		b.WriteString("Create an account\n\n")
	} else {
		b.WriteString("Log in\n\n")
	}

	for i, label := range []string{"Username", "Password"} {
		style := labelStyle
		if i == m.authFocus {
			style = focusLabel
		}
		b.WriteString(style.Render(label) + m.auth[i].View() + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.authBusy:
		b.WriteString(statusStyle.Render("Please wait...") + "\n")
	case m.authErr != "":
		b.WriteString(errorStyle.Render(m.authErr) + "\n")
	case m.authNote != "":
		b.WriteString(statusStyle.Render(m.authNote) + "\n")
	}

	toggle := "ctrl+r: create account"
	if m.registering {
		toggle = "ctrl+r: back to log in"
	}
	b.WriteString("\n" + helpStyle.Render("tab: switch field • enter: submit • "+toggle+" • esc: quit"))
	return b.String()
}

func (m Model) workspaceView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mortgage Center") + "\n\n")

	formTab, listTab := activeTab, tabStyle
	if m.ws.View() == service.ViewApplications {
		formTab, listTab = tabStyle, activeTab
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		formTab.Render("Mortgage Application"),
		listTab.Render("My Applications"),
	) + "\n\n")

	var help string
	switch {
	case m.ws.View() == service.ViewApplication:
		b.WriteString(m.form.view(m.ws.Form, "Submit Application"))
		help = "tab/↑↓: field • ←→: change option • enter: submit • ctrl+r: clear"
	case m.ws.Edit.IsOpen():
		b.WriteString(m.overlayView())
		help = "tab/↑↓: field • ←→: change option • enter: save • esc: cancel"
	default:
		b.WriteString(m.listView())
		help = "↑↓: select • e: edit • d: delete • r: refresh"
	}

	b.WriteString("\n\n")
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(help + " • ctrl+t: switch tab • ctrl+o: log out • ctrl+c: quit"))
	return b.String()
}

func (m Model) overlayView() string {
	form := m.ws.Edit.Form()
	if form == nil {
		return ""
	}
	title := titleStyle.Render(fmt.Sprintf("Edit application #%s", form.Draft().ID))
	return overlayStyle.Render(title + "\n\n" + m.edit.view(form, "Save Changes"))
}

const rowFormat = "%s %-6s %-6s %14s %14s %14s %14s  %-16s %-16s "

func (m Model) listView() string {
	items := m.ws.List.Items()
	if len(items) == 0 {
		if err := m.ws.List.LastError(); err != nil {
			return errorStyle.Render("Applications could not be loaded.")
		}
		return statusStyle.Render("No applications yet.")
	}

	var b strings.Builder
	header := fmt.Sprintf(rowFormat, " ", "ID", "Score", "Loan", "Property", "Income", "Debt", "Loan Type", "Property Type")
	b.WriteString(headerStyle.Render(header+"Rating") + "\n")
	for i, it := range items {
		b.WriteString(m.row(i, it) + "\n")
	}
	return b.String()
}

func (m Model) row(i int, it domain.Mortgage) string {
	marker := " "
	if i == m.cursor {
		marker = cursorStyle.Render("›")
	}
	line := fmt.Sprintf(rowFormat,
		marker,
		string(it.ID),
		fmt.Sprintf("%d", it.CreditScore),
		money.FormatAmount(it.LoanAmount),
		money.FormatAmount(it.PropertyValue),
		money.FormatAmount(it.AnnualIncome),
		money.FormatAmount(it.DebtAmount),
		LoanTypeLabel(it.LoanType),
		PropertyTypeLabel(it.PropertyType),
	)
	line += ratingCell(it)
	if m.ws.List.Deleting(it.ID) {
		line += statusStyle.Render("  deleting...")
	}
	return line
}
