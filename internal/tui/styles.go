package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	tabStyle     = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTab    = tabStyle.Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("250"))
	focusLabel   = labelStyle.Foreground(lipgloss.Color("212")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	primeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("28")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	readyButton  = buttonStyle.Foreground(lipgloss.Color("235")).Background(lipgloss.Color("62")).Bold(true)
)

// ratingCell highlights a prime rating. Every other rating renders plain.
func ratingCell(m domain.Mortgage) string {
	if m.IsPrime() {
		return primeStyle.Render("✓ " + m.CreditRating)
	}
	if m.CreditRating == "" {
		return "-"
	}
	return m.CreditRating
}
