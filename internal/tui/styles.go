package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hassecalc/internal/ui"
)

// Style variables for the calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle        lipgloss.Style
	focusedPanelStyle lipgloss.Style
	headerStyle       lipgloss.Style
	titleStyle        lipgloss.Style
	dimStyle          lipgloss.Style
	labelStyle        lipgloss.Style
	inputStyle        lipgloss.Style
	inputFocusedStyle lipgloss.Style
	opStyle           lipgloss.Style
	resultStyle       lipgloss.Style
	errorStyle        lipgloss.Style
	statusStyle       lipgloss.Style
	selectedStyle     lipgloss.Style
	footerKeyStyle    lipgloss.Style
	footerDescStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	focusedPanelStyle = panelStyle.
		BorderForeground(t.Focus)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Focus)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Width(7)

	inputStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	inputFocusedStyle = lipgloss.NewStyle().
		Foreground(t.Focus).
		Bold(true)

	opStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	statusStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	selectedStyle = lipgloss.NewStyle().
		Foreground(t.Focus).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
