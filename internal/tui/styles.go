package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mlavoie/calcli/internal/ui"
)

// Style variables for the TUI mode.
// Initialized from the ui theme system via initStyles().
var (
	titleStyle      lipgloss.Style
	panelStyle      lipgloss.Style
	expressionStyle lipgloss.Style
	resultStyle     lipgloss.Style
	errorStyle      lipgloss.Style
	dimStyle        lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has run.
func initStyles() {
	t := ui.GetCurrentTUITheme()

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	expressionStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	resultStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
