package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/ui"
)

// Style variables for the explorer.
// Initialized from the ui theme system via initTUIStyles().
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	dimStyle      lipgloss.Style
	valueStyle    lipgloss.Style
	openStyle     lipgloss.Style
	errorStyle    lipgloss.Style
	cursorStyle   lipgloss.Style
	statusStyle   lipgloss.Style
	resistorStyle lipgloss.Style
	seriesStyle   lipgloss.Style
	parallelStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	openStyle = lipgloss.NewStyle().
		Foreground(t.Open).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	cursorStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(t.Border).
		Foreground(t.Text)

	resistorStyle = lipgloss.NewStyle().Foreground(t.Resistor)
	seriesStyle = lipgloss.NewStyle().Foreground(t.Series)
	parallelStyle = lipgloss.NewStyle().Foreground(t.Parallel)
}

// kindStyle returns the style used for a node kind label.
func kindStyle(k circuit.Kind) lipgloss.Style {
	switch k {
	case circuit.KindSeries:
		return seriesStyle
	case circuit.KindParallel:
		return parallelStyle
	default:
		return resistorStyle
	}
}
