package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rescalc/internal/format"
)

// HeaderModel renders the top bar: title, version, netlist and load time.
type HeaderModel struct {
	version  string
	source   string
	loadTime time.Duration
	width    int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, source string) HeaderModel {
	return HeaderModel{version: version, source: source}
}

// SetLoadTime records how long the last load and evaluation took.
func (h *HeaderModel) SetLoadTime(d time.Duration) {
	h.loadTime = d
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "rescalc explorer"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := dimStyle.Render(" | ")
	left := title + pipe + h.source
	if h.loadTime > 0 {
		left += pipe + dimStyle.Render(fmt.Sprintf("loaded in %s", format.FormatExecutionDuration(h.loadTime)))
	}

	innerWidth := h.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	gap := innerWidth - lipgloss.Width(left)
	if gap < 0 {
		gap = 0
	}

	return headerStyle.Render(left + spaces(gap))
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
