package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/format"
)

// isComposite reports whether st can be expanded.
func isComposite(st circuit.Subtree) bool {
	return st.Node.Kind() != circuit.KindResistor
}

// visibleRows returns the indexes of the subtrees that are not hidden below
// a collapsed composite. subtrees must be in pre-order.
func visibleRows(subtrees []circuit.Subtree, collapsed map[circuit.Path]bool) []int {
	rows := make([]int, 0, len(subtrees))
	hideBelow := 0
	for i, st := range subtrees {
		if hideBelow > 0 && st.Depth > hideBelow {
			continue
		}
		hideBelow = 0
		rows = append(rows, i)
		if isComposite(st) && collapsed[st.Path] {
			hideBelow = st.Depth
		}
	}
	return rows
}

// rowFor returns the position in rows of subtree idx, or of its closest
// visible ancestor when idx is hidden.
func rowFor(rows []int, idx int) int {
	pos := 0
	for i, r := range rows {
		if r > idx {
			break
		}
		pos = i
	}
	return pos
}

// parentIndex returns the subtree index of the parent of subtree idx, or -1
// for the root.
func parentIndex(subtrees []circuit.Subtree, idx int) int {
	depth := subtrees[idx].Depth
	for i := idx - 1; i >= 0; i-- {
		if subtrees[i].Depth == depth-1 {
			return i
		}
	}
	return -1
}

// formatValue renders a resistance for the explorer.
func formatValue(r float64, precision int, si bool) string {
	if si {
		return format.FormatResistanceSI(r, precision)
	}
	return format.FormatOhms(r, precision)
}

// renderRow renders one subtree line: cursor, indentation, expansion marker,
// kind and resistance.
func renderRow(st circuit.Subtree, collapsed, selected bool, precision int, si bool) string {
	var b strings.Builder
	if selected {
		b.WriteString(cursorStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}
	b.WriteString(strings.Repeat("  ", st.Depth-1))

	label := st.Node.Kind().Name()
	switch {
	case !isComposite(st):
		b.WriteString(dimStyle.Render("• "))
	case collapsed:
		b.WriteString(dimStyle.Render("▸ "))
	default:
		b.WriteString(dimStyle.Render("▾ "))
	}
	if isComposite(st) {
		label = fmt.Sprintf("%s (%d)", label, len(circuit.Children(st.Node)))
	}
	b.WriteString(kindStyle(st.Node.Kind()).Render(label))
	b.WriteString("  ")

	value := formatValue(st.Resistance, precision, si)
	if math.IsInf(st.Resistance, 1) || st.Resistance == 0 {
		b.WriteString(openStyle.Render(value))
	} else {
		b.WriteString(valueStyle.Render(value))
	}
	return b.String()
}
