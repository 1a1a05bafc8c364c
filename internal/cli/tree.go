package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/ui"
)

// FormatTreeLine renders one subtree of a breakdown: indentation by depth,
// the node kind and its resistance. Composites also show their child count.
func FormatTreeLine(st circuit.Subtree, config OutputConfig) string {
	indent := strings.Repeat("  ", st.Depth-1)
	label := st.Node.Kind().Name()
	if n := len(circuit.Children(st.Node)); st.Node.Kind() != circuit.KindResistor {
		label = fmt.Sprintf("%s (%d)", label, n)
	}
	return fmt.Sprintf("%s%-14s %s", indent, label, FormatValue(st.Resistance, config))
}

// DisplayTree prints the resistance of every subtree of n, one line per node
// in pre-order, under a "Breakdown" heading.
//
// Parameters:
//   - out: The output writer.
//   - ev: The evaluator computing the breakdown.
//   - n: The tree to display.
//   - config: Output configuration (precision and SI prefixes).
//
// Returns:
//   - error: The evaluation error if the tree is invalid.
func DisplayTree(out io.Writer, ev *circuit.Evaluator, n circuit.Node, config OutputConfig) error {
	subtrees, err := ev.Breakdown(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%sBreakdown:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, st := range subtrees {
		color := ui.ColorMagenta()
		if st.Node.Kind() == circuit.KindResistor {
			color = ui.ColorDim()
		}
		fmt.Fprintf(out, "  %s%s%s\n", color, FormatTreeLine(st, config), ui.ColorReset())
	}
	return nil
}
