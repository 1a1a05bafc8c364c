package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/rescalc/internal/config"
	"github.com/agbru/rescalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the netlist, the loader mode, the timeout and the concurrency
// settings.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	mode := "lenient"
	if cfg.Strict {
		mode = "strict"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s (format %s, %s mode) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.File, ui.ColorReset(), cfg.Format, mode, ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())

	concurrency := "disabled"
	if cfg.ParallelThreshold > 0 {
		workers := cfg.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		concurrency = fmt.Sprintf("from %s%d%s children, %s%d%s workers",
			ui.ColorCyan(), cfg.ParallelThreshold, ui.ColorReset(), ui.ColorCyan(), workers, ui.ColorReset())
	}
	fmt.Fprintf(out, "Limits: max depth %s%d%s, max nodes %s%d%s, concurrency %s.\n",
		ui.ColorCyan(), cfg.MaxDepth, ui.ColorReset(), ui.ColorCyan(), cfg.MaxNodes, ui.ColorReset(), concurrency)
	fmt.Fprintf(out, "\n--- Result ---\n")
}
