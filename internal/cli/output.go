// Package cli implements the command-line presentation of rescalc: result
// output, the subtree breakdown, the interactive REPL and shell completion.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayTree].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].
package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/format"
	"github.com/agbru/rescalc/internal/ui"
)

// Result is the outcome of one netlist evaluation.
type Result struct {
	// Source is the netlist file name.
	Source string
	// Format is the syntax the netlist was decoded with.
	Format string
	// Resistance is the equivalent resistance in ohms.
	Resistance float64
	// Stats describes the shape of the tree.
	Stats circuit.Stats
	// Duration covers loading and evaluation.
	Duration time.Duration
}

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose adds the tree statistics and timing.
	Verbose bool
	// SI selects engineering prefixes.
	SI bool
	// Precision is the number of significant digits.
	Precision int
}

// FormatValue renders a resistance with its unit according to config.
func FormatValue(r float64, config OutputConfig) string {
	if config.SI {
		return format.FormatResistanceSI(r, config.Precision)
	}
	return format.FormatOhms(r, config.Precision)
}

// FormatQuietResult formats a result for quiet mode output: the bare number,
// or the prefixed value when SI output is requested.
func FormatQuietResult(res Result, config OutputConfig) string {
	if config.SI {
		return format.FormatResistanceSI(res.Resistance, config.Precision)
	}
	return format.FormatResistance(res.Resistance, config.Precision)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, res Result, config OutputConfig) {
	fmt.Fprintln(out, FormatQuietResult(res, config))
}

// DisplayResult prints the "Total resistance" line and, in verbose mode,
// the shape of the tree and the time spent.
func DisplayResult(out io.Writer, res Result, config OutputConfig) {
	color := ui.ColorGreen()
	if res.Resistance == 0 || isOpen(res.Resistance) {
		color = ui.ColorYellow()
	}
	fmt.Fprintf(out, "Total resistance: %s%s%s\n", color, FormatValue(res.Resistance, config), ui.ColorReset())

	if !config.Verbose {
		return
	}
	switch {
	case isOpen(res.Resistance):
		fmt.Fprintf(out, "%sNo conducting path: the network is an open circuit.%s\n", ui.ColorYellow(), ui.ColorReset())
	case res.Resistance == 0:
		fmt.Fprintf(out, "%sThe network is short-circuited.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Nodes: %s%d%s (%d resistors, %d series, %d parallel), depth %s%d%s\n",
		ui.ColorCyan(), res.Stats.Nodes(), ui.ColorReset(),
		res.Stats.Resistors, res.Stats.Series, res.Stats.Parallels,
		ui.ColorCyan(), res.Stats.Depth, ui.ColorReset())
	fmt.Fprintf(out, "Evaluation time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
}

// WriteResultToFile writes a result, preceded by a commented header, to
// config.OutputFile. Missing parent directories are created.
func WriteResultToFile(res Result, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Resistor Network Evaluation\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Source: %s\n", res.Source)
	fmt.Fprintf(file, "# Format: %s\n", res.Format)
	fmt.Fprintf(file, "# Nodes: %d (%d resistors, %d series, %d parallel)\n",
		res.Stats.Nodes(), res.Stats.Resistors, res.Stats.Series, res.Stats.Parallels)
	fmt.Fprintf(file, "# Depth: %d\n", res.Stats.Depth)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "Total resistance: %s\n", FormatValue(res.Resistance, config))

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, res Result, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res, config)
	} else {
		DisplayResult(out, res, config)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(res, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

func isOpen(r float64) bool { return math.IsInf(r, 1) }
