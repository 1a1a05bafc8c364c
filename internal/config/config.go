// Package config defines the command-line configuration of rescalc: flag
// parsing, environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/rescalc/internal/circuit"
	apperrors "github.com/agbru/rescalc/internal/errors"
	"github.com/agbru/rescalc/internal/netlist"
)

// EnvPrefix is prepended to every environment variable read by the
// configuration layer.
const EnvPrefix = "RESCALC_"

// Default values for the configuration flags.
const (
	DefaultTimeout   = 1 * time.Minute
	DefaultPrecision = 6
	// AutoThreshold asks ApplyAdaptiveThresholds to pick a parallel
	// threshold from the host CPU count.
	AutoThreshold = -1
)

// Shells accepted by --completion.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// File is the netlist to evaluate. It may also be given as the single
	// positional argument.
	File string
	// Format forces the netlist syntax (auto, json, yaml).
	Format string
	// Strict rejects composites without children and unknown fields.
	Strict bool
	// MaxDepth bounds the nesting of the netlist.
	MaxDepth int
	// MaxNodes bounds the number of nodes a netlist expands to, YAML aliases
	// included.
	MaxNodes int
	// ParallelThreshold is the number of children from which a composite is
	// evaluated concurrently. Zero disables concurrency; AutoThreshold
	// selects a value from the host.
	ParallelThreshold int
	// Workers caps the number of concurrent evaluation goroutines. Zero uses
	// the CPU count.
	Workers int
	// Timeout bounds loading and evaluation.
	Timeout time.Duration
	// Precision is the number of significant digits printed.
	Precision int
	// SI prints the result with an engineering prefix (kΩ, MΩ...).
	SI bool
	// Tree prints the resistance of every subtree.
	Tree bool
	// Quiet prints only the numeric result, for scripting.
	Quiet bool
	// Verbose enables debug logging and the execution summary.
	Verbose bool
	// NoColor disables ANSI colors (NO_COLOR is honored too).
	NoColor bool
	// OutputFile receives a copy of the result.
	OutputFile string
	// MetricsFile receives evaluation metrics in Prometheus text format.
	MetricsFile string
	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the tree explorer.
	TUI bool
	// Completion prints a completion script for the named shell.
	Completion string
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for the flags that were not set, and validates the result.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The arguments, without the program name.
//   - errorWriter: The writer receiving usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, a parse error, or a
//     ConfigError/ValidationError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.File, "file", "", "Netlist file to evaluate (.json, .yaml, .yml).")
	fs.StringVar(&config.File, "f", "", "Shorthand for --file.")
	fs.StringVar(&config.Format, "format", string(netlist.FormatAuto), "Netlist format: auto, json or yaml.")
	fs.BoolVar(&config.Strict, "strict", false, "Require a children field on every composite and reject unknown fields.")
	fs.IntVar(&config.MaxDepth, "max-depth", circuit.DefaultMaxDepth, "Maximum nesting depth of the netlist.")
	fs.IntVar(&config.MaxNodes, "max-nodes", netlist.DefaultMaxNodes, "Maximum number of nodes a netlist may expand to.")
	fs.IntVar(&config.ParallelThreshold, "parallel-threshold", AutoThreshold, "Children count from which siblings are evaluated concurrently (0 disables, -1 auto).")
	fs.IntVar(&config.Workers, "workers", 0, "Maximum concurrent evaluation goroutines (0 uses the CPU count).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time for loading and evaluation.")
	fs.IntVar(&config.Precision, "precision", DefaultPrecision, "Significant digits in the printed result.")
	fs.BoolVar(&config.SI, "si", false, "Print the result with an engineering prefix (kΩ, MΩ).")
	fs.BoolVar(&config.Tree, "tree", false, "Print the resistance of every subtree.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the numeric result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging and the execution summary.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write evaluation metrics in Prometheus text format to this file.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive mode.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.BoolVar(&config.TUI, "tui", false, "Explore the netlist in a terminal UI.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script: "+strings.Join(completionShells, ", ")+".")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [netlist]\n\n", programName)
		fmt.Fprintln(errorWriter, "Computes the equivalent resistance of a series/parallel resistor network.")
		fmt.Fprintln(errorWriter, "\nFlags:")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery long flag may also be set through %s<NAME> (e.g. %sTIMEOUT=10s).\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		if config.File != "" {
			return AppConfig{}, apperrors.NewConfigError("netlist given both as --file and as argument %q", fs.Arg(0))
		}
		config.File = fs.Arg(0)
	default:
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if _, err := netlist.ParseFormat(c.Format); err != nil {
		return apperrors.ValidationError{Field: "format", Message: err.Error()}
	}
	if c.MaxDepth < 1 {
		return apperrors.ValidationError{Field: "max-depth", Message: "must be at least 1"}
	}
	if c.MaxNodes < 1 {
		return apperrors.ValidationError{Field: "max-nodes", Message: "must be at least 1"}
	}
	if c.ParallelThreshold < AutoThreshold {
		return apperrors.ValidationError{Field: "parallel-threshold", Message: "must be -1 (auto), 0 (disabled) or positive"}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be strictly positive"}
	}
	if c.Precision < 1 || c.Precision > 17 {
		return apperrors.ValidationError{Field: "precision", Message: "must be between 1 and 17"}
	}
	if c.Completion != "" {
		if !isCompletionShell(c.Completion) {
			return apperrors.ValidationError{Field: "completion", Message: fmt.Sprintf("unsupported shell %q (accepted values: %s)", c.Completion, strings.Join(completionShells, ", "))}
		}
		return nil
	}
	if c.Interactive && c.TUI {
		return apperrors.NewConfigError("--interactive and --tui cannot be combined")
	}
	if c.File == "" && !c.Interactive {
		return apperrors.NewConfigError("a netlist is required: use --file <path>")
	}
	return nil
}

// NetlistOptions returns the loader options selected by the configuration.
func (c AppConfig) NetlistOptions() netlist.Options {
	format, _ := netlist.ParseFormat(c.Format)
	return netlist.Options{Format: format, Strict: c.Strict, MaxDepth: c.MaxDepth, MaxNodes: c.MaxNodes}
}

// EvaluatorOptions returns the evaluator options selected by the
// configuration. ApplyAdaptiveThresholds should run first.
func (c AppConfig) EvaluatorOptions() circuit.Options {
	return circuit.Options{MaxDepth: c.MaxDepth, ParallelThreshold: c.ParallelThreshold, Workers: c.Workers}
}

func isCompletionShell(s string) bool {
	for _, shell := range completionShells {
		if s == shell {
			return true
		}
	}
	return false
}
