package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/rescalc/internal/circuit"
	apperrors "github.com/agbru/rescalc/internal/errors"
	"github.com/agbru/rescalc/internal/format"
	"github.com/agbru/rescalc/internal/netlist"
	"github.com/agbru/rescalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Netlist configures how "load" reads files.
	Netlist netlist.Options
	// Evaluator configures evaluation.
	Evaluator circuit.Options
	// Output configures how values are printed.
	Output OutputConfig
}

// REPL represents an interactive resistor network session. It holds at most
// one loaded netlist at a time.
type REPL struct {
	ctx       context.Context
	config    REPLConfig
	evaluator *circuit.Evaluator
	tree      circuit.Node
	source    string
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	if config.Output.Precision < 1 {
		config.Output.Precision = format.DefaultDigits
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		ctx:       context.Background(),
		config:    config,
		evaluator: circuit.NewEvaluator(config.Evaluator),
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// SetContext sets the parent context of every load and evaluation.
func (r *REPL) SetContext(ctx context.Context) {
	r.ctx = ctx
}

// Load reads a netlist and makes it the current tree. Loading is bounded by
// the configured timeout.
func (r *REPL) Load(path string) error {
	ctx, cancel := context.WithTimeout(r.ctx, r.config.Timeout)
	defer cancel()

	tree, err := netlist.LoadContext(ctx, path, r.config.Netlist)
	if err != nil {
		return err
	}
	r.tree = tree
	r.source = path
	return nil
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"rescalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sΩ Resistor Network Calculator - Interactive Mode%s     %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sload <file>%s       - Load a JSON or YAML netlist\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %seval%s              - Evaluate the loaded netlist\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stree%s              - Show the resistance of every subtree\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstats%s             - Count the nodes of the loaded netlist\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sparallel <v...>%s   - Combine resistances in parallel\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sseries <v...>%s     - Combine resistances in series\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstrict%s            - Toggle strict netlist loading\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssi%s                - Toggle engineering prefixes\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s            - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "load", "l":
		r.cmdLoad(args)
	case "eval", "e":
		r.cmdEval()
	case "tree", "t":
		r.cmdTree()
	case "stats":
		r.cmdStats()
	case "parallel", "p":
		r.cmdCombine(args, circuit.CombineParallel, "Parallel")
	case "series", "s":
		r.cmdCombine(args, circuit.CombineSeries, "Series")
	case "strict":
		r.cmdStrict()
	case "si":
		r.cmdSI()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// cmdLoad handles the "load" command.
func (r *REPL) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: load <file>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if err := r.Load(args[0]); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	stats := circuit.Inspect(r.tree)
	fmt.Fprintf(r.out, "Loaded %s%s%s: %d nodes, depth %d.\n",
		ui.ColorCyan(), r.source, ui.ColorReset(), stats.Nodes(), stats.Depth)
}

// requireTree reports whether a netlist is loaded, printing a hint if not.
func (r *REPL) requireTree() bool {
	if r.tree == nil {
		fmt.Fprintf(r.out, "%sNo netlist loaded. Use: load <file>%s\n", ui.ColorRed(), ui.ColorReset())
		return false
	}
	return true
}

// cmdEval handles the "eval" command.
func (r *REPL) cmdEval() {
	if !r.requireTree() {
		return
	}
	ctx, cancel := context.WithTimeout(r.ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	value, err := r.evaluator.EvaluateContext(ctx, r.tree)
	duration := time.Since(start)
	if apperrors.IsContextError(err) {
		fmt.Fprintf(r.out, "%sEvaluation aborted after %s: %v%s\n", ui.ColorYellow(),
			format.FormatExecutionDuration(duration), err, ui.ColorReset())
		return
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Total resistance: %s%s%s (%s)\n",
		ui.ColorGreen(), FormatValue(value, r.config.Output), ui.ColorReset(),
		format.FormatExecutionDuration(duration))
}

// cmdTree handles the "tree" command.
func (r *REPL) cmdTree() {
	if !r.requireTree() {
		return
	}
	if err := DisplayTree(r.out, r.evaluator, r.tree, r.config.Output); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

// cmdStats handles the "stats" command.
func (r *REPL) cmdStats() {
	if !r.requireTree() {
		return
	}
	s := circuit.Inspect(r.tree)
	fmt.Fprintf(r.out, "\n%sNetlist %s:%s\n", ui.ColorBold(), r.source, ui.ColorReset())
	fmt.Fprintf(r.out, "  Resistors: %s%d%s\n", ui.ColorCyan(), s.Resistors, ui.ColorReset())
	fmt.Fprintf(r.out, "  Series:    %s%d%s\n", ui.ColorCyan(), s.Series, ui.ColorReset())
	fmt.Fprintf(r.out, "  Parallel:  %s%d%s\n", ui.ColorCyan(), s.Parallels, ui.ColorReset())
	fmt.Fprintf(r.out, "  Depth:     %s%d%s\n", ui.ColorCyan(), s.Depth, ui.ColorReset())
	fmt.Fprintln(r.out)
}

// cmdCombine handles the "parallel" and "series" commands.
func (r *REPL) cmdCombine(args []string, combine func(...float64) (float64, error), label string) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), arg, ui.ColorReset())
			return
		}
		values[i] = v
	}
	result, err := combine(values...)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s: %s%s%s\n", label, ui.ColorGreen(), FormatValue(result, r.config.Output), ui.ColorReset())
}

// cmdStrict toggles strict loading for subsequent "load" commands.
func (r *REPL) cmdStrict() {
	r.config.Netlist.Strict = !r.config.Netlist.Strict
	fmt.Fprintf(r.out, "Strict loading: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Netlist.Strict), ui.ColorReset())
}

// cmdSI toggles engineering prefixes.
func (r *REPL) cmdSI() {
	r.config.Output.SI = !r.config.Output.SI
	fmt.Fprintf(r.out, "Engineering prefixes: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Output.SI), ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	source := r.source
	if source == "" {
		source = "(none)"
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Netlist:    %s%s%s\n", ui.ColorCyan(), source, ui.ColorReset())
	fmt.Fprintf(r.out, "  Strict:     %s%s%s\n", ui.ColorCyan(), onOff(r.config.Netlist.Strict), ui.ColorReset())
	fmt.Fprintf(r.out, "  SI:         %s%s%s\n", ui.ColorCyan(), onOff(r.config.Output.SI), ui.ColorReset())
	fmt.Fprintf(r.out, "  Precision:  %s%d%s digits\n", ui.ColorCyan(), r.config.Output.Precision, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
