package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/rescalc/internal/cli"
	"github.com/agbru/rescalc/internal/config"
	apperrors "github.com/agbru/rescalc/internal/errors"
	"github.com/agbru/rescalc/internal/logging"
	"github.com/agbru/rescalc/internal/tui"
	"github.com/agbru/rescalc/internal/ui"
)

// tracerName identifies the spans emitted by rescalc.
const tracerName = "github.com/agbru/rescalc"

// Application represents the rescalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Tracer    trace.Tracer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used by the application. By default a zerolog
// logger writing to the error writer is built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithTracer sets the tracer used for the load and evaluation spans. By
// default the tracer of the global OpenTelemetry provider is used.
func WithTracer(t trace.Tracer) AppOption {
	return func(a *Application) { a.Tracer = t }
}

// New creates a new Application instance by parsing command-line arguments.
// Configuration errors are reported on errWriter; flag.ErrHelp is returned
// as is when help was requested.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "rescalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, reportConfigError(err, errWriter)
	}

	app.Config = config.ApplyAdaptiveThresholds(cfg)
	if app.Logger == nil {
		app.Logger = newLogger(app.Config, errWriter)
	}
	if app.Tracer == nil {
		app.Tracer = otel.Tracer(tracerName)
	}
	return app, nil
}

// reportConfigError prints semantic configuration errors and turns flag
// parse errors, already printed by the flag package, into a ConfigError.
func reportConfigError(err error, errWriter io.Writer) error {
	if IsHelpError(err) {
		return err
	}
	var (
		configErr     apperrors.ConfigError
		validationErr apperrors.ValidationError
	)
	if errors.As(err, &configErr) || errors.As(err, &validationErr) {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return err
	}
	return apperrors.ConfigError{Message: err.Error()}
}

// newLogger builds the application logger: silent in quiet mode, debug
// level when verbose, info level otherwise.
func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	switch {
	case cfg.Quiet:
		return logging.NewNopLogger()
	case cfg.Verbose:
		return logging.NewLevelLogger(w, "app", zerolog.DebugLevel)
	default:
		return logging.NewLevelLogger(w, "app", zerolog.InfoLevel)
	}
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// The explorer draws its own screen; other modes only color a terminal.
	noColor := a.Config.NoColor || (!a.Config.TUI && !cli.IsTerminal(out))
	ui.InitTheme(noColor)

	if a.Config.Interactive {
		return a.runREPL(ctx, out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runEvaluate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive mode, preloading --file when given.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		Netlist:   a.Config.NetlistOptions(),
		Evaluator: a.Config.EvaluatorOptions(),
		Output:    a.outputConfig(),
	})
	repl.SetOutput(out)
	repl.SetContext(ctx)
	if a.Config.File != "" {
		if err := repl.Load(a.Config.File); err != nil {
			return cli.HandleError(apperrors.NetlistError{Source: a.Config.File, Cause: err}, 0, a.ErrWriter)
		}
		a.Logger.Debug("netlist preloaded", logging.String("file", a.Config.File))
	}
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the tree explorer.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if _, err := os.Stat(a.Config.File); err != nil {
		return cli.HandleError(apperrors.NetlistError{Source: a.Config.File, Cause: err}, 0, a.ErrWriter)
	}
	return tui.Run(ctx, a.Config, Version, a.ErrWriter)
}

// outputConfig returns the presentation settings of the configuration.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		SI:         a.Config.SI,
		Precision:  a.Config.Precision,
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
