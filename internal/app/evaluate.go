package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/rescalc/internal/circuit"
	"github.com/agbru/rescalc/internal/cli"
	apperrors "github.com/agbru/rescalc/internal/errors"
	"github.com/agbru/rescalc/internal/logging"
	"github.com/agbru/rescalc/internal/metrics"
	"github.com/agbru/rescalc/internal/netlist"
)

// runEvaluate loads the configured netlist, evaluates it and presents the
// result. It returns the process exit code.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Verbose && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	var recorder *metrics.Recorder
	if a.Config.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	evaluator := circuit.NewEvaluator(a.Config.EvaluatorOptions())
	start := time.Now()
	res, tree, err := a.evaluate(ctx, evaluator, recorder)
	res.Duration = time.Since(start)
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: "evaluate", Limit: a.Config.Timeout}
	}
	if a.Config.Verbose {
		a.logMemory()
	}

	if recorder != nil {
		if err != nil {
			recorder.ObserveError(err, res.Duration)
		} else {
			recorder.ObserveResult(res.Resistance, res.Duration)
		}
		if werr := a.writeMetrics(recorder); werr != nil && err == nil {
			return cli.HandleError(werr, res.Duration, a.ErrWriter)
		}
	}

	if err != nil {
		a.Logger.Debug("evaluation failed", logging.String("file", a.Config.File), logging.Err(err))
		return cli.HandleError(err, res.Duration, a.ErrWriter)
	}
	return a.present(ctx, out, evaluator, res, tree)
}

// evaluate runs the load and evaluation steps under a tracing span.
func (a *Application) evaluate(ctx context.Context, evaluator *circuit.Evaluator, recorder *metrics.Recorder) (cli.Result, circuit.Node, error) {
	ctx, span := a.Tracer.Start(ctx, "rescalc.evaluate",
		trace.WithAttributes(attribute.String("netlist.file", a.Config.File)))
	defer span.End()

	res := cli.Result{Source: a.Config.File}
	tree, format, err := a.load(ctx)
	res.Format = string(format)
	if err != nil {
		recordSpanError(span, err)
		return res, nil, err
	}

	res.Stats = circuit.Inspect(tree)
	span.SetAttributes(
		attribute.Int("netlist.nodes", res.Stats.Nodes()),
		attribute.Int("netlist.depth", res.Stats.Depth),
	)
	if recorder != nil {
		recorder.ObserveTree(res.Stats)
	}
	a.Logger.Debug("netlist loaded",
		logging.String("file", a.Config.File),
		logging.String("format", res.Format),
		logging.Int("nodes", res.Stats.Nodes()),
		logging.Int("depth", res.Stats.Depth))

	computeCtx, computeSpan := a.Tracer.Start(ctx, "rescalc.compute")
	value, err := evaluator.EvaluateContext(computeCtx, tree)
	if err != nil {
		recordSpanError(computeSpan, err)
		computeSpan.End()
		recordSpanError(span, err)
		return res, tree, apperrors.NetlistError{Source: a.Config.File, Cause: err}
	}
	computeSpan.SetAttributes(attribute.Float64("resistance.ohms", value))
	computeSpan.End()

	res.Resistance = value
	a.Logger.Debug("netlist evaluated", logging.Float64("ohms", value))
	return res, tree, nil
}

// load reads the netlist, showing a spinner on a terminal.
func (a *Application) load(ctx context.Context) (circuit.Node, netlist.Format, error) {
	_, span := a.Tracer.Start(ctx, "rescalc.load")
	defer span.End()

	opts := a.Config.NetlistOptions()
	if opts.Format == netlist.FormatAuto {
		opts.Format = netlist.DetectFormat(a.Config.File)
	}
	span.SetAttributes(attribute.String("netlist.format", string(opts.Format)), attribute.Bool("netlist.strict", opts.Strict))

	spinnerOut := a.ErrWriter
	if a.Config.Quiet {
		spinnerOut = io.Discard
	}

	var tree circuit.Node
	err := cli.WithSpinner(spinnerOut, "Loading "+a.Config.File, func() error {
		var err error
		tree, err = netlist.LoadContext(ctx, a.Config.File, opts)
		return err
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		recordSpanError(span, err)
		return nil, opts.Format, apperrors.NetlistError{Source: a.Config.File, Cause: err}
	}
	return tree, opts.Format, nil
}

// present writes the result, the optional breakdown and the optional result
// file.
func (a *Application) present(ctx context.Context, out io.Writer, evaluator *circuit.Evaluator, res cli.Result, tree circuit.Node) int {
	_, span := a.Tracer.Start(ctx, "rescalc.present")
	defer span.End()

	outputCfg := a.outputConfig()
	if err := cli.DisplayResultWithConfig(out, res, outputCfg); err != nil {
		recordSpanError(span, err)
		return cli.HandleError(err, res.Duration, a.ErrWriter)
	}
	if outputCfg.OutputFile != "" {
		a.Logger.Info("result saved", logging.String("file", outputCfg.OutputFile))
	}

	if a.Config.Tree && !a.Config.Quiet {
		if err := cli.DisplayTree(out, evaluator, tree, outputCfg); err != nil {
			recordSpanError(span, err)
			return cli.HandleError(apperrors.NetlistError{Source: a.Config.File, Cause: err}, res.Duration, a.ErrWriter)
		}
	}
	return apperrors.ExitSuccess
}

// writeMetrics exports the recorder to the configured textfile.
func (a *Application) writeMetrics(recorder *metrics.Recorder) error {
	if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("failed to write metrics", err, logging.String("file", a.Config.MetricsFile))
		return apperrors.WrapError(err, "failed to write metrics file")
	}
	a.Logger.Debug("metrics written", logging.String("file", a.Config.MetricsFile))
	return nil
}

// logMemory records the heap state after an evaluation at debug level.
func (a *Application) logMemory() {
	snap := metrics.NewMemoryCollector().Snapshot()
	a.Logger.Debug("memory after evaluation",
		logging.Uint64("heap_alloc_bytes", snap.HeapAlloc),
		logging.Uint64("sys_bytes", snap.Sys),
		logging.Uint64("gc_pause_total_ns", snap.PauseTotalNs),
		logging.Int("gc_cycles", int(snap.NumGC)))
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
