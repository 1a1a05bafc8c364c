package metrics

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/rescalc/internal/circuit"
	apperrors "github.com/agbru/rescalc/internal/errors"
)

const namespace = "rescalc"

// Outcome labels of rescalc_evaluations_total.
const (
	OutcomeOK              = "ok"
	OutcomeOpen            = "open"
	OutcomeShort           = "short"
	OutcomeInvalidValue    = "invalid_value"
	OutcomeUnknownNodeType = "unknown_node_type"
	OutcomeMalformedTree   = "malformed_tree"
	OutcomeDepthExceeded   = "depth_exceeded"
	OutcomeTimeout         = "timeout"
	OutcomeCanceled        = "canceled"
	OutcomeIO              = "io"
	OutcomeError           = "error"
)

// Recorder collects evaluation metrics in its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	nodes       *prometheus.GaugeVec
	depth       prometheus.Gauge
	duration    prometheus.Histogram
	resistance  prometheus.Gauge
	heapAlloc   prometheus.Gauge
	gcCycles    prometheus.Gauge
	memory      *MemoryCollector
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Netlist evaluations by outcome.",
		}, []string{"outcome"}),
		nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "netlist_nodes",
			Help:      "Nodes of the last evaluated netlist by kind.",
		}, []string{"kind"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "netlist_depth",
			Help:      "Nesting depth of the last evaluated netlist.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent loading and evaluating a netlist.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}),
		resistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "result_ohms",
			Help:      "Equivalent resistance of the last successful evaluation.",
		}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap in use after the last evaluation.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles after the last evaluation.",
		}),
		memory: NewMemoryCollector(),
	}
	r.registry.MustRegister(r.evaluations, r.nodes, r.depth, r.duration, r.resistance, r.heapAlloc, r.gcCycles)
	return r
}

// Registry returns the registry backing r, for use with promhttp or Gather.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveTree records the shape of the netlist about to be evaluated.
func (r *Recorder) ObserveTree(stats circuit.Stats) {
	r.nodes.WithLabelValues(circuit.KindResistor.Name()).Set(float64(stats.Resistors))
	r.nodes.WithLabelValues(circuit.KindSeries.Name()).Set(float64(stats.Series))
	r.nodes.WithLabelValues(circuit.KindParallel.Name()).Set(float64(stats.Parallels))
	r.depth.Set(float64(stats.Depth))
}

// ObserveResult records a successful evaluation.
func (r *Recorder) ObserveResult(resistance float64, d time.Duration) {
	outcome := OutcomeOK
	switch {
	case math.IsInf(resistance, 1):
		outcome = OutcomeOpen
	case resistance == 0:
		outcome = OutcomeShort
	}
	r.evaluations.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
	r.resistance.Set(resistance)
	r.observeMemory()
}

// ObserveError records a failed evaluation.
func (r *Recorder) ObserveError(err error, d time.Duration) {
	r.evaluations.WithLabelValues(Outcome(err)).Inc()
	r.duration.Observe(d.Seconds())
	r.observeMemory()
}

func (r *Recorder) observeMemory() {
	snap := r.memory.Snapshot()
	r.heapAlloc.Set(float64(snap.HeapAlloc))
	r.gcCycles.Set(float64(snap.NumGC))
}

// WriteTextfile writes every metric of r to path in the Prometheus text
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Outcome classifies an evaluation error into an outcome label.
func Outcome(err error) string {
	var pathErr *fs.PathError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, circuit.ErrInvalidValue):
		return OutcomeInvalidValue
	case errors.Is(err, circuit.ErrUnknownNodeType):
		return OutcomeUnknownNodeType
	case errors.Is(err, circuit.ErrDepthExceeded):
		return OutcomeDepthExceeded
	case errors.Is(err, circuit.ErrMalformedTree):
		return OutcomeMalformedTree
	case apperrors.IsContextError(err):
		if errors.Is(err, context.DeadlineExceeded) {
			return OutcomeTimeout
		}
		return OutcomeCanceled
	case errors.As(err, &pathErr):
		return OutcomeIO
	default:
		return OutcomeError
	}
}
