package circuit

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDepth bounds tree nesting when Options.MaxDepth is zero.
	DefaultMaxDepth = 1024
	// DefaultParallelThreshold is the number of children from which a
	// composite node fans its children out to worker goroutines in
	// EvaluateContext.
	DefaultParallelThreshold = 64
)

// Options configures an Evaluator.
type Options struct {
	// MaxDepth is the deepest nesting accepted, counting the root as 1.
	// Zero selects DefaultMaxDepth.
	MaxDepth int
	// ParallelThreshold is the minimum number of children a composite needs
	// before EvaluateContext evaluates them concurrently. Zero disables
	// concurrency.
	ParallelThreshold int
	// Workers caps the number of extra goroutines used by EvaluateContext.
	// Zero selects runtime.NumCPU().
	Workers int
}

// Evaluator computes equivalent resistances. It holds no per-call state and
// is safe for concurrent use.
type Evaluator struct {
	maxDepth          int
	parallelThreshold int
	workers           int
}

// NewEvaluator returns an Evaluator configured by opts.
func NewEvaluator(opts Options) *Evaluator {
	e := &Evaluator{
		maxDepth:          opts.MaxDepth,
		parallelThreshold: opts.ParallelThreshold,
		workers:           opts.Workers,
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	return e
}

var defaultEvaluator = NewEvaluator(Options{})

// Evaluate returns the equivalent resistance of n in ohms using default
// options.
//
//   - Resistor: its value, after validation.
//   - Series: the sum of its children, 0 when empty.
//   - Parallel: the reciprocal of the summed reciprocals of its children,
//     +Inf when empty and 0 when any child is 0.
//
// The first failure aborts the evaluation and is returned as is.
func Evaluate(n Node) (float64, error) {
	return defaultEvaluator.Evaluate(n)
}

// Evaluate returns the equivalent resistance of n, walking the tree
// sequentially.
func (e *Evaluator) Evaluate(n Node) (float64, error) {
	return e.eval(n, 1)
}

func (e *Evaluator) eval(n Node, depth int) (float64, error) {
	if depth > e.maxDepth {
		return 0, &DepthExceededError{Limit: e.maxDepth}
	}
	n, err := resolve(n)
	if err != nil {
		return 0, err
	}
	switch v := n.(type) {
	case Resistor:
		return leafValue(v)
	case Series:
		var total float64
		for i, child := range v.Children {
			r, err := e.eval(child, depth+1)
			if err != nil {
				return 0, withChildPath(err, i)
			}
			total += r
		}
		return total, nil
	case Parallel:
		values := make([]float64, len(v.Children))
		for i, child := range v.Children {
			r, err := e.eval(child, depth+1)
			if err != nil {
				return 0, withChildPath(err, i)
			}
			values[i] = r
		}
		return combineParallel(values), nil
	}
	return 0, &MalformedTreeError{Message: fmt.Sprintf("unsupported node %T", n)}
}

// leafValue checks a resistor and returns its value, with -0 folded to 0.
func leafValue(r Resistor) (float64, error) {
	if err := CheckValue(r.Value); err != nil {
		return 0, err
	}
	return positiveZero(r.Value), nil
}

// EvaluateContext is Evaluate with cancellation and optional concurrency:
// composites with at least ParallelThreshold children hand their children to
// worker goroutines while workers are free, and evaluate inline otherwise.
// Results are combined in child order, so the value matches Evaluate exactly;
// on failure the error of the lowest-index failing child is returned.
func (e *Evaluator) EvaluateContext(ctx context.Context, n Node) (float64, error) {
	if e.parallelThreshold <= 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return e.Evaluate(n)
	}
	w := &walker{e: e, sem: make(chan struct{}, e.workers)}
	return w.eval(ctx, n, 1)
}

type walker struct {
	e   *Evaluator
	sem chan struct{}
}

func (w *walker) eval(ctx context.Context, n Node, depth int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth > w.e.maxDepth {
		return 0, &DepthExceededError{Limit: w.e.maxDepth}
	}
	n, err := resolve(n)
	if err != nil {
		return 0, err
	}
	switch v := n.(type) {
	case Resistor:
		return leafValue(v)
	case Series:
		values, err := w.evalChildren(ctx, v.Children, depth)
		if err != nil {
			return 0, err
		}
		var total float64
		for _, r := range values {
			total += r
		}
		return total, nil
	case Parallel:
		values, err := w.evalChildren(ctx, v.Children, depth)
		if err != nil {
			return 0, err
		}
		return combineParallel(values), nil
	}
	return 0, &MalformedTreeError{Message: fmt.Sprintf("unsupported node %T", n)}
}

func (w *walker) evalChildren(ctx context.Context, children []Node, depth int) ([]float64, error) {
	values := make([]float64, len(children))
	if len(children) < w.e.parallelThreshold {
		for i, child := range children {
			r, err := w.eval(ctx, child, depth+1)
			if err != nil {
				return nil, withChildPath(err, i)
			}
			values[i] = r
		}
		return values, nil
	}

	var g errgroup.Group
	errs := make([]error, len(children))
	for i, child := range children {
		select {
		case w.sem <- struct{}{}:
			g.Go(func() error {
				defer func() { <-w.sem }()
				values[i], errs[i] = w.eval(ctx, child, depth+1)
				return errs[i]
			})
		default:
			values[i], errs[i] = w.eval(ctx, child, depth+1)
			if errs[i] != nil {
				_ = g.Wait()
				return nil, firstError(ctx, errs)
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, firstError(ctx, errs)
	}
	return values, nil
}

// firstError picks the failure to report after a fan-out: the caller's own
// context error if it is done, otherwise the lowest-index child failure.
func firstError(ctx context.Context, errs []error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, err := range errs {
		if err != nil {
			return withChildPath(err, i)
		}
	}
	return nil
}

// resolve normalizes pointer variants to values and rejects nil nodes.
func resolve(n Node) (Node, error) {
	switch v := n.(type) {
	case nil:
		return nil, &MalformedTreeError{Message: "missing node"}
	case *Resistor:
		if v == nil {
			return nil, &MalformedTreeError{Message: "missing node"}
		}
		return *v, nil
	case *Series:
		if v == nil {
			return nil, &MalformedTreeError{Message: "missing node"}
		}
		return *v, nil
	case *Parallel:
		if v == nil {
			return nil, &MalformedTreeError{Message: "missing node"}
		}
		return *v, nil
	}
	return n, nil
}
