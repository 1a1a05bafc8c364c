package circuit

import (
	"context"
	"errors"
	"math"
	"testing"
)

func wideParallel(width int, value float64) Parallel {
	children := make([]Node, width)
	for i := range children {
		children[i] = R(value)
	}
	return P(children...)
}

func TestEvaluateContext_WideTree(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(Options{ParallelThreshold: 8, Workers: 4})

	// 1000 branches of 1 kΩ each in parallel, twice in series.
	tree := S(wideParallel(1000, 1000), wideParallel(1000, 1000))
	got, err := ev.EvaluateContext(context.Background(), tree)
	if err != nil {
		t.Fatalf("EvaluateContext() unexpected error: %v", err)
	}
	if !approxEqual(got, 2) {
		t.Errorf("EvaluateContext() = %v, want 2", got)
	}
	want, _ := Evaluate(tree)
	if got != want {
		t.Errorf("concurrent result %v differs from sequential %v", got, want)
	}
}

func TestEvaluateContext_LowestIndexErrorWins(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(Options{ParallelThreshold: 2, Workers: 8})

	children := make([]Node, 64)
	for i := range children {
		children[i] = R(10)
	}
	children[40] = R(-40)
	children[7] = R(-7)

	for i := 0; i < 20; i++ {
		_, err := ev.EvaluateContext(context.Background(), P(children...))
		var invalid *InvalidValueError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected *InvalidValueError, got %v", err)
		}
		if invalid.Value != -7.0 {
			t.Fatalf("reported value %v, want -7 (lowest index)", invalid.Value)
		}
		if invalid.Path != ".children[7]" {
			t.Fatalf("reported path %q, want .children[7]", invalid.Path)
		}
	}
}

func TestEvaluateContext_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, opts := range []Options{{}, {ParallelThreshold: 2}} {
		_, err := NewEvaluator(opts).EvaluateContext(ctx, wideParallel(16, 1))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("opts %+v: expected context.Canceled, got %v", opts, err)
		}
	}
}

func TestEvaluateContext_SequentialFallback(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(Options{})
	got, err := ev.EvaluateContext(context.Background(), P())
	if err != nil || !math.IsInf(got, 1) {
		t.Errorf("EvaluateContext(P()) = (%v, %v), want (+Inf, nil)", got, err)
	}
}

func TestEvaluateContext_DepthLimit(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(Options{MaxDepth: 4, ParallelThreshold: 1})
	_, err := ev.EvaluateContext(context.Background(), deepSeries(5))
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("expected ErrDepthExceeded, got %v", err)
	}
}

func BenchmarkEvaluate_Wide(b *testing.B) {
	tree := S(wideParallel(4096, 1000), wideParallel(4096, 2200))
	b.Run("sequential", func(b *testing.B) {
		ev := NewEvaluator(Options{})
		for i := 0; i < b.N; i++ {
			_, _ = ev.Evaluate(tree)
		}
	})
	b.Run("concurrent", func(b *testing.B) {
		ev := NewEvaluator(Options{ParallelThreshold: DefaultParallelThreshold})
		for i := 0; i < b.N; i++ {
			_, _ = ev.EvaluateContext(context.Background(), tree)
		}
	})
}
