package circuit_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/rescalc/internal/circuit"
)

// ExampleEvaluate computes 100 Ω in series with (200 Ω || 300 Ω) and 50 Ω.
func ExampleEvaluate() {
	tree := circuit.S(
		circuit.R(100),
		circuit.P(circuit.R(200), circuit.R(300)),
		circuit.R(50),
	)
	total, err := circuit.Evaluate(tree)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%.6g\n", total)
	// Output:
	// 270
}

// ExampleCombineParallel shows the reciprocal rule and its two edge cases.
func ExampleCombineParallel() {
	pair, _ := circuit.CombineParallel(100, 300)
	open, _ := circuit.CombineParallel()
	short, _ := circuit.CombineParallel(0, 999)
	fmt.Printf("%.6g %v %v\n", pair, open, short)
	// Output:
	// 75 +Inf 0
}

// ExampleEvaluate_invalid shows how a bad leaf is reported.
func ExampleEvaluate_invalid() {
	_, err := circuit.Evaluate(circuit.S(circuit.R(10), circuit.R(-5)))
	fmt.Println(errors.Is(err, circuit.ErrInvalidValue))
	fmt.Println(err)
	// Output:
	// true
	// invalid resistance -5 at $.children[1]: resistance must be non-negative
}

// ExampleEvaluator_EvaluateContext evaluates wide composites concurrently.
func ExampleEvaluator_EvaluateContext() {
	branches := make([]circuit.Node, 100)
	for i := range branches {
		branches[i] = circuit.R(10e3)
	}
	ev := circuit.NewEvaluator(circuit.Options{ParallelThreshold: 16})
	total, err := ev.EvaluateContext(context.Background(), circuit.P(branches...))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%.6g\n", total)
	// Output:
	// 100
}
