// Package circuit evaluates the equivalent resistance of series/parallel
// resistor trees.
//
// A tree is built from three node variants: [Resistor] leaves and the
// [Series] and [Parallel] compositions. [Evaluate] walks the tree and reduces
// it to a single float64 in ohms, or returns one of the typed failures
// described in errors.go. Parallel branches are reduced with [CombineParallel]
// semantics: an empty set is an open circuit (+Inf) and any zero-ohm branch
// shorts the whole combination.
//
// The package performs no I/O and no logging. Decoding trees from files is
// the job of the netlist package.
package circuit
