package circuit

import "math"

// combineParallel reduces already-validated resistances with the
// reciprocal-sum rule. An empty set is an open circuit and a zero-ohm branch
// shorts the combination; the scan stops at the first zero.
func combineParallel(values []float64) float64 {
	switch len(values) {
	case 0:
		return math.Inf(1)
	case 1:
		return positiveZero(values[0])
	}
	var conductance float64
	for _, v := range values {
		if v == 0 {
			return 0
		}
		conductance += 1 / v
	}
	return 1 / conductance
}

// CombineParallel returns the equivalent resistance of values connected in
// parallel. Every value is checked with the same rule as a resistor leaf
// before anything is combined.
func CombineParallel(values ...float64) (float64, error) {
	for _, v := range values {
		if err := CheckValue(v); err != nil {
			return 0, err
		}
	}
	return combineParallel(values), nil
}

// CombineParallelRaw is CombineParallel for untyped inputs, such as values
// decoded from a document. Non-numeric inputs, booleans included, fail with
// an *InvalidValueError.
func CombineParallelRaw(values ...any) (float64, error) {
	checked := make([]float64, len(values))
	for i, v := range values {
		f, err := ToResistance(v)
		if err != nil {
			return 0, err
		}
		checked[i] = f
	}
	return combineParallel(checked), nil
}

// CombineSeries returns the equivalent resistance of values connected in
// series, checking each value first.
func CombineSeries(values ...float64) (float64, error) {
	var total float64
	for _, v := range values {
		if err := CheckValue(v); err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
