package circuit

import (
	"encoding/json"
	"math"
)

// CheckValue validates a resistance that is already known to be a number.
// It must be finite and non-negative.
func CheckValue(v float64) error {
	switch {
	case math.IsNaN(v):
		return &InvalidValueError{Value: v, Reason: "resistance must be a number"}
	case math.IsInf(v, 0):
		return &InvalidValueError{Value: v, Reason: "resistance must be finite"}
	case v < 0:
		return &InvalidValueError{Value: v, Reason: "resistance must be non-negative"}
	}
	return nil
}

// positiveZero maps -0 to 0 and leaves every other value unchanged.
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// ToResistance converts a raw, untyped value into a checked resistance.
// Only genuine numeric types are accepted: booleans, strings and nil are
// rejected without any attempt at coercion.
func ToResistance(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			if math.IsInf(parsed, 0) {
				return 0, &InvalidValueError{Value: v, Reason: "resistance must be finite"}
			}
			return 0, &InvalidValueError{Value: v, Reason: "resistance must be a number"}
		}
		f = parsed
	default:
		return 0, &InvalidValueError{Value: v, Reason: "resistance must be a number"}
	}
	if err := CheckValue(f); err != nil {
		return 0, &InvalidValueError{Value: v, Reason: err.(*InvalidValueError).Reason}
	}
	return f, nil
}
