package format

import (
	"math"
	"strconv"
)

// Ohm is the unit symbol appended to displayed resistances.
const Ohm = "Ω"

// DefaultDigits is the number of significant digits used for results.
const DefaultDigits = 6

// siPrefixes maps an exponent step (value / 1000^i, i = -4..4) to its prefix.
var siPrefixes = []string{"p", "n", "µ", "m", "", "k", "M", "G", "T"}

// FormatResistance renders v with the given number of significant digits
// using the shortest of fixed and exponent notation, with trailing zeros
// removed. Positive infinity (an open circuit) renders as "inf".
//
// Parameters:
//   - v: The resistance in ohms.
//   - digits: Significant digits; values below 1 select DefaultDigits.
//
// Returns:
//   - string: The formatted number, without unit.
func FormatResistance(v float64, digits int) string {
	if digits < 1 {
		digits = DefaultDigits
	}
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', digits, 64)
}

// FormatOhms is FormatResistance followed by the unit: "270 Ω", "inf Ω".
func FormatOhms(v float64, digits int) string {
	return FormatResistance(v, digits) + " " + Ohm
}

// FormatResistanceSI renders v scaled to an engineering prefix between
// pico and tera, for example "4.7 kΩ" or "1.5 MΩ". Zero and infinity are
// printed unscaled.
func FormatResistanceSI(v float64, digits int) string {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return FormatOhms(v, digits)
	}

	step := int(math.Floor(math.Log10(math.Abs(v)) / 3))
	step = clampStep(step)
	s, scaled := scaleTo(v, step, digits)
	// Rounding may carry into the next prefix (999999.9 -> "1000 k").
	if math.Abs(scaled) >= 1000 && step < len(siPrefixes)/2 {
		s, _ = scaleTo(v, step+1, digits)
		step++
	}
	return s + " " + siPrefixes[step+len(siPrefixes)/2] + Ohm
}

func clampStep(step int) int {
	half := len(siPrefixes) / 2
	if step < -half {
		return -half
	}
	if step > half {
		return half
	}
	return step
}

func scaleTo(v float64, step, digits int) (string, float64) {
	scaled := v / math.Pow(1000, float64(step))
	s := FormatResistance(scaled, digits)
	rounded, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s, scaled
	}
	return s, rounded
}
