package format

import (
	"math"
	"testing"
	"time"
)

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0ns"},
		{500 * time.Nanosecond, "500ns"},
		{time.Microsecond, "1.0µs"},
		{4200 * time.Nanosecond, "4.2µs"},
		{10 * time.Microsecond, "10µs"},
		{999 * time.Microsecond, "999µs"},
		{10 * time.Millisecond, "10ms"},
		{1500 * time.Microsecond, "1ms"},
		{2 * time.Second, "2s"},
		{2345678 * time.Microsecond, "2.346s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

// TestFormatResistance verifies the six-significant-digit rendering.
func TestFormatResistance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		v        float64
		digits   int
		expected string
	}{
		{"integer", 270, 6, "270"},
		{"zero", 0, 6, "0"},
		{"fraction", 75.00000000000001, 6, "75"},
		{"third", 1.0 / 3.0, 6, "0.333333"},
		{"large", 1234567, 6, "1.23457e+06"},
		{"small", 0.00001, 6, "1e-05"},
		{"open circuit", math.Inf(1), 6, "inf"},
		{"default digits", 2.0 / 3.0, 0, "0.666667"},
		{"more digits", 1.0 / 3.0, 9, "0.333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatResistance(tt.v, tt.digits); got != tt.expected {
				t.Errorf("FormatResistance(%v, %d) = %q; want %q", tt.v, tt.digits, got, tt.expected)
			}
		})
	}
}

func TestFormatOhms(t *testing.T) {
	t.Parallel()
	if got := FormatOhms(270, 6); got != "270 Ω" {
		t.Errorf("FormatOhms(270) = %q", got)
	}
	if got := FormatOhms(math.Inf(1), 6); got != "inf Ω" {
		t.Errorf("FormatOhms(+Inf) = %q", got)
	}
}

// TestFormatResistanceSI verifies engineering prefixes.
func TestFormatResistanceSI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v        float64
		expected string
	}{
		{270, "270 Ω"},
		{1500, "1.5 kΩ"},
		{4.7e6, "4.7 MΩ"},
		{0.25, "250 mΩ"},
		{1e-13, "0.1 pΩ"},
		{2e15, "2000 TΩ"},
		{999999.9999, "1 MΩ"},
		{0, "0 Ω"},
		{math.Inf(1), "inf Ω"},
	}

	for _, tt := range tests {
		if got := FormatResistanceSI(tt.v, 6); got != tt.expected {
			t.Errorf("FormatResistanceSI(%v) = %q; want %q", tt.v, got, tt.expected)
		}
	}
}
