package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name     string
		expected string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.expected {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestInitTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Run("no-color flag", func(t *testing.T) {
		InitTheme(true)
		if ColorRed() != "" || ColorReset() != "" {
			t.Error("colors should be empty with --no-color")
		}
	})

	t.Run("NO_COLOR environment", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("NO_COLOR should disable colors, got theme %q", GetCurrentTheme().Name)
		}
	})

	t.Run("light theme from environment", func(t *testing.T) {
		t.Setenv("RESCALC_THEME", "light")
		InitTheme(false)
		if GetCurrentTheme().Name != "light" {
			t.Errorf("expected light theme, got %q", GetCurrentTheme().Name)
		}
	})
}

func TestColorFunctions(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(DarkTheme)
	checks := map[string]struct{ got, want string }{
		"red":       {ColorRed(), DarkTheme.Error},
		"green":     {ColorGreen(), DarkTheme.Success},
		"yellow":    {ColorYellow(), DarkTheme.Warning},
		"blue":      {ColorBlue(), DarkTheme.Primary},
		"magenta":   {ColorMagenta(), DarkTheme.Info},
		"dim":       {ColorDim(), DarkTheme.Secondary},
		"bold":      {ColorBold(), "\033[1m"},
		"underline": {ColorUnderline(), "\033[4m"},
		"reset":     {ColorReset(), "\033[0m"},
	}
	for name, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", name, c.got, c.want)
		}
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(NoColorTheme)
	if _, ok := GetCurrentTUITheme().Resistor.(lipgloss.NoColor); !ok {
		t.Error("NoColorTheme should map to NoColorTUITheme")
	}
	SetCurrentTheme(DarkTheme)
	if GetCurrentTUITheme().Resistor != DarkTUITheme.Resistor {
		t.Error("DarkTheme should map to DarkTUITheme")
	}
}
