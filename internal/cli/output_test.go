package cli

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/rescalc/internal/circuit"
)

func sampleResult() Result {
	return Result{
		Source:     "sample.json",
		Format:     "json",
		Resistance: 270,
		Stats:      circuit.Stats{Resistors: 4, Series: 1, Parallels: 1, Depth: 3},
		Duration:   1500 * time.Microsecond,
	}
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		resistance float64
		config     OutputConfig
		contains   []string
		excludes   []string
	}{
		{
			name:       "plain",
			resistance: 270,
			config:     OutputConfig{Precision: 6},
			contains:   []string{"Total resistance: 270 Ω\n"},
			excludes:   []string{"Nodes:"},
		},
		{
			name:       "six significant digits",
			resistance: 1.0 / 3.0,
			config:     OutputConfig{Precision: 6},
			contains:   []string{"Total resistance: 0.333333 Ω"},
		},
		{
			name:       "open circuit",
			resistance: math.Inf(1),
			config:     OutputConfig{Precision: 6, Verbose: true},
			contains:   []string{"Total resistance: inf Ω", "open circuit"},
		},
		{
			name:       "short circuit verbose",
			resistance: 0,
			config:     OutputConfig{Precision: 6, Verbose: true},
			contains:   []string{"Total resistance: 0 Ω", "short-circuited", "Nodes: 6 (4 resistors, 1 series, 1 parallel), depth 3", "Evaluation time: 1ms"},
		},
		{
			name:       "si prefix",
			resistance: 4700,
			config:     OutputConfig{Precision: 6, SI: true},
			contains:   []string{"Total resistance: 4.7 kΩ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := sampleResult()
			res.Resistance = tt.resistance
			var buf bytes.Buffer
			DisplayResult(&buf, res, tt.config)
			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("output should not contain %q, got:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	res := sampleResult()
	if got := FormatQuietResult(res, OutputConfig{Precision: 6}); got != "270" {
		t.Errorf("FormatQuietResult() = %q, want %q", got, "270")
	}
	res.Resistance = 1500
	if got := FormatQuietResult(res, OutputConfig{Precision: 6, SI: true}); got != "1.5 kΩ" {
		t.Errorf("FormatQuietResult(SI) = %q, want %q", got, "1.5 kΩ")
	}
	res.Resistance = math.Inf(1)
	if got := FormatQuietResult(res, OutputConfig{Precision: 6}); got != "inf" {
		t.Errorf("FormatQuietResult(+Inf) = %q, want %q", got, "inf")
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, sampleResult(), OutputConfig{Precision: 6})
	if buf.String() != "270\n" {
		t.Errorf("DisplayQuietResult() = %q, want %q", buf.String(), "270\n")
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write result to file",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				contentStr := string(content)
				for _, want := range []string{"# Source: sample.json", "# Format: json", "# Nodes: 6", "# Depth: 3", "Total resistance: 270 Ω"} {
					if !strings.Contains(contentStr, want) {
						t.Errorf("File should contain %q, got:\n%s", want, contentStr)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := WriteResultToFile(sampleResult(), OutputConfig{OutputFile: tc.outputFile, Precision: 6})
			if err != nil {
				t.Fatalf("WriteResultToFile() error = %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("quiet with file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(tmpDir, "quiet.txt")
		err := DisplayResultWithConfig(&buf, sampleResult(), OutputConfig{Quiet: true, OutputFile: path, Precision: 6})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig() error = %v", err)
		}
		if buf.String() != "270\n" {
			t.Errorf("quiet output = %q, want only the value", buf.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("result file missing: %v", err)
		}
	})

	t.Run("normal with file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(tmpDir, "normal.txt")
		err := DisplayResultWithConfig(&buf, sampleResult(), OutputConfig{OutputFile: path, Precision: 6})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig() error = %v", err)
		}
		if !strings.Contains(buf.String(), "Total resistance: 270 Ω") || !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("unwritable file", func(t *testing.T) {
		var buf bytes.Buffer
		blocker := filepath.Join(tmpDir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		err := DisplayResultWithConfig(&buf, sampleResult(), OutputConfig{OutputFile: filepath.Join(blocker, "out.txt"), Precision: 6})
		if err == nil {
			t.Error("expected an error when the parent path is a file")
		}
	})
}
