package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"
)

type testColors struct{}

func (testColors) Red() string    { return "<red>" }
func (testColors) Yellow() string { return "<yellow>" }
func (testColors) Reset() string  { return "</>" }

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	pathErr := &fs.PathError{Op: "open", Path: "missing.json", Err: fs.ErrNotExist}

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitErrorGeneric},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"timeout error", TimeoutError{Operation: "evaluate", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", WrapError(context.Canceled, "evaluation stopped"), ExitErrorCanceled},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", ValidationError{Field: "workers", Message: "must be positive"}, ExitErrorConfig},
		{"netlist", NetlistError{Source: "a.json", Cause: errors.New("bad value")}, ExitErrorInput},
		{"missing file", NetlistError{Source: "a.json", Cause: fmt.Errorf("failed to open netlist: %w", pathErr)}, ExitErrorIO},
		{"deadline inside netlist error", NetlistError{Cause: context.DeadlineExceeded}, ExitErrorTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHandleEvaluationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		duration     time.Duration
		colors       ColorProvider
		expectedCode int
		contains     []string
	}{
		{
			name:         "nil error prints nothing",
			expectedCode: ExitSuccess,
		},
		{
			name:         "timeout reports elapsed time",
			err:          context.DeadlineExceeded,
			duration:     1500 * time.Millisecond,
			expectedCode: ExitErrorTimeout,
			contains:     []string{"Failure (Timeout)", "within the limit", "1.5s elapsed"},
		},
		{
			name:         "timeout error names the limit",
			err:          NetlistError{Source: "big.yaml", Cause: TimeoutError{Operation: "evaluate", Limit: 2 * time.Second}},
			expectedCode: ExitErrorTimeout,
			contains:     []string{"did not finish within 2s."},
		},
		{
			name:         "canceled uses yellow",
			err:          context.Canceled,
			colors:       testColors{},
			expectedCode: ExitErrorCanceled,
			contains:     []string{"<yellow>Status: Canceled by user.</>"},
		},
		{
			name:         "config error",
			err:          NewConfigError("--file is required"),
			expectedCode: ExitErrorConfig,
			contains:     []string{"Configuration error: --file is required"},
		},
		{
			name:         "netlist error in red",
			err:          NetlistError{Source: "bad.json", Cause: errors.New(`unknown node type "C"`)},
			colors:       testColors{},
			expectedCode: ExitErrorInput,
			contains:     []string{`<red>Error: bad.json: unknown node type "C"</>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleEvaluationError(tt.err, tt.duration, &buf, tt.colors)
			if code != tt.expectedCode {
				t.Errorf("expected exit code %d, got %d", tt.expectedCode, code)
			}
			if tt.err == nil && buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q does not contain %q", buf.String(), want)
				}
			}
		})
	}
}
