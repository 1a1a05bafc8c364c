package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used to highlight diagnostics.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

// HandleEvaluationError prints a diagnostic for err to out and returns the
// matching exit code. A nil error prints nothing and returns ExitSuccess.
//
// Parameters:
//   - err: The error returned by loading or evaluating a netlist.
//   - duration: Time spent before the failure, reported for timeouts.
//   - out: The writer receiving the diagnostic, usually stderr.
//   - colors: The color scheme, or nil for plain output.
//
// Returns:
//   - int: The process exit code.
func HandleEvaluationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = plainColors{}
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		limit := "the limit"
		var timeoutErr TimeoutError
		if errors.As(err, &timeoutErr) && timeoutErr.Limit > 0 {
			limit = timeoutErr.Limit.String()
		}
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The evaluation did not finish within %s", colors.Red(), limit)
		if duration > 0 {
			fmt.Fprintf(out, " (%s elapsed)", duration)
		}
		fmt.Fprintf(out, ".%s\n", colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user.%s\n", colors.Yellow(), colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
