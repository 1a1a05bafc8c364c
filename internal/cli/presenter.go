package cli

import (
	"io"
	"time"

	apperrors "github.com/agbru/rescalc/internal/errors"
	"github.com/agbru/rescalc/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider with the colors of the
// current ui theme.
type CLIColorProvider struct{}

// Verify interface compliance.
var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the sequence restoring the default color.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// HandleError reports an evaluation failure on out with the theme colors
// and returns the matching exit code.
func HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleEvaluationError(err, duration, out, CLIColorProvider{})
}
