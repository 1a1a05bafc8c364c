//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// SpinnerRefreshRate defines the refresh frequency of the spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows WithSpinner to be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// isTerminal is replaced in tests.
var isTerminal = IsTerminal

// IsTerminal reports whether w is a file attached to a terminal (including
// Cygwin/MSYS pseudo terminals).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WithSpinner runs fn while a spinner labelled message animates on out. The
// spinner is only shown when out is a terminal; otherwise fn simply runs.
//
// Parameters:
//   - out: The writer the spinner is drawn on.
//   - message: The text shown next to the spinner.
//   - fn: The work to perform.
//
// Returns:
//   - error: The error returned by fn.
func WithSpinner(out io.Writer, message string, fn func() error) error {
	if !isTerminal(out) {
		return fn()
	}
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + message)
	s.Start()
	defer s.Stop()
	return fn()
}
