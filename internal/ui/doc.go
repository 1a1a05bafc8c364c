// Package ui provides theme and color support for the application's user interface.
// It defines the ANSI color schemes used by the CLI and the REPL, and the
// lipgloss palette used by the tree explorer.
package ui
