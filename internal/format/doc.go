// Package format renders resistances and durations for display. It has no
// dependency on the presentation packages so that the CLI, the REPL and the
// TUI print values identically.
package format
