// Package tui implements the interactive tree explorer of rescalc on top of
// bubbletea. The explorer shows every subtree of a netlist with its own
// equivalent resistance; composites can be expanded and collapsed, and the
// netlist can be reloaded from disk without leaving the program.
package tui
