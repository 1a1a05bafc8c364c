// Package netlist reads and writes resistor trees.
//
// A netlist document is a nested structure of nodes shaped as
//
//	{"type": "R", "value": 100}
//	{"type": "S", "children": [...]}
//	{"type": "P", "children": [...]}
//
// and may be stored as JSON or YAML. Decoding is strict about types: a
// resistor value must be a number token, never a boolean or a quoted string.
// Range checks (non-negative, finite) are left to the circuit package.
//
// Building a tree is bounded by Options.MaxDepth and Options.MaxNodes. YAML
// aliases are expanded at each reference and count against MaxNodes every
// time. LoadContext and DecodeContext also stop when their context is done.
package netlist
