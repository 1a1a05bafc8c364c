package netlist

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the document syntax of a netlist.
type Format string

// Supported formats. FormatAuto picks one from the file extension.
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the values accepted by ParseFormat.
var Formats = []Format{FormatAuto, FormatJSON, FormatYAML}

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", string(FormatAuto):
		return FormatAuto, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown netlist format %q (accepted values: auto, json, yaml)", name)
}

// DetectFormat picks a format from a file name: .yaml and .yml are YAML,
// anything else is JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
