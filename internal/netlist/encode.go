package netlist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agbru/rescalc/internal/circuit"
)

// wireNode is the document shape of a node. Composites always carry a
// children list so the output also loads in strict mode.
type wireNode struct {
	Type     string      `json:"type"`
	Value    *float64    `json:"value,omitempty"`
	Children *[]wireNode `json:"children,omitempty"`
}

// ToWire converts a tree to its document shape, suitable for embedding in a
// larger JSON document. Nil nodes are rejected.
func ToWire(n circuit.Node) (any, error) {
	w, err := toWire(n, "")
	if err != nil {
		return nil, err
	}
	return w, nil
}

func toWire(n circuit.Node, path circuit.Path) (wireNode, error) {
	switch v := n.(type) {
	case circuit.Resistor:
		value := v.Value
		return wireNode{Type: circuit.KindResistor.String(), Value: &value}, nil
	case *circuit.Resistor:
		if v != nil {
			return toWire(*v, path)
		}
	case circuit.Series:
		return composite(circuit.KindSeries, v.Children, path)
	case *circuit.Series:
		if v != nil {
			return toWire(*v, path)
		}
	case circuit.Parallel:
		return composite(circuit.KindParallel, v.Children, path)
	case *circuit.Parallel:
		if v != nil {
			return toWire(*v, path)
		}
	}
	return wireNode{}, malformed(path, "missing node")
}

func composite(kind circuit.Kind, children []circuit.Node, path circuit.Path) (wireNode, error) {
	list := make([]wireNode, len(children))
	for i, child := range children {
		w, err := toWire(child, path.Child(i))
		if err != nil {
			return wireNode{}, err
		}
		list[i] = w
	}
	return wireNode{Type: kind.String(), Children: &list}, nil
}

// Encode writes n to w as an indented JSON netlist.
func Encode(w io.Writer, n circuit.Node) error {
	doc, err := toWire(n, "")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode netlist: %w", err)
	}
	return nil
}
