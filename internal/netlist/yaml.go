package netlist

import (
	"context"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/agbru/rescalc/internal/circuit"
)

// YAML tags accepted for a resistor value.
const (
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
)

func decodeYAML(ctx context.Context, r io.Reader, opts Options) (circuit.Node, error) {
	dec := yaml.NewDecoder(r)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("", "empty document")
		}
		return nil, &circuit.MalformedTreeError{Message: "invalid YAML", Cause: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, malformed("", "netlist must contain a single YAML document")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, malformed("", "empty document")
		}
		root = root.Content[0]
	}

	b := yamlBuilder{strict: opts.Strict, maxDepth: opts.maxDepth(), budget: newBudget(ctx, opts)}
	return b.node(root, "", 1)
}

// yamlBuilder converts a yaml.Node tree. Aliases are expanded on every
// reference, so the budget sees the size of the tree being built rather
// than the size of the document.
type yamlBuilder struct {
	strict   bool
	maxDepth int
	budget   *budget
}

// field is one key/value pair of a YAML mapping.
type field struct {
	key   string
	value *yaml.Node
}

func (b yamlBuilder) node(n *yaml.Node, path circuit.Path, depth int) (circuit.Node, error) {
	if depth > b.maxDepth {
		return nil, depthExceeded(path, b.maxDepth)
	}
	if err := b.budget.take(path); err != nil {
		return nil, err
	}
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		return nil, malformed(path, "node must be a mapping, got %s", yamlKind(n))
	}

	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	order := make([]field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := deref(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, malformed(path, "mapping keys must be scalars")
		}
		fields[key.Value] = n.Content[i+1]
		order = append(order, field{key: key.Value, value: n.Content[i+1]})
	}

	rawType, ok := fields[fieldType]
	if !ok {
		return nil, malformed(path, "missing %q", fieldType)
	}
	rawType = deref(rawType)
	if rawType.Kind != yaml.ScalarNode || rawType.ShortTag() != tagStr {
		return nil, malformed(path.Field(fieldType), "type must be a string, got %s", yamlKind(rawType))
	}
	kind, err := circuit.ParseKind(rawType.Value)
	if err != nil {
		return nil, &circuit.UnknownNodeTypeError{Tag: rawType.Value, Path: path}
	}

	if b.strict {
		for _, f := range order {
			if !allowedField(kind, f.key) {
				return nil, malformed(path, "unexpected field %q for %s node", f.key, kind.Name())
			}
		}
	}

	if kind == circuit.KindResistor {
		return b.resistor(fields[fieldValue], path)
	}

	children, err := b.children(fields, path, depth)
	if err != nil {
		return nil, err
	}
	if kind == circuit.KindSeries {
		return circuit.Series{Children: children}, nil
	}
	return circuit.Parallel{Children: children}, nil
}

func (b yamlBuilder) resistor(n *yaml.Node, path circuit.Path) (circuit.Node, error) {
	if n == nil {
		return nil, &circuit.InvalidValueError{Value: nil, Reason: "resistance must be a number", Path: path}
	}
	n = deref(n)
	if n.Kind != yaml.ScalarNode {
		return nil, &circuit.InvalidValueError{Value: yamlKind(n), Reason: "resistance must be a number", Path: path}
	}
	switch n.ShortTag() {
	case tagInt, tagFloat:
	default:
		return nil, &circuit.InvalidValueError{Value: scalarValue(n), Reason: "resistance must be a number", Path: path}
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return nil, &circuit.InvalidValueError{Value: n.Value, Reason: "resistance must be a number", Path: path}
	}
	return circuit.Resistor{Value: f}, nil
}

func (b yamlBuilder) children(fields map[string]*yaml.Node, path circuit.Path, depth int) ([]circuit.Node, error) {
	raw, ok := fields[fieldChildren]
	if !ok {
		if b.strict {
			return nil, malformed(path, "missing %q", fieldChildren)
		}
		return nil, nil
	}
	raw = deref(raw)
	if raw.Kind != yaml.SequenceNode {
		return nil, malformed(path.Field(fieldChildren), "children must be a list, got %s", yamlKind(raw))
	}
	nodes := make([]circuit.Node, len(raw.Content))
	for i, item := range raw.Content {
		n, err := b.node(item, path.Child(i), depth+1)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// deref follows aliases to the anchored node.
func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// scalarValue returns a scalar in the Go type its tag implies, for error
// reporting.
func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err == nil {
			return v
		}
	case "!!null":
		return nil
	}
	return n.Value
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!bool":
			return "boolean"
		case tagStr:
			return "string"
		case tagInt, tagFloat:
			return "number"
		}
		return "scalar " + n.ShortTag()
	case yaml.DocumentNode:
		return "document"
	}
	return "alias"
}
