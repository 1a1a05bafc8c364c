package netlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/agbru/rescalc/internal/circuit"
)

func decodeJSON(ctx context.Context, r io.Reader, opts Options) (circuit.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("", "empty document")
		}
		return nil, &circuit.MalformedTreeError{Message: "invalid JSON", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("", "unexpected data after the root node")
	}

	b := jsonBuilder{strict: opts.Strict, maxDepth: opts.maxDepth(), budget: newBudget(ctx, opts)}
	return b.node(doc, "", 1)
}

type jsonBuilder struct {
	strict   bool
	maxDepth int
	budget   *budget
}

func (b jsonBuilder) node(v any, path circuit.Path, depth int) (circuit.Node, error) {
	if depth > b.maxDepth {
		return nil, depthExceeded(path, b.maxDepth)
	}
	if err := b.budget.take(path); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, malformed(path, "node must be an object, got %s", jsonKind(v))
	}

	rawType, ok := obj[fieldType]
	if !ok {
		return nil, malformed(path, "missing %q", fieldType)
	}
	tag, ok := rawType.(string)
	if !ok {
		return nil, malformed(path.Field(fieldType), "type must be a string, got %s", jsonKind(rawType))
	}
	kind, err := circuit.ParseKind(tag)
	if err != nil {
		return nil, &circuit.UnknownNodeTypeError{Tag: tag, Path: path}
	}

	if b.strict {
		if err := b.checkFields(obj, kind, path); err != nil {
			return nil, err
		}
	}

	if kind == circuit.KindResistor {
		return b.resistor(obj, path)
	}

	children, err := b.children(obj, path, depth)
	if err != nil {
		return nil, err
	}
	if kind == circuit.KindSeries {
		return circuit.Series{Children: children}, nil
	}
	return circuit.Parallel{Children: children}, nil
}

func (b jsonBuilder) resistor(obj map[string]any, path circuit.Path) (circuit.Node, error) {
	raw, ok := obj[fieldValue]
	if !ok {
		return nil, &circuit.InvalidValueError{Value: nil, Reason: "resistance must be a number", Path: path}
	}
	num, ok := raw.(json.Number)
	if !ok {
		return nil, &circuit.InvalidValueError{Value: raw, Reason: "resistance must be a number", Path: path}
	}
	f, err := num.Float64()
	if err != nil {
		reason := "resistance must be a number"
		if math.IsInf(f, 0) {
			reason = "resistance must be finite"
		}
		return nil, &circuit.InvalidValueError{Value: num, Reason: reason, Path: path}
	}
	return circuit.Resistor{Value: f}, nil
}

func (b jsonBuilder) children(obj map[string]any, path circuit.Path, depth int) ([]circuit.Node, error) {
	raw, ok := obj[fieldChildren]
	if !ok {
		if b.strict {
			return nil, malformed(path, "missing %q", fieldChildren)
		}
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, malformed(path.Field(fieldChildren), "children must be a list, got %s", jsonKind(raw))
	}
	nodes := make([]circuit.Node, len(list))
	for i, item := range list {
		n, err := b.node(item, path.Child(i), depth+1)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func (b jsonBuilder) checkFields(obj map[string]any, kind circuit.Kind, path circuit.Path) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !allowedField(kind, k) {
			return malformed(path, "unexpected field %q for %s node", k, kind.Name())
		}
	}
	return nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
