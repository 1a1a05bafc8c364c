package circuit

// Subtree is one node of a tree together with its own equivalent resistance.
type Subtree struct {
	Node       Node
	Path       Path
	Depth      int
	Resistance float64
}

// Breakdown evaluates n and returns every subtree in pre-order with its
// resistance. The tree is validated first, so a failure is reported exactly
// as Evaluate reports it and no partial breakdown is returned.
func (e *Evaluator) Breakdown(n Node) ([]Subtree, error) {
	if _, err := e.Evaluate(n); err != nil {
		return nil, err
	}
	var out []Subtree
	collect(n, "", 1, &out)
	return out, nil
}

// Breakdown is Evaluator.Breakdown with default options.
func Breakdown(n Node) ([]Subtree, error) {
	return defaultEvaluator.Breakdown(n)
}

// collect appends n and its descendants to out and returns n's resistance.
// The tree must already be valid.
func collect(n Node, path Path, depth int, out *[]Subtree) float64 {
	n, _ = resolve(n)
	idx := len(*out)
	*out = append(*out, Subtree{Node: n, Path: path, Depth: depth})

	var r float64
	switch v := n.(type) {
	case Resistor:
		r = v.Value
	case Series:
		for i, child := range v.Children {
			r += collect(child, path.Child(i), depth+1, out)
		}
	case Parallel:
		values := make([]float64, len(v.Children))
		for i, child := range v.Children {
			values[i] = collect(child, path.Child(i), depth+1, out)
		}
		r = combineParallel(values)
	}
	(*out)[idx].Resistance = r
	return r
}
