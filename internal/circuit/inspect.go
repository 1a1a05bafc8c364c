package circuit

// Stats summarizes the shape of a tree.
type Stats struct {
	Resistors int
	Series    int
	Parallels int
	// Depth is the deepest nesting level, counting the root as 1.
	Depth int
}

// Nodes returns the total number of nodes.
func (s Stats) Nodes() int { return s.Resistors + s.Series + s.Parallels }

// WalkFunc is called for every node visited by Walk. Returning false skips
// the node's children.
type WalkFunc func(n Node, path Path, depth int) bool

// Walk visits n and its descendants in pre-order. Nil nodes are skipped.
func Walk(n Node, fn WalkFunc) {
	walk(n, "", 1, fn)
}

func walk(n Node, path Path, depth int, fn WalkFunc) {
	n, err := resolve(n)
	if err != nil {
		return
	}
	if !fn(n, path, depth) {
		return
	}
	for i, child := range Children(n) {
		walk(child, path.Child(i), depth+1, fn)
	}
}

// Inspect counts the nodes of each kind in n and measures its depth.
func Inspect(n Node) Stats {
	var s Stats
	Walk(n, func(n Node, _ Path, depth int) bool {
		switch n.Kind() {
		case KindResistor:
			s.Resistors++
		case KindSeries:
			s.Series++
		case KindParallel:
			s.Parallels++
		}
		if depth > s.Depth {
			s.Depth = depth
		}
		return true
	})
	return s
}
