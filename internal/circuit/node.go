package circuit

// Kind identifies a node variant. Its string form is the tag used by netlist
// documents ("R", "S", "P").
type Kind string

// Node kinds.
const (
	KindResistor Kind = "R"
	KindSeries   Kind = "S"
	KindParallel Kind = "P"
)

// String returns the netlist tag of the kind.
func (k Kind) String() string { return string(k) }

// Name returns a human-readable name for the kind.
func (k Kind) Name() string {
	switch k {
	case KindResistor:
		return "resistor"
	case KindSeries:
		return "series"
	case KindParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// ParseKind maps a netlist tag to a Kind. Unknown tags yield an
// *UnknownNodeTypeError.
func ParseKind(tag string) (Kind, error) {
	switch k := Kind(tag); k {
	case KindResistor, KindSeries, KindParallel:
		return k, nil
	default:
		return "", &UnknownNodeTypeError{Tag: tag}
	}
}

// Node is a resistor tree. The set of implementations is closed: only
// Resistor, Series and Parallel satisfy it.
type Node interface {
	Kind() Kind
	node()
}

// Resistor is a leaf with a resistance in ohms.
type Resistor struct {
	Value float64
}

// Series is a chain of sub-networks; resistances add.
type Series struct {
	Children []Node
}

// Parallel is a set of sub-networks sharing both terminals; conductances add.
type Parallel struct {
	Children []Node
}

func (Resistor) Kind() Kind { return KindResistor }
func (Series) Kind() Kind   { return KindSeries }
func (Parallel) Kind() Kind { return KindParallel }

func (Resistor) node() {}
func (Series) node()   {}
func (Parallel) node() {}

// R builds a Resistor.
func R(value float64) Resistor { return Resistor{Value: value} }

// S builds a Series from its children.
func S(children ...Node) Series { return Series{Children: children} }

// P builds a Parallel from its children.
func P(children ...Node) Parallel { return Parallel{Children: children} }

// Children returns the direct children of n. Leaves and nil have none.
func Children(n Node) []Node {
	switch v := n.(type) {
	case Series:
		return v.Children
	case *Series:
		return v.Children
	case Parallel:
		return v.Children
	case *Parallel:
		return v.Children
	default:
		return nil
	}
}
