package circuit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for matching with errors.Is. Every typed error in this
// package matches exactly one of them.
var (
	ErrInvalidValue    = errors.New("invalid resistance value")
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrMalformedTree   = errors.New("malformed tree")
	ErrDepthExceeded   = errors.New("maximum tree depth exceeded")
)

// Path locates a node inside a tree as a JSONPath-like string relative to the
// root, e.g. ".children[1].children[0]". The empty path is the root.
type Path string

// Child returns the path of the i-th child below p.
func (p Path) Child(i int) Path {
	return p + Path(".children["+strconv.Itoa(i)+"]")
}

// Field returns the path of a named field below p.
func (p Path) Field(name string) Path {
	return p + Path("."+name)
}

// String renders the path with a leading root marker.
func (p Path) String() string { return "$" + string(p) }

// Abbrev renders the path like String, keeping only the first and last keep
// segments when it has more than 2*keep of them.
func (p Path) Abbrev(keep int) string {
	if p == "" || keep < 1 {
		return p.String()
	}
	segs := strings.Split(strings.TrimPrefix(string(p), "."), ".")
	if len(segs) <= 2*keep {
		return p.String()
	}
	head := strings.Join(segs[:keep], ".")
	tail := strings.Join(segs[len(segs)-keep:], ".")
	return fmt.Sprintf("$.%s...(%d more)...%s", head, len(segs)-2*keep, tail)
}

// located is implemented by errors that record where in the tree they
// occurred, so the evaluator can fill in the path on the way up.
type located interface {
	prependPath(p Path)
}

// InvalidValueError reports a resistor value (or raw combiner input) that is
// not a finite, non-negative real number.
type InvalidValueError struct {
	// Value is the offending input as received.
	Value any
	// Reason explains which rule was violated.
	Reason string
	// Path locates the resistor, when known.
	Path Path
}

func (e *InvalidValueError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid resistance %s at %s: %s", describe(e.Value), e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid resistance %s: %s", describe(e.Value), e.Reason)
}

// Is reports whether target is ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

func (e *InvalidValueError) prependPath(p Path) { e.Path = p + e.Path }

// UnknownNodeTypeError reports a node tag outside {R, S, P}.
type UnknownNodeTypeError struct {
	// Tag is the offending type tag.
	Tag  string
	Path Path
}

func (e *UnknownNodeTypeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unknown node type %q at %s", e.Tag, e.Path)
	}
	return fmt.Sprintf("unknown node type %q", e.Tag)
}

// Is reports whether target is ErrUnknownNodeType.
func (e *UnknownNodeTypeError) Is(target error) bool { return target == ErrUnknownNodeType }

func (e *UnknownNodeTypeError) prependPath(p Path) { e.Path = p + e.Path }

// MalformedTreeError reports a structurally invalid tree: a missing type tag,
// a node of the wrong shape, a nil node, or an undecodable document.
type MalformedTreeError struct {
	Path    Path
	Message string
	// Cause is the underlying decoding error, if any.
	Cause error
}

func (e *MalformedTreeError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return fmt.Sprintf("malformed tree at %s: %s", e.Path, msg)
}

// Is reports whether target is ErrMalformedTree.
func (e *MalformedTreeError) Is(target error) bool { return target == ErrMalformedTree }

// Unwrap returns the underlying cause.
func (e *MalformedTreeError) Unwrap() error { return e.Cause }

func (e *MalformedTreeError) prependPath(p Path) { e.Path = p + e.Path }

// depthPathKeep is the number of leading and trailing path segments a depth
// error prints. Such paths are as long as the depth limit.
const depthPathKeep = 4

// DepthExceededError reports a tree nested deeper than the evaluator allows.
type DepthExceededError struct {
	Limit int
	Path  Path
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("tree nesting exceeds maximum depth %d at %s", e.Limit, e.Path.Abbrev(depthPathKeep))
}

// Is reports whether target is ErrDepthExceeded.
func (e *DepthExceededError) Is(target error) bool { return target == ErrDepthExceeded }

func (e *DepthExceededError) prependPath(p Path) { e.Path = p + e.Path }

// withChildPath records that err came from the i-th child.
func withChildPath(err error, i int) error {
	var l located
	if errors.As(err, &l) {
		l.prependPath(Path("").Child(i))
	}
	return err
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
