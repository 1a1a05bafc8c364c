package netlist

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/agbru/rescalc/internal/circuit"
)

// Options configures decoding.
type Options struct {
	// Format forces a syntax. FormatAuto (or empty) detects it from the file
	// name in Load and means JSON in Decode.
	Format Format
	// Strict rejects composites without a "children" field and nodes with
	// fields that do not belong to their type.
	Strict bool
	// MaxDepth bounds document nesting, counting the root as 1. Zero selects
	// circuit.DefaultMaxDepth.
	MaxDepth int
	// MaxNodes bounds the number of nodes the document expands to, counting
	// every YAML alias reference as a full copy of its anchor. Zero selects
	// DefaultMaxNodes.
	MaxNodes int
}

// DefaultMaxNodes is the node budget used when Options.MaxNodes is zero.
const DefaultMaxNodes = 1 << 20

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return circuit.DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) maxNodes() int {
	if o.MaxNodes <= 0 {
		return DefaultMaxNodes
	}
	return o.MaxNodes
}

// Load reads the netlist stored at path.
func Load(path string, opts Options) (circuit.Node, error) {
	return LoadContext(context.Background(), path, opts)
}

// LoadContext is like Load but stops building the tree once ctx is done,
// returning the context error.
func LoadContext(ctx context.Context, path string, opts Options) (circuit.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open netlist: %w", err)
	}
	defer f.Close()

	if opts.Format == "" || opts.Format == FormatAuto {
		opts.Format = DetectFormat(path)
	}
	return DecodeContext(ctx, f, opts)
}

// Decode reads a single netlist document from r.
func Decode(r io.Reader, opts Options) (circuit.Node, error) {
	return DecodeContext(context.Background(), r, opts)
}

// DecodeContext is like Decode but stops building the tree once ctx is
// done, returning the context error.
func DecodeContext(ctx context.Context, r io.Reader, opts Options) (circuit.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatYAML:
		return decodeYAML(ctx, r, opts)
	case FormatJSON, FormatAuto, "":
		return decodeJSON(ctx, r, opts)
	}
	return nil, fmt.Errorf("unknown netlist format %q", opts.Format)
}

// Field names of a netlist node.
const (
	fieldType     = "type"
	fieldValue    = "value"
	fieldChildren = "children"
)

func malformed(path circuit.Path, format string, args ...any) error {
	return &circuit.MalformedTreeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

func depthExceeded(path circuit.Path, limit int) error {
	return &circuit.DepthExceededError{Limit: limit, Path: path}
}

// ctxPollInterval is the number of nodes built between context checks.
const ctxPollInterval = 256

// budget counts the nodes built from one document.
type budget struct {
	ctx   context.Context
	limit int
	nodes int
}

func newBudget(ctx context.Context, opts Options) *budget {
	return &budget{ctx: ctx, limit: opts.maxNodes()}
}

// take accounts for one more node at path.
func (b *budget) take(path circuit.Path) error {
	if b.nodes%ctxPollInterval == 0 {
		if err := b.ctx.Err(); err != nil {
			return err
		}
	}
	b.nodes++
	if b.nodes > b.limit {
		return malformed(path, "netlist expands to more than %d nodes", b.limit)
	}
	return nil
}

// allowedField reports whether a field belongs to a node of kind k.
func allowedField(k circuit.Kind, field string) bool {
	switch field {
	case fieldType:
		return true
	case fieldValue:
		return k == circuit.KindResistor
	case fieldChildren:
		return k != circuit.KindResistor
	}
	return false
}
