package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/rescalc/internal/circuit"
)

func TestDecodeYAML_Shapes(t *testing.T) {
	t.Parallel()
	tree, err := decodeString(t, `
type: S
children:
  - {type: R, value: 10}
  - {type: R, value: 2.5e1}
  - type: P
`, Options{Format: FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, circuit.S(circuit.R(10), circuit.R(25), circuit.Parallel{}), tree)
}

func TestDecodeYAML_Aliases(t *testing.T) {
	t.Parallel()
	tree, err := decodeString(t, `
type: P
children:
  - &leaf {type: R, value: 100}
  - *leaf
`, Options{Format: FormatYAML})
	require.NoError(t, err)

	total, err := circuit.Evaluate(tree)
	require.NoError(t, err)
	assert.InDelta(t, 50, total, 1e-9)
}

func TestDecodeYAML_Failures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		doc      string
		opts     Options
		sentinel error
		contains string
	}{
		{"boolean value", "type: R\nvalue: true\n", Options{}, circuit.ErrInvalidValue, "invalid resistance true"},
		{"quoted number", "type: R\nvalue: \"100\"\n", Options{}, circuit.ErrInvalidValue, `"100"`},
		{"null value", "type: R\nvalue: ~\n", Options{}, circuit.ErrInvalidValue, "null"},
		{"missing value", "type: R\n", Options{}, circuit.ErrInvalidValue, "must be a number"},
		{"mapping value", "type: R\nvalue: {a: 1}\n", Options{}, circuit.ErrInvalidValue, "must be a number"},
		{"unknown tag", "type: X\n", Options{}, circuit.ErrUnknownNodeType, `"X"`},
		{"numeric tag", "type: 1\n", Options{}, circuit.ErrMalformedTree, "type must be a string"},
		{"missing type", "children: []\n", Options{}, circuit.ErrMalformedTree, `missing "type"`},
		{"scalar node", "- 1\n- 2\n", Options{}, circuit.ErrMalformedTree, "node must be a mapping, got list"},
		{"children mapping", "type: S\nchildren: {type: R}\n", Options{}, circuit.ErrMalformedTree, "children must be a list"},
		{"invalid yaml", "type: [\n", Options{}, circuit.ErrMalformedTree, "invalid YAML"},
		{"empty document", "", Options{}, circuit.ErrMalformedTree, "empty document"},
		{"two documents", "type: S\n---\ntype: P\n", Options{}, circuit.ErrMalformedTree, "single YAML document"},
		{"strict missing children", "type: P\n", Options{Strict: true}, circuit.ErrMalformedTree, `missing "children"`},
		{"strict unknown field", "type: R\nvalue: 1\nunit: ohm\n", Options{Strict: true}, circuit.ErrMalformedTree, `unexpected field "unit"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := tt.opts
			opts.Format = FormatYAML
			tree, err := decodeString(t, tt.doc, opts)
			require.Error(t, err, "decoded %#v", tree)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestDecodeYAML_InfinityReachesEvaluator(t *testing.T) {
	t.Parallel()
	tree, err := decodeString(t, "type: R\nvalue: .inf\n", Options{Format: FormatYAML})
	require.NoError(t, err)

	_, err = circuit.Evaluate(tree)
	assert.ErrorIs(t, err, circuit.ErrInvalidValue)
}
