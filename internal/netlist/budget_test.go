package netlist

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/rescalc/internal/circuit"
)

// nestedAliases returns a YAML netlist of about 40 bytes per level whose
// tree doubles in size with every level: each anchor is a parallel pair of
// references to the previous one.
func nestedAliases(levels int) string {
	var b strings.Builder
	b.WriteString("type: S\ndefs:\n  a0: &a0 {type: R, value: 1}\n")
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&b, "  a%d: &a%d {type: P, children: [*a%d, *a%d]}\n", i, i, i-1, i-1)
	}
	fmt.Fprintf(&b, "children: [*a%d]\n", levels)
	return b.String()
}

func TestDecodeYAML_AliasExpansionHitsDefaultBudget(t *testing.T) {
	t.Parallel()
	doc := nestedAliases(24)
	require.Less(t, len(doc), 1200)

	start := time.Now()
	tree, err := decodeString(t, doc, Options{Format: FormatYAML})
	require.ErrorIs(t, err, circuit.ErrMalformedTree)
	assert.Nil(t, tree)
	assert.Contains(t, err.Error(), fmt.Sprintf("more than %d nodes", DefaultMaxNodes))
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestDecodeYAML_NodeBudget(t *testing.T) {
	t.Parallel()
	// Root, then 2^(levels+1)-1 nodes below it.
	doc := nestedAliases(4)

	_, err := decodeString(t, doc, Options{Format: FormatYAML, MaxNodes: 32})
	require.NoError(t, err)

	_, err = decodeString(t, doc, Options{Format: FormatYAML, MaxNodes: 31})
	require.ErrorIs(t, err, circuit.ErrMalformedTree)
	assert.Contains(t, err.Error(), "more than 31 nodes")
}

func TestDecodeJSON_NodeBudget(t *testing.T) {
	t.Parallel()
	doc := `{"type":"S","children":[{"type":"R","value":1},{"type":"R","value":2},{"type":"R","value":3}]}`

	tree, err := decodeString(t, doc, Options{MaxNodes: 4})
	require.NoError(t, err)
	assert.Equal(t, circuit.S(circuit.R(1), circuit.R(2), circuit.R(3)), tree)

	_, err = decodeString(t, doc, Options{MaxNodes: 3})
	require.ErrorIs(t, err, circuit.ErrMalformedTree)
	assert.Contains(t, err.Error(), "$.children[2]")
}

func TestOptions_MaxNodesDefault(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultMaxNodes, Options{}.maxNodes())
	assert.Equal(t, DefaultMaxNodes, Options{MaxNodes: -1}.maxNodes())
	assert.Equal(t, 10, Options{MaxNodes: 10}.maxNodes())
}

func TestDecodeContext_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, format := range []Format{FormatJSON, FormatYAML} {
		tree, err := DecodeContext(ctx, strings.NewReader(`{"type": "R", "value": 1}`), Options{Format: format})
		require.ErrorIs(t, err, context.Canceled, "format %s", format)
		assert.Nil(t, tree)
	}
}

func TestDecodeContext_DeadlineStopsExpansion(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := DecodeContext(ctx, strings.NewReader(nestedAliases(30)), Options{Format: FormatYAML, MaxNodes: math.MaxInt})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestLoadContext_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadContext(ctx, "../../testdata/netlists/series_parallel.json", Options{})
	require.ErrorIs(t, err, context.Canceled)
}
