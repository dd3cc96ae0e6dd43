package extract

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionParams(t *testing.T) {
	bracket := &node.Node{
		ExprType: node.ExprBracket,
		BaseExpr: "(x + y)",
		SubTree:  []*node.Node{col("x"), {ExprType: node.ExprOperator, BaseExpr: "+"}, col("y")},
	}

	tests := []struct {
		name     string
		node     *node.Node
		expected string
	}{
		{
			name:     "flat arguments",
			node:     fn("F", col("a"), lit("1")),
			expected: "a,1",
		},
		{
			name:     "nested call is flattened",
			node:     fn("F", col("a"), fn("b", col("c"))),
			expected: "a,b,c",
		},
		{
			name:     "nested call followed by more arguments",
			node:     fn("F", fn("b", col("c")), col("d")),
			expected: "b,c,d",
		},
		{
			name:     "bracket expression is atomic",
			node:     fn("F", col("a"), bracket),
			expected: "a,(x + y)",
		},
		{
			name:     "deep nesting",
			node:     fn("F", fn("g", fn("h", col("a"), col("b")))),
			expected: "g,h,a,b",
		},
		{
			name:     "container with zero children",
			node:     fn("NOW"),
			expected: "",
		},
	}

	e := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.FunctionParams(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCollectParams_Accumulator(t *testing.T) {
	e := newTestExtractor(t)

	got, err := e.CollectParams(col("a"), "prefix")
	require.NoError(t, err)
	assert.Equal(t, "prefix", got, "a node without sub-tree returns the accumulator unchanged")

	got, err = e.CollectParams(fn("F", col("a"), col("b")), "x,")
	require.NoError(t, err)
	assert.Equal(t, "x,a,b", got)
}

func TestCollectParams_Errors(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.FunctionParams(nil)
	assert.True(t, errors.Is(err, ErrMalformedNode))

	_, err = e.FunctionParams(fn("F", col("a"), fn("g", nil)))
	assert.True(t, errors.Is(err, ErrMalformedNode))
}
