package extract

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "and", Normalize("  AND \t"))
	assert.Equal(t, "<>", Normalize(" <> "))
	assert.Equal(t, "", Normalize("   "))
}

func TestIsLogicalOperator(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"and", true},
		{"AND", true},
		{" Or ", true},
		{"xor", false},
		{"&&", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLogicalOperator(tt.token))
		})
	}
}

func TestIsArithmeticOperator(t *testing.T) {
	for _, op := range []string{"+", "-", "*", "/", "%", " + "} {
		assert.True(t, IsArithmeticOperator(op), op)
	}
	for _, op := range []string{"^", "div", "||", "="} {
		assert.False(t, IsArithmeticOperator(op), op)
	}
}

func TestIsComparisonOperator(t *testing.T) {
	for _, op := range []string{">", "<", "=", "!=", ">=", "<=", "!<", "!>", "<>"} {
		assert.True(t, IsComparisonOperator(op), op)
	}
	assert.False(t, IsComparisonOperator("like"))
	assert.True(t, IsComparisonOperator("LIKE", "like"))
	assert.True(t, IsComparisonOperator("like", " LIKE "), "extra operators are normalized too")
	assert.True(t, IsComparisonOperator(" = ", "in"))
	assert.False(t, IsComparisonOperator("between", "like", "in"))
}

// Classification must not change when the input is normalized first.
func TestClassifiersIdempotent(t *testing.T) {
	tokens := []string{"AND", " or ", "Cross", "NATURAL", " <> ", "%", "Like", "", "inner"}
	for _, tok := range tokens {
		n := Normalize(tok)
		assert.Equal(t, n, Normalize(n), "Normalize(%q)", tok)
		assert.Equal(t, IsLogicalOperator(tok), IsLogicalOperator(n), tok)
		assert.Equal(t, IsArithmeticOperator(tok), IsArithmeticOperator(n), tok)
		assert.Equal(t, IsComparisonOperator(tok, "like"), IsComparisonOperator(n, "like"), tok)
		assert.Equal(t, ValidJoin(tok), ValidJoin(n), tok)
		assert.Equal(t, HandledJoinType(tok), HandledJoinType(n), tok)
	}
}

func TestIsAlias(t *testing.T) {
	assert.False(t, IsAlias(nil))
	assert.False(t, IsAlias(&node.Node{ExprType: node.ExprColRef, BaseExpr: "a"}))
	assert.False(t, IsAlias(&node.Node{ExprType: node.ExprColRef, BaseExpr: "a", Alias: &node.Alias{None: true}}))
	assert.True(t, IsAlias(&node.Node{ExprType: node.ExprColRef, BaseExpr: "a", Alias: &node.Alias{Name: "x", BaseExpr: "AS x"}}))
}

func TestJoinTypes(t *testing.T) {
	assert.False(t, ValidJoin("NATURAL"))
	assert.False(t, ValidJoin(" natural "))
	assert.True(t, ValidJoin("inner"))
	assert.True(t, ValidJoin("LEFT"))
	assert.True(t, ValidJoin("JOIN"))

	assert.True(t, HandledJoinType("CROSS"))
	assert.True(t, HandledJoinType("cross"))
	assert.False(t, HandledJoinType("inner"))
	assert.False(t, HandledJoinType("natural"))
}

func TestCheckJoin(t *testing.T) {
	require.NoError(t, CheckJoin("left"))

	err := CheckJoin("Natural")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedJoinType))

	var joinErr *UnsupportedJoinTypeError
	require.ErrorAs(t, err, &joinErr)
	assert.Equal(t, "Natural", joinErr.JoinType)
	assert.Contains(t, err.Error(), "Natural")
}

func TestIsSingleTable(t *testing.T) {
	users := &node.Node{ExprType: node.ExprTable, Table: "users", BaseExpr: "users"}
	orders := &node.Node{ExprType: node.ExprTable, Table: "orders", BaseExpr: "orders", JoinType: "JOIN"}
	sub := &node.Node{ExprType: node.ExprSubquery, BaseExpr: "SELECT 1"}

	tests := []struct {
		name string
		stmt *node.Statement
		want bool
	}{
		{name: "nil statement", stmt: nil, want: false},
		{name: "no from", stmt: &node.Statement{}, want: false},
		{name: "single table", stmt: &node.Statement{From: []*node.Node{users}}, want: true},
		{name: "two tables", stmt: &node.Statement{From: []*node.Node{users, orders}}, want: false},
		{name: "single subquery", stmt: &node.Statement{From: []*node.Node{sub}}, want: false},
		{name: "nil entry", stmt: &node.Statement{From: []*node.Node{nil}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSingleTable(tt.stmt))
		})
	}
}
