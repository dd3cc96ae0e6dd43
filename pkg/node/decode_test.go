package node

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestDecodeStatement(t *testing.T) {
	for _, name := range []string{"select_stmt.json", "select_stmt.yaml"} {
		t.Run(name, func(t *testing.T) {
			stmt, err := DecodeStatement(openFixture(t, name), FormatFromPath(name))
			require.NoError(t, err)

			require.Len(t, stmt.Select, 2)
			count := stmt.Select[0]
			assert.Equal(t, ExprAggregateFunction, count.ExprType)
			assert.Equal(t, "COUNT", count.BaseExpr)
			require.NotNil(t, count.Alias)
			assert.False(t, count.Alias.None)
			assert.True(t, count.Alias.As)
			assert.Equal(t, "total", count.Alias.Name)
			assert.Equal(t, "as total", count.Alias.BaseExpr)
			require.NotNil(t, count.Delim)
			assert.Equal(t, ",", *count.Delim)
			require.Len(t, count.SubTree, 1)
			assert.Equal(t, ExprColRef, count.SubTree[0].ExprType)
			assert.False(t, count.SubTree[0].IsContainer())
			assert.Nil(t, count.SubTree[0].Alias, "absent alias stays nil")

			nameCol := stmt.Select[1]
			require.NotNil(t, nameCol.Alias, "alias: false is kept as the explicit no-alias sentinel")
			assert.True(t, nameCol.Alias.None)
			assert.False(t, nameCol.HasDelim())
			assert.Nil(t, nameCol.SubTree)

			require.Len(t, stmt.From, 1)
			users := stmt.From[0]
			assert.Equal(t, ExprTable, users.ExprType)
			assert.Equal(t, "users", users.Table)
			assert.Equal(t, "JOIN", users.JoinType)
			assert.Equal(t, "u", users.Alias.BaseExpr)

			assert.Nil(t, stmt.Where, "absent clause stays nil")
		})
	}
}

func TestDecode_SubqueryStatement(t *testing.T) {
	n, err := Decode(openFixture(t, "subquery_from.json"), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, ExprSubquery, n.ExprType)
	assert.Nil(t, n.SubTree)
	require.NotNil(t, n.Query)
	require.Len(t, n.Query.From, 1)
	assert.Equal(t, "orders", n.Query.From[0].Table)
	assert.True(t, n.Query.From[0].Alias.None)
}

func TestDecode_SubTreeAbsentVersusEmpty(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		format    Format
		container bool
	}{
		{name: "json missing", input: `{"expr_type":"function","base_expr":"NOW"}`, format: FormatJSON},
		{name: "json false", input: `{"expr_type":"function","base_expr":"NOW","sub_tree":false}`, format: FormatJSON},
		{name: "json null", input: `{"expr_type":"function","base_expr":"NOW","sub_tree":null}`, format: FormatJSON},
		{name: "json empty", input: `{"expr_type":"function","base_expr":"NOW","sub_tree":[]}`, format: FormatJSON, container: true},
		{name: "yaml missing", input: "expr_type: function\nbase_expr: NOW\n", format: FormatYAML},
		{name: "yaml false", input: "expr_type: function\nbase_expr: NOW\nsub_tree: false\n", format: FormatYAML},
		{name: "yaml empty", input: "expr_type: function\nbase_expr: NOW\nsub_tree: []\n", format: FormatYAML, container: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Decode(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.container, n.IsContainer())
			assert.Empty(t, n.SubTree)
		})
	}
}

func TestDecode_Delim(t *testing.T) {
	n, err := Decode(strings.NewReader(`{"expr_type":"colref","base_expr":"a","delim":" "}`), FormatJSON)
	require.NoError(t, err)
	require.True(t, n.HasDelim())
	assert.Equal(t, " ", *n.Delim)

	n, err = Decode(strings.NewReader("expr_type: colref\nbase_expr: a\ndelim: \" \"\n"), FormatYAML)
	require.NoError(t, err)
	require.True(t, n.HasDelim())
	assert.Equal(t, " ", *n.Delim)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		unknown bool
	}{
		{name: "json unknown expr_type", input: `{"expr_type":"window","base_expr":"w"}`, format: FormatJSON, unknown: true},
		{name: "yaml unknown expr_type", input: "expr_type: window\nbase_expr: w\n", format: FormatYAML, unknown: true},
		{name: "json scalar sub_tree", input: `{"expr_type":"function","base_expr":"F","sub_tree":"x"}`, format: FormatJSON},
		{name: "json malformed", input: `{"expr_type":`, format: FormatJSON},
		{name: "yaml scalar sub_tree", input: "expr_type: function\nbase_expr: F\nsub_tree: x\n", format: FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.unknown, errors.Is(err, ErrUnknownExprType), "got %v", err)
		})
	}
}

func TestDecodeNodes(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   []string
	}{
		{
			name:   "json object",
			format: FormatJSON,
			input:  `{"expr_type": "colref", "base_expr": "a"}`,
			want:   []string{"a"},
		},
		{
			name:   "json list",
			format: FormatJSON,
			input:  "\n  [{\"expr_type\": \"colref\", \"base_expr\": \"a\"}, {\"expr_type\": \"const\", \"base_expr\": \"1\"}]",
			want:   []string{"a", "1"},
		},
		{
			name:   "yaml mapping after comment",
			format: FormatYAML,
			input:  "# one node\nexpr_type: colref\nbase_expr: a\n",
			want:   []string{"a"},
		},
		{
			name:   "yaml sequence with document marker",
			format: FormatYAML,
			input:  "---\n- {expr_type: colref, base_expr: a}\n- {expr_type: const, base_expr: '1'}\n",
			want:   []string{"a", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := DecodeNodes(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)

			var got []string
			for _, n := range nodes {
				got = append(got, n.BaseExpr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeNodes_Errors(t *testing.T) {
	_, err := DecodeNodes(strings.NewReader(`[{"expr_type": "window"}]`), FormatJSON)
	assert.ErrorIs(t, err, ErrUnknownExprType)

	_, err = DecodeNodes(strings.NewReader("- [unclosed"), FormatYAML)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("tree.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("dir/tree.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("tree.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("-"))
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "json", FormatJSON.String())
}

func TestExprType(t *testing.T) {
	assert.True(t, ExprFunction.IsCall())
	assert.True(t, ExprAggregateFunction.IsCall())
	assert.False(t, ExprCustomFunction.IsCall())
	assert.True(t, ExprExpression.EmbedsAlias())
	assert.True(t, ExprSubquery.EmbedsAlias())
	assert.False(t, ExprTable.EmbedsAlias())
	assert.True(t, ExprColRef.IsSimple())
	assert.False(t, ExprOperator.IsSimple())
	assert.False(t, ExprType("").Known())

	_, err := ParseExprType("nope")
	var unknown *UnknownExprTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Value)
}
