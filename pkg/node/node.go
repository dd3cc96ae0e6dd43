// Package node defines the parsed SQL expression tree consumed by the extractors.
//
// Trees are produced by an external SQL parser (the PHP-SQL-Parser output shape)
// and are read-only once decoded. Optional parser fields are modelled with nil
// pointers and nil slices instead of the parser's boolean false sentinel:
//
//   - SubTree == nil means the node is not a container; an empty non-nil slice
//     is a container with zero children.
//   - Alias == nil means the field does not apply; Alias.None marks the
//     parser's explicit "no alias".
//   - Delim == nil means no explicit separator.
package node

// Node is one element of a parsed SQL expression tree.
type Node struct {
	ExprType ExprType
	BaseExpr string
	SubTree  []*Node
	Alias    *Alias
	Delim    *string

	// Query is the parsed statement of a subquery node, when the parser
	// emitted one in place of a sub-tree list.
	Query *Statement

	// Table is set only for ExprTable nodes.
	Table string
	// JoinType is the join kind of a FROM item as written by the parser.
	JoinType string
}

// Alias is a secondary name bound to a table or expression.
type Alias struct {
	// None is the explicit "no alias" sentinel.
	None     bool
	As       bool
	Name     string
	BaseExpr string // rendered text, e.g. "AS t"
}

// IsContainer reports whether the node carries a sub-tree, possibly empty.
func (n *Node) IsContainer() bool {
	return n.SubTree != nil
}

// HasDelim reports whether an explicit separator is set.
func (n *Node) HasDelim() bool {
	return n.Delim != nil
}

// Statement holds the list-valued clauses of a parsed statement.
// A nil clause was absent from the parser output.
type Statement struct {
	Select  []*Node `json:"SELECT" yaml:"SELECT"`
	From    []*Node `json:"FROM" yaml:"FROM"`
	Where   []*Node `json:"WHERE" yaml:"WHERE"`
	GroupBy []*Node `json:"GROUP" yaml:"GROUP"`
	OrderBy []*Node `json:"ORDER" yaml:"ORDER"`
	Having  []*Node `json:"HAVING" yaml:"HAVING"`
}

// Str returns a pointer to s, for building delimiters in literals.
func Str(s string) *string {
	return &s
}
