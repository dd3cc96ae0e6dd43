package extract

import (
	"strings"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
)

// defaultDelim separates function arguments that carry no explicit delimiter.
const defaultDelim = ","

// Fragments is the result of flattening a node sequence.
type Fragments struct {
	Parts []string
	// Opaque is set when anything other than a plain column or constant was
	// rendered. Opaque text must be passed to the builder as a whole.
	Opaque bool
}

// String merges the parts.
func (f Fragments) String() string {
	return Merge(f.Parts)
}

// flattenState is owned by one top-level Flatten call and shared with the
// recursive calls it makes.
type flattenState struct {
	opaque bool
}

// Flatten renders each top-level node as one fragment. Function and aggregate
// calls are rebuilt as NAME(args) from their sub-trees, and aliases are
// appended except where base_expr already contains them.
func (e *Extractor) Flatten(nodes []*node.Node) (Fragments, error) {
	st := &flattenState{}
	parts, err := e.flatten(nodes, false, st, nil)
	if err != nil {
		return Fragments{}, err
	}
	return Fragments{Parts: parts, Opaque: st.opaque}, nil
}

// Expression renders a single node.
func (e *Extractor) Expression(n *node.Node) (string, error) {
	s, _, err := e.ExpressionOpaque(n)
	return s, err
}

// ExpressionOpaque renders a single node and reports whether the result is
// opaque.
func (e *Extractor) ExpressionOpaque(n *node.Node) (string, bool, error) {
	f, err := e.Flatten([]*node.Node{n})
	if err != nil {
		return "", false, err
	}
	return Merge(f.Parts), f.Opaque, nil
}

// Merge concatenates fragments. Separators are already part of the fragments.
func Merge(parts []string) string {
	return strings.Join(parts, "")
}

// flatten appends the fragments for nodes to parts. When nested is set the
// nodes are the arguments of a call: fragments are appended element-wise and
// every sibling but the last is followed by its delimiter. A call is always
// pushed as one fragment with no separator, nested or not.
func (e *Extractor) flatten(nodes []*node.Node, nested bool, st *flattenState, parts []string) ([]string, error) {
	for k, n := range nodes {
		if n == nil {
			return nil, &MalformedNodeError{Message: msgNilChild}
		}
		if !n.ExprType.Known() {
			return nil, e.unsupported(n)
		}
		last := k == len(nodes)-1

		if n.ExprType.IsCall() {
			call, err := e.flattenCall(n, st)
			if err != nil {
				return nil, err
			}
			st.opaque = true
			parts = append(parts, call)
			continue
		}

		if n.BaseExpr == "" {
			return nil, e.malformed(n, "base_expr", msgMissingExpr)
		}
		local := []string{n.BaseExpr}
		if !n.ExprType.EmbedsAlias() && IsAlias(n) {
			alias, err := e.aliasText(n)
			if err != nil {
				return nil, err
			}
			local = append(local, " "+alias)
		}
		if !n.ExprType.IsSimple() {
			st.opaque = true
		}

		if nested {
			local = appendDelim(local, n, last)
			parts = append(parts, local...)
		} else {
			parts = append(parts, Merge(local))
		}
	}
	return parts, nil
}

// flattenCall renders a function or aggregate as base_expr(args) [alias].
func (e *Extractor) flattenCall(n *node.Node, st *flattenState) (string, error) {
	if n.BaseExpr == "" {
		return "", e.malformed(n, "base_expr", msgMissingName)
	}

	var args []string
	if n.IsContainer() {
		var err error
		if args, err = e.flatten(n.SubTree, true, st, nil); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	b.WriteString(n.BaseExpr)
	b.WriteByte('(')
	b.WriteString(Merge(args))
	b.WriteByte(')')
	if IsAlias(n) {
		alias, err := e.aliasText(n)
		if err != nil {
			return "", err
		}
		b.WriteByte(' ')
		b.WriteString(alias)
	}
	return b.String(), nil
}

// appendDelim adds the separator that follows n among its siblings. The last
// sibling never gets one, even with an explicit delim.
func appendDelim(parts []string, n *node.Node, last bool) []string {
	if last {
		return parts
	}
	if n.HasDelim() {
		return append(parts, *n.Delim)
	}
	return append(parts, defaultDelim)
}
