package extract

import (
	"strings"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
)

// FunctionParams returns the parameters of a call as one comma-joined string.
func (e *Extractor) FunctionParams(n *node.Node) (string, error) {
	return e.CollectParams(n, "")
}

// CollectParams appends the parameter text of n's sub-tree to acc and returns
// it. Children are visited in order and nested calls are descended into, so
// f(a, g(b, c)) yields "a,g,b,c". Bracket expressions are atomic. A node
// without a sub-tree returns acc unchanged.
func (e *Extractor) CollectParams(n *node.Node, acc string) (string, error) {
	if n == nil {
		return "", &MalformedNodeError{Message: msgNilNode}
	}
	if !n.IsContainer() {
		return acc, nil
	}
	params, err := e.collectParams(n.SubTree, nil)
	if err != nil {
		return "", err
	}
	return acc + strings.Join(params, ","), nil
}

func (e *Extractor) collectParams(children []*node.Node, params []string) ([]string, error) {
	for _, child := range children {
		if child == nil {
			return nil, &MalformedNodeError{Message: msgNilChild}
		}
		params = append(params, child.BaseExpr)
		if child.ExprType == node.ExprBracket || !child.IsContainer() {
			continue
		}
		var err error
		if params, err = e.collectParams(child.SubTree, params); err != nil {
			return nil, err
		}
	}
	return params, nil
}
