package extract

import (
	"log/slog"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
)

// TableReference renders a single FROM item: a table name, a parenthesized
// subquery or a raw expression, followed by its alias. Nothing is quoted or
// escaped.
func (e *Extractor) TableReference(n *node.Node) (string, error) {
	if n == nil {
		return "", &MalformedNodeError{Message: msgNilNode}
	}

	var ref string
	switch n.ExprType {
	case node.ExprTable:
		if n.Table == "" {
			return "", e.malformed(n, "table", msgMissingTable)
		}
		ref = n.Table
	case node.ExprSubquery:
		if n.BaseExpr == "" {
			return "", e.malformed(n, "base_expr", msgMissingExpr)
		}
		ref = parenthesize(n.BaseExpr)
	default:
		if !n.ExprType.Known() {
			return "", e.unsupported(n)
		}
		if n.BaseExpr == "" {
			return "", e.malformed(n, "base_expr", msgMissingExpr)
		}
		// The raw expression already spells out its alias.
		return n.BaseExpr, nil
	}

	if IsAlias(n) {
		alias, err := e.aliasText(n)
		if err != nil {
			return "", err
		}
		ref += " " + alias
	}
	return ref, nil
}

// aliasText returns the rendered alias, falling back to the bare name when
// the parser left base_expr empty.
func (e *Extractor) aliasText(n *node.Node) (string, error) {
	if n.Alias.BaseExpr != "" {
		return n.Alias.BaseExpr, nil
	}
	if n.Alias.Name != "" {
		return n.Alias.Name, nil
	}
	return "", e.malformed(n, "alias", msgEmptyAlias)
}

// parenthesize wraps s in one pair of parentheses unless a single pair
// already encloses all of it.
func parenthesize(s string) string {
	if enclosed(s) {
		return s
	}
	return "(" + s + ")"
}

// enclosed reports whether s starts with "(" whose matching ")" is the last
// byte. Parentheses inside quoted literals are ignored.
func enclosed(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

func (e *Extractor) malformed(n *node.Node, field, msg string) error {
	e.logger.Debug("rejecting malformed node",
		slog.String("expr_type", string(n.ExprType)),
		slog.String("field", field),
		slog.String("base_expr", n.BaseExpr))
	return &MalformedNodeError{ExprType: n.ExprType, Field: field, Message: msg}
}

func (e *Extractor) unsupported(n *node.Node) error {
	e.logger.Debug("rejecting node with unsupported expr_type",
		slog.String("expr_type", string(n.ExprType)),
		slog.String("base_expr", n.BaseExpr))
	return &UnsupportedExprTypeError{ExprType: n.ExprType}
}
