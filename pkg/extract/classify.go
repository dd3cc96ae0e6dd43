package extract

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Join kinds with special handling, in normalized form.
const (
	JoinNatural = "natural"
	JoinCross   = "cross"
)

var (
	logicalOperators    = []string{"and", "or"}
	arithmeticOperators = []string{"+", "-", "*", "/", "%"}
	comparisonOperators = []string{">", "<", "=", "!=", ">=", "<=", "!<", "!>", "<>"}
)

// Normalize trims and lowercases a token before classification.
func Normalize(token string) string {
	// A Caser is stateful, so one is made per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(token))
}

// IsLogicalOperator reports whether token is AND or OR.
func IsLogicalOperator(token string) bool {
	return slices.Contains(logicalOperators, Normalize(token))
}

// IsArithmeticOperator reports whether token is one of + - * / %.
func IsArithmeticOperator(token string) bool {
	return slices.Contains(arithmeticOperators, Normalize(token))
}

// IsComparisonOperator reports whether token is a simple comparison operator
// or one of the caller-supplied extra operators (e.g. "like", "in").
func IsComparisonOperator(token string, extra ...string) bool {
	tok := Normalize(token)
	if slices.Contains(comparisonOperators, tok) {
		return true
	}
	for _, op := range extra {
		if Normalize(op) == tok {
			return true
		}
	}
	return false
}

// IsAlias reports whether n carries an alias that is not the explicit
// "no alias" sentinel.
func IsAlias(n *node.Node) bool {
	return n != nil && n.Alias != nil && !n.Alias.None
}

// ValidJoin reports whether the join kind can be expressed. NATURAL joins
// cannot; callers must reject them rather than drop the join.
func ValidJoin(joinType string) bool {
	return Normalize(joinType) != JoinNatural
}

// CheckJoin is ValidJoin as an error for callers that abort on it.
func CheckJoin(joinType string) error {
	if !ValidJoin(joinType) {
		return &UnsupportedJoinTypeError{JoinType: joinType}
	}
	return nil
}

// HandledJoinType reports whether the join kind is already rendered as part
// of the FROM-item chain (CROSS joins) and must be skipped by join handling.
func HandledJoinType(joinType string) bool {
	return Normalize(joinType) == JoinCross
}

// IsSingleTable reports whether the statement selects from exactly one plain
// table. A lone subquery or expression in FROM does not count.
func IsSingleTable(stmt *node.Statement) bool {
	if stmt == nil || len(stmt.From) != 1 || stmt.From[0] == nil {
		return false
	}
	return stmt.From[0].ExprType == node.ExprTable
}
