package node

import (
	"errors"
	"fmt"
)

// ErrUnknownExprType is matched by every unknown expr_type error.
var ErrUnknownExprType = errors.New("unsupported expr_type")

// ExprType is the discriminant of a Node.
type ExprType string

// ExprType values emitted by the parser.
const (
	ExprColRef            ExprType = "colref"
	ExprConst             ExprType = "const"
	ExprFunction          ExprType = "function"
	ExprAggregateFunction ExprType = "aggregate_function"
	ExprCustomFunction    ExprType = "custom_function"
	ExprExpression        ExprType = "expression"
	ExprSubquery          ExprType = "subquery"
	ExprBracket           ExprType = "bracket_expression"
	ExprTable             ExprType = "table"
	ExprOperator          ExprType = "operator"
	ExprReserved          ExprType = "reserved"
	ExprInList            ExprType = "in-list"
	ExprRecord            ExprType = "record"
	ExprSign              ExprType = "sign"
	ExprAlias             ExprType = "alias"
	ExprQuery             ExprType = "query"
	ExprColumnList        ExprType = "column-list"
	ExprPosition          ExprType = "position"
	ExprMatchArguments    ExprType = "match-arguments"
	ExprMatchMode         ExprType = "match-mode"
	ExprUserVariable      ExprType = "user_variable"
	ExprSessionVariable   ExprType = "session_variable"
	ExprGlobalVariable    ExprType = "global_variable"
	ExprLocalVariable     ExprType = "local_variable"
)

var knownExprTypes = map[ExprType]struct{}{
	ExprColRef: {}, ExprConst: {}, ExprFunction: {}, ExprAggregateFunction: {},
	ExprCustomFunction: {}, ExprExpression: {}, ExprSubquery: {}, ExprBracket: {},
	ExprTable: {}, ExprOperator: {}, ExprReserved: {}, ExprInList: {},
	ExprRecord: {}, ExprSign: {}, ExprAlias: {}, ExprQuery: {},
	ExprColumnList: {}, ExprPosition: {}, ExprMatchArguments: {}, ExprMatchMode: {},
	ExprUserVariable: {}, ExprSessionVariable: {}, ExprGlobalVariable: {}, ExprLocalVariable: {},
}

// Known reports whether t is a recognized expression type.
func (t ExprType) Known() bool {
	_, ok := knownExprTypes[t]
	return ok
}

// IsCall reports whether nodes of this type render as NAME(args).
// custom_function is not a call: the parser already embeds its
// arguments in base_expr.
func (t ExprType) IsCall() bool {
	return t == ExprFunction || t == ExprAggregateFunction
}

// EmbedsAlias reports whether base_expr already carries the alias text.
func (t ExprType) EmbedsAlias() bool {
	return t == ExprExpression || t == ExprSubquery
}

// IsSimple reports whether the type is a plain column or constant.
func (t ExprType) IsSimple() bool {
	return t == ExprColRef || t == ExprConst
}

func (t ExprType) String() string {
	return string(t)
}

// ParseExprType validates s as an expression type. The empty string is
// accepted and left for the extractors to reject where a type is required.
func ParseExprType(s string) (ExprType, error) {
	t := ExprType(s)
	if s != "" && !t.Known() {
		return "", &UnknownExprTypeError{Value: s}
	}
	return t, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ExprType) UnmarshalText(b []byte) error {
	v, err := ParseExprType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t ExprType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnknownExprTypeError is returned when decoding meets an unrecognized expr_type.
type UnknownExprTypeError struct {
	Value string
}

func (e *UnknownExprTypeError) Error() string {
	return fmt.Sprintf("unknown expr_type %q", e.Value)
}

func (e *UnknownExprTypeError) Unwrap() error {
	return ErrUnknownExprType
}
