package extract

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrMalformedNode       = errors.New("malformed node")
	ErrUnsupportedJoinType = errors.New("unsupported join type")
	ErrUnsupportedExprType = node.ErrUnknownExprType
)

// MalformedNodeError reports a node missing a field its expr_type requires.
type MalformedNodeError struct {
	ExprType node.ExprType
	Field    string
	Message  string
}

func (e *MalformedNodeError) Error() string {
	if e.ExprType == "" {
		return fmt.Sprintf("malformed node: %s", e.Message)
	}
	return fmt.Sprintf("malformed %s node: %s", e.ExprType, e.Message)
}

func (e *MalformedNodeError) Unwrap() error {
	return ErrMalformedNode
}

// UnsupportedJoinTypeError reports a join kind the builder cannot express.
type UnsupportedJoinTypeError struct {
	JoinType string
}

func (e *UnsupportedJoinTypeError) Error() string {
	return fmt.Sprintf("unsupported join type %q", e.JoinType)
}

func (e *UnsupportedJoinTypeError) Unwrap() error {
	return ErrUnsupportedJoinType
}

// UnsupportedExprTypeError reports a node whose expr_type is not recognized.
type UnsupportedExprTypeError struct {
	ExprType node.ExprType
}

func (e *UnsupportedExprTypeError) Error() string {
	if e.ExprType == "" {
		return "missing expr_type"
	}
	return fmt.Sprintf("unsupported expr_type %q", string(e.ExprType))
}

func (e *UnsupportedExprTypeError) Unwrap() error {
	return ErrUnsupportedExprType
}

// Common error messages
const (
	msgNilNode      = "nil node"
	msgMissingTable = "table name is empty"
	msgMissingExpr  = "base_expr is empty"
	msgMissingName  = "function name is empty"
	msgEmptyAlias   = "alias has no text"
	msgNilChild     = "sub_tree contains a nil child"
)
