// Package failure defines the typed failure kinds of the analyzer: pure,
// value-returning errors with no hidden side channel. Operator-level
// failures (division by zero, negative sqrt) are not recovered inside the
// evaluator packages; they bubble to the driver, which records them on the
// function's result and goes on with the other functions. The driver does
// not subdivide the input domain.
package failure

import (
	"fmt"

	"github.com/smohebbi/daisy-go/ast"
)

// DivisionByZero is raised when a divisor's range (or, during roundoff
// propagation, its range widened by its own error) contains zero.
type DivisionByZero struct {
	Expr ast.Expr
	Pos  string // source location from the frontend, if available
}

func (e *DivisionByZero) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("division by zero in %q at %s", e.Expr, e.Pos)
	}
	return fmt.Sprintf("division by zero in %q", e.Expr)
}

// NegativeSqrt is raised when a sqrt argument's range has a negative lower
// bound.
type NegativeSqrt struct {
	Expr ast.Expr
	Pos  string
}

func (e *NegativeSqrt) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("negative sqrt argument in %q at %s", e.Expr, e.Pos)
	}
	return fmt.Sprintf("negative sqrt argument in %q", e.Expr)
}

// UnboundVariable is raised when an expression references an identifier
// absent from the inputs map. This is a programming error in the caller
// (the frontend/specs processor should never produce it) and is always
// fatal.
type UnboundVariable struct {
	Id *ast.Ident
}

func (e *UnboundVariable) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Id.Name())
}

// UnsupportedOperator is raised when the evaluator encounters a node kind
// outside the closed set ast.Expr defines. It is fatal, and should be
// unreachable as long as ast.Expr's implementations stay exhaustive.
type UnsupportedOperator struct {
	Kind string
}

func (e *UnsupportedOperator) Error() string {
	return fmt.Sprintf("unsupported operator/node kind %q", e.Kind)
}

// SMTTimeout reports that an external smtrange.Solver did not return
// within its deadline. The driver's SMT range method runs smtrange.Range
// arithmetic without calling any Solver, so the driver never raises this
// error and has no degrade-with-warning path for it.
type SMTTimeout struct {
	Expr ast.Expr
}

func (e *SMTTimeout) Error() string {
	return fmt.Sprintf("SMT solver timed out refining %q", e.Expr)
}
