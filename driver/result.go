// Package driver implements the per-function orchestrator that reads a
// function's preconditions, selects range and error domains, runs the two
// evaluators in the eval package, and publishes a FunctionResult. It is
// the one place in this module that decides *which* concrete Domain
// instantiation (Interval, affine.Form, smtrange.Range) backs a given
// analysis run: static parameterization over per-node virtual dispatch
// still needs one runtime branch at the entry point to turn a
// config.RangeMethod value into a generic instantiation.
package driver

import (
	"fmt"

	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/config"
	"github.com/smohebbi/daisy-go/diag"
	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/precision"
	"github.com/smohebbi/daisy-go/rational"
)

// FunctionSpec is one function's analysis request, reduced to what this
// module actually consumes. InputErrors is the *user-supplied* partial
// map; AnalyzeOne fills in the rest using the default-error rule.
type FunctionSpec struct {
	Name         string
	Expr         ast.Expr
	InputRanges  map[*ast.Ident]interval.Interval
	InputErrors  map[*ast.Ident]rational.Rational
	PrecisionMap map[*ast.Ident]precision.Precision
	Options      config.Options
}

// FunctionResult is the output tuple: result error, result range, and the
// per-subexpression intermediate ranges/errors, plus the condition flags
// raised along the way (Overflow, Subnormal, Cast), warnings for
// non-fatal advisories (the result-range overflow message; no SMT solver
// is called, so no SMTTimeout warning is produced), and Err for fatal ones — including a
// Flags bit the caller's config.Options.Traps upgraded to a hard failure.
type FunctionResult struct {
	Name string

	ResultError rational.Rational
	ResultRange interval.Interval

	IntermErrors *ast.ExprMap[interval.Interval]
	IntermRanges *ast.ExprMap[interval.Interval]

	Flags    diag.Flags
	Warnings []string
	Err      error
}

// String renders one line per function: the absolute result error in
// 17-significant-digit scientific notation and the result range.
func (r FunctionResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: FAILED: %v", r.Name, r.Err)
	}
	s := fmt.Sprintf("%s: error=%s range=%s", r.Name, r.ResultError.Sci(17), r.ResultRange)
	if r.Flags.Any() {
		s += " [" + r.Flags.String() + "]"
	}
	for _, w := range r.Warnings {
		s += " [warning: " + w + "]"
	}
	return s
}
