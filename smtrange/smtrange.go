// Package smtrange provides the optional SMT-refined range domain: a
// Range pairs a plain interval with an opaque set of Constraints, and a
// Solver interface is what an external collaborator must implement to
// tighten that interval using the constraint set.
package smtrange

import (
	"context"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

// Constraint is an opaque, solver-specific predicate passed through
// verbatim from the frontend's precondition.
type Constraint struct {
	Expr string
}

// Range is an interval annotated with the constraint set a Solver may use
// to tighten it further. Two Ranges with the same Bounds but different
// Constraints are distinct values, since tightening depends on the full
// constraint set, not just the current bounds.
type Range struct {
	Bounds      interval.Interval
	Constraints []Constraint
}

// FromInterval lifts a plain interval into a Range with no constraints.
func FromInterval(iv interval.Interval) Range {
	return Range{Bounds: iv}
}

// WithConstraints returns a copy of r with cs appended to its constraint
// set.
func (r Range) WithConstraints(cs ...Constraint) Range {
	out := Range{Bounds: r.Bounds, Constraints: append(append([]Constraint(nil), r.Constraints...), cs...)}
	return out
}

// ToInterval discards the constraint set, returning the plain enclosing
// interval.
func (r Range) ToInterval() interval.Interval { return r.Bounds }

// Solver is the contract an external SMT-backed collaborator implements to
// refine a Range's bounds using its constraint set. Tighten must return a
// sound (possibly unchanged) subset of in.Bounds, or an SMTTimeout-style
// error if the solver could not finish within ctx's deadline, in which case
// callers should degrade to in unchanged.
type Solver interface {
	Tighten(ctx context.Context, in Range) (Range, error)
}

// NoopSolver never tightens; it is the degrade-to-interval fallback used
// when no real solver is configured, or after an SMTTimeout.
type NoopSolver struct{}

// Tighten returns in unchanged.
func (NoopSolver) Tighten(_ context.Context, in Range) (Range, error) { return in, nil }

// domain operations, lifted straight from interval.Interval since a Range's
// numeric behavior is exactly its Bounds' behavior; the constraint set only
// ever grows through WithConstraints / Tighten, never through arithmetic.

func (r Range) Add(o Range) Range { return FromInterval(r.Bounds.Add(o.Bounds)) }
func (r Range) Sub(o Range) Range { return FromInterval(r.Bounds.Sub(o.Bounds)) }
func (r Range) Neg() Range        { return FromInterval(r.Bounds.Neg()) }
func (r Range) Mul(o Range) Range { return FromInterval(r.Bounds.Mul(o.Bounds)) }

func (r Range) Quo(o Range) (Range, error) {
	iv, err := r.Bounds.Quo(o.Bounds)
	if err != nil {
		return Range{}, err
	}
	return FromInterval(iv), nil
}

func (r Range) Sqrt() (Range, error) {
	iv, err := r.Bounds.Sqrt()
	if err != nil {
		return Range{}, err
	}
	return FromInterval(iv), nil
}

func (r Range) Pow(n int) Range { return FromInterval(r.Bounds.Pow(n)) }

// PlusMinus returns the Range for +/-v, used to lift a scalar error into
// this domain (mirrors interval.PlusMinus / affine.PlusMinus).
func PlusMinus(v rational.Rational) Range { return FromInterval(interval.PlusMinus(v)) }

// Zero is the exact Range for 0.
var Zero = FromInterval(interval.FromRational(rational.Zero))

func (r Range) String() string { return r.Bounds.String() }
