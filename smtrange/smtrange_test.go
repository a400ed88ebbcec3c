package smtrange

import (
	"context"
	"testing"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

func TestNoopSolverLeavesBoundsUnchanged(t *testing.T) {
	r := FromInterval(interval.New(rational.FromInt64(1), rational.FromInt64(2)))
	r = r.WithConstraints(Constraint{Expr: "x >= 1"})
	got, err := NoopSolver{}.Tighten(context.Background(), r)
	if err != nil {
		t.Fatalf("Tighten: %v", err)
	}
	if got.Bounds.Lo.Cmp(r.Bounds.Lo) != 0 || got.Bounds.Hi.Cmp(r.Bounds.Hi) != 0 {
		t.Errorf("NoopSolver changed bounds: %v -> %v", r.Bounds, got.Bounds)
	}
	if len(got.Constraints) != 1 {
		t.Errorf("expected constraint set preserved, got %v", got.Constraints)
	}
}

func TestArithDelegatesToInterval(t *testing.T) {
	a := FromInterval(interval.New(rational.FromInt64(1), rational.FromInt64(2)))
	b := FromInterval(interval.New(rational.FromInt64(3), rational.FromInt64(4)))
	sum := a.Add(b)
	if sum.Bounds.Lo.Cmp(rational.FromInt64(4)) != 0 || sum.Bounds.Hi.Cmp(rational.FromInt64(6)) != 0 {
		t.Errorf("Add = %v, want [4,6]", sum.Bounds)
	}
}

func TestQuoDivisionByZero(t *testing.T) {
	a := FromInterval(interval.New(rational.FromInt64(1), rational.FromInt64(2)))
	b := FromInterval(interval.New(rational.FromInt64(-1), rational.FromInt64(1)))
	if _, err := a.Quo(b); err == nil {
		t.Error("Quo by a zero-spanning range should fail")
	}
}
