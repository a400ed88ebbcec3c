package precision

import (
	"testing"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

func TestUnitRoundoff(t *testing.T) {
	tests := []struct {
		p    Precision
		want rational.Rational
	}{
		{NewFloat32(), rational.FromBigRat(newPow2BigRat(24, true))},
		{NewFloat64(), rational.FromBigRat(newPow2BigRat(53, true))},
		{NewDoubleDouble(), rational.FromBigRat(newPow2BigRat(105, true))},
	}
	for _, tc := range tests {
		if got := tc.p.UnitRoundoff(); got.Cmp(tc.want) != 0 {
			t.Errorf("%v.UnitRoundoff() = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestFixedAbsRoundoffZero(t *testing.T) {
	p := NewFixed(16)
	zero := interval.FromRational(rational.Zero)
	if got, _ := p.AbsRoundoff(zero); !got.IsZero() {
		t.Errorf("Fixed(16).AbsRoundoff([0,0]) = %v, want 0", got)
	}
}

func TestFixedTruncation(t *testing.T) {
	p := NewFixed(8)
	iv := interval.New(rational.FromInt64(-4), rational.FromInt64(4))
	got, clamped := p.AbsRoundoff(iv)
	want := rational.FromFrac(1, 1<<7).Mul(rational.FromInt64(4))
	if got.Cmp(want) != 0 {
		t.Errorf("Fixed(8).AbsRoundoff([-4,4]) = %v, want %v", got, want)
	}
	if clamped {
		t.Error("Fixed has no denormal threshold to floor against")
	}
}

func TestDenormalFloor(t *testing.T) {
	p := NewFloat64()
	tiny := interval.New(rational.Zero, rational.FromBigRat(newPow2BigRat(2000, true)))
	got, clamped := p.AbsRoundoff(tiny)
	if got.Cmp(p.DenormalThreshold()) != 0 {
		t.Errorf("tiny range should floor at the denormal threshold, got %v", got)
	}
	if !clamped {
		t.Error("tiny range should report the denormal floor was applied")
	}
}

func TestCheatedDoublesUnit(t *testing.T) {
	p := NewFloat64()
	iv := interval.New(rational.FromInt64(1), rational.FromInt64(1))
	normal, _ := p.AbsRoundoffWithPolicy(iv, Policy{Cheated: false})
	cheated, _ := p.AbsRoundoffWithPolicy(iv, Policy{Cheated: true})
	if cheated.Cmp(normal.Mul(rational.Two)) != 0 {
		t.Errorf("cheated = %v, want 2x normal (%v)", cheated, normal)
	}
}
