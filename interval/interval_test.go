package interval

import (
	"testing"

	"github.com/smohebbi/daisy-go/rational"
)

func iv(lo, hi int64) Interval {
	return New(rational.FromInt64(lo), rational.FromInt64(hi))
}

func TestAddSub(t *testing.T) {
	a, b := iv(1, 2), iv(3, 5)
	if got := a.Add(b); got.Lo.Cmp(rational.FromInt64(4)) != 0 || got.Hi.Cmp(rational.FromInt64(7)) != 0 {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got.Lo.Cmp(rational.FromInt64(-4)) != 0 || got.Hi.Cmp(rational.FromInt64(-1)) != 0 {
		t.Errorf("Sub = %v", got)
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b   Interval
		lo, hi int64
	}{
		{iv(1, 2), iv(3, 4), 3, 8},
		{iv(-2, -1), iv(3, 4), -8, -3},
		{iv(-1, 1), iv(-1, 1), -1, 1},
		{iv(-2, 3), iv(-1, 5), -10, 15},
	}
	for _, tc := range tests {
		got := tc.a.Mul(tc.b)
		if got.Lo.Cmp(rational.FromInt64(tc.lo)) != 0 || got.Hi.Cmp(rational.FromInt64(tc.hi)) != 0 {
			t.Errorf("%v * %v = %v, want [%d, %d]", tc.a, tc.b, got, tc.lo, tc.hi)
		}
	}
}

func TestQuoDivisionByZero(t *testing.T) {
	_, err := iv(1, 2).Quo(iv(0, 1))
	if err == nil {
		t.Fatal("expected division-by-zero error for divisor containing 0")
	}
	got, err := iv(4, 8).Quo(iv(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got.Lo.Cmp(rational.FromInt64(2)) != 0 || got.Hi.Cmp(rational.FromInt64(4)) != 0 {
		t.Errorf("4,8 / 2 = %v", got)
	}
}

func TestSqrt(t *testing.T) {
	got, err := iv(0, 4).Sqrt()
	if err != nil {
		t.Fatal(err)
	}
	if got.Lo.Sign() != 0 {
		t.Errorf("sqrt([0,4]).Lo = %v, want 0", got.Lo)
	}
	// sqrt(4) = 2 exactly; our enclosure must include it.
	if !got.Contains(rational.FromInt64(2)) {
		t.Errorf("sqrt([0,4]) = %v does not contain 2", got)
	}

	if _, err := iv(-1, 4).Sqrt(); err == nil {
		t.Fatal("expected NegativeSqrt error")
	}
}

func TestSqrtSound(t *testing.T) {
	// sqrt(2) is irrational; verify the enclosure brackets it via rational
	// bounds whose squares straddle 2.
	got, err := FromRational(rational.FromInt64(2)).Sqrt()
	if err != nil {
		t.Fatal(err)
	}
	if got.Lo.Mul(got.Lo).Cmp(rational.FromInt64(2)) > 0 {
		t.Fatal("sqrt(2) lower bound squared exceeds 2")
	}
	if got.Hi.Mul(got.Hi).Cmp(rational.FromInt64(2)) < 0 {
		t.Fatal("sqrt(2) upper bound squared is less than 2")
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		a      Interval
		n      int
		lo, hi int64
	}{
		{iv(2, 3), 2, 4, 9},
		{iv(-3, 2), 2, 0, 9},
		{iv(-3, -2), 2, 4, 9},
		{iv(-2, 3), 3, -8, 27},
		{iv(2, 2), 0, 1, 1},
	}
	for _, tc := range tests {
		got := tc.a.Pow(tc.n)
		if got.Lo.Cmp(rational.FromInt64(tc.lo)) != 0 || got.Hi.Cmp(rational.FromInt64(tc.hi)) != 0 {
			t.Errorf("%v^%d = %v, want [%d, %d]", tc.a, tc.n, got, tc.lo, tc.hi)
		}
	}
}

func TestJoinIntersect(t *testing.T) {
	a, b := iv(1, 3), iv(2, 5)
	j := a.Join(b)
	if j.Lo.Cmp(rational.FromInt64(1)) != 0 || j.Hi.Cmp(rational.FromInt64(5)) != 0 {
		t.Errorf("Join = %v", j)
	}
	x, ok := a.Intersect(b)
	if !ok || x.Lo.Cmp(rational.FromInt64(2)) != 0 || x.Hi.Cmp(rational.FromInt64(3)) != 0 {
		t.Errorf("Intersect = %v, %v", x, ok)
	}
	if _, ok := iv(1, 2).Intersect(iv(3, 4)); ok {
		t.Error("disjoint intervals should not intersect")
	}
}

func TestMonotonicityWidening(t *testing.T) {
	narrow := iv(0, 10)
	wide := iv(-5, 15)
	nr := narrow.Mul(narrow)
	wr := wide.Mul(wide)
	if wr.Lo.Cmp(nr.Lo) > 0 || wr.Hi.Cmp(nr.Hi) < 0 {
		t.Errorf("widening input range should widen output range: narrow=%v wide=%v", nr, wr)
	}
}
