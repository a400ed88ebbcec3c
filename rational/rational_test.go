package rational

import "testing"

func TestArith(t *testing.T) {
	tests := []struct {
		x, y Rational
		add  string
		sub  string
		mul  string
	}{
		{FromFrac(1, 2), FromFrac(1, 3), "9E-01", "2E-01", "2E-01"},
		{FromInt64(2), FromInt64(3), "5E+00", "-1E+00", "6E+00"},
		{Zero, FromInt64(5), "5E+00", "-5E+00", "0E+00"},
	}
	for _, tc := range tests {
		if got := tc.x.Add(tc.y).Sci(1); got != tc.add {
			t.Errorf("%v+%v = %s, want %s", tc.x, tc.y, got, tc.add)
		}
		if got := tc.x.Sub(tc.y).Sci(1); got != tc.sub {
			t.Errorf("%v-%v = %s, want %s", tc.x, tc.y, got, tc.sub)
		}
		if got := tc.x.Mul(tc.y).Sci(1); got != tc.mul {
			t.Errorf("%v*%v = %s, want %s", tc.x, tc.y, got, tc.mul)
		}
	}
}

func TestQuoByZero(t *testing.T) {
	_, err := FromInt64(1).Quo(Zero)
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestCmp(t *testing.T) {
	if FromFrac(1, 3).Cmp(FromFrac(1, 2)) >= 0 {
		t.Fatal("1/3 should be less than 1/2")
	}
	if FromFrac(2, 4).Cmp(FromFrac(1, 2)) != 0 {
		t.Fatal("2/4 should equal 1/2")
	}
}

func TestSci(t *testing.T) {
	tests := []struct {
		x    Rational
		n    int
		want string
	}{
		{FromInt64(0), 5, "0E+00"},
		{FromInt64(1), 3, "1.00E+00"},
		{FromFrac(1, 8), 3, "1.25E-01"},
		{FromInt64(-100), 2, "-1.0E+02"},
		{FromFrac(1, 3), 5, "3.3334E-01"}, // outward-rounded, never understates 1/3
	}
	for _, tc := range tests {
		if got := tc.x.Sci(tc.n); got != tc.want {
			t.Errorf("Sci(%v, %d) = %s, want %s", tc.x, tc.n, got, tc.want)
		}
	}
}

func TestRoundTripFloat64(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.5, 1.0 / 3.0, 1e300, 1e-300} {
		r := FromFloat64(f)
		got, exact := r.Float64()
		if !exact {
			t.Errorf("FromFloat64(%v) should round-trip exactly", f)
		}
		if got != f {
			t.Errorf("FromFloat64(%v).Float64() = %v", f, got)
		}
	}
}

func TestOutwardRounding(t *testing.T) {
	third := FromFrac(1, 3)
	up := third.RoundUpFloat64()
	down := third.RoundDownFloat64()
	if FromFloat64(down).Cmp(third) > 0 {
		t.Fatal("RoundDownFloat64 overstated 1/3")
	}
	if FromFloat64(up).Cmp(third) < 0 {
		t.Fatal("RoundUpFloat64 understated 1/3")
	}
}
