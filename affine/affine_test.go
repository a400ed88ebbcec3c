package affine

import (
	"testing"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

func r(n, d int64) rational.Rational { return rational.FromFrac(n, d) }

func TestLinearExactness(t *testing.T) {
	x := FromInterval(interval.New(r(1, 1), r(3, 1)))
	y := x.Add(x).Sub(x)
	if y.ToInterval().Width().Cmp(x.ToInterval().Width()) != 0 {
		t.Errorf("x+x-x should equal x exactly via shared noise symbols, got width %v vs %v",
			y.ToInterval().Width(), x.ToInterval().Width())
	}
}

func TestSelfSubtractionIsExact(t *testing.T) {
	x := FromInterval(interval.New(r(-5, 1), r(5, 1)))
	diff := x.Sub(x)
	iv := diff.ToInterval()
	if !iv.Lo.IsZero() || !iv.Hi.IsZero() {
		t.Errorf("x-x should collapse to the exact point 0, got %v", iv)
	}
}

func TestMulSoundness(t *testing.T) {
	a := FromInterval(interval.New(r(1, 1), r(2, 1)))
	b := FromInterval(interval.New(r(3, 1), r(4, 1)))
	prod := a.Mul(b)
	iv := prod.ToInterval()
	// exact range of [1,2]*[3,4] is [3,8]; affine must enclose it.
	if iv.Lo.Cmp(r(3, 1)) > 0 || iv.Hi.Cmp(r(8, 1)) < 0 {
		t.Errorf("Mul(%v,%v).ToInterval() = %v, does not enclose [3,8]", a, b, iv)
	}
}

func TestMulCorrelation(t *testing.T) {
	x := FromInterval(interval.New(r(1, 1), r(2, 1)))
	sq := x.Mul(x)
	iv := sq.ToInterval()
	// exact range of x^2 over [1,2] is [1,4]; a naive independent-noise
	// product (as plain interval multiplication would give) would also
	// enclose [1,4], so this mainly checks soundness of the bilinear rule.
	if iv.Lo.Cmp(r(1, 1)) > 0 || iv.Hi.Cmp(r(4, 1)) < 0 {
		t.Errorf("x*x over [1,2] = %v, does not enclose [1,4]", iv)
	}
}

func TestDivSoundness(t *testing.T) {
	a := FromInterval(interval.New(r(4, 1), r(8, 1)))
	b := FromInterval(interval.New(r(2, 1), r(4, 1)))
	q, err := a.Div(b)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	iv := q.ToInterval()
	// exact range of [4,8]/[2,4] is [1,4].
	if iv.Lo.Cmp(r(1, 1)) > 0 || iv.Hi.Cmp(r(4, 1)) < 0 {
		t.Errorf("Div(%v,%v).ToInterval() = %v, does not enclose [1,4]", a, b, iv)
	}
}

func TestDivByZeroSpanningRange(t *testing.T) {
	a := FromInterval(interval.New(r(1, 1), r(2, 1)))
	b := FromInterval(interval.New(r(-1, 1), r(1, 1)))
	if _, err := a.Div(b); err == nil {
		t.Error("Div by a zero-spanning range should fail")
	}
}

func TestSqrtSoundness(t *testing.T) {
	x := FromInterval(interval.New(r(4, 1), r(9, 1)))
	s, err := x.Sqrt()
	if err != nil {
		t.Fatalf("Sqrt: %v", err)
	}
	iv := s.ToInterval()
	if iv.Lo.Cmp(r(2, 1)) > 0 || iv.Hi.Cmp(r(3, 1)) < 0 {
		t.Errorf("Sqrt([4,9]).ToInterval() = %v, does not enclose [2,3]", iv)
	}
}

func TestSqrtNegativeFails(t *testing.T) {
	x := FromInterval(interval.New(r(-4, 1), r(4, 1)))
	if _, err := x.Sqrt(); err == nil {
		t.Error("Sqrt of a range containing negatives should fail")
	}
}

func TestPowIteration(t *testing.T) {
	x := FromInterval(interval.New(r(1, 1), r(2, 1)))
	cube := x.Pow(3)
	manual := x.Mul(x).Mul(x)
	if cube.ToInterval().Lo.Cmp(manual.ToInterval().Lo) != 0 ||
		cube.ToInterval().Hi.Cmp(manual.ToInterval().Hi) != 0 {
		t.Errorf("Pow(3) = %v, want same enclosure as manual x*x*x = %v", cube, manual)
	}
}

func TestPowZero(t *testing.T) {
	x := FromInterval(interval.New(r(1, 1), r(2, 1)))
	one := x.Pow(0)
	iv := one.ToInterval()
	if !iv.Lo.IsOne() || !iv.Hi.IsOne() {
		t.Errorf("Pow(0) = %v, want exact 1", iv)
	}
}

func TestAddNoiseSkipsZero(t *testing.T) {
	x := FromRational(r(1, 1))
	y := x.AddNoise(rational.Zero)
	if len(y.Terms) != 0 {
		t.Errorf("AddNoise(0) should not append a term, got %v", y.Terms)
	}
}

func TestRadiusIsSumOfAbsCoeffs(t *testing.T) {
	x := FromInterval(interval.New(r(-3, 1), r(5, 1)))
	want := x.ToInterval().Radius()
	if x.Radius().Cmp(want) != 0 {
		t.Errorf("Radius() = %v, want %v", x.Radius(), want)
	}
}
