package interval

import "github.com/smohebbi/daisy-go/rational"

// Pow returns a^n for integer n >= 0, lifted via repeated multiplication
// with the classical even/odd sign-case shortcuts so an interval spanning
// zero doesn't need n-1 multiplications to discover its sign behavior.
func (a Interval) Pow(n int) Interval {
	switch {
	case n == 0:
		return FromRational(rational.One)
	case n == 1:
		return a
	}
	if n%2 == 1 {
		// Odd powers are monotone increasing: endpoints map to endpoints.
		return Interval{Lo: powRat(a.Lo, n), Hi: powRat(a.Hi, n)}
	}
	// Even powers: x^n is monotone in |x|, so the extremes are at whichever
	// endpoint has the larger magnitude, and if the interval spans zero the
	// minimum is 0 itself.
	loN, hiN := powRat(a.Lo, n), powRat(a.Hi, n)
	if a.ContainsZero() {
		return Interval{Lo: rational.Zero, Hi: rational.Max(loN, hiN)}
	}
	lo, hi := rational.Min(loN, hiN), rational.Max(loN, hiN)
	return Interval{Lo: lo, Hi: hi}
}

// powRat computes r^n by repeated squaring.
func powRat(r rational.Rational, n int) rational.Rational {
	result := rational.One
	base := r
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}
