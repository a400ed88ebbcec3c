// Package interval implements closed real intervals [lo, hi] over exact
// Rationals, with sound (outward) arithmetic. Because the underlying scalar
// type is already exact, "outward rounding" only matters for the one
// operation that cannot be computed exactly in finite time: Sqrt widens its
// Newton iterate until it is certain to enclose the true root.
package interval

import (
	"github.com/pkg/errors"

	"github.com/smohebbi/daisy-go/rational"
)

// Interval is a closed range [Lo, Hi] with Lo <= Hi.
type Interval struct {
	Lo, Hi rational.Rational
}

// FromRational returns the degenerate point interval [r, r].
func FromRational(r rational.Rational) Interval {
	return Interval{Lo: r, Hi: r}
}

// New returns [lo, hi]. It panics if lo > hi, since that would violate the
// fundamental invariant every other method relies on; callers constructing
// intervals from untrusted bounds should compare first.
func New(lo, hi rational.Rational) Interval {
	if lo.Cmp(hi) > 0 {
		panic(errors.Errorf("interval: lo %s > hi %s", lo, hi))
	}
	return Interval{Lo: lo, Hi: hi}
}

// PlusMinus returns [-r, r] for r >= 0 (and [r, -r] flipped into order if a
// negative r is passed, so the result is always a valid interval).
func PlusMinus(r rational.Rational) Interval {
	a, b := r.Neg(), r
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	return Interval{Lo: a, Hi: b}
}

// Zero is the degenerate interval [0, 0].
var Zero = FromRational(rational.Zero)

// Add returns a+b = [a.Lo+b.Lo, a.Hi+b.Hi].
func (a Interval) Add(b Interval) Interval {
	return Interval{Lo: a.Lo.Add(b.Lo), Hi: a.Hi.Add(b.Hi)}
}

// Sub returns a-b = [a.Lo-b.Hi, a.Hi-b.Lo].
func (a Interval) Sub(b Interval) Interval {
	return Interval{Lo: a.Lo.Sub(b.Hi), Hi: a.Hi.Sub(b.Lo)}
}

// Neg returns -a = [-a.Hi, -a.Lo].
func (a Interval) Neg() Interval {
	return Interval{Lo: a.Hi.Neg(), Hi: a.Lo.Neg()}
}

// Mul returns a*b via the classical min/max of the four corner products.
func (a Interval) Mul(b Interval) Interval {
	p1 := a.Lo.Mul(b.Lo)
	p2 := a.Lo.Mul(b.Hi)
	p3 := a.Hi.Mul(b.Lo)
	p4 := a.Hi.Mul(b.Hi)
	lo := rational.Min(rational.Min(p1, p2), rational.Min(p3, p4))
	hi := rational.Max(rational.Max(p1, p2), rational.Max(p3, p4))
	return Interval{Lo: lo, Hi: hi}
}

// Scale returns k*a (k a scalar Rational), handling negative k by swapping
// the bounds. This is the interval-times-scalar case used throughout the
// affine package's linearization step.
func (a Interval) Scale(k rational.Rational) Interval {
	lo, hi := a.Lo.Mul(k), a.Hi.Mul(k)
	if k.Sign() < 0 {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}

// AddScalar returns a+k for a scalar Rational k.
func (a Interval) AddScalar(k rational.Rational) Interval {
	return Interval{Lo: a.Lo.Add(k), Hi: a.Hi.Add(k)}
}

// ContainsZero reports whether 0 is in [Lo, Hi].
func (a Interval) ContainsZero() bool {
	return a.Lo.Sign() <= 0 && a.Hi.Sign() >= 0
}

// Contains reports whether r is in [Lo, Hi].
func (a Interval) Contains(r rational.Rational) bool {
	return a.Lo.Cmp(r) <= 0 && a.Hi.Cmp(r) >= 0
}

// ToInterval returns a unchanged. It exists so Interval satisfies the same
// capability-set shape as affine.Form and smtrange.Range, letting the eval
// package collapse any of the three range domains to a plain Interval with
// the same method call.
func (a Interval) ToInterval() Interval { return a }

// Quo returns a/b. It fails with a DivisionByZero-flavored error when b
// contains zero.
func (a Interval) Quo(b Interval) (Interval, error) {
	if b.ContainsZero() {
		return Interval{}, errors.WithStack(rational.ErrDivisionByZero)
	}
	recipLo, err := rational.One.Quo(b.Hi)
	if err != nil {
		return Interval{}, err
	}
	recipHi, err := rational.One.Quo(b.Lo)
	if err != nil {
		return Interval{}, err
	}
	recip := Interval{Lo: recipLo, Hi: recipHi}
	if recip.Lo.Cmp(recip.Hi) > 0 {
		recip.Lo, recip.Hi = recip.Hi, recip.Lo
	}
	return a.Mul(recip), nil
}

// MaxAbs returns max(|Lo|, |Hi|).
func (a Interval) MaxAbs() rational.Rational {
	return rational.Max(a.Lo.Abs(), a.Hi.Abs())
}

// MinAbs returns the smallest magnitude in the interval: min(|Lo|, |Hi|)
// when the interval doesn't cross zero, or 0 when it does. Callers that
// need a sound divisor bound
// must check ContainsZero first, since dividing by MinAbs() of a
// zero-spanning interval is unsound.
func (a Interval) MinAbs() rational.Rational {
	if a.ContainsZero() {
		return rational.Zero
	}
	return rational.Min(a.Lo.Abs(), a.Hi.Abs())
}

// Width returns Hi-Lo.
func (a Interval) Width() rational.Rational {
	return a.Hi.Sub(a.Lo)
}

// Mid returns the exact midpoint (Lo+Hi)/2.
func (a Interval) Mid() rational.Rational {
	return a.Lo.Add(a.Hi).Half()
}

// Radius returns (Hi-Lo)/2, the distance from Mid to either endpoint.
func (a Interval) Radius() rational.Rational {
	return a.Width().Half()
}

// Join returns the smallest interval enclosing both a and b.
func (a Interval) Join(b Interval) Interval {
	return Interval{Lo: rational.Min(a.Lo, b.Lo), Hi: rational.Max(a.Hi, b.Hi)}
}

// Intersect returns the overlap of a and b, and false if they are disjoint.
func (a Interval) Intersect(b Interval) (Interval, bool) {
	lo := rational.Max(a.Lo, b.Lo)
	hi := rational.Min(a.Hi, b.Hi)
	if lo.Cmp(hi) > 0 {
		return Interval{}, false
	}
	return Interval{Lo: lo, Hi: hi}, true
}

// String renders the interval using Rational's scientific notation.
func (a Interval) String() string {
	return "[" + a.Lo.String() + ", " + a.Hi.String() + "]"
}
