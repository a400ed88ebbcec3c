package interval

import (
	"math"

	"github.com/pkg/errors"

	"github.com/smohebbi/daisy-go/rational"
)

// ErrNegativeSqrt is returned (wrapped with a source expression by higher
// layers) when an interval's lower bound is negative.
var ErrNegativeSqrt = errors.New("interval: sqrt of interval with negative lower bound")

// newtonIterations caps the Newton loop in sqrtApprox, which normally stops
// much earlier, once r*r is within a relative 2^-60 of x: from a
// float64-accurate seed that takes one or two steps.
const newtonIterations = 40

// sqrtApprox returns a rational approximation to sqrt(x) for x > 0, found by
// Newton-Raphson starting from the float64 square root. Adapted from apd's
// bigfloat.go Sqrt, with big.Float's mantissa/exponent split replaced by a
// plain Rational iteration: Newton's method on rationals still converges
// quadratically, but each step roughly doubles the denominator's size, so
// the loop stops as soon as the relative tolerance is met.
func sqrtApprox(x rational.Rational) rational.Rational {
	f, _ := x.Float64()
	seed := math.Sqrt(f)
	if seed <= 0 || math.IsInf(seed, 0) || math.IsNaN(seed) {
		seed = 1
	}
	r := rational.FromFloat64(seed)
	tol := x.Mul(rational.FromFrac(1, 1<<60))
	for i := 0; i < newtonIterations; i++ {
		// r_{n+1} = (r_n + x/r_n) / 2
		q, err := x.Quo(r)
		if err != nil {
			break
		}
		r = r.Add(q).Half()
		if r.Mul(r).Sub(x).Abs().Cmp(tol) <= 0 {
			break
		}
	}
	return r
}

// sqrtEnclosure returns [lo, hi] with lo*lo <= x <= hi*hi, i.e. a sound
// enclosure of sqrt(x), for x >= 0: Newton iteration to a fixed relative
// tolerance, then widen from a relative 2^-20 around the iterate, doubling,
// until the square-enclosure check passes. The
// widening loop needs no proof of Newton's error bound; it only needs to
// square a Rational and compare, so soundness does not depend on how good
// the Newton seed was.
func sqrtEnclosure(x rational.Rational) (lo, hi rational.Rational) {
	if x.IsZero() {
		return rational.Zero, rational.Zero
	}
	approx := sqrtApprox(x)
	if approx.Sign() <= 0 {
		approx = rational.One
	}
	eps := approx.Mul(rational.FromFrac(1, 1<<20))
	if eps.IsZero() {
		eps = rational.FromFrac(1, 1<<20)
	}
	for {
		lo = approx.Sub(eps)
		if lo.Sign() < 0 {
			lo = rational.Zero
		}
		hi = approx.Add(eps)
		if lo.Mul(lo).Cmp(x) <= 0 && hi.Mul(hi).Cmp(x) >= 0 {
			return lo, hi
		}
		eps = eps.Mul(rational.Two)
	}
}

// Sqrt returns the image of a under the real square-root function: it fails
// with ErrNegativeSqrt if a.Lo < 0; otherwise, since sqrt is
// monotone, the result is determined by the endpoints' enclosures.
func (a Interval) Sqrt() (Interval, error) {
	if a.Lo.Sign() < 0 {
		return Interval{}, errors.WithStack(ErrNegativeSqrt)
	}
	loLo, _ := sqrtEnclosure(a.Lo)
	_, hiHi := sqrtEnclosure(a.Hi)
	return Interval{Lo: loLo, Hi: hiHi}, nil
}
