package affine

import (
	"github.com/pkg/errors"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

// Mul returns f*g, linearized exactly per the standard affine-arithmetic
// multiplication rule: the bilinear cross term is expanded exactly for the
// linear part (which is what preserves correlation when f
// and g share noise symbols, e.g. x*x), and the pure second-order residual
// (sum_i fi*eps_i)*(sum_j gj*eps_j) is bounded by +/- radius(f)*radius(g)
// and folded into exactly one fresh noise symbol.
func (f Form) Mul(g Form) Form {
	x0 := f.X0.Mul(g.X0)
	linear := mergeScaled(f.Terms, f.X0, g.Terms, g.X0)
	residual := f.Radius().Mul(g.Radius())
	out := Form{X0: x0, Terms: linear}
	return out.AddNoise(residual)
}

// mergeScaled merges a's terms scaled by aScale with b's terms scaled by
// bScale, summing coefficients on shared indices.
func mergeScaled(a []Term, bScale rational.Rational, b []Term, aScale rational.Rational) []Term {
	sa := scaleTerms(a, aScale)
	sb := scaleTerms(b, bScale)
	return mergeTerms(sa, sb, rational.One)
}

func scaleTerms(terms []Term, k rational.Rational) []Term {
	if k.IsZero() {
		return nil
	}
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		c := t.Coeff.Mul(k)
		if c.IsZero() {
			continue
		}
		out = append(out, Term{Idx: t.Idx, Coeff: c})
	}
	return out
}

// linearize applies a secant-slope linearization rule to a unary
// non-linear function f over the form x: it evaluates f and a chosen
// secant-line approximation both via interval arithmetic over x's range,
// reads the residual enclosure directly off the difference (which is sound
// regardless of f's convexity, since it's just interval subtraction rather
// than a closed-form Chebyshev optimum), and folds that residual into one
// fresh noise symbol.
func linearize(x Form, ix interval.Interval, fx interval.Interval, alpha rational.Rational) Form {
	linApprox := ix.Scale(alpha)
	// beta puts the line through (ix.Lo, fx.Lo); the residual's midpoint is
	// added back below, so the choice of beta does not change the result.
	beta := fx.Lo.Sub(ix.Lo.Mul(alpha))
	linApprox = linApprox.AddScalar(beta)
	residual := fx.Sub(linApprox)
	mid := residual.Mid()
	half := residual.Radius()
	return x.Scale(alpha).AddConst(beta).AddConst(mid).AddNoise(half)
}

// secantSlope returns the slope of the line through (lo, flo) and
// (hi, fhi), or zero if the interval is degenerate (lo == hi), in which
// case linearize's beta alone carries the (exact) value.
func secantSlope(lo, hi, flo, fhi rational.Rational) rational.Rational {
	if lo.Cmp(hi) == 0 {
		return rational.Zero
	}
	num := fhi.Sub(flo)
	den := hi.Sub(lo)
	slope, _ := num.Quo(den)
	return slope
}

// Sqrt returns the image of f under the real square-root function. It
// fails with the wrapped interval.ErrNegativeSqrt if f's range has a
// negative lower bound.
func (f Form) Sqrt() (Form, error) {
	ix := f.ToInterval()
	fx, err := ix.Sqrt()
	if err != nil {
		return Form{}, err
	}
	alpha := secantSlope(ix.Lo, ix.Hi, fx.Lo, fx.Hi)
	return linearize(f, ix, fx, alpha), nil
}

// reciprocal returns the image of f under y -> 1/y, used internally by Div.
// It fails if f's range contains zero.
func reciprocal(f Form) (Form, error) {
	ix := f.ToInterval()
	if ix.ContainsZero() {
		return Form{}, errors.WithStack(rational.ErrDivisionByZero)
	}
	one := interval.FromRational(rational.One)
	fx, err := one.Quo(ix)
	if err != nil {
		return Form{}, err
	}
	// 1/y is decreasing on a range that excludes zero, so f(lo) is fx.Hi.
	alpha := secantSlope(ix.Lo, ix.Hi, fx.Hi, fx.Lo)
	return linearize(f, ix, fx, alpha), nil
}

// Div returns f/g = f * reciprocal(g), which preserves any correlation
// between f and g (e.g. x/x) because reciprocal(g) still carries g's
// original noise-symbol indices, scaled.
func (f Form) Div(g Form) (Form, error) {
	recip, err := reciprocal(g)
	if err != nil {
		return Form{}, err
	}
	return f.Mul(recip), nil
}

// Quo is an alias for Div, matching the method name interval.Interval and
// smtrange.Range use so all three range domains share one capability-set
// shape for the eval package's generic Domain interface.
func (f Form) Quo(g Form) (Form, error) { return f.Div(g) }

// Pow returns f^n for integer n >= 0 via repeated multiplication: each
// multiplication introduces its own fresh noise symbol.
func (f Form) Pow(n int) Form {
	if n == 0 {
		return FromRational(rational.One)
	}
	out := f
	for i := 1; i < n; i++ {
		out = out.Mul(f)
	}
	return out
}
