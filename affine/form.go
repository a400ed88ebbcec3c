// Package affine implements affine-arithmetic forms: x0 + sum(xi * eps_i),
// eps_i in [-1, 1], used as both a range domain and an error domain (the
// eval package parameterizes over either). Shared noise-symbol indices
// between two forms encode correlation, which is what lets affine catch
// cases like x - x that plain interval arithmetic over-approximates.
package affine

import (
	"strings"
	"sync/atomic"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

// noiseCounter is the single piece of global mutable state this module
// needs: a monotonic, atomic counter minting unique noise indices. It must
// be atomic because a genetic-search collaborator may run thousands of
// concurrent fitness evaluations, each building fresh affine forms.
var noiseCounter uint64

// nextNoiseIndex returns a fresh, globally unique noise-symbol index.
func nextNoiseIndex() uint64 {
	return atomic.AddUint64(&noiseCounter, 1)
}

// Term is one noise-symbol coefficient: Coeff*eps_Idx.
type Term struct {
	Idx   uint64
	Coeff rational.Rational
}

// Form is x0 + sum(Terms), with Terms sorted by strictly increasing, unique
// Idx and no zero coefficients.
type Form struct {
	X0    rational.Rational
	Terms []Term
}

// FromRational returns the exact, zero-width form for a constant r.
func FromRational(r rational.Rational) Form {
	return Form{X0: r}
}

// Zero is the exact form for 0.
var Zero = FromRational(rational.Zero)

// FromInterval lifts iv into a fresh-noise-symbol affine form: midpoint as
// x0, one new term whose coefficient is iv's radius. This is how the driver
// lifts an input range into the affine domain.
func FromInterval(iv interval.Interval) Form {
	mid, rad := iv.Mid(), iv.Radius()
	if rad.IsZero() {
		return FromRational(mid)
	}
	return Form{X0: mid, Terms: []Term{{Idx: nextNoiseIndex(), Coeff: rad}}}
}

// PlusMinus returns a fresh-noise-symbol form for +/-r, used to lift a
// scalar input error into the affine domain.
func PlusMinus(r rational.Rational) Form {
	if r.IsZero() {
		return Zero
	}
	return Form{X0: rational.Zero, Terms: []Term{{Idx: nextNoiseIndex(), Coeff: r.Abs()}}}
}

// ToInterval returns [x0 - sum|coeff|, x0 + sum|coeff|].
func (f Form) ToInterval() interval.Interval {
	rad := f.Radius()
	return interval.Interval{Lo: f.X0.Sub(rad), Hi: f.X0.Add(rad)}
}

// Radius returns sum(|coeff|) over f's terms.
func (f Form) Radius() rational.Rational {
	rad := rational.Zero
	for _, t := range f.Terms {
		rad = rad.Add(t.Coeff.Abs())
	}
	return rad
}

// Neg returns -f.
func (f Form) Neg() Form {
	return f.Scale(rational.FromInt64(-1))
}

// Scale returns k*f: x0 and every coefficient multiplied by k. Zero
// coefficients that result are dropped, preserving the "no zero
// coefficients" invariant.
func (f Form) Scale(k rational.Rational) Form {
	if k.IsZero() {
		return FromRational(rational.Zero)
	}
	out := Form{X0: f.X0.Mul(k)}
	for _, t := range f.Terms {
		c := t.Coeff.Mul(k)
		if c.IsZero() {
			continue
		}
		out.Terms = append(out.Terms, Term{Idx: t.Idx, Coeff: c})
	}
	return out
}

// AddConst returns f shifted by the constant k (k added to x0 only).
func (f Form) AddConst(k rational.Rational) Form {
	out := Form{X0: f.X0.Add(k), Terms: f.Terms}
	return out
}

// AddNoise returns f with one additional fresh noise term of coefficient c
// appended (skipped if c is exactly zero).
func (f Form) AddNoise(c rational.Rational) Form {
	if c.IsZero() {
		return f
	}
	out := Form{X0: f.X0, Terms: append(append([]Term(nil), f.Terms...), Term{Idx: nextNoiseIndex(), Coeff: c})}
	return out
}

// Add returns f+g: linear, exact, computed by merging the two sorted term
// lists and summing coefficients on shared indices.
func (f Form) Add(g Form) Form {
	return Form{X0: f.X0.Add(g.X0), Terms: mergeTerms(f.Terms, g.Terms, rational.One)}
}

// Sub returns f-g.
func (f Form) Sub(g Form) Form {
	return Form{X0: f.X0.Sub(g.X0), Terms: mergeTerms(f.Terms, g.Terms, rational.FromInt64(-1))}
}

// mergeTerms merges two index-sorted term lists, scaling b's coefficients
// by bScale before summing, and dropping any index whose summed coefficient
// is exactly zero.
func mergeTerms(a, b []Term, bScale rational.Rational) []Term {
	out := make([]Term, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Idx < b[j].Idx:
			out = append(out, a[i])
			i++
		case a[i].Idx > b[j].Idx:
			out = append(out, Term{Idx: b[j].Idx, Coeff: b[j].Coeff.Mul(bScale)})
			j++
		default:
			c := a[i].Coeff.Add(b[j].Coeff.Mul(bScale))
			if !c.IsZero() {
				out = append(out, Term{Idx: a[i].Idx, Coeff: c})
			}
			i++
			j++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, a[i])
	}
	for ; j < len(b); j++ {
		out = append(out, Term{Idx: b[j].Idx, Coeff: b[j].Coeff.Mul(bScale)})
	}
	return out
}

// String renders the form for diagnostics.
func (f Form) String() string {
	var sb strings.Builder
	sb.WriteString(f.X0.String())
	for _, t := range f.Terms {
		sb.WriteString(" + ")
		sb.WriteString(t.Coeff.String())
		sb.WriteString("*e")
		sb.WriteString(itoa(t.Idx))
	}
	return sb.String()
}

func itoa(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}
