// Package precision describes the finite-precision number formats the
// roundoff evaluator reasons about: Float32, Float64, DoubleDouble, and
// Fixed(n). Every constant here (unit roundoff, denormal threshold, max
// finite value) is carried as an exact rational.Rational built from powers
// of two, never as a float64, so AbsRoundoff stays exact arithmetic all the
// way through.
package precision

import (
	"fmt"

	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

// Kind enumerates the closed set of supported precisions.
type Kind int

const (
	Float32 Kind = iota
	Float64
	DoubleDouble
	Fixed
)

func (k Kind) String() string {
	switch k {
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case DoubleDouble:
		return "DoubleDouble"
	case Fixed:
		return "Fixed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Precision is a finite-precision descriptor. N is only meaningful when
// Kind == Fixed, where it holds the fractional bit count.
type Precision struct {
	Kind Kind
	N    uint
}

// NewFloat32 returns the Float32 precision.
func NewFloat32() Precision { return Precision{Kind: Float32} }

// NewFloat64 returns the Float64 precision.
func NewFloat64() Precision { return Precision{Kind: Float64} }

// NewDoubleDouble returns the DoubleDouble precision.
func NewDoubleDouble() Precision { return Precision{Kind: DoubleDouble} }

// NewFixed returns the Fixed(n) precision.
func NewFixed(n uint) Precision { return Precision{Kind: Fixed, N: n} }

func (p Precision) String() string {
	if p.Kind == Fixed {
		return fmt.Sprintf("Fixed(%d)", p.N)
	}
	return p.Kind.String()
}

// Bits returns a precision's mantissa width for the floating formats (24,
// 53, 105) or its fractional-bit count N for Fixed. It exists purely as an
// ordering proxy for mixed-precision cast decisions — a higher Bits() value means a more precise format.
func (p Precision) Bits() uint {
	switch p.Kind {
	case Float32:
		return 24
	case Float64:
		return 53
	case DoubleDouble:
		return 105
	default:
		return p.N
	}
}

// Policy controls which of two roundoff models is used: the conservative
// default (Cheated: false) or the looser "cheated" truncation variant some
// reference implementations use. It is exposed as a flag rather than a
// second API.
type Policy struct {
	Cheated bool
}

// pow2 returns 2^e as an exact Rational, for any (possibly negative) int e.
func pow2(e int) rational.Rational {
	if e >= 0 {
		return rational.FromBigRat(newPow2BigRat(e, false))
	}
	return rational.FromBigRat(newPow2BigRat(-e, true))
}

// UnitRoundoff returns u, half the gap between 1 and the next representable
// value, for the floating formats. It panics for Fixed, which has no
// relative error model (see AbsRoundoff).
func (p Precision) UnitRoundoff() rational.Rational {
	switch p.Kind {
	case Float32:
		return pow2(-24)
	case Float64:
		return pow2(-53)
	case DoubleDouble:
		return pow2(-105)
	default:
		panic("precision: UnitRoundoff undefined for Fixed")
	}
}

// DenormalThreshold returns the denormal threshold: 2^-149 for Float32 and
// 2^-1074 for Float64, the smallest positive subnormal magnitudes.
// AbsRoundoff floors a relative error bound smaller than it at this value.
// DoubleDouble inherits Float64's threshold.
func (p Precision) DenormalThreshold() rational.Rational {
	switch p.Kind {
	case Float32:
		return pow2(-149)
	case Float64, DoubleDouble:
		return pow2(-1074)
	default:
		panic("precision: DenormalThreshold undefined for Fixed")
	}
}

// MaxFinite returns the largest finite magnitude representable, and false
// for Fixed(n), which has no fixed upper bound of its own (its range is
// whatever the surrounding analysis computes).
func (p Precision) MaxFinite() (rational.Rational, bool) {
	switch p.Kind {
	case Float32:
		// (2 - 2^-23) * 2^127
		r := rational.Two.Sub(pow2(-23)).Mul(pow2(127))
		return r, true
	case Float64, DoubleDouble:
		r := rational.Two.Sub(pow2(-52)).Mul(pow2(1023))
		return r, true
	default:
		return rational.Rational{}, false
	}
}

// AbsRoundoff returns the per-operator roundoff bound for a value whose
// range is iv, using the default (non-cheated) policy. The second return
// reports whether the bound was floored at the denormal threshold rather
// than computed as a plain relative error.
func (p Precision) AbsRoundoff(iv interval.Interval) (rational.Rational, bool) {
	return p.AbsRoundoffWithPolicy(iv, Policy{})
}

// AbsRoundoffWithPolicy is AbsRoundoff parameterized by the cheated/exact
// choice.
func (p Precision) AbsRoundoffWithPolicy(iv interval.Interval, pol Policy) (rational.Rational, bool) {
	m := iv.MaxAbs()
	if p.Kind == Fixed {
		// Truncation model: 2^-(n-1) * max(|lo|, |hi|). The
		// cheated/non-cheated distinction doesn't apply to a model that is
		// already defined as truncation, and Fixed has no denormal
		// threshold to floor against.
		return pow2(-(int(p.N) - 1)).Mul(m), false
	}

	u := p.UnitRoundoff()
	if pol.Cheated {
		// The cheated variant uses a full ULP rather than half
		// a ULP, matching some reference implementations' absRoundoffCheated.
		u = u.Mul(rational.Two)
	}
	rel := u.Mul(m)
	denorm := p.DenormalThreshold()
	if rel.Cmp(denorm) < 0 {
		return denorm, true
	}
	return rel, false
}
