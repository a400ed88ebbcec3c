// Copyright 2016 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package rational implements exact arbitrary-precision rational arithmetic,
// the numeric base type for every other package in this module: interval
// bounds, affine-form coefficients, roundoff constants and result errors are
// all Rational values until the very last output conversion.
package rational

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// Rational is an exact p/q value, always kept in lowest terms with q > 0 by
// virtue of wrapping big.Rat, which maintains that invariant internally.
// Rational is a value type: all arithmetic methods return a new Rational
// rather than mutating the receiver, which keeps the evaluator packages
// (eval.EvalRange, eval.EvalRoundoff) free of aliasing bugs when the same
// sub-result feeds multiple parents.
type Rational struct {
	r big.Rat
}

// Zero is the additive identity.
var Zero = Rational{}

// One is the multiplicative identity.
var One = FromInt64(1)

// Two is used often enough in error-bound formulas to warrant a constant.
var Two = FromInt64(2)

// FromInt64 returns the exact rational n/1.
func FromInt64(n int64) Rational {
	var out Rational
	out.r.SetInt64(n)
	return out
}

// FromFrac returns the exact rational p/q. It panics if q is zero; callers
// dividing by a runtime-computed value should use Quo instead.
func FromFrac(p, q int64) Rational {
	var out Rational
	out.r.SetFrac64(p, q)
	return out
}

// FromBigRat returns the Rational wrapping a copy of r.
func FromBigRat(r *big.Rat) Rational {
	var out Rational
	out.r.Set(r)
	return out
}

// FromString parses a decimal or rational literal ("1.25", "-3/4", "1e-3").
func FromString(s string) (Rational, error) {
	var out Rational
	if _, ok := out.r.SetString(s); !ok {
		return Rational{}, errors.Errorf("rational: invalid literal %q", s)
	}
	return out, nil
}

// FromFloat64 returns the exact rational value of f. Every finite float64 is
// itself an exact dyadic rational, so this conversion loses no information;
// it is the reverse direction (Float64/RoundUpFloat64/RoundDownFloat64) that
// must round.
func FromFloat64(f float64) Rational {
	var out Rational
	out.r.SetFloat64(f)
	return out
}

// BigRat exposes the underlying *big.Rat. The returned pointer must not be
// mutated by the caller.
func (x *Rational) BigRat() *big.Rat { return &x.r }

// Add returns x+y.
func (x Rational) Add(y Rational) Rational {
	var out Rational
	out.r.Add(&x.r, &y.r)
	return out
}

// Sub returns x-y.
func (x Rational) Sub(y Rational) Rational {
	var out Rational
	out.r.Sub(&x.r, &y.r)
	return out
}

// Mul returns x*y.
func (x Rational) Mul(y Rational) Rational {
	// Fast paths for the identities, which show up constantly in affine-form
	// bookkeeping (scaling by 1, zeroing out cancelled terms).
	if x.IsZero() || y.IsZero() {
		return Zero
	}
	if x.IsOne() {
		return y
	}
	if y.IsOne() {
		return x
	}
	var out Rational
	out.r.Mul(&x.r, &y.r)
	return out
}

// Quo returns x/y. It returns a DivisionByZero error if y is zero.
func (x Rational) Quo(y Rational) (Rational, error) {
	if y.IsZero() {
		return Rational{}, errors.WithStack(ErrDivisionByZero)
	}
	var out Rational
	out.r.Quo(&x.r, &y.r)
	return out, nil
}

// Neg returns -x.
func (x Rational) Neg() Rational {
	var out Rational
	out.r.Neg(&x.r)
	return out
}

// Abs returns |x|.
func (x Rational) Abs() Rational {
	var out Rational
	out.r.Abs(&x.r)
	return out
}

// Cmp returns -1, 0, or +1 as x is less than, equal to, or greater than y.
func (x Rational) Cmp(y Rational) int {
	return x.r.Cmp(&y.r)
}

// Sign returns -1, 0, or +1 as x is negative, zero, or positive.
func (x Rational) Sign() int {
	return x.r.Sign()
}

// IsZero reports whether x is exactly zero.
func (x Rational) IsZero() bool { return x.r.Sign() == 0 }

// IsOne reports whether x is exactly one.
func (x Rational) IsOne() bool { return x.r.Cmp(&One.r) == 0 }

// Min returns the lesser of x and y.
func Min(x, y Rational) Rational {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// Max returns the greater of x and y.
func Max(x, y Rational) Rational {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}

// Half returns x/2, computed exactly (no Quo error path needed since 2 != 0).
func (x Rational) Half() Rational {
	out, _ := x.Quo(Two)
	return out
}

// Float64 returns the nearest float64 to x (round-to-nearest-even), along
// with whether the conversion was exact. Use RoundUpFloat64/RoundDownFloat64
// when an outward-rounded enclosure is required instead.
func (x Rational) Float64() (f float64, exact bool) {
	return x.r.Float64()
}

// RoundUpFloat64 returns the smallest float64 that is >= x.
func (x Rational) RoundUpFloat64() float64 {
	f, exact := x.r.Float64()
	if exact {
		return f
	}
	if FromFloat64(f).Cmp(x) < 0 {
		return math.Nextafter(f, math.Inf(1))
	}
	return f
}

// RoundDownFloat64 returns the largest float64 that is <= x.
func (x Rational) RoundDownFloat64() float64 {
	f, exact := x.r.Float64()
	if exact {
		return f
	}
	if FromFloat64(f).Cmp(x) > 0 {
		return math.Nextafter(f, math.Inf(-1))
	}
	return f
}

// IsInteger reports whether x has denominator 1.
func (x Rational) IsInteger() bool {
	return x.r.IsInt()
}

// String renders x as scientific notation with 17 significant decimal
// digits, outward-rounded from the exact Rational.
func (x Rational) String() string {
	return x.Sci(17)
}

// Sci is adapted from apd's Decimal.ToSci: it renders a coefficient and
// exponent in scientific notation. Unlike ToSci, the coefficient here comes
// from rounding the exact big.Rat outward (away from zero) to sigDigits
// decimal digits, so the printed string is always a sound upper bound on
// |x| rather than a native base-10 value.
func (x Rational) Sci(sigDigits int) string {
	if x.IsZero() {
		return "0E+00"
	}
	neg := x.Sign() < 0
	abs := x.Abs()

	exp := decimalExponent(abs)
	// Scale abs by 10^(sigDigits-1-exp) so the integer part of the result
	// has exactly sigDigits digits, then round that scaled value up.
	scale := pow10(sigDigits - 1 - exp)
	scaled := new(big.Rat).Mul(abs.BigRat(), scale)
	q, r := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	digits := q.String()
	if len(digits) > sigDigits {
		// Rounding up pushed the mantissa to the next power of ten
		// (e.g. 9.99...95 -> 10.00...0); renormalize.
		digits = digits[:sigDigits]
		exp++
	}
	s := digits[:1]
	if len(digits) > 1 {
		s += "." + digits[1:]
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return sign + s + "E" + formatExp(exp)
}

func formatExp(exp int) string {
	if exp >= 0 {
		return "+" + padExp(exp)
	}
	return "-" + padExp(-exp)
}

func padExp(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}

// decimalExponent returns floor(log10(x)) for a positive Rational x, exact
// (no floating-point shortcuts): it starts from a digit-length estimate and
// nudges it until 10^e <= x < 10^(e+1).
func decimalExponent(x Rational) int {
	num, den := x.BigRat().Num(), x.BigRat().Denom()
	e := len(num.String()) - len(den.String())
	for cmpPow10(x, e) < 0 {
		e--
	}
	for cmpPow10(x, e+1) >= 0 {
		e++
	}
	return e
}

// cmpPow10 returns x.Cmp(10^e).
func cmpPow10(x Rational, e int) int {
	return x.BigRat().Cmp(pow10(e))
}

func pow10(e int) *big.Rat {
	out := new(big.Rat)
	if e >= 0 {
		out.SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e)), nil))
	} else {
		den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-e)), nil)
		out.SetFrac(big.NewInt(1), den)
	}
	return out
}
