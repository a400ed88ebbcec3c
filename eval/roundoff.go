package eval

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/diag"
	"github.com/smohebbi/daisy-go/failure"
	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/precision"
	"github.com/smohebbi/daisy-go/rational"
)

// EvalRoundoff is the analytical heart of the analyzer: given every
// sub-expression's already-computed range, the precisions in play, and the
// input errors, it derives a sound error bound for every sub-expression,
// combining first-order error propagation with (optionally) the roundoff
// each operator itself introduces.
//
// ranges must cover every node reachable from root (normally the Interval
// map a prior EvalRange call produced, collapsed via ToInterval if the
// range domain wasn't already Interval). lift and plusMinus are E's
// "fromInterval" and "+/-" capabilities; defaultPrecision is the uniform
// precision used where precisionMap has no override for the identifier
// currently in scope.
func EvalRoundoff[E Domain[E]](
	root ast.Expr,
	ranges *ast.ExprMap[interval.Interval],
	inputErrors map[*ast.Ident]E,
	precisionMap map[*ast.Ident]precision.Precision,
	defaultPrecision precision.Precision,
	constantsPrecision precision.Precision,
	trackRoundoff bool,
	lift func(interval.Interval) E,
	plusMinus func(rational.Rational) E,
) (E, *ast.ExprMap[E], diag.Flags, error) {
	mem := ast.NewExprMap[E]()
	r := &roundoffRun[E]{
		ranges:             ranges,
		inputErrors:        inputErrors,
		precisionMap:       precisionMap,
		constantsPrecision: constantsPrecision,
		trackRoundoff:      trackRoundoff,
		lift:               lift,
		plusMinus:          plusMinus,
		mem:                mem,
	}
	val, err := r.eval(root, nil, defaultPrecision)
	if err != nil {
		var zero E
		return zero, mem, r.flags, err
	}
	return val, mem, r.flags, nil
}

type roundoffRun[E Domain[E]] struct {
	ranges             *ast.ExprMap[interval.Interval]
	inputErrors        map[*ast.Ident]E
	precisionMap       map[*ast.Ident]precision.Precision
	constantsPrecision precision.Precision
	trackRoundoff      bool
	lift               func(interval.Interval) E
	plusMinus          func(rational.Rational) E
	mem                *ast.ExprMap[E]
	flags              diag.Flags
}

func (r *roundoffRun[E]) rangeOf(e ast.Expr) interval.Interval {
	iv, ok := r.ranges.Get(e)
	if !ok {
		// The driver is responsible for running EvalRange first over the
		// same tree; a missing entry is a caller bug, not a recoverable
		// analysis failure.
		panic("eval: missing range for node " + e.String())
	}
	return iv
}

// scale returns k*e by lifting k into E and multiplying; used for the
// scalar divisions the Divide/Sqrt propagation rules need.
func (r *roundoffRun[E]) scale(e E, k rational.Rational) E {
	return r.lift(interval.FromRational(k)).Mul(e)
}

// newRoundoff returns the additional error component introduced by
// computing outRange (widened by the already-propagated error eProp) in
// precision p, or the E zero value if trackRoundoff is false.
func (r *roundoffRun[E]) newRoundoff(p precision.Precision, outRange interval.Interval, eProp E) E {
	var zero E
	if !r.trackRoundoff {
		return zero
	}
	m := eProp.ToInterval().MaxAbs()
	widened := outRange.Add(interval.PlusMinus(m))
	rho, clamped := p.AbsRoundoff(widened)
	if clamped {
		r.flags |= diag.Subnormal
	}
	if rho.IsZero() {
		return zero
	}
	return r.plusMinus(rho)
}

func (r *roundoffRun[E]) eval(e ast.Expr, env *bindings[E], prec precision.Precision) (E, error) {
	if v, ok := r.mem.Get(e); ok {
		return v, nil
	}

	var out E
	var err error

	switch n := e.(type) {
	case *ast.Lit:
		if r.trackRoundoff && !isExactlyRepresentable(n.Value, r.constantsPrecision) {
			rho, clamped := r.constantsPrecision.AbsRoundoff(interval.FromRational(n.Value))
			if clamped {
				r.flags |= diag.Subnormal
			}
			out = r.plusMinus(rho)
		}

	case *ast.Var:
		if v, ok := env.lookup(n.Id); ok {
			out = v
		} else if v, ok := r.inputErrors[n.Id]; ok {
			out = v
		} else {
			return out, errors.WithStack(&failure.UnboundVariable{Id: n.Id})
		}

	case *ast.UMinus:
		x, xerr := r.eval(n.X, env, prec)
		if xerr != nil {
			return out, xerr
		}
		// Negation is exact in every supported finite-precision format: no
		// new roundoff, only the sign flip on the propagated error.
		out = x.Neg()

	case *ast.Sqrt:
		x, xerr := r.eval(n.X, env, prec)
		if xerr != nil {
			return out, xerr
		}
		argRange := r.rangeOf(n.X)
		if argRange.Lo.Sign() < 0 {
			return out, errors.WithStack(&failure.NegativeSqrt{Expr: e})
		}
		outRange := r.rangeOf(e)
		denom := outRange.Scale(rational.Two)
		if denom.ContainsZero() {
			return out, errors.WithStack(&failure.DivisionByZero{Expr: e})
		}
		invDenomMag, qerr := rational.One.Quo(denom.MinAbs())
		if qerr != nil {
			return out, qerr
		}
		propagated := r.scale(x, invDenomMag)
		propagated = propagated.Add(r.newRoundoff(prec, outRange, propagated))
		out = propagated

	case *ast.BinOp:
		l, lerr := r.eval(n.L, env, prec)
		if lerr != nil {
			return out, lerr
		}
		rr, rerr := r.eval(n.R, env, prec)
		if rerr != nil {
			return out, rerr
		}
		lRange, rRange := r.rangeOf(n.L), r.rangeOf(n.R)
		outRange := r.rangeOf(e)

		var propagated E
		switch n.Op {
		case ast.OpPlus:
			propagated = l.Add(rr)
		case ast.OpMinus:
			propagated = l.Sub(rr)
		case ast.OpTimes:
			propagated = r.lift(lRange).Mul(rr).Add(r.lift(rRange).Mul(l)).Add(l.Mul(rr))
		case ast.OpDivide:
			denomWithErr := rRange.Add(interval.PlusMinus(rr.ToInterval().MaxAbs()))
			if denomWithErr.ContainsZero() {
				return out, errors.WithStack(&failure.DivisionByZero{Expr: e})
			}
			invMag, qerr := rational.One.Quo(denomWithErr.MinAbs())
			if qerr != nil {
				return out, qerr
			}
			// (l+el)/(r+er) - l/r = (el - (l/r)*er) / (r+er)
			numerator := l.Sub(r.lift(outRange).Mul(rr))
			propagated = r.scale(numerator, invMag)
		default:
			return out, errors.WithStack(&failure.UnsupportedOperator{Kind: n.Op.String()})
		}
		propagated = propagated.Add(r.newRoundoff(prec, outRange, propagated))
		out = propagated

	case *ast.Pow:
		x, xerr := r.eval(n.X, env, prec)
		if xerr != nil {
			return out, xerr
		}
		if n.N == 0 {
			break
		}
		xRange := r.rangeOf(n.X)
		curErr := x
		curRange := xRange
		for k := 2; k <= n.N; k++ {
			prodRange := xRange.Pow(k)
			propagated := r.lift(curRange).Mul(x).Add(r.lift(xRange).Mul(curErr)).Add(curErr.Mul(x))
			propagated = propagated.Add(r.newRoundoff(prec, prodRange, propagated))
			curErr = propagated
			curRange = prodRange
		}
		out = curErr

	case *ast.Let:
		valErr, verr := r.eval(n.Value, env, prec)
		if verr != nil {
			return out, verr
		}
		idPrec := prec
		if p, ok := r.precisionMap[n.Id]; ok {
			idPrec = p
		}
		if idPrec.Bits() < prec.Bits() {
			valRange := r.rangeOf(n.Value)
			cast, clamped := idPrec.AbsRoundoff(valRange)
			if clamped {
				r.flags |= diag.Subnormal
			}
			r.flags |= diag.Cast
			valErr = valErr.Add(r.plusMinus(cast))
		}
		childEnv := &bindings[E]{id: n.Id, val: valErr, parent: env}
		body, berr := r.eval(n.Body, childEnv, idPrec)
		if berr != nil {
			return out, berr
		}
		out = body

	default:
		return out, errors.WithStack(&failure.UnsupportedOperator{Kind: "unknown ast.Expr"})
	}

	r.mem.Set(e, out)
	return out, err
}

// isExactlyRepresentable reports whether v has an exact finite binary
// representation in p: its denominator (in lowest terms) must be a power
// of two, and its numerator must fit within p's mantissa width. This is a
// conservative approximation of IEEE-754 representability (it ignores the
// exponent range, which only matters for subnormals near the denormal
// threshold already handled by AbsRoundoff) good enough to decide whether a
// literal's rounding error is zero or must be charged once.
func isExactlyRepresentable(v rational.Rational, p precision.Precision) bool {
	if v.IsZero() {
		return true
	}
	br := v.BigRat()
	den := br.Denom()
	if den.BitLen() == 0 {
		return true
	}
	// den must be a power of two: den == 1<<(den.BitLen()-1).
	check := new(big.Int).Lsh(big.NewInt(1), uint(den.BitLen()-1))
	if check.Cmp(den) != 0 {
		return false
	}
	num := new(big.Int).Abs(br.Num())
	return uint(num.BitLen()) <= p.Bits()
}
