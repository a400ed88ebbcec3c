package driver

import (
	"github.com/pkg/errors"

	"github.com/smohebbi/daisy-go/affine"
	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/config"
	"github.com/smohebbi/daisy-go/diag"
	"github.com/smohebbi/daisy-go/eval"
	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/precision"
	"github.com/smohebbi/daisy-go/rational"
	"github.com/smohebbi/daisy-go/smtrange"
)

// AnalyzeOne runs the full per-function pipeline and returns a
// FunctionResult that is never itself an error: operator-level
// failures (DivisionByZero, NegativeSqrt, ...) are recorded in the result's
// Err field rather than returned, so a caller analyzing many functions can
// keep going past one failure.
func AnalyzeOne(spec FunctionSpec) FunctionResult {
	res := FunctionResult{Name: spec.Name}

	inputErrors, inputFlags := effectiveInputErrors(spec)
	res.Flags |= inputFlags

	resultRange, intermRanges, err := runRangeEvaluator(spec.Expr, spec.InputRanges, spec.Options.RangeMethod)
	if err != nil {
		res.Err = errors.Wrapf(err, "analyzing %s", spec.Name)
		return res
	}
	res.ResultRange = resultRange
	res.IntermRanges = intermRanges

	resultErr, intermErrors, roundoffFlags, err := runRoundoffEvaluator(spec, intermRanges, inputErrors)
	if err != nil {
		res.Err = errors.Wrapf(err, "analyzing %s", spec.Name)
		return res
	}
	res.ResultError = resultErr
	res.IntermErrors = intermErrors
	res.Flags |= roundoffFlags

	if maxFinite, ok := spec.Options.Precision.MaxFinite(); ok && resultRange.MaxAbs().Cmp(maxFinite) > 0 {
		res.Flags |= diag.Overflow
		res.Warnings = append(res.Warnings, "result range exceeds "+spec.Options.Precision.String()+"'s max finite magnitude")
	}

	if trapped := res.Flags & spec.Options.Traps; trapped.Any() {
		res.Err = errors.Errorf("analyzing %s: trapped condition: %s", spec.Name, trapped)
	}

	return res
}

// precisionOf returns the declared precision for id, falling back to a
// per-function mixed-precision override and finally the uniform default.
func precisionOf(id *ast.Ident, spec FunctionSpec) precision.Precision {
	if p, ok := spec.PrecisionMap[id]; ok {
		return p
	}
	if p, ok := spec.Options.MixedPrecision[id]; ok {
		return p
	}
	return spec.Options.Precision
}

// effectiveInputErrors resolves the four-way default-error rule (initial
// errors on/off crossed with roundoff tracking on/off) into a total
// map[*ast.Ident]rational.Rational over every id in InputRanges, plus any
// Subnormal flag raised where an input's default error floored at its
// precision's denormal threshold.
func effectiveInputErrors(spec FunctionSpec) (map[*ast.Ident]rational.Rational, diag.Flags) {
	trackInitial := spec.Options.TrackInitial()
	trackRoundoff := spec.Options.TrackRoundoff()

	var flags diag.Flags
	out := make(map[*ast.Ident]rational.Rational, len(spec.InputRanges))
	for id, rng := range spec.InputRanges {
		switch {
		case trackInitial && trackRoundoff:
			if v, ok := spec.InputErrors[id]; ok {
				out[id] = v
				continue
			}
			v, clamped := precisionOf(id, spec).AbsRoundoffWithPolicy(rng, spec.Options.Policy)
			if clamped {
				flags |= diag.Subnormal
			}
			out[id] = v
		case trackInitial && !trackRoundoff:
			if v, ok := spec.InputErrors[id]; ok {
				out[id] = v
				continue
			}
			out[id] = rational.Zero
		case !trackInitial && trackRoundoff:
			v, clamped := precisionOf(id, spec).AbsRoundoffWithPolicy(rng, spec.Options.Policy)
			if clamped {
				flags |= diag.Subnormal
			}
			out[id] = v
		default:
			out[id] = rational.Zero
		}
	}
	return out, flags
}

func identityLift(iv interval.Interval) interval.Interval { return iv }

// runRangeEvaluator dispatches to the Domain instantiation the configured
// RangeMethod selects, then collapses the result to a plain Interval
// regardless of which domain actually ran.
func runRangeEvaluator(
	expr ast.Expr,
	inputRanges map[*ast.Ident]interval.Interval,
	method config.RangeMethod,
) (interval.Interval, *ast.ExprMap[interval.Interval], error) {
	switch method {
	case config.RangeAffine:
		inputs := make(map[*ast.Ident]affine.Form, len(inputRanges))
		for id, iv := range inputRanges {
			inputs[id] = affine.FromInterval(iv)
		}
		val, mem, err := eval.EvalRange[affine.Form](expr, inputs, affine.FromInterval)
		if err != nil {
			return interval.Interval{}, nil, err
		}
		return val.ToInterval(), collapseToInterval(mem), nil

	case config.RangeSMT:
		inputs := make(map[*ast.Ident]smtrange.Range, len(inputRanges))
		for id, iv := range inputRanges {
			inputs[id] = smtrange.FromInterval(iv)
		}
		val, mem, err := eval.EvalRange[smtrange.Range](expr, inputs, smtrange.FromInterval)
		if err != nil {
			return interval.Interval{}, nil, err
		}
		return val.ToInterval(), collapseToInterval(mem), nil

	default:
		val, mem, err := eval.EvalRange[interval.Interval](expr, inputRanges, identityLift)
		if err != nil {
			return interval.Interval{}, nil, err
		}
		return val, collapseToInterval(mem), nil
	}
}

// runRoundoffEvaluator mirrors runRangeEvaluator for the error domain: it
// lifts the already-resolved rational input errors into the chosen E via
// PlusMinus, runs EvalRoundoff, and collapses to a plain Rational via
// E.ToInterval().MaxAbs().
func runRoundoffEvaluator(
	spec FunctionSpec,
	intermRanges *ast.ExprMap[interval.Interval],
	inputErrors map[*ast.Ident]rational.Rational,
) (rational.Rational, *ast.ExprMap[interval.Interval], diag.Flags, error) {
	defaultPrec := spec.Options.Precision
	constPrec := spec.Options.ConstantsPrecision
	trackRoundoff := spec.Options.TrackRoundoff()

	// Same precedence as precisionOf: PrecisionMap over MixedPrecision.
	precMap := make(map[*ast.Ident]precision.Precision, len(spec.Options.MixedPrecision)+len(spec.PrecisionMap))
	for id, p := range spec.Options.MixedPrecision {
		precMap[id] = p
	}
	for id, p := range spec.PrecisionMap {
		precMap[id] = p
	}

	switch spec.Options.ErrorMethod {
	case config.ErrorAffine:
		errs := make(map[*ast.Ident]affine.Form, len(inputErrors))
		for id, r := range inputErrors {
			errs[id] = affine.PlusMinus(r)
		}
		val, mem, flags, err := eval.EvalRoundoff[affine.Form](
			spec.Expr, intermRanges, errs, precMap, defaultPrec, constPrec, trackRoundoff,
			affine.FromInterval, affine.PlusMinus,
		)
		if err != nil {
			return rational.Rational{}, nil, flags, err
		}
		return val.ToInterval().MaxAbs(), collapseToInterval(mem), flags, nil

	default:
		errs := make(map[*ast.Ident]interval.Interval, len(inputErrors))
		for id, r := range inputErrors {
			errs[id] = interval.PlusMinus(r)
		}
		val, mem, flags, err := eval.EvalRoundoff[interval.Interval](
			spec.Expr, intermRanges, errs, precMap, defaultPrec, constPrec, trackRoundoff,
			identityLift, interval.PlusMinus,
		)
		if err != nil {
			return rational.Rational{}, nil, flags, err
		}
		return val.MaxAbs(), collapseToInterval(mem), flags, nil
	}
}

// collapseToInterval turns any T whose range/error domain exposes
// ToInterval (interval.Interval itself, affine.Form, smtrange.Range) into a
// plain map[Expr]Interval, so the driver's public FunctionResult never
// exposes which domain actually ran internally.
func collapseToInterval[T interface{ ToInterval() interval.Interval }](mem *ast.ExprMap[T]) *ast.ExprMap[interval.Interval] {
	out := ast.NewExprMap[interval.Interval]()
	mem.Range(func(e ast.Expr, v T) {
		out.Set(e, v.ToInterval())
	})
	return out
}
