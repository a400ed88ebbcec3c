// Package config describes the per-function analysis options: which range
// and error domains to run, the default (and optional per-variable)
// precision, and the two tracking toggles that shape how input errors
// default. Options is an immutable-by-convention value type with
// With*-style copy constructors, safe to share across concurrent driver
// workers as long as callers don't mutate a shared instance's map fields
// directly.
package config

import (
	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/diag"
	"github.com/smohebbi/daisy-go/precision"
)

// RangeMethod selects the abstract domain the RangeEvaluator runs over.
type RangeMethod int

const (
	RangeInterval RangeMethod = iota
	RangeAffine
	RangeSMT
)

func (m RangeMethod) String() string {
	switch m {
	case RangeInterval:
		return "interval"
	case RangeAffine:
		return "affine"
	case RangeSMT:
		return "smt"
	default:
		return "unknown"
	}
}

// ErrorMethod selects the abstract domain the RoundoffEvaluator runs over.
type ErrorMethod int

const (
	ErrorInterval ErrorMethod = iota
	ErrorAffine
)

func (m ErrorMethod) String() string {
	switch m {
	case ErrorInterval:
		return "interval"
	case ErrorAffine:
		return "affine"
	default:
		return "unknown"
	}
}

// Options is the per-function analysis configuration.
type Options struct {
	RangeMethod RangeMethod
	ErrorMethod ErrorMethod

	// Precision is the uniform default; MixedPrecision overrides it for
	// specific identifiers.
	Precision      precision.Precision
	MixedPrecision map[*ast.Ident]precision.Precision

	// ConstantsPrecision is the precision literals are checked against for
	// exact representability. The driver uses it exactly as set; its zero
	// value is Float32. WithPrecision copies Precision into it only while it
	// still holds that zero value.
	ConstantsPrecision precision.Precision

	// NoInitialErrors disables input-error tracking.
	NoInitialErrors bool
	// NoRoundoff disables per-operator roundoff accounting.
	NoRoundoff bool

	// Policy controls the absRoundoff/absRoundoffCheated choice for the
	// default input errors the driver computes. Per-operator and literal
	// roundoff in eval.EvalRoundoff always use the non-cheated model.
	Policy precision.Policy

	// Traps upgrades the named condition bits from an advisory
	// FunctionResult.Flags entry into a hard FunctionResult.Err. Zero value
	// traps nothing.
	Traps diag.Flags
}

// Default returns the conservative baseline: uniform Float64, both
// tracking toggles on, nothing mixed.
func Default() Options {
	return Options{
		RangeMethod:        RangeInterval,
		ErrorMethod:        ErrorAffine,
		Precision:          precision.NewFloat64(),
		ConstantsPrecision: precision.NewFloat64(),
	}
}

// WithPrecision returns a copy of o with its uniform default precision
// changed, also seeding ConstantsPrecision if it still holds its zero value
// (Float32).
func (o Options) WithPrecision(p precision.Precision) Options {
	o.Precision = p
	if o.ConstantsPrecision == (precision.Precision{}) {
		o.ConstantsPrecision = p
	}
	return o
}

// WithRangeMethod returns a copy of o with its range domain changed.
func (o Options) WithRangeMethod(m RangeMethod) Options {
	o.RangeMethod = m
	return o
}

// WithErrorMethod returns a copy of o with its error domain changed.
func (o Options) WithErrorMethod(m ErrorMethod) Options {
	o.ErrorMethod = m
	return o
}

// WithTraps returns a copy of o with its trap mask changed.
func (o Options) WithTraps(f diag.Flags) Options {
	o.Traps = f
	return o
}

// TrackInitial reports whether input errors should be tracked at all.
func (o Options) TrackInitial() bool { return !o.NoInitialErrors }

// TrackRoundoff reports whether per-operator roundoff should be
// accumulated.
func (o Options) TrackRoundoff() bool { return !o.NoRoundoff }
