package driver

import (
	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

// The functions below are six end-to-end regression scenarios
// (bspline0, bspline1, rigidBody1, doppler, turbine1, sineOrder3),
// hand-encoded as ast.Expr trees since parsing a source language is out of
// scope. Benchmarks exposes them by name so both the test suite and the
// cmd/daisy shell can run the same fixed set without a real parser.

func lit(n, d int64) ast.Expr { return ast.NewLit(rational.FromFrac(n, d)) }

func bin(op ast.Op, l, r ast.Expr) ast.Expr { return ast.NewBinOp(op, l, r) }

func ivRange(lo, hi int64) interval.Interval {
	return interval.New(rational.FromInt64(lo), rational.FromInt64(hi))
}

// Benchmark bundles a named function's expression tree with its
// precondition, ready to drop into a FunctionSpec.
type Benchmark struct {
	Name        string
	Expr        ast.Expr
	InputRanges map[*ast.Ident]interval.Interval
}

// Benchmarks returns fresh instances of the six scenarios.
// "Fresh" matters: ast nodes carry identity, so running the same Benchmark
// twice requires two separate calls rather than reusing one Expr.
func Benchmarks() []Benchmark {
	build := func(name string, fn func() (ast.Expr, map[*ast.Ident]interval.Interval)) Benchmark {
		expr, inputs := fn()
		return Benchmark{Name: name, Expr: expr, InputRanges: inputs}
	}
	return []Benchmark{
		build("bspline0", bspline0),
		build("bspline1", bspline1),
		build("rigidBody1", rigidBody1),
		build("doppler", doppler),
		build("turbine1", turbine1),
		build("sineOrder3", sineOrder3),
	}
}

func bspline0() (ast.Expr, map[*ast.Ident]interval.Interval) {
	u := ast.NewIdent("u")
	// (1-u)^3 / 6
	oneMinusU := bin(ast.OpMinus, lit(1, 1), ast.NewVar(u))
	expr := bin(ast.OpDivide, ast.NewPow(oneMinusU, 3), lit(6, 1))
	return expr, map[*ast.Ident]interval.Interval{u: interval.New(rational.Zero, rational.FromFrac(875, 1000))}
}

func bspline1() (ast.Expr, map[*ast.Ident]interval.Interval) {
	u := ast.NewIdent("u")
	// (3u^3 - 6u^2 + 4) / 6
	term1 := bin(ast.OpTimes, lit(3, 1), ast.NewPow(ast.NewVar(u), 3))
	term2 := bin(ast.OpTimes, lit(6, 1), ast.NewPow(ast.NewVar(u), 2))
	numerator := bin(ast.OpPlus, bin(ast.OpMinus, term1, term2), lit(4, 1))
	expr := bin(ast.OpDivide, numerator, lit(6, 1))
	return expr, map[*ast.Ident]interval.Interval{u: interval.New(rational.FromFrac(875, 1000), rational.One)}
}

func rigidBody1() (ast.Expr, map[*ast.Ident]interval.Interval) {
	x1, x2, x3 := ast.NewIdent("x1"), ast.NewIdent("x2"), ast.NewIdent("x3")
	// -x1*x2 - 2*x2*x3 - x1 - x3
	t1 := ast.NewUMinus(bin(ast.OpTimes, ast.NewVar(x1), ast.NewVar(x2)))
	t2 := bin(ast.OpTimes, lit(2, 1), bin(ast.OpTimes, ast.NewVar(x2), ast.NewVar(x3)))
	expr := bin(ast.OpMinus, bin(ast.OpMinus, bin(ast.OpMinus, t1, t2), ast.NewVar(x1)), ast.NewVar(x3))
	inputs := map[*ast.Ident]interval.Interval{
		x1: ivRange(-15, 15), x2: ivRange(-15, 15), x3: ivRange(-15, 15),
	}
	return expr, inputs
}

func sineOrder3() (ast.Expr, map[*ast.Ident]interval.Interval) {
	x := ast.NewIdent("x")
	// 0.954*x - 0.1*x^3
	t1 := bin(ast.OpTimes, lit(954, 1000), ast.NewVar(x))
	t2 := bin(ast.OpTimes, lit(1, 10), ast.NewPow(ast.NewVar(x), 3))
	expr := bin(ast.OpMinus, t1, t2)
	return expr, map[*ast.Ident]interval.Interval{x: ivRange(-2, 2)}
}

func doppler() (ast.Expr, map[*ast.Ident]interval.Interval) {
	u, v, T := ast.NewIdent("u"), ast.NewIdent("v"), ast.NewIdent("T")
	// t1 = 331.4 + 0.6*T; (-t1*v) / (t1+u)^2
	t1 := bin(ast.OpPlus, lit(3314, 10), bin(ast.OpTimes, lit(6, 10), ast.NewVar(T)))
	numerator := ast.NewUMinus(bin(ast.OpTimes, t1, ast.NewVar(v)))
	denom := ast.NewPow(bin(ast.OpPlus, t1, ast.NewVar(u)), 2)
	expr := bin(ast.OpDivide, numerator, denom)
	inputs := map[*ast.Ident]interval.Interval{
		u: ivRange(-100, 100),
		v: interval.New(rational.FromInt64(20), rational.FromInt64(20000)),
		T: ivRange(-30, 50),
	}
	return expr, inputs
}

func turbine1() (ast.Expr, map[*ast.Ident]interval.Interval) {
	v, w, rr := ast.NewIdent("v"), ast.NewIdent("w"), ast.NewIdent("r")
	// 3 + 2/r^2 - 0.125*(3-2v)*(w^2*r^2)/(1-v) - 4.5
	term2 := bin(ast.OpDivide, lit(2, 1), ast.NewPow(ast.NewVar(rr), 2))
	num := bin(ast.OpTimes,
		bin(ast.OpTimes, lit(125, 1000), bin(ast.OpMinus, lit(3, 1), bin(ast.OpTimes, lit(2, 1), ast.NewVar(v)))),
		bin(ast.OpTimes, ast.NewPow(ast.NewVar(w), 2), ast.NewPow(ast.NewVar(rr), 2)),
	)
	term3 := bin(ast.OpDivide, num, bin(ast.OpMinus, lit(1, 1), ast.NewVar(v)))
	expr := bin(ast.OpMinus, bin(ast.OpPlus, bin(ast.OpPlus, lit(3, 1), term2), ast.NewUMinus(term3)), lit(45, 10))
	inputs := map[*ast.Ident]interval.Interval{
		v:  interval.New(rational.FromFrac(-45, 100), rational.FromFrac(-3, 100)),
		w:  interval.New(rational.FromFrac(4, 10), rational.FromFrac(9, 10)),
		rr: interval.New(rational.FromFrac(38, 10), rational.FromFrac(78, 10)),
	}
	return expr, inputs
}
