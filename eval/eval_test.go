package eval

import (
	"testing"

	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/precision"
	"github.com/smohebbi/daisy-go/rational"
)

func r(n, d int64) rational.Rational { return rational.FromFrac(n, d) }

func liftInterval(iv interval.Interval) interval.Interval { return iv }

func TestEvalRangeLiteral(t *testing.T) {
	lit := ast.NewLit(r(3, 2))
	val, mem, err := EvalRange[interval.Interval](lit, nil, liftInterval)
	if err != nil {
		t.Fatalf("EvalRange: %v", err)
	}
	if val.Lo.Cmp(r(3, 2)) != 0 || val.Hi.Cmp(r(3, 2)) != 0 {
		t.Errorf("got %v, want [3/2,3/2]", val)
	}
	if mem.Len() != 1 {
		t.Errorf("mem.Len() = %d, want 1", mem.Len())
	}
}

func TestEvalRangeVarAndBinOp(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewBinOp(ast.OpPlus, ast.NewVar(x), ast.NewLit(rational.One))
	inputs := map[*ast.Ident]interval.Interval{
		x: interval.New(r(1, 1), r(2, 1)),
	}
	val, _, err := EvalRange[interval.Interval](expr, inputs, liftInterval)
	if err != nil {
		t.Fatalf("EvalRange: %v", err)
	}
	if val.Lo.Cmp(r(2, 1)) != 0 || val.Hi.Cmp(r(3, 1)) != 0 {
		t.Errorf("x+1 over [1,2] = %v, want [2,3]", val)
	}
}

func TestEvalRangeLetScoping(t *testing.T) {
	x := ast.NewIdent("x")
	y := ast.NewIdent("y")
	// let y = x + 1 in y * y
	letExpr := ast.NewLet(y,
		ast.NewBinOp(ast.OpPlus, ast.NewVar(x), ast.NewLit(rational.One)),
		ast.NewBinOp(ast.OpTimes, ast.NewVar(y), ast.NewVar(y)),
	)
	inputs := map[*ast.Ident]interval.Interval{
		x: interval.New(r(1, 1), r(1, 1)),
	}
	val, _, err := EvalRange[interval.Interval](letExpr, inputs, liftInterval)
	if err != nil {
		t.Fatalf("EvalRange: %v", err)
	}
	// y = 2, y*y = 4
	if val.Lo.Cmp(r(4, 1)) != 0 || val.Hi.Cmp(r(4, 1)) != 0 {
		t.Errorf("let y = x+1 in y*y over x=1 = %v, want [4,4]", val)
	}
}

func TestEvalRangeUnboundVariable(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewVar(x)
	_, _, err := EvalRange[interval.Interval](expr, nil, liftInterval)
	if err == nil {
		t.Error("expected UnboundVariable error")
	}
}

func TestEvalRangeDivByZero(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewBinOp(ast.OpDivide, ast.NewLit(rational.One), ast.NewVar(x))
	inputs := map[*ast.Ident]interval.Interval{
		x: interval.New(r(-1, 1), r(1, 1)),
	}
	_, _, err := EvalRange[interval.Interval](expr, inputs, liftInterval)
	if err == nil {
		t.Error("expected DivisionByZero error")
	}
}

func evalFullRoundoff(t *testing.T, e ast.Expr, inputs map[*ast.Ident]interval.Interval,
	inputErrors map[*ast.Ident]interval.Interval, prec precision.Precision, trackRoundoff bool) (interval.Interval, *ast.ExprMap[interval.Interval]) {
	t.Helper()
	_, ranges, err := EvalRange[interval.Interval](e, inputs, liftInterval)
	if err != nil {
		t.Fatalf("EvalRange: %v", err)
	}
	resErr, errs, _, err := EvalRoundoff[interval.Interval](
		e, ranges, inputErrors, nil, prec, prec, trackRoundoff,
		liftInterval, interval.PlusMinus,
	)
	if err != nil {
		t.Fatalf("EvalRoundoff: %v", err)
	}
	return resErr, errs
}

func TestEvalRoundoffZeroWhenNoErrorsAndNoRoundoff(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewBinOp(ast.OpPlus, ast.NewVar(x), ast.NewLit(rational.One))
	inputs := map[*ast.Ident]interval.Interval{x: interval.New(r(1, 1), r(2, 1))}
	inputErrors := map[*ast.Ident]interval.Interval{x: interval.Zero}
	resErr, _ := evalFullRoundoff(t, expr, inputs, inputErrors, precision.NewFloat64(), false)
	if resErr.Lo.Sign() != 0 || resErr.Hi.Sign() != 0 {
		t.Errorf("resErr = %v, want exact 0", resErr)
	}
}

func TestEvalRoundoffIntroducesErrorWhenTracked(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewBinOp(ast.OpTimes, ast.NewVar(x), ast.NewVar(x))
	inputs := map[*ast.Ident]interval.Interval{x: interval.New(r(1, 1), r(2, 1))}
	inputErrors := map[*ast.Ident]interval.Interval{x: interval.Zero}
	resErr, _ := evalFullRoundoff(t, expr, inputs, inputErrors, precision.NewFloat64(), true)
	if resErr.Hi.Sign() <= 0 {
		t.Errorf("expected positive roundoff error for x*x, got %v", resErr)
	}
}

func TestEvalRangeSqrtNegativeFails(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewSqrt(ast.NewVar(x))
	inputs := map[*ast.Ident]interval.Interval{x: interval.New(r(-1, 1), r(4, 1))}
	_, ranges, err := EvalRange[interval.Interval](expr, inputs, liftInterval)
	if err == nil {
		t.Fatalf("expected EvalRange to fail on negative sqrt domain, ranges=%v", ranges)
	}
}

func TestEvalRoundoffDivByZeroDetectedWithWidening(t *testing.T) {
	x := ast.NewIdent("x")
	expr := ast.NewBinOp(ast.OpDivide, ast.NewLit(rational.One), ast.NewVar(x))
	inputs := map[*ast.Ident]interval.Interval{x: interval.New(r(1, 1), r(2, 1))}
	_, ranges, err := EvalRange[interval.Interval](expr, inputs, liftInterval)
	if err != nil {
		t.Fatalf("EvalRange: %v", err)
	}
	// input error wide enough to push the denominator's enclosure to touch 0
	inputErrors := map[*ast.Ident]interval.Interval{x: interval.PlusMinus(r(3, 1))}
	_, _, _, err = EvalRoundoff[interval.Interval](
		expr, ranges, inputErrors, nil, precision.NewFloat64(), precision.NewFloat64(), true,
		liftInterval, interval.PlusMinus,
	)
	if err == nil {
		t.Error("expected DivisionByZero once the error-widened denominator spans 0")
	}
}
