package eval

import (
	"github.com/pkg/errors"

	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/failure"
	"github.com/smohebbi/daisy-go/interval"
)

// bindings is a persistent, immutable environment chain used to implement
// Let's lexical scoping without mutating any shared map: each Let pushes
// one frame and the parent frame (and, ultimately, the caller's inputs
// map) remains untouched and safe to reuse across sibling branches or
// concurrent calls.
type bindings[T any] struct {
	id     *ast.Ident
	val    T
	parent *bindings[T]
}

func (b *bindings[T]) lookup(id *ast.Ident) (T, bool) {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.id == id {
			return cur.val, true
		}
	}
	var zero T
	return zero, false
}

// EvalRange is a compositional, node-identity-memoized evaluator over the
// abstract domain T. inputs supplies every free variable's value; lift
// constructs a T from a plain interval, used for literal nodes. It returns
// the root expression's value and a map from every sub-expression
// (including constants and variable references) to its T value.
func EvalRange[T Domain[T]](
	root ast.Expr,
	inputs map[*ast.Ident]T,
	lift func(interval.Interval) T,
) (T, *ast.ExprMap[T], error) {
	mem := ast.NewExprMap[T]()
	val, err := evalRangeNode(root, inputs, nil, lift, mem)
	if err != nil {
		var zero T
		return zero, mem, err
	}
	return val, mem, nil
}

func evalRangeNode[T Domain[T]](
	e ast.Expr,
	inputs map[*ast.Ident]T,
	env *bindings[T],
	lift func(interval.Interval) T,
	mem *ast.ExprMap[T],
) (T, error) {
	if v, ok := mem.Get(e); ok {
		return v, nil
	}

	var out T
	var err error

	switch n := e.(type) {
	case *ast.Lit:
		out = lift(interval.FromRational(n.Value))

	case *ast.Var:
		if v, ok := env.lookup(n.Id); ok {
			out = v
		} else if v, ok := inputs[n.Id]; ok {
			out = v
		} else {
			return out, errors.WithStack(&failure.UnboundVariable{Id: n.Id})
		}

	case *ast.UMinus:
		x, xerr := evalRangeNode(n.X, inputs, env, lift, mem)
		if xerr != nil {
			return out, xerr
		}
		out = x.Neg()

	case *ast.Sqrt:
		x, xerr := evalRangeNode(n.X, inputs, env, lift, mem)
		if xerr != nil {
			return out, xerr
		}
		out, err = x.Sqrt()
		if err != nil {
			return out, errors.WithStack(&failure.NegativeSqrt{Expr: e})
		}

	case *ast.BinOp:
		l, lerr := evalRangeNode(n.L, inputs, env, lift, mem)
		if lerr != nil {
			return out, lerr
		}
		r, rerr := evalRangeNode(n.R, inputs, env, lift, mem)
		if rerr != nil {
			return out, rerr
		}
		switch n.Op {
		case ast.OpPlus:
			out = l.Add(r)
		case ast.OpMinus:
			out = l.Sub(r)
		case ast.OpTimes:
			out = l.Mul(r)
		case ast.OpDivide:
			out, err = l.Quo(r)
			if err != nil {
				return out, errors.WithStack(&failure.DivisionByZero{Expr: e})
			}
		default:
			return out, errors.WithStack(&failure.UnsupportedOperator{Kind: n.Op.String()})
		}

	case *ast.Pow:
		x, xerr := evalRangeNode(n.X, inputs, env, lift, mem)
		if xerr != nil {
			return out, xerr
		}
		out = x.Pow(n.N)

	case *ast.Let:
		v, verr := evalRangeNode(n.Value, inputs, env, lift, mem)
		if verr != nil {
			return out, verr
		}
		childEnv := &bindings[T]{id: n.Id, val: v, parent: env}
		body, berr := evalRangeNode(n.Body, inputs, childEnv, lift, mem)
		if berr != nil {
			return out, berr
		}
		out = body

	default:
		return out, errors.WithStack(&failure.UnsupportedOperator{Kind: "unknown ast.Expr"})
	}

	mem.Set(e, out)
	return out, nil
}
