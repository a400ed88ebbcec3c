// Package eval implements the two compositional, node-identity-memoized
// evaluators: RangeEvaluator (polymorphic over an abstract arithmetic
// domain) and RoundoffEvaluator (the analytical heart, deriving
// per-operator roundoff bounds). Both are parameterized by a
// capability-set interface rather than dispatched per node: static
// parameterization over dynamic dispatch.
package eval

import "github.com/smohebbi/daisy-go/interval"

// Domain is the capability set a range or error domain T must provide:
// +, -, x, /, sqrt, pow, and conversion to a plain interval. It is deliberately
// F-bounded (T must implement Domain[T]) so the evaluators can be written
// once and instantiated over interval.Interval, affine.Form, and
// smtrange.Range without any per-node virtual dispatch.
type Domain[T any] interface {
	Add(T) T
	Sub(T) T
	Neg() T
	Mul(T) T
	Quo(T) (T, error)
	Sqrt() (T, error)
	Pow(int) T
	ToInterval() interval.Interval
}
