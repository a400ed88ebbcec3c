package ast

import (
	"fmt"

	"github.com/smohebbi/daisy-go/rational"
)

// Expr is the closed sum type of real-valued expressions. It is sealed: the
// only implementations are the types defined in this file, so evaluator
// packages can do an exhaustive type switch instead of per-node virtual
// dispatch.
type Expr interface {
	// ID returns the node's stable, globally unique identity, assigned at
	// construction. Two structurally identical sub-expressions built by two
	// separate constructor calls have different IDs.
	ID() uint64
	// String renders the node for diagnostics; it is not a parser-roundtrip
	// format.
	String() string

	sealed()
}

// Op is a binary arithmetic operator.
type Op int

const (
	OpPlus Op = iota
	OpMinus
	OpTimes
	OpDivide
)

func (o Op) String() string {
	switch o {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpTimes:
		return "*"
	case OpDivide:
		return "/"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Lit is a real literal, carrying an exact Rational value.
type Lit struct {
	id    uint64
	Value rational.Rational
}

// NewLit returns a fresh literal node.
func NewLit(v rational.Rational) *Lit { return &Lit{id: nextNodeID(), Value: v} }

func (n *Lit) ID() uint64      { return n.id }
func (n *Lit) String() string  { return n.Value.String() }
func (*Lit) sealed()           {}

// Var is a reference to an identifier.
type Var struct {
	id uint64
	Id *Ident
}

// NewVar returns a fresh variable-reference node for id.
func NewVar(id *Ident) *Var { return &Var{id: nextNodeID(), Id: id} }

func (n *Var) ID() uint64     { return n.id }
func (n *Var) String() string { return n.Id.Name() }
func (*Var) sealed()          {}

// UMinus is unary negation.
type UMinus struct {
	id uint64
	X  Expr
}

// NewUMinus returns a fresh negation node.
func NewUMinus(x Expr) *UMinus { return &UMinus{id: nextNodeID(), X: x} }

func (n *UMinus) ID() uint64     { return n.id }
func (n *UMinus) String() string { return "-(" + n.X.String() + ")" }
func (*UMinus) sealed()          {}

// Sqrt is the real square-root function applied to X.
type Sqrt struct {
	id uint64
	X  Expr
}

// NewSqrt returns a fresh sqrt node.
func NewSqrt(x Expr) *Sqrt { return &Sqrt{id: nextNodeID(), X: x} }

func (n *Sqrt) ID() uint64     { return n.id }
func (n *Sqrt) String() string { return "sqrt(" + n.X.String() + ")" }
func (*Sqrt) sealed()          {}

// BinOp is a binary plus/minus/times/divide node.
type BinOp struct {
	id   uint64
	Op   Op
	L, R Expr
}

// NewBinOp returns a fresh binary-operator node.
func NewBinOp(op Op, l, r Expr) *BinOp { return &BinOp{id: nextNodeID(), Op: op, L: l, R: r} }

func (n *BinOp) ID() uint64 { return n.id }
func (n *BinOp) String() string {
	return "(" + n.L.String() + " " + n.Op.String() + " " + n.R.String() + ")"
}
func (*BinOp) sealed() {}

// Pow is integer exponentiation, x^n for a literal non-negative exponent n.
type Pow struct {
	id uint64
	X  Expr
	N  int
}

// NewPow returns a fresh power node. It panics if n < 0: Pow is only
// defined for non-negative integer exponents, so a front end wanting
// negative powers must desugar to Divide(1, Pow(x, -n)) itself.
func NewPow(x Expr, n int) *Pow {
	if n < 0 {
		panic("ast: Pow exponent must be >= 0")
	}
	return &Pow{id: nextNodeID(), X: x, N: n}
}

func (n *Pow) ID() uint64     { return n.id }
func (n *Pow) String() string { return fmt.Sprintf("(%s)^%d", n.X.String(), n.N) }
func (*Pow) sealed()          {}

// Let binds Id to Value's result within the lexical scope of Body; it does
// not substitute Value into Body's siblings.
type Let struct {
	id    uint64
	Id    *Ident
	Value Expr
	Body  Expr
}

// NewLet returns a fresh let-binding node.
func NewLet(id *Ident, value, body Expr) *Let {
	return &Let{id: nextNodeID(), Id: id, Value: value, Body: body}
}

func (n *Let) ID() uint64 { return n.id }
func (n *Let) String() string {
	return "let " + n.Id.Name() + " = " + n.Value.String() + " in " + n.Body.String()
}
func (*Let) sealed() {}
