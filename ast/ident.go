// Package ast defines the real-arithmetic expression tree that the
// evaluator packages traverse: literals, variables, unary minus, square
// root, the four binary arithmetic operators, integer power, and
// let-binding. Every node carries reference-equality identity, minted from
// a single atomic counter, so intermediate-result maps can key on node
// identity rather than structural equality.
package ast

import "sync/atomic"

var nodeCounter uint64

func nextNodeID() uint64 {
	return atomic.AddUint64(&nodeCounter, 1)
}

// Ident is an opaque, immutable, hashable identifier: a variable name used
// by Var and Let nodes. Two Idents are the same identifier iff they are the
// same *Ident pointer; NewIdent always mints a fresh one.
type Ident struct {
	id        uint64
	name      string
	isDelta   bool
	isEpsilon bool
}

// NewIdent returns a fresh identifier with the given name hint.
func NewIdent(name string) *Ident {
	return &Ident{id: nextNodeID(), name: name}
}

// NewDeltaIdent returns a fresh identifier marked as an error-term ("delta")
// symbol, the marker downstream phases use to tell input-error
// identifiers apart from ordinary program variables.
func NewDeltaIdent(name string) *Ident {
	return &Ident{id: nextNodeID(), name: name, isDelta: true}
}

// NewEpsilonIdent returns a fresh identifier marked as a noise-symbol
// ("epsilon") placeholder, for front ends that need to name one explicitly
// rather than relying on affine.Form's internal counter.
func NewEpsilonIdent(name string) *Ident {
	return &Ident{id: nextNodeID(), name: name, isEpsilon: true}
}

// ID returns the identifier's globally unique id.
func (id *Ident) ID() uint64 { return id.id }

// Name returns the identifier's name hint. It is not guaranteed unique;
// only ID and pointer identity are.
func (id *Ident) Name() string { return id.name }

// IsDelta reports whether this identifier names an input-error term.
func (id *Ident) IsDelta() bool { return id.isDelta }

// IsEpsilon reports whether this identifier names a noise-symbol term.
func (id *Ident) IsEpsilon() bool { return id.isEpsilon }

func (id *Ident) String() string { return id.name }
