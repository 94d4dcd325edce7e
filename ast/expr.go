package ast

import (
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/types"
)

// Expr is the tagged-variant interface implemented by every expression
// node. Every Expr carries an optional-then-required resolved Type: nil
// until the analyzer visits it, non-nil afterward.
type Expr interface {
	exprNode()
	Pos() int
	ResolvedType() *types.Type
	SetResolvedType(*types.Type)
}

type exprBase struct {
	Index int
	Type  *types.Type
}

func (e exprBase) Pos() int                       { return e.Index }
func (exprBase) exprNode()                        {}
func (e exprBase) ResolvedType() *types.Type       { return e.Type }
func (e *exprBase) SetResolvedType(t *types.Type)  { e.Type = t }

// Literal is a constant value: nil, a bool, a rune (Character), a string,
// *big.Int (Integer), or *big.Float (Decimal). The parser performs the
// literal conversion spec.md §4.2 describes; this node simply carries the
// already-converted value.
type Literal struct {
	exprBase
	Value interface{}
}

// Group is a parenthesized expression. Its inner expression must be a
// *Binary (spec.md §3.2); the analyzer rejects anything else.
type Group struct {
	exprBase
	Inner Expr
}

// Binary is `left op right` for any of AND, OR, <, <=, >, >=, ==, !=,
// +, -, *, /. All operators are left-associative; precedence is encoded
// in the parser's recursive-descent structure, not in this node.
type Binary struct {
	exprBase
	Op    string
	Left  Expr
	Right Expr
}

// Access is a bare name or a `receiver.name` field read. For a bare name
// the analyzer sets Variable to the VarSymbol the name resolves to; for a
// `receiver.name` read it resolves only the field's type from the
// receiver's type and leaves Variable nil.
type Access struct {
	exprBase
	Receiver Expr // nil for a bare name
	Name     string
	Variable *scope.VarSymbol
}

// Function is a bare call `name(args)` or a method call
// `receiver.name(args)`. Fn is resolved by the analyzer.
type Function struct {
	exprBase
	Receiver  Expr // nil for a bare call
	Name      string
	Arguments []Expr
	Fn        *scope.FnSymbol
}
