// Package ast defines Tally's abstract syntax tree: the untyped shape the
// parser produces, which becomes the typed AST in place once the analyzer
// has filled in every optional Type/symbol field. There is no separate
// typed-AST type hierarchy — spec.md §9 treats type and symbol annotations
// as optional fields that start nil and become required non-nil after
// analysis, and this package follows that directly instead of the
// teacher's NodeVisitor-dispatch tree (spec.md §9's "visitor dispatch"
// Design Note calls for tagged-variant type switches instead).
package ast

import "github.com/tallylang/tally/scope"

// Source is the root of a compilation unit: its field declarations
// followed by its method declarations.
type Source struct {
	Fields  []*Field
	Methods []*Method
}

// Field is a top-level `LET name [: Type] [= value] ;` declaration.
// Variable is nil until the analyzer resolves it.
type Field struct {
	Name     string
	TypeName string // "" if no ": Type" annotation was given
	Value    Expr   // nil if no initializer was given
	Variable *scope.VarSymbol
	Index    int
}

// Method is a `DEF name(params) [: ReturnType] DO ... END` declaration.
// Function is nil until the analyzer resolves it.
type Method struct {
	Name               string
	Parameters         []string
	ParameterTypeNames []string // parallel to Parameters, each required
	ReturnTypeName     string   // "" if no ": ReturnType" annotation was given
	Body               []Stmt
	Function           *scope.FnSymbol
	Index              int
}

// Stmt is the tagged-variant interface implemented by every statement
// node. Analysis and evaluation dispatch on the concrete Go type with a
// type switch, not a Visitor.
type Stmt interface {
	stmtNode()
	Pos() int
}

type stmtBase struct{ Index int }

func (s stmtBase) Pos() int { return s.Index }
func (stmtBase) stmtNode()  {}

// ExpressionStmt wraps a call expression evaluated for its side effect.
// Every ExpressionStmt's Expr must be a *Function; any other expression in
// statement position is a static error the analyzer rejects.
type ExpressionStmt struct {
	stmtBase
	Expr Expr
}

// DeclarationStmt is a local `LET name [: Type] [= value] ;`. At least one
// of TypeName or Value must be present; Variable is resolved by the
// analyzer.
type DeclarationStmt struct {
	stmtBase
	Name     string
	TypeName string // "" if absent
	Value    Expr   // nil if absent
	Variable *scope.VarSymbol
}

// AssignmentStmt is `receiver = value ;`. Receiver must be an *Access
// (enforced by the analyzer, not the parser, per spec.md §9).
type AssignmentStmt struct {
	stmtBase
	Receiver Expr
	Value    Expr
}

// IfStmt is `IF cond DO then... [ELSE else...] END`. Then must be
// non-empty; Else may be nil or empty.
type IfStmt struct {
	stmtBase
	Condition Expr
	Then      []Stmt
	Else      []Stmt
}

// ForStmt is `FOR name IN iterable DO body END`. Body must be non-empty.
type ForStmt struct {
	stmtBase
	Name     string
	Iterable Expr
	Body     []Stmt
}

// WhileStmt is `WHILE cond DO body END`.
type WhileStmt struct {
	stmtBase
	Condition Expr
	Body      []Stmt
}

// ReturnStmt is `RETURN value ;`.
type ReturnStmt struct {
	stmtBase
	Value Expr
}
