package analyzer

import (
	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/types"
)

// analyzeStmts analyzes each statement in order in sc, so a later
// statement sees every name bound earlier in the same block.
func (a *Analyzer) analyzeStmts(stmts []ast.Stmt, sc *scope.Scope) *tally.Error {
	for _, s := range stmts {
		if err := a.analyzeStmt(s, sc); err != nil {
			return err
		}
	}
	return nil
}

// analyzeStmt dispatches on the statement's concrete type.
func (a *Analyzer) analyzeStmt(stmt ast.Stmt, sc *scope.Scope) *tally.Error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return a.analyzeExpressionStmt(s, sc)
	case *ast.DeclarationStmt:
		return a.analyzeDeclarationStmt(s, sc)
	case *ast.AssignmentStmt:
		return a.analyzeAssignmentStmt(s, sc)
	case *ast.IfStmt:
		return a.analyzeIfStmt(s, sc)
	case *ast.ForStmt:
		return a.analyzeForStmt(s, sc)
	case *ast.WhileStmt:
		return a.analyzeWhileStmt(s, sc)
	case *ast.ReturnStmt:
		return a.analyzeReturnStmt(s, sc)
	default:
		return tally.New(tally.Analyze, "unhandled statement type %T", stmt)
	}
}

// analyzeExpressionStmt requires its expression to be a call: a bare
// expression with no side effect is never useful in statement position,
// per ast.ExpressionStmt's doc comment.
func (a *Analyzer) analyzeExpressionStmt(s *ast.ExpressionStmt, sc *scope.Scope) *tally.Error {
	if _, ok := s.Expr.(*ast.Function); !ok {
		return tally.New(tally.Analyze, "expression statement must be a call")
	}
	_, err := a.analyzeExpr(s.Expr, sc)
	return err
}

func (a *Analyzer) analyzeDeclarationStmt(s *ast.DeclarationStmt, sc *scope.Scope) *tally.Error {
	declared, err := a.resolveOptionalType(s.TypeName, s.Index)
	if err != nil {
		return err
	}
	var valueType *types.Type
	if s.Value != nil {
		valueType, err = a.analyzeExpr(s.Value, sc)
		if err != nil {
			return err
		}
	}
	varType, err := reconcileDeclared(declared, valueType, s.Index)
	if err != nil {
		return err
	}

	sym := &scope.VarSymbol{SurfaceName: s.Name, HostName: s.Name, Type: varType}
	s.Variable = sym
	if sc.DefineVar(sym) {
		return tally.New(tally.Analyze, "variable %q is already declared in this scope", s.Name)
	}
	return nil
}

// analyzeAssignmentStmt requires the receiver to be a plain variable
// access — Tally has no mutable fields on anything but the enclosing
// scope's own variables, per ast.AssignmentStmt's doc comment.
func (a *Analyzer) analyzeAssignmentStmt(s *ast.AssignmentStmt, sc *scope.Scope) *tally.Error {
	access, ok := s.Receiver.(*ast.Access)
	if !ok || access.Receiver != nil {
		return tally.New(tally.Analyze, "assignment target must be a variable")
	}
	sym, ok := sc.LookupVar(access.Name)
	if !ok {
		return tally.New(tally.Analyze, "undefined variable %q", access.Name)
	}
	access.Variable = sym
	access.SetResolvedType(sym.Type)

	valueType, err := a.analyzeExpr(s.Value, sc)
	if err != nil {
		return err
	}
	if !types.RequireAssignable(sym.Type, valueType) {
		return tally.New(tally.Analyze, "cannot assign %s to variable %q of type %s", valueType, access.Name, sym.Type)
	}
	return nil
}

func (a *Analyzer) analyzeIfStmt(s *ast.IfStmt, sc *scope.Scope) *tally.Error {
	condType, err := a.analyzeExpr(s.Condition, sc)
	if err != nil {
		return err
	}
	if condType != types.Boolean {
		return tally.New(tally.Analyze, "IF condition must be Boolean, got %s", condType)
	}
	if len(s.Then) == 0 {
		return tally.New(tally.Analyze, "IF then-branch must not be empty")
	}
	if err := a.analyzeStmts(s.Then, scope.New(sc)); err != nil {
		return err
	}
	if len(s.Else) > 0 {
		return a.analyzeStmts(s.Else, scope.New(sc))
	}
	return nil
}

// analyzeForStmt requires an IntegerIterable iterable and binds the loop
// variable as an Integer local to the loop body's scope.
func (a *Analyzer) analyzeForStmt(s *ast.ForStmt, sc *scope.Scope) *tally.Error {
	iterType, err := a.analyzeExpr(s.Iterable, sc)
	if err != nil {
		return err
	}
	if iterType != types.IntegerIterable {
		return tally.New(tally.Analyze, "FOR iterable must be IntegerIterable, got %s", iterType)
	}
	if len(s.Body) == 0 {
		return tally.New(tally.Analyze, "FOR body must not be empty")
	}
	body := scope.New(sc)
	body.DefineVar(&scope.VarSymbol{SurfaceName: s.Name, HostName: s.Name, Type: types.Integer})
	return a.analyzeStmts(s.Body, body)
}

func (a *Analyzer) analyzeWhileStmt(s *ast.WhileStmt, sc *scope.Scope) *tally.Error {
	condType, err := a.analyzeExpr(s.Condition, sc)
	if err != nil {
		return err
	}
	if condType != types.Boolean {
		return tally.New(tally.Analyze, "WHILE condition must be Boolean, got %s", condType)
	}
	return a.analyzeStmts(s.Body, scope.New(sc))
}

func (a *Analyzer) analyzeReturnStmt(s *ast.ReturnStmt, sc *scope.Scope) *tally.Error {
	valueType, err := a.analyzeExpr(s.Value, sc)
	if err != nil {
		return err
	}
	if !types.RequireAssignable(a.currentReturn, valueType) {
		return tally.New(tally.Analyze, "cannot return %s from a method declared to return %s", valueType, a.currentReturn)
	}
	return nil
}
