package interp

import (
	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/values"
)

// Kind distinguishes why a block of statements stopped executing.
type Kind int

const (
	// Normal means every statement ran; execution falls through to
	// whatever follows the block.
	Normal Kind = iota
	// Returned means a RETURN statement ran; Transfer.Value holds its
	// value and every enclosing block must stop immediately too.
	Returned
)

// Transfer is the non-local control signal RETURN produces, modeled as a
// value execStmts threads back up through every nested block instead of
// as a panic — the teacher's interpreter propagates ReturnValue/Error the
// same way, as an ordinary return value rather than Go-level exceptions.
type Transfer struct {
	Kind  Kind
	Value interface{}
}

var normal = Transfer{Kind: Normal}

// execStmts runs stmts in order in sc, stopping at the first Returned
// transfer or error.
func (in *Interpreter) execStmts(stmts []ast.Stmt, sc *scope.Scope) (Transfer, *tally.Error) {
	for _, s := range stmts {
		t, err := in.execStmt(s, sc)
		if err != nil {
			return Transfer{}, err
		}
		if t.Kind == Returned {
			return t, nil
		}
	}
	return normal, nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt, sc *scope.Scope) (Transfer, *tally.Error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evalExpr(s.Expr, sc)
		return normal, err
	case *ast.DeclarationStmt:
		return normal, in.execDeclaration(s, sc)
	case *ast.AssignmentStmt:
		return normal, in.execAssignment(s, sc)
	case *ast.IfStmt:
		return in.execIf(s, sc)
	case *ast.ForStmt:
		return in.execFor(s, sc)
	case *ast.WhileStmt:
		return in.execWhile(s, sc)
	case *ast.ReturnStmt:
		v, err := in.evalExpr(s.Value, sc)
		if err != nil {
			return Transfer{}, err
		}
		return Transfer{Kind: Returned, Value: v}, nil
	default:
		return Transfer{}, tally.New(tally.Runtime, "unhandled statement type %T", stmt)
	}
}

func (in *Interpreter) execDeclaration(s *ast.DeclarationStmt, sc *scope.Scope) *tally.Error {
	var val interface{}
	if s.Value != nil {
		v, err := in.evalExpr(s.Value, sc)
		if err != nil {
			return err
		}
		val = v
	} else {
		val = zeroValue(s.Variable.Type)
	}
	sc.DefineVar(&scope.VarSymbol{SurfaceName: s.Name, HostName: s.Name, Type: s.Variable.Type, Value: val})
	return nil
}

func (in *Interpreter) execAssignment(s *ast.AssignmentStmt, sc *scope.Scope) *tally.Error {
	access := s.Receiver.(*ast.Access)
	sym, ok := sc.LookupVar(access.Name)
	if !ok {
		return tally.New(tally.Runtime, "undefined variable %q", access.Name)
	}
	val, err := in.evalExpr(s.Value, sc)
	if err != nil {
		return err
	}
	sym.Value = val
	return nil
}

func (in *Interpreter) execIf(s *ast.IfStmt, sc *scope.Scope) (Transfer, *tally.Error) {
	cond, err := in.evalExpr(s.Condition, sc)
	if err != nil {
		return Transfer{}, err
	}
	if cond.(bool) {
		return in.execStmts(s.Then, scope.New(sc))
	}
	if len(s.Else) > 0 {
		return in.execStmts(s.Else, scope.New(sc))
	}
	return normal, nil
}

func (in *Interpreter) execFor(s *ast.ForStmt, sc *scope.Scope) (Transfer, *tally.Error) {
	iterable, err := in.evalExpr(s.Iterable, sc)
	if err != nil {
		return Transfer{}, err
	}
	it := iterable.(*values.Iterator)
	for {
		v, ok := it.Next()
		if !ok {
			return normal, nil
		}
		body := scope.New(sc)
		body.DefineVar(&scope.VarSymbol{SurfaceName: s.Name, HostName: s.Name, Value: v})
		t, err := in.execStmts(s.Body, body)
		if err != nil {
			return Transfer{}, err
		}
		if t.Kind == Returned {
			return t, nil
		}
	}
}

func (in *Interpreter) execWhile(s *ast.WhileStmt, sc *scope.Scope) (Transfer, *tally.Error) {
	for {
		cond, err := in.evalExpr(s.Condition, sc)
		if err != nil {
			return Transfer{}, err
		}
		if !cond.(bool) {
			return normal, nil
		}
		t, err := in.execStmts(s.Body, scope.New(sc))
		if err != nil {
			return Transfer{}, err
		}
		if t.Kind == Returned {
			return t, nil
		}
	}
}
