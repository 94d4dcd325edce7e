package translate

import "github.com/tallylang/tally/ast"

// usesRangeBuiltin reports whether source calls the range builtin anywhere,
// so translateSource only emits the TallyRuntime helper class when the
// emission actually references it.
func usesRangeBuiltin(source *ast.Source) bool {
	for _, f := range source.Fields {
		if f.Value != nil && exprUsesRange(f.Value) {
			return true
		}
	}
	for _, m := range source.Methods {
		if stmtsUseRange(m.Body) {
			return true
		}
	}
	return false
}

func stmtsUseRange(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		if stmtUsesRange(s) {
			return true
		}
	}
	return false
}

func stmtUsesRange(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return exprUsesRange(s.Expr)
	case *ast.DeclarationStmt:
		return s.Value != nil && exprUsesRange(s.Value)
	case *ast.AssignmentStmt:
		return exprUsesRange(s.Receiver) || exprUsesRange(s.Value)
	case *ast.IfStmt:
		return exprUsesRange(s.Condition) || stmtsUseRange(s.Then) || stmtsUseRange(s.Else)
	case *ast.ForStmt:
		return exprUsesRange(s.Iterable) || stmtsUseRange(s.Body)
	case *ast.WhileStmt:
		return exprUsesRange(s.Condition) || stmtsUseRange(s.Body)
	case *ast.ReturnStmt:
		return s.Value != nil && exprUsesRange(s.Value)
	default:
		return false
	}
}

func exprUsesRange(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Group:
		return exprUsesRange(e.Inner)
	case *ast.Binary:
		return exprUsesRange(e.Left) || exprUsesRange(e.Right)
	case *ast.Access:
		return e.Receiver != nil && exprUsesRange(e.Receiver)
	case *ast.Function:
		if e.Fn != nil && e.Fn.HostName == "TallyRuntime.range" {
			return true
		}
		if e.Receiver != nil && exprUsesRange(e.Receiver) {
			return true
		}
		for _, a := range e.Arguments {
			if exprUsesRange(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
