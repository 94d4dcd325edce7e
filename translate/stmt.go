package translate

import (
	"github.com/tallylang/tally/ast"
)

func (tr *Translator) translateStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		tr.translateStmt(s)
	}
}

func (tr *Translator) translateStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		tr.write("%s;", translateExpr(s.Expr))
	case *ast.DeclarationStmt:
		tr.translateDeclaration(s)
	case *ast.AssignmentStmt:
		tr.write("%s = %s;", translateExpr(s.Receiver), translateExpr(s.Value))
	case *ast.IfStmt:
		tr.translateIf(s)
	case *ast.ForStmt:
		tr.translateFor(s)
	case *ast.WhileStmt:
		tr.translateWhile(s)
	case *ast.ReturnStmt:
		tr.write("return %s;", translateExpr(s.Value))
	default:
		tr.write("/* unhandled statement %T */", stmt)
	}
}

func (tr *Translator) translateDeclaration(s *ast.DeclarationStmt) {
	init := zeroHostLiteral(s.Variable.Type)
	if s.Value != nil {
		init = translateExpr(s.Value)
	}
	tr.write("%s %s = %s;", s.Variable.Type.HostName, s.Name, init)
}

func (tr *Translator) translateIf(s *ast.IfStmt) {
	tr.write("if (%s) {", translateExpr(s.Condition))
	tr.indent += indentWidth
	tr.translateStmts(s.Then)
	tr.indent -= indentWidth
	if len(s.Else) == 0 {
		tr.write("}")
		return
	}
	tr.write("} else {")
	tr.indent += indentWidth
	tr.translateStmts(s.Else)
	tr.indent -= indentWidth
	tr.write("}")
}

// translateFor renders Tally's FOR name IN iterable DO as Java's enhanced
// for loop, the form spec.md §4.6 prescribes. The iterable expression
// translates on its own (range(a, b) becomes a TallyRuntime.range(a, b)
// call, via the iterable's Fn.HostName), so this never needs to know the
// iterable's shape.
func (tr *Translator) translateFor(s *ast.ForStmt) {
	tr.write("for (int %s : %s) {", s.Name, translateExpr(s.Iterable))
	tr.indent += indentWidth
	tr.translateStmts(s.Body)
	tr.indent -= indentWidth
	tr.write("}")
}

func (tr *Translator) translateWhile(s *ast.WhileStmt) {
	tr.write("while (%s) {", translateExpr(s.Condition))
	tr.indent += indentWidth
	tr.translateStmts(s.Body)
	tr.indent -= indentWidth
	tr.write("}")
}
