package parser

import (
	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/lexer"
)

// parseStmt parses one statement, dispatching on its leading keyword (or,
// for the fallback production, parsing an expression and checking for a
// trailing `= expr`).
func (p *Parser) parseStmt() (ast.Stmt, *tally.Error) {
	switch {
	case p.peek("LET"):
		return p.parseDeclaration()
	case p.peek("IF"):
		return p.parseIf()
	case p.peek("FOR"):
		return p.parseFor()
	case p.peek("WHILE"):
		return p.parseWhile()
	case p.peek("RETURN"):
		return p.parseReturn()
	default:
		return p.parseExprOrAssignment()
	}
}

func (p *Parser) parseDeclaration() (ast.Stmt, *tally.Error) {
	index := p.current().Index
	p.match("LET")
	name, err := p.require(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	decl := &ast.DeclarationStmt{Name: name}
	decl.Index = index

	if p.match(":") {
		typeName, err := p.require(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		decl.TypeName = typeName
	}
	if p.match("=") {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Value = value
	}
	if _, err := p.require(";"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseIf() (ast.Stmt, *tally.Error) {
	index := p.current().Index
	p.match("IF")
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.require("DO"); err != nil {
		return nil, err
	}
	thenBody, err := p.parseStmts("ELSE", "END")
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Condition: cond, Then: thenBody}
	stmt.Index = index

	if p.match("ELSE") {
		elseBody, err := p.parseStmts("END")
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}
	if _, err := p.require("END"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseFor() (ast.Stmt, *tally.Error) {
	index := p.current().Index
	p.match("FOR")
	name, err := p.require(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.require("IN"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.require("DO"); err != nil {
		return nil, err
	}
	body, err := p.parseStmts("END")
	if err != nil {
		return nil, err
	}
	if _, err := p.require("END"); err != nil {
		return nil, err
	}
	stmt := &ast.ForStmt{Name: name, Iterable: iterable, Body: body}
	stmt.Index = index
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, *tally.Error) {
	index := p.current().Index
	p.match("WHILE")
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.require("DO"); err != nil {
		return nil, err
	}
	body, err := p.parseStmts("END")
	if err != nil {
		return nil, err
	}
	if _, err := p.require("END"); err != nil {
		return nil, err
	}
	stmt := &ast.WhileStmt{Condition: cond, Body: body}
	stmt.Index = index
	return stmt, nil
}

func (p *Parser) parseReturn() (ast.Stmt, *tally.Error) {
	index := p.current().Index
	p.match("RETURN")
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.require(";"); err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStmt{Value: value}
	stmt.Index = index
	return stmt, nil
}

// parseExprOrAssignment parses `expr ('=' expr)? ';'`: an assignment when
// followed by '=', otherwise an expression statement.
func (p *Parser) parseExprOrAssignment() (ast.Stmt, *tally.Error) {
	index := p.current().Index
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.match("=") {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.require(";"); err != nil {
			return nil, err
		}
		stmt := &ast.AssignmentStmt{Receiver: expr, Value: value}
		stmt.Index = index
		return stmt, nil
	}
	if _, err := p.require(";"); err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStmt{Expr: expr}
	stmt.Index = index
	return stmt, nil
}
