package parser

import (
	"math/big"
	"strings"

	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/lexer"
)

// parseExpr is the entry point for expression grammar: expr := logical.
func (p *Parser) parseExpr() (ast.Expr, *tally.Error) {
	return p.parseLogical()
}

// parseLogical handles left-associative AND/OR, the lowest-precedence
// binary operators.
func (p *Parser) parseLogical() (ast.Expr, *tally.Error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek("AND") || p.peek("OR") {
		op, _ := p.require(p.current().Literal)
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = newBinary(left.Pos(), op, left, right)
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expr, *tally.Error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peekAnyOperator("<", "<=", ">", ">=", "==", "!=") {
		op, _ := p.require(p.current().Literal)
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = newBinary(left.Pos(), op, left, right)
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, *tally.Error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peekAnyOperator("+", "-") {
		op, _ := p.require(p.current().Literal)
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = newBinary(left.Pos(), op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, *tally.Error) {
	left, err := p.parseSecondary()
	if err != nil {
		return nil, err
	}
	for p.peekAnyOperator("*", "/") {
		op, _ := p.require(p.current().Literal)
		right, err := p.parseSecondary()
		if err != nil {
			return nil, err
		}
		left = newBinary(left.Pos(), op, left, right)
	}
	return left, nil
}

// parseSecondary parses a primary expression followed by zero or more
// `.name` or `.name(args)` suffixes.
func (p *Parser) parseSecondary() (ast.Expr, *tally.Error) {
	recv, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.match(".") {
		index := recv.Pos()
		name, err := p.require(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if p.match("(") {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.require(")"); err != nil {
				return nil, err
			}
			recv = newFunction(index, recv, name, args)
		} else {
			recv = newAccess(index, recv, name)
		}
	}
	return recv, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *tally.Error) {
	index := p.current().Index
	switch {
	case p.match("NIL"):
		return newLiteral(index, nil), nil
	case p.match("TRUE"):
		return newLiteral(index, true), nil
	case p.match("FALSE"):
		return newLiteral(index, false), nil
	case p.peek(lexer.INTEGER):
		lit, _ := p.require(lexer.INTEGER)
		value, perr := parseBigInt(lit)
		if perr != nil {
			return nil, p.failAt(index, "invalid integer literal %q", lit)
		}
		return newLiteral(index, value), nil
	case p.peek(lexer.DECIMAL):
		lit, _ := p.require(lexer.DECIMAL)
		value, ok := new(big.Float).SetPrec(128).SetString(lit)
		if !ok {
			return nil, p.failAt(index, "invalid decimal literal %q", lit)
		}
		return newLiteral(index, value), nil
	case p.peek(lexer.CHARACTER):
		lit, _ := p.require(lexer.CHARACTER)
		unescaped := lexer.Literal(lit)
		runes := []rune(unescaped)
		if len(runes) != 1 {
			return nil, p.failAt(index, "character literal must contain exactly one character")
		}
		return newLiteral(index, runes[0]), nil
	case p.peek(lexer.STRING):
		lit, _ := p.require(lexer.STRING)
		return newLiteral(index, lexer.Literal(lit)), nil
	case p.match("("):
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.require(")"); err != nil {
			return nil, err
		}
		return newGroup(index, inner), nil
	case p.peek(lexer.IDENTIFIER):
		name, _ := p.require(lexer.IDENTIFIER)
		if p.match("(") {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.require(")"); err != nil {
				return nil, err
			}
			return newFunction(index, nil, name, args), nil
		}
		return newAccess(index, nil, name), nil
	default:
		return nil, p.failAtCurrent("expected an expression, got %s", p.describeCurrent())
	}
}

// parseArgs parses a comma-separated argument list, or none if the next
// token is the closing ')'.
func (p *Parser) parseArgs() ([]ast.Expr, *tally.Error) {
	if p.peek(")") {
		return nil, nil
	}
	var args []ast.Expr
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(",") {
			break
		}
	}
	return args, nil
}

// peekAnyOperator reports whether the current OPERATOR token's literal is
// one of lits.
func (p *Parser) peekAnyOperator(lits ...string) bool {
	if !p.peek(lexer.OPERATOR) {
		return false
	}
	cur := p.current().Literal
	for _, l := range lits {
		if cur == l {
			return true
		}
	}
	return false
}

func (p *Parser) failAt(index int, format string, args ...interface{}) *tally.Error {
	return tally.NewAt(tally.Parse, index, format, args...)
}

func parseBigInt(lit string) (*big.Int, error) {
	s := lit
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	v := new(big.Int)
	_, ok := v.SetString(s, 10)
	if !ok {
		return nil, tally.New(tally.Parse, "invalid integer literal %q", lit)
	}
	return v, nil
}

// --- node constructors ---
//
// ast's expression nodes embed an unexported exprBase, so callers outside
// package ast can't name it in a composite literal; each constructor builds
// the node with its visible fields, then sets the promoted Index field.

func newLiteral(index int, value interface{}) *ast.Literal {
	n := &ast.Literal{Value: value}
	n.Index = index
	return n
}

func newGroup(index int, inner ast.Expr) *ast.Group {
	n := &ast.Group{Inner: inner}
	n.Index = index
	return n
}

func newBinary(index int, op string, left, right ast.Expr) *ast.Binary {
	n := &ast.Binary{Op: op, Left: left, Right: right}
	n.Index = index
	return n
}

func newAccess(index int, receiver ast.Expr, name string) *ast.Access {
	n := &ast.Access{Receiver: receiver, Name: name}
	n.Index = index
	return n
}

func newFunction(index int, receiver ast.Expr, name string, args []ast.Expr) *ast.Function {
	n := &ast.Function{Receiver: receiver, Name: name, Arguments: args}
	n.Index = index
	return n
}
