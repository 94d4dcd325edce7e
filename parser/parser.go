// Package parser implements Tally's recursive-descent parser: tokens to
// the untyped AST defined in package ast, grammar from spec.md §4.2.
//
// Parsing never recovers from an error — the first bad token aborts with
// a ParseError carrying that token's byte offset (or, at end of input,
// the offset just past the last token), matching spec.md's "no error
// recovery in the parser (first error terminates)" Non-goal.
package parser

import (
	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/lexer"
)

// Parser holds the token stream and current read position.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a complete compilation unit: zero or more fields followed
// by zero or more methods.
func Parse(tokens []lexer.Token) (*ast.Source, *tally.Error) {
	return New(tokens).parseSource()
}

func (p *Parser) parseSource() (*ast.Source, *tally.Error) {
	src := &ast.Source{}
	for p.peek("LET") {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		src.Fields = append(src.Fields, f)
	}
	for p.peek("DEF") {
		m, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		src.Methods = append(src.Methods, m)
	}
	if p.pos != len(p.tokens) {
		return nil, p.failAtCurrent("unexpected trailing token %q", p.current().Literal)
	}
	return src, nil
}

// parseField parses `LET name [: Type] [= value] ;`.
func (p *Parser) parseField() (*ast.Field, *tally.Error) {
	index := p.current().Index
	p.match("LET")
	name, err := p.require(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	f := &ast.Field{Name: name, Index: index}

	if p.match(":") {
		typeName, err := p.require(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		f.TypeName = typeName
	}
	if p.match("=") {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		f.Value = value
	}
	if _, err := p.require(";"); err != nil {
		return nil, err
	}
	return f, nil
}

// parseMethod parses `DEF name(params) [: ReturnType] DO stmt* END`.
func (p *Parser) parseMethod() (*ast.Method, *tally.Error) {
	index := p.current().Index
	p.match("DEF")
	name, err := p.require(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	m := &ast.Method{Name: name, Index: index}

	if _, err := p.require("("); err != nil {
		return nil, err
	}
	if !p.peek(")") {
		for {
			pname, err := p.require(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			m.Parameters = append(m.Parameters, pname)

			ptype := ""
			if p.match(":") {
				ptype, err = p.require(lexer.IDENTIFIER)
				if err != nil {
					return nil, err
				}
			}
			m.ParameterTypeNames = append(m.ParameterTypeNames, ptype)

			if !p.match(",") {
				break
			}
		}
	}
	if _, err := p.require(")"); err != nil {
		return nil, err
	}
	if p.match(":") {
		rtype, err := p.require(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		m.ReturnTypeName = rtype
	}
	if _, err := p.require("DO"); err != nil {
		return nil, err
	}
	body, err := p.parseStmts("END")
	if err != nil {
		return nil, err
	}
	m.Body = body
	if _, err := p.require("END"); err != nil {
		return nil, err
	}
	return m, nil
}

// parseStmts parses statements until one of the given literal stop words
// is the upcoming token (without consuming it).
func (p *Parser) parseStmts(stops ...string) ([]ast.Stmt, *tally.Error) {
	var stmts []ast.Stmt
	for !p.atStop(stops...) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) atStop(stops ...string) bool {
	if p.pos >= len(p.tokens) {
		return true
	}
	for _, s := range stops {
		if p.peek(s) {
			return true
		}
	}
	return false
}

// --- token cursor helpers ---

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return lexer.Token{}
}

func (p *Parser) endIndex() int {
	if len(p.tokens) == 0 {
		return 0
	}
	last := p.tokens[len(p.tokens)-1]
	return last.Index + len(last.Literal)
}

// peek reports whether the current token matches pattern, without
// consuming it. pattern is either a lexer.Kind (matched by Kind) or a
// string (matched by Literal).
func (p *Parser) peek(pattern interface{}) bool {
	if p.pos >= len(p.tokens) {
		return false
	}
	tok := p.tokens[p.pos]
	switch pat := pattern.(type) {
	case lexer.Kind:
		return tok.Kind == pat
	case string:
		return tok.Literal == pat
	default:
		return false
	}
}

// match is peek followed by consuming the token on success.
func (p *Parser) match(pattern interface{}) bool {
	if !p.peek(pattern) {
		return false
	}
	p.pos++
	return true
}

// require consumes a token matching pattern and returns its literal, or
// fails with a ParseError at the offending token's index (or just past
// the last token, at end of input).
func (p *Parser) require(pattern interface{}) (string, *tally.Error) {
	if !p.peek(pattern) {
		return "", p.failAtCurrent("expected %v, got %s", pattern, p.describeCurrent())
	}
	lit := p.current().Literal
	p.pos++
	return lit, nil
}

func (p *Parser) describeCurrent() string {
	if p.pos >= len(p.tokens) {
		return "end of input"
	}
	return "\"" + p.current().Literal + "\""
}

func (p *Parser) failAtCurrent(format string, args ...interface{}) *tally.Error {
	index := p.endIndex()
	if p.pos < len(p.tokens) {
		index = p.current().Index
	}
	return tally.NewAt(tally.Parse, index, format, args...)
}
