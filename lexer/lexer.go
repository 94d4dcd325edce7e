package lexer

import (
	"strings"

	"github.com/tallylang/tally"
)

// Lexer scans a source string into a Token stream.
//
// index is the absolute position of the next unread character; length is
// the number of characters accumulated since the last token boundary.
// A token always spans src[index-length : index]; emit cuts that span off
// as a Token and resets length to zero (skip), so the cursor model never
// needs to store partial lexemes anywhere else.
type Lexer struct {
	src    string
	index  int
	length int
}

// New creates a Lexer over the given source text.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// has reports whether a character exists at index+offset.
func (l *Lexer) has(offset int) bool {
	return l.index+offset < len(l.src)
}

// peek reports whether the upcoming characters match classes in order,
// without consuming anything.
func (l *Lexer) peek(classes ...charClass) bool {
	for i, c := range classes {
		if !l.has(i) || !c(l.src[l.index+i]) {
			return false
		}
	}
	return true
}

// match is peek followed by consuming the matched characters on success.
func (l *Lexer) match(classes ...charClass) bool {
	if !l.peek(classes...) {
		return false
	}
	l.index += len(classes)
	l.length += len(classes)
	return true
}

// skip drops the characters accumulated since the last boundary without
// emitting a token for them (used for whitespace).
func (l *Lexer) skip() {
	l.length = 0
}

// emit cuts the accumulated span off as a Token of the given kind and
// resets the boundary.
func (l *Lexer) emit(kind Kind) Token {
	start := l.index - l.length
	tok := Token{Kind: kind, Literal: l.src[start:l.index], Index: start}
	l.skip()
	return tok
}

// fail builds a LexError anchored at the given absolute index.
func (l *Lexer) fail(index int, format string, args ...interface{}) *tally.Error {
	return tally.NewAt(tally.Lex, index, format, args...)
}

// All scans the entire source and returns its token stream, or the first
// LexError encountered.
func All(src string) ([]Token, *tally.Error) {
	l := New(src)
	var tokens []Token
	for l.has(0) {
		if l.peek(isWhitespace) {
			l.match(isWhitespace)
			l.skip()
			continue
		}
		tok, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// lexToken dispatches on one character of lookahead without consuming it.
func (l *Lexer) lexToken() (Token, *tally.Error) {
	switch {
	case l.peek(isIdentStart):
		return l.lexIdentifier(), nil
	case l.peek(isDigit), l.peek(isSign, isDigit):
		return l.lexNumber(), nil
	case l.peek(is('\'')):
		return l.lexCharacter()
	case l.peek(is('"')):
		return l.lexString()
	default:
		return l.lexOperator(), nil
	}
}

// lexIdentifier consumes [A-Za-z_][A-Za-z0-9_-]*.
func (l *Lexer) lexIdentifier() Token {
	l.match(isIdentStart)
	for l.match(isIdentCont) {
	}
	return l.emit(IDENTIFIER)
}

// lexNumber consumes an optionally signed integer, switching to DECIMAL if
// a '.' is immediately followed by a digit. A trailing '.' with no digit
// after it is left unconsumed, so "1." lexes as INTEGER "1" followed by an
// OPERATOR ".".
func (l *Lexer) lexNumber() Token {
	if !l.match(isSign, isDigit) {
		l.match(isDigit)
	}
	for l.match(isDigit) {
	}

	decimal := false
	if l.peek(is('.'), isDigit) {
		decimal = true
		l.match(is('.'), isDigit)
		for l.match(isDigit) {
		}
	}

	if decimal {
		return l.emit(DECIMAL)
	}
	return l.emit(INTEGER)
}

// lexCharacter consumes 'x' where x is an escape or a single non-quote,
// non-newline, non-CR character.
func (l *Lexer) lexCharacter() (Token, *tally.Error) {
	l.match(is('\''))
	if l.peek(is('\\')) {
		if err := l.lexEscape(); err != nil {
			return Token{}, err
		}
	} else if l.match(isCharBody) {
		// single literal character consumed
	} else {
		return Token{}, l.fail(l.index, "unterminated character literal")
	}

	if !l.match(is('\'')) {
		return Token{}, l.fail(l.index, "character literal must contain exactly one character")
	}
	return l.emit(CHARACTER), nil
}

// lexString consumes "..." where the body is a run of escapes and
// non-quote, non-newline, non-CR characters.
func (l *Lexer) lexString() (Token, *tally.Error) {
	l.match(is('"'))
	for {
		if l.peek(is('\\')) {
			if err := l.lexEscape(); err != nil {
				return Token{}, err
			}
			continue
		}
		if l.match(isStringBody) {
			continue
		}
		break
	}
	if !l.match(is('"')) {
		return Token{}, l.fail(l.index, "unterminated string literal")
	}
	return l.emit(STRING), nil
}

// lexEscape consumes the two-character sequence '\' followed by one of
// b n r t ' " \. Any other follower fails at the follower's own position.
func (l *Lexer) lexEscape() *tally.Error {
	if l.match(is('\\'), isCharEscape) {
		return nil
	}
	return l.fail(l.index+1, "invalid escape sequence")
}

// lexOperator consumes one of the two-character comparison operators
// (<=, >=, ==, !=) if present, else exactly one non-whitespace character.
func (l *Lexer) lexOperator() Token {
	if l.match(oneOf("<>!="), is('=')) {
		return l.emit(OPERATOR)
	}
	l.match(any)
	return l.emit(OPERATOR)
}

// Literal unescapes a CHARACTER or STRING token's raw literal: it strips
// the surrounding quotes and applies the seven recognized escapes.
func Literal(raw string) string {
	body := raw
	if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'b':
				out.WriteByte('\b')
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			case '\'':
				out.WriteByte('\'')
			case '"':
				out.WriteByte('"')
			case '\\':
				out.WriteByte('\\')
			}
			continue
		}
		out.WriteByte(body[i])
	}
	return out.String()
}
