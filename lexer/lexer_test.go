package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_Identifiers(t *testing.T) {
	tokens, err := All("foo Bar_baz x-y")
	require.Nil(t, err)
	assert.Equal(t, []Token{
		{Kind: IDENTIFIER, Literal: "foo", Index: 0},
		{Kind: IDENTIFIER, Literal: "Bar_baz", Index: 4},
		{Kind: IDENTIFIER, Literal: "x-y", Index: 12},
	}, tokens)
}

func TestAll_Numbers(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"42", INTEGER},
		{"-7", INTEGER},
		{"+7", INTEGER},
		{"1.0", DECIMAL},
		{"3.14", DECIMAL},
	}
	for _, tt := range tests {
		tokens, err := All(tt.input)
		require.Nil(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, tt.kind, tokens[0].Kind)
		assert.Equal(t, tt.input, tokens[0].Literal)
	}
}

func TestAll_NumberBoundaries(t *testing.T) {
	// "1." is an integer followed by a separate '.' operator.
	tokens, err := All("1.")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, INTEGER, tokens[0].Kind)
	assert.Equal(t, "1", tokens[0].Literal)
	assert.Equal(t, OPERATOR, tokens[1].Kind)
	assert.Equal(t, ".", tokens[1].Literal)

	// ".5" is not a number token at all: '.' then '5'.
	tokens, err = All(".5")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, OPERATOR, tokens[0].Kind)
	assert.Equal(t, INTEGER, tokens[1].Kind)
}

func TestAll_Characters(t *testing.T) {
	for _, ok := range []string{`'a'`, `'\n'`, `'\\'`, `'\''`} {
		tokens, err := All(ok)
		require.Nilf(t, err, "expected %q to lex", ok)
		require.Len(t, tokens, 1)
		assert.Equal(t, CHARACTER, tokens[0].Kind)
	}
	for _, bad := range []string{`''`, `'ab'`, `'\x'`, `'a`} {
		_, err := All(bad)
		assert.NotNilf(t, err, "expected %q to fail", bad)
	}
}

func TestAll_Strings(t *testing.T) {
	for _, ok := range []string{`"abc"`, `""`, `"a\nb"`} {
		tokens, err := All(ok)
		require.Nilf(t, err, "expected %q to lex", ok)
		require.Len(t, tokens, 1)
		assert.Equal(t, STRING, tokens[0].Kind)
	}
	for _, bad := range []string{`"unterminated`, `"bad\escape"`, "\"line\nbreak\""} {
		_, err := All(bad)
		assert.NotNilf(t, err, "expected %q to fail", bad)
	}
}

func TestAll_Operators(t *testing.T) {
	tokens, err := All("<= << == != < >")
	require.Nil(t, err)
	literals := make([]string, len(tokens))
	for i, tok := range tokens {
		literals[i] = tok.Literal
		assert.Equal(t, OPERATOR, tok.Kind)
	}
	assert.Equal(t, []string{"<=", "<", "<", "==", "!=", "<", ">"}, literals)
}

func TestLiteral_Unescapes(t *testing.T) {
	assert.Equal(t, "\n", Literal(`'\n'`))
	assert.Equal(t, "a\nb", Literal(`"a\nb"`))
	assert.Equal(t, "", Literal(`""`))
}

func TestAll_Idempotent(t *testing.T) {
	src := `LET x: Integer = 1 ; DEF main ( ) : Integer DO RETURN x + 2 ; END`
	tokens, err := All(src)
	require.Nil(t, err)

	var rebuilt string
	for i, tok := range tokens {
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += tok.Literal
	}
	again, err := All(rebuilt)
	require.Nil(t, err)
	require.Len(t, again, len(tokens))
	for i := range tokens {
		assert.Equal(t, tokens[i].Kind, again[i].Kind)
		assert.Equal(t, tokens[i].Literal, again[i].Literal)
	}
}
