// Package lexer turns Tally source text into a flat token stream.
//
// The scanner is single-pass and never backtracks: it keeps a two-cursor
// model (the absolute index of the next unread byte, and the length of
// text accumulated since the last token boundary) instead of building a
// rope of substrings, matching the cursor discipline spec.md §4.1
// describes for the original implementation.
package lexer

// Kind classifies a Token. Tally has no keyword token kind of its own —
// keywords (LET, DEF, DO, ...) are IDENTIFIER tokens that the parser
// recognizes by literal text, exactly as spec.md's grammar treats them
// ('LET', 'DEF', ... appear as literal-matched tokens, not a distinct kind).
type Kind string

const (
	IDENTIFIER Kind = "IDENTIFIER"
	INTEGER    Kind = "INTEGER"
	DECIMAL    Kind = "DECIMAL"
	CHARACTER  Kind = "CHARACTER"
	STRING     Kind = "STRING"
	OPERATOR   Kind = "OPERATOR"
)

// Token is an immutable record of one lexical unit: its kind, its raw
// source text, and the 0-based byte offset of its first character.
type Token struct {
	Kind    Kind
	Literal string
	Index   int
}
