// Package tally defines the one error type shared by every phase of the
// Tally toy language — lexer, parser, analyzer and the two evaluator back
// ends.
package tally

import "fmt"

// Kind identifies which phase of the pipeline raised an Error.
type Kind string

const (
	// Lex marks an error raised while scanning raw text into tokens.
	Lex Kind = "lex"
	// Parse marks an error raised while building the AST from tokens.
	Parse Kind = "parse"
	// Analyze marks an error raised while resolving types and symbols.
	Analyze Kind = "analyze"
	// Runtime marks an error raised while interpreting a typed program.
	Runtime Kind = "runtime"
)

// Error is the single error type produced anywhere in the pipeline.
//
// Lex and Parse errors always carry an Index: the 0-based byte offset into
// the source where the problem was found (or, at end of input, the offset
// just past the last token). Analyze and Runtime errors are built with New,
// which records no source position, so Index is nil for them.
type Error struct {
	Kind    Kind
	Message string
	Index   *int
}

// New builds an Error with no source position, used by the analyzer and
// the interpreter.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewAt builds an Error anchored to a byte offset in the source, used by
// the lexer and parser.
func NewAt(kind Kind, index int, format string, args ...interface{}) *Error {
	idx := index
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Index: &idx}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil tally error>"
	}
	if e.Index != nil {
		return fmt.Sprintf("%s error at %d: %s", e.Kind, *e.Index, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}
