// Package repl implements an interactive Tally session.
//
// Grounded on the teacher's repl.Repl (chzyer/readline for line editing and
// history, fatih/color for colored output, a banner/prompt struct), but
// adapted to Tally's grammar: a Tally compilation unit is a whole program
// (LET*/DEF*, with a required main), not a single evaluable expression the
// way a go-mix REPL line is. So this REPL accumulates lines into a buffer
// until the user enters a blank line, then runs the buffered text as one
// program and reports main's exit code, rather than evaluating line by
// line.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/tallylang/tally/interp"
	"github.com/tallylang/tally/lexer"
	"github.com/tallylang/tally/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the banner and prompt text shown to the user.
type Repl struct {
	Banner  string
	Version string
	Prompt  string
}

// New creates a Repl with the given banner, version string, and prompt.
func New(banner, version, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Prompt: prompt}
}

// printBanner shows the startup banner and usage instructions.
func (r *Repl) printBanner(w io.Writer) {
	greenColor.Fprintf(w, "%s\n", r.Banner)
	yellowColor.Fprintf(w, "Tally %s\n", r.Version)
	cyanColor.Fprintln(w, "Enter a complete program (LET/DEF declarations, a main method), then a blank line to run it.")
	cyanColor.Fprintln(w, "Type .exit on its own line to quit.")
}

// Start runs the read-eval-print loop, reading from stdin via readline and
// writing program output and session messages to w.
func (r *Repl) Start(w io.Writer) error {
	r.printBanner(w)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt, Stdout: w})
	if err != nil {
		return err
	}
	defer rl.Close()

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			blueColor.Fprintln(w, "goodbye")
			return nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == ".exit" {
			blueColor.Fprintln(w, "goodbye")
			return nil
		}
		if trimmed == "" {
			if buffer.Len() > 0 {
				r.runBuffered(w, buffer.String())
				buffer.Reset()
			}
			continue
		}
		rl.SaveHistory(line)
		buffer.WriteString(line)
		buffer.WriteByte('\n')
	}
}

func (r *Repl) runBuffered(w io.Writer, src string) {
	tokens, lexErr := lexer.All(src)
	if lexErr != nil {
		redColor.Fprintf(w, "%s\n", lexErr)
		return
	}
	source, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		redColor.Fprintf(w, "%s\n", parseErr)
		return
	}

	in := interp.New(w)
	code, runErr := in.Run(source)
	if runErr != nil {
		redColor.Fprintf(w, "%s\n", runErr)
		return
	}
	yellowColor.Fprintf(w, "main returned %d\n", code)
}
