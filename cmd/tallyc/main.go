// Command tallyc is Tally's command-line front end: run a program, emit
// its Java-shaped translation, or start an interactive session.
//
// Grounded on the rest of the retrieved pack's CLI convention (cobra root
// command with subcommands) rather than the teacher's own main.go, which
// is a hardcoded demo harness with no flag parsing; spf13/cobra appears in
// the pack's dependency graph (conneroisu-gix's go.mod) without ever being
// imported there, so this command gives it an actual home.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallylang/tally/interp"
	"github.com/tallylang/tally/lexer"
	"github.com/tallylang/tally/parser"
	"github.com/tallylang/tally/repl"
	"github.com/tallylang/tally/translate"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tallyc",
		Short: "Tally's lexer, parser, analyzer, interpreter and translator",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline phase as it runs")

	root.AddCommand(newRunCmd())
	root.AddCommand(newTranslateCmd())
	root.AddCommand(newReplCmd())
	return root
}

func logPhase(format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Run a Tally program and exit with main's return value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			logPhase("lexing %s", args[0])
			tokens, lexErr := lexer.All(string(src))
			if lexErr != nil {
				return lexErr
			}

			logPhase("parsing %s", args[0])
			source, parseErr := parser.Parse(tokens)
			if parseErr != nil {
				return parseErr
			}

			logPhase("analyzing and running %s", args[0])
			in := interp.New(cmd.OutOrStdout())
			code, runErr := in.Run(source)
			if runErr != nil {
				return runErr
			}
			os.Exit(int(code))
			return nil
		},
	}
}

func newTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate [file]",
		Short: "Emit a Java-shaped translation of a Tally program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			logPhase("lexing %s", args[0])
			tokens, lexErr := lexer.All(string(src))
			if lexErr != nil {
				return lexErr
			}

			logPhase("parsing %s", args[0])
			source, parseErr := parser.Parse(tokens)
			if parseErr != nil {
				return parseErr
			}

			logPhase("analyzing and translating %s", args[0])
			out, transErr := translate.Translate(source)
			if transErr != nil {
				return transErr
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Tally session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := repl.New(tallyBanner, tallyVersion, "tally> ")
			return r.Start(cmd.OutOrStdout())
		},
	}
}

const (
	tallyVersion = "0.1.0"
	tallyBanner  = `  ___________    __    __       __
 /_  __/ __ |   / /   / /      / /
  / / / /_/ /  / /   / /      / /
 / / / ____/  / /___/ /___   / /___
/_/ /_/      /_____/_____/  /_____/`
)
