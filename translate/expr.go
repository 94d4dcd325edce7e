package translate

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/tallylang/tally/ast"
)

// translateExpr renders expr as a Java expression fragment. It never
// errors: every expr it is called on already passed Analyze, by
// construction (Translate runs the analyzer before emitting anything).
func translateExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return translateLiteral(e)
	case *ast.Group:
		return fmt.Sprintf("(%s)", translateExpr(e.Inner))
	case *ast.Binary:
		return translateBinary(e)
	case *ast.Access:
		return e.Name
	case *ast.Function:
		return translateCall(e)
	default:
		return fmt.Sprintf("/* unhandled expression %T */", expr)
	}
}

func translateLiteral(e *ast.Literal) string {
	switch v := e.Value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case rune:
		return "'" + escapeHost(string(v)) + "'"
	case string:
		return "\"" + escapeHost(v) + "\""
	case *big.Int:
		return v.String()
	case *big.Float:
		return v.Text('f', -1)
	default:
		return fmt.Sprintf("/* unhandled literal %T */", v)
	}
}

// escapeHost mirrors the seven escapes lexer.Literal recognizes, the
// other direction: a raw character becomes its Java source escape when
// one exists.
func escapeHost(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch r {
		case '\b':
			out.WriteString(`\b`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		case '\'':
			out.WriteString(`\'`)
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

var javaOp = map[string]string{
	"AND": "&&",
	"OR":  "||",
}

func translateBinary(e *ast.Binary) string {
	op, ok := javaOp[e.Op]
	if !ok {
		op = e.Op
	}
	return fmt.Sprintf("%s %s %s", translateExpr(e.Left), op, translateExpr(e.Right))
}

// translateCall renders a call through its resolved Fn's HostName, the
// same unified-callable convention the interpreter uses at runtime: print
// becomes System.out.println, range becomes TallyRuntime.range, and a
// user-declared method keeps its own name.
func translateCall(e *ast.Function) string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = translateExpr(a)
	}
	name := e.Name
	if e.Fn != nil && e.Fn.HostName != "" {
		name = e.Fn.HostName
	}
	if e.Receiver != nil {
		return fmt.Sprintf("%s.%s(%s)", translateExpr(e.Receiver), name, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}
