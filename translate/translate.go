// Package translate emits a Java-shaped rendition of an analyzed Tally
// program: one class named Main, its fields as instance fields, its methods
// as instance methods, and a synthetic `public static void main(String[])`
// entry point that runs `new Main().main()` and exits with its declared
// Integer return.
//
// Grounded on the teacher's PrintingVisitor (print_visitor.go): a small
// struct carrying an output buffer and an indent level, walked depth-first
// with indent increased/decreased around nested blocks. Where the teacher
// dispatches through NodeVisitor.Accept, this package uses the same
// tagged-variant type switch as every other phase (spec.md §9's Design
// Note), and where the teacher prints a debug trace, this package emits
// real Java-shaped source text.
package translate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tallylang/tally"
	"github.com/tallylang/tally/analyzer"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/types"
)

const indentWidth = 4

// Translator holds the output buffer and current indent level.
type Translator struct {
	buf    bytes.Buffer
	indent int
}

// Translate analyzes source and renders it as a complete Java-shaped
// compilation unit.
func Translate(source *ast.Source) (string, *tally.Error) {
	if _, err := analyzer.Analyze(source); err != nil {
		return "", err
	}
	tr := &Translator{}
	tr.translateSource(source)
	return tr.buf.String(), nil
}

func (tr *Translator) write(format string, args ...interface{}) {
	tr.buf.WriteString(strings.Repeat(" ", tr.indent))
	fmt.Fprintf(&tr.buf, format, args...)
	tr.buf.WriteByte('\n')
}

func (tr *Translator) translateSource(source *ast.Source) {
	tr.write("class Main {")
	tr.indent += indentWidth

	for _, f := range source.Fields {
		tr.translateField(f)
	}
	if len(source.Fields) > 0 {
		tr.buf.WriteByte('\n')
	}

	tr.write("public static void main(String[] args) {")
	tr.indent += indentWidth
	tr.write("System.exit(new Main().main());")
	tr.indent -= indentWidth
	tr.write("}")

	for _, m := range source.Methods {
		tr.buf.WriteByte('\n')
		tr.translateMethod(m)
	}

	tr.indent -= indentWidth
	tr.write("}")

	// range is the only way a FOR loop ever gets an IntegerIterable
	// (scope.NewGlobal's only builtin of that return type), and every call
	// to it translates to TallyRuntime.range — so TallyRuntime only needs
	// to exist in the emission when the program actually calls range.
	if usesRangeBuiltin(source) {
		tr.buf.WriteByte('\n')
		tr.translateRuntimeHelper()
	}
}

// translateRuntimeHelper emits the small package-private class backing
// TallyRuntime.range: a lazy Iterable<Integer> over [start, stop), matching
// values.NewRange's half-open interval exactly so the translated program's
// behavior agrees with the interpreter's.
func (tr *Translator) translateRuntimeHelper() {
	tr.write("class TallyRuntime {")
	tr.indent += indentWidth
	tr.write("static Iterable<Integer> range(final int start, final int stop) {")
	tr.indent += indentWidth
	tr.write("return () -> new java.util.Iterator<Integer>() {")
	tr.indent += indentWidth
	tr.write("int current = start;")
	tr.write("public boolean hasNext() { return current < stop; }")
	tr.write("public Integer next() { return current++; }")
	tr.indent -= indentWidth
	tr.write("};")
	tr.indent -= indentWidth
	tr.write("}")
	tr.indent -= indentWidth
	tr.write("}")
}

func (tr *Translator) translateField(f *ast.Field) {
	init := zeroHostLiteral(f.Variable.Type)
	if f.Value != nil {
		init = translateExpr(f.Value)
	}
	tr.write("%s %s = %s;", f.Variable.Type.HostName, f.Name, init)
}

// translateMethod emits a declared method as an instance method under its
// own surface name, including main: spec.md §4.6's template calls it
// through `new Main().main()` rather than giving it Java's static
// `main(String[])` signature, so no rename or static qualifier is needed.
func (tr *Translator) translateMethod(m *ast.Method) {
	params := make([]string, len(m.Parameters))
	for i, name := range m.Parameters {
		params[i] = fmt.Sprintf("%s %s", m.Function.ParameterTypes[i].HostName, name)
	}
	tr.write("%s %s(%s) {", m.Function.ReturnType.HostName, m.Name, strings.Join(params, ", "))
	tr.indent += indentWidth
	tr.translateStmts(m.Body)
	tr.indent -= indentWidth
	tr.write("}")
}

func zeroHostLiteral(t *types.Type) string {
	switch t {
	case types.Boolean:
		return "false"
	case types.Integer:
		return "0"
	case types.Decimal:
		return "0.0"
	case types.Character:
		return "'\\0'"
	case types.String:
		return "\"\""
	default:
		return "null"
	}
}
