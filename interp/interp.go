// Package interp is Tally's tree-walking interpreter: it runs the typed
// AST the analyzer annotated and returns main's exit code.
//
// Grounded on the teacher's eval.Evaluator (a struct holding the current
// scope plus builtin tables, walked with a dispatch method per node type),
// generalized in two ways the teacher's interpreter does not need:
//
//   - Every runtime scope frame uses brand-new *scope.VarSymbol instances,
//     even for names the analyzer already resolved. The analyzer's
//     Variable/Function pointers are shared across every call site (there
//     is exactly one ast.DeclarationStmt per LET, however many times it
//     runs), so storing a call's locals on them directly would make
//     recursive calls clobber each other's variables. Runtime scopes are
//     looked up by name instead, and hold their own values.
//   - Every callable, builtin or user-defined, is reached through the same
//     scope.FnSymbol.BodyInvoker — the interpreter patches print and range
//     on startup and wraps every declared method the same way, so the call
//     expression evaluator never has to special-case "is this a builtin".
package interp

import (
	"fmt"
	"io"
	"math/big"

	"github.com/tallylang/tally"
	"github.com/tallylang/tally/analyzer"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/types"
	"github.com/tallylang/tally/values"
)

// Interpreter holds the state shared across a single program run.
type Interpreter struct {
	global *scope.Scope
	out    io.Writer
}

// New creates an Interpreter that writes print() output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{out: out}
}

// Run analyzes and then executes source, returning the value main's
// RETURN statement produced (main always declares Integer, so this is
// always an *big.Int — Run converts it to int64 for the caller's
// convenience, e.g. as a process exit code).
func (in *Interpreter) Run(source *ast.Source) (int64, *tally.Error) {
	global, err := analyzer.Analyze(source)
	if err != nil {
		return 0, err
	}
	in.global = global
	in.installBuiltins()

	for _, m := range source.Methods {
		m.Function.BodyInvoker = in.makeMethodInvoker(m)
	}
	for _, f := range source.Fields {
		val, err := in.initialValue(f)
		if err != nil {
			return 0, err
		}
		f.Variable.Value = val
	}

	mainSym, _ := in.global.LookupFn("main", 0)
	result, callErr := mainSym.BodyInvoker(nil)
	if callErr != nil {
		return 0, tally.New(tally.Runtime, "%s", callErr.Error())
	}
	return result.(*big.Int).Int64(), nil
}

func (in *Interpreter) initialValue(f *ast.Field) (interface{}, *tally.Error) {
	if f.Value == nil {
		return zeroValue(f.Variable.Type), nil
	}
	return in.evalExpr(f.Value, in.global)
}

// installBuiltins wires the two native functions scope.NewGlobal declares
// without a body: print writes its argument (converted to Tally's display
// form) followed by a newline, and range produces the lazy iterator a FOR
// loop consumes.
func (in *Interpreter) installBuiltins() {
	printSym, _ := in.global.LookupFn("print", 1)
	printSym.BodyInvoker = func(args []interface{}) (interface{}, *scope.CallError) {
		fmt.Fprintln(in.out, Display(args[0]))
		return nil, nil
	}

	rangeSym, _ := in.global.LookupFn("range", 2)
	rangeSym.BodyInvoker = func(args []interface{}) (interface{}, *scope.CallError) {
		start := args[0].(*big.Int)
		stop := args[1].(*big.Int)
		return values.NewRange(start, stop), nil
	}
}

// makeMethodInvoker builds the BodyInvoker for a user-declared method: a
// fresh call scope with parameters bound, the body executed in it, and the
// resulting transfer converted into a plain return value (Nil-typed
// methods that fall off the end of their body implicitly return nil).
func (in *Interpreter) makeMethodInvoker(m *ast.Method) func([]interface{}) (interface{}, *scope.CallError) {
	return func(args []interface{}) (interface{}, *scope.CallError) {
		callScope := scope.New(in.global)
		for i, name := range m.Parameters {
			callScope.DefineVar(&scope.VarSymbol{
				SurfaceName: name,
				HostName:    name,
				Type:        m.Function.ParameterTypes[i],
				Value:       args[i],
			})
		}

		transfer, err := in.execStmts(m.Body, callScope)
		if err != nil {
			return nil, &scope.CallError{Message: err.Error()}
		}
		if transfer.Kind == Returned {
			return transfer.Value, nil
		}
		return zeroValue(m.Function.ReturnType), nil
	}
}

// zeroValue is the value a declared-but-uninitialized variable, or a
// method that returns without an explicit RETURN, takes on.
func zeroValue(t *types.Type) interface{} {
	switch t {
	case types.Boolean:
		return false
	case types.Integer:
		return big.NewInt(0)
	case types.Decimal:
		return big.NewFloat(0)
	case types.Character:
		return rune(0)
	case types.String:
		return ""
	default:
		return nil
	}
}

// Display renders a runtime value the way print() emits it.
func Display(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case rune:
		return string(val)
	case string:
		return val
	case *big.Int:
		return val.String()
	case *big.Float:
		return val.Text('f', -1)
	default:
		return fmt.Sprintf("%v", val)
	}
}
