package analyzer

import (
	"math/big"

	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/types"
)

// 32-bit signed bounds: Integer literals translate to the host's `int`
// (types.Integer.HostName), so a literal outside this range can never
// round-trip through translation even though *big.Int itself is unbounded.
var (
	minInt32 = big.NewInt(-2147483648)
	maxInt32 = big.NewInt(2147483647)
)

// analyzeExpr dispatches on the expression's concrete type, resolves its
// type, stores it via SetResolvedType, and returns it.
func (a *Analyzer) analyzeExpr(expr ast.Expr, sc *scope.Scope) (*types.Type, *tally.Error) {
	var t *types.Type
	var err *tally.Error
	switch e := expr.(type) {
	case *ast.Literal:
		t, err = a.analyzeLiteral(e)
	case *ast.Group:
		t, err = a.analyzeGroup(e, sc)
	case *ast.Binary:
		t, err = a.analyzeBinary(e, sc)
	case *ast.Access:
		t, err = a.analyzeAccess(e, sc)
	case *ast.Function:
		t, err = a.analyzeFunction(e, sc)
	default:
		return nil, tally.New(tally.Analyze, "unhandled expression type %T", expr)
	}
	if err != nil {
		return nil, err
	}
	expr.SetResolvedType(t)
	return t, nil
}

func (a *Analyzer) analyzeLiteral(e *ast.Literal) (*types.Type, *tally.Error) {
	switch v := e.Value.(type) {
	case nil:
		return types.NilType, nil
	case bool:
		return types.Boolean, nil
	case rune:
		return types.Character, nil
	case string:
		return types.String, nil
	case *big.Int:
		if v.Cmp(minInt32) < 0 || v.Cmp(maxInt32) > 0 {
			return nil, tally.New(tally.Analyze, "integer literal %s is out of 32-bit range", v.String())
		}
		return types.Integer, nil
	case *big.Float:
		f, _ := v.Float64()
		roundTripped := new(big.Float).SetPrec(v.Prec()).SetFloat64(f)
		if roundTripped.Cmp(v) != 0 {
			return nil, tally.New(tally.Analyze, "decimal literal %s is not exactly representable as a 64-bit float", v.Text('g', -1))
		}
		return types.Decimal, nil
	default:
		return nil, tally.New(tally.Analyze, "unhandled literal value type %T", v)
	}
}

// analyzeGroup requires its inner expression to be a *ast.Binary, per
// ast.Group's doc comment, and takes on its type.
func (a *Analyzer) analyzeGroup(e *ast.Group, sc *scope.Scope) (*types.Type, *tally.Error) {
	if _, ok := e.Inner.(*ast.Binary); !ok {
		return nil, tally.New(tally.Analyze, "parenthesized expression must be a binary expression")
	}
	return a.analyzeExpr(e.Inner, sc)
}

func (a *Analyzer) analyzeBinary(e *ast.Binary, sc *scope.Scope) (*types.Type, *tally.Error) {
	left, err := a.analyzeExpr(e.Left, sc)
	if err != nil {
		return nil, err
	}
	right, err := a.analyzeExpr(e.Right, sc)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "AND", "OR":
		if left != types.Boolean || right != types.Boolean {
			return nil, tally.New(tally.Analyze, "%s requires Boolean operands, got %s and %s", e.Op, left, right)
		}
		return types.Boolean, nil
	case "==", "!=", "<", "<=", ">", ">=":
		if left != right || !types.RequireAssignable(types.Comparable, left) {
			return nil, tally.New(tally.Analyze, "%s requires two Comparable operands of the same type, got %s and %s", e.Op, left, right)
		}
		return types.Boolean, nil
	case "+":
		if left == types.String || right == types.String {
			return types.String, nil
		}
		fallthrough
	case "-", "*", "/":
		if left != right || (left != types.Integer && left != types.Decimal) {
			return nil, tally.New(tally.Analyze, "%s requires two Integer or two Decimal operands, got %s and %s", e.Op, left, right)
		}
		return left, nil
	default:
		return nil, tally.New(tally.Analyze, "unhandled operator %q", e.Op)
	}
}

// analyzeAccess resolves a bare name against the scope chain, or a
// `receiver.name` field read against the receiver's declared fields.
func (a *Analyzer) analyzeAccess(e *ast.Access, sc *scope.Scope) (*types.Type, *tally.Error) {
	if e.Receiver == nil {
		sym, ok := sc.LookupVar(e.Name)
		if !ok {
			return nil, tally.New(tally.Analyze, "undefined variable %q", e.Name)
		}
		e.Variable = sym
		return sym.Type, nil
	}

	recvType, err := a.analyzeExpr(e.Receiver, sc)
	if err != nil {
		return nil, err
	}
	fieldType, ok := recvType.Field(e.Name)
	if !ok {
		return nil, tally.New(tally.Analyze, "%s has no field %q", recvType, e.Name)
	}
	return fieldType, nil
}

// analyzeFunction resolves a bare call against the scope's (name, arity)
// function table, or a `receiver.name(args)` call against the receiver's
// declared methods.
func (a *Analyzer) analyzeFunction(e *ast.Function, sc *scope.Scope) (*types.Type, *tally.Error) {
	argTypes := make([]*types.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		t, err := a.analyzeExpr(arg, sc)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	if e.Receiver == nil {
		sym, ok := sc.LookupFn(e.Name, len(e.Arguments))
		if !ok {
			return nil, tally.New(tally.Analyze, "undefined function %q/%d", e.Name, len(e.Arguments))
		}
		e.Fn = sym
		for i, t := range argTypes {
			if !types.RequireAssignable(sym.ParameterTypes[i], t) {
				return nil, tally.New(tally.Analyze, "argument %d to %q: cannot assign %s to %s", i+1, e.Name, t, sym.ParameterTypes[i])
			}
		}
		return sym.ReturnType, nil
	}

	recvType, err := a.analyzeExpr(e.Receiver, sc)
	if err != nil {
		return nil, err
	}
	sig, ok := recvType.Method(e.Name, len(e.Arguments))
	if !ok {
		return nil, tally.New(tally.Analyze, "%s has no method %q/%d", recvType, e.Name, len(e.Arguments))
	}
	for i, t := range argTypes {
		want := sig.Params[i+1]
		if !types.RequireAssignable(want, t) {
			return nil, tally.New(tally.Analyze, "argument %d to %s.%s: cannot assign %s to %s", i+1, recvType, e.Name, t, want)
		}
	}
	return sig.Return, nil
}
