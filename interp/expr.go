package interp

import (
	"math/big"

	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/values"
)

// evalExpr dispatches on the expression's concrete type. No case mutates
// an operand in place; arithmetic always writes into a new value — in
// particular, a *ast.Literal's *big.Int/*big.Float is never the value
// arithmetic writes into, since the same Literal node is evaluated again
// on every call and every loop iteration.
func (in *Interpreter) evalExpr(expr ast.Expr, sc *scope.Scope) (interface{}, *tally.Error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Group:
		return in.evalExpr(e.Inner, sc)
	case *ast.Binary:
		return in.evalBinary(e, sc)
	case *ast.Access:
		return in.evalAccess(e, sc)
	case *ast.Function:
		return in.evalFunction(e, sc)
	default:
		return nil, tally.New(tally.Runtime, "unhandled expression type %T", expr)
	}
}

// evalBinary evaluates left-to-right, short-circuiting AND/OR before ever
// evaluating the right operand.
func (in *Interpreter) evalBinary(e *ast.Binary, sc *scope.Scope) (interface{}, *tally.Error) {
	left, err := in.evalExpr(e.Left, sc)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "AND":
		if !left.(bool) {
			return false, nil
		}
		right, err := in.evalExpr(e.Right, sc)
		if err != nil {
			return nil, err
		}
		return right.(bool), nil
	case "OR":
		if left.(bool) {
			return true, nil
		}
		right, err := in.evalExpr(e.Right, sc)
		if err != nil {
			return nil, err
		}
		return right.(bool), nil
	}

	right, err := in.evalExpr(e.Right, sc)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "==":
		return values.Equal(left, right), nil
	case "!=":
		return !values.Equal(left, right), nil
	case "<":
		return values.Compare(left, right) < 0, nil
	case "<=":
		return values.Compare(left, right) <= 0, nil
	case ">":
		return values.Compare(left, right) > 0, nil
	case ">=":
		return values.Compare(left, right) >= 0, nil
	case "+", "-", "*", "/":
		return in.evalArithmetic(e.Op, left, right)
	default:
		return nil, tally.New(tally.Runtime, "unhandled operator %q", e.Op)
	}
}

// evalArithmetic implements +, -, *, / for two Integer or two Decimal
// operands, and + for String concatenation. Since the analyzer resolves
// `+` to String whenever either operand is a String (spec.md §4.4), an
// Integer or Decimal operand reaching here alongside a string one must be
// coerced to its display form rather than type-asserted directly.
func (in *Interpreter) evalArithmetic(op string, left, right interface{}) (interface{}, *tally.Error) {
	if op == "+" {
		if _, ok := left.(string); ok {
			return left.(string) + Display(right), nil
		}
		if _, ok := right.(string); ok {
			return Display(left) + right.(string), nil
		}
	}
	switch lv := left.(type) {
	case *big.Int:
		rv := right.(*big.Int)
		result := new(big.Int)
		switch op {
		case "+":
			return result.Add(lv, rv), nil
		case "-":
			return result.Sub(lv, rv), nil
		case "*":
			return result.Mul(lv, rv), nil
		case "/":
			if rv.Sign() == 0 {
				return nil, tally.New(tally.Runtime, "integer division by zero")
			}
			return result.Quo(lv, rv), nil
		}
	case *big.Float:
		rv := right.(*big.Float)
		result := new(big.Float).SetPrec(128)
		switch op {
		case "+":
			return result.Add(lv, rv), nil
		case "-":
			return result.Sub(lv, rv), nil
		case "*":
			return result.Mul(lv, rv), nil
		case "/":
			if rv.Sign() == 0 {
				return nil, tally.New(tally.Runtime, "decimal division by zero")
			}
			// big.Float's default rounding mode is ToNearestEven, which is
			// exactly the banker's rounding Decimal division requires.
			return result.Quo(lv, rv), nil
		}
	}
	return nil, tally.New(tally.Runtime, "unsupported operand types for %q", op)
}

// evalAccess resolves a bare name against the runtime scope chain. Tally's
// closed type registry declares no fields, so a `receiver.name` Access
// never survives analysis and this branch is unreachable for any program
// Analyze accepted; it is handled defensively rather than with a panic.
func (in *Interpreter) evalAccess(e *ast.Access, sc *scope.Scope) (interface{}, *tally.Error) {
	if e.Receiver != nil {
		return nil, tally.New(tally.Runtime, "%s declares no field %q", e.Receiver, e.Name)
	}
	sym, ok := sc.LookupVar(e.Name)
	if !ok {
		return nil, tally.New(tally.Runtime, "undefined variable %q", e.Name)
	}
	return sym.Value, nil
}

// evalFunction evaluates arguments left-to-right, then invokes the
// resolved callable's BodyInvoker, the single call path every builtin and
// user-declared method shares.
func (in *Interpreter) evalFunction(e *ast.Function, sc *scope.Scope) (interface{}, *tally.Error) {
	args := make([]interface{}, len(e.Arguments))
	for i, arg := range e.Arguments {
		v, err := in.evalExpr(arg, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if e.Receiver != nil {
		return nil, tally.New(tally.Runtime, "%s declares no method %q", e.Receiver, e.Name)
	}
	sym, ok := sc.LookupFn(e.Name, len(e.Arguments))
	if !ok {
		return nil, tally.New(tally.Runtime, "undefined function %q/%d", e.Name, len(e.Arguments))
	}
	result, callErr := sym.BodyInvoker(args)
	if callErr != nil {
		return nil, tally.New(tally.Runtime, "%s", callErr.Error())
	}
	return result, nil
}
