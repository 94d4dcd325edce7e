package scope

import "github.com/tallylang/tally/types"

// NewGlobal builds the root scope every Tally program starts with: the
// built-in variable nil (type Nil), the built-in function print(Any): Nil,
// and the built-in function range(Integer, Integer): IntegerIterable that
// produces the only value FOR can iterate over, exactly as spec.md §4.3
// requires. range is inclusive of its lower bound and exclusive of its
// upper bound, grounded on the teacher's Range object
// (eval/evaluator_range_foreach.go).
//
// Both builtins' BodyInvoker are left nil here — scope cannot import the
// values package without creating an import cycle (a future values.Value
// would embed *Scope). The interpreter fills them in once, right after
// building its runtime global scope, by looking up each symbol and
// assigning its BodyInvoker field. The analyzer never calls BodyInvoker,
// so leaving it nil during analysis is safe.
func NewGlobal() *Scope {
	g := New(nil)
	g.DefineVar(&VarSymbol{SurfaceName: "nil", HostName: "null", Type: types.NilType})
	g.DefineFn(&FnSymbol{
		SurfaceName:    "print",
		HostName:       "System.out.println",
		ParameterTypes: []*types.Type{types.Any},
		ReturnType:     types.NilType,
	})
	g.DefineFn(&FnSymbol{
		SurfaceName:    "range",
		HostName:       "TallyRuntime.range",
		ParameterTypes: []*types.Type{types.Integer, types.Integer},
		ReturnType:     types.IntegerIterable,
	})
	return g
}
