// Package analyzer implements Tally's single static-analysis pass: a
// top-down walk over the untyped AST package ast produces that resolves
// every name to a symbol and fills in every expression's ResolvedType in
// place, per spec.md §4.4. Analysis never mutates source text or token
// positions; it only ever writes into the optional Type/Variable/Function
// fields the ast and scope packages declare for exactly this purpose.
//
// Grounded on the teacher's single-pass eval/evaluator.go walk (no
// separate static phase there), restructured into its own pre-interpreter
// phase because spec.md requires static type errors to be reported before
// any statement runs.
package analyzer

import (
	"github.com/tallylang/tally"
	"github.com/tallylang/tally/ast"
	"github.com/tallylang/tally/scope"
	"github.com/tallylang/tally/types"
)

// Analyzer holds the state threaded through one analysis pass.
type Analyzer struct {
	global *scope.Scope
	// currentReturn is the enclosing method's declared return type, used to
	// check RETURN statements. nil outside any method body (unreachable in
	// practice, since only method bodies contain statements).
	currentReturn *types.Type
}

// Analyze resolves every name and expression type in source, returning the
// populated global scope on success. It is the analyzer's single entry
// point; every other function in this package is reached from here.
func Analyze(source *ast.Source) (*scope.Scope, *tally.Error) {
	a := &Analyzer{global: scope.NewGlobal()}

	for _, f := range source.Fields {
		if err := a.declareField(f); err != nil {
			return nil, err
		}
	}
	for _, m := range source.Methods {
		if err := a.declareMethod(m); err != nil {
			return nil, err
		}
	}
	if _, ok := a.global.LookupFn("main", 0); !ok {
		return nil, tally.New(tally.Analyze, "program must declare a main(): Integer method")
	}
	if main, _ := a.global.LookupFn("main", 0); main.ReturnType != types.Integer {
		return nil, tally.New(tally.Analyze, "main must return Integer, not %s", main.ReturnType)
	}

	for _, m := range source.Methods {
		if err := a.analyzeMethodBody(m); err != nil {
			return nil, err
		}
	}
	return a.global, nil
}

// declareField resolves a top-level field's type and initializer, and
// binds it into the global scope. Fields are visible to every method body,
// including ones declared earlier in the source.
func (a *Analyzer) declareField(f *ast.Field) *tally.Error {
	declared, err := a.resolveOptionalType(f.TypeName, f.Index)
	if err != nil {
		return err
	}
	var valueType *types.Type
	if f.Value != nil {
		valueType, err = a.analyzeExpr(f.Value, a.global)
		if err != nil {
			return err
		}
	}
	fieldType, err := reconcileDeclared(declared, valueType, f.Index)
	if err != nil {
		return err
	}

	sym := &scope.VarSymbol{SurfaceName: f.Name, HostName: f.Name, Type: fieldType}
	f.Variable = sym
	if a.global.DefineVar(sym) {
		return tally.New(tally.Analyze, "field %q is already declared", f.Name)
	}
	return nil
}

// declareMethod resolves a method's signature (every parameter must carry
// an explicit type; the return type defaults to Nil if omitted) and binds
// it into the global scope, without analyzing its body. Declaring every
// method's signature before analyzing any body lets methods call each
// other regardless of source order, including recursively.
func (a *Analyzer) declareMethod(m *ast.Method) *tally.Error {
	paramTypes := make([]*types.Type, len(m.Parameters))
	for i, typeName := range m.ParameterTypeNames {
		if typeName == "" {
			return tally.New(tally.Analyze, "parameter %q of %q must have an explicit type", m.Parameters[i], m.Name)
		}
		t, ok := types.ByName(typeName)
		if !ok {
			return tally.New(tally.Analyze, "unknown type %q", typeName)
		}
		paramTypes[i] = t
	}
	returnType := types.NilType
	if m.ReturnTypeName != "" {
		t, ok := types.ByName(m.ReturnTypeName)
		if !ok {
			return tally.New(tally.Analyze, "unknown type %q", m.ReturnTypeName)
		}
		returnType = t
	}

	sym := &scope.FnSymbol{
		SurfaceName:    m.Name,
		HostName:       m.Name,
		ParameterTypes: paramTypes,
		ReturnType:     returnType,
	}
	m.Function = sym
	if a.global.DefineFn(sym) {
		return tally.New(tally.Analyze, "method %q/%d is already declared", m.Name, len(m.Parameters))
	}
	return nil
}

// analyzeMethodBody walks a method's body in a fresh scope with its
// parameters bound, checking every statement against its declared return
// type.
func (a *Analyzer) analyzeMethodBody(m *ast.Method) *tally.Error {
	body := scope.New(a.global)
	for i, name := range m.Parameters {
		sym := &scope.VarSymbol{SurfaceName: name, HostName: name, Type: m.Function.ParameterTypes[i]}
		if body.DefineVar(sym) {
			return tally.New(tally.Analyze, "parameter %q is already declared", name)
		}
	}

	prevReturn := a.currentReturn
	a.currentReturn = m.Function.ReturnType
	defer func() { a.currentReturn = prevReturn }()

	return a.analyzeStmts(m.Body, body)
}

// resolveOptionalType resolves a type name that may be empty, returning
// nil (meaning "infer from initializer") when it is.
func (a *Analyzer) resolveOptionalType(typeName string, index int) (*types.Type, *tally.Error) {
	if typeName == "" {
		return nil, nil
	}
	t, ok := types.ByName(typeName)
	if !ok {
		return nil, tally.New(tally.Analyze, "unknown type %q", typeName)
	}
	return t, nil
}

// reconcileDeclared combines a declaration's optional type annotation and
// optional initializer type into the variable's final type: declared wins
// if present (the initializer must be assignable to it); otherwise the
// initializer's type is used; declaring neither is a static error.
func reconcileDeclared(declared, value *types.Type, index int) (*types.Type, *tally.Error) {
	switch {
	case declared != nil && value != nil:
		if !types.RequireAssignable(declared, value) {
			return nil, tally.New(tally.Analyze, "cannot assign %s to declared type %s", value, declared)
		}
		return declared, nil
	case declared != nil:
		return declared, nil
	case value != nil:
		return value, nil
	default:
		return nil, tally.New(tally.Analyze, "declaration needs a type annotation or an initializer")
	}
}
