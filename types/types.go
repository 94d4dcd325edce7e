// Package types implements the Tally type registry: the fixed, process-wide
// set of predefined types, their declared fields/methods, and the
// assignability rule the analyzer uses to check every initializer,
// assignment, argument and return value in the program.
package types

// Type describes one of Tally's predefined types. The registry is closed —
// user code can never add to it, since Tally has no type declarations.
type Type struct {
	// Name is the surface name used in source, e.g. "Integer".
	Name string
	// HostName is the name the translator emits for this type, e.g. "int".
	HostName string

	fields  map[string]*Type
	methods map[methodKey]*Signature
}

// Signature is a declared method's parameter and return types. Parameter 0
// is always the receiver's own type; arguments supplied at a call site
// start at parameter 1 (spec.md §4.4's analyzer/interpreter resolution of
// the receiver-offset Open Question).
type Signature struct {
	Params []*Type
	Return *Type
}

type methodKey struct {
	name  string
	arity int
}

func newType(name, hostName string) *Type {
	return &Type{Name: name, HostName: hostName, fields: map[string]*Type{}, methods: map[methodKey]*Signature{}}
}

func (t *Type) declareField(name string, typ *Type) {
	t.fields[name] = typ
}

func (t *Type) declareMethod(name string, arity int, sig *Signature) {
	t.methods[methodKey{name, arity}] = sig
}

// Field looks up a declared field by name.
func (t *Type) Field(name string) (*Type, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// Method looks up a declared method by name and call-site arity (number of
// arguments excluding the receiver).
func (t *Type) Method(name string, arity int) (*Signature, bool) {
	m, ok := t.methods[methodKey{name, arity + 1}]
	return m, ok
}

func (t *Type) String() string { return t.Name }

// The predefined types, exactly as spec.md §3.3 lists them.
var (
	Any             = newType("Any", "Object")
	NilType         = newType("Nil", "void")
	Comparable      = newType("Comparable", "Comparable")
	Boolean         = newType("Boolean", "boolean")
	Integer         = newType("Integer", "int")
	Decimal         = newType("Decimal", "double")
	Character       = newType("Character", "char")
	String          = newType("String", "String")
	IntegerIterable = newType("IntegerIterable", "Iterable<Integer>")
)

// ByName resolves a surface type name to its Type, for the parser's
// optional ": TypeName" annotations and the analyzer's field/return
// resolution.
func ByName(name string) (*Type, bool) {
	t, ok := registry[name]
	return t, ok
}

var registry map[string]*Type

func init() {
	registry = map[string]*Type{
		Any.Name:             Any,
		NilType.Name:         NilType,
		Comparable.Name:      Comparable,
		Boolean.Name:         Boolean,
		Integer.Name:         Integer,
		Decimal.Name:         Decimal,
		Character.Name:       Character,
		String.Name:          String,
		IntegerIterable.Name: IntegerIterable,
	}

	// Tally has no user-defined types and no collection literals, so no
	// predefined type declares instance fields or methods; declareField/
	// declareMethod exist for spec.md §4.3's "types declare built-in
	// members as needed by method-call receivers" but nothing in this
	// language currently needs one.
}

// RequireAssignable implements spec.md §3.3's requireAssignable: target ==
// source, or target == Any, or target == Comparable and source is one of
// the four Comparable-eligible types.
func RequireAssignable(target, source *Type) bool {
	if target == source {
		return true
	}
	if target == Any {
		return true
	}
	if target == Comparable {
		switch source {
		case Integer, Decimal, Character, String:
			return true
		}
	}
	return false
}
