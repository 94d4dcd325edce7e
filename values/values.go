// Package values defines the runtime representations the interpreter
// produces and consumes. Tally's type registry is closed (package types)
// and declares no user-defined object type, so a runtime value never needs
// to carry its own scope — it is exactly the Go value its static type
// implies: nil, bool, rune, string, *big.Int, *big.Float, or *Iterator for
// IntegerIterable. This package exists to give that representation a name
// and to hold the operations that depend on more than one of those cases
// at once: structural equality and the range iterator FOR consumes.
//
// Grounded on the teacher's objects package (one Go type per GoMixObject
// variant, e.g. objects.Integer, objects.Range), generalized to Go's own
// native numeric/string/bool types wherever Tally has no need for a
// wrapper struct the teacher's objects.GoMixObject interface required.
package values

import "math/big"

// Iterator is the runtime form of an IntegerIterable: a lazy, one-shot
// sequence of *big.Int values. It is never restartable — once Next
// returns ok=false, every later call also returns ok=false. A FOR loop
// holds exactly one Iterator for its entire execution and never rewinds
// it, matching spec.md §4.5's "the iterable a FOR loop evaluates is
// consumed exactly once, left to right" requirement.
type Iterator struct {
	current *big.Int
	stop    *big.Int
	done    bool
}

// NewRange builds an Iterator over start..stop, exclusive of stop. If
// start >= stop the iterator is immediately exhausted.
func NewRange(start, stop *big.Int) *Iterator {
	return &Iterator{current: new(big.Int).Set(start), stop: new(big.Int).Set(stop)}
}

// Next returns the iterator's next value and advances it, or ok=false once
// the range is exhausted.
func (it *Iterator) Next() (*big.Int, bool) {
	if it.done || it.current.Cmp(it.stop) >= 0 {
		it.done = true
		return nil, false
	}
	v := new(big.Int).Set(it.current)
	it.current.Add(it.current, big.NewInt(1))
	return v, true
}

// Equal implements Tally's == and != operators: structural equality over
// the runtime representations above. The analyzer already guarantees both
// sides share a static type, so mismatched Go types here never occur in a
// program that passed analysis.
func Equal(a, b interface{}) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case rune:
		bv, ok := b.(rune)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case *big.Int:
		bv, ok := b.(*big.Int)
		return ok && av.Cmp(bv) == 0
	case *big.Float:
		bv, ok := b.(*big.Float)
		return ok && av.Cmp(bv) == 0
	default:
		return a == b
	}
}

// Compare implements Tally's <, <=, >, >= operators over the two
// Comparable-eligible numeric types and Character/String. It returns a
// negative number, zero, or a positive number as a < b, a == b, a > b.
func Compare(a, b interface{}) int {
	switch av := a.(type) {
	case *big.Int:
		return av.Cmp(b.(*big.Int))
	case *big.Float:
		return av.Cmp(b.(*big.Float))
	case rune:
		bv := b.(rune)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		panic("values.Compare: not a Comparable-eligible value")
	}
}
