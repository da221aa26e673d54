// Package value defines the Value representation shared by the compiler,
// the garbage collector and the virtual machine.
//
// A Value is one of: Nil, Bool, Number, or a heap object (any type that
// embeds object.Header, from the sibling lang/object package). This mirrors the
// semantics of the reference implementation's NaN-boxed 64-bit encoding
// (nil/bool/double/object-pointer) without committing to a specific bit
// layout: numbers compare with IEEE `==` (so NaN != NaN), booleans and nil
// compare by tag, and objects compare by reference identity.
package value

// Value is implemented by every value the virtual machine can push onto its
// stack, store in a local, or return from a function.
type Value interface {
	// String formats the value the way the PRINT statement does.
	String() string
	// Type returns a short, human-readable type name used in error messages.
	Type() string
	// Truthy reports whether the value is truthy: everything except Nil and
	// the boolean false is truthy.
	Truthy() bool
}

// Equal reports whether a and b are equal per the language's equality rules:
// numbers compare with IEEE `==`, booleans and nil by tag, and any other
// value (objects) by reference identity: a type with its own Equal method
// is asked, and otherwise the two interface values are compared with ==,
// which for the pointer object types means identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Nil:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	default:
		if eq, ok := a.(interface{ Equal(Value) bool }); ok {
			return eq.Equal(b)
		}
		return a == b
	}
}
