package object

import "github.com/emberlang/ember/lang/value"

// String is a heap-allocated, interned string. Two String objects with the
// same content are always the same pointer once interned through a
// table.Interner, so value equality for strings reduces to pointer equality
// (see value.Equal's default case).
type String struct {
	Header
	Data string
	Hash uint32
}

var _ Object = (*String)(nil)

// NewString allocates a String object and precomputes its FNV-1a hash. It
// does not intern the result; callers go through a table.Interner (or the
// heap package that wraps one) to get pointer-identity semantics.
func NewString(data string) *String {
	s := &String{Data: data, Hash: HashString(data)}
	s.Header = NewHeader(KindString, len(data)+16)
	return s
}

// HashString computes the FNV-1a hash used both to tag a String object and
// to probe a table.Interner for a string's content before any String
// object for it has been allocated.
func HashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func (s *String) String() string { return s.Data }
func (s *String) Type() string   { return "string" }
func (s *String) Truthy() bool   { return true }

// Trace is a no-op: strings hold no references to other values.
func (s *String) Trace(mark func(value.Value)) {}
