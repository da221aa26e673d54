package object

import "github.com/emberlang/ember/lang/value"

// NativeFn is the signature of a function implemented in Go and exposed to
// scripts as a callable value (for example clock). It receives its
// arguments and returns a result or an error message.
type NativeFn func(args []value.Value) (value.Value, error)

// Native wraps a NativeFn as a callable heap object.
type Native struct {
	Header
	Name string
	Fn   NativeFn
}

var _ Object = (*Native)(nil)

func NewNative(name string, fn NativeFn) *Native {
	n := &Native{Name: name, Fn: fn}
	n.Header = NewHeader(KindNative, 32)
	return n
}

func (n *Native) String() string { return "<native fn " + n.Name + ">" }
func (n *Native) Type() string   { return "native function" }
func (n *Native) Truthy() bool   { return true }

// Trace is a no-op: natives close over Go code, not language Values.
func (n *Native) Trace(mark func(value.Value)) {}
