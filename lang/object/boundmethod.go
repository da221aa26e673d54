package object

import "github.com/emberlang/ember/lang/value"

// BoundMethod is the result of evaluating a property access that resolves
// to a method: the receiver the method was looked up on, bundled with the
// method's Closure so that calling the bound method later still has access
// to the instance it was bound to (via the closure's implicit "this" slot
// convention).
type BoundMethod struct {
	Header
	Receiver value.Value
	Method   *Closure
}

var _ Object = (*BoundMethod)(nil)

func NewBoundMethod(receiver value.Value, method *Closure) *BoundMethod {
	b := &BoundMethod{Receiver: receiver, Method: method}
	b.Header = NewHeader(KindBoundMethod, 32)
	return b
}

func (b *BoundMethod) String() string { return b.Method.String() }
func (b *BoundMethod) Type() string   { return "function" }
func (b *BoundMethod) Truthy() bool   { return true }

func (b *BoundMethod) Trace(mark func(value.Value)) {
	mark(b.Receiver)
	mark(b.Method)
}
