package object

import "github.com/emberlang/ember/lang/value"

// Function is a compiled function prototype: its arity, how many upvalues
// its closures capture, and the bytecode chunk that implements its body. A
// Function is immutable once the compiler finishes emitting it; Closure is
// the runtime object that pairs one with captured upvalues.
type Function struct {
	Header
	Arity        int
	UpvalueCount int
	Chunk        Chunk
	Name         *String // nil for the implicit top-level script function
}

var _ Object = (*Function)(nil)

func NewFunction() *Function {
	f := &Function{}
	f.Header = NewHeader(KindFunction, 64)
	return f
}

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<fn " + f.Name.Data + ">"
}

func (f *Function) Type() string { return "function" }
func (f *Function) Truthy() bool { return true }

func (f *Function) Trace(mark func(value.Value)) {
	if f.Name != nil {
		mark(f.Name)
	}
	for _, c := range f.Chunk.Constants {
		mark(c)
	}
}
