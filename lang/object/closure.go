package object

import "github.com/emberlang/ember/lang/value"

// Closure pairs a compiled Function with the Upvalues its body captured at
// the point the closure expression was evaluated. Every call to a closure
// runs the same Function bytecode against potentially different captured
// variables, which is what lets two counters created from the same
// function body stay independent.
type Closure struct {
	Header
	Function *Function
	Upvalues []*Upvalue
}

var _ Object = (*Closure)(nil)

func NewClosure(fn *Function) *Closure {
	c := &Closure{Function: fn, Upvalues: make([]*Upvalue, fn.UpvalueCount)}
	c.Header = NewHeader(KindClosure, 32+8*fn.UpvalueCount)
	return c
}

func (c *Closure) String() string { return c.Function.String() }
func (c *Closure) Type() string   { return "function" }
func (c *Closure) Truthy() bool   { return true }

func (c *Closure) Trace(mark func(value.Value)) {
	mark(c.Function)
	for _, uv := range c.Upvalues {
		if uv != nil {
			mark(uv)
		}
	}
}
