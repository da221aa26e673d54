package object

import "github.com/emberlang/ember/lang/value"

// Chunk is a dense, append-only sequence of bytecode together with a
// parallel line table (one entry per byte, for error reporting) and the
// constant pool the bytecode indexes into. The compiler writes a Chunk one
// instruction at a time; the virtual machine only ever reads it.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
}

// Write appends a single bytecode byte, recording the source line it came
// from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends v to the constant pool and returns its index. The
// compiler is responsible for deduplicating identical constants if it
// wants to; interning makes repeated string constants share one String
// object, but each AddConstant call still takes its own pool slot.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
