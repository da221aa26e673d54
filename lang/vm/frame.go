package vm

import "github.com/emberlang/ember/lang/object"

// frame is one activation record on the call stack: which closure is
// running, where its instruction pointer currently is, and where its
// locals begin in the shared value stack.
type frame struct {
	closure *object.Closure
	ip      int
	base    int
}

func (f *frame) chunk() *object.Chunk { return &f.closure.Function.Chunk }

func (f *frame) readByte() byte {
	b := f.chunk().Code[f.ip]
	f.ip++
	return b
}

func (f *frame) readShort() int {
	hi := f.chunk().Code[f.ip]
	lo := f.chunk().Code[f.ip+1]
	f.ip += 2
	return int(hi)<<8 | int(lo)
}

func (f *frame) line() int {
	if f.ip == 0 {
		return f.chunk().Lines[0]
	}
	return f.chunk().Lines[f.ip-1]
}
