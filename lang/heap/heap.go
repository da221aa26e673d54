// Package heap is the single allocation entry point used by both the
// compiler and the virtual machine, pairing the collector (lang/gc) with
// the string intern table (lang/table) the way the reference
// implementation's single reallocate() function pairs raw allocation with
// GC bookkeeping. Every heap object in an Ember program is born through
// one of this package's New* constructors.
package heap

import (
	"github.com/emberlang/ember/lang/gc"
	"github.com/emberlang/ember/lang/object"
	"github.com/emberlang/ember/lang/table"
	"github.com/emberlang/ember/lang/value"
)

// Heap owns the collector and the string intern table for one interpreter
// instance. The zero value is not usable; construct with New.
type Heap struct {
	GC      *gc.GC
	Strings *table.Interner

	// Init is the interned string "init", checked on every method
	// resolution to special-case initializers.
	Init *object.String
}

// New returns a Heap with the "init" sentinel string pre-interned.
func New() *Heap {
	h := &Heap{GC: gc.New(), Strings: table.NewInterner()}
	h.Init = h.InternString("init")
	return h
}

// InternString returns the canonical *object.String for data, allocating
// and registering one if this is the first time data has been seen.
func (h *Heap) InternString(data string) *object.String {
	if s := h.Strings.Find(data); s != nil {
		return s
	}
	s := object.NewString(data)
	h.GC.Register(s)
	h.Strings.Add(s)
	return s
}

// NewFunction allocates an empty function prototype for the compiler to
// fill in.
func (h *Heap) NewFunction() *object.Function {
	fn := object.NewFunction()
	h.GC.Register(fn)
	return fn
}

// NewClosure allocates a closure over fn with fn.UpvalueCount empty
// upvalue slots.
func (h *Heap) NewClosure(fn *object.Function) *object.Closure {
	c := object.NewClosure(fn)
	h.GC.Register(c)
	return c
}

// NewUpvalue allocates an open upvalue pointing at slot, at stack index idx.
func (h *Heap) NewUpvalue(slot *value.Value, idx int) *object.Upvalue {
	uv := object.NewUpvalue(slot, idx)
	h.GC.Register(uv)
	return uv
}

// NewClass allocates an empty class named name.
func (h *Heap) NewClass(name *object.String) *object.Class {
	c := object.NewClass(name)
	h.GC.Register(c)
	return c
}

// NewInstance allocates a fresh instance of class with no fields set.
func (h *Heap) NewInstance(class *object.Class) *object.Instance {
	i := object.NewInstance(class)
	h.GC.Register(i)
	return i
}

// NewBoundMethod allocates a method bound to receiver.
func (h *Heap) NewBoundMethod(receiver value.Value, method *object.Closure) *object.BoundMethod {
	b := object.NewBoundMethod(receiver, method)
	h.GC.Register(b)
	return b
}

// NewNative allocates a native function object wrapping fn.
func (h *Heap) NewNative(name string, fn object.NativeFn) *object.Native {
	n := object.NewNative(name, fn)
	h.GC.Register(n)
	return n
}

// PushRoot and PopRoot delegate to the collector, letting callers protect a
// value across an allocation that might trigger a collection before the
// value is reachable any other way.
func (h *Heap) PushRoot(v value.Value) { h.GC.PushRoot(v) }
func (h *Heap) PopRoot()               { h.GC.PopRoot() }

// MaybeCollect runs a collection if the heap has grown past its threshold
// (or StressGC is set), using markRoots to find the interpreter's roots.
func (h *Heap) MaybeCollect(markRoots func(mark func(value.Value))) {
	if h.GC.ShouldCollect() {
		h.Collect(markRoots)
	}
}

// Collect runs an unconditional collection.
func (h *Heap) Collect(markRoots func(mark func(value.Value))) {
	h.GC.Collect(markRoots, func(isWhite func(object.Object) bool) {
		h.Strings.SweepWeak(func(s *object.String) bool { return isWhite(s) })
	})
}
