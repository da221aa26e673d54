// Package object defines the heap object model shared by the compiler, the
// garbage collector and the virtual machine: strings, functions, closures,
// upvalues, classes, instances and bound methods.
//
// Every heap object embeds Header, which gives the collector a uniform way
// to walk the set of all live allocations (the intrusive sweep list) and to
// mark/blacken an object without a type switch (via Trace).
package object

import "github.com/emberlang/ember/lang/value"

// Kind identifies the concrete type of a heap object.
type Kind uint8

const (
	KindString Kind = iota
	KindFunction
	KindNative
	KindClosure
	KindUpvalue
	KindClass
	KindInstance
	KindBoundMethod
)

var kindNames = [...]string{
	KindString:      "string",
	KindFunction:    "function",
	KindNative:      "native",
	KindClosure:     "closure",
	KindUpvalue:     "upvalue",
	KindClass:       "class",
	KindInstance:    "instance",
	KindBoundMethod: "bound method",
}

func (k Kind) String() string { return kindNames[k] }

// Object is implemented by every heap-allocated value. Head exposes the
// collector bookkeeping embedded in every concrete object type; Trace
// invokes mark for every Value the object directly references, letting the
// collector blacken any object kind without special-casing it.
type Object interface {
	value.Value
	Head() *Header
	Trace(mark func(value.Value))
}

// Header is the common bookkeeping embedded in every heap object: its kind
// tag, the collector's mark bit, the approximate byte size charged against
// the heap's allocation budget, and the intrusive next-pointer that chains
// every live allocation into the sweep list rooted at the heap.
type Header struct {
	kind    Kind
	marked  bool
	size    int
	next    Object
}

func (h *Header) init(kind Kind, size int) {
	h.kind = kind
	h.size = size
}

func (h *Header) Head() *Header { return h }
func (h *Header) Kind() Kind    { return h.kind }
func (h *Header) Size() int     { return h.size }
func (h *Header) Marked() bool  { return h.marked }
func (h *Header) SetMarked(m bool) { h.marked = m }
func (h *Header) Next() Object  { return h.next }
func (h *Header) SetNext(o Object) { h.next = o }

// NewHeader initializes a Header for a freshly allocated object of the given
// kind and approximate size in bytes. Callers embed Header as their first
// field and call NewHeader from their constructor before registering the
// object with the heap's collector.
func NewHeader(kind Kind, size int) Header {
	h := Header{}
	h.init(kind, size)
	return h
}
