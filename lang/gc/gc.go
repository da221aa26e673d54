// Package gc implements the tri-color mark-sweep collector that reclaims
// heap objects: strings, functions, closures, upvalues, classes, instances
// and bound methods.
//
// The collector does not know how to find an interpreter's roots (the VM's
// value stack, call frames, globals table, and so on); the caller supplies
// that as a markRoots callback, keeping this package free of any dependency
// on lang/vm or lang/compiler. It does know how every object kind refers to
// other values, via the object.Object.Trace method each kind implements,
// so blackening an object never requires a type switch here.
package gc

import "github.com/emberlang/ember/lang/object"
import "github.com/emberlang/ember/lang/value"

const minHeapBytes = 1 << 20 // 1 MiB, the reference implementation's initial collection threshold

// GC owns the intrusive list of every live allocation and the gray
// worklist used while tracing.
type GC struct {
	objects object.Object // head of the sweep list, most recent allocation first
	gray    []object.Object

	bytesAllocated int
	nextGC         int

	extraRoots []value.Value

	// StressGC, when true, makes ShouldCollect report true every time it is
	// called. The VM calls it before every instruction, so this collects at
	// every instruction boundary; an allocation inside an instruction does
	// not trigger a collection. Used to exercise collector correctness under
	// heavy collection pressure without changing a program's observable
	// output.
	StressGC bool

	// Collections counts how many times Collect has run, for diagnostics.
	Collections int
}

// New returns an empty collector with the default initial threshold.
func New() *GC {
	return &GC{nextGC: minHeapBytes}
}

// Register adds a freshly allocated object to the sweep list and charges
// its approximate size against the heap budget. Registering never starts a
// collection; one runs only when a caller sees ShouldCollect report true and
// calls Collect (the VM does this between instructions).
func (gc *GC) Register(obj object.Object) {
	obj.Head().SetNext(gc.objects)
	gc.objects = obj
	gc.bytesAllocated += obj.Head().Size()
}

// ShouldCollect reports whether the heap has grown past its current
// threshold, or StressGC is set.
func (gc *GC) ShouldCollect() bool {
	return gc.StressGC || gc.bytesAllocated > gc.nextGC
}

// BytesAllocated reports the collector's current accounting of live heap
// bytes, for diagnostics and tests.
func (gc *GC) BytesAllocated() int { return gc.bytesAllocated }

// SetInitialThreshold overrides the heap size, in bytes, that must be
// allocated before the first collection runs. Intended for tuning via
// configuration rather than for use mid-run.
func (gc *GC) SetInitialThreshold(bytes int) {
	if bytes > 0 {
		gc.nextGC = bytes
	}
}

// PushRoot temporarily roots v so a collection triggered by a subsequent
// allocation cannot sweep it before it is reachable any other way. Neither
// the compiler nor the VM in this module calls it: the VM collects only
// between instructions, when every live temporary is already on its stack,
// and compilation never triggers a collection. Callers must pair every
// PushRoot with a PopRoot once the value is reachable through its normal
// owner (the stack, a constant pool, and so on).
func (gc *GC) PushRoot(v value.Value) {
	gc.extraRoots = append(gc.extraRoots, v)
}

// PopRoot releases the most recently pushed extra root.
func (gc *GC) PopRoot() {
	gc.extraRoots = gc.extraRoots[:len(gc.extraRoots)-1]
}

// Mark marks v reachable. Non-object values (Nil, Bool, Number) are
// ignored: they carry no heap allocation to track. An object already
// marked is left alone, which is what makes the collector terminate in
// the presence of cycles.
func (gc *GC) Mark(v value.Value) {
	if v == nil {
		return
	}
	obj, ok := v.(object.Object)
	if !ok {
		return
	}
	gc.MarkObject(obj)
}

// MarkObject marks obj reachable, queuing it for tracing if this is the
// first time it has been seen this collection.
func (gc *GC) MarkObject(obj object.Object) {
	if obj == nil {
		return
	}
	h := obj.Head()
	if h.Marked() {
		return
	}
	h.SetMarked(true)
	gc.gray = append(gc.gray, obj)
}

func (gc *GC) traceReferences() {
	for len(gc.gray) > 0 {
		n := len(gc.gray) - 1
		obj := gc.gray[n]
		gc.gray = gc.gray[:n]
		obj.Trace(gc.Mark)
	}
}

func (gc *GC) sweep() {
	var prev object.Object
	obj := gc.objects
	for obj != nil {
		h := obj.Head()
		if h.Marked() {
			h.SetMarked(false)
			prev = obj
			obj = h.Next()
			continue
		}
		unreached := obj
		obj = h.Next()
		if prev != nil {
			prev.Head().SetNext(obj)
		} else {
			gc.objects = obj
		}
		gc.bytesAllocated -= unreached.Head().Size()
	}
}

// Collect runs one full mark-sweep cycle:
//
//  1. markRoots is called with gc.Mark, rooting everything the interpreter
//     can reach directly (VM stack, call frames, open upvalues, globals).
//  2. every extra root pushed via PushRoot is marked.
//  3. the gray worklist is traced to a fixed point, blackening every
//     object reachable from a root.
//  4. sweepWeak is called so weak-referencing structures (the string
//     intern table) can drop entries for objects that turned out to be
//     white, before those objects are actually freed.
//  5. the sweep list is walked, unlinking and discarding every object that
//     is still white.
//
// The threshold for the next collection is then set to twice the heap
// size that survived this one, floored at minHeapBytes, mirroring the
// reference implementation's GC_HEAP_GROW_FACTOR.
func (gc *GC) Collect(markRoots func(mark func(value.Value)), sweepWeak func(isWhite func(obj object.Object) bool)) {
	markRoots(gc.Mark)
	for _, v := range gc.extraRoots {
		gc.Mark(v)
	}
	gc.traceReferences()
	if sweepWeak != nil {
		sweepWeak(func(obj object.Object) bool { return !obj.Head().Marked() })
	}
	gc.sweep()

	gc.nextGC = gc.bytesAllocated * 2
	if gc.nextGC < minHeapBytes {
		gc.nextGC = minHeapBytes
	}
	gc.Collections++
}
