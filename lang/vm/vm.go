// Package vm implements the stack-based bytecode interpreter: the opcode
// dispatch loop, call frames, closures and upvalues, and the class/instance
// method-binding protocol.
package vm

import (
	"fmt"
	"io"

	"github.com/dolthub/swiss"

	"github.com/emberlang/ember/lang/compiler"
	"github.com/emberlang/ember/lang/heap"
	"github.com/emberlang/ember/lang/object"
	"github.com/emberlang/ember/lang/value"
)

const defaultMaxFrames = 64
const defaultStackSize = defaultMaxFrames * 256

// Options configures resource limits and debugging behavior for a VM. The
// zero value is not valid; use NewOptions for the reference implementation's
// defaults.
type Options struct {
	MaxFrames int
	StackSize int
	StressGC  bool

	// GCThresholdBytes overrides the heap size that must be allocated before
	// the first collection runs. Zero keeps the collector's own default.
	GCThresholdBytes int
}

// NewOptions returns the reference implementation's default resource
// limits.
func NewOptions() Options {
	return Options{MaxFrames: defaultMaxFrames, StackSize: defaultStackSize}
}

// RuntimeError is returned by Interpret when a script raises an uncaught error:
// a type mismatch, an arity mismatch, an undefined variable, and so on.
// Message is the error text; Trace is the call stack at the point of
// failure, innermost frame first, formatted the way the reference
// implementation prints it.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e *RuntimeError) Error() string { return e.Message }

// VM is one interpreter instance: its value stack, call frames, global
// variables, open upvalues and the heap it allocates from.
type VM struct {
	stack      []value.Value
	frames     []frame
	frameCount int

	globals      *swiss.Map[*object.String, value.Value]
	openUpvalues *object.Upvalue // head of a list sorted by descending stack slot

	heap *heap.Heap
	out  io.Writer
	errW io.Writer

	initString *object.String
	opts       Options
}

// New returns a VM ready to run programs, writing PRINT output to out and
// compiler/runtime diagnostics to errW.
func New(out, errW io.Writer, opts Options) *VM {
	h := heap.New()
	h.GC.StressGC = opts.StressGC
	h.GC.SetInitialThreshold(opts.GCThresholdBytes)
	vm := &VM{
		stack:      make([]value.Value, 0, opts.StackSize),
		frames:     make([]frame, opts.MaxFrames),
		globals:    swiss.NewMap[*object.String, value.Value](64),
		heap:       h,
		out:        out,
		errW:       errW,
		initString: h.Init,
		opts:       opts,
	}
	vm.defineNatives()
	return vm
}

// Heap exposes the VM's allocator, mainly so the REPL and tests can intern
// strings for globals ahead of a run.
func (vm *VM) Heap() *heap.Heap { return vm.heap }

// Interpret compiles and runs src, writing PRINT output and returning a
// *compiler.CompileError or *RuntimeError on failure.
func (vm *VM) Interpret(src []byte) error {
	fn, err := compiler.Compile(vm.heap, src, vm.errW)
	if err != nil {
		return err
	}

	closure := vm.heap.NewClosure(fn)
	vm.push(closure)
	if err := vm.callValue(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

// push appends to the value stack. The stack's backing array is
// preallocated to its full capacity in New (MaxFrames*256 slots, matching
// the reference implementation's STACK_MAX) so that append here never
// reallocates: open upvalues hold a *value.Value pointing directly into
// this array, and a reallocation would silently leave them aliasing a
// stale copy instead of the live slot. call() bounds recursion depth via
// MaxFrames, which keeps the value stack within its preallocated capacity
// for any program that doesn't push an unbounded number of values within a
// single frame.
func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() value.Value {
	n := len(vm.stack) - 1
	v := vm.stack[n]
	vm.stack = vm.stack[:n]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) currentFrame() *frame { return &vm.frames[vm.frameCount-1] }

func (vm *VM) runtimeError(format string, args ...any) *RuntimeError {
	msg := fmt.Sprintf(format, args...)
	re := &RuntimeError{Message: msg}
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		fn := f.closure.Function
		name := "script"
		if fn.Name != nil {
			name = fn.Name.Data + "()"
		}
		re.Trace = append(re.Trace, fmt.Sprintf("[line %d] in %s", f.line(), name))
	}
	if vm.errW != nil {
		fmt.Fprintln(vm.errW, msg)
		for _, line := range re.Trace {
			fmt.Fprintln(vm.errW, line)
		}
	}
	vm.stack = vm.stack[:0]
	vm.frameCount = 0
	vm.openUpvalues = nil
	return re
}

// run executes bytecode starting from the most recently pushed frame until
// the call stack unwinds back below where Interpret started, an uncaught
// runtime error occurs, or OP_RETURN returns from the last frame.
func (vm *VM) run() error {
	for {
		f := vm.currentFrame()
		op := compiler.Opcode(f.readByte())

		if vm.heap.GC.ShouldCollect() {
			vm.heap.Collect(vm.markRoots)
		}

		switch op {
		case compiler.OpConstant:
			vm.push(f.chunk().Constants[f.readByte()])

		case compiler.OpNil:
			vm.push(value.NilValue)
		case compiler.OpTrue:
			vm.push(value.True)
		case compiler.OpFalse:
			vm.push(value.False)
		case compiler.OpPop:
			vm.pop()

		case compiler.OpGetLocal:
			slot := f.readByte()
			vm.push(vm.stack[f.base+int(slot)])
		case compiler.OpSetLocal:
			slot := f.readByte()
			vm.stack[f.base+int(slot)] = vm.peek(0)

		case compiler.OpGetGlobal:
			name := f.chunk().Constants[f.readByte()].(*object.String)
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Data)
			}
			vm.push(v)
		case compiler.OpDefineGlobal:
			name := f.chunk().Constants[f.readByte()].(*object.String)
			vm.globals.Put(name, vm.peek(0))
			vm.pop()
		case compiler.OpSetGlobal:
			name := f.chunk().Constants[f.readByte()].(*object.String)
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Data)
			}
			vm.globals.Put(name, vm.peek(0))

		case compiler.OpGetUpvalue:
			slot := f.readByte()
			vm.push(*f.closure.Upvalues[slot].Location)
		case compiler.OpSetUpvalue:
			slot := f.readByte()
			*f.closure.Upvalues[slot].Location = vm.peek(0)

		case compiler.OpGetProperty:
			if err := vm.getProperty(f); err != nil {
				return err
			}
		case compiler.OpSetProperty:
			if err := vm.setProperty(f); err != nil {
				return err
			}
		case compiler.OpGetSuper:
			name := f.chunk().Constants[f.readByte()].(*object.String)
			superclass := vm.pop().(*object.Class)
			if err := vm.bindMethod(superclass, name); err != nil {
				return err
			}

		case compiler.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case compiler.OpGreater:
			if err := vm.numericBinary(f, func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return err
			}
		case compiler.OpLess:
			if err := vm.numericBinary(f, func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return err
			}
		case compiler.OpAdd:
			if err := vm.add(f); err != nil {
				return err
			}
		case compiler.OpSubtract:
			if err := vm.numericBinary(f, func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return err
			}
		case compiler.OpMultiply:
			if err := vm.numericBinary(f, func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return err
			}
		case compiler.OpDivide:
			if err := vm.numericBinary(f, func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return err
			}
		case compiler.OpNot:
			vm.push(value.Bool(!vm.pop().Truthy()))
		case compiler.OpNegate:
			n, ok := vm.peek(0).(value.Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)

		case compiler.OpPrint:
			fmt.Fprintln(vm.out, vm.pop().String())

		case compiler.OpJump:
			offset := f.readShort()
			f.ip += offset
		case compiler.OpJumpIfFalse:
			offset := f.readShort()
			if !vm.peek(0).Truthy() {
				f.ip += offset
			}
		case compiler.OpLoop:
			offset := f.readShort()
			f.ip -= offset

		case compiler.OpCall:
			argCount := int(f.readByte())
			if err := vm.call(argCount); err != nil {
				return err
			}
		case compiler.OpInvoke:
			method := f.chunk().Constants[f.readByte()].(*object.String)
			argCount := int(f.readByte())
			if err := vm.invoke(method, argCount); err != nil {
				return err
			}
		case compiler.OpSuperInvoke:
			method := f.chunk().Constants[f.readByte()].(*object.String)
			argCount := int(f.readByte())
			superclass := vm.pop().(*object.Class)
			if err := vm.invokeFromClass(superclass, method, argCount); err != nil {
				return err
			}

		case compiler.OpClosure:
			fn := f.chunk().Constants[f.readByte()].(*object.Function)
			closure := vm.heap.NewClosure(fn)
			vm.push(closure)
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := f.readByte()
				index := f.readByte()
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(f.base + int(index))
				} else {
					closure.Upvalues[i] = f.closure.Upvalues[index]
				}
			}
		case compiler.OpCloseUpvalue:
			vm.closeUpvalues(len(vm.stack) - 1)
			vm.pop()

		case compiler.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(f.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop() // the implicit top-level closure
				return nil
			}
			vm.stack = vm.stack[:f.base]
			vm.push(result)

		case compiler.OpClass:
			name := f.chunk().Constants[f.readByte()].(*object.String)
			vm.push(vm.heap.NewClass(name))
		case compiler.OpInherit:
			superclass, ok := vm.peek(1).(*object.Class)
			if !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			subclass := vm.peek(0).(*object.Class)
			superclass.Methods.Iter(func(name *object.String, method *object.Closure) (stop bool) {
				subclass.Methods.Put(name, method)
				return false
			})
			vm.pop() // subclass; superclass stays bound to the "super" local
		case compiler.OpMethod:
			name := f.chunk().Constants[f.readByte()].(*object.String)
			vm.defineMethod(name)

		default:
			return vm.runtimeError("Unknown opcode %s.", op)
		}
	}
}

func (vm *VM) add(f *frame) error {
	b, a := vm.peek(0), vm.peek(1)
	as, aIsStr := a.(*object.String)
	bs, bIsStr := b.(*object.String)
	switch {
	case aIsStr && bIsStr:
		vm.pop()
		vm.pop()
		concatenated := vm.heap.InternString(as.Data + bs.Data)
		vm.push(concatenated)
		return nil
	}
	an, aIsNum := a.(value.Number)
	bn, bIsNum := b.(value.Number)
	if aIsNum && bIsNum {
		vm.pop()
		vm.pop()
		vm.push(an + bn)
		return nil
	}
	return vm.runtimeError("Operands must be two numbers or two strings.")
}

func (vm *VM) numericBinary(f *frame, op func(a, b float64) value.Value) error {
	b, ok1 := vm.peek(0).(value.Number)
	a, ok2 := vm.peek(1).(value.Number)
	if !ok1 || !ok2 {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	vm.push(op(float64(a), float64(b)))
	return nil
}

func (vm *VM) getProperty(f *frame) error {
	name := f.chunk().Constants[f.readByte()].(*object.String)
	inst, ok := vm.peek(0).(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have properties.")
	}
	if v, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(v)
		return nil
	}
	return vm.bindMethod(inst.Class, name)
}

func (vm *VM) setProperty(f *frame) error {
	name := f.chunk().Constants[f.readByte()].(*object.String)
	inst, ok := vm.peek(1).(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have fields.")
	}
	v := vm.peek(0)
	inst.Fields.Put(name, v)
	vm.pop()
	vm.pop()
	vm.push(v)
	return nil
}

func (vm *VM) bindMethod(class *object.Class, name *object.String) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Data)
	}
	bound := vm.heap.NewBoundMethod(vm.peek(0), method)
	vm.pop()
	vm.push(bound)
	return nil
}

func (vm *VM) defineMethod(name *object.String) {
	method := vm.pop().(*object.Closure)
	class := vm.peek(0).(*object.Class)
	class.Methods.Put(name, method)
}

func (vm *VM) captureUpvalue(slot int) *object.Upvalue {
	var prev *object.Upvalue
	uv := vm.openUpvalues
	for uv != nil && uv.Slot > slot {
		prev = uv
		uv = uv.NextOpen
	}
	if uv != nil && uv.Slot == slot {
		return uv
	}
	created := vm.heap.NewUpvalue(&vm.stack[slot], slot)
	created.NextOpen = uv
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.NextOpen = created
	}
	return created
}

func (vm *VM) closeUpvalues(fromSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= fromSlot {
		uv := vm.openUpvalues
		uv.Close()
		vm.openUpvalues = uv.NextOpen
	}
}

func (vm *VM) markRoots(mark func(value.Value)) {
	for _, v := range vm.stack {
		mark(v)
	}
	for i := 0; i < vm.frameCount; i++ {
		mark(vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.NextOpen {
		mark(uv)
	}
	vm.globals.Iter(func(k *object.String, v value.Value) (stop bool) {
		mark(k)
		mark(v)
		return false
	})
	mark(vm.initString)
}
