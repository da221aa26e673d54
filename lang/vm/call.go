package vm

import (
	"github.com/emberlang/ember/lang/object"
	"github.com/emberlang/ember/lang/value"
)

// call resolves the callee already sitting argCount below the top of the
// stack (OP_CALL's stack picture is "f a1..an") and begins executing it.
func (vm *VM) call(argCount int) error {
	callee := vm.peek(argCount)
	return vm.callValue(callee, argCount)
}

func (vm *VM) callValue(callee value.Value, argCount int) error {
	switch c := callee.(type) {
	case *object.Closure:
		return vm.callClosure(c, argCount)
	case *object.Native:
		return vm.callNative(c, argCount)
	case *object.Class:
		inst := vm.heap.NewInstance(c)
		vm.stack[len(vm.stack)-1-argCount] = inst
		if initializer, ok := c.Methods.Get(vm.initString); ok {
			return vm.callClosure(initializer, argCount)
		}
		if argCount != 0 {
			return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
		}
		return nil
	case *object.BoundMethod:
		vm.stack[len(vm.stack)-1-argCount] = c.Receiver
		return vm.callClosure(c.Method, argCount)
	default:
		return vm.runtimeError("Can only call functions and classes.")
	}
}

func (vm *VM) callClosure(closure *object.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if vm.frameCount == vm.opts.MaxFrames {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames[vm.frameCount] = frame{closure: closure, base: len(vm.stack) - argCount - 1}
	vm.frameCount++
	return nil
}

func (vm *VM) callNative(native *object.Native, argCount int) error {
	args := make([]value.Value, argCount)
	copy(args, vm.stack[len(vm.stack)-argCount:])
	result, err := native.Fn(args)
	if err != nil {
		return vm.runtimeError("%s", err.Error())
	}
	vm.stack = vm.stack[:len(vm.stack)-argCount-1]
	vm.push(result)
	return nil
}

func (vm *VM) invoke(name *object.String, argCount int) error {
	receiver := vm.peek(argCount)
	inst, ok := receiver.(*object.Instance)
	if !ok {
		return vm.runtimeError("Only instances have methods.")
	}
	if v, ok := inst.Fields.Get(name); ok {
		vm.stack[len(vm.stack)-1-argCount] = v
		return vm.callValue(v, argCount)
	}
	return vm.invokeFromClass(inst.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *object.Class, name *object.String, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Data)
	}
	return vm.callClosure(method, argCount)
}
