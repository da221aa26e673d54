package vm

import (
	"time"

	"github.com/emberlang/ember/lang/object"
	"github.com/emberlang/ember/lang/value"
)

// defineNatives installs the small set of functions implemented in Go and
// exposed to every script as a pre-defined global, mirroring the reference
// implementation's single "clock" native.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", func(args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Since(processStart)) / float64(time.Second)), nil
	})
}

// processStart anchors clock()'s return value; recorded once at package
// init rather than per VM so two VMs in the same process agree on elapsed
// time instead of each starting back at zero.
var processStart = time.Now()

func (vm *VM) defineNative(name string, fn object.NativeFn) {
	nameStr := vm.heap.InternString(name)
	native := vm.heap.NewNative(name, fn)
	vm.globals.Put(nameStr, native)
}
