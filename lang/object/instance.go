package object

import (
	"github.com/dolthub/swiss"

	"github.com/emberlang/ember/lang/value"
)

// Instance is a runtime instance of a Class: the class it was constructed
// from and its own table of fields. Fields are created lazily on first
// assignment (there is no field declaration syntax), matching the
// reference implementation.
type Instance struct {
	Header
	Class  *Class
	Fields *swiss.Map[*String, value.Value]
}

var _ Object = (*Instance)(nil)

func NewInstance(class *Class) *Instance {
	i := &Instance{Class: class, Fields: swiss.NewMap[*String, value.Value](4)}
	i.Header = NewHeader(KindInstance, 48)
	return i
}

func (i *Instance) String() string { return i.Class.Name.Data + " instance" }
func (i *Instance) Type() string   { return "instance" }
func (i *Instance) Truthy() bool   { return true }

func (i *Instance) Trace(mark func(value.Value)) {
	mark(i.Class)
	i.Fields.Iter(func(name *String, v value.Value) (stop bool) {
		mark(name)
		mark(v)
		return false
	})
}
