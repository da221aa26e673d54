package object

import (
	"github.com/dolthub/swiss"

	"github.com/emberlang/ember/lang/value"
)

// Class is a class declaration: its name and the table of methods declared
// directly on it (not including inherited methods, which a subclass copies
// into its own table at the point OP_INHERIT runs).
type Class struct {
	Header
	Name    *String
	Methods *swiss.Map[*String, *Closure]
}

var _ Object = (*Class)(nil)

func NewClass(name *String) *Class {
	c := &Class{Name: name, Methods: swiss.NewMap[*String, *Closure](8)}
	c.Header = NewHeader(KindClass, 48)
	return c
}

func (c *Class) String() string { return c.Name.Data }
func (c *Class) Type() string   { return "class" }
func (c *Class) Truthy() bool   { return true }

func (c *Class) Trace(mark func(value.Value)) {
	mark(c.Name)
	c.Methods.Iter(func(name *String, method *Closure) (stop bool) {
		mark(name)
		mark(method)
		return false
	})
}
