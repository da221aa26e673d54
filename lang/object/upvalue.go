package object

import "github.com/emberlang/ember/lang/value"

// Upvalue is a closure's reference to a variable declared in an enclosing
// function's stack frame. While the variable's frame is still live the
// upvalue is open and Location points directly at the stack slot, so
// writes through any closure sharing it are visible to all of them and to
// the frame itself. When the frame returns, the VM closes the upvalue by
// copying the value into Closed and repointing Location at it.
//
// NextOpen threads every still-open upvalue into a single list, ordered by
// descending stack slot, so the VM can find-or-create upvalues for a given
// slot and close every upvalue at or above a given slot in one pass. Slot
// records that stack index while the upvalue is open; the VM's stack is
// backed by a fixed-capacity array for exactly this reason; a value.Value
// pointer into it would go stale the moment the slice reallocated.
type Upvalue struct {
	Header
	Location *value.Value
	Closed   value.Value
	Slot     int
	NextOpen *Upvalue
}

var _ Object = (*Upvalue)(nil)

// NewUpvalue creates an open upvalue pointing at slot, at stack index idx.
func NewUpvalue(slot *value.Value, idx int) *Upvalue {
	u := &Upvalue{Location: slot, Slot: idx}
	u.Header = NewHeader(KindUpvalue, 40)
	return u
}

// Close copies the current value out of the stack slot the upvalue points
// at and repoints Location at the private copy, detaching it from the
// stack.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
	u.NextOpen = nil
}

func (u *Upvalue) String() string { return "<upvalue>" }
func (u *Upvalue) Type() string   { return "upvalue" }
func (u *Upvalue) Truthy() bool   { return true }

func (u *Upvalue) Trace(mark func(value.Value)) {
	if u.Location != nil {
		mark(*u.Location)
	}
}
