package value

// Bool is the type of boolean values.
type Bool bool

const (
	False = Bool(false)
	True  = Bool(true)
)

var _ Value = True

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Type() string { return "bool" }
func (b Bool) Truthy() bool { return bool(b) }
