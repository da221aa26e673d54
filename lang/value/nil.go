package value

// Nil is the type of the language's nil value. Its only legal value is the
// Nil constant below. It is represented as a defined byte type, not
// struct{}, purely so that the zero value reads naturally as "Nil".
type Nil byte

// NilValue is the sole Value of type Nil.
const NilValue = Nil(0)

var _ Value = NilValue

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }
func (Nil) Truthy() bool   { return false }
