package value

import "strconv"

// Number is the language's sole numeric type: an IEEE-754 double. Equality
// follows IEEE semantics (NaN != NaN), matching the reference
// implementation's NaN-boxed encoding.
type Number float64

var _ Value = Number(0)

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (n Number) Type() string { return "number" }

// Truthy: per the language's falsiness rule, every Number is truthy,
// including 0.
func (n Number) Truthy() bool { return true }
