package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/lang/value"
)

func TestHeaderSweepList(t *testing.T) {
	a := NewString("a")
	b := NewString("b")

	a.Head().SetNext(b)
	require.Equal(t, Object(b), a.Head().Next())

	a.Head().SetMarked(true)
	assert.True(t, a.Head().Marked())
	assert.False(t, b.Head().Marked())
}

func TestKindStringNeverEmpty(t *testing.T) {
	for k := KindString; k <= KindBoundMethod; k++ {
		assert.NotEmpty(t, k.String())
	}
}

func TestStringIdentityAndHash(t *testing.T) {
	s1 := NewString("hello")
	s2 := NewString("hello")
	assert.Equal(t, s1.Hash, s2.Hash)
	assert.NotSame(t, s1, s2, "NewString does not intern on its own")
}

func TestClosureTracesFunctionAndUpvalues(t *testing.T) {
	fn := NewFunction()
	fn.UpvalueCount = 1
	clo := NewClosure(fn)
	slot := NewUpvalue(nil, 0)
	clo.Upvalues[0] = slot

	var traced []Object
	clo.Trace(func(v value.Value) {
		if o, ok := v.(Object); ok {
			traced = append(traced, o)
		}
	})
	require.Len(t, traced, 2)
}
