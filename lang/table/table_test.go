package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/lang/object"
)

func intern(t *Interner, data string) *object.String {
	if s := t.Find(data); s != nil {
		return s
	}
	s := object.NewString(data)
	t.Add(s)
	return s
}

func TestInternReturnsSamePointerForEqualContent(t *testing.T) {
	in := NewInterner()
	a := intern(in, "hello")
	b := intern(in, "hello")
	assert.Same(t, a, b)
	assert.Equal(t, 1, in.Len())
}

func TestInternDistinguishesDifferentContent(t *testing.T) {
	in := NewInterner()
	a := intern(in, "hello")
	b := intern(in, "world")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, in.Len())
}

func TestGrowPreservesAllEntries(t *testing.T) {
	in := NewInterner()
	var want []*object.String
	for i := 0; i < 200; i++ {
		want = append(want, intern(in, fmt.Sprintf("key-%d", i)))
	}
	require.Equal(t, 200, in.Len())
	for i, s := range want {
		got := in.Find(fmt.Sprintf("key-%d", i))
		require.NotNil(t, got)
		assert.Same(t, s, got)
	}
}

func TestDeleteLeavesTombstoneWithoutBreakingProbeChain(t *testing.T) {
	in := NewInterner()
	a := intern(in, "a")
	b := intern(in, "b")
	c := intern(in, "c")

	in.Delete(b)
	assert.Nil(t, in.Find("b"))
	assert.Same(t, a, in.Find("a"))
	assert.Same(t, c, in.Find("c"))
}

func TestSweepWeakDropsOnlyWhiteStrings(t *testing.T) {
	in := NewInterner()
	live := intern(in, "live")
	dead := intern(in, "dead")

	in.SweepWeak(func(s *object.String) bool { return s == dead })

	assert.Same(t, live, in.Find("live"))
	assert.Nil(t, in.Find("dead"))
	assert.Equal(t, 1, in.Len())
}
