package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberlang/ember/lang/value"
)

func TestInternStringDeduplicates(t *testing.T) {
	h := New()
	a := h.InternString("hello")
	b := h.InternString("hello")
	assert.Same(t, a, b)
}

func TestInitSentinelIsInterned(t *testing.T) {
	h := New()
	assert.Same(t, h.Init, h.InternString("init"))
}

func TestCollectFreesUnreachableStringAndKeepsReachableOne(t *testing.T) {
	h := New()
	keep := h.InternString("keep")
	h.InternString("drop")

	h.Collect(func(mark func(value.Value)) {
		mark(keep)
	})

	assert.Same(t, keep, h.Strings.Find("keep"))
	assert.Nil(t, h.Strings.Find("drop"))
	// the "init" sentinel is never rooted by this fake markRoots, so it too
	// is swept; a real VM always marks it as part of its own roots.
}

func TestNewInstanceReferencesClass(t *testing.T) {
	h := New()
	name := h.InternString("Pair")
	class := h.NewClass(name)
	inst := h.NewInstance(class)
	assert.Same(t, class, inst.Class)
}
