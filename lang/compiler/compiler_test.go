package compiler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/ember/lang/heap"
	"github.com/emberlang/ember/lang/object"
)

func compile(t *testing.T, src string) *object.Function {
	t.Helper()
	h := heap.New()
	var errs bytes.Buffer
	fn, err := Compile(h, []byte(src), &errs)
	require.NoError(t, err, "compile errors: %s", errs.String())
	return fn
}

func TestCompileArithmeticEmitsExpectedOpcodes(t *testing.T) {
	fn := compile(t, "print 1 + 2 * 3;\n")
	var buf bytes.Buffer
	Disassemble(&buf, fn, "test")
	out := buf.String()
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "OP_MULTIPLY")
	assert.Contains(t, out, "OP_ADD")
	assert.Contains(t, out, "OP_PRINT")
}

func TestCompileReportsErrorsWithoutPanicking(t *testing.T) {
	h := heap.New()
	var errs bytes.Buffer
	_, err := Compile(h, []byte("var;"), &errs)
	require.Error(t, err)
	assert.NotEmpty(t, errs.String())
}

func TestCompileRecoversAfterError(t *testing.T) {
	h := heap.New()
	var errs bytes.Buffer
	_, err := Compile(h, []byte("var = 1;\nprint 2;\n"), &errs)
	require.Error(t, err)
	cerr, ok := err.(*CompileError)
	require.True(t, ok)
	assert.GreaterOrEqual(t, cerr.Count, 1)
}

func TestCompileClosureCapturesUpvalue(t *testing.T) {
	fn := compile(t, `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    return i;
  }
  return count;
}
`)
	var buf bytes.Buffer
	Disassemble(&buf, fn, "script")
	assert.Contains(t, buf.String(), "OP_CLOSURE")
}

func TestCompileClassWithSuperAndInit(t *testing.T) {
	fn := compile(t, `
class Animal {
  init(name) {
    this.name = name;
  }
  speak() {
    print this.name;
  }
}
class Dog < Animal {
  speak() {
    super.speak();
  }
}
`)
	var buf bytes.Buffer
	Disassemble(&buf, fn, "script")
	out := buf.String()
	assert.Contains(t, out, "OP_CLASS")
	assert.Contains(t, out, "OP_INHERIT")
	assert.Contains(t, out, "OP_METHOD")
}

func TestCompileIfWhileForEmitJumps(t *testing.T) {
	fn := compile(t, `
for (var i = 0; i < 3; i = i + 1) {
  if (i == 1) {
    print "one";
  } else {
    print i;
  }
}
`)
	var buf bytes.Buffer
	Disassemble(&buf, fn, "script")
	out := buf.String()
	assert.Contains(t, out, "OP_JUMP_IF_FALSE")
	assert.Contains(t, out, "OP_LOOP")
}
