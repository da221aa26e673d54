package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var out, errs bytes.Buffer
	machine := New(&out, &errs, NewOptions())
	err := machine.Interpret([]byte(src))
	if err != nil {
		return out.String(), err
	}
	return out.String(), nil
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3 - 4 / 2;\n")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";` + "\n")
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestClosureCounters(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    print i;
  }
  return count;
}
var counterA = makeCounter();
var counterB = makeCounter();
counterA();
counterA();
counterB();
`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n1\n", out)
}

func TestClassInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
class Animal {
  init(name) {
    this.name = name;
  }
  speak() {
    print this.name + " makes a sound";
  }
}
class Dog < Animal {
  speak() {
    super.speak();
    print this.name + " barks";
  }
}
var d = Dog("Rex");
d.speak();
`)
	require.NoError(t, err)
	assert.Equal(t, "Rex makes a sound\nRex barks\n", out)
}

func TestInitializerArityError(t *testing.T) {
	_, err := run(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
  }
}
var p = Point(1);
`)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "Expected 2 arguments")
}

func TestForLoop(t *testing.T) {
	out, err := run(t, `
var sum = 0;
for (var i = 1; i <= 5; i = i + 1) {
  sum = sum + i;
}
print sum;
`)
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestUndefinedVariableError(t *testing.T) {
	_, err := run(t, "print undefinedThing;\n")
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.True(t, strings.Contains(rerr.Message, "Undefined variable"))
}

func TestClockNativeReturnsNumber(t *testing.T) {
	out, err := run(t, `print clock() >= 0;` + "\n")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestStressGCDoesNotChangeObservableOutput(t *testing.T) {
	src := `
class Node {
  init(value, next) {
    this.value = value;
    this.next = next;
  }
}
var head = nil;
for (var i = 0; i < 50; i = i + 1) {
  head = Node(i, head);
}
var sum = 0;
var n = head;
while (n != nil) {
  sum = sum + n.value;
  n = n.next;
}
print sum;
`
	var normalOut, stressOut bytes.Buffer
	var errs bytes.Buffer

	normal := New(&normalOut, &errs, NewOptions())
	require.NoError(t, normal.Interpret([]byte(src)))

	stressOpts := NewOptions()
	stressOpts.StressGC = true
	stress := New(&stressOut, &errs, stressOpts)
	require.NoError(t, stress.Interpret([]byte(src)))

	assert.Equal(t, normalOut.String(), stressOut.String())
}
