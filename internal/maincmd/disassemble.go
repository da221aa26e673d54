package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/emberlang/ember/lang/compiler"
	"github.com/emberlang/ember/lang/heap"
	"github.com/emberlang/ember/lang/object"
)

// Disassemble compiles each file in args without running it and prints the
// resulting bytecode, function by function.
func (c *Cmd) Disassemble(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := disassembleFile(stdio, path); err != nil {
			return err
		}
	}
	return nil
}

func disassembleFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	h := heap.New()
	fn, err := compiler.Compile(h, src, stdio.Stderr)
	if err != nil {
		return err
	}

	disassembleFunction(stdio.Stdout, fn, "<script>")
	return nil
}

// disassembleFunction prints fn and recurses into every nested function
// literal reachable from its constant pool, mirroring how the reference
// implementation walks a compiled chunk's constants for --disassemble.
func disassembleFunction(w io.Writer, fn *object.Function, name string) {
	compiler.Disassemble(w, fn, name)
	for _, c := range fn.Chunk.Constants {
		if nested, ok := c.(*object.Function); ok {
			disassembleFunction(w, nested, nested.String())
		}
	}
}
