package compiler

import (
	"fmt"
	"io"

	"github.com/emberlang/ember/lang/object"
)

// Disassemble writes a human-readable listing of every instruction in fn's
// chunk to w, labeled with name. It is used by the ash disassemble
// subcommand and by the compiler tests, which check the listing for the
// opcodes a program is expected to produce.
func Disassemble(w io.Writer, fn *object.Function, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	chunk := &fn.Chunk
	for offset := 0; offset < len(chunk.Code); {
		offset = disassembleInstruction(w, chunk, offset)
	}
}

func disassembleInstruction(w io.Writer, chunk *object.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", chunk.Lines[offset])
	}

	op := Opcode(chunk.Code[offset])
	switch op {
	case OpConstant, OpGetGlobal, OpDefineGlobal, OpSetGlobal, OpClass, OpMethod, OpGetSuper, OpGetProperty, OpSetProperty:
		return constantInstruction(w, op, chunk, offset)
	case OpGetLocal, OpSetLocal, OpGetUpvalue, OpSetUpvalue, OpCall:
		return byteInstruction(w, op, chunk, offset)
	case OpJump, OpJumpIfFalse:
		return jumpInstruction(w, op, 1, chunk, offset)
	case OpLoop:
		return jumpInstruction(w, op, -1, chunk, offset)
	case OpInvoke, OpSuperInvoke:
		return invokeInstruction(w, op, chunk, offset)
	case OpClosure:
		return closureInstruction(w, chunk, offset)
	default:
		fmt.Fprintf(w, "%s\n", op)
		return offset + op.Width()
	}
}

func constantInstruction(w io.Writer, op Opcode, chunk *object.Chunk, offset int) int {
	index := chunk.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", op, index, chunk.Constants[index])
	return offset + op.Width()
}

func byteInstruction(w io.Writer, op Opcode, chunk *object.Chunk, offset int) int {
	slot := chunk.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d\n", op, slot)
	return offset + op.Width()
}

func jumpInstruction(w io.Writer, op Opcode, sign int, chunk *object.Chunk, offset int) int {
	jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
	target := offset + 3 + sign*jump
	fmt.Fprintf(w, "%-16s %4d -> %d\n", op, offset, target)
	return offset + op.Width()
}

func invokeInstruction(w io.Writer, op Opcode, chunk *object.Chunk, offset int) int {
	index := chunk.Code[offset+1]
	argCount := chunk.Code[offset+2]
	fmt.Fprintf(w, "%-16s (%d args) %4d '%s'\n", op, argCount, index, chunk.Constants[index])
	return offset + op.Width()
}

func closureInstruction(w io.Writer, chunk *object.Chunk, offset int) int {
	offset++
	index := chunk.Code[offset]
	offset++
	fmt.Fprintf(w, "%-16s %4d '%s'\n", OpClosure, index, chunk.Constants[index])

	fn, ok := chunk.Constants[index].(*object.Function)
	if !ok {
		return offset
	}
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := chunk.Code[offset]
		offset++
		upIndex := chunk.Code[offset]
		offset++
		kind := "upvalue"
		if isLocal != 0 {
			kind = "local"
		}
		fmt.Fprintf(w, "%04d      |                     %s %d\n", offset-2, kind, upIndex)
	}
	return offset
}
