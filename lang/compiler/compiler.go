// Package compiler implements a single-pass Pratt parser that compiles
// source text straight to bytecode: there is no intermediate AST. Each
// grammar production is recognized and immediately emitted as it is
// parsed, using a table of prefix/infix parse functions keyed by operator
// precedence.
package compiler

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emberlang/ember/lang/heap"
	"github.com/emberlang/ember/lang/object"
	"github.com/emberlang/ember/lang/scanner"
	"github.com/emberlang/ember/lang/token"
	"github.com/emberlang/ember/lang/value"
)

// Precedence orders the binary and unary operators from loosest to
// tightest binding, used to decide how far parsePrecedence should consume
// an expression before returning to its caller.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

type parseFn func(p *parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// functionType distinguishes the kind of function currently being
// compiled, since methods, initializers and the implicit top-level script
// each need slightly different code generated around their body.
type functionType int

const (
	typeFunction functionType = iota
	typeInitializer
	typeMethod
	typeScript
)

type local struct {
	name       token.Token
	depth      int // -1 means declared but not yet defined
	isCaptured bool
}

type upvalueRef struct {
	index   uint8
	isLocal bool
}

// fnCompiler holds per-function compiler state: the function object being
// built, its locals and upvalues, and a link to the compiler for the
// lexically enclosing function so that resolving a name can walk outward.
type fnCompiler struct {
	enclosing *fnCompiler
	function  *object.Function
	fnType    functionType

	locals     [256]local
	localCount int
	upvalues   [256]upvalueRef
	scopeDepth int
}

// classCompiler tracks the chain of class declarations currently being
// compiled, so that "super" and implicit field access know whether they
// are legal at the current point in the source.
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// parser drives the scanner and emits bytecode into the fnCompiler chain as
// it recognizes each production. It never builds an AST: every call to
// parsePrecedence both recognizes and emits.
type parser struct {
	scanner *scanner.Scanner
	heap    *heap.Heap
	errOut  io.Writer

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errCount  int

	current_ *fnCompiler
	class    *classCompiler
}

// CompileError is returned by Compile when one or more syntax errors were
// found; diagnostics have already been written to the errOut writer passed
// to Compile.
type CompileError struct {
	Count int
}

func (e *CompileError) Error() string {
	if e.Count == 1 {
		return "compile error"
	}
	return fmt.Sprintf("%d compile errors", e.Count)
}

// Compile compiles src into a top-level function object ready to be
// wrapped in a closure and run by the virtual machine. Diagnostics are
// written to errOut as they are found; Compile keeps parsing after an
// error (panic-mode recovery, synchronizing at the next statement
// boundary) so that a single run reports more than one mistake when
// possible.
func Compile(h *heap.Heap, src []byte, errOut io.Writer) (*object.Function, error) {
	var sc scanner.Scanner
	sc.Init(src)

	p := &parser{scanner: &sc, heap: h, errOut: errOut}
	p.pushCompiler(typeScript, "")

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}

	fn := p.popCompiler()
	if p.hadError {
		return nil, &CompileError{Count: p.errCount}
	}
	return fn, nil
}

func (p *parser) pushCompiler(fnType functionType, name string) {
	c := &fnCompiler{enclosing: p.current_, fnType: fnType, function: p.heap.NewFunction()}
	if fnType != typeScript {
		c.function.Name = p.heap.InternString(name)
	}
	p.current_ = c

	// Slot zero is reserved: for methods and initializers it holds the
	// receiver ("this"); for plain functions it is simply unnamed and
	// inaccessible.
	slot := &c.locals[0]
	c.localCount = 1
	slot.depth = 0
	if fnType != typeFunction {
		slot.name = token.Token{Lexeme: "this"}
	} else {
		slot.name = token.Token{Lexeme: ""}
	}
}

func (p *parser) popCompiler() *object.Function {
	p.emitReturn()
	fn := p.current_.function
	p.current_ = p.current_.enclosing
	return fn
}

func (p *parser) currentChunk() *object.Chunk {
	return &p.current_.function.Chunk
}

// --- token stream -----------------------------------------------------

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.scanner.Scan()
		if p.current.Kind != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *parser) consume(kind token.Kind, message string) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) check(kind token.Kind) bool { return p.current.Kind == kind }

func (p *parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

// --- error reporting ----------------------------------------------------

func (p *parser) errorAtCurrent(msg string) { p.errorAt(&p.current, msg) }
func (p *parser) error(msg string)          { p.errorAt(&p.previous, msg) }

func (p *parser) errorAt(tok *token.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	if p.errOut != nil {
		fmt.Fprintf(p.errOut, "[line %d] Error", tok.Line)
		if tok.Kind == token.EOF {
			fmt.Fprint(p.errOut, " at end")
		} else {
			fmt.Fprintf(p.errOut, " at '%s'", tok.Lexeme)
		}
		fmt.Fprintf(p.errOut, ": %s\n", msg)
	}
	p.hadError = true
	p.errCount++
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so a single syntax error does not cascade into a wall of
// spurious follow-on errors.
func (p *parser) synchronize() {
	p.panicMode = false
	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMI {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- bytecode emission ---------------------------------------------------

func (p *parser) emitByte(b byte) {
	p.currentChunk().Write(b, p.previous.Line)
}

func (p *parser) emitOp(op Opcode) { p.emitByte(byte(op)) }

func (p *parser) emitOps(op Opcode, operand byte) {
	p.emitOp(op)
	p.emitByte(operand)
}

func (p *parser) emitReturn() {
	if p.current_.fnType == typeInitializer {
		p.emitOps(OpGetLocal, 0)
	} else {
		p.emitOp(OpNil)
	}
	p.emitOp(OpReturn)
}

func (p *parser) makeConstant(v value.Value) byte {
	index := p.currentChunk().AddConstant(v)
	if index > 255 {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(index)
}

func (p *parser) emitConstant(v value.Value) {
	p.emitOps(OpConstant, p.makeConstant(v))
}

// emitJump emits a jump instruction with a placeholder two-byte offset and
// returns the offset of the first placeholder byte, to be fixed up later
// by patchJump once the jump target is known.
func (p *parser) emitJump(op Opcode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.currentChunk().Code) - 2
}

func (p *parser) patchJump(offset int) {
	jump := len(p.currentChunk().Code) - offset - 2
	if jump > 0xffff {
		p.error("Too much code to jump over;")
	}
	p.currentChunk().Code[offset] = byte(jump >> 8)
	p.currentChunk().Code[offset+1] = byte(jump)
}

func (p *parser) emitLoop(loopStart int) {
	p.emitOp(OpLoop)
	offset := len(p.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		p.error("Loop body to large.")
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

// --- declarations and statements ----------------------------------------

func (p *parser) declaration() {
	switch {
	case p.match(token.CLASS):
		p.classDeclaration()
	case p.match(token.FUN):
		p.funDeclaration()
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) classDeclaration() {
	p.consume(token.IDENT, "Expect class name.")
	nameTok := p.previous
	nameConst := p.identifierConstant(nameTok)
	p.declareVariable()

	p.emitOps(OpClass, nameConst)
	p.defineVariable(nameConst)

	cc := &classCompiler{enclosing: p.class}
	p.class = cc

	if p.match(token.LT) {
		p.consume(token.IDENT, "Expect superclass name.")
		p.variable(false)
		if nameTok.Lexeme == p.previous.Lexeme {
			p.error("A class can't inherit from itself.")
		}

		p.beginScope()
		p.addLocal(token.Token{Lexeme: "super"})
		p.defineVariable(0)

		p.namedVariable(nameTok, false)
		p.emitOp(OpInherit)
		cc.hasSuperclass = true
	}

	p.namedVariable(nameTok, false)
	p.consume(token.LBRACE, "Expect '{' before class body.")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RBRACE, "Expect '}' after class body")
	p.emitOp(OpPop)

	if cc.hasSuperclass {
		p.endScope()
	}
	p.class = cc.enclosing
}

func (p *parser) method() {
	p.consume(token.IDENT, "Expect method name")
	nameTok := p.previous
	nameConst := p.identifierConstant(nameTok)

	fnType := typeMethod
	if nameTok.Lexeme == "init" {
		fnType = typeInitializer
	}
	p.function(fnType, nameTok.Lexeme)
	p.emitOps(OpMethod, nameConst)
}

func (p *parser) funDeclaration() {
	global := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(typeFunction, p.previous.Lexeme)
	p.defineVariable(global)
}

func (p *parser) function(fnType functionType, name string) {
	p.pushCompiler(fnType, name)
	p.beginScope()

	p.consume(token.LPAREN, "Expect '(' after function name.")
	if !p.check(token.RPAREN) {
		for {
			p.current_.function.Arity++
			if p.current_.function.Arity > 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			constant := p.parseVariable("Expect parameter name.")
			p.defineVariable(constant)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before function body.")
	p.block()

	nested := p.current_
	fn := p.popCompiler()

	p.emitOps(OpClosure, p.makeConstant(fn))
	for i := 0; i < fn.UpvalueCount; i++ {
		if nested.upvalues[i].isLocal {
			p.emitByte(1)
		} else {
			p.emitByte(0)
		}
		p.emitByte(nested.upvalues[i].index)
	}
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")
	if p.match(token.EQ) {
		p.expression()
	} else {
		p.emitOp(OpNil)
	}
	p.consume(token.SEMI, "Expect ';' after variable declaration.")
	p.defineVariable(global)
}

func (p *parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.LBRACE):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.SEMI, "Expect ';' after value.")
	p.emitOp(OpPrint)
}

func (p *parser) returnStatement() {
	if p.current_.fnType == typeScript {
		p.error("Can't return from top-level code.")
	}
	if p.match(token.SEMI) {
		p.emitReturn()
		return
	}
	if p.current_.fnType == typeInitializer {
		p.error("Can't return a value from an initializer.")
	}
	p.expression()
	p.consume(token.SEMI, "Expect ';' after return value.")
	p.emitOp(OpReturn)
}

func (p *parser) ifStatement() {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := p.emitJump(OpJumpIfFalse)
	p.emitOp(OpPop)
	p.statement()

	elseJump := p.emitJump(OpJump)
	p.patchJump(thenJump)
	p.emitOp(OpPop)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := len(p.currentChunk().Code)
	p.consume(token.LPAREN, "Expect '(' after a while.")
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := p.emitJump(OpJumpIfFalse)
	p.emitOp(OpPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(OpPop)
}

func (p *parser) forStatement() {
	p.beginScope()
	p.consume(token.LPAREN, "Expect '(' after for.")
	switch {
	case p.match(token.SEMI):
		// no initializer
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.currentChunk().Code)
	exitJump := -1
	if !p.match(token.SEMI) {
		p.expression()
		p.consume(token.SEMI, "Expect ';' after loop condition.")
		exitJump = p.emitJump(OpJumpIfFalse)
		p.emitOp(OpPop)
	}

	if !p.match(token.RPAREN) {
		bodyJump := p.emitJump(OpJump)
		incrStart := len(p.currentChunk().Code)
		p.expression()
		p.emitOp(OpPop)
		p.consume(token.RPAREN, "Expect ')' after for clause.")

		p.emitLoop(loopStart)
		loopStart = incrStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(OpPop)
	}
	p.endScope()
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMI, "Expect ';' after expression.")
	p.emitOp(OpPop)
}

func (p *parser) block() {
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
}

func (p *parser) beginScope() { p.current_.scopeDepth++ }

func (p *parser) endScope() {
	p.current_.scopeDepth--
	for p.current_.localCount > 0 && p.current_.locals[p.current_.localCount-1].depth > p.current_.scopeDepth {
		if p.current_.locals[p.current_.localCount-1].isCaptured {
			p.emitOp(OpCloseUpvalue)
		} else {
			p.emitOp(OpPop)
		}
		p.current_.localCount--
	}
}

// --- expressions ---------------------------------------------------------

func (p *parser) expression() { p.parsePrecedence(PrecAssignment) }

func (p *parser) parsePrecedence(prec Precedence) {
	p.advance()
	rule := getRule(p.previous.Kind)
	if rule.prefix == nil {
		p.error("Expect expression.")
		return
	}
	canAssign := prec <= PrecAssignment
	rule.prefix(p, canAssign)

	for prec <= getRule(p.current.Kind).precedence {
		p.advance()
		infix := getRule(p.previous.Kind).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.EQ) {
		p.error("Invalid assignment target.")
	}
}

func (p *parser) identifierConstant(tok token.Token) byte {
	return p.makeConstant(p.heap.InternString(tok.Lexeme))
}

func identifiersEqual(a, b token.Token) bool { return a.Lexeme == b.Lexeme }

func (p *parser) resolveLocal(c *fnCompiler, tok token.Token) int {
	for i := c.localCount - 1; i >= 0; i-- {
		local := &c.locals[i]
		if identifiersEqual(tok, local.name) {
			if local.depth == -1 {
				p.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func (p *parser) addUpvalue(c *fnCompiler, index uint8, isLocal bool) int {
	count := c.function.UpvalueCount
	for i := 0; i < count; i++ {
		uv := &c.upvalues[i]
		if int(uv.index) == int(index) && uv.isLocal == isLocal {
			return i
		}
	}
	if count == 256 {
		p.error("Too many closure variables in function.")
		return 0
	}
	c.upvalues[count] = upvalueRef{index: index, isLocal: isLocal}
	c.function.UpvalueCount++
	return count
}

func (p *parser) resolveUpvalue(c *fnCompiler, tok token.Token) int {
	if c.enclosing == nil {
		return -1
	}
	if local := p.resolveLocal(c.enclosing, tok); local != -1 {
		c.enclosing.locals[local].isCaptured = true
		return p.addUpvalue(c, uint8(local), true)
	}
	if up := p.resolveUpvalue(c.enclosing, tok); up != -1 {
		return p.addUpvalue(c, uint8(up), false)
	}
	return -1
}

func (p *parser) addLocal(tok token.Token) {
	if p.current_.localCount == 256 {
		p.error("Too many local variables in function.")
		return
	}
	p.current_.locals[p.current_.localCount] = local{name: tok, depth: -1}
	p.current_.localCount++
}

func (p *parser) declareVariable() {
	if p.current_.scopeDepth == 0 {
		return
	}
	tok := p.previous
	for i := p.current_.localCount - 1; i >= 0; i-- {
		l := &p.current_.locals[i]
		if l.depth != -1 && l.depth < p.current_.scopeDepth {
			break
		}
		if identifiersEqual(tok, l.name) {
			p.error("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(tok)
}

func (p *parser) parseVariable(errMsg string) byte {
	p.consume(token.IDENT, errMsg)
	p.declareVariable()
	if p.current_.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(p.previous)
}

func (p *parser) markInitialized() {
	if p.current_.scopeDepth == 0 {
		return
	}
	p.current_.locals[p.current_.localCount-1].depth = p.current_.scopeDepth
}

func (p *parser) defineVariable(global byte) {
	if p.current_.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitOps(OpDefineGlobal, global)
}

func (p *parser) argumentList() byte {
	var count int
	if !p.check(token.RPAREN) {
		for {
			p.expression()
			if count == 255 {
				p.error("Can't have more than 255 arguments")
			}
			count++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after arguments.")
	return byte(count)
}

func (p *parser) and_(canAssign bool) {
	endJump := p.emitJump(OpJumpIfFalse)
	p.emitOp(OpPop)
	p.parsePrecedence(PrecAnd)
	p.patchJump(endJump)
}

func (p *parser) or_(canAssign bool) {
	elseJump := p.emitJump(OpJumpIfFalse)
	endJump := p.emitJump(OpJump)

	p.patchJump(elseJump)
	p.emitOp(OpPop)

	p.parsePrecedence(PrecOr)
	p.patchJump(endJump)
}

func (p *parser) binary(canAssign bool) {
	opKind := p.previous.Kind
	rule := getRule(opKind)
	p.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.BANG_EQ:
		p.emitOp(OpEqual)
		p.emitOp(OpNot)
	case token.EQ_EQ:
		p.emitOp(OpEqual)
	case token.GT:
		p.emitOp(OpGreater)
	case token.GT_EQ:
		p.emitOp(OpLess)
		p.emitOp(OpNot)
	case token.LT:
		p.emitOp(OpLess)
	case token.LT_EQ:
		p.emitOp(OpGreater)
		p.emitOp(OpNot)
	case token.PLUS:
		p.emitOp(OpAdd)
	case token.MINUS:
		p.emitOp(OpSubtract)
	case token.STAR:
		p.emitOp(OpMultiply)
	case token.SLASH:
		p.emitOp(OpDivide)
	}
}

func (p *parser) call(canAssign bool) {
	argc := p.argumentList()
	p.emitOps(OpCall, argc)
}

func (p *parser) dot(canAssign bool) {
	p.consume(token.IDENT, "Expect property name after '.'.")
	name := p.identifierConstant(p.previous)

	switch {
	case canAssign && p.match(token.EQ):
		p.expression()
		p.emitOps(OpSetProperty, name)
	case p.match(token.LPAREN):
		argc := p.argumentList()
		p.emitOps(OpInvoke, name)
		p.emitByte(argc)
	default:
		p.emitOps(OpGetProperty, name)
	}
}

func (p *parser) literal(canAssign bool) {
	switch p.previous.Kind {
	case token.FALSE:
		p.emitOp(OpFalse)
	case token.TRUE:
		p.emitOp(OpTrue)
	case token.NIL:
		p.emitOp(OpNil)
	}
}

func (p *parser) grouping(canAssign bool) {
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after expression")
}

func (p *parser) number(canAssign bool) {
	n, err := strconv.ParseFloat(p.previous.Lexeme, 64)
	if err != nil {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(n))
}

func (p *parser) stringLiteral(canAssign bool) {
	raw := p.previous.Lexeme
	text := raw[1 : len(raw)-1] // strip the surrounding quotes
	p.emitConstant(p.heap.InternString(text))
}

func (p *parser) namedVariable(tok token.Token, canAssign bool) {
	var getOp, setOp Opcode
	arg := p.resolveLocal(p.current_, tok)
	if arg != -1 {
		getOp, setOp = OpGetLocal, OpSetLocal
	} else if arg = p.resolveUpvalue(p.current_, tok); arg != -1 {
		getOp, setOp = OpGetUpvalue, OpSetUpvalue
	} else {
		arg = int(p.identifierConstant(tok))
		getOp, setOp = OpGetGlobal, OpSetGlobal
	}

	if canAssign && p.match(token.EQ) {
		p.expression()
		p.emitOps(setOp, byte(arg))
	} else {
		p.emitOps(getOp, byte(arg))
	}
}

func (p *parser) variable(canAssign bool) { p.namedVariable(p.previous, canAssign) }

func (p *parser) super_(canAssign bool) {
	if p.class == nil {
		p.error("Can't use 'super' outside of a class.")
	} else if !p.class.hasSuperclass {
		p.error("can't use 'super' in a class with no superclass.")
	}

	p.consume(token.DOT, "Expect '.' after 'super'.")
	p.consume(token.IDENT, "Expect superclass method name.")
	name := p.identifierConstant(p.previous)

	p.namedVariable(token.Token{Lexeme: "this"}, false)
	if p.match(token.LPAREN) {
		argc := p.argumentList()
		p.namedVariable(token.Token{Lexeme: "super"}, false)
		p.emitOps(OpSuperInvoke, name)
		p.emitByte(argc)
	} else {
		p.namedVariable(token.Token{Lexeme: "super"}, false)
		p.emitOps(OpGetSuper, name)
	}
}

func (p *parser) this_(canAssign bool) {
	if p.class == nil {
		p.error("Can't use 'this' outside of a class.")
		return
	}
	p.variable(false)
}

func (p *parser) unary(canAssign bool) {
	opKind := p.previous.Kind
	p.parsePrecedence(PrecUnary)
	switch opKind {
	case token.BANG:
		p.emitOp(OpNot)
	case token.MINUS:
		p.emitOp(OpNegate)
	}
}

// rules is indexed by token.Kind and gives the prefix/infix parse
// functions and binding precedence for that token, the way clox's
// hand-written ParseRule table does.
var rules [token.NumKinds]parseRule

func r(kind token.Kind, prefix, infix parseFn, prec Precedence) {
	rules[kind] = parseRule{prefix, infix, prec}
}

func init() {
	r(token.LPAREN, (*parser).grouping, (*parser).call, PrecCall)
	r(token.DOT, nil, (*parser).dot, PrecCall)
	r(token.MINUS, (*parser).unary, (*parser).binary, PrecTerm)
	r(token.PLUS, nil, (*parser).binary, PrecTerm)
	r(token.SLASH, nil, (*parser).binary, PrecFactor)
	r(token.STAR, nil, (*parser).binary, PrecFactor)
	r(token.BANG, (*parser).unary, nil, PrecNone)
	r(token.BANG_EQ, nil, (*parser).binary, PrecEquality)
	r(token.EQ_EQ, nil, (*parser).binary, PrecEquality)
	r(token.GT, nil, (*parser).binary, PrecComparison)
	r(token.GT_EQ, nil, (*parser).binary, PrecComparison)
	r(token.LT, nil, (*parser).binary, PrecComparison)
	r(token.LT_EQ, nil, (*parser).binary, PrecComparison)
	r(token.IDENT, (*parser).variable, nil, PrecNone)
	r(token.STRING, (*parser).stringLiteral, nil, PrecNone)
	r(token.NUMBER, (*parser).number, nil, PrecNone)
	r(token.AND, nil, (*parser).and_, PrecAnd)
	r(token.OR, nil, (*parser).or_, PrecOr)
	r(token.FALSE, (*parser).literal, nil, PrecNone)
	r(token.TRUE, (*parser).literal, nil, PrecNone)
	r(token.NIL, (*parser).literal, nil, PrecNone)
	r(token.SUPER, (*parser).super_, nil, PrecNone)
	r(token.THIS, (*parser).this_, nil, PrecNone)
}

func getRule(kind token.Kind) parseRule { return rules[kind] }
