package vm

import (
	"fmt"

	"ocp/parser"
	"ocp/trace"
)

// TableResolver maps table names to the indices LOOKUP addresses.
// The registry must be fully populated before compilation starts.
type TableResolver interface {
	Lookup(name string) (int, bool)
}

// Compiler is the compiler state: it owns the growing instruction buffer
// and resolves table names. It is not safe for concurrent use; instruction
// order is significant.
type Compiler struct {
	program  *Program
	tables   TableResolver
	lastLine int // Last emitted line number for LineInfo deduplication
}

// NewCompiler creates a compiler with no tables defined
func NewCompiler() *Compiler {
	return &Compiler{
		program: &Program{
			Code:     make([]Instruction, 0, 64),
			LineInfo: make([]LineEntry, 0, 8),
		},
	}
}

// NewCompilerWithTables creates a compiler resolving table references
// against tables
func NewCompilerWithTables(tables TableResolver) *Compiler {
	c := NewCompiler()
	c.tables = tables
	return c
}

// Program returns the instructions emitted so far
func (c *Compiler) Program() *Program {
	return c.program
}

// Len returns the number of instructions emitted so far
func (c *Compiler) Len() int {
	return len(c.program.Code)
}

// Rollback discards every instruction from index n on. Callers use it to
// drop the partial output of a top-level expression that failed.
func (c *Compiler) Rollback(n int) {
	if n < 0 || n > len(c.program.Code) {
		return
	}
	c.program.Code = c.program.Code[:n]
	lines := c.program.LineInfo
	for len(lines) > 0 && lines[len(lines)-1].StartIP >= n {
		lines = lines[:len(lines)-1]
	}
	c.program.LineInfo = lines
	c.lastLine = 0
	if len(lines) > 0 {
		c.lastLine = lines[len(lines)-1].Line
	}
}

// PutInstruction appends an instruction. The operand must fit in
// 0..MaxArgument.
func (c *Compiler) PutInstruction(op OpCode, arg int) error {
	if arg < 0 || arg > MaxArgument {
		err := &ArgumentTooBigError{Op: op, Arg: arg}
		trace.Failure(len(c.program.Code), err)
		return err
	}
	ip := len(c.program.Code)
	c.program.Code = append(c.program.Code, Instruction{Op: op, Arg: arg})
	trace.Emit(ip, op.String(), arg, c.lastLine)
	return nil
}

// TableIndex resolves a table name
func (c *Compiler) TableIndex(name string) (int, bool) {
	if c.tables == nil {
		return 0, false
	}
	return c.tables.Lookup(name)
}

// Compile compiles an expression, leaving its value on the stack
func (c *Compiler) Compile(expr parser.Expr) error {
	return c.compileExpr(expr)
}

// OutRight compiles an output action: evaluate, then send to the output
func (c *Compiler) OutRight(a *parser.Arith) error {
	return c.out(a, OP_RIGHT_OUTPUT)
}

// OutPushback compiles a pushback action: evaluate, then push the value
// back onto the input
func (c *Compiler) OutPushback(a *parser.Arith) error {
	return c.out(a, OP_PBACK_OUTPUT)
}

func (c *Compiler) out(a *parser.Arith, op OpCode) error {
	if a == nil || a.Expr == nil {
		return fmt.Errorf("compile %s: empty expression", op)
	}
	c.trackLine(a)
	if err := c.compileExpr(a.Expr); err != nil {
		return err
	}
	return c.PutInstruction(op, 0)
}

// trackLine records a line number entry if the node's line differs from
// the last recorded line
func (c *Compiler) trackLine(node parser.Node) {
	line := node.Position().Line
	if line > 0 && line != c.lastLine {
		c.program.LineInfo = append(c.program.LineInfo, LineEntry{
			StartIP: len(c.program.Code),
			Line:    line,
		})
		c.lastLine = line
	}
}

// compileExpr emits code for an expression in post-order: operands first,
// then the operation consuming them
func (c *Compiler) compileExpr(expr parser.Expr) error {
	if expr == nil {
		return fmt.Errorf("compile: nil expression")
	}
	c.trackLine(expr)

	switch n := expr.(type) {
	case *parser.ConstantExpr:
		return c.PutInstruction(OP_PUSH_NUM, n.Value)
	case *parser.RefExpr:
		return c.PutInstruction(OP_PUSH_CHAR, n.Index)
	case *parser.LastExpr:
		return c.PutInstruction(OP_PUSH_LCHAR, n.Offset)
	case *parser.TableRefExpr:
		return c.compileTableRef(n)
	case *parser.BinaryExpr:
		return c.compileBinary(n)
	default:
		return fmt.Errorf("compile: unsupported expression %T", expr)
	}
}

// compileTableRef resolves the table before emitting anything, so an
// undefined name leaves no index code behind
func (c *Compiler) compileTableRef(n *parser.TableRefExpr) error {
	idx, ok := c.TableIndex(n.Name)
	if !ok {
		err := &TableNotDefinedError{Name: n.Name, Pos: n.Pos}
		trace.Failure(len(c.program.Code), err)
		return err
	}

	if err := c.compileExpr(n.Index); err != nil {
		return err
	}
	return c.PutInstruction(OP_LOOKUP, idx)
}

// compileBinary compiles a binary expression
func (c *Compiler) compileBinary(n *parser.BinaryExpr) error {
	if err := c.compileExpr(n.Left); err != nil {
		return err
	}
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}

	switch n.Operator {
	case parser.OP_PLUS:
		return c.PutInstruction(OP_ADD, 0)
	case parser.OP_MINUS:
		return c.PutInstruction(OP_SUB, 0)
	case parser.OP_TIMES:
		return c.PutInstruction(OP_MULT, 0)
	case parser.OP_DIV:
		return c.PutInstruction(OP_DIV, 0)
	case parser.OP_MOD:
		return c.PutInstruction(OP_MOD, 0)
	default:
		return fmt.Errorf("compile: unknown operator %s", n.Operator)
	}
}

// CompileArith parses and compiles a single output expression into a
// fresh program
func CompileArith(source string, tables TableResolver) (*Program, error) {
	a, err := parser.ParseArith(source)
	if err != nil {
		return nil, err
	}
	c := NewCompilerWithTables(tables)
	if err := c.OutRight(a); err != nil {
		return nil, err
	}
	return c.Program(), nil
}
