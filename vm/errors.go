package vm

import (
	"errors"
	"fmt"

	"ocp/parser"
)

var (
	// ErrArgumentTooBig is wrapped by ArgumentTooBigError
	ErrArgumentTooBig = errors.New("argument too big")
	// ErrTableNotDefined is wrapped by TableNotDefinedError
	ErrTableNotDefined = errors.New("table not defined")
)

// ArgumentTooBigError reports an operand outside 0..MaxArgument
type ArgumentTooBigError struct {
	Op  OpCode
	Arg int
}

func (e *ArgumentTooBigError) Error() string {
	return fmt.Sprintf("argument too big: %d (%s operand must be 0..%d)", e.Arg, e.Op, MaxArgument)
}

func (e *ArgumentTooBigError) Unwrap() error {
	return ErrArgumentTooBig
}

// TableNotDefinedError reports a table reference that does not resolve
type TableNotDefinedError struct {
	Name string
	Pos  parser.Position
}

func (e *TableNotDefinedError) Error() string {
	return fmt.Sprintf("table not defined: %s (line %d, column %d)", e.Name, e.Pos.Line, e.Pos.Column)
}

func (e *TableNotDefinedError) Unwrap() error {
	return ErrTableNotDefined
}
