package parser

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is the sentinel wrapped by every SyntaxError
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports malformed expression structure at a source position.
// It aborts the expression being parsed.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Unwrap lets errors.Is match ErrSyntax
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// errorf builds a SyntaxError at the most recently read character
func (s *Stream) errorf(format string, args ...interface{}) error {
	return s.errorAt(s.last, format, args...)
}

// errorAt builds a SyntaxError at the given offset
func (s *Stream) errorAt(offset int, format string, args ...interface{}) error {
	return &SyntaxError{
		Pos: s.Position(offset),
		Msg: fmt.Sprintf(format, args...),
	}
}

// describe renders a character for error messages
func describe(r rune) string {
	if r == EOF {
		return "end of input"
	}
	return strconv.QuoteRune(r)
}
