package parser

import (
	"math"
	"unicode/utf8"
)

// EOF is returned by the stream once the input is exhausted
const EOF rune = -1

// maxLiteral bounds numeric literals while scanning. The operand width is
// checked later, when the literal is emitted.
const maxLiteral = math.MaxInt32

// Stream is the character source of the expression parser. It supports
// single-character pushback and position checkpoints for speculative scans.
type Stream struct {
	input string
	line  int // line number of the first input line
	pos   int // offset of the next character to read
	last  int // offset of the most recently read character
}

// NewStream creates a Stream over input
func NewStream(input string) *Stream {
	return NewStreamAt(input, 1)
}

// NewStreamAt creates a Stream over input that starts on the given source
// line, for callers that split a file into one expression per line
func NewStreamAt(input string, line int) *Stream {
	if line < 1 {
		line = 1
	}
	return &Stream{input: input, line: line}
}

// Read consumes and returns the next character, or EOF
func (s *Stream) Read() rune {
	s.last = s.pos
	if s.pos >= len(s.input) {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	return r
}

// Unread pushes back r, which must be the character returned by the last
// Read. The stream returns to the offset that Read started from, so invalid
// bytes decoded as utf8.RuneError are restored exactly.
func (s *Stream) Unread(r rune) {
	if r == EOF {
		return
	}
	s.pos = s.last
}

// Peek returns the next character without consuming it
func (s *Stream) Peek() rune {
	if s.pos >= len(s.input) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

// Mark returns a checkpoint that Reset can restore
func (s *Stream) Mark() int {
	return s.pos
}

// Reset rewinds the stream to a checkpoint taken by Mark
func (s *Stream) Reset(mark int) {
	s.pos = mark
}

// Remaining returns the unread part of the input
func (s *Stream) Remaining() string {
	return s.input[s.pos:]
}

// SkipSpace consumes whitespace and returns the first other character
func (s *Stream) SkipSpace() rune {
	for {
		r := s.Read()
		if !isSpace(r) {
			return r
		}
	}
}

// Expect skips whitespace and consumes want, or fails with a syntax error
func (s *Stream) Expect(want rune) error {
	r := s.SkipSpace()
	if r != want {
		err := s.errorf("expected %s, found %s", describe(want), describe(r))
		s.Unread(r)
		return err
	}
	return nil
}

// ParseID scans a maximal run of ASCII letters. It returns "" when the next
// character is not a letter.
func (s *Stream) ParseID() string {
	start := s.pos
	for s.pos < len(s.input) && isLetter(s.input[s.pos]) {
		s.pos++
	}
	s.last = start
	return s.input[start:s.pos]
}

// ParseNumber scans a numeric literal whose first character lead has
// already been consumed. Accepted forms are decimal digits, @"hex, @'octal
// and `c (the code of character c, optionally closed by a quote).
func (s *Stream) ParseNumber(lead rune) (int, error) {
	start := s.last
	switch {
	case isDigit(lead):
		s.Unread(lead)
		return s.digits(start, 10)
	case lead == '@':
		switch s.Read() {
		case '"':
			return s.digits(start, 16)
		case '\'':
			return s.digits(start, 8)
		default:
			return 0, s.errorAt(start, "expected '\"' or ''' after '@'")
		}
	case lead == '`':
		r := s.Read()
		if r == EOF {
			return 0, s.errorAt(start, "unterminated character literal")
		}
		if s.Peek() == '\'' {
			s.Read()
		}
		return int(r), nil
	default:
		return 0, s.errorAt(start, "expected number, found %s", describe(lead))
	}
}

// digits scans digits of the given base; at least one is required
func (s *Stream) digits(start, base int) (int, error) {
	n, count := 0, 0
	for {
		r := s.Peek()
		d := digitValue(r)
		if d < 0 || d >= base {
			break
		}
		s.Read()
		n = n*base + d
		if n > maxLiteral {
			return 0, s.errorAt(start, "number too large")
		}
		count++
	}
	if count == 0 {
		return 0, s.errorAt(start, "missing digits in number")
	}
	return n, nil
}

// Position returns the position of the given offset
func (s *Stream) Position(offset int) Position {
	pos := Position{Line: s.line, Column: 1, Offset: offset}
	for i := 0; i < offset && i < len(s.input); i++ {
		if s.input[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// LastPosition returns the position of the most recently read character
func (s *Stream) LastPosition() Position {
	return s.Position(s.last)
}

// isSpace reports whether r is whitespace in the OCP notation
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// isLetter returns true if the byte is an ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit returns true if the character is a decimal digit
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// startsNumber reports whether r can begin a numeric literal
func startsNumber(r rune) bool {
	return isDigit(r) || r == '@' || r == '`'
}

func digitValue(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
