package parser

import (
	"fmt"
)

// Parser parses OCP arithmetic expressions:
//
//	expr      := term (('+' | '-') term)*
//	term      := factor (('*' | 'div:' | 'mod:') factor)*
//	factor    := '\' lastOrRef | '(' expr ')' | number | id '[' expr ']'
//	lastOrRef := '$' | '(' '$' '-' number ')' | number
//
// Whitespace may separate any two tokens, including an identifier and its
// '['. The keywords div: and mod: are written without inner spaces.
type Parser struct {
	s *Stream
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	return &Parser{s: NewStream(input)}
}

// NewParserAt creates a Parser whose positions start at the given line
func NewParserAt(input string, line int) *Parser {
	return &Parser{s: NewStreamAt(input, line)}
}

// NewParserFromStream creates a Parser reading from an existing stream, so
// an enclosing grammar can continue after the expression.
func NewParserFromStream(s *Stream) *Parser {
	return &Parser{s: s}
}

// Stream returns the underlying character stream
func (p *Parser) Stream() *Stream {
	return p.s
}

// Parse parses input as a single expression. Trailing input is an error.
func Parse(input string) (Expr, error) {
	return ParseAt(input, 1)
}

// ParseAt is Parse for input that begins on the given source line
func ParseAt(input string, line int) (Expr, error) {
	p := NewParserAt(input, line)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseArith parses input as a single output expression
func ParseArith(input string) (*Arith, error) {
	return ParseArithAt(input, 1)
}

// ParseArithAt is ParseArith for input that begins on the given source line
func ParseArithAt(input string, line int) (*Arith, error) {
	p := NewParserAt(input, line)
	a, err := p.ParseArith()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseExpression parses the longest expression at the current position.
// The character that ended it is left unread.
func (p *Parser) ParseExpression() (Expr, error) {
	return p.parse()
}

// ParseArith parses an expression and wraps it as an output action
func (p *Parser) ParseArith() (*Arith, error) {
	expr, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Arith{Pos: expr.Position(), Expr: expr}, nil
}

// expectEOF fails unless only whitespace remains
func (p *Parser) expectEOF() error {
	if c := p.s.SkipSpace(); c != EOF {
		return p.s.errorf("unexpected %s after expression", describe(c))
	}
	return nil
}

// parse scans terms left to right. A pending + or - is folded as soon as
// the next additive operator arrives, which keeps the additive tier
// left-associative; multiplicative operators fold into the current term
// immediately.
func (p *Parser) parse() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	var pending Expr
	var pendingOp Operator
	for {
		mark := p.s.Mark()
		c := p.s.SkipSpace()

		if c == '+' || c == '-' {
			op := OP_PLUS
			if c == '-' {
				op = OP_MINUS
			}
			if pending != nil {
				left = newBinary(pendingOp, pending, left)
			}
			pending, pendingOp = left, op
			if left, err = p.parseTerm(); err != nil {
				return nil, err
			}
			continue
		}

		op, ok := OP_TIMES, c == '*'
		if !ok {
			op, ok = p.keywordOperator(c)
		}
		if ok {
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = newBinary(op, left, right)
			continue
		}

		p.s.Reset(mark)
		if pending != nil {
			left = newBinary(pendingOp, pending, left)
		}
		return left, nil
	}
}

// keywordOperator tries to match div: or mod: starting with the already
// consumed character c. On mismatch the stream is restored to just before c.
func (p *Parser) keywordOperator(c rune) (Operator, bool) {
	if c != 'd' && c != 'm' {
		return 0, false
	}
	p.s.Unread(c)
	mark := p.s.Mark()
	id := p.s.ParseID()
	if op, ok := keywordOperators[id]; ok && p.s.Peek() == ':' {
		p.s.Read()
		return op, true
	}
	p.s.Reset(mark)
	return 0, false
}

// parseTerm parses a single factor
func (p *Parser) parseTerm() (Expr, error) {
	c := p.s.SkipSpace()
	pos := p.s.LastPosition()

	switch {
	case c == '\\':
		return p.parseLastOrRef(pos)
	case c == '(':
		expr, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.s.Expect(')'); err != nil {
			return nil, err
		}
		return expr, nil
	case startsNumber(c):
		n, err := p.s.ParseNumber(c)
		if err != nil {
			return nil, err
		}
		return &ConstantExpr{Pos: pos, Value: n}, nil
	case c == EOF:
		return nil, p.s.errorf("unexpected end of input")
	}

	p.s.Unread(c)
	name := p.s.ParseID()
	if name == "" {
		p.s.Read()
		return nil, p.s.errorf("unexpected %s", describe(c))
	}
	if err := p.s.Expect('['); err != nil {
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("identifier %q must be followed by '['", name)}
	}
	index, err := p.parse()
	if err != nil {
		return nil, err
	}
	if err := p.s.Expect(']'); err != nil {
		return nil, err
	}
	return &TableRefExpr{Pos: pos, Name: name, Index: index}, nil
}

// parseLastOrRef parses the part of a back-reference after the backslash
func (p *Parser) parseLastOrRef(pos Position) (Expr, error) {
	c := p.s.Read()
	switch {
	case c == '$':
		return &LastExpr{Pos: pos}, nil
	case c == '(':
		if err := p.s.Expect('$'); err != nil {
			return nil, err
		}
		if err := p.s.Expect('-'); err != nil {
			return nil, err
		}
		lead := p.s.SkipSpace()
		if !startsNumber(lead) {
			return nil, p.s.errorf("expected number in back-reference, found %s", describe(lead))
		}
		n, err := p.s.ParseNumber(lead)
		if err != nil {
			return nil, err
		}
		if err := p.s.Expect(')'); err != nil {
			return nil, err
		}
		return &LastExpr{Pos: pos, Offset: n}, nil
	case startsNumber(c):
		n, err := p.s.ParseNumber(c)
		if err != nil {
			return nil, err
		}
		return &RefExpr{Pos: pos, Index: n}, nil
	default:
		return nil, p.s.errorf("malformed back-reference: expected '$', '(' or number after '\\', found %s", describe(c))
	}
}
