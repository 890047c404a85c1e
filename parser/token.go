package parser

// Operator identifies a binary arithmetic operator
type Operator int

const (
	OP_PLUS  Operator = iota // +
	OP_MINUS                 // -
	OP_TIMES                 // *
	OP_DIV                   // div:
	OP_MOD                   // mod:
)

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the source spelling of the operator
func (o Operator) String() string {
	switch o {
	case OP_PLUS:
		return "+"
	case OP_MINUS:
		return "-"
	case OP_TIMES:
		return "*"
	case OP_DIV:
		return "div:"
	case OP_MOD:
		return "mod:"
	default:
		return "?"
	}
}

// Additive reports whether the operator belongs to the + - tier.
// Additive operands are parenthesized when printed inside another operator.
func (o Operator) Additive() bool {
	return o == OP_PLUS || o == OP_MINUS
}

// keywordOperators holds the operators spelled as identifier-style keywords.
// The trailing ':' is part of the token and is matched separately.
var keywordOperators = map[string]Operator{
	"div": OP_DIV,
	"mod": OP_MOD,
}
