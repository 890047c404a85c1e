package parser

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr is an arithmetic expression node. The concrete kinds are
// ConstantExpr, RefExpr, LastExpr, TableRefExpr and BinaryExpr; nodes are
// never mutated after the parser builds them.
type Expr interface {
	Node
	exprNode()
}

// ConstantExpr is a numeric literal
type ConstantExpr struct {
	Pos   Position
	Value int
}

func (e *ConstantExpr) Position() Position { return e.Pos }
func (e *ConstantExpr) exprNode()          {}

// RefExpr recalls a matched value by absolute index: \n
type RefExpr struct {
	Pos   Position
	Index int
}

func (e *RefExpr) Position() Position { return e.Pos }
func (e *RefExpr) exprNode()          {}

// LastExpr recalls a matched value counted back from the most recent one:
// \$ is LastExpr{Offset: 0}, \($-n) is LastExpr{Offset: n}
type LastExpr struct {
	Pos    Position
	Offset int
}

func (e *LastExpr) Position() Position { return e.Pos }
func (e *LastExpr) exprNode()          {}

// TableRefExpr is an indexed table lookup: name[index]
type TableRefExpr struct {
	Pos   Position
	Name  string
	Index Expr
}

func (e *TableRefExpr) Position() Position { return e.Pos }
func (e *TableRefExpr) exprNode()          {}

// BinaryExpr combines two operands with an arithmetic operator
type BinaryExpr struct {
	Pos      Position
	Left     Expr
	Operator Operator
	Right    Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}

// NeedsParen reports whether e must be parenthesized when it appears as an
// operand of another operator. Only additive operations do.
func NeedsParen(e Expr) bool {
	b, ok := e.(*BinaryExpr)
	return ok && b.Operator.Additive()
}

// Arith is a complete expression used as an output action. The compiler
// evaluates it and sends the result to the right (or pushback) channel.
type Arith struct {
	Pos  Position
	Expr Expr
}

func (a *Arith) Position() Position { return a.Pos }

// newBinary folds left and right under op; the node takes the left operand's position
func newBinary(op Operator, left, right Expr) Expr {
	return &BinaryExpr{
		Pos:      left.Position(),
		Left:     left,
		Operator: op,
		Right:    right,
	}
}
