package parser

import (
	"strconv"
)

// Unparse converts an expression back to OCP source. The output parses to
// a tree that compiles to the same instructions as e.
func Unparse(e Expr) string {
	switch e := e.(type) {
	case *ConstantExpr:
		return strconv.Itoa(e.Value)

	case *RefExpr:
		return `\` + strconv.Itoa(e.Index)

	case *LastExpr:
		if e.Offset == 0 {
			return `\$`
		}
		return `\($-` + strconv.Itoa(e.Offset) + ")"

	case *TableRefExpr:
		return e.Name + "[" + Unparse(e.Index) + "]"

	case *BinaryExpr:
		return formatBinary(e.Left, e.Operator, e.Right)

	case nil:
		return ""
	}
	return "?"
}

// formatBinary renders x op y, parenthesizing operands that would
// otherwise regroup when read back
func formatBinary(x Expr, op Operator, y Expr) string {
	left := Unparse(x)
	if NeedsParen(x) {
		left = "(" + left + ")"
	}

	right := Unparse(y)
	_, nested := y.(*BinaryExpr)
	if NeedsParen(y) || nested && !op.Additive() {
		right = "(" + right + ")"
	}

	return left + " " + op.String() + " " + right
}

// String returns the source form of the output expression
func (a *Arith) String() string {
	return Unparse(a.Expr)
}
