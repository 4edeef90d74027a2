package mathexpr

import "strings"

// Expression is a node of a parsed arithmetic expression
type Expression interface {
	TokenLiteral() string
	String() string
}

// NumberLiteral represents an integer or decimal literal
type NumberLiteral struct {
	Token Token
	Value Number
}

func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// UnaryExpression represents a sign prefix (e.g., -x, +x)
type UnaryExpression struct {
	Token    Token // the operator token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(u.Operator)
	out.WriteString(u.Right.String())
	out.WriteString(")")
	return out.String()
}

// BinaryExpression represents an infix arithmetic operation
type BinaryExpression struct {
	Token    Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) String() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}
