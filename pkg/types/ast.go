package types

// Node is an element of the syntax tree: either a Token or an Expression.
type Node interface {
	// NodeKind returns the token category or expression variant.
	NodeKind() Kind
	// Children returns the ordered child nodes. Tokens return nil.
	Children() []Node
}

// Expression is the closed set of expression variants produced by the parser:
// *LiteralExpr, *BinaryExpr and *ParenExpr.
type Expression interface {
	Node
	expressionNode()
}

// LiteralExpr is a number literal.
type LiteralExpr struct {
	Number Token
}

// NewLiteral creates a literal expression from a number token.
func NewLiteral(number Token) *LiteralExpr {
	return &LiteralExpr{Number: number}
}

// NodeKind implements Node.
func (*LiteralExpr) NodeKind() Kind { return LiteralExpression }

// Children implements Node.
func (n *LiteralExpr) Children() []Node { return []Node{n.Number} }

func (*LiteralExpr) expressionNode() {}

// BinaryExpr applies an arithmetic operator to two operands.
type BinaryExpr struct {
	Left     Expression
	Operator Token
	Right    Expression
}

// NewBinary creates a binary expression.
func NewBinary(left Expression, operator Token, right Expression) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: operator, Right: right}
}

// NodeKind implements Node.
func (*BinaryExpr) NodeKind() Kind { return BinaryExpression }

// Children implements Node.
func (n *BinaryExpr) Children() []Node { return []Node{n.Left, n.Operator, n.Right} }

func (*BinaryExpr) expressionNode() {}

// ParenExpr is an expression enclosed in parentheses.
type ParenExpr struct {
	Open  Token
	Inner Expression
	Close Token
}

// NewParen creates a parenthesized expression.
func NewParen(open Token, inner Expression, closing Token) *ParenExpr {
	return &ParenExpr{Open: open, Inner: inner, Close: closing}
}

// NodeKind implements Node.
func (*ParenExpr) NodeKind() Kind { return ParenthesizedExpression }

// Children implements Node.
func (n *ParenExpr) Children() []Node { return []Node{n.Open, n.Inner, n.Close} }

func (*ParenExpr) expressionNode() {}

// Flatten returns the leaf tokens under node in source order.
func Flatten(node Node) []Token {
	var tokens []Token
	var walk func(Node)
	walk = func(n Node) {
		if t, ok := n.(Token); ok {
			tokens = append(tokens, t)
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	if node != nil {
		walk(node)
	}
	return tokens
}
