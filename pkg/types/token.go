package types

// Kind identifies a token category or a syntax node variant.
type Kind uint8

const (
	// Tokens
	NumberToken     Kind = iota // 123
	WhitespaceToken             // spaces, tabs
	PlusToken                   // +
	MinusToken                  // -
	MultiplyToken               // *
	DivideToken                 // /
	OpenParenToken              // (
	CloseParenToken             // )
	BadToken                    // unrecognised input
	EndOfInputToken             // end of source

	// Expressions
	LiteralExpression
	BinaryExpression
	ParenthesizedExpression
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case NumberToken:
		return "NumberToken"
	case WhitespaceToken:
		return "WhitespaceToken"
	case PlusToken:
		return "PlusToken"
	case MinusToken:
		return "MinusToken"
	case MultiplyToken:
		return "MultiplyToken"
	case DivideToken:
		return "DivideToken"
	case OpenParenToken:
		return "OpenParenToken"
	case CloseParenToken:
		return "CloseParenToken"
	case BadToken:
		return "BadToken"
	case EndOfInputToken:
		return "EndOfInputToken"
	case LiteralExpression:
		return "LiteralExpression"
	case BinaryExpression:
		return "BinaryExpression"
	case ParenthesizedExpression:
		return "ParenthesizedExpression"
	default:
		return "(unknown)"
	}
}

// IsToken reports whether k is a lexical category rather than an expression.
func (k Kind) IsToken() bool {
	return k <= EndOfInputToken
}

// EndOfInputText is the text carried by the end-of-input token.
const EndOfInputText = "\x00"

// Token is a single lexical unit. Tokens are leaves of the syntax tree.
type Token struct {
	Kind     Kind   // Category of the token
	Position int    // Byte offset of the first character in the source
	Text     string // Exact source slice; empty for missing tokens
	Value    int32  // Parsed value, meaningful only when HasValue is set
	HasValue bool   // Set for well-formed number tokens
	Missing  bool   // Synthesised by the parser in place of an expected token
}

// End returns the offset one past the last byte of the token.
// The end-of-input token has zero width.
func (t Token) End() int {
	if t.Kind == EndOfInputToken {
		return t.Position
	}
	return t.Position + len(t.Text)
}

// Children implements Node. Tokens have none.
func (t Token) Children() []Node {
	return nil
}

// NodeKind implements Node.
func (t Token) NodeKind() Kind {
	return t.Kind
}

// String returns the token text, or its kind for synthetic tokens.
func (t Token) String() string {
	if t.Missing || t.Kind == EndOfInputToken {
		return t.Kind.String()
	}
	return t.Text
}
