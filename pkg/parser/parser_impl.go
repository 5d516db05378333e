package parser

import (
	"log/slog"

	"github.com/sandrolain/goarith/pkg/types"
)

// Parser implements a recursive descent parser for arithmetic expressions.
//
// Grammar, lowest precedence first; all operators are left-associative:
//
//	parse   := term EndOfInput
//	term    := factor ( ( "+" | "-" ) factor )*
//	factor  := primary ( ( "*" | "/" ) primary )*
//	primary := Number | "(" term ")"
//
// A Parser is single-use and not safe for concurrent use.
type Parser struct {
	source      string
	tokens      []types.Token
	position    int
	depth       int
	tooDeep     bool
	diagnostics types.Diagnostics
	opts        ParseOptions
	tree        *types.SyntaxTree
}

// NewParser tokenizes input and prepares a parser over the retained tokens.
// Whitespace and bad tokens are dropped from the stream; the lexer's
// diagnostics are kept and come first in the final diagnostic list.
func NewParser(input string, opts ...ParseOption) *Parser {
	options := ParseOptions{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	lexer := NewLexer(input)
	var tokens []types.Token
	for {
		t := lexer.Next()
		if t.Kind != types.WhitespaceToken && t.Kind != types.BadToken {
			tokens = append(tokens, t)
		}
		if t.Kind == types.EndOfInputToken {
			break
		}
	}

	return &Parser{
		source:      input,
		tokens:      tokens,
		diagnostics: append(types.Diagnostics(nil), lexer.Diagnostics()...),
		opts:        options,
	}
}

// Parse parses the token stream into a SyntaxTree.
//
// Parse never fails: syntax errors are recorded as diagnostics on the
// returned tree and missing tokens are synthesised so that the tree stays
// structurally complete. Calling Parse again returns the same tree.
func (p *Parser) Parse() *types.SyntaxTree {
	if p.tree != nil {
		return p.tree
	}

	root := p.parseTerm()
	endOfInput := p.match(types.EndOfInputToken)
	p.tree = types.NewSyntaxTree(p.source, p.diagnostics, root, endOfInput)

	if p.opts.Trace {
		p.opts.Logger.Debug("parsed expression",
			"source", p.source,
			"tokens", len(p.tokens),
			"diagnostics", len(p.diagnostics))
	}
	return p.tree
}

// Tokens returns the retained token stream, ending with the end-of-input token.
func (p *Parser) Tokens() []types.Token {
	return p.tokens
}

// Diagnostics returns the diagnostics recorded so far.
func (p *Parser) Diagnostics() types.Diagnostics {
	return p.diagnostics
}

// parseTerm parses additive expressions. Repeated operators build a
// left-leaning chain, so 1+2+3 becomes (1+2)+3.
func (p *Parser) parseTerm() types.Expression {
	left := p.parseFactor()

	for p.current().Kind == types.PlusToken || p.current().Kind == types.MinusToken {
		operator := p.next()
		right := p.parseFactor()
		left = types.NewBinary(left, operator, right)
	}

	return left
}

// parseFactor parses multiplicative expressions.
func (p *Parser) parseFactor() types.Expression {
	left := p.parsePrimary()

	for p.current().Kind == types.MultiplyToken || p.current().Kind == types.DivideToken {
		operator := p.next()
		right := p.parsePrimary()
		left = types.NewBinary(left, operator, right)
	}

	return left
}

// parsePrimary parses a number or a parenthesized term.
func (p *Parser) parsePrimary() types.Expression {
	if p.current().Kind == types.OpenParenToken {
		if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
			return p.tooDeepLiteral()
		}

		p.depth++
		defer func() { p.depth-- }()

		open := p.next()
		inner := p.parseTerm()
		closing := p.match(types.CloseParenToken)
		return types.NewParen(open, inner, closing)
	}

	number := p.match(types.NumberToken)
	return types.NewLiteral(number)
}

// tooDeepLiteral reports the nesting limit once and stands in for the
// parenthesized expression that was not parsed.
func (p *Parser) tooDeepLiteral() types.Expression {
	if !p.tooDeep {
		p.tooDeep = true
		p.report(types.NewDiagnostic(types.ErrTooDeep, p.current().Position,
			"expression nested too deeply (limit %d)", p.opts.MaxDepth))
	}
	return types.NewLiteral(types.Token{
		Kind:     types.NumberToken,
		Position: p.current().Position,
		Missing:  true,
	})
}

// Token navigation

// peek returns the token offset positions ahead, clamped to the
// end-of-input token.
func (p *Parser) peek(offset int) types.Token {
	index := p.position + offset
	if index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[index]
}

func (p *Parser) current() types.Token {
	return p.peek(0)
}

// next consumes and returns the current token.
func (p *Parser) next() types.Token {
	t := p.current()
	p.position++

	if p.opts.Trace {
		p.opts.Logger.Debug("consume token",
			"kind", t.Kind,
			"text", t.Text,
			"position", t.Position)
	}
	return t
}

// match consumes the current token if it has the expected kind. Otherwise
// it records a diagnostic and returns a missing token of the expected kind
// without consuming anything.
func (p *Parser) match(kind types.Kind) types.Token {
	if p.current().Kind == kind {
		return p.next()
	}

	actual := p.current()
	d := types.NewDiagnostic(types.ErrUnexpectedToken, actual.Position,
		"unexpected token `%s`, expected `%s`", actual.Kind, kind)
	if actual.Kind != types.EndOfInputToken {
		d.WithToken(actual.Text)
	}
	p.report(d)

	return types.Token{
		Kind:     kind,
		Position: actual.Position,
		Missing:  true,
	}
}

func (p *Parser) report(d *types.Diagnostic) {
	p.diagnostics = append(p.diagnostics, d)
}
