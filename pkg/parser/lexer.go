package parser

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/sandrolain/goarith/pkg/types"
)

const eof = -1

// Lexer converts an arithmetic expression into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
//
// A Lexer never fails: malformed input produces BadToken values and a
// diagnostic, and scanning carries on after them.
type Lexer struct {
	input       string // Input string being scanned
	length      int    // Length of input string
	start       int    // Start position of current token
	current     int    // Current position in input
	width       int    // Width of last rune read
	diagnostics types.Diagnostics
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns EndOfInputToken for all subsequent calls.
func (l *Lexer) Next() types.Token {
	l.start = l.current

	ch := l.nextRune()
	switch {
	case ch == eof:
		return types.Token{
			Kind:     types.EndOfInputToken,
			Position: l.current,
			Text:     types.EndOfInputText,
		}
	case isDigit(ch):
		l.acceptAll(isDigit)
		return l.scanNumber()
	case unicode.IsSpace(ch):
		l.acceptAll(unicode.IsSpace)
		return l.newToken(types.WhitespaceToken)
	}

	if kind, ok := lookupSymbol(ch); ok {
		return l.newToken(kind)
	}

	t := l.newToken(types.BadToken)
	l.report(types.NewDiagnostic(types.ErrBadCharacter, t.Position,
		"bad character input: '%s'", t.Text).WithToken(t.Text))
	return t
}

// Diagnostics returns the diagnostics recorded so far, in discovery order.
func (l *Lexer) Diagnostics() types.Diagnostics {
	return l.diagnostics
}

// Tokenize scans the whole input and returns every token, including
// whitespace and bad tokens, up to and including the end-of-input token.
func Tokenize(input string) ([]types.Token, types.Diagnostics) {
	l := NewLexer(input)
	var tokens []types.Token
	for {
		t := l.Next()
		tokens = append(tokens, t)
		if t.Kind == types.EndOfInputToken {
			return tokens, l.Diagnostics()
		}
	}
}

// scanNumber finishes a run of digits that has already been consumed.
// Runs that do not fit a signed 32-bit integer become bad tokens.
func (l *Lexer) scanNumber() types.Token {
	t := l.newToken(types.NumberToken)

	v, err := strconv.ParseInt(t.Text, 10, 32)
	if err != nil {
		t.Kind = types.BadToken
		l.report(types.NewDiagnostic(types.ErrNumberOutOfRange, t.Position,
			"the number `%s` isn't a valid 32-bit integer", t.Text).WithToken(t.Text))
		return t
	}

	t.Value = int32(v)
	t.HasValue = true
	return t
}

// symbols maps single-character operators and punctuation to token kinds.
var symbols = map[rune]types.Kind{
	'+': types.PlusToken,
	'-': types.MinusToken,
	'*': types.MultiplyToken,
	'/': types.DivideToken,
	'(': types.OpenParenToken,
	')': types.CloseParenToken,
}

func lookupSymbol(r rune) (types.Kind, bool) {
	kind, ok := symbols[r]
	return kind, ok
}

// Helper methods

func (l *Lexer) report(d *types.Diagnostic) {
	l.diagnostics = append(l.diagnostics, d)
}

func (l *Lexer) newToken(kind types.Kind) types.Token {
	t := types.Token{
		Kind:     kind,
		Text:     l.input[l.start:l.current],
		Position: l.start,
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// Character classification functions

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
