// Package types defines the data model shared by the goarith pipeline.
//
// This package contains type definitions for:
//   - Token: lexical units with their source position and numeric payload
//   - Node, Expression: the closed set of syntax-tree variants
//   - SyntaxTree: the result of a single parse
//   - Diagnostic: positioned, coded descriptions of malformed input
package types

// SyntaxTree is the result of parsing one source string.
//
// A tree with diagnostics still carries a structurally complete root, but it
// must not be evaluated. A SyntaxTree is never modified after construction
// and is safe for concurrent use by multiple goroutines.
type SyntaxTree struct {
	source      string
	diagnostics Diagnostics
	root        Expression
	endOfInput  Token
}

// NewSyntaxTree creates a SyntaxTree. The diagnostics slice is copied.
func NewSyntaxTree(source string, diagnostics Diagnostics, root Expression, endOfInput Token) *SyntaxTree {
	return &SyntaxTree{
		source:      source,
		diagnostics: append(Diagnostics(nil), diagnostics...),
		root:        root,
		endOfInput:  endOfInput,
	}
}

// Source returns the text the tree was parsed from.
func (t *SyntaxTree) Source() string {
	return t.source
}

// Diagnostics returns the lexical and syntactic diagnostics in discovery order.
func (t *SyntaxTree) Diagnostics() Diagnostics {
	return t.diagnostics
}

// HasErrors reports whether any diagnostics were recorded.
func (t *SyntaxTree) HasErrors() bool {
	return len(t.diagnostics) > 0
}

// Root returns the root expression.
func (t *SyntaxTree) Root() Expression {
	return t.root
}

// EndOfInput returns the trailing end-of-input token.
func (t *SyntaxTree) EndOfInput() Token {
	return t.endOfInput
}

// String returns the source text.
func (t *SyntaxTree) String() string {
	return t.source
}
