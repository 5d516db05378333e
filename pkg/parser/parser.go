// Package parser implements the lexer and parser for arithmetic expressions.
//
// The parser uses a hand-written recursive descent approach with one
// procedure per precedence level. It never stops at the first error:
// lexical and syntactic problems are collected as diagnostics, and missing
// tokens are synthesised so that a complete tree is always returned.
//
// # Architecture
//
// The parser consists of three main components:
//   - Lexer: Tokenizes the input expression into a stream of tokens
//   - Parser: Builds a syntax tree from the retained tokens
//   - Error Recovery: Failed matches yield placeholder tokens and a diagnostic
//
// # Example
//
//	tree := parser.Parse("(1 + 2) * 3")
//	if tree.HasErrors() {
//	    for _, d := range tree.Diagnostics() {
//	        fmt.Println(d)
//	    }
//	    return
//	}
//	root := tree.Root()
package parser

import (
	"log/slog"

	"github.com/sandrolain/goarith/pkg/types"
)

// Parse parses an arithmetic expression and returns its syntax tree.
//
// Example:
//
//	tree := parser.Parse("1 + 2 * 3")
//	if tree.HasErrors() {
//	    fmt.Println(tree.Diagnostics().Messages())
//	}
func Parse(input string, opts ...ParseOption) *types.SyntaxTree {
	return NewParser(input, opts...).Parse()
}

// DefaultMaxDepth is the parenthesis nesting limit used unless WithMaxDepth
// sets another one. It keeps hostile input from exhausting the stack.
const DefaultMaxDepth = 10000

// ParseOption configures parser behavior.
type ParseOption func(*ParseOptions)

// ParseOptions holds parser configuration.
type ParseOptions struct {
	// MaxDepth limits parenthesis nesting. Defaults to DefaultMaxDepth;
	// zero or less means unlimited.
	MaxDepth int
	// Trace logs every consumed token at debug level.
	Trace bool
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// WithMaxDepth sets the maximum parenthesis nesting depth. A depth of zero
// or less removes the limit.
func WithMaxDepth(depth int) ParseOption {
	return func(opts *ParseOptions) {
		opts.MaxDepth = depth
	}
}

// WithTrace enables token-level debug logging.
func WithTrace(enable bool) ParseOption {
	return func(opts *ParseOptions) {
		opts.Trace = enable
	}
}

// WithLogger sets the logger used for tracing.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(opts *ParseOptions) {
		opts.Logger = logger
	}
}
