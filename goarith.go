// Package goarith evaluates single-line arithmetic expressions.
//
// An expression is built from 32-bit integer literals, the operators
// + - * / and parentheses. Evaluation runs through three stages:
//   - Lexer: raw text to tokens, reporting bad characters and overflowing numbers
//   - Parser: tokens to a syntax tree, honoring precedence and left associativity
//   - Evaluator: syntax tree to a float64
//
// Malformed input never aborts the pipeline. Problems are collected as
// diagnostics and evaluation is skipped whenever there is at least one.
//
// # Quick Start
//
//	// Simple evaluation
//	result, err := goarith.Eval("(1 + 2) * 3")
//
//	// Inspect the tree and diagnostics
//	tree := goarith.Parse("1 +")
//	for _, d := range tree.Diagnostics() {
//	    fmt.Println(d)
//	}
//
//	// Evaluate many independent lines concurrently
//	results := goarith.EvalLines(ctx, lines, 8)
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/goarith/pkg/parser
//   - Evaluator: github.com/sandrolain/goarith/pkg/evaluator
//   - Types: github.com/sandrolain/goarith/pkg/types
package goarith

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sandrolain/goarith/pkg/evaluator"
	"github.com/sandrolain/goarith/pkg/parser"
	"github.com/sandrolain/goarith/pkg/types"
)

// Version returns the current version of goarith.
func Version() string {
	return "v0.1.0-dev"
}

// Parse parses an expression. The returned tree always has a root; check
// HasErrors before evaluating it.
func Parse(source string, opts ...parser.ParseOption) *types.SyntaxTree {
	return parser.Parse(source, opts...)
}

// MustParse is like Parse but panics if the expression has diagnostics.
// It simplifies safe initialization of global variables.
func MustParse(source string) *types.SyntaxTree {
	tree := Parse(source)
	if err := tree.Diagnostics().Err(); err != nil {
		panic(fmt.Sprintf("goarith: Parse(%q): %v", source, err))
	}
	return tree
}

// Eval is a convenience function that parses and evaluates an expression
// in a single call. Diagnostics are returned as a *types.DiagnosticsError.
//
// Example:
//
//	result, err := goarith.Eval("1 + 2 * 3") // 7
func Eval(source string, opts ...evaluator.EvalOption) (float64, error) {
	return EvalWithContext(context.Background(), source, opts...)
}

// EvalWithContext evaluates an expression, returning early if ctx is done.
func EvalWithContext(ctx context.Context, source string, opts ...evaluator.EvalOption) (float64, error) {
	result, _, err := evaluator.New(opts...).EvalString(ctx, source)
	return result, err
}

// Result is the outcome of evaluating one line.
type Result struct {
	Source      string
	Value       float64
	Tree        *types.SyntaxTree // nil when the line was never parsed
	Diagnostics types.Diagnostics
	Err         error
}

// EvalLines evaluates independent lines concurrently, running at most limit
// evaluations at a time (limit <= 0 means no limit). Results are returned in
// input order. Lines not started before ctx is done carry ctx's error.
func EvalLines(ctx context.Context, lines []string, limit int, opts ...evaluator.EvalOption) []Result {
	ev := evaluator.New(opts...)
	results := make([]Result, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, line := range lines {
		g.Go(func() error {
			value, tree, err := ev.EvalString(gctx, line)
			results[i] = Result{Source: line, Value: value, Tree: tree, Err: err}
			if tree != nil {
				results[i].Diagnostics = tree.Diagnostics()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
