package goarith_test

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/goarith"
	"github.com/sandrolain/goarith/pkg/cache"
	"github.com/sandrolain/goarith/pkg/evaluator"
	"github.com/sandrolain/goarith/pkg/parser"
	"github.com/sandrolain/goarith/pkg/types"
)

func TestEval(t *testing.T) {
	got, err := goarith.Eval("2 * (3 + 4) - 5")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	got, err = goarith.Eval("1 / 0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	_, err = goarith.Eval("1 2")
	var de *types.DiagnosticsError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"unexpected token `NumberToken`, expected `EndOfInputToken`"}, de.Diagnostics.Messages())
}

func TestEvalDeepNesting(t *testing.T) {
	depth := parser.DefaultMaxDepth * 2
	input := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)

	_, err := goarith.Eval(input)
	var de *types.DiagnosticsError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, types.ErrTooDeep, de.Diagnostics[0].Code)

	got, err := goarith.Eval(input, evaluator.WithParseOptions(parser.WithMaxDepth(0)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestEvalWithContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goarith.EvalWithContext(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse(t *testing.T) {
	tree := goarith.Parse("((1))", parser.WithMaxDepth(1))
	assert.True(t, tree.HasErrors())
	assert.Equal(t, types.ErrTooDeep, tree.Diagnostics()[0].Code)

	tree = goarith.Parse("1 + 2")
	assert.False(t, tree.HasErrors())
	assert.Equal(t, types.BinaryExpression, tree.Root().NodeKind())
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { goarith.MustParse("1 + 2") })
	assert.PanicsWithValue(t,
		"goarith: Parse(\"1 +\"): S0202 at position 3: unexpected token `EndOfInputToken`, expected `NumberToken`",
		func() { goarith.MustParse("1 +") })
}

func TestEvalLines(t *testing.T) {
	lines := []string{"1 + 1", "1 +", "6 * 7", "0 / 0", "$"}
	results := goarith.EvalLines(context.Background(), lines, 2)
	require.Len(t, results, len(lines))

	for i, r := range results {
		assert.Equal(t, lines[i], r.Source)
	}

	assert.Equal(t, 2.0, results[0].Value)
	assert.NoError(t, results[0].Err)
	assert.Empty(t, results[0].Diagnostics)

	assert.Error(t, results[1].Err)
	assert.Len(t, results[1].Diagnostics, 1)

	assert.Equal(t, 42.0, results[2].Value)
	assert.True(t, math.IsNaN(results[3].Value))

	assert.Equal(t, []string{
		"bad character input: '$'",
		"unexpected token `EndOfInputToken`, expected `NumberToken`",
	}, results[4].Diagnostics.Messages())
}

func TestEvalLinesSharedCache(t *testing.T) {
	c := cache.New(8)
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("%d * 2", i%4)
	}

	results := goarith.EvalLines(context.Background(), lines, 0, evaluator.WithCache(c))
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, float64(i%4*2), r.Value)
	}
	assert.Equal(t, 4, c.Len())
}

func TestEvalLinesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := goarith.EvalLines(ctx, []string{"1", "2"}, 1)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Diagnostics)
	}
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, goarith.Version())
}
