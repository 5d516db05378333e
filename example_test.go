package goarith_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sandrolain/goarith"
	"github.com/sandrolain/goarith/pkg/report"
	"github.com/sandrolain/goarith/pkg/types"
)

func ExampleEval() {
	result, err := goarith.Eval("(1 + 2) * 3")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result)
	// Output: 9
}

func ExampleEval_diagnostics() {
	_, err := goarith.Eval("1 $ 2")

	var de *types.DiagnosticsError
	if errors.As(err, &de) {
		for _, d := range de.Diagnostics {
			fmt.Println(d)
		}
	}
	// Output:
	// L0101 at position 2: bad character input: '$'
	// S0202 at position 4: unexpected token `NumberToken`, expected `EndOfInputToken`
}

func ExampleParse() {
	tree := goarith.Parse("1 - 2 - 3")
	fmt.Print(types.Sprint(tree.Root()))
	// Output:
	// BinaryExpression
	//     BinaryExpression
	//         LiteralExpression 1
	//             NumberToken 1
	//         MinusToken
	//         LiteralExpression 2
	//             NumberToken 2
	//     MinusToken
	//     LiteralExpression 3
	//         NumberToken 3
}

func ExampleEvalLines() {
	results := goarith.EvalLines(context.Background(), []string{"1 + 1", "8 / 4 / 2", "7 / 2"}, 2)
	for _, r := range results {
		fmt.Printf("%s = %g\n", r.Source, r.Value)
	}
	// Output:
	// 1 + 1 = 2
	// 8 / 4 / 2 = 1
	// 7 / 2 = 3.5
}

func Example_report() {
	source := "(1 + 2"
	tree := goarith.Parse(source)
	_ = report.Render(os.Stdout, source, tree.Diagnostics(), report.Options{Snippet: true})
	// Output:
	// error[S0202]: unexpected token `EndOfInputToken`, expected `CloseParenToken`
	//   | (1 + 2
	//   |       ^
}
