package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandrolain/goarith"
	"github.com/sandrolain/goarith/pkg/evaluator"
	"github.com/sandrolain/goarith/pkg/parser"
	"github.com/sandrolain/goarith/pkg/protocol"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate the expressions given as arguments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		var failed bool
		for _, expr := range args {
			err := a.evalLine(cmd.Context(), cmd.OutOrStdout(), expr)
			if errors.Is(err, errInvalidExpression) {
				failed = true
				continue
			}
			if err != nil {
				return err
			}
		}
		if failed {
			return errInvalidExpression
		}
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate every non-blank line of a file concurrently (- for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		lines, err := readLines(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}

		if a.host != nil {
			return a.batchWASM(cmd, lines)
		}
		return a.batch(cmd, lines)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), goarith.Version())
	},
}

// batch evaluates lines concurrently and prints the outcomes in input order.
func (a *app) batch(cmd *cobra.Command, lines []string) error {
	results := goarith.EvalLines(cmd.Context(), lines, a.cfg.Jobs,
		evaluator.WithCache(a.ev.Cache()),
		evaluator.WithLogger(a.logger),
		evaluator.WithParseOptions(parser.WithMaxDepth(a.cfg.MaxDepth)),
	)

	w := cmd.OutOrStdout()
	var failed bool
	for i, r := range results {
		if r.Err != nil && len(r.Diagnostics) == 0 {
			return fmt.Errorf("line %d: %w", i+1, r.Err)
		}

		if len(r.Diagnostics) > 0 {
			failed = true
			fmt.Fprintf(w, "%d: %s\n", i+1, r.Source)
		} else {
			fmt.Fprintf(w, "%d: %s = %s\n", i+1, r.Source, formatResult(r.Value))
		}
		if err := a.printDetails(w, r.Tree); err != nil {
			return err
		}
		if len(r.Diagnostics) > 0 {
			if err := a.renderer.Render(w, r.Source, r.Diagnostics); err != nil {
				return err
			}
		}
	}
	a.logger.Debug("batch finished", "lines", len(lines), "jobs", a.cfg.Jobs)

	if failed {
		return errInvalidExpression
	}
	return nil
}

func (a *app) batchWASM(cmd *cobra.Command, lines []string) error {
	w := cmd.OutOrStdout()
	var failed bool
	for i, line := range lines {
		resp, err := a.host.Eval(cmd.Context(), line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		err = a.writeBatchResponse(w, i+1, line, resp)
		if errors.Is(err, errInvalidExpression) {
			failed = true
			continue
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	if failed {
		return errInvalidExpression
	}
	return nil
}

// writeBatchResponse prints one wasm reply in the same layout as batch:
// "N: source = value", or "N: source" followed by the diagnostics.
func (a *app) writeBatchResponse(w io.Writer, n int, line string, resp protocol.Response) error {
	if len(resp.Diagnostics) > 0 {
		fmt.Fprintf(w, "%d: %s\n", n, line)
		if err := a.printDetails(w, a.localTree(line)); err != nil {
			return err
		}
		return writeResponse(w, resp)
	}

	if resp.Result == nil {
		return writeResponse(w, resp)
	}
	fmt.Fprintf(w, "%d: %s = %s\n", n, line, formatResult(float64(*resp.Result)))
	return a.printDetails(w, a.localTree(line))
}

func readLines(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := newLineScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// newLineScanner returns a line scanner that accepts lines up to maxLineSize.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}
