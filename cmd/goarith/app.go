package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sandrolain/goarith/pkg/evaluator"
	"github.com/sandrolain/goarith/pkg/parser"
	"github.com/sandrolain/goarith/pkg/protocol"
	"github.com/sandrolain/goarith/pkg/report"
	"github.com/sandrolain/goarith/pkg/types"
	"github.com/sandrolain/goarith/pkg/wasihost"
)

// app carries what every command needs to evaluate and print a line.
type app struct {
	cfg      Config
	logger   *slog.Logger
	ev       *evaluator.Evaluator
	renderer *report.Renderer
	host     *wasihost.Host // non-nil when --wasm is set
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg, cmd)

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		ev: evaluator.New(
			evaluator.WithCaching(true),
			evaluator.WithCacheSize(cfg.CacheSize),
			evaluator.WithLogger(logger),
			evaluator.WithDebug(logger.Enabled(cmd.Context(), slog.LevelDebug)),
			evaluator.WithParseOptions(
				parser.WithMaxDepth(cfg.MaxDepth),
				parser.WithLogger(logger),
				parser.WithTrace(logger.Enabled(cmd.Context(), slog.LevelDebug)),
			),
		),
		renderer: report.NewRenderer(report.Options{Color: cfg.Color, Snippet: true}),
	}

	if wasmModule != "" {
		wasm, err := os.ReadFile(wasmModule)
		if err != nil {
			return nil, fmt.Errorf("failed to read wasm module: %w", err)
		}
		a.host, err = wasihost.New(cmd.Context(), wasm, wasihost.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded wasm module", "path", wasmModule, "bytes", len(wasm))
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.host != nil {
		if err := a.host.Close(ctx); err != nil {
			a.logger.Warn("failed to close wasm runtime", "error", err)
		}
	}
}

// evalLine evaluates one line and prints the result or its diagnostics.
// It returns errInvalidExpression when the line had diagnostics.
func (a *app) evalLine(ctx context.Context, w io.Writer, line string) error {
	if a.host != nil {
		return a.evalLineWASM(ctx, w, line)
	}

	value, tree, err := a.ev.EvalString(ctx, line)
	if tree != nil {
		if err := a.printDetails(w, tree); err != nil {
			return err
		}
	}

	var de *types.DiagnosticsError
	switch {
	case errors.As(err, &de):
		if err := a.renderer.Render(w, line, de.Diagnostics); err != nil {
			return err
		}
		return errInvalidExpression
	case err != nil:
		return err
	}

	_, err = fmt.Fprintln(w, formatResult(value))
	return err
}

func (a *app) evalLineWASM(ctx context.Context, w io.Writer, line string) error {
	resp, err := a.host.Eval(ctx, line)
	if err != nil {
		return err
	}
	if err := a.printDetails(w, a.localTree(line)); err != nil {
		return err
	}
	return writeResponse(w, resp)
}

// localTree parses line on the host side for --tree and --tokens when the
// evaluation itself runs inside the wasm module.
func (a *app) localTree(line string) *types.SyntaxTree {
	if !a.cfg.ShowTree && !a.cfg.ShowTokens {
		return nil
	}
	return parser.Parse(line, parser.WithMaxDepth(a.cfg.MaxDepth))
}

// printDetails prints the syntax tree and token list of tree when enabled.
func (a *app) printDetails(w io.Writer, tree *types.SyntaxTree) error {
	if tree == nil {
		return nil
	}
	if a.cfg.ShowTree {
		if err := types.Fprint(w, tree.Root()); err != nil {
			return err
		}
	}
	if a.cfg.ShowTokens {
		if err := printTokens(w, tree.Source()); err != nil {
			return err
		}
	}
	return nil
}

// writeResponse prints a wasm module reply the way evalLine prints a local
// result.
func writeResponse(w io.Writer, resp protocol.Response) error {
	if len(resp.Diagnostics) > 0 {
		for _, msg := range resp.Diagnostics {
			if _, err := fmt.Fprintf(w, "error: %s\n", msg); err != nil {
				return err
			}
		}
		return errInvalidExpression
	}
	if resp.Result == nil {
		return errors.New("wasm module returned no result")
	}
	_, err := fmt.Fprintln(w, formatResult(float64(*resp.Result)))
	return err
}

// printTokens lists every token of line, whitespace and bad tokens included.
func printTokens(w io.Writer, line string) error {
	tokens, _ := parser.Tokenize(line)
	for _, t := range tokens {
		if t.Kind == types.EndOfInputToken {
			break
		}
		s := fmt.Sprintf("%s: %q", t.Kind, t.Text)
		if t.HasValue {
			s += " " + strconv.Itoa(int(t.Value))
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
