package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const prompt = "> "

// maxLineSize bounds a single input line in the read loop and in batch files.
const maxLineSize = 16 << 20

// repl reads one expression per line until EOF or an empty line.
// On a terminal it uses line editing with history; otherwise it scans
// plain lines.
func (a *app) repl(ctx context.Context, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		return a.replTerminal(ctx, in, out, fd)
	}

	scanner := newLineScanner(in)
	for {
		if _, err := fmt.Fprint(out, prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if done, err := a.replLine(ctx, out, scanner.Text()); done || err != nil {
			return err
		}
	}
}

func (a *app) replTerminal(ctx context.Context, in *os.File, out io.Writer, fd int) error {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, state); err != nil {
			a.logger.Warn("failed to restore terminal", "error", err)
		}
	}()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, prompt)

	for {
		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if done, err := a.replLine(ctx, t, line); done || err != nil {
			return err
		}
	}
}

// replLine evaluates one line. It reports done on a blank line.
func (a *app) replLine(ctx context.Context, w io.Writer, line string) (bool, error) {
	if strings.TrimSpace(line) == "" {
		return true, nil
	}
	if err := a.evalLine(ctx, w, line); err != nil && !errors.Is(err, errInvalidExpression) {
		return true, err
	}
	return false, ctx.Err()
}
