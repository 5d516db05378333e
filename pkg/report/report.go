// Package report renders diagnostics against the source they refer to.
//
// Each diagnostic is printed as a header line followed by the source and a
// caret line pointing at the offending token:
//
//	error[S0202]: unexpected token `EndOfInputToken`, expected `NumberToken`
//	  | 1 +
//	  |    ^
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/sandrolain/goarith/pkg/types"
)

// TabstopWidth is the number of columns a tab is rendered as.
const TabstopWidth = 4

// Options configures rendering.
type Options struct {
	// Color enables ANSI colors regardless of the terminal.
	Color bool
	// Snippet prints the source line and caret under each header.
	Snippet bool
}

// Renderer writes diagnostics for one source line.
type Renderer struct {
	opts   Options
	header *color.Color
	caret  *color.Color
	gutter *color.Color
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		opts:   opts,
		header: color.New(color.FgRed, color.Bold),
		caret:  color.New(color.FgRed),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{r.header, r.caret, r.gutter} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes every diagnostic in ds to w.
func (r *Renderer) Render(w io.Writer, source string, ds types.Diagnostics) error {
	line := expandTabs(source)
	for _, d := range ds {
		if _, err := fmt.Fprintf(w, "%s\n", r.header.Sprintf("error[%s]: %s", d.Code, d.Message)); err != nil {
			return err
		}
		if !r.opts.Snippet {
			continue
		}

		col := Column(source, d.Position)
		width := max(1, stringWidth(d.Token))
		if _, err := fmt.Fprintf(w, "  %s %s\n", r.gutter.Sprint("|"), line); err != nil {
			return err
		}
		caret := strings.Repeat(" ", col) + r.caret.Sprint(strings.Repeat("^", width))
		if _, err := fmt.Fprintf(w, "  %s %s\n", r.gutter.Sprint("|"), caret); err != nil {
			return err
		}
	}
	return nil
}

// Render writes ds to w using a renderer built from opts.
func Render(w io.Writer, source string, ds types.Diagnostics, opts Options) error {
	return NewRenderer(opts).Render(w, source, ds)
}

// Column returns the display column of the byte offset pos in source,
// counting wide characters as two columns and tabs as TabstopWidth.
func Column(source string, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	if pos < 0 {
		pos = 0
	}
	return stringWidth(source[:pos])
}

func stringWidth(s string) int {
	return uniseg.StringWidth(expandTabs(s))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabstopWidth))
}
