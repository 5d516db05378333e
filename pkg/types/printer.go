package types

import (
	"fmt"
	"io"
	"strings"
)

const printIndent = "    "

// Fprint writes an indented rendering of node to w, one node per line.
// Literal expressions and number tokens are followed by their value.
func Fprint(w io.Writer, node Node) error {
	return fprint(w, node, "")
}

// Sprint returns the rendering produced by Fprint.
func Sprint(node Node) string {
	var sb strings.Builder
	_ = Fprint(&sb, node)
	return sb.String()
}

func fprint(w io.Writer, node Node, indent string) error {
	if node == nil {
		return nil
	}

	line := indent + node.NodeKind().String()
	switch n := node.(type) {
	case *LiteralExpr:
		if n.Number.HasValue {
			line += fmt.Sprintf(" %d", n.Number.Value)
		}
	case Token:
		if n.HasValue {
			line += fmt.Sprintf(" %d", n.Value)
		}
		if n.Missing {
			line += " (missing)"
		}
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return err
	}

	for _, child := range node.Children() {
		if err := fprint(w, child, indent+printIndent); err != nil {
			return err
		}
	}
	return nil
}
