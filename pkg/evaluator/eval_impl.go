package evaluator

import (
	"github.com/sandrolain/goarith/pkg/types"
)

// Evaluate reduces root to a number.
//
// The tree must come from a SyntaxTree without diagnostics. Evaluate panics
// with a *types.InternalError when it meets an operator or node variant
// the grammar cannot produce.
func (e *Evaluator) Evaluate(root types.Expression) float64 {
	return e.evalNode(root, 0)
}

func (e *Evaluator) evalNode(node types.Expression, depth int) float64 {
	if e.opts.Debug {
		e.logger.Debug("evaluating node",
			"kind", nodeKind(node),
			"depth", depth)
	}

	// Dispatch based on node variant
	switch n := node.(type) {
	case *types.LiteralExpr:
		return e.evalLiteral(n)
	case *types.BinaryExpr:
		return e.evalBinary(n, depth)
	case *types.ParenExpr:
		return e.evalNode(n.Inner, depth+1)
	default:
		panic(&types.InternalError{Message: "unexpected node", Kind: nodeKind(node)})
	}
}

func (e *Evaluator) evalLiteral(node *types.LiteralExpr) float64 {
	if !node.Number.HasValue {
		panic(&types.InternalError{Message: "literal without value", Kind: node.Number.Kind})
	}
	return float64(node.Number.Value)
}

func nodeKind(node types.Node) types.Kind {
	if node == nil {
		return types.BadToken
	}
	return node.NodeKind()
}
