package evaluator

import (
	"github.com/sandrolain/goarith/pkg/types"
)

// evalBinary walks the left spine of node iteratively. Chains of same-level
// operators lean left, so 1+2+3+... only recurses into right operands.
func (e *Evaluator) evalBinary(node *types.BinaryExpr, depth int) float64 {
	spine := []*types.BinaryExpr{node}
	for {
		left, ok := spine[len(spine)-1].Left.(*types.BinaryExpr)
		if !ok {
			break
		}
		if e.opts.Debug {
			e.logger.Debug("evaluating node",
				"kind", left.NodeKind(),
				"depth", depth+len(spine))
		}
		spine = append(spine, left)
	}

	innermost := spine[len(spine)-1]
	result := e.evalNode(innermost.Left, depth+len(spine))
	for i := len(spine) - 1; i >= 0; i-- {
		n := spine[i]
		right := e.evalNode(n.Right, depth+i+1)
		result = applyOperator(n.Operator.Kind, result, right)
	}
	return result
}

func applyOperator(kind types.Kind, left, right float64) float64 {
	switch kind {
	case types.PlusToken:
		return opAdd(left, right)
	case types.MinusToken:
		return opSubtract(left, right)
	case types.MultiplyToken:
		return opMultiply(left, right)
	case types.DivideToken:
		return opDivide(left, right)
	default:
		panic(&types.InternalError{Message: "unexpected binary operator", Kind: kind})
	}
}

func opAdd(left, right float64) float64 {
	return left + right
}

func opSubtract(left, right float64) float64 {
	return left - right
}

func opMultiply(left, right float64) float64 {
	return left * right
}

// opDivide follows IEEE 754: a zero divisor yields ±Inf, or NaN for 0/0.
func opDivide(left, right float64) float64 {
	return left / right
}
