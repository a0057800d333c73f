package ad

// The reverse evaluator: a forward value pass followed by a reverse
// adjoint sweep in strictly decreasing slot order. Every slot is
// single-assignment, so adjoints can be indexed directly by tape
// slot with no deduplication bookkeeping.

import "math"

// FirstOrderReverse runs the value sweep at x, seeds the adjoint of
// each dependent with the matching entry of ybar, and accumulates
// adjoints backward from the last node to the first. If the same
// slot is marked dependent more than once, its contributions to
// xbar sum, matching the natural Jacobian interpretation.
func FirstOrderReverse(t *Tape, x, ybar []float64) (y, xbar []float64, err error) {
	v, err := valuePass(t, x)
	if err != nil {
		return nil, nil, err
	}
	if len(ybar) != len(t.deps) {
		return nil, nil, shapeMismatch("first_order_reverse", len(t.deps), len(ybar), "adjoint components")
	}

	bar := make([]float64, t.Len())
	for i, d := range t.deps {
		bar[d] += ybar[i]
	}

	for k := t.Len() - 1; k >= 0; k-- {
		n := &t.nodes[k]
		a := bar[k]
		switch n.Op {
		case OpIndependent, OpConstant:
			// No operand to propagate to.
		case OpCopy:
			bar[n.A] += a
		case OpAdd:
			bar[n.A] += a
			bar[n.B] += a
		case OpSub:
			bar[n.A] += a
			bar[n.B] -= a
		case OpMul:
			bar[n.A] += a * v[n.B]
			bar[n.B] += a * v[n.A]
		case OpDiv:
			bar[n.A] += a / v[n.B]
			bar[n.B] += -a * v[n.A] / (v[n.B] * v[n.B])
		case OpNeg:
			bar[n.A] -= a
		case OpSin:
			bar[n.A] += a * math.Cos(v[n.A])
		case OpCos:
			bar[n.A] -= a * math.Sin(v[n.A])
		case OpTan:
			c := math.Cos(v[n.A])
			bar[n.A] += a / (c * c)
		case OpExp:
			bar[n.A] += a * v[k]
		case OpLn:
			bar[n.A] += a / v[n.A]
		case OpAbs:
			bar[n.A] += a * absSign(v[n.A])
		case OpMin:
			if v[n.A] <= v[n.B] {
				bar[n.A] += a
			} else {
				bar[n.B] += a
			}
		case OpMax:
			if v[n.A] >= v[n.B] {
				bar[n.A] += a
			} else {
				bar[n.B] += a
			}
		default:
			fatalf("ad: corrupt tape: unknown op %d at index %d", n.Op, k)
		}
	}

	y = make([]float64, len(t.deps))
	for i, d := range t.deps {
		y[i] = v[d]
	}
	xbar = append([]float64(nil), bar[:t.numIndeps]...)
	return y, xbar, nil
}
