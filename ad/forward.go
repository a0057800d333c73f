package ad

// The forward evaluator: a single topologically-ordered pass over a
// frozen tape producing values and, for FirstOrder, tangents.

import "math"

// valuePass evaluates every slot of the tape at x, in increasing
// index order so that every operand is computed before the node
// that reads it. It is shared by every driver that needs function
// values, including the value half of the reverse sweep.
func valuePass(t *Tape, x []float64) ([]float64, error) {
	if len(x) != t.numIndeps {
		return nil, shapeMismatch("zero_order", t.numIndeps, len(x), "independents")
	}
	v := make([]float64, t.Len())
	indep := 0
	for k := range t.nodes {
		n := &t.nodes[k]
		switch n.Op {
		case OpIndependent:
			v[k] = x[indep]
			indep++
		case OpConstant:
			v[k] = n.Const
		case OpCopy:
			v[k] = v[n.A]
		case OpAdd:
			v[k] = v[n.A] + v[n.B]
		case OpSub:
			v[k] = v[n.A] - v[n.B]
		case OpMul:
			v[k] = v[n.A] * v[n.B]
		case OpDiv:
			if v[n.B] == 0 {
				return nil, &DomainError{Op: n.Op, Index: k, Reason: "division by zero"}
			}
			v[k] = v[n.A] / v[n.B]
		case OpNeg:
			v[k] = -v[n.A]
		case OpSin:
			v[k] = math.Sin(v[n.A])
		case OpCos:
			v[k] = math.Cos(v[n.A])
		case OpTan:
			c := math.Cos(v[n.A])
			// No float64 lies exactly on a pole, so a cosine within
			// rounding error of zero at this argument counts as one.
			if math.Abs(c) <= 0x1p-52*math.Max(1, math.Abs(v[n.A])) {
				return nil, &DomainError{Op: n.Op, Index: k, Reason: "tangent at a pole"}
			}
			v[k] = math.Sin(v[n.A]) / c
		case OpExp:
			v[k] = math.Exp(v[n.A])
		case OpLn:
			if v[n.A] <= 0 {
				return nil, &DomainError{Op: n.Op, Index: k, Reason: "logarithm of a non-positive value"}
			}
			v[k] = math.Log(v[n.A])
		case OpAbs:
			v[k] = math.Abs(v[n.A])
		case OpMin:
			if v[n.A] <= v[n.B] {
				v[k] = v[n.A]
			} else {
				v[k] = v[n.B]
			}
		case OpMax:
			if v[n.A] >= v[n.B] {
				v[k] = v[n.A]
			} else {
				v[k] = v[n.B]
			}
		default:
			fatalf("ad: corrupt tape: unknown op %d at index %d", n.Op, k)
		}
	}
	return v, nil
}

// absSign is sign(v), with the tie broken to +1 at v == 0.
func absSign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// ZeroOrder evaluates the tape at x and returns the dependent
// values, in the order they were marked.
func ZeroOrder(t *Tape, x []float64) ([]float64, error) {
	v, err := valuePass(t, x)
	if err != nil {
		return nil, err
	}
	y := make([]float64, len(t.deps))
	for i, d := range t.deps {
		y[i] = v[d]
	}
	return y, nil
}

// FirstOrder evaluates the tape at x and propagates the tangent dx
// forward, returning the dependent values and their directional
// derivatives.
func FirstOrder(t *Tape, x, dx []float64) (y, dy []float64, err error) {
	v, err := valuePass(t, x)
	if err != nil {
		return nil, nil, err
	}
	if len(dx) != t.numIndeps {
		return nil, nil, shapeMismatch("first_order", t.numIndeps, len(dx), "tangent components")
	}
	vd := make([]float64, t.Len())
	indep := 0
	for k := range t.nodes {
		n := &t.nodes[k]
		switch n.Op {
		case OpIndependent:
			vd[k] = dx[indep]
			indep++
		case OpConstant:
			vd[k] = 0
		case OpCopy:
			vd[k] = vd[n.A]
		case OpAdd:
			vd[k] = vd[n.A] + vd[n.B]
		case OpSub:
			vd[k] = vd[n.A] - vd[n.B]
		case OpMul:
			vd[k] = vd[n.A]*v[n.B] + v[n.A]*vd[n.B]
		case OpDiv:
			vd[k] = (vd[n.A] - (v[n.A]/v[n.B])*vd[n.B]) / v[n.B]
		case OpNeg:
			vd[k] = -vd[n.A]
		case OpSin:
			vd[k] = math.Cos(v[n.A]) * vd[n.A]
		case OpCos:
			vd[k] = -math.Sin(v[n.A]) * vd[n.A]
		case OpTan:
			c := math.Cos(v[n.A])
			vd[k] = vd[n.A] / (c * c)
		case OpExp:
			vd[k] = v[k] * vd[n.A]
		case OpLn:
			vd[k] = vd[n.A] / v[n.A]
		case OpAbs:
			vd[k] = absSign(v[n.A]) * vd[n.A]
		case OpMin:
			if v[n.A] <= v[n.B] {
				vd[k] = vd[n.A]
			} else {
				vd[k] = vd[n.B]
			}
		case OpMax:
			if v[n.A] >= v[n.B] {
				vd[k] = vd[n.A]
			} else {
				vd[k] = vd[n.B]
			}
		default:
			fatalf("ad: corrupt tape: unknown op %d at index %d", n.Op, k)
		}
	}
	y = make([]float64, len(t.deps))
	dy = make([]float64, len(t.deps))
	for i, d := range t.deps {
		y[i] = v[d]
		dy[i] = vd[d]
	}
	return y, dy, nil
}
