package ad

// The abs-normal decomposer: produces an equivalent Min/Max-free
// tape, then the piecewise-linearization matrices (Z, L, J, Y) and
// offsets (a, b) of the abs-normal form at a point (Griewank's
// abs-normal form for abs-factorable functions).

import "math"

// AbsNormalForm is the piecewise-linearization of an abs-factorable
// tape at a point: locally,
//
//	z  = A + Z·Δx + L·|z|
//	Δy = B + J·Δx + Y·|z|
//
// with L strictly lower triangular.
type AbsNormalForm struct {
	A []float64   // switching variable values, length s
	B []float64   // dependent offsets, length m
	Z [][]float64 // s×n
	L [][]float64 // s×s, strictly lower triangular
	J [][]float64 // m×n
	Y [][]float64 // m×s
}

// AbsDecompose returns an equivalent tape in which every Min/Max
// node has been rewritten as ((a+b) ∓ |a-b|)/2, and no other
// structural change is made. NumAbs of the returned tape counts
// every switching point, original Abs nodes and rewritten Min/Max
// alike.
func (t *Tape) AbsDecompose() *Tape {
	oldToNew := make([]int, t.Len())
	var nodes []Node
	numAbs := 0

	emit := func(n Node) int {
		idx := len(nodes)
		nodes = append(nodes, n)
		return idx
	}

	for k := range t.nodes {
		n := t.nodes[k]
		switch n.Op {
		case OpIndependent:
			oldToNew[k] = emit(Node{Op: OpIndependent, A: -1, B: -1})
		case OpConstant:
			oldToNew[k] = emit(Node{Op: OpConstant, A: -1, B: -1, Const: n.Const})
		case OpCopy:
			oldToNew[k] = emit(Node{Op: OpCopy, A: oldToNew[n.A], B: -1})
		case OpAdd, OpSub, OpMul, OpDiv:
			oldToNew[k] = emit(Node{Op: n.Op, A: oldToNew[n.A], B: oldToNew[n.B]})
		case OpNeg, OpSin, OpCos, OpTan, OpExp, OpLn:
			oldToNew[k] = emit(Node{Op: n.Op, A: oldToNew[n.A], B: -1})
		case OpAbs:
			numAbs++
			oldToNew[k] = emit(Node{Op: OpAbs, A: oldToNew[n.A], B: -1})
		case OpMin, OpMax:
			a := oldToNew[n.A]
			b := oldToNew[n.B]
			sum := emit(Node{Op: OpAdd, A: a, B: b})
			diff := emit(Node{Op: OpSub, A: a, B: b})
			absDiff := emit(Node{Op: OpAbs, A: diff, B: -1})
			numAbs++
			var combined int
			if n.Op == OpMin {
				combined = emit(Node{Op: OpSub, A: sum, B: absDiff})
			} else {
				combined = emit(Node{Op: OpAdd, A: sum, B: absDiff})
			}
			two := emit(Node{Op: OpConstant, A: -1, B: -1, Const: 2})
			oldToNew[k] = emit(Node{Op: OpDiv, A: combined, B: two})
		default:
			fatalf("ad: corrupt tape: unknown op %d at index %d", n.Op, k)
		}
	}

	newDeps := make([]int, len(t.deps))
	for i, d := range t.deps {
		newDeps[i] = oldToNew[d]
	}

	decomposed := &Tape{
		nodes:     nodes,
		deps:      newDeps,
		numIndeps: t.numIndeps,
		numAbs:    numAbs,
		frozen:    true,
	}
	tracef("ad: decomposed tape: %d nodes -> %d nodes, %d abs -> %d abs",
		t.Len(), decomposed.Len(), t.numAbs, decomposed.numAbs)
	return decomposed
}

// absLinearizedSweep runs one forward tangent sweep of the
// abs-linearization graph: every non-Abs node propagates its tangent
// by the ordinary elementary rule, but an Abs node's own output
// tangent is never derived from its argument's tangent by the chain
// rule — instead it is pinned to 1 exactly when this sweep is
// seeding that particular switching slot, and 0 otherwise. This
// treats each |z_k| as a fresh symbol independent of x: downstream
// computation only ever sees the switching value through that
// pinned slot, never through sign(arg)*tangent(arg).
func absLinearizedSweep(t *Tape, v []float64, indepSeed, absSeed int) []float64 {
	vd := make([]float64, t.Len())
	indep := 0
	absSlot := 0
	for k := range t.nodes {
		n := &t.nodes[k]
		switch n.Op {
		case OpIndependent:
			if indepSeed == indep {
				vd[k] = 1
			}
			indep++
		case OpConstant:
			// vd[k] already zero.
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
			if absSeed == absSlot {
				vd[k] = 1
			}
			absSlot++
		case OpMin, OpMax:
			fatalf("ad: AbsNormal requires AbsDecompose first: tape still has Min/Max at index %d", k)
		default:
			fatalf("ad: corrupt tape: unknown op %d at index %d", n.Op, k)
		}
	}
	return vd
}

// AbsNormal computes the abs-normal form of an already-decomposed
// tape at x. Feeding a tape that still contains Min/Max nodes is an
// invariant violation.
func AbsNormal(t *Tape, x []float64) (*AbsNormalForm, error) {
	if t.hasMinMax() {
		fatalf("ad: AbsNormal requires AbsDecompose first: tape still contains Min/Max nodes")
	}
	v, err := valuePass(t, x)
	if err != nil {
		return nil, err
	}

	absNodes := t.absNodeIndices()
	s := len(absNodes)
	n := t.numIndeps
	m := len(t.deps)

	a := make([]float64, s)
	for k, idx := range absNodes {
		a[k] = v[t.nodes[idx].A]
	}

	Z := newMatrix(s, n)
	J := newMatrix(m, n)
	for j := 0; j < n; j++ {
		vd := absLinearizedSweep(t, v, j, -1)
		for k, idx := range absNodes {
			Z[k][j] = vd[t.nodes[idx].A]
		}
		for i, d := range t.deps {
			J[i][j] = vd[d]
		}
	}

	L := newMatrix(s, s)
	Y := newMatrix(m, s)
	for l := 0; l < s; l++ {
		vd := absLinearizedSweep(t, v, -1, l)
		for k, idx := range absNodes {
			L[k][l] = vd[t.nodes[idx].A]
		}
		for i, d := range t.deps {
			Y[i][l] = vd[d]
		}
	}

	b := make([]float64, m)
	for i, d := range t.deps {
		contrib := 0.
		for l := 0; l < s; l++ {
			contrib += Y[i][l] * math.Abs(a[l])
		}
		b[i] = v[d] - contrib
	}

	tracef("ad: abs-normal form at point: s=%d n=%d m=%d", s, n, m)

	return &AbsNormalForm{A: a, B: b, Z: Z, L: L, J: J, Y: Y}, nil
}
