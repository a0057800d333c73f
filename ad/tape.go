package ad

// The tape buffer (C2): an append-only ordered sequence of nodes.
// A Tape is built up by exactly one Context, then frozen into an
// immutable value (Tape.AbsDecompose builds its result directly,
// already frozen) that may be shared and read by any number of
// drivers, including concurrently.

// Tape is an ordered, append-only record of elementary operations.
// The zero value is an empty, unfrozen tape; Tapes are normally
// obtained from Context.Freeze rather than constructed directly.
type Tape struct {
	nodes     []Node
	deps      []int
	numIndeps int
	numAbs    int
	frozen    bool
}

// append adds a node to the tape and returns its slot index. It is
// a programmer error to call append on a frozen tape.
func (t *Tape) append(n Node) int {
	if t.frozen {
		fatalf("ad: append on a frozen tape")
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)
	if n.Op == OpAbs {
		t.numAbs++
	}
	return idx
}

// Len returns the number of nodes recorded on the tape.
func (t *Tape) Len() int {
	return len(t.nodes)
}

// Node returns the node at idx. It is an invariant violation for
// idx to be out of range.
func (t *Tape) Node(idx int) Node {
	if idx < 0 || idx >= len(t.nodes) {
		fatalf("ad: tape index %d out of range [0, %d)", idx, len(t.nodes))
	}
	return t.nodes[idx]
}

// NumIndeps returns the number of independents minted by
// Context.NewIndependent.
func (t *Tape) NumIndeps() int {
	return t.numIndeps
}

// NumDeps returns the number of dependents marked by
// Context.SetDependent, counting duplicates.
func (t *Tape) NumDeps() int {
	return len(t.deps)
}

// NumAbs returns the number of Abs nodes recorded on the tape. Until
// AbsDecompose is called, Min/Max nodes are not counted as switching
// points even though they behave as ones once decomposed.
func (t *Tape) NumAbs() int {
	return t.numAbs
}

// hasMinMax reports whether the tape still contains undecomposed
// Min/Max nodes.
func (t *Tape) hasMinMax() bool {
	for _, n := range t.nodes {
		if n.Op == OpMin || n.Op == OpMax {
			return true
		}
	}
	return false
}

// absNodeIndices returns the tape indices of all Abs nodes, in tape
// order.
func (t *Tape) absNodeIndices() []int {
	var idxs []int
	for k, n := range t.nodes {
		if n.Op == OpAbs {
			idxs = append(idxs, k)
		}
	}
	return idxs
}
