package ad

// The operation node model (C1): a closed, tagged set of elementary
// operations. Drivers switch on Op; there is deliberately no dynamic
// dispatch per node since the set is small and fixed.

// OpType tags the kind of one recorded elementary operation.
type OpType int

const (
	// OpIndependent marks a tape slot minted by Context.NewIndependent.
	// It carries no operand.
	OpIndependent OpType = iota
	// OpConstant lifts a primitive float64 literal onto the tape.
	OpConstant
	// OpCopy aliases another slot; recorded by Context.Copy for code
	// that needs a fresh slot referring to an existing value, and
	// carried over unchanged by AbsDecompose.
	OpCopy
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpSin
	OpCos
	OpTan
	OpExp
	OpLn
	// OpAbs additionally counts as a switching operation.
	OpAbs
	// OpMin and OpMax are recorded as their own node kind; they are
	// rewritten into Abs-based form only by Tape.AbsDecompose.
	OpMin
	OpMax
)

// Node is a tagged record of one elementary operation and the
// operand slot indices it reads. No node stores a value or a
// derivative — those live in per-sweep scratch allocated by the
// drivers, which keeps a Tape a pure, stateless program.
//
// A and B are indices into the owning Tape's node list; -1 marks an
// unused operand (OpIndependent, OpConstant have none; unary ops use
// only A). Const holds the literal value of an OpConstant node and
// is otherwise unused.
type Node struct {
	Op    OpType
	A, B  int
	Const float64
}
