package ad

// The active scalar: a handle to a single tape slot. Operator
// overloads append nodes to the owning context's tape and return new
// handles.
//
// ActiveScalar is a value: copying it yields another handle to the
// same slot, not a fresh variable. No node ever overwrites a slot.
// To obtain a genuinely new slot aliasing the same value, record an
// explicit Context.Copy.

// ActiveScalar is a handle to one slot on a Context's tape.
type ActiveScalar struct {
	ctx *Context
	idx int
}

// Index returns the tape slot this handle refers to.
func (x ActiveScalar) Index() int {
	return x.idx
}

// Add returns x + y.
func (x ActiveScalar) Add(y ActiveScalar) ActiveScalar {
	return x.ctx.binary(OpAdd, x, y)
}

// Sub returns x - y.
func (x ActiveScalar) Sub(y ActiveScalar) ActiveScalar {
	return x.ctx.binary(OpSub, x, y)
}

// Mul returns x * y.
func (x ActiveScalar) Mul(y ActiveScalar) ActiveScalar {
	return x.ctx.binary(OpMul, x, y)
}

// Div returns x / y.
func (x ActiveScalar) Div(y ActiveScalar) ActiveScalar {
	return x.ctx.binary(OpDiv, x, y)
}

// Neg returns -x.
func (x ActiveScalar) Neg() ActiveScalar {
	return x.ctx.unary(OpNeg, x)
}

// Mixed-primitive variants: a ConstantFromValue node is
// appended for the primitive operand before the binary node.

// AddC returns x + c.
func (x ActiveScalar) AddC(c float64) ActiveScalar {
	return x.Add(x.ctx.Constant(c))
}

// SubC returns x - c.
func (x ActiveScalar) SubC(c float64) ActiveScalar {
	return x.Sub(x.ctx.Constant(c))
}

// RSubC returns c - x.
func (x ActiveScalar) RSubC(c float64) ActiveScalar {
	return x.ctx.Constant(c).Sub(x)
}

// MulC returns x * c.
func (x ActiveScalar) MulC(c float64) ActiveScalar {
	return x.Mul(x.ctx.Constant(c))
}

// DivC returns x / c.
func (x ActiveScalar) DivC(c float64) ActiveScalar {
	return x.Div(x.ctx.Constant(c))
}

// RDivC returns c / x.
func (x ActiveScalar) RDivC(c float64) ActiveScalar {
	return x.ctx.Constant(c).Div(x)
}

// Unary free functions.

// Sin returns sin(x).
func Sin(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpSin, x)
}

// Cos returns cos(x).
func Cos(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpCos, x)
}

// Tan returns tan(x).
func Tan(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpTan, x)
}

// Exp returns exp(x).
func Exp(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpExp, x)
}

// Ln returns the natural logarithm of x.
func Ln(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpLn, x)
}

// Abs returns |x|, additionally counted as a switching operation.
func Abs(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpAbs, x)
}

// Neg returns -x. Provided alongside the ActiveScalar.Neg method for
// symmetry with the other free functions.
func Neg(x ActiveScalar) ActiveScalar {
	return x.ctx.unary(OpNeg, x)
}

// Binary free functions.

// Min returns min(x, y), recorded as its own node; rewriting into
// Abs-based form happens only inside AbsDecompose.
func Min(x, y ActiveScalar) ActiveScalar {
	return x.ctx.binary(OpMin, x, y)
}

// Max returns max(x, y), recorded as its own node; rewriting into
// Abs-based form happens only inside AbsDecompose.
func Max(x, y ActiveScalar) ActiveScalar {
	return x.ctx.binary(OpMax, x, y)
}

// MinC returns min(x, c).
func MinC(x ActiveScalar, c float64) ActiveScalar {
	return Min(x, x.ctx.Constant(c))
}

// MaxC returns max(x, c).
func MaxC(x ActiveScalar, c float64) ActiveScalar {
	return Max(x, x.ctx.Constant(c))
}
