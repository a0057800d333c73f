package ad

// The recording context owns a tape under construction, mints
// independents, marks dependents, and freezes the tape. Each Context
// builds exactly one tape; there is no shared global recording state.

// Context records the elementary operations performed on the
// ActiveScalar values it mints. The zero value is not usable; create
// one with NewContext.
type Context struct {
	tape *Tape
}

// NewContext returns an empty recording context.
func NewContext() *Context {
	return &Context{tape: &Tape{}}
}

// mustBeRecording aborts if the context has already been frozen:
// operations on active scalars after Context.Freeze are undefined
// and must abort rather than silently misbehave.
func (c *Context) mustBeRecording() {
	if c == nil || c.tape == nil {
		fatalf("ad: context used after Freeze")
	}
}

// mustOwn aborts if v was not produced by this context.
func (c *Context) mustOwn(v ActiveScalar) {
	if v.ctx != c {
		fatalf("ad: active scalar does not belong to this context")
	}
}

// NewIndependent appends an Independent node and returns a handle to
// it. Independents must all be minted before any other operation is
// recorded, so that their tape indices form the stable prefix
// [0, numIndeps) that the drivers index into.
func (c *Context) NewIndependent() ActiveScalar {
	c.mustBeRecording()
	if c.tape.Len() != c.tape.numIndeps {
		fatalf("ad: NewIndependent called after recording has begun")
	}
	idx := c.tape.append(Node{Op: OpIndependent, A: -1, B: -1})
	c.tape.numIndeps++
	return ActiveScalar{ctx: c, idx: idx}
}

// Constant lifts a primitive float64 into the tape as a ConstantFromValue
// node, which carries its value directly rather than reading it from x.
func (c *Context) Constant(v float64) ActiveScalar {
	c.mustBeRecording()
	idx := c.tape.append(Node{Op: OpConstant, A: -1, B: -1, Const: v})
	return ActiveScalar{ctx: c, idx: idx}
}

// Copy records an explicit alias of v in a fresh slot.
func (c *Context) Copy(v ActiveScalar) ActiveScalar {
	c.mustBeRecording()
	c.mustOwn(v)
	idx := c.tape.append(Node{Op: OpCopy, A: v.idx, B: -1})
	return ActiveScalar{ctx: c, idx: idx}
}

// SetDependent marks v's slot as a function output. The same
// variable may be marked dependent more than once; duplicates
// produce multiple rows in the Jacobian.
func (c *Context) SetDependent(v ActiveScalar) {
	c.mustBeRecording()
	c.mustOwn(v)
	c.tape.deps = append(c.tape.deps, v.idx)
}

// Freeze transfers ownership of the buffer and dependent list into a
// Tape and empties the context. Operations on active scalars minted
// before the freeze become undefined (and abort) afterwards.
func (c *Context) Freeze() *Tape {
	c.mustBeRecording()
	t := c.tape
	t.frozen = true
	c.tape = nil
	tracef("ad: froze tape with %d nodes, %d independents, %d dependents, %d abs",
		t.Len(), t.numIndeps, t.NumDeps(), t.numAbs)
	return t
}

func (c *Context) unary(op OpType, x ActiveScalar) ActiveScalar {
	c.mustBeRecording()
	c.mustOwn(x)
	idx := c.tape.append(Node{Op: op, A: x.idx, B: -1})
	return ActiveScalar{ctx: c, idx: idx}
}

func (c *Context) binary(op OpType, x, y ActiveScalar) ActiveScalar {
	c.mustBeRecording()
	c.mustOwn(x)
	c.mustOwn(y)
	idx := c.tape.append(Node{Op: op, A: x.idx, B: y.idx})
	return ActiveScalar{ctx: c, idx: idx}
}
