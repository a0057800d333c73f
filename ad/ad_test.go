package ad

// Differentiation rules, table-driven: each case builds one tape
// through a Context and checks its value and gradient at a set of
// points.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testcase defines one expression, built once and evaluated at each
// set of inputs below, and the value/gradient it is expected to
// produce at each.
type testcase struct {
	name  string
	n     int // number of independents
	build func(c *Context, x []ActiveScalar) ActiveScalar
	cases []struct {
		x    []float64
		y    float64
		grad []float64
	}
}

// runsuite records each case's expression once, then checks its
// value and reverse-mode gradient at every listed point.
func runsuite(t *testing.T, suite []testcase) {
	for _, c := range suite {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ctx := NewContext()
			x := make([]ActiveScalar, c.n)
			for i := range x {
				x[i] = ctx.NewIndependent()
			}
			y := c.build(ctx, x)
			ctx.SetDependent(y)
			tape := ctx.Freeze()

			for _, tc := range c.cases {
				yv, err := ZeroOrder(tape, tc.x)
				assert.NoError(t, err)
				assert.InDelta(t, tc.y, yv[0], 1e-9, "%s: value at %v", c.name, tc.x)

				_, xbar, err := FirstOrderReverse(tape, tc.x, []float64{1})
				assert.NoError(t, err)
				for j, want := range tc.grad {
					assert.InDelta(t, want, xbar[j], 1e-9, "%s: grad[%d] at %v", c.name, j, tc.x)
				}
			}
		})
	}
}

func TestPrimitive(t *testing.T) {
	runsuite(t, []testcase{
		{"x + y", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar { return x[0].Add(x[1]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{3, 5}, 8, []float64{1, 1}},
			}},
		{"x + x", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return x[0].Add(x[0]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1}, 2, []float64{2}},
			}},
		{"x - y", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar { return x[0].Sub(x[1]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1, 1}, 0, []float64{1, -1}},
			}},
		{"x * y", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar { return x[0].Mul(x[1]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{2, 3}, 6, []float64{3, 2}},
			}},
		{"x / y", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar { return x[0].Div(x[1]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{2, 4}, 0.5, []float64{0.25, -0.125}},
			}},
		{"-x", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return x[0].Neg() },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{3}, -3, []float64{-1}},
			}},
		{"sin(x)", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Sin(x[0]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1}, math.Sin(1), []float64{math.Cos(1)}},
			}},
		{"cos(x)", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Cos(x[0]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1}, math.Cos(1), []float64{-math.Sin(1)}},
			}},
		{"exp(x)", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Exp(x[0]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1}, math.E, []float64{math.E}},
			}},
		{"ln(x)", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Ln(x[0]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{2}, math.Log(2), []float64{0.5}},
			}},
		{"abs(x)", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Abs(x[0]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{-2}, 2, []float64{-1}},
				{[]float64{2}, 2, []float64{1}},
			}},
		{"min(x, y)", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Min(x[0], x[1]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1, 2}, 1, []float64{1, 0}},
				{[]float64{3, 2}, 2, []float64{0, 1}},
			}},
		{"max(x, y)", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar { return Max(x[0], x[1]) },
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1, 2}, 2, []float64{0, 1}},
				{[]float64{3, 2}, 3, []float64{1, 0}},
			}},
	})
}

func TestComposite(t *testing.T) {
	runsuite(t, []testcase{
		{"x*x + y*y", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar {
				return x[0].Mul(x[0]).Add(x[1].Mul(x[1]))
			},
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{2, 3}, 13, []float64{4, 6}},
			}},
		{"sin(x)*cos(y)", 2,
			func(c *Context, x []ActiveScalar) ActiveScalar {
				return Sin(x[0]).Mul(Cos(x[1]))
			},
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{0.5, 0.25}, math.Sin(0.5) * math.Cos(0.25),
					[]float64{math.Cos(0.5) * math.Cos(0.25), -math.Sin(0.5) * math.Sin(0.25)}},
			}},
		{"mixed-primitive: (x + 2) * 3", 1,
			func(c *Context, x []ActiveScalar) ActiveScalar {
				return x[0].AddC(2).MulC(3)
			},
			[]struct {
				x    []float64
				y    float64
				grad []float64
			}{
				{[]float64{1}, 9, []float64{3}},
			}},
	})
}

func TestZeroOrderShapeMismatch(t *testing.T) {
	ctx := NewContext()
	x := ctx.NewIndependent()
	ctx.SetDependent(x)
	tape := ctx.Freeze()

	_, err := ZeroOrder(tape, []float64{1, 2})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDomainErrors(t *testing.T) {
	t.Run("division by zero", func(t *testing.T) {
		ctx := NewContext()
		x := ctx.NewIndependent()
		y := ctx.NewIndependent()
		ctx.SetDependent(x.Div(y))
		tape := ctx.Freeze()

		_, err := ZeroOrder(tape, []float64{1, 0})
		var de *DomainError
		assert.ErrorAs(t, err, &de)
	})

	t.Run("log of non-positive", func(t *testing.T) {
		ctx := NewContext()
		x := ctx.NewIndependent()
		ctx.SetDependent(Ln(x))
		tape := ctx.Freeze()

		_, err := ZeroOrder(tape, []float64{-1})
		var de *DomainError
		assert.ErrorAs(t, err, &de)
	})

	t.Run("tangent at pole", func(t *testing.T) {
		ctx := NewContext()
		x := ctx.NewIndependent()
		ctx.SetDependent(Tan(x))
		tape := ctx.Freeze()

		_, err := ZeroOrder(tape, []float64{math.Pi / 2})
		var de *DomainError
		assert.ErrorAs(t, err, &de)
	})
}

func TestJacobianAgreesForwardReverse(t *testing.T) {
	ctx := NewContext()
	x := ctx.NewIndependent()
	y := ctx.NewIndependent()
	ctx.SetDependent(x.Mul(x).Add(y))
	ctx.SetDependent(x.Mul(y))
	tape := ctx.Freeze()

	at := []float64{3, 4}
	jf, err := Jacobian(tape, at)
	assert.NoError(t, err)
	jr, err := JacobianReverse(tape, at)
	assert.NoError(t, err)

	want := [][]float64{{6, 1}, {4, 3}}
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], jf[i][j], 1e-9)
			assert.InDelta(t, want[i][j], jr[i][j], 1e-9)
		}
	}
}

func TestRepeatedDependentSumsIndependently(t *testing.T) {
	ctx := NewContext()
	x := ctx.NewIndependent()
	ctx.SetDependent(x)
	ctx.SetDependent(x)
	tape := ctx.Freeze()

	_, xbar, err := FirstOrderReverse(tape, []float64{5}, []float64{1, 1})
	assert.NoError(t, err)
	assert.InDelta(t, 2, xbar[0], 1e-9)
}
