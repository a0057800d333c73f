package ad

// Abs-normal decomposition, checked against a bare abs, a max
// rewritten through abs, and a chain of two switches.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsNormalSingleAbs(t *testing.T) {
	ctx := NewContext()
	x := ctx.NewIndependent()
	ctx.SetDependent(Abs(x))
	tape := ctx.Freeze()

	assert.Equal(t, 1, tape.NumAbs())

	y, err := ZeroOrder(tape, []float64{-2})
	assert.NoError(t, err)
	assert.Equal(t, []float64{2}, y)

	_, dy, err := FirstOrder(tape, []float64{-2}, []float64{1})
	assert.NoError(t, err)
	assert.InDelta(t, -1, dy[0], 1e-9)

	form, err := AbsNormal(tape, []float64{-2})
	assert.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2}, form.A, 1e-9)
	assert.InDeltaSlice(t, []float64{0}, form.B, 1e-9)
	assertMatrix(t, [][]float64{{1}}, form.Z)
	assertMatrix(t, [][]float64{{0}}, form.L)
	assertMatrix(t, [][]float64{{0}}, form.J)
	assertMatrix(t, [][]float64{{1}}, form.Y)
}

func TestAbsNormalMaxRewrite(t *testing.T) {
	ctx := NewContext()
	a := ctx.NewIndependent()
	b := ctx.NewIndependent()
	ctx.SetDependent(Max(a, b))
	tape := ctx.Freeze()

	y, err := ZeroOrder(tape, []float64{3, 1})
	assert.NoError(t, err)
	assert.Equal(t, []float64{3}, y)

	j, err := Jacobian(tape, []float64{3, 1})
	assert.NoError(t, err)
	assertMatrix(t, [][]float64{{1, 0}}, j)

	decomposed := tape.AbsDecompose()
	assert.Equal(t, 1, decomposed.NumAbs())

	form, err := AbsNormal(decomposed, []float64{3, 1})
	assert.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2}, form.A, 1e-9)
	assertMatrix(t, [][]float64{{1, -1}}, form.Z)
	assertMatrix(t, [][]float64{{0.5, 0.5}}, form.J)
	assertMatrix(t, [][]float64{{0.5}}, form.Y)
	assertMatrix(t, [][]float64{{0}}, form.L)
}

func TestAbsNormalChainedSwitches(t *testing.T) {
	ctx := NewContext()
	x := ctx.NewIndependent()
	y := Abs(x)
	z := Abs(y.SubC(1))
	ctx.SetDependent(z)
	tape := ctx.Freeze()

	assert.Equal(t, 2, tape.NumAbs())

	out, err := ZeroOrder(tape, []float64{-2})
	assert.NoError(t, err)
	assert.InDelta(t, 1, out[0], 1e-9)

	form, err := AbsNormal(tape, []float64{-2})
	assert.NoError(t, err)
	assert.Len(t, form.L, 2)
	assert.Len(t, form.L[0], 2)
	assert.InDelta(t, 0, form.L[0][1], 1e-9)
	assert.InDelta(t, 1, form.L[1][0], 1e-9)

	// Δy = b + J·Δx + Y·|z| at Δx = 0 reconstructs the recorded value.
	reconstructed := form.B[0]
	for l := range form.A {
		reconstructed += form.Y[0][l] * absFloat(form.A[l])
	}
	assert.InDelta(t, out[0], reconstructed, 1e-9)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func assertMatrix(t *testing.T, want, got [][]float64) {
	t.Helper()
	assert.Equal(t, len(want), len(got))
	for i := range want {
		assert.InDeltaSlice(t, want[i], got[i], 1e-9)
	}
}
