package ad

// The Jacobian drivers: repeated forward/reverse sweeps over
// standard basis vectors, assembling a dense m×n Jacobian.

// Jacobian computes the dense Jacobian by running FirstOrder once
// per independent, with dx set to each standard basis vector in
// turn, and placing the result in column j. Cheaper than
// JacobianReverse when n << m.
func Jacobian(t *Tape, x []float64) ([][]float64, error) {
	if len(x) != t.numIndeps {
		return nil, shapeMismatch("jacobian", t.numIndeps, len(x), "independents")
	}
	n := t.numIndeps
	m := len(t.deps)
	J := newMatrix(m, n)
	dx := make([]float64, n)
	for j := 0; j < n; j++ {
		dx[j] = 1
		_, dy, err := FirstOrder(t, x, dx)
		dx[j] = 0
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			J[i][j] = dy[i]
		}
	}
	return J, nil
}

// JacobianReverse computes the dense Jacobian by running
// FirstOrderReverse once per dependent, with ybar set to each
// standard basis vector in turn, and placing the result in row i.
// Cheaper than Jacobian when m << n.
func JacobianReverse(t *Tape, x []float64) ([][]float64, error) {
	if len(x) != t.numIndeps {
		return nil, shapeMismatch("jacobian_reverse", t.numIndeps, len(x), "independents")
	}
	n := t.numIndeps
	m := len(t.deps)
	J := newMatrix(m, n)
	ybar := make([]float64, m)
	for i := 0; i < m; i++ {
		ybar[i] = 1
		_, xbar, err := FirstOrderReverse(t, x, ybar)
		ybar[i] = 0
		if err != nil {
			return nil, err
		}
		J[i] = xbar
	}
	return J, nil
}

// newMatrix allocates a rows×cols dense matrix as a slice of rows.
func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
