// Package optimize fits the independents of a fixed tape to minimize
// the sum of squares of its dependents, by classical-momentum
// gradient descent over repeated reverse sweeps. It is a pure
// consumer of package ad: it never reaches into tape internals,
// only ad.ZeroOrder and ad.FirstOrderReverse.
package optimize

import (
	"github.com/golang/glog"

	"github.com/go-ad/tape/ad"
)

// Config holds the optimizer's tuning parameters.
type Config struct {
	Rate     float64 // initial learning rate
	Decay    float64 // multiplicative learning-rate decay per iteration
	Momentum float64 // velocity retention factor, in [0, 1)
	NIter    int     // number of iterations to run
}

// DefaultConfig returns reasonable defaults for a well-scaled
// problem (rate 0.1, decay 0.998, momentum 0.9).
func DefaultConfig() Config {
	return Config{Rate: 0.1, Decay: 0.998, Momentum: 0.9, NIter: 1000}
}

// Result is the outcome of a Fit run.
type Result struct {
	X     []float64 // final independents
	Loss  float64   // sum of squared dependents at X
	Iters int       // iterations actually run
}

// Fit descends the sum of squared dependents of t, starting at x0,
// for cfg.NIter iterations, and returns the final point. t may
// contain Abs, Min and Max nodes; each switching point is
// differentiated on its current branch on every step, as
// ad.FirstOrderReverse does everywhere.
func Fit(t *ad.Tape, x0 []float64, cfg Config) (*Result, error) {
	x := append([]float64(nil), x0...)
	velocity := make([]float64, len(x))
	rate := cfg.Rate

	var loss float64
	iters := 0
	for iter := 0; iter < cfg.NIter; iter++ {
		y, err := ad.ZeroOrder(t, x)
		if err != nil {
			return nil, err
		}
		ybar := make([]float64, len(y))
		loss = 0
		for i, yi := range y {
			loss += yi * yi
			ybar[i] = 2 * yi
		}
		_, xbar, err := ad.FirstOrderReverse(t, x, ybar)
		if err != nil {
			return nil, err
		}
		for j := range x {
			velocity[j] = cfg.Momentum*velocity[j] - rate*xbar[j]
			x[j] += velocity[j]
		}
		rate *= cfg.Decay
		iters++
		if glog.V(2) {
			glog.Infof("optimize: iter=%d loss=%g rate=%g", iter, loss, rate)
		}
	}
	y, err := ad.ZeroOrder(t, x)
	if err != nil {
		return nil, err
	}
	loss = 0
	for _, yi := range y {
		loss += yi * yi
	}
	glog.V(1).Infof("optimize: finished after %d iterations, loss=%g", iters, loss)
	return &Result{X: x, Loss: loss, Iters: iters}, nil
}
