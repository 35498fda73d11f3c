// Package rlls implements online (recursive) least-squares estimation of
// a linear model y = phi . x, maintaining a Cholesky factor of the
// regressor's Gram matrix instead of storing samples, so feedSample and
// solve are both O(n^2) regardless of how many samples have been seen.
package rlls

import (
	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// ridge is a small diagonal regularization applied to the Gram matrix at
// construction so the Cholesky factor is well defined before the domain
// has collected n independent samples.
const ridge = 1e-9

// Estimator performs recursive least-squares on x in Phi x ~= Y, where
// Phi's rows arrive one at a time. It stores the lower-triangular
// Cholesky factor L of A = Phi^T Phi (so A = L L^T) and the accumulator
// b = Phi^T Y, and updates both with a rank-1 update per fed sample.
type Estimator struct {
	n int
	l [][]float32 // lower triangular, row-major, n x n
	b vec.Vector

	x           vec.Vector // last solved estimate
	sampleCount int
}

// New builds an estimator for a domain of size n.
func New(n int) *Estimator {
	e := &Estimator{}
	e.Resize(n)
	return e
}

// Resize discards all accumulated data and re-initializes the domain to
// size n.
func (e *Estimator) Resize(n int) {
	e.n = n
	e.l = make([][]float32, n)
	for i := range e.l {
		e.l[i] = make([]float32, n)
		e.l[i][i] = math32.Sqrt(ridge)
	}
	e.b = vec.New(n)
	e.x = vec.New(n)
	e.sampleCount = 0
}

// DomainSize returns n.
func (e *Estimator) DomainSize() int {
	return e.n
}

// FeedSample incorporates one (phi, y) observation: a rank-1 update of
// the Cholesky factor for A += phi*phi^T, and b += phi*y. Returns
// ErrIllDimensioned if len(phi) != n.
func (e *Estimator) FeedSample(phi vec.Vector, y float32) error {
	if len(phi) != e.n {
		return types.ErrIllDimensioned
	}
	x := phi.Clone()
	for k := 0; k < e.n; k++ {
		lkk := e.l[k][k]
		r := math32.Sqrt(lkk*lkk + x[k]*x[k])
		c := r / lkk
		s := x[k] / lkk
		e.l[k][k] = r
		for i := k + 1; i < e.n; i++ {
			lik := (e.l[i][k] + s*x[i]) / c
			x[i] = (x[i] - s*e.l[i][k]) / c
			e.l[i][k] = lik
		}
	}
	for i := 0; i < e.n; i++ {
		e.b[i] += phi[i] * y
	}
	e.sampleCount++
	return nil
}

// Solve updates the cached parameter estimate by forward/backward
// substitution against the maintained factor (L y = b, then L^T x = y)
// and returns it. The returned slice is owned by the estimator; callers
// that need to retain it should copy.
func (e *Estimator) Solve() vec.Vector {
	y := make([]float32, e.n)
	for i := 0; i < e.n; i++ {
		sum := e.b[i]
		for k := 0; k < i; k++ {
			sum -= e.l[i][k] * y[k]
		}
		y[i] = sum / e.l[i][i]
	}
	for i := e.n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < e.n; k++ {
			sum -= e.l[k][i] * e.x[k] // L^T[i][k] = L[k][i]
		}
		e.x[i] = sum / e.l[i][i]
	}
	return e.x
}

// CurrentEstimate returns the parameter estimate from the last Solve call
// without recomputing it.
func (e *Estimator) CurrentEstimate() vec.Vector {
	return e.x
}

// Predict returns phi . x_hat using the current cached estimate. Returns
// ErrIllDimensioned if len(phi) != n.
func (e *Estimator) Predict(phi vec.Vector) (float32, error) {
	if len(phi) != e.n {
		return 0, types.ErrIllDimensioned
	}
	return phi.Dot(e.x), nil
}

// SampleCount returns the number of samples fed since the last Resize.
func (e *Estimator) SampleCount() int {
	return e.sampleCount
}
