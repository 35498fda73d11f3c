// Package signalfilter implements the two filter families the estimator
// runs per tick: an adaptive-window polynomial differentiator (velocity,
// acceleration) and a first-order low-pass (IMU channels, FT offsets,
// joint torque before publication).
package signalfilter

import (
	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/vec"
)

// LowPass is a single-pole IIR filter: y_k = alpha*y_{k-1} + (1-alpha)*x_k,
// run independently over each vector element.
type LowPass struct {
	dim    int
	cutoff float32
	period float32
	alpha  float32
	y      vec.Vector
	seeded bool
}

// NewLowPass builds a filter of the given dimension with cutoff frequency
// cutoffHz and sample period periodSec. The output reads zero until the
// first Update, which seeds it with that input.
func NewLowPass(dim int, cutoffHz, periodSec float32) *LowPass {
	f := &LowPass{dim: dim, cutoff: cutoffHz, period: periodSec}
	f.alpha = alphaFromCutoff(cutoffHz, periodSec)
	f.y = vec.New(dim)
	return f
}

func alphaFromCutoff(cutoffHz, periodSec float32) float32 {
	if cutoffHz <= 0 {
		return 1 // infinite smoothing: output never moves
	}
	return math32.Exp(-2 * math32.Pi * cutoffHz * periodSec)
}

// Reset discards state, resizing to dim; the output reads zero until the
// next Update seeds it.
func (f *LowPass) Reset(dim int) {
	f.dim = dim
	f.y = vec.New(dim)
	f.seeded = false
}

// Resize changes the dimension, resetting state to the last output value
// replicated across the new size (or zero if never seeded).
func (f *LowPass) Resize(dim int) {
	last := float32(0)
	if f.seeded && len(f.y) > 0 {
		last = f.y[0]
	}
	f.dim = dim
	f.y = vec.New(dim)
	if f.seeded {
		for i := range f.y {
			f.y[i] = last
		}
	}
}

// SetCutoff recomputes alpha, preserving the last output.
func (f *LowPass) SetCutoff(cutoffHz float32) {
	f.cutoff = cutoffHz
	f.alpha = alphaFromCutoff(cutoffHz, f.period)
}

// Seed initializes the output to x without filtering, used the first time
// a channel is observed.
func (f *LowPass) Seed(x vec.Vector) {
	copy(f.y, x)
	f.seeded = true
}

// Update runs one step of the filter and returns the (internally owned)
// output vector.
func (f *LowPass) Update(x vec.Vector) vec.Vector {
	if !f.seeded {
		f.Seed(x)
		return f.y
	}
	for i := range f.y {
		f.y[i] = f.alpha*f.y[i] + (1-f.alpha)*x[i]
	}
	return f.y
}

// Output returns the last computed output without advancing the filter.
func (f *LowPass) Output() vec.Vector {
	return f.y
}

// Dim returns the filter's current dimension.
func (f *LowPass) Dim() int {
	return f.dim
}
