package signalfilter

import (
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
)

// Order distinguishes the linear differentiator (velocity) from the
// quadratic one (acceleration).
type Order int

const (
	Linear    Order = 1
	Quadratic Order = 2
)

type sample struct {
	t float32
	x vec.Vector
}

// Adaptive is the adaptive-window polynomial differentiator: it fits the
// lowest-order polynomial of the configured order whose per-element
// residual on the current window stays below threshold, and reports the
// derivative of that polynomial at the latest timestamp. The window is
// the minimum of the per-element admissible windows: a candidate size is
// accepted only when every element's residual clears the threshold at
// that size.
type Adaptive struct {
	order     Order
	maxWindow int
	threshold float32

	dim     int
	history []sample
	window  int

	derivative vec.Vector
}

// NewAdaptive builds a filter of the given order, dimension, maximum
// window length and residual threshold.
func NewAdaptive(order Order, dim, maxWindow int, threshold float32) *Adaptive {
	return &Adaptive{
		order:      order,
		maxWindow:  maxWindow,
		threshold:  threshold,
		dim:        dim,
		derivative: vec.New(dim),
	}
}

// Reset discards history, resizing to dim.
func (a *Adaptive) Reset(dim int) {
	a.dim = dim
	a.history = nil
	a.window = 0
	a.derivative = vec.New(dim)
}

// SetWindow changes the maximum window length, preserving history; the
// next sample re-evaluates eligibility against the new bound.
func (a *Adaptive) SetWindow(maxWindow int) {
	a.maxWindow = maxWindow
	if a.window > maxWindow {
		a.window = maxWindow
	}
	if len(a.history) > maxWindow {
		a.history = a.history[len(a.history)-maxWindow:]
	}
}

// SetThreshold changes the residual threshold, preserving history.
func (a *Adaptive) SetThreshold(threshold float32) {
	a.threshold = threshold
}

// WindowLength reports the current fit window length (0 before the first
// sample, otherwise between 1 and MaxWindow inclusive).
func (a *Adaptive) WindowLength() int {
	return a.window
}

// Feed inserts (t, x) and re-evaluates the fit window, returning the
// updated derivative estimate (internally owned, valid until the next
// Feed call).
func (a *Adaptive) Feed(t float32, x vec.Vector) vec.Vector {
	entry := sample{t: t, x: x.Clone()}
	a.history = append(a.history, entry)
	if len(a.history) > a.maxWindow {
		a.history = a.history[len(a.history)-a.maxWindow:]
	}

	minFit := int(a.order) + 1
	if len(a.history) < minFit {
		a.window = len(a.history)
		return a.derivative
	}

	w := a.window
	if w < minFit {
		w = minFit
	}
	if w > len(a.history) {
		w = len(a.history)
	}

	// Grow while admissible.
	for w < len(a.history) && w < a.maxWindow {
		if a.residualWithin(w + 1) {
			w++
		} else {
			break
		}
	}
	// Shrink from the oldest end while the current window violates the
	// threshold.
	for w > minFit && !a.residualWithin(w) {
		w--
	}

	a.window = w
	a.evaluate(w)
	return a.derivative
}

// residualWithin reports whether every element's fit residual over the
// most recent w samples stays within threshold.
func (a *Adaptive) residualWithin(w int) bool {
	coeffs, ok := a.fit(w)
	if !ok {
		return false
	}
	window := a.history[len(a.history)-w:]
	latest := window[len(window)-1].t
	for elem := 0; elem < a.dim; elem++ {
		for _, s := range window {
			dt := s.t - latest
			predicted := polyEval(coeffs[elem], dt)
			residual := predicted - s.x[elem]
			if residual < 0 {
				residual = -residual
			}
			if residual > a.threshold {
				return false
			}
		}
	}
	return true
}

// evaluate fits the window of length w and stores the derivative at the
// latest timestamp (dt=0 after centering, so the derivative is simply the
// order-1 coefficient).
func (a *Adaptive) evaluate(w int) {
	coeffs, ok := a.fit(w)
	if !ok {
		for i := range a.derivative {
			a.derivative[i] = 0
		}
		return
	}
	for elem := 0; elem < a.dim; elem++ {
		a.derivative[elem] = coeffs[elem][1]
	}
}

// fit solves the per-element weighted normal equations for a polynomial
// of degree a.order over the most recent w history samples, with time
// centered on the latest sample so the derivative there is a direct
// coefficient read. coeffs[elem] has order+1 entries, lowest degree
// first.
func (a *Adaptive) fit(w int) (coeffs [][]float32, ok bool) {
	if w > len(a.history) {
		return nil, false
	}
	window := a.history[len(a.history)-w:]
	latest := window[len(window)-1].t
	degree := int(a.order)
	k := degree + 1

	phi := mat.New(w, k)
	for i, s := range window {
		dt := s.t - latest
		p := float32(1)
		for c := 0; c < k; c++ {
			phi[i][c] = p
			p *= dt
		}
	}

	phiT := mat.New(k, w)
	phiT.Transpose(phi)

	gram := mat.New(k, k)
	gram.Mul(phiT, phi)

	coeffs = make([][]float32, a.dim)
	for elem := 0; elem < a.dim; elem++ {
		y := make([]float32, w)
		for i, s := range window {
			y[i] = s.x[elem]
		}
		b := make([]float32, k)
		phiT.MulVec(vec.Vector(y), vec.Vector(b))

		x := make([]float32, k)
		if err := gram.CholeskySolve(vec.Vector(b), vec.Vector(x)); err != nil {
			return nil, false
		}
		coeffs[elem] = x
	}
	return coeffs, true
}

func polyEval(coeffs []float32, dt float32) float32 {
	var sum float32
	p := float32(1)
	for _, c := range coeffs {
		sum += c * p
		p *= dt
	}
	return sum
}
