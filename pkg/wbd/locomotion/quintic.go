package locomotion

import "github.com/icub-wbd/wbcore/pkg/vec"

// quinticAxis is a scalar minimum-jerk trajectory: a degree-5 polynomial in
// t matching (p0, v0, a0=0) at t=0 and (pf, vf=0, af=0) at t=duration.
type quinticAxis struct {
	p0, v0     float32
	c3, c4, c5 float32
	duration   float32
	elapsed    float32
}

func newQuinticAxis(p0, v0, pf, duration float32) quinticAxis {
	if duration <= 0 {
		duration = 1e-3
	}
	t, t2, t3 := duration, duration*duration, duration*duration*duration
	t4, t5 := t2*t2, t2*t3
	return quinticAxis{
		p0: p0, v0: v0,
		c3: (10*(pf-p0) - 6*v0*t) / t3,
		c4: (15*(p0-pf) + 8*v0*t) / t4,
		c5: (6*(pf-p0) - 3*v0*t) / t5,
		duration: t,
	}
}

// step advances elapsed time by dt, clamped to the trajectory's duration,
// and samples position and velocity there.
func (a *quinticAxis) step(dt float32) (pos, vel float32) {
	a.elapsed += dt
	t := a.elapsed
	if t > a.duration {
		t = a.duration
	}
	t2 := t * t
	t3 := t2 * t
	t4 := t2 * t2
	t5 := t4 * t
	pos = a.p0 + a.v0*t + a.c3*t3 + a.c4*t4 + a.c5*t5
	vel = a.v0 + 3*a.c3*t2 + 4*a.c4*t3 + 5*a.c5*t4
	return
}

// vectorGenerator composes one quinticAxis per dimension, following the
// donor's convention of building vector behavior from small scalar helpers
// rather than a matrix-valued spline.
type vectorGenerator struct {
	axes []quinticAxis
}

func newVectorGenerator(p0, v0, pf vec.Vector, duration float32) *vectorGenerator {
	axes := make([]quinticAxis, len(p0))
	for i := range axes {
		var vi float32
		if i < len(v0) {
			vi = v0[i]
		}
		axes[i] = newQuinticAxis(p0[i], vi, pf[i], duration)
	}
	return &vectorGenerator{axes: axes}
}

func (g *vectorGenerator) seed(p0, v0, pf vec.Vector, duration float32) {
	*g = *newVectorGenerator(p0, v0, pf, duration)
}

func (g *vectorGenerator) step(dt float32) (pos, vel vec.Vector) {
	pos = vec.New(len(g.axes))
	vel = vec.New(len(g.axes))
	for i := range g.axes {
		pos[i], vel[i] = g.axes[i].step(dt)
	}
	return
}
