package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/vec"
)

// mulQuat is the Hamilton product a*b.
func mulQuat(a, b vec.Quaternion) vec.Quaternion {
	return vec.Quaternion{
		a[0]*b[0] - a[1]*b[1] - a[2]*b[2] - a[3]*b[3],
		a[0]*b[1] + a[1]*b[0] + a[2]*b[3] - a[3]*b[2],
		a[0]*b[2] - a[1]*b[3] + a[2]*b[0] + a[3]*b[1],
		a[0]*b[3] + a[1]*b[2] - a[2]*b[1] + a[3]*b[0],
	}
}

func conjQuat(q vec.Quaternion) vec.Quaternion {
	return vec.Quaternion{q[0], -q[1], -q[2], -q[3]}
}

// orientationError returns the small-angle axis-angle error driving current
// toward desired: 2*sign(w)*xyz of desired ⊗ conj(current).
func orientationError(current, desired vec.Quaternion) vec.Vector3D {
	current, desired = normalizeQuaternion(current), normalizeQuaternion(desired)
	e := mulQuat(desired, conjQuat(current))
	sign := float32(1)
	if e[0] < 0 {
		sign = -1
	}
	return vec.Vector3D{2 * sign * e[1], 2 * sign * e[2], 2 * sign * e[3]}
}

const epsilonQuat = 1e-6

func normalizeQuaternion(q vec.Quaternion) vec.Quaternion {
	mag := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if mag <= epsilonQuat {
		return vec.Quaternion{1, 0, 0, 0}
	}
	inv := 1 / mag
	return vec.Quaternion{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// slerp interpolates between q0 and q1 at s in [0, 1], taking the short arc
// (negating q1 when the dot product is negative).
func slerp(q0, q1 vec.Quaternion, s float32) vec.Quaternion {
	q0, q1 = normalizeQuaternion(q0), normalizeQuaternion(q1)
	dot := q0[0]*q1[0] + q0[1]*q1[1] + q0[2]*q1[2] + q0[3]*q1[3]
	if dot < 0 {
		q1 = vec.Quaternion{-q1[0], -q1[1], -q1[2], -q1[3]}
		dot = -dot
	}
	if dot > 1-epsilonQuat {
		return normalizeQuaternion(vec.Quaternion{
			q0[0] + (q1[0]-q0[0])*s,
			q0[1] + (q1[1]-q0[1])*s,
			q0[2] + (q1[2]-q0[2])*s,
			q0[3] + (q1[3]-q0[3])*s,
		})
	}
	theta0 := math32.Acos(dot)
	theta := theta0 * s
	sinTheta0 := math32.Sin(theta0)
	w0 := math32.Sin(theta0-theta) / sinTheta0
	w1 := math32.Sin(theta) / sinTheta0
	return vec.Quaternion{
		w0*q0[0] + w1*q1[0],
		w0*q0[1] + w1*q1[1],
		w0*q0[2] + w1*q1[2],
		w0*q0[3] + w1*q1[3],
	}
}

// quatGenerator is the orientation half of the swing-foot pose generator: a
// minimum-jerk scalar progress s(t) (zero velocity and acceleration at both
// ends) drives a slerp between the seeded and target orientation.
type quatGenerator struct {
	progress quinticAxis
	q0, qf   vec.Quaternion
}

func newQuatGenerator(q0, qf vec.Quaternion, duration float32) *quatGenerator {
	return &quatGenerator{
		progress: newQuinticAxis(0, 0, 1, duration),
		q0:       normalizeQuaternion(q0),
		qf:       normalizeQuaternion(qf),
	}
}

func (g *quatGenerator) seed(q0, qf vec.Quaternion, duration float32) {
	*g = *newQuatGenerator(q0, qf, duration)
}

// step advances the progress scalar by dt and returns the interpolated
// orientation at the new progress.
func (g *quatGenerator) step(dt float32) vec.Quaternion {
	s, _ := g.progress.step(dt)
	return slerp(g.q0, g.qf, s)
}
