package rigidbody

import (
	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// frames holds the per-link world transform computed by a single forward
// kinematic pass.
type frames struct {
	h []mat.Matrix4x4
}

// jointMotion returns the homogeneous transform of a joint's own motion
// (rotation about its axis for a revolute joint, translation along its
// axis for a prismatic one) at position qi, expressed in the joint's
// offset frame.
func jointMotion(axis vec.Vector3D, qi float32, kind types.JointType) mat.Matrix4x4 {
	var h mat.Matrix4x4
	if kind == types.Prismatic {
		h.Eye()
		h[0][3] = axis[0] * qi
		h[1][3] = axis[1] * qi
		h[2][3] = axis[2] * qi
		return h
	}
	rot := axisAngle(axis, qi)
	var zero vec.Vector3D
	h.Homogenous(&rot, zero)
	return h
}

// axisAngle builds the rotation matrix for a rotation of angle about a
// unit axis, via Rodrigues' formula. The mat package's Matrix3x3 only
// carries fixed X/Y/Z rotation constructors; RNEA needs rotation about an
// arbitrary joint axis.
func axisAngle(axis vec.Vector3D, angle float32) mat.Matrix3x3 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	t := 1 - c
	x, y, z := axis[0], axis[1], axis[2]
	return mat.Matrix3x3{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}
}

func rotate(h *mat.Matrix4x4, v vec.Vector3D) vec.Vector3D {
	var rot mat.Matrix3x3
	h.Rotation(&rot)
	out := vec.New(3)
	rot.MulVec(v, out)
	return vec.Vector3D{out[0], out[1], out[2]}
}

func translation(h *mat.Matrix4x4) vec.Vector3D {
	var t vec.Vector3D
	h.Translation(&t)
	return t
}

// computeFrames walks the tree in stored (parent-before-child) order,
// composing each link's world transform from its parent's, the joint's
// fixed offset, and the joint's own motion at the given position.
func (m *Model) computeFrames(q vec.Vector, hWB mat.Matrix4x4) *frames {
	f := &frames{h: make([]mat.Matrix4x4, len(m.links))}
	for i, link := range m.links {
		if link.Parent < 0 {
			f.h[i] = hWB
			continue
		}
		joint := m.joints[link.Joint]
		g, _ := m.jointGlobal.LocalToGlobal(types.JointId{BodyPart: joint.BodyPart, LocalIndex: joint.LocalIndex})
		qi := q[g]

		offsetWorld := mat.Matrix4x4{}
		offsetWorld.Mul(f.h[link.Parent], joint.Offset)

		motion := jointMotion(joint.Axis, qi, joint.Type)
		f.h[i] = mat.Matrix4x4{}
		f.h[i].Mul(offsetWorld, motion)
	}
	return f
}

// ComputeH returns the world transform of linkId at joint configuration
// q (q must be sized to the full tree; inactive joints are pinned
// internally).
func (m *Model) ComputeH(linkId int, q vec.Vector) (mat.Matrix4x4, error) {
	if linkId < 0 || linkId >= len(m.links) {
		return mat.Matrix4x4{}, types.ErrUnknownLink
	}
	m.Mu.RLock()
	hWB := m.hWB
	m.Mu.RUnlock()
	eff, err := m.effectiveQ(q)
	if err != nil {
		return mat.Matrix4x4{}, err
	}
	f := m.computeFrames(eff, hWB)
	return f.h[linkId], nil
}

// ComputeBaseRelativeH returns the pose of linkId in the base frame,
// ignoring the model's current H_wb. Used to recover a floating base's
// world pose from a support link assumed fixed on the ground: the caller
// inverts the result and treats it as H_wb directly.
func (m *Model) ComputeBaseRelativeH(linkId int, q vec.Vector) (mat.Matrix4x4, error) {
	if linkId < 0 || linkId >= len(m.links) {
		return mat.Matrix4x4{}, types.ErrUnknownLink
	}
	eff, err := m.effectiveQ(q)
	if err != nil {
		return mat.Matrix4x4{}, err
	}
	var identity mat.Matrix4x4
	identity.Eye()
	f := m.computeFrames(eff, identity)
	return f.h[linkId], nil
}

// ForwardKinematics returns the world position and orientation (as a
// unit quaternion in w-x-y-z order) of linkId.
func (m *Model) ForwardKinematics(linkId int, q vec.Vector) (pos vec.Vector3D, orient vec.Quaternion, err error) {
	h, err := m.ComputeH(linkId, q)
	if err != nil {
		return vec.Vector3D{}, vec.Quaternion{}, err
	}
	pos = translation(&h)
	var rot mat.Matrix3x3
	h.Rotation(&rot)
	quat := rot.Quaternion() // x-y-z-w
	return pos, vec.Quaternion{quat[3], quat[0], quat[1], quat[2]}, nil
}

// ancestorChain returns the path of link indices from the root to
// linkId, inclusive.
func (m *Model) ancestorChain(linkId int) []int {
	var chain []int
	for i := linkId; i >= 0; i = m.links[i].Parent {
		chain = append([]int{i}, chain...)
		if m.links[i].Parent < 0 {
			break
		}
	}
	return chain
}

// ComputeJacobian returns the 6 x (6+N) geometric Jacobian mapping the
// base twist and full joint velocity vector to the linear/angular
// velocity of linkId, expressed in the world frame. Columns for joints
// not on the path from the root to linkId are zero; inactive joints'
// columns are retained (their contribution is zero once their velocity
// is pinned to zero by the caller, but the column itself is still
// geometrically meaningful).
func (m *Model) ComputeJacobian(linkId int, q vec.Vector) (mat.Matrix, error) {
	if linkId < 0 || linkId >= len(m.links) {
		return nil, types.ErrUnknownLink
	}
	eff, err := m.effectiveQ(q)
	if err != nil {
		return nil, err
	}
	m.Mu.RLock()
	hWB := m.hWB
	m.Mu.RUnlock()

	f := m.computeFrames(eff, hWB)
	ee := translation(&f.h[linkId])
	base := translation(&hWB)

	n := len(eff)
	jac := mat.New(6, 6+n)

	// Base linear-velocity columns: identity (world-frame twist).
	jac[0][0], jac[1][1], jac[2][2] = 1, 1, 1
	// Base angular-velocity columns: a unit angular rate about axis k at
	// the base contributes axis_k x (ee - base) to linear velocity and
	// axis_k to angular velocity.
	baseAxes := [3]vec.Vector3D{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	r := ee.Clone().Sub(base)
	for k, axis := range baseAxes {
		cross := axis.Clone().Cross(*r)
		jac[0][3+k] = cross[0]
		jac[1][3+k] = cross[1]
		jac[2][3+k] = cross[2]
		jac[3][3+k] = axis[0]
		jac[4][3+k] = axis[1]
		jac[5][3+k] = axis[2]
	}

	onChain := make(map[int]bool)
	for _, idx := range m.ancestorChain(linkId) {
		onChain[idx] = true
	}

	for i, link := range m.links {
		if link.Parent < 0 || !onChain[i] {
			continue
		}
		joint := m.joints[link.Joint]
		g, _ := m.jointGlobal.LocalToGlobal(types.JointId{BodyPart: joint.BodyPart, LocalIndex: joint.LocalIndex})

		offsetWorld := mat.Matrix4x4{}
		offsetWorld.Mul(f.h[link.Parent], joint.Offset)
		axisWorld := rotate(&offsetWorld, joint.Axis)
		jointPos := translation(&offsetWorld)

		col := mat.CalculateJacobianColumn(jointPos, axisWorld, ee, joint.Type == types.Revolute)
		jac[0][6+g] = col.Linear[0]
		jac[1][6+g] = col.Linear[1]
		jac[2][6+g] = col.Linear[2]
		jac[3][6+g] = col.Angular[0]
		jac[4][6+g] = col.Angular[1]
		jac[5][6+g] = col.Angular[2]
	}

	return jac, nil
}

// ComputeDJdq returns d/dt(J(q)) * v for linkId, approximated by a
// forward finite difference of the Jacobian-velocity product along the
// current generalized velocity: the configuration (base pose and q) is
// advanced by a small dt using the supplied twist and qdot, the Jacobian
// is recomputed there, and the derivative is the forward difference of
// J*v at the two configurations divided by dt.
func (m *Model) ComputeDJdq(linkId int, q, qdot vec.Vector, baseTwist vec.Vector) (vec.Vector, error) {
	const dt = float32(1e-4)

	j0, err := m.ComputeJacobian(linkId, q)
	if err != nil {
		return nil, err
	}
	full0 := vec.New(6 + len(qdot))
	copy(full0, baseTwist)
	copy(full0[6:], qdot)
	v0 := vec.New(6)
	j0.MulVec(full0, v0)

	m.Mu.RLock()
	hWB := m.hWB
	m.Mu.RUnlock()

	qEps := q.Clone()
	for i := range qEps {
		qEps[i] += dt * qdot[i]
	}
	hEps := advancePose(hWB, baseTwist, dt)

	eff, err := m.effectiveQ(qEps)
	if err != nil {
		return nil, err
	}
	fEps := m.computeFrames(eff, hEps)
	jEps := jacobianAt(m, linkId, fEps, hEps, eff)
	v1 := vec.New(6)
	jEps.MulVec(full0, v1)

	out := vec.New(6)
	for i := range out {
		out[i] = (v1[i] - v0[i]) / dt
	}
	return out, nil
}

// advancePose integrates a constant base twist forward by dt using a
// small-angle rotation update; adequate for the short horizon used by
// ComputeDJdq's finite difference.
func advancePose(h mat.Matrix4x4, twist vec.Vector, dt float32) mat.Matrix4x4 {
	lin := vec.Vector3D{twist[0], twist[1], twist[2]}
	ang := vec.Vector3D{twist[3], twist[4], twist[5]}
	angle := ang.Magnitude() * dt
	var axis vec.Vector3D
	if angle > 1e-9 {
		axis = vec.Vector3D{ang[0] / ang.Magnitude(), ang[1] / ang.Magnitude(), ang[2] / ang.Magnitude()}
	} else {
		axis = vec.Vector3D{0, 0, 1}
		angle = 0
	}
	dRot := axisAngle(axis, angle)

	var rot mat.Matrix3x3
	h.Rotation(&rot)
	var newRot mat.Matrix3x3
	newRot.Mul(dRot, rot)

	pos := translation(&h)
	newPos := pos.Clone().MulCAdd(dt, lin)

	var out mat.Matrix4x4
	out.Homogenous(&newRot, *newPos)
	return out
}

// jacobianAt is ComputeJacobian's computation kernel parametrized on an
// already-computed frame set, used internally by ComputeDJdq to avoid
// recomputing frames twice.
func jacobianAt(m *Model, linkId int, f *frames, hWB mat.Matrix4x4, eff vec.Vector) mat.Matrix {
	ee := translation(&f.h[linkId])
	base := translation(&hWB)
	n := len(eff)
	jac := mat.New(6, 6+n)
	jac[0][0], jac[1][1], jac[2][2] = 1, 1, 1
	baseAxes := [3]vec.Vector3D{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	r := ee.Clone().Sub(base)
	for k, axis := range baseAxes {
		cross := axis.Clone().Cross(*r)
		jac[0][3+k] = cross[0]
		jac[1][3+k] = cross[1]
		jac[2][3+k] = cross[2]
		jac[3][3+k] = axis[0]
		jac[4][3+k] = axis[1]
		jac[5][3+k] = axis[2]
	}
	onChain := make(map[int]bool)
	for _, idx := range m.ancestorChain(linkId) {
		onChain[idx] = true
	}
	for i, link := range m.links {
		if link.Parent < 0 || !onChain[i] {
			continue
		}
		joint := m.joints[link.Joint]
		g, _ := m.jointGlobal.LocalToGlobal(types.JointId{BodyPart: joint.BodyPart, LocalIndex: joint.LocalIndex})
		offsetWorld := mat.Matrix4x4{}
		offsetWorld.Mul(f.h[link.Parent], joint.Offset)
		axisWorld := rotate(&offsetWorld, joint.Axis)
		jointPos := translation(&offsetWorld)
		col := mat.CalculateJacobianColumn(jointPos, axisWorld, ee, joint.Type == types.Revolute)
		jac[0][6+g] = col.Linear[0]
		jac[1][6+g] = col.Linear[1]
		jac[2][6+g] = col.Linear[2]
		jac[3][6+g] = col.Angular[0]
		jac[4][6+g] = col.Angular[1]
		jac[5][6+g] = col.Angular[2]
	}
	return jac
}
