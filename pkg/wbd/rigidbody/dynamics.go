package rigidbody

import (
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// linkMotion is the per-link kinematic state of one recursive
// Newton-Euler forward pass, all expressed in the world frame.
type linkMotion struct {
	w, alpha vec.Vector3D // angular velocity/acceleration
	v, a     vec.Vector3D // link-origin linear velocity/acceleration
	aCom     vec.Vector3D // COM linear acceleration
	rCom     vec.Vector3D // world position of the COM
	anchor   vec.Vector3D // world position of the joint connecting this link to its parent (base origin for the root)
}

// kinematicPass runs the forward Newton-Euler sweep: for every link, its
// angular/linear velocity and acceleration, and its center-of-mass
// acceleration, built up from its parent's motion plus the joint
// connecting them. External wrenches applied at a link's own COM are
// treated as acting with no additional moment arm (§9 dynamics
// simplification: sensor/contact wrenches are resolved to the nearest
// link COM upstream of this package, not here).
func (m *Model) kinematicPass(f *frames, q, qdot, qddot vec.Vector, baseTwist, baseAccel vec.Vector) []linkMotion {
	motion := make([]linkMotion, len(m.links))
	for i, link := range m.links {
		if link.Parent < 0 {
			motion[i].w = vec.Vector3D{baseTwist[3], baseTwist[4], baseTwist[5]}
			motion[i].alpha = vec.Vector3D{baseAccel[3], baseAccel[4], baseAccel[5]}
			motion[i].v = vec.Vector3D{baseTwist[0], baseTwist[1], baseTwist[2]}
			motion[i].a = vec.Vector3D{baseAccel[0], baseAccel[1], baseAccel[2]}
			motion[i].anchor = translation(&f.h[i])
		} else {
			p := link.Parent
			joint := m.joints[link.Joint]
			g, _ := m.jointGlobal.LocalToGlobal(types.JointId{BodyPart: joint.BodyPart, LocalIndex: joint.LocalIndex})
			qi, qdi, qddi := q[g], qdot[g], qddot[g]

			offsetWorld := mat.Matrix4x4{}
			offsetWorld.Mul(f.h[p], joint.Offset)
			axisWorld := rotate(&offsetWorld, joint.Axis)
			motion[i].anchor = translation(&offsetWorld)

			posI := translation(&f.h[i])
			posP := translation(&f.h[p])
			r := posI.Clone().Sub(posP)
			wp, ap := motion[p].w, motion[p].alpha
			vp, accp := motion[p].v, motion[p].a

			switch joint.Type {
			case types.Prismatic:
				motion[i].w = wp
				motion[i].alpha = ap
				jointVel := vec.Vector3D{axisWorld[0] * qdi, axisWorld[1] * qdi, axisWorld[2] * qdi}
				motion[i].v = *vp.Clone().Add(*wp.Clone().Cross(*r)).Add(jointVel)
				coriolis := wp.Clone().Cross(jointVel)
				jointAcc := vec.Vector3D{axisWorld[0] * qddi, axisWorld[1] * qddi, axisWorld[2] * qddi}
				centrip := wp.Clone().Cross(*wp.Clone().Cross(*r))
				tang := ap.Clone().Cross(*r)
				motion[i].a = *accp.Clone().Add(*tang).Add(*centrip).Add(*coriolis.MulC(2)).Add(jointAcc)
			default: // Revolute
				jointOmega := vec.Vector3D{axisWorld[0] * qdi, axisWorld[1] * qdi, axisWorld[2] * qdi}
				motion[i].w = *wp.Clone().Add(jointOmega)
				jointAlpha := vec.Vector3D{axisWorld[0] * qddi, axisWorld[1] * qddi, axisWorld[2] * qddi}
				motion[i].alpha = *ap.Clone().Add(jointAlpha).Add(*wp.Clone().Cross(jointOmega))
				motion[i].v = *vp.Clone().Add(*wp.Clone().Cross(*r))
				centrip := wp.Clone().Cross(*wp.Clone().Cross(*r))
				tang := ap.Clone().Cross(*r)
				motion[i].a = *accp.Clone().Add(*tang).Add(*centrip)
			}
		}

		rLinkToCom := rotate(&f.h[i], link.COM)
		linkOrigin := translation(&f.h[i])
		motion[i].rCom = *linkOrigin.Clone().Add(rLinkToCom)
		armComFromOrigin := rLinkToCom
		centrip := motion[i].w.Clone().Cross(*motion[i].w.Clone().Cross(armComFromOrigin))
		tang := motion[i].alpha.Clone().Cross(armComFromOrigin)
		motion[i].aCom = *motion[i].a.Clone().Add(*tang).Add(*centrip)
	}
	return motion
}

// childrenOf groups links by parent index.
func (m *Model) childrenOf() [][]int {
	children := make([][]int, len(m.links))
	for i, link := range m.links {
		if link.Parent >= 0 {
			children[link.Parent] = append(children[link.Parent], i)
		}
	}
	return children
}

// InverseDynamics computes the generalized force vector (6 base wrench
// components followed by N joint torques, in that order) consistent with
// the supplied motion, via a world-frame recursive Newton-Euler sweep:
// forward pass for velocities/accelerations, backward pass accumulating
// inertial, gravitational and external (F/T, contact) forces from the
// leaves to the root.
func (m *Model) InverseDynamics(q, qdot, qddot vec.Vector, baseTwist, baseAccel vec.Vector) (vec.Vector, error) {
	m.Mu.RLock()
	gravity := m.gravityVec
	m.Mu.RUnlock()
	return m.inverseDynamics(q, qdot, qddot, baseTwist, baseAccel, gravity)
}

// inverseDynamics is InverseDynamics' kernel, parametrized on gravity so
// ComputeMassMatrix can run gravity-free RNEA passes without mutating
// shared model state.
func (m *Model) inverseDynamics(q, qdot, qddot vec.Vector, baseTwist, baseAccel vec.Vector, gravity vec.Vector3D) (vec.Vector, error) {
	eff, err := m.effectiveQ(q)
	if err != nil {
		return nil, err
	}
	qdotEff := m.maskInactive(qdot)
	qddotEff := m.maskInactive(qddot)

	m.Mu.RLock()
	hWB := m.hWB
	ft := make(map[int]vec.Vector, len(m.ftByLink))
	for k, v := range m.ftByLink {
		ft[k] = v
	}
	m.Mu.RUnlock()

	f := m.computeFrames(eff, hWB)
	motion := m.kinematicPass(f, eff, qdotEff, qddotEff, baseTwist, baseAccel)
	children := m.childrenOf()

	force := make([]vec.Vector3D, len(m.links))
	torque := make([]vec.Vector3D, len(m.links))

	for i := len(m.links) - 1; i >= 0; i-- {
		link := m.links[i]
		var rot mat.Matrix3x3
		f.h[i].Rotation(&rot)
		iWorld := mat.Matrix3x3{}
		tmp := mat.Matrix3x3{}
		tmp.Mul(rot, link.Inertia)
		var rotT mat.Matrix3x3
		rotT.Transpose(rot)
		iWorld.Mul(tmp, rotT)

		iw := vec.New(3)
		iWorld.MulVec(motion[i].w, iw)
		spin := motion[i].w.Clone().Cross(vec.Vector3D{iw[0], iw[1], iw[2]})

		iAlpha := vec.New(3)
		iWorld.MulVec(motion[i].alpha, iAlpha)

		// fi, ti are the inertial force/moment link i needs to realise its
		// motion, with ti measured about the link's own joint anchor (not
		// its COM) so it can be projected directly onto the joint axis
		// below; the COM-referenced spin/alpha terms are transferred to
		// the anchor via (rCom - anchor) x Finertial.
		fi := motion[i].aCom.Clone().MulC(link.Mass).Sub(*gravity.Clone().MulC(link.Mass))
		ti := vec.Vector3D{iAlpha[0], iAlpha[1], iAlpha[2]}
		ti.Add(*spin)
		comArm := motion[i].rCom.Clone().Sub(motion[i].anchor)
		ti.Add(*comArm.Clone().Cross(*fi))

		if w, ok := ft[i]; ok {
			fi.Sub(vec.Vector3D{w[0], w[1], w[2]})
			ti.Sub(vec.Vector3D{w[3], w[4], w[5]})
		}

		for _, c := range children[i] {
			fi.Add(force[c])
			arm := motion[c].anchor.Clone().Sub(motion[i].anchor)
			moment := arm.Clone().Cross(force[c])
			ti.Add(torque[c]).Add(*moment)
		}

		force[i] = *fi
		torque[i] = ti
	}

	tau := vec.New(6 + len(eff))
	for i := range m.links {
		if m.links[i].Parent < 0 {
			tau[0], tau[1], tau[2] = force[i][0], force[i][1], force[i][2]
			tau[3], tau[4], tau[5] = torque[i][0], torque[i][1], torque[i][2]
			continue
		}
		joint := m.joints[m.links[i].Joint]
		g, _ := m.jointGlobal.LocalToGlobal(types.JointId{BodyPart: joint.BodyPart, LocalIndex: joint.LocalIndex})
		offsetWorld := mat.Matrix4x4{}
		offsetWorld.Mul(f.h[m.links[i].Parent], joint.Offset)
		axisWorld := rotate(&offsetWorld, joint.Axis)
		if joint.Type == types.Prismatic {
			tau[6+g] = axisWorld.Dot(force[i])
		} else {
			tau[6+g] = axisWorld.Dot(torque[i])
		}
	}
	return tau, nil
}

// maskInactive zeroes the entries of v corresponding to inactive joints;
// velocity and acceleration are never pinned to a nonzero value, unlike
// position.
func (m *Model) maskInactive(v vec.Vector) vec.Vector {
	out := v.Clone()
	for g := range out {
		if !m.state[g].active {
			out[g] = 0
		}
	}
	return out
}

// ComputeGeneralizedBiasForces returns C(q,qdot)*qdot + G(q): the
// generalized force inverse dynamics would report at zero joint and base
// acceleration, isolating the velocity-dependent and gravitational
// terms from the inertial ones.
func (m *Model) ComputeGeneralizedBiasForces(q, qdot vec.Vector, baseTwist vec.Vector) (vec.Vector, error) {
	zeroQddot := vec.New(len(qdot))
	zeroBaseAccel := vec.New(6)
	return m.InverseDynamics(q, qdot, zeroQddot, baseTwist, zeroBaseAccel)
}

// ComputeMassMatrix returns the (6+N)x(6+N) generalized mass matrix via
// RNEA's affine-in-acceleration structure: column i is InverseDynamics
// evaluated at the i-th unit generalized acceleration (with velocity and
// gravity held at the value that makes the bias term vanish), minus the
// same call at zero acceleration. The result is symmetrized to cancel
// the asymmetric numerical noise that two independent RNEA passes per
// column introduce.
func (m *Model) ComputeMassMatrix(q vec.Vector) (mat.Matrix, error) {
	n := len(q)
	dim := 6 + n
	zero := vec.New(n)
	zeroBase := vec.New(6)
	noGravity := vec.Vector3D{}

	base, err := m.inverseDynamics(q, zero, zero, zeroBase, zeroBase, noGravity)
	if err != nil {
		return nil, err
	}

	mm := mat.New(dim, dim)
	for col := 0; col < dim; col++ {
		qddot := vec.New(n)
		baseAccel := vec.New(6)
		if col < 6 {
			baseAccel[col] = 1
		} else {
			qddot[col-6] = 1
		}
		tau, err := m.inverseDynamics(q, zero, qddot, zeroBase, baseAccel, noGravity)
		if err != nil {
			return nil, err
		}
		for row := 0; row < dim; row++ {
			mm[row][col] = tau[row] - base[row]
		}
	}

	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			avg := (mm[i][j] + mm[j][i]) / 2
			mm[i][j] = avg
			mm[j][i] = avg
		}
	}
	return mm, nil
}
