// Package rigidbody implements the floating-base kinematics/dynamics
// façade: forward kinematics, Jacobians, mass matrix, generalised bias
// forces and inverse dynamics over a kinematic tree with a dynamically
// selectable active-joint subset.
package rigidbody

import (
	"sync"

	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// gravity is the standard gravity magnitude used when no configuration
// overrides it.
const gravity = float32(9.81)

// jointState tracks the active-subset state machine for one joint (the
// Model.state slice is indexed by global joint index): whether it is
// currently ACTIVE, the pinned value used while INACTIVE, and whether a
// position has ever been set for it.
type jointState struct {
	active      bool
	pinnedValue float32
	everSet     bool
}

// Model is the concrete RigidBodyModel. Mu serialises mutation (addJoint,
// removeJoint, SetInertial/SetAng/... ) against concurrent dynamics
// queries from other components, per the concurrency model's model-mutex
// split.
type Model struct {
	Mu sync.RWMutex

	links  []types.Link
	joints []types.Joint
	linkByName map[string]int

	jointGlobal *types.JointIdSet // full joint universe, stable global indexing
	state       []jointState      // indexed by global joint index

	gravityVec vec.Vector3D
	fixedBase  types.FixedBase

	// Live model inputs, pushed by the estimator tick.
	q      vec.Vector // full tree size
	qdot   vec.Vector
	qddot  vec.Vector
	hWB    mat.Matrix4x4
	baseTwist vec.Vector // 6
	baseAccel vec.Vector // 6
	ftByLink map[int]vec.Vector // 6-vectors keyed by link id

	comLink int
}

// Config seeds the model at construction.
type Config struct {
	Tree      types.TreeDescription
	FixedBase types.FixedBase
	Gravity   float32 // magnitude; 0 defaults to standard gravity
}

// NewModel builds a Model from an already-parsed tree description. Every
// joint starts ACTIVE. Returns ErrInvalidConfig if the tree is malformed
// (a joint's Child does not name a valid link, or links are not
// topologically ordered parent-before-child).
func NewModel(cfg Config) (*Model, error) {
	tree := cfg.Tree
	m := &Model{
		links:      tree.Links,
		joints:     tree.Joints,
		linkByName: make(map[string]int, len(tree.Links)),
		jointGlobal: types.NewJointIdSet(),
		comLink:    tree.COMLink,
		fixedBase:  cfg.FixedBase,
		ftByLink:   make(map[int]vec.Vector),
	}
	g := cfg.Gravity
	if g == 0 {
		g = gravity
	}
	m.gravityVec = vec.Vector3D{0, 0, -g}

	for i, l := range tree.Links {
		if l.Parent >= i {
			return nil, types.ErrInvalidConfig
		}
		m.linkByName[l.Name] = i
	}
	for _, j := range tree.Joints {
		if j.Child < 0 || j.Child >= len(tree.Links) {
			return nil, types.ErrInvalidConfig
		}
		m.jointGlobal.Add(types.JointId{BodyPart: j.BodyPart, LocalIndex: j.LocalIndex})
	}

	n := m.jointGlobal.Size()
	m.state = make([]jointState, n)
	for i := range m.state {
		m.state[i].active = true
	}
	m.q = vec.New(n)
	m.qdot = vec.New(n)
	m.qddot = vec.New(n)
	m.hWB.Eye()
	m.baseTwist = vec.New(6)
	m.baseAccel = vec.New(6)
	return m, nil
}

// DOF returns the number of joints in the full tree (N); the dynamics
// operations work on vectors of size N+6.
func (m *Model) DOF() int {
	return len(m.q)
}

// GetLinkId resolves a link name to its index. ok is false if unknown.
func (m *Model) GetLinkId(name string) (int, bool) {
	id, ok := m.linkByName[name]
	return id, ok
}

// GetJointList returns the joints currently in the model's joint
// universe, in canonical global order.
func (m *Model) GetJointList() []types.JointId {
	out := make([]types.JointId, m.jointGlobal.Size())
	for g := 0; g < m.jointGlobal.Size(); g++ {
		id, _ := m.jointGlobal.GlobalToLocal(g)
		out[g] = id
	}
	return out
}

// AddJoint marks a joint ACTIVE. The joint must already exist in the
// model's joint universe (it is not inserted into the kinematic tree by
// this call; the tree is fixed at construction). Returns ErrUnknownJoint
// if id is not part of the tree.
func (m *Model) AddJoint(id types.JointId) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	g, ok := m.jointGlobal.LocalToGlobal(id)
	if !ok {
		return types.ErrUnknownJoint
	}
	m.state[g].active = true
	return nil
}

// RemoveJoint marks a joint INACTIVE, pinning it to its last commanded
// value (or 0 if it has never been set) for subsequent dynamics queries.
func (m *Model) RemoveJoint(id types.JointId) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	g, ok := m.jointGlobal.LocalToGlobal(id)
	if !ok {
		return types.ErrUnknownJoint
	}
	if !m.state[g].everSet {
		m.state[g].pinnedValue = 0
	} else {
		m.state[g].pinnedValue = m.q[g]
	}
	m.state[g].active = false
	return nil
}

// IsActive reports whether the joint at global index g is in the active
// subset.
func (m *Model) IsActive(g int) bool {
	return m.state[g].active
}

// ActiveCount returns the number of joints currently ACTIVE.
func (m *Model) ActiveCount() int {
	n := 0
	for _, s := range m.state {
		if s.active {
			n++
		}
	}
	return n
}

// GetJointLimits returns (qMin, qMax) for jointIndex, an index into the
// tree description's Joints slice. If jointIndex < 0 the limits for every
// joint are returned in that same Joints order, which is not necessarily
// the global joint order.
func (m *Model) GetJointLimits(jointIndex int) ([]float32, []float32, error) {
	if jointIndex >= 0 {
		if jointIndex >= len(m.joints) {
			return nil, nil, types.ErrUnknownJoint
		}
		j := m.joints[jointIndex]
		return []float32{j.QMin}, []float32{j.QMax}, nil
	}
	qMin := make([]float32, len(m.joints))
	qMax := make([]float32, len(m.joints))
	for i, j := range m.joints {
		qMin[i] = j.QMin
		qMax[i] = j.QMax
	}
	return qMin, qMax, nil
}

// effectiveQ returns the joint vector to use for a dynamics query: the
// caller-provided q for ACTIVE joints, the pinned value for INACTIVE
// ones. Returns ErrDimensionMismatch if q does not match the full tree
// size.
func (m *Model) effectiveQ(q vec.Vector) (vec.Vector, error) {
	if len(q) != len(m.q) {
		return nil, types.ErrDimensionMismatch
	}
	out := vec.New(len(q))
	for g := range out {
		if m.state[g].active {
			out[g] = q[g]
		} else {
			out[g] = m.state[g].pinnedValue
		}
	}
	return out, nil
}

// SetInertial pushes the IMU-derived base angular velocity, angular
// acceleration and linear acceleration into the model. When the model is
// configured fixed_base, omega/domega are overwritten with zero and accel
// is replaced by gravity along the fixed link's axis, per the estimator
// tick's step 6.
func (m *Model) SetInertial(omega, domega, accel vec.Vector3D) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.fixedBase != types.FixedBaseNone {
		omega = vec.Vector3D{}
		domega = vec.Vector3D{}
		accel = m.fixedBaseGravityAxis()
	}
	m.baseTwist[3], m.baseTwist[4], m.baseTwist[5] = omega[0], omega[1], omega[2]
	m.baseAccel[3], m.baseAccel[4], m.baseAccel[5] = domega[0], domega[1], domega[2]
	m.baseAccel[0], m.baseAccel[1], m.baseAccel[2] = accel[0], accel[1], accel[2]
}

func (m *Model) fixedBaseGravityAxis() vec.Vector3D {
	switch m.fixedBase {
	case types.FixedBaseRootLink:
		return vec.Vector3D{0, 0, gravity}
	case types.FixedBaseLSole, types.FixedBaseRSole:
		return vec.Vector3D{gravity, 0, 0}
	default:
		return vec.Vector3D{}
	}
}

// SetBasePose sets H_wb directly (used when the base pose is recomputed
// from support-foot kinematics rather than integrated from the IMU).
func (m *Model) SetBasePose(h mat.Matrix4x4) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.hWB = h
}

// SetJointPosition pushes a full-size joint position vector.
func (m *Model) SetJointPosition(q vec.Vector) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(q) != len(m.q) {
		return types.ErrDimensionMismatch
	}
	copy(m.q, q)
	for g := range m.state {
		m.state[g].everSet = true
	}
	return nil
}

// SetJointVelocity pushes a full-size joint velocity vector.
func (m *Model) SetJointVelocity(qdot vec.Vector) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(qdot) != len(m.qdot) {
		return types.ErrDimensionMismatch
	}
	copy(m.qdot, qdot)
	return nil
}

// SetJointAcceleration pushes a full-size joint acceleration vector.
func (m *Model) SetJointAcceleration(qddot vec.Vector) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(qddot) != len(m.qddot) {
		return types.ErrDimensionMismatch
	}
	copy(m.qddot, qddot)
	return nil
}

// SetFT records a 6-axis force/torque measurement at linkId, to be
// consumed by the contact-wrench solve.
func (m *Model) SetFT(linkId int, wrench vec.Vector) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if linkId < 0 || linkId >= len(m.links) {
		return types.ErrUnknownLink
	}
	if len(wrench) != 6 {
		return types.ErrDimensionMismatch
	}
	m.ftByLink[linkId] = wrench.Clone()
	return nil
}

// CurrentState returns a snapshot of the live q, qdot, qddot, H_wb,
// baseTwist and baseAccel the model is currently holding.
func (m *Model) CurrentState() (q, qdot, qddot vec.Vector, hWB mat.Matrix4x4, baseTwist, baseAccel vec.Vector) {
	m.Mu.RLock()
	defer m.Mu.RUnlock()
	return m.q.Clone(), m.qdot.Clone(), m.qddot.Clone(), m.hWB, m.baseTwist.Clone(), m.baseAccel.Clone()
}
