package types

import (
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// RobotState is the snapshot every dynamics query consumes: the full
// joint vector, its derivative, the base pose and the base twist and
// acceleration. Q and DQ are sized to the model's full DoF count, which
// does not change when joints enter or leave the active set; Resize
// changes their size explicitly.
type RobotState struct {
	Q        vec.Vector  // joint position, radians, size == full DoF count
	DQ       vec.Vector  // joint velocity
	HWorldBase mat.Matrix4x4 // base pose, world <- base
	BaseTwist vec.Vector // 6: linear(3) + angular(3)
	BaseAccel vec.Vector // 6: linear(3) + angular(3)

	CapturedAt *timestamppb.Timestamp
}

// NewRobotState allocates a state sized for dof joints.
func NewRobotState(dof int) *RobotState {
	s := &RobotState{
		Q:         vec.New(dof),
		DQ:        vec.New(dof),
		BaseTwist: vec.New(6),
		BaseAccel: vec.New(6),
	}
	s.HWorldBase.Eye()
	return s
}

// Resize grows or shrinks Q/DQ in place to dof, preserving existing
// values in the overlapping prefix and zero-filling new entries.
func (s *RobotState) Resize(dof int) {
	s.Q = resizeVector(s.Q, dof)
	s.DQ = resizeVector(s.DQ, dof)
}

func resizeVector(v vec.Vector, n int) vec.Vector {
	out := vec.New(n)
	copy(out, v)
	return out
}

// ContactPoint is an external contact localized to a link, either read
// from a tactile frame or synthesised as a subtree's default contact.
type ContactPoint struct {
	BodyPart          string
	LinkIndex         int
	ApplicationPoint  vec.Vector3D
	Wrench            vec.Vector // 6: force(3) + moment(3)
	ActiveTaxelCount   int
	Pressure          float32
	Synthesized       bool // true when inserted as a subtree default, not read from skin
}

// NewContactPoint allocates a zero contact at linkIndex.
func NewContactPoint(bodyPart string, linkIndex int) *ContactPoint {
	return &ContactPoint{
		BodyPart:  bodyPart,
		LinkIndex: linkIndex,
		Wrench:    vec.New(6),
	}
}

// Subtree names a partition of the kinematic tree and its default-contact
// link.
type Subtree struct {
	Name              string
	Links             []int
	DefaultContactLink int
}

// Contains reports whether link is a member of the subtree.
func (s Subtree) Contains(link int) bool {
	for _, l := range s.Links {
		if l == link {
			return true
		}
	}
	return false
}
