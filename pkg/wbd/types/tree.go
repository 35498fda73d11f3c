package types

import (
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
)

// JointType distinguishes a rotational joint from a translational one;
// the Jacobian-column formula differs between the two.
type JointType int

const (
	Revolute JointType = iota
	Prismatic
)

// Link is one node of the kinematic tree. Parent == -1 marks the floating
// base link (the tree root). Joint == -1 marks the root link, which has
// no joint connecting it to a parent.
//
// Mass, COM and Inertia are the rigid-body inertial parameters expressed
// in the link's own frame: Mass in kg, COM as the offset of the center
// of mass from the link origin, Inertia as the 3x3 rotational inertia
// tensor about the COM.
type Link struct {
	Name   string
	Parent int
	Joint  int

	Mass    float32
	COM     vec.Vector3D
	Inertia mat.Matrix3x3
}

// Joint connects a link (LocalIndex-th joint of BodyPart) to its Child
// link. Offset is the joint-frame transform relative to the parent link
// at q=0, matching a URDF joint origin. QMin/QMax bound the joint's
// travel.
type Joint struct {
	Name       string
	BodyPart   string
	LocalIndex int
	Child      int
	Axis       vec.Vector3D
	Type       JointType
	Offset     mat.Matrix4x4
	QMin, QMax float32
}

// TreeDescription is the already-parsed rigid-body tree the model is
// built from; URDF parsing itself is an external collaborator.
type TreeDescription struct {
	Links  []Link
	Joints []Joint
	// COMLink, if >= 0, names the virtual link id representing the
	// composite center of mass. The model stores it; ComputeJacobian has
	// no special case for this id.
	COMLink int
}
