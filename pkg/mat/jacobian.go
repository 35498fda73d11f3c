package mat

import "github.com/icub-wbd/wbcore/pkg/vec"

// JacobianColumn is one column of a geometric Jacobian: the linear and
// angular velocity a unit joint velocity induces at a tracked point.
type JacobianColumn struct {
	Linear  vec.Vector3D
	Angular vec.Vector3D
}

// CalculateJacobianColumn builds the column contributed by one joint to a
// body's geometric Jacobian, given the joint's world-frame position and
// axis and the tracked point's world-frame position.
//
// Revolute: Linear = axis × (point - jointPos), Angular = axis.
// Prismatic: Linear = axis, Angular = 0.
func CalculateJacobianColumn(jointPos, axis, point vec.Vector3D, revolute bool) JacobianColumn {
	if !revolute {
		return JacobianColumn{Linear: axis}
	}

	r := vec.Vector3D{
		point[0] - jointPos[0],
		point[1] - jointPos[1],
		point[2] - jointPos[2],
	}
	return JacobianColumn{
		Linear: vec.Vector3D{
			axis[1]*r[2] - axis[2]*r[1],
			axis[2]*r[0] - axis[0]*r[2],
			axis[0]*r[1] - axis[1]*r[0],
		},
		Angular: axis,
	}
}
