package mat

import "github.com/icub-wbd/wbcore/pkg/vec"

// Homogenous assembles a 4x4 homogeneous transform from a rotation and a
// translation: the top-left 3x3 block is rot, the top-right column is
// trans, the bottom row is [0 0 0 1].
func (m *Matrix4x4) Homogenous(rot *Matrix3x3, trans vec.Vector3D) *Matrix4x4 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = rot[i][j]
		}
		m[i][3] = trans[i]
	}
	m[3][0], m[3][1], m[3][2], m[3][3] = 0, 0, 0, 1
	return m
}

// HomogenousInverse computes the inverse of a rigid transform in closed
// form: R^T in the rotation block, -R^T*t in the translation column. This
// avoids a general 4x4 Gauss-Jordan inverse for a matrix that is always
// orthonormal-plus-translation.
func (m *Matrix4x4) HomogenousInverse(dst *Matrix4x4) *Matrix4x4 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dst[i][j] = m[j][i]
		}
	}
	for i := 0; i < 3; i++ {
		var sum float32
		for j := 0; j < 3; j++ {
			sum += dst[i][j] * m[j][3]
		}
		dst[i][3] = -sum
	}
	dst[3][0], dst[3][1], dst[3][2], dst[3][3] = 0, 0, 0, 1
	return dst
}

// Rotation extracts the top-left 3x3 rotation block into dst.
func (m *Matrix4x4) Rotation(dst *Matrix3x3) *Matrix3x3 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dst[i][j] = m[i][j]
		}
	}
	return dst
}

// Translation extracts the top-right translation column into dst.
func (m *Matrix4x4) Translation(dst *vec.Vector3D) *vec.Vector3D {
	dst[0], dst[1], dst[2] = m[0][3], m[1][3], m[2][3]
	return dst
}
