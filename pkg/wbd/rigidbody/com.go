package rigidbody

import (
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
)

// ComputeCOMJacobian returns the mass-weighted average of every massed
// link's linear-velocity Jacobian, approximating the whole-body center of
// mass Jacobian. The per-link CoM offset's rotational coupling (v_com =
// v_origin + omega x r_com) is neglected; each link contributes its origin
// Jacobian weighted by mass/totalMass.
func (m *Model) ComputeCOMJacobian(q vec.Vector) (mat.Matrix, error) {
	eff, err := m.effectiveQ(q)
	if err != nil {
		return nil, err
	}

	var totalMass float32
	for _, link := range m.links {
		totalMass += link.Mass
	}

	cols := 6 + len(eff)
	out := mat.New(3, cols)
	if totalMass <= 0 {
		return out, nil
	}

	for i, link := range m.links {
		if link.Mass <= 0 {
			continue
		}
		lj, err := m.ComputeJacobian(i, q)
		if err != nil {
			return nil, err
		}
		w := link.Mass / totalMass
		for c := 0; c < cols; c++ {
			out[0][c] += w * lj[0][c]
			out[1][c] += w * lj[1][c]
			out[2][c] += w * lj[2][c]
		}
	}
	return out, nil
}

// ComputeCOM returns the mass-weighted center of mass position in the world
// frame at joint configuration q.
func (m *Model) ComputeCOM(q vec.Vector) (vec.Vector3D, error) {
	var totalMass float32
	for _, link := range m.links {
		totalMass += link.Mass
	}
	var com vec.Vector3D
	if totalMass <= 0 {
		return com, nil
	}
	for i, link := range m.links {
		if link.Mass <= 0 {
			continue
		}
		h, err := m.ComputeH(i, q)
		if err != nil {
			return vec.Vector3D{}, err
		}
		t := translation(&h)
		t.Add(rotate(&h, link.COM))
		w := link.Mass / totalMass
		com[0] += w * t[0]
		com[1] += w * t[1]
		com[2] += w * t[2]
	}
	return com, nil
}
