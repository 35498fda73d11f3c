package actuators

import (
	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// validateReference rejects a reference vector that does not match the
// expected dimension or native range for mode. Every control mode here
// commands a single joint's scalar reference except ControlImpedancePosition,
// which also carries a stiffness gain.
func validateReference(mode types.ControlMode, ref vec.Vector) error {
	for _, x := range ref {
		if math32.IsNaN(x) || math32.IsInf(x, 0) {
			return types.ErrWrongUnit
		}
	}
	switch mode {
	case types.ControlImpedancePosition:
		if len(ref) != 2 {
			return types.ErrWrongUnit
		}
	case types.ControlMotorPWM:
		if len(ref) != 1 || ref[0] < -1 || ref[0] > 1 {
			return types.ErrWrongUnit
		}
	case types.ControlPosition, types.ControlVelocity, types.ControlTorque, types.ControlOpenLoop:
		if len(ref) != 1 {
			return types.ErrWrongUnit
		}
	default:
		return types.ErrWrongUnit
	}
	return nil
}
