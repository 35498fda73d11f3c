package locomotion

import (
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// Mode is the controller's on/off state.
type Mode int

const (
	ModeOff Mode = iota
	ModeOn
)

func (m Mode) String() string {
	if m == ModeOn {
		return "ON"
	}
	return "OFF"
}

// Target is the step-level reference the trajectory generators track.
type Target struct {
	ComXY         vec.Vector // length 2
	SwingFootPose vec.Vector // length 7: position(3) + quaternion(4, w-x-y-z)
	Posture       vec.Vector // length == ActiveCount(), in active-joint order
}

// State is the controller's published per-tick status.
type State struct {
	Mode          Mode
	Com           vec.Vector
	SwingFootPose vec.Vector
	Posture       vec.Vector
	SupportPhase  types.SupportPhase
	Error         error
}
