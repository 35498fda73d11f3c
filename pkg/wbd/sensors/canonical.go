package sensors

import (
	"github.com/chewxy/math32"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

const (
	degToRad = math32.Pi / 180
	gToMS2   = 9.81
)

// DefaultCanonicalizers returns the stock native-unit-to-canonical
// conversion table: encoder degrees to radians, IMU linear acceleration
// in g to m/s², everything else passed through unchanged. Torque, PWM and
// force/torque streams are already in canonical units (Nm, duty ratio,
// N/Nm) at the driver boundary in this deployment, so they have no
// entry.
func DefaultCanonicalizers() map[types.SensorKind]func(vec.Vector) vec.Vector {
	return map[types.SensorKind]func(vec.Vector) vec.Vector{
		types.SensorEncoder: encoderDegToRad,
		types.SensorIMU:     imuCanonical,
	}
}

func encoderDegToRad(raw vec.Vector) vec.Vector {
	out := raw.Clone()
	for i := range out {
		out[i] *= degToRad
	}
	return out
}

// imuCanonical converts the linear-acceleration triplet of a 13-element
// IMU sample (orientation(4), linAcc(3), angVel(3), mag(3)) from g to
// m/s²; orientation, angular velocity and magnetometer are passed
// through.
func imuCanonical(raw vec.Vector) vec.Vector {
	out := raw.Clone()
	if len(out) != types.SensorIMU.ElementCount() {
		return out
	}
	for i := 4; i < 7; i++ {
		out[i] *= gToMS2
	}
	return out
}
