package estimator

import (
	"time"

	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func (e *Estimator) jointIndex(id string) (int, bool) {
	for g, sid := range e.jointSensorIds {
		if sid == id {
			return g, true
		}
	}
	return 0, false
}

// GetEstimate returns the value of a single named quantity. With
// blocking true and kind naming a raw sensor-backed estimate (joint
// position, IMU, force/torque), the estimator bypasses the published
// snapshot and reads the sensor gateway inline; every other kind always
// serves the latest snapshot regardless of blocking, since it has no
// sensor of its own to refresh.
func (e *Estimator) GetEstimate(kind types.EstimateKind, id string, blocking bool) (vec.Vector, time.Time, error) {
	if blocking {
		switch kind {
		case types.EstimateJointPosition:
			return e.sensors.Read(types.SensorEncoder, id, true)
		case types.EstimateIMU:
			return e.sensors.Read(types.SensorIMU, id, true)
		case types.EstimateForceTorque:
			return e.sensors.Read(types.SensorForceTorque, id, true)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case types.EstimateJointPosition:
		return e.jointScalar(e.snap.q, id)
	case types.EstimateJointVelocity:
		return e.jointScalar(e.snap.qdot, id)
	case types.EstimateJointAcceleration:
		return e.jointScalar(e.snap.qddot, id)
	case types.EstimateJointTorque:
		return e.jointScalar(e.snap.jointTorque, id)
	case types.EstimateJointTorqueDerivative:
		return e.jointScalar(e.snap.jointTorqueDeriv, id)
	case types.EstimateMotorTorque:
		return e.jointScalar(e.snap.motorTorque, id)
	case types.EstimateMotorTorqueDerivative:
		return e.jointScalar(e.snap.motorTorqueDeriv, id)
	case types.EstimateMotorPWM:
		return e.jointScalar(e.snap.pwm, id)
	case types.EstimateIMU:
		v, ok := e.snap.imu[id]
		if !ok {
			return nil, time.Time{}, types.ErrUnknownId
		}
		return v.Clone(), e.snap.ts, nil
	case types.EstimateForceTorque:
		v, ok := e.snap.ft[id]
		if !ok {
			return nil, time.Time{}, types.ErrUnknownId
		}
		return v.Clone(), e.snap.ts, nil
	default:
		return nil, time.Time{}, types.ErrUnknownId
	}
}

func (e *Estimator) jointScalar(buf vec.Vector, id string) (vec.Vector, time.Time, error) {
	g, ok := e.jointIndex(id)
	if !ok || g >= len(buf) {
		return nil, time.Time{}, types.ErrUnknownId
	}
	return vec.Vector{buf[g]}, e.snap.ts, nil
}

// GetEstimates returns every joint's value for a per-joint kind, in the
// model's canonical joint order. Non-per-joint kinds (IMU, FT) return
// ErrUnknownId; callers should iterate GetEstimate with explicit ids for
// those.
func (e *Estimator) GetEstimates(kind types.EstimateKind) (vec.Vector, time.Time, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case types.EstimateJointPosition:
		return e.snap.q.Clone(), e.snap.ts, nil
	case types.EstimateJointVelocity:
		return e.snap.qdot.Clone(), e.snap.ts, nil
	case types.EstimateJointAcceleration:
		return e.snap.qddot.Clone(), e.snap.ts, nil
	case types.EstimateJointTorque:
		return e.snap.jointTorque.Clone(), e.snap.ts, nil
	case types.EstimateJointTorqueDerivative:
		return e.snap.jointTorqueDeriv.Clone(), e.snap.ts, nil
	case types.EstimateMotorTorque:
		return e.snap.motorTorque.Clone(), e.snap.ts, nil
	case types.EstimateMotorTorqueDerivative:
		return e.snap.motorTorqueDeriv.Clone(), e.snap.ts, nil
	case types.EstimateMotorPWM:
		return e.snap.pwm.Clone(), e.snap.ts, nil
	default:
		return nil, time.Time{}, types.ErrUnknownId
	}
}

// GetEstimatedExternalForces returns every contact point currently known
// to the estimator (tactile-sourced and synthesized defaults alike).
func (e *Estimator) GetEstimatedExternalForces() []types.ContactPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []types.ContactPoint
	for _, list := range e.snap.contacts {
		out = append(out, list...)
	}
	return out
}

// GetRobotState returns a snapshot of the full dynamics state consumed by
// downstream kinematics/dynamics queries, timestamped at the last
// successful tick.
func (e *Estimator) GetRobotState() *types.RobotState {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _, _, hWB, baseTwist, baseAccel := e.model.CurrentState()
	s := types.NewRobotState(len(e.snap.q))
	copy(s.Q, e.snap.q)
	copy(s.DQ, e.snap.qdot)
	s.HWorldBase = hWB
	copy(s.BaseTwist, baseTwist)
	copy(s.BaseAccel, baseAccel)
	s.CapturedAt = timestamppb.New(e.snap.ts)
	return s
}

// IsValid reports whether the most recently published snapshot is free
// of NaN in its dynamics output.
func (e *Estimator) IsValid() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.valid
}
