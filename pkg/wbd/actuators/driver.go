// Package actuators implements the ActuatorGateway: per-joint control-mode
// arbitration over a pluggable Driver, with re-arm-on-switch semantics and
// optional torque-command redirection to an external torque-control module.
package actuators

import (
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// Payload carries the mode-specific configuration values a ConfigureOption
// writes into, mirroring the five tunable ActuatorParam values.
type Payload struct {
	RefSpeed   float32
	PIDP       float32
	PIDD       float32
	PIDI       float32
	CtrlOffset float32
}

// ConfigureOption mutates a Payload in place. Driver.Configure applies each
// option in order before forwarding the assembled Payload to hardware.
type ConfigureOption func(*Payload)

func WithRefSpeed(v float32) ConfigureOption {
	return func(p *Payload) { p.RefSpeed = v }
}

func WithPID(kp, kd, ki float32) ConfigureOption {
	return func(p *Payload) { p.PIDP, p.PIDD, p.PIDI = kp, kd, ki }
}

func WithCtrlOffset(v float32) ConfigureOption {
	return func(p *Payload) { p.CtrlOffset = v }
}

// Driver is the per-joint hardware or simulation backend an actuator id is
// bound to. Arm commands the driver to switch its active control law;
// Configure adjusts the currently-armed law's tunables; Set commands a new
// reference; Get returns the driver's own feedback in the active mode's
// native unit.
type Driver interface {
	Arm(mode types.ControlMode) error
	Configure(opts ...ConfigureOption) error
	Set(ref vec.Vector) error
	Get() (vec.Vector, error)
}
