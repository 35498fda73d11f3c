package locomotion

import (
	"time"

	"github.com/icub-wbd/wbcore/pkg/wbd/actuators"
	"github.com/icub-wbd/wbcore/pkg/wbd/rigidbody"
	"github.com/icub-wbd/wbcore/pkg/wbd/tasksolver"
)

// Config seeds a Controller at construction.
type Config struct {
	Model     *rigidbody.Model
	Solver    *tasksolver.Solver
	Actuators *actuators.Gateway

	Period time.Duration

	// StepDuration is the minimum-jerk duration applied to every
	// trajectory generator on Start or SetTarget.
	StepDuration float32

	KpCom     float32
	KpFoot    float32
	KpPosture float32
}

func (c *Config) fillDefaults() {
	if c.Period <= 0 {
		c.Period = 10 * time.Millisecond
	}
	if c.StepDuration <= 0 {
		c.StepDuration = 1.0
	}
	if c.KpCom <= 0 {
		c.KpCom = 1.0
	}
	if c.KpFoot <= 0 {
		c.KpFoot = 1.0
	}
	if c.KpPosture <= 0 {
		c.KpPosture = 1.0
	}
}
