package estimator

import (
	"time"

	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/rigidbody"
	"github.com/icub-wbd/wbcore/pkg/wbd/sensors"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// Config seeds a StateEstimator at construction. Subtrees must already
// have their link names resolved to model link indices (the
// config/wiring layer's job, not the estimator's).
type Config struct {
	Model   *rigidbody.Model
	Sensors *sensors.Gateway
	Tactile TactileSource // nil disables tactile fusion entirely

	Period time.Duration

	Subtrees []types.Subtree

	// DynamicIMU names the sensor id whose angular velocity feeds the
	// angular-acceleration adaptive filter producing omega-dot.
	DynamicIMU           string
	EnableOmegaDomegaIMU bool

	IMUIds []string
	FTIds  []string

	// FTOffsets subtracts a fixed per-sensor bias from the low-passed FT
	// reading before it is pushed into the model.
	FTOffsets map[string]vec.Vector

	JointVelWindow    int
	JointVelThreshold float32
	JointAccWindow    int
	JointAccThreshold float32

	LowPassCutoffHz float32

	MinTaxel    int
	SkinTimeout time.Duration

	// ContactLambda damps the least-squares solve that distributes the
	// floating base's unexplained wrench across the tick's contact
	// points.
	ContactLambda float32
}

func (c *Config) fillDefaults() {
	if c.Period <= 0 {
		c.Period = 10 * time.Millisecond
	}
	if c.JointVelWindow <= 0 {
		c.JointVelWindow = 16
	}
	if c.JointAccWindow <= 0 {
		c.JointAccWindow = 16
	}
	if c.JointVelThreshold <= 0 {
		c.JointVelThreshold = 0.5
	}
	if c.JointAccThreshold <= 0 {
		c.JointAccThreshold = 0.5
	}
	if c.LowPassCutoffHz <= 0 {
		c.LowPassCutoffHz = 20
	}
	if c.SkinTimeout <= 0 {
		c.SkinTimeout = time.Second
	}
	if c.ContactLambda <= 0 {
		c.ContactLambda = 1e-3
	}
}
