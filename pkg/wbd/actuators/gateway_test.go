package actuators

import (
	"errors"
	"testing"

	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	armed     types.ControlMode
	armErr    error
	setErr    error
	lastRef   vec.Vector
	payload   Payload
	armCalls  int
	setCalls  int
	confCalls int
}

func (d *fakeDriver) Arm(mode types.ControlMode) error {
	d.armCalls++
	if d.armErr != nil {
		return d.armErr
	}
	d.armed = mode
	return nil
}

func (d *fakeDriver) Configure(opts ...ConfigureOption) error {
	d.confCalls++
	for _, o := range opts {
		o(&d.payload)
	}
	return nil
}

func (d *fakeDriver) Set(ref vec.Vector) error {
	d.setCalls++
	if d.setErr != nil {
		return d.setErr
	}
	d.lastRef = ref.Clone()
	return nil
}

func (d *fakeDriver) Get() (vec.Vector, error) { return d.lastRef.Clone(), nil }

func TestAddActuatorArmsInitialMode(t *testing.T) {
	g := NewGateway()
	d := &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d, types.ControlPosition))
	require.Equal(t, types.ControlPosition, d.armed)

	mode, err := g.GetControlMode("arm[0]")
	require.NoError(t, err)
	require.Equal(t, types.ControlPosition, mode)
}

func TestSetControlModeRetainsPreviousModeOnRearmFailure(t *testing.T) {
	g := NewGateway()
	d := &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d, types.ControlPosition))

	d.armErr = errors.New("bus timeout")
	errs := g.SetControlMode(types.ControlTorque, nil, "arm[0]")
	require.Error(t, errs["arm[0]"])
	require.ErrorIs(t, errs["arm[0]"], types.ErrRearmFailed)

	mode, err := g.GetControlMode("arm[0]")
	require.NoError(t, err)
	require.Equal(t, types.ControlPosition, mode)
}

func TestSetControlModeAppliesToAllWhenNoIdsGiven(t *testing.T) {
	g := NewGateway()
	d1, d2 := &fakeDriver{}, &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d1, types.ControlPosition))
	require.NoError(t, g.AddActuator("arm[1]", d2, types.ControlPosition))

	errs := g.SetControlMode(types.ControlVelocity, nil)
	require.Empty(t, errs)
	require.Equal(t, types.ControlVelocity, d1.armed)
	require.Equal(t, types.ControlVelocity, d2.armed)
}

func TestSetControlReferenceRejectsWrongDimension(t *testing.T) {
	g := NewGateway()
	d := &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d, types.ControlPosition))

	errs := g.SetControlReference(vec.Vector{1, 2}, "arm[0]")
	require.ErrorIs(t, errs["arm[0]"], types.ErrWrongUnit)
	require.Equal(t, 0, d.setCalls)
}

func TestSetControlReferenceRejectsOutOfRangePWM(t *testing.T) {
	g := NewGateway()
	d := &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d, types.ControlMotorPWM))

	errs := g.SetControlReference(vec.Vector{1.5}, "arm[0]")
	require.ErrorIs(t, errs["arm[0]"], types.ErrWrongUnit)
}

func TestSetControlReferenceRedirectsTorqueWhenConfigured(t *testing.T) {
	g := NewGateway()
	d := &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d, types.ControlTorque))

	var redirected vec.Vector
	g.SetTorqueRedirector(redirectFunc(func(id string, ref vec.Vector) error {
		redirected = ref.Clone()
		return nil
	}))

	errs := g.SetControlReference(vec.Vector{0.5}, "arm[0]")
	require.Empty(t, errs)
	require.Equal(t, 0, d.setCalls)
	require.InDelta(t, 0.5, redirected[0], 1e-6)
}

type redirectFunc func(id string, ref vec.Vector) error

func (f redirectFunc) Set(id string, ref vec.Vector) error { return f(id, ref) }

func TestSetControlParamForwardsPIDGainsToDriver(t *testing.T) {
	g := NewGateway()
	d := &fakeDriver{}
	require.NoError(t, g.AddActuator("arm[0]", d, types.ControlPosition))

	errs := g.SetControlParam(types.ParamPIDP, 12.0, "arm[0]")
	require.Empty(t, errs)
	require.Equal(t, float32(12.0), d.payload.PIDP)
}

func TestUnknownActuatorIdReturnsErrUnknownId(t *testing.T) {
	g := NewGateway()
	errs := g.SetControlMode(types.ControlPosition, nil, "missing[0]")
	require.ErrorIs(t, errs["missing[0]"], types.ErrUnknownId)

	_, err := g.GetControlMode("missing[0]")
	require.ErrorIs(t, err, types.ErrUnknownId)
}

func TestRemoveActuatorDropsFromList(t *testing.T) {
	g := NewGateway()
	require.NoError(t, g.AddActuator("arm[0]", &fakeDriver{}, types.ControlPosition))
	g.RemoveActuator("arm[0]")
	require.Empty(t, g.GetActuatorList())
}
