package locomotion

import (
	"context"
	"testing"
	"time"

	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/actuators"
	"github.com/icub-wbd/wbcore/pkg/wbd/rigidbody"
	"github.com/icub-wbd/wbcore/pkg/wbd/tasksolver"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
	"github.com/stretchr/testify/require"
)

// fakeDriver is a no-op actuator.Driver double; Tick only needs it to accept
// Arm/Set without error.
type fakeDriver struct {
	mode    types.ControlMode
	lastRef vec.Vector
}

func (d *fakeDriver) Arm(mode types.ControlMode) error { d.mode = mode; return nil }
func (d *fakeDriver) Configure(opts ...actuators.ConfigureOption) error { return nil }
func (d *fakeDriver) Set(ref vec.Vector) error { d.lastRef = ref.Clone(); return nil }
func (d *fakeDriver) Get() (vec.Vector, error) { return d.lastRef.Clone(), nil }

// biped builds a floating base with two one-DOF legs, hip joints rotating
// about Y, each foot 1m below its hip.
func biped(t *testing.T) *rigidbody.Model {
	t.Helper()
	var id mat.Matrix4x4
	id.Eye()

	links := []types.Link{
		{Name: "base", Parent: -1, Joint: -1, Mass: 10},
		{Name: "leftFoot", Parent: 0, Joint: 0, Mass: 1, COM: vec.Vector3D{0, 0, -1}},
		{Name: "rightFoot", Parent: 0, Joint: 1, Mass: 1, COM: vec.Vector3D{0, 0, -1}},
	}
	joints := []types.Joint{
		{Name: "leftHip", BodyPart: "leg", LocalIndex: 0, Child: 1, Axis: vec.Vector3D{0, 1, 0}, Type: types.Revolute, Offset: id, QMin: -3, QMax: 3},
		{Name: "rightHip", BodyPart: "leg", LocalIndex: 1, Child: 2, Axis: vec.Vector3D{0, 1, 0}, Type: types.Revolute, Offset: id, QMin: -3, QMax: 3},
	}
	m, err := rigidbody.NewModel(rigidbody.Config{
		Tree: types.TreeDescription{Links: links, Joints: joints, COMLink: -1},
	})
	require.NoError(t, err)
	return m
}

func newTestController(t *testing.T) (*Controller, *rigidbody.Model, *actuators.Gateway) {
	t.Helper()
	m := biped(t)
	solver := tasksolver.New(1e-3)
	gw := actuators.NewGateway()
	require.NoError(t, gw.AddActuator("leg[0]", &fakeDriver{}, types.ControlPosition))
	require.NoError(t, gw.AddActuator("leg[1]", &fakeDriver{}, types.ControlPosition))

	c := New(Config{
		Model:        m,
		Solver:       solver,
		Actuators:    gw,
		Period:       10 * time.Millisecond,
		StepDuration: 0.5,
	})
	return c, m, gw
}

func TestTickDoubleSupportProducesNoErrorAtRest(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetSupportPhase(types.SupportDouble, []int{1, 2}, -1)
	require.NoError(t, c.SetTarget(Target{}))

	c.mode = ModeOn
	c.Tick()

	require.NoError(t, c.GetState().Error)
}

func TestTickSingleSupportDrivesSwingFootTowardTarget(t *testing.T) {
	c, m, _ := newTestController(t)
	c.SetSupportPhase(types.SupportLeft, []int{1}, 2)

	q := vec.New(m.DOF())
	startPos, _, err := m.ForwardKinematics(2, q)
	require.NoError(t, err)

	target := Target{SwingFootPose: vec.Vector{startPos[0] + 0.05, startPos[1], startPos[2], 1, 0, 0, 0}}
	require.NoError(t, c.SetTarget(target))

	c.mode = ModeOn
	for i := 0; i < 10; i++ {
		c.Tick()
		require.NoError(t, c.GetState().Error)
	}
}

func TestTickIsNoopWhenModeOff(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetSupportPhase(types.SupportDouble, []int{1, 2}, -1)
	require.NoError(t, c.SetTarget(Target{}))

	c.Tick()
	require.Equal(t, State{}, c.GetState())
}

func TestStartArmsVelocityControlAndStopReturnsToPosition(t *testing.T) {
	c, _, gw := newTestController(t)
	c.SetSupportPhase(types.SupportDouble, []int{1, 2}, -1)

	c.Start(context.Background())
	time.Sleep(5 * time.Millisecond)

	mode, err := gw.GetControlMode("leg[0]")
	require.NoError(t, err)
	require.Equal(t, types.ControlVelocity, mode)

	c.Stop()

	mode, err = gw.GetControlMode("leg[0]")
	require.NoError(t, err)
	require.Equal(t, types.ControlPosition, mode)
}

func TestRebuildSelectionTracksJointRemoval(t *testing.T) {
	c, m, _ := newTestController(t)
	require.Len(t, c.activeGlobals, 2)

	require.NoError(t, m.RemoveJoint(types.JointId{BodyPart: "leg", LocalIndex: 0}))
	c.rebuildSelectionLocked()
	require.Len(t, c.activeGlobals, 1)
}
