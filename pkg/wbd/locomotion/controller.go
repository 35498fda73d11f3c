// Package locomotion implements the fixed-period LocomotionController:
// minimum-jerk CoM/swing-foot/posture trajectory generation, proportional
// task-space error feedback, and a per-tick handoff to the task solver and
// actuator gateway.
package locomotion

import (
	"context"
	"sync"
	"time"

	"github.com/icub-wbd/wbcore/pkg/logger"
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/tasksolver"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// Controller runs the periodic locomotion tick described in package docs.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	mode Mode

	comGen        *vectorGenerator
	footPosGen    *vectorGenerator
	footOrientGen *quatGenerator
	postureGen    *vectorGenerator

	supportLinks []int
	swingLink    int
	supportPhase types.SupportPhase

	activeGlobals []int
	selection     mat.Matrix

	state State

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// New constructs a Controller in ModeOff. Call SetSupportPhase at least
// once before Start to give the solver a constraint to size against.
func New(cfg Config) *Controller {
	cfg.fillDefaults()
	c := &Controller{cfg: cfg, mode: ModeOff, swingLink: -1}
	c.rebuildSelectionLocked()
	c.comGen = newVectorGenerator(vec.New(2), vec.New(2), vec.New(2), cfg.StepDuration)
	c.footPosGen = newVectorGenerator(vec.New(3), vec.New(3), vec.New(3), cfg.StepDuration)
	c.footOrientGen = newQuatGenerator(vec.Quaternion{1, 0, 0, 0}, vec.Quaternion{1, 0, 0, 0}, cfg.StepDuration)
	c.postureGen = newVectorGenerator(vec.New(len(c.activeGlobals)), vec.New(len(c.activeGlobals)), vec.New(len(c.activeGlobals)), cfg.StepDuration)
	return c
}

// rebuildSelectionLocked recomputes the active-joint selection matrix S and
// resizes the posture generator to match. Caller must hold c.mu.
func (c *Controller) rebuildSelectionLocked() {
	n := c.cfg.Model.DOF()
	globals := make([]int, 0, n)
	for g := 0; g < n; g++ {
		if c.cfg.Model.IsActive(g) {
			globals = append(globals, g)
		}
	}
	c.activeGlobals = globals

	s := mat.New(len(globals), 6+n)
	for i, g := range globals {
		s[i][6+g] = 1
	}
	c.selection = s

	if c.postureGen != nil && len(c.postureGen.axes) != len(globals) {
		c.postureGen = newVectorGenerator(vec.New(len(globals)), vec.New(len(globals)), vec.New(len(globals)), c.cfg.StepDuration)
	}
}

// activeJointIds returns the sensor/actuator ids of the currently active
// joints, in selection-matrix row order.
func (c *Controller) activeJointIds() []string {
	joints := c.cfg.Model.GetJointList()
	ids := make([]string, len(c.activeGlobals))
	for i, g := range c.activeGlobals {
		ids[i] = joints[g].String()
	}
	return ids
}

// SetSupportPhase installs the current support configuration: which links
// are in ground contact (1 in single support, 2 in double support) and
// which link is swinging. It resizes the solver's constraint block and
// re-seeds the selection matrix, honoring changes between ticks.
func (c *Controller) SetSupportPhase(phase types.SupportPhase, supportLinks []int, swingLink int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supportPhase = phase
	c.supportLinks = append([]int(nil), supportLinks...)
	c.swingLink = swingLink

	c.rebuildSelectionLocked()
	k := 6 * len(c.supportLinks)
	m := 6 + c.cfg.Model.DOF()
	c.cfg.Solver.Resize(k, m)
}

// SetTarget reseeds every trajectory generator from the robot's current
// measured state toward t, over StepDuration.
func (c *Controller) SetTarget(t Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, qdot, _, _, _, _ := c.cfg.Model.CurrentState()

	com, err := c.cfg.Model.ComputeCOM(q)
	if err != nil {
		return err
	}
	comVel := vec.Vector{0, 0}
	if jac, err := c.cfg.Model.ComputeCOMJacobian(q); err == nil {
		full := vec.New(len(qdot) + 6)
		full.CopyFrom(6, qdot)
		v3 := vec.New(3)
		jac.MulVec(full, v3)
		comVel = vec.Vector{v3[0], v3[1]}
	}

	footPos, footOrient := vec.Vector3D{}, vec.Quaternion{1, 0, 0, 0}
	if c.swingLink >= 0 {
		footPos, footOrient, err = c.cfg.Model.ForwardKinematics(c.swingLink, q)
		if err != nil {
			return err
		}
	}

	posture := vec.New(len(c.activeGlobals))
	for i, g := range c.activeGlobals {
		posture[i] = q[g]
	}

	c.comGen.seed(vec.Vector{com[0], com[1]}, comVel, orDefault(t.ComXY, vec.Vector{com[0], com[1]}), c.cfg.StepDuration)
	targetFootPos := vec.Vector{footPos[0], footPos[1], footPos[2]}
	targetOrient := footOrient
	if len(t.SwingFootPose) == 7 {
		targetFootPos = t.SwingFootPose.Slice(0, 3)
		targetOrient = vec.Quaternion{t.SwingFootPose[3], t.SwingFootPose[4], t.SwingFootPose[5], t.SwingFootPose[6]}
	}
	c.footPosGen.seed(vec.Vector{footPos[0], footPos[1], footPos[2]}, vec.New(3), targetFootPos, c.cfg.StepDuration)
	c.footOrientGen.seed(footOrient, targetOrient, c.cfg.StepDuration)
	c.postureGen.seed(posture, vec.New(len(posture)), orDefault(t.Posture, posture), c.cfg.StepDuration)
	return nil
}

func orDefault(v, fallback vec.Vector) vec.Vector {
	if len(v) == 0 {
		return fallback
	}
	return v
}

// Start reseeds the trajectory generators at the current measurement (so
// the controller holds position until SetTarget moves it), switches to
// ModeOn and commands VELOCITY control on every active joint.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.mode = ModeOn
	ids := c.activeJointIds()
	c.started = true
	c.stopCh = make(chan struct{})
	c.mu.Unlock()

	_ = c.SetTarget(Target{})
	if errs := c.cfg.Actuators.SetControlMode(types.ControlVelocity, nil, ids...); len(errs) > 0 {
		for id, err := range errs {
			logger.Log.Error().Str("joint", id).Err(err).Msg("locomotion: failed to arm velocity control on start")
		}
	}

	c.wg.Add(1)
	go c.run(ctx)
}

func (c *Controller) run(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Stop commands zero velocity then POSITION control on every active joint
// and switches to ModeOff.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	ids := c.activeJointIds()
	close(c.stopCh)
	c.started = false
	c.mode = ModeOff
	c.mu.Unlock()

	c.wg.Wait()

	c.cfg.Actuators.SetControlReference(vec.Vector{0}, ids...)
	c.cfg.Actuators.SetControlMode(types.ControlPosition, nil, ids...)
}

// GetState returns the most recently published state.
func (c *Controller) GetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tick runs one iteration of the 5-step locomotion loop. It is a no-op
// when the controller is not ModeOn.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeOn {
		return
	}

	dt := float32(c.cfg.Period.Seconds())
	n := c.cfg.Model.DOF()
	m := 6 + n

	// Step 1: recompute H_wb from support-foot forward kinematics.
	q, _, _, _, _, _ := c.cfg.Model.CurrentState()
	if len(c.supportLinks) > 0 {
		hBaseFoot, err := c.cfg.Model.ComputeBaseRelativeH(c.supportLinks[0], q)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("locomotion: support-foot kinematics")
		} else {
			var hWorldBase mat.Matrix4x4
			hBaseFoot.HomogenousInverse(&hWorldBase)
			c.cfg.Model.SetBasePose(hWorldBase)
		}
	}
	q, _, _, _, _, _ = c.cfg.Model.CurrentState()

	// Step 2: advance the three minimum-jerk generators.
	comRef, comRefVel := c.comGen.step(dt)
	footPosRef, _ := c.footPosGen.step(dt)
	footOrientRef := c.footOrientGen.step(dt)
	postureRef, postureRefVel := c.postureGen.step(dt)

	// Step 3: task-space proportional error feedback.
	com, err := c.cfg.Model.ComputeCOM(q)
	if err != nil {
		c.state.Error = err
		return
	}
	dxCom := vec.Vector{
		comRefVel[0] + c.cfg.KpCom*(comRef[0]-com[0]),
		comRefVel[1] + c.cfg.KpCom*(comRef[1]-com[1]),
	}

	var dxFoot vec.Vector
	var footJac mat.Matrix
	if c.swingLink >= 0 {
		curPos, curOrient, err := c.cfg.Model.ForwardKinematics(c.swingLink, q)
		if err != nil {
			c.state.Error = err
			return
		}
		oriErr := orientationError(curOrient, footOrientRef)
		dxFoot = vec.Vector{
			c.cfg.KpFoot * (footPosRef[0] - curPos[0]),
			c.cfg.KpFoot * (footPosRef[1] - curPos[1]),
			c.cfg.KpFoot * (footPosRef[2] - curPos[2]),
			c.cfg.KpFoot * oriErr[0],
			c.cfg.KpFoot * oriErr[1],
			c.cfg.KpFoot * oriErr[2],
		}
		footJac, err = c.cfg.Model.ComputeJacobian(c.swingLink, q)
		if err != nil {
			c.state.Error = err
			return
		}
	}

	dqPosture := vec.New(len(c.activeGlobals))
	for i, g := range c.activeGlobals {
		dqPosture[i] = postureRefVel[i] + c.cfg.KpPosture*(postureRef[i]-q[g])
	}

	// Step 4: populate task and constraint matrices.
	comJac, err := c.cfg.Model.ComputeCOMJacobian(q)
	if err != nil {
		c.state.Error = err
		return
	}
	comTask := mat.New(2, m)
	comTask[0] = comJac[0]
	comTask[1] = comJac[1]
	if err := c.cfg.Solver.SetTask(tasksolver.TaskCoM, comTask, dxCom, 1); err != nil {
		logger.Log.Warn().Err(err).Msg("locomotion: set CoM task")
	}
	if c.swingLink >= 0 {
		if err := c.cfg.Solver.SetTask(tasksolver.TaskFoot, footJac, dxFoot, 1); err != nil {
			logger.Log.Warn().Err(err).Msg("locomotion: set foot task")
		}
	} else {
		c.cfg.Solver.ClearTask(tasksolver.TaskFoot)
	}
	if len(c.activeGlobals) > 0 {
		if err := c.cfg.Solver.SetTask(tasksolver.TaskPosture, c.selection, dqPosture, c.cfg.KpPosture); err != nil {
			logger.Log.Warn().Err(err).Msg("locomotion: set posture task")
		}
	}

	if len(c.supportLinks) > 0 {
		constraintA := mat.New(6*len(c.supportLinks), m)
		for i, link := range c.supportLinks {
			jac, err := c.cfg.Model.ComputeJacobian(link, q)
			if err != nil {
				c.state.Error = err
				return
			}
			for r := 0; r < 6; r++ {
				copy(constraintA[i*6+r], jac[r])
			}
		}
		if err := c.cfg.Solver.SetConstraint(constraintA, vec.New(6*len(c.supportLinks))); err != nil {
			logger.Log.Warn().Err(err).Msg("locomotion: set support constraint")
		}
	}

	// Step 5: solve and forward joint velocities to the actuator gateway.
	dqFull, err := c.cfg.Solver.Solve()
	if err != nil {
		c.state.Error = err
		logger.Log.Error().Err(err).Msg("locomotion: task solve failed")
		return
	}

	joints := c.cfg.Model.GetJointList()
	for _, g := range c.activeGlobals {
		ref := vec.Vector{dqFull[6+g]}
		if errs := c.cfg.Actuators.SetControlReference(ref, joints[g].String()); len(errs) > 0 {
			logger.Log.Warn().Str("joint", joints[g].String()).Err(errs[joints[g].String()]).Msg("locomotion: set control reference")
		}
	}

	c.state = State{
		Mode:          ModeOn,
		Com:           vec.Vector{com[0], com[1]},
		SwingFootPose: dxFoot,
		Posture:       postureRef,
		SupportPhase:  c.supportPhase,
		Error:         nil,
	}
}
