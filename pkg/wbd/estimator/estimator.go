// Package estimator implements the fixed-period StateEstimator: one
// goroutine that, every tick, reads sensors, runs them through the
// adaptive-window and low-pass filters, fuses tactile contacts with
// force/torque measurements through a floating-base wrench solve, and
// publishes a joint-torque/state snapshot behind its own mutex.
package estimator

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/icub-wbd/wbcore/pkg/logger"
	"github.com/icub-wbd/wbcore/pkg/mat"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/rigidbody"
	"github.com/icub-wbd/wbcore/pkg/wbd/sensors"
	"github.com/icub-wbd/wbcore/pkg/wbd/signalfilter"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// now is overridden in tests for deterministic staleness checks.
var now = time.Now

type imuChannel struct {
	linAcc *signalfilter.LowPass
	angVel *signalfilter.LowPass
	mag    *signalfilter.LowPass
}

// snapshot is the published, estimator-mutex-guarded result of the most
// recent completed tick.
type snapshot struct {
	q, qdot, qddot                vec.Vector
	jointTorque, jointTorqueDeriv vec.Vector
	motorTorque, motorTorqueDeriv vec.Vector
	pwm                           vec.Vector
	imu                           map[string]vec.Vector
	ft                            map[string]vec.Vector
	contacts                      map[string][]types.ContactPoint
	ts                            time.Time
	valid                         bool
}

// Estimator is the concrete StateEstimator.
type Estimator struct {
	mu  sync.Mutex
	cfg Config

	model   *rigidbody.Model
	sensors *sensors.Gateway

	jointSensorIds []string // DOF order, JointId.String() form

	jointVelFilter         *signalfilter.Adaptive
	jointAccFilter         *signalfilter.Adaptive
	angAccFilter           *signalfilter.Adaptive
	torqueFilter           *signalfilter.LowPass
	torqueDerivFilter      *signalfilter.Adaptive
	motorTorqueFilter      *signalfilter.LowPass
	motorTorqueDerivFilter *signalfilter.Adaptive

	imuChannels map[string]*imuChannel
	ftFilters   map[string]*signalfilter.LowPass

	contacts map[string][]types.ContactPoint

	omega, omegaDot, accel vec.Vector3D

	clock float32

	lastSkinAt time.Time

	snap snapshot

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// New builds an Estimator over an already-configured model and sensor
// gateway. The joint universe is captured at construction time, in the
// order the model reports it (GetJointList), and used to address
// per-joint sensors and filter channels for the estimator's lifetime.
func New(cfg Config) *Estimator {
	cfg.fillDefaults()
	dof := cfg.Model.DOF()

	jointIds := cfg.Model.GetJointList()
	sensorIds := make([]string, len(jointIds))
	for i, id := range jointIds {
		sensorIds[i] = id.String()
	}

	e := &Estimator{
		cfg:            cfg,
		model:          cfg.Model,
		sensors:        cfg.Sensors,
		jointSensorIds: sensorIds,

		jointVelFilter:         signalfilter.NewAdaptive(signalfilter.Linear, dof, cfg.JointVelWindow, cfg.JointVelThreshold),
		jointAccFilter:         signalfilter.NewAdaptive(signalfilter.Quadratic, dof, cfg.JointAccWindow, cfg.JointAccThreshold),
		angAccFilter:           signalfilter.NewAdaptive(signalfilter.Quadratic, 3, cfg.JointAccWindow, cfg.JointAccThreshold),
		torqueFilter:           signalfilter.NewLowPass(dof, cfg.LowPassCutoffHz, float32(cfg.Period.Seconds())),
		torqueDerivFilter:      signalfilter.NewAdaptive(signalfilter.Linear, dof, cfg.JointVelWindow, cfg.JointVelThreshold),
		motorTorqueFilter:      signalfilter.NewLowPass(dof, cfg.LowPassCutoffHz, float32(cfg.Period.Seconds())),
		motorTorqueDerivFilter: signalfilter.NewAdaptive(signalfilter.Linear, dof, cfg.JointVelWindow, cfg.JointVelThreshold),

		imuChannels: make(map[string]*imuChannel),
		ftFilters:   make(map[string]*signalfilter.LowPass),
		contacts:    make(map[string][]types.ContactPoint),

		stopCh: make(chan struct{}),
	}
	e.snap = snapshot{
		q:      vec.New(dof),
		qdot:   vec.New(dof),
		qddot:  vec.New(dof),
		jointTorque:      vec.New(dof),
		jointTorqueDeriv: vec.New(dof),
		motorTorque:      vec.New(dof),
		motorTorqueDeriv: vec.New(dof),
		imu: make(map[string]vec.Vector),
		ft:  make(map[string]vec.Vector),
	}
	return e
}

// Start launches the fixed-period tick goroutine. Cancellation is
// cooperative: the stop signal is only honoured at tick boundaries, and
// an in-progress tick runs to completion, matching the donor pipeline
// step's ctx.Done()-checked-between-steps idiom.
func (e *Estimator) Start(ctx context.Context) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.cfg.Period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-e.stopCh:
				return
			case <-ticker.C:
				e.Tick()
			}
		}
	}()
}

// Stop halts the tick goroutine and waits for the in-flight tick (if any)
// to finish.
func (e *Estimator) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	e.mu.Unlock()
	close(e.stopCh)
	e.wg.Wait()
}

// Tick runs one estimation cycle synchronously; exported so tests and a
// single-threaded caller can drive it directly without the ticker.
func (e *Estimator) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock += float32(e.cfg.Period.Seconds())
	t := e.clock

	q := e.readEncoders()
	qdot := e.jointVelFilter.Feed(t, q).Clone()
	qddot := e.jointAccFilter.Feed(t, qdot).Clone()

	e.readIMUs(t)
	e.readFT()
	e.fuseTactile()
	e.synthesizeDefaultContacts()

	e.model.SetInertial(e.omega, e.omegaDot, e.accel)
	if err := e.model.SetJointPosition(q); err != nil {
		logger.Log.Error().Err(err).Msg("estimator: push joint position")
		return
	}
	if err := e.model.SetJointVelocity(qdot); err != nil {
		logger.Log.Error().Err(err).Msg("estimator: push joint velocity")
		return
	}
	if err := e.model.SetJointAcceleration(qddot); err != nil {
		logger.Log.Error().Err(err).Msg("estimator: push joint acceleration")
		return
	}

	_, _, _, _, baseTwist, baseAccel := e.model.CurrentState()

	tau, err := e.solveContactsAndDynamics(q, qdot, qddot, baseTwist, baseAccel)
	if err != nil {
		logger.Log.Error().Err(err).Msg("estimator: inverse dynamics")
		return
	}

	jointTorque := tau[6:].Clone()
	filteredTorque := e.torqueFilter.Update(jointTorque).Clone()
	torqueDeriv := e.torqueDerivFilter.Feed(t, filteredTorque).Clone()

	motorTorque := e.readMotorTorque()
	filteredMotorTorque := e.motorTorqueFilter.Update(motorTorque).Clone()
	motorTorqueDeriv := e.motorTorqueDerivFilter.Feed(t, filteredMotorTorque).Clone()

	e.snap = snapshot{
		q:                q,
		qdot:             qdot,
		qddot:            qddot,
		jointTorque:      filteredTorque,
		jointTorqueDeriv: torqueDeriv,
		motorTorque:      filteredMotorTorque,
		motorTorqueDeriv: motorTorqueDeriv,
		pwm:              e.readPWM(),
		imu:              e.imuSnapshot(),
		ft:               e.ftSnapshot(),
		contacts:         cloneContacts(e.contacts),
		ts:               now(),
		valid:            !hasNaN(tau),
	}
}

func (e *Estimator) readEncoders() vec.Vector {
	samples, _, _ := e.sensors.ReadAll(types.SensorEncoder, false)
	q := vec.New(len(e.jointSensorIds))
	for g, id := range e.jointSensorIds {
		if s, ok := samples[id]; ok && len(s) == 1 {
			q[g] = s[0]
		} else if len(e.snap.q) == len(q) {
			q[g] = e.snap.q[g]
		}
	}
	return q
}

func (e *Estimator) readMotorTorque() vec.Vector {
	samples, _, _ := e.sensors.ReadAll(types.SensorTorque, false)
	out := vec.New(len(e.jointSensorIds))
	for g, id := range e.jointSensorIds {
		if s, ok := samples[id]; ok && len(s) == 1 {
			out[g] = s[0]
		}
	}
	return out
}

func (e *Estimator) readPWM() vec.Vector {
	samples, _, _ := e.sensors.ReadAll(types.SensorPWM, false)
	out := vec.New(len(e.jointSensorIds))
	for g, id := range e.jointSensorIds {
		if s, ok := samples[id]; ok && len(s) == 1 {
			out[g] = s[0]
		}
	}
	return out
}

func (e *Estimator) readIMUs(t float32) {
	samples, _, _ := e.sensors.ReadAll(types.SensorIMU, true)
	for id, raw := range samples {
		if len(raw) != types.SensorIMU.ElementCount() {
			continue
		}
		ch, ok := e.imuChannels[id]
		if !ok {
			ch = &imuChannel{
				linAcc: signalfilter.NewLowPass(3, e.cfg.LowPassCutoffHz, float32(e.cfg.Period.Seconds())),
				angVel: signalfilter.NewLowPass(3, e.cfg.LowPassCutoffHz, float32(e.cfg.Period.Seconds())),
				mag:    signalfilter.NewLowPass(3, e.cfg.LowPassCutoffHz, float32(e.cfg.Period.Seconds())),
			}
			e.imuChannels[id] = ch
		}
		linAcc := ch.linAcc.Update(raw[4:7]).Clone()
		angVel := ch.angVel.Update(raw[7:10]).Clone()
		ch.mag.Update(raw[10:13])

		if id == e.cfg.DynamicIMU && e.cfg.EnableOmegaDomegaIMU {
			domega := e.angAccFilter.Feed(t, angVel)
			e.omega = vec.Vector3D{angVel[0], angVel[1], angVel[2]}
			e.omegaDot = vec.Vector3D{domega[0], domega[1], domega[2]}
			e.accel = vec.Vector3D{linAcc[0], linAcc[1], linAcc[2]}
		}
	}
}

func (e *Estimator) readFT() {
	samples, _, _ := e.sensors.ReadAll(types.SensorForceTorque, true)
	for id, raw := range samples {
		if len(raw) != 6 {
			continue
		}
		filt, ok := e.ftFilters[id]
		if !ok {
			filt = signalfilter.NewLowPass(6, e.cfg.LowPassCutoffHz, float32(e.cfg.Period.Seconds()))
			e.ftFilters[id] = filt
		}
		filtered := filt.Update(raw).Clone()
		if offset, ok := e.cfg.FTOffsets[id]; ok {
			for i := range filtered {
				filtered[i] -= offset[i]
			}
		}
		linkId, ok := e.model.GetLinkId(id)
		if !ok {
			continue
		}
		if err := e.model.SetFT(linkId, filtered); err != nil {
			logger.Log.Warn().Err(err).Str("ft", id).Msg("estimator: push ft measurement")
		}
	}
}

func (e *Estimator) fuseTactile() {
	if e.cfg.Tactile == nil {
		return
	}
	frame, ok, err := e.cfg.Tactile.ReadFrame()
	if err != nil {
		logger.Log.Warn().Err(err).Msg("estimator: read tactile frame")
	}
	if !ok {
		if !e.lastSkinAt.IsZero() && now().Sub(e.lastSkinAt) > e.cfg.SkinTimeout {
			e.contacts = make(map[string][]types.ContactPoint)
		}
		return
	}
	e.lastSkinAt = now()
	if len(frame) == 0 {
		for bp := range e.contacts {
			for i := range e.contacts[bp] {
				e.contacts[bp][i].Pressure = 0
				e.contacts[bp][i].ActiveTaxelCount = 0
			}
		}
		return
	}
	fresh := make(map[string][]types.ContactPoint, len(frame))
	for bp, contacts := range frame {
		fresh[bp] = fixupContacts(contacts, e.cfg.MinTaxel)
	}
	e.contacts = fresh
}

func (e *Estimator) synthesizeDefaultContacts() {
	for _, st := range e.cfg.Subtrees {
		if len(e.contacts[st.Name]) > 0 {
			continue
		}
		c := types.NewContactPoint(st.Name, st.DefaultContactLink)
		c.Synthesized = true
		e.contacts[st.Name] = []types.ContactPoint{*c}
	}
}

// solveContactsAndDynamics distributes the floating base's otherwise
// unexplained wrench (computed with only FT-sensor wrenches applied)
// across this tick's contact points via a damped least-squares solve,
// pushes the result into the model as external wrenches, and returns the
// final inverse-dynamics generalized force.
func (e *Estimator) solveContactsAndDynamics(q, qdot, qddot, baseTwist, baseAccel vec.Vector) (vec.Vector, error) {
	type located struct {
		bodyPart string
		index    int
		linkId   int
	}
	var list []located
	for bp, contacts := range e.contacts {
		for i, c := range contacts {
			list = append(list, located{bodyPart: bp, index: i, linkId: c.LinkIndex})
		}
	}

	if len(list) == 0 {
		return e.model.InverseDynamics(q, qdot, qddot, baseTwist, baseAccel)
	}

	tau0, err := e.model.InverseDynamics(q, qdot, qddot, baseTwist, baseAccel)
	if err != nil {
		return nil, err
	}

	k := len(list)
	A := mat.New(6, 6*k)
	for i, loc := range list {
		jac, err := e.model.ComputeJacobian(loc.linkId, q)
		if err != nil {
			continue
		}
		baseBlock := mat.New(6, 6)
		for r := 0; r < 6; r++ {
			copy(baseBlock[r], jac[r][:6])
		}
		baseBlockT := mat.New(6, 6)
		baseBlockT.Transpose(baseBlock)
		for r := 0; r < 6; r++ {
			copy(A[r][6*i:6*i+6], baseBlockT[r])
		}
	}

	b := vec.New(6)
	for r := 0; r < 6; r++ {
		b[r] = -tau0[r]
	}

	pinv := mat.New(6*k, 6)
	if err := A.DampedLeastSquares(e.cfg.ContactLambda, pinv); err == nil {
		x := vec.New(6 * k)
		pinv.MulVec(b, x)
		for i, loc := range list {
			wrench := vec.Vector{x[6*i], x[6*i+1], x[6*i+2], x[6*i+3], x[6*i+4], x[6*i+5]}
			e.contacts[loc.bodyPart][loc.index].Wrench = wrench
			if err := e.model.SetFT(loc.linkId, wrench); err != nil {
				logger.Log.Warn().Err(err).Msg("estimator: push contact wrench")
			}
		}
	} else {
		logger.Log.Warn().Err(err).Msg("estimator: contact wrench solve")
	}

	return e.model.InverseDynamics(q, qdot, qddot, baseTwist, baseAccel)
}

func (e *Estimator) imuSnapshot() map[string]vec.Vector {
	out := make(map[string]vec.Vector, len(e.imuChannels))
	for id, ch := range e.imuChannels {
		v := vec.New(13)
		copy(v[4:7], ch.linAcc.Output())
		copy(v[7:10], ch.angVel.Output())
		copy(v[10:13], ch.mag.Output())
		out[id] = v
	}
	return out
}

func (e *Estimator) ftSnapshot() map[string]vec.Vector {
	out := make(map[string]vec.Vector, len(e.ftFilters))
	for id, f := range e.ftFilters {
		out[id] = f.Output().Clone()
	}
	return out
}

func cloneContacts(in map[string][]types.ContactPoint) map[string][]types.ContactPoint {
	out := make(map[string][]types.ContactPoint, len(in))
	for bp, list := range in {
		cp := make([]types.ContactPoint, len(list))
		copy(cp, list)
		out[bp] = cp
	}
	return out
}

func hasNaN(v vec.Vector) bool {
	for _, x := range v {
		if math.IsNaN(float64(x)) {
			return true
		}
	}
	return false
}
