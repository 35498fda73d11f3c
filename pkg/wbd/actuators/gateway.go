package actuators

import (
	"fmt"
	"sync"

	"github.com/icub-wbd/wbcore/pkg/logger"
	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// TorqueRedirector receives torque-mode reference commands in place of the
// joint's own Driver, when configured. Gateway.SetTorqueRedirector wires one
// in; until then torque references go to the joint's Driver like every
// other mode.
type TorqueRedirector interface {
	Set(id string, ref vec.Vector) error
}

type actuatorEntry struct {
	driver Driver
	mode   types.ControlMode
}

// Gateway arbitrates per-joint control mode over a registry of Drivers,
// guarded by a single mutex, after the donor's single-mutex actuator-array
// idiom.
type Gateway struct {
	mu        sync.Mutex
	actuators map[string]*actuatorEntry
	redirect  TorqueRedirector
}

func NewGateway() *Gateway {
	return &Gateway{actuators: make(map[string]*actuatorEntry)}
}

// SetTorqueRedirector routes subsequent torque-mode SetControlReference
// calls to r instead of the joint's own Driver. Pass nil to disable.
func (g *Gateway) SetTorqueRedirector(r TorqueRedirector) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.redirect = r
}

// AddActuator registers a driver under id, arming it in initialMode.
func (g *Gateway) AddActuator(id string, driver Driver, initialMode types.ControlMode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := driver.Arm(initialMode); err != nil {
		return fmt.Errorf("%w: %v", types.ErrRearmFailed, err)
	}
	g.actuators[id] = &actuatorEntry{driver: driver, mode: initialMode}
	return nil
}

func (g *Gateway) RemoveActuator(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.actuators, id)
}

func (g *Gateway) GetActuatorList() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.actuators))
	for id := range g.actuators {
		out = append(out, id)
	}
	return out
}

func (g *Gateway) GetControlMode(id string) (types.ControlMode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.actuators[id]
	if !ok {
		return 0, types.ErrUnknownId
	}
	return e.mode, nil
}

func (g *Gateway) resolveIds(ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return g.GetActuatorList()
}

// SetControlMode switches the named joints (or every registered joint, if
// ids is empty) to mode, optionally commanding ref immediately once armed.
// A joint whose driver fails to re-arm keeps its previous mode; its error
// is reported in the returned map and every other requested joint is still
// attempted.
func (g *Gateway) SetControlMode(mode types.ControlMode, ref vec.Vector, ids ...string) map[string]error {
	if ref != nil {
		if err := validateReference(mode, ref); err != nil {
			errs := map[string]error{}
			for _, id := range g.resolveIds(ids) {
				errs[id] = err
			}
			return errs
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	targets := g.resolveIdsLocked(ids)
	var errs map[string]error
	for _, id := range targets {
		e, ok := g.actuators[id]
		if !ok {
			errs = recordErr(errs, id, types.ErrUnknownId)
			continue
		}
		if err := e.driver.Arm(mode); err != nil {
			logger.Log.Error().Str("joint", id).Str("mode", mode.String()).Err(err).Msg("actuator re-arm failed, retaining previous mode")
			errs = recordErr(errs, id, fmt.Errorf("%w: %v", types.ErrRearmFailed, err))
			continue
		}
		e.mode = mode
		if ref != nil {
			if err := e.driver.Set(ref); err != nil {
				errs = recordErr(errs, id, err)
			}
		}
	}
	return errs
}

// SetControlReference commands ref on every named joint (or all, if ids is
// empty) in its currently-armed mode. Torque-mode references are forwarded
// to the configured TorqueRedirector instead of the joint's Driver, if one
// is set.
func (g *Gateway) SetControlReference(ref vec.Vector, ids ...string) map[string]error {
	g.mu.Lock()
	defer g.mu.Unlock()

	targets := g.resolveIdsLocked(ids)
	var errs map[string]error
	for _, id := range targets {
		e, ok := g.actuators[id]
		if !ok {
			errs = recordErr(errs, id, types.ErrUnknownId)
			continue
		}
		if err := validateReference(e.mode, ref); err != nil {
			errs = recordErr(errs, id, err)
			continue
		}
		if e.mode == types.ControlTorque && g.redirect != nil {
			if err := g.redirect.Set(id, ref); err != nil {
				errs = recordErr(errs, id, err)
			}
			continue
		}
		if err := e.driver.Set(ref); err != nil {
			errs = recordErr(errs, id, err)
		}
	}
	return errs
}

// SetControlParam applies a runtime tunable (speed limit, PID gains,
// open-loop offset) to the named joints' drivers via ConfigureOption.
func (g *Gateway) SetControlParam(param types.ActuatorParam, value float32, ids ...string) map[string]error {
	g.mu.Lock()
	defer g.mu.Unlock()

	opt := configureOptionFor(param, value)
	targets := g.resolveIdsLocked(ids)
	var errs map[string]error
	for _, id := range targets {
		e, ok := g.actuators[id]
		if !ok {
			errs = recordErr(errs, id, types.ErrUnknownId)
			continue
		}
		if err := e.driver.Configure(opt); err != nil {
			errs = recordErr(errs, id, err)
		}
	}
	return errs
}

func configureOptionFor(param types.ActuatorParam, value float32) ConfigureOption {
	switch param {
	case types.ParamRefSpeed:
		return WithRefSpeed(value)
	case types.ParamPIDP:
		return func(p *Payload) { p.PIDP = value }
	case types.ParamPIDD:
		return func(p *Payload) { p.PIDD = value }
	case types.ParamPIDI:
		return func(p *Payload) { p.PIDI = value }
	case types.ParamCtrlOffset:
		return WithCtrlOffset(value)
	default:
		return func(*Payload) {}
	}
}

// resolveIdsLocked is resolveIds for callers already holding g.mu.
func (g *Gateway) resolveIdsLocked(ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	out := make([]string, 0, len(g.actuators))
	for id := range g.actuators {
		out = append(out, id)
	}
	return out
}

func recordErr(errs map[string]error, id string, err error) map[string]error {
	if errs == nil {
		errs = make(map[string]error)
	}
	errs[id] = err
	return errs
}
