package estimator

import "github.com/icub-wbd/wbcore/pkg/wbd/types"

// SetEstimationParameter applies a runtime parameter change, effective on
// the next tick. Window and threshold changes preserve each filter's
// current sample history (the underlying Adaptive/LowPass types already
// implement that); a window-size change visible this call is simply
// forwarded to every differentiator the tick maintains.
func (e *Estimator) SetEstimationParameter(param types.EstimationParam, value float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch param {
	case types.ParamAdaptiveWindowMaxSize:
		n := int(value)
		e.jointVelFilter.SetWindow(n)
		e.jointAccFilter.SetWindow(n)
		e.angAccFilter.SetWindow(n)
		e.torqueDerivFilter.SetWindow(n)
		e.motorTorqueDerivFilter.SetWindow(n)
	case types.ParamAdaptiveWindowThreshold:
		e.jointVelFilter.SetThreshold(value)
		e.jointAccFilter.SetThreshold(value)
		e.angAccFilter.SetThreshold(value)
		e.torqueDerivFilter.SetThreshold(value)
		e.motorTorqueDerivFilter.SetThreshold(value)
	case types.ParamLowPassFilterCutFreq:
		e.torqueFilter.SetCutoff(value)
		e.motorTorqueFilter.SetCutoff(value)
		for _, ch := range e.imuChannels {
			ch.linAcc.SetCutoff(value)
			ch.angVel.SetCutoff(value)
			ch.mag.SetCutoff(value)
		}
		for _, f := range e.ftFilters {
			f.SetCutoff(value)
		}
		e.cfg.LowPassCutoffHz = value
	case types.ParamEnableOmegaDomegaIMU:
		e.cfg.EnableOmegaDomegaIMU = value != 0
	case types.ParamMinTaxel:
		e.cfg.MinTaxel = int(value)
	}
}
