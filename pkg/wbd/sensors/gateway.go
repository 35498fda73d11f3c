// Package sensors implements the unified sensor registry: a single
// read surface over heterogeneous streams (encoders, FT, IMU, torque,
// PWM, tactile) keyed by (kind, id), with per-kind canonical units and
// a stale-cache fallback for non-blocking reads.
package sensors

import (
	"sync"
	"time"

	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
)

// Reader fetches one fresh sample for a registered sensor, in the
// sensor's native units and axis order. Encoder and PWM readers are
// typically a single fan-out driver shared by every id in a body part;
// IMU, FT and tactile readers are typically one subscription per id.
type Reader interface {
	ReadSample(id string) (sample vec.Vector, err error)
}

type entry struct {
	reader Reader
	value  vec.Vector
	ts     time.Time
}

// Gateway is the concrete SensorGateway. A single mutex guards the
// registry and the last-read cache, matching the donor array types'
// one-mutex-per-collection convention.
type Gateway struct {
	mu       sync.Mutex
	sensors  map[types.SensorKind]map[string]*entry
	canonics map[types.SensorKind]func(vec.Vector) vec.Vector
}

// NewGateway returns an empty gateway with identity canonicalization for
// every kind.
func NewGateway() *Gateway {
	return &Gateway{
		sensors:  make(map[types.SensorKind]map[string]*entry),
		canonics: make(map[types.SensorKind]func(vec.Vector) vec.Vector),
	}
}

// SetCanonicalizer installs the conversion function applied to every raw
// sample of kind before it is cached or returned (native axis order and
// units into the canonical per-kind format: degrees to radians, g to
// m/s², etc.). A kind with no installed canonicalizer is passed through
// unchanged.
func (g *Gateway) SetCanonicalizer(kind types.SensorKind, fn func(vec.Vector) vec.Vector) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.canonics[kind] = fn
}

// AddSensor registers reader under (kind, id). Re-registering an id
// replaces its reader and clears its cached value.
func (g *Gateway) AddSensor(kind types.SensorKind, id string, reader Reader) {
	g.mu.Lock()
	defer g.mu.Unlock()
	byID, ok := g.sensors[kind]
	if !ok {
		byID = make(map[string]*entry)
		g.sensors[kind] = byID
	}
	byID[id] = &entry{reader: reader}
}

// RemoveSensor drops a registered sensor. It is not an error to remove an
// id that was never registered.
func (g *Gateway) RemoveSensor(kind types.SensorKind, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sensors[kind], id)
}

// GetSensorList returns the ids currently registered under kind, order
// unspecified.
func (g *Gateway) GetSensorList(kind types.SensorKind) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	byID := g.sensors[kind]
	out := make([]string, 0, len(byID))
	for id := range byID {
		out = append(out, id)
	}
	return out
}

// Read returns the sample for (kind, id). With blocking true the reader
// is invoked and the cache refreshed; a reader failure is returned to the
// caller and the cache left untouched. With blocking false the cached
// value is returned as-is, including a zero timestamp if the sensor has
// never been read. Returns ErrUnknownId if id is not registered under
// kind.
func (g *Gateway) Read(kind types.SensorKind, id string, blocking bool) (sample vec.Vector, ts time.Time, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.sensors[kind][id]
	if !ok {
		return nil, time.Time{}, types.ErrUnknownId
	}
	if !blocking {
		return e.value.Clone(), e.ts, nil
	}
	raw, err := e.reader.ReadSample(id)
	if err != nil {
		return e.value.Clone(), e.ts, err
	}
	e.value = g.canonicalize(kind, raw)
	e.ts = now()
	return e.value.Clone(), e.ts, nil
}

// ReadAll reads every sensor registered under kind. A single failing
// reader does not fail the aggregate: its last cached value and
// timestamp are kept (and reported as failedIDs) while every other
// sensor in the kind is still refreshed when blocking is true.
func (g *Gateway) ReadAll(kind types.SensorKind, blocking bool) (samples map[string]vec.Vector, timestamps map[string]time.Time, failedIDs []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	byID := g.sensors[kind]
	samples = make(map[string]vec.Vector, len(byID))
	timestamps = make(map[string]time.Time, len(byID))
	for id, e := range byID {
		if blocking {
			raw, err := e.reader.ReadSample(id)
			if err != nil {
				failedIDs = append(failedIDs, id)
			} else {
				e.value = g.canonicalize(kind, raw)
				e.ts = now()
			}
		}
		samples[id] = e.value.Clone()
		timestamps[id] = e.ts
	}
	return samples, timestamps, failedIDs
}

func (g *Gateway) canonicalize(kind types.SensorKind, raw vec.Vector) vec.Vector {
	if fn, ok := g.canonics[kind]; ok {
		return fn(raw)
	}
	return raw.Clone()
}

// now is overridden in tests to make staleness deterministic.
var now = time.Now
