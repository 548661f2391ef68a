package session

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/geometry"
	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

// Limits bound the user-editable numeric fields.
type Limits struct {
	MaxSamples int
	MinFar     float64
	MaxFar     float64
}

// DefaultLimits returns the standard UI ranges.
func DefaultLimits() Limits {
	return Limits{MaxSamples: planner.DefaultMaxSamples, MinFar: 2, MaxFar: 10}
}

// InstrumentSettings are the per-instrument values the operator can change.
type InstrumentSettings struct {
	FarDistance float64 `json:"far_distance"`
	ShowFrustum bool    `json:"show_frustum"`
}

// RequestChange is a partial update of the current request. Nil fields are
// left as they are; Instruments entries set or clear individual flags.
type RequestChange struct {
	StartDeg     *float64        `json:"start_deg,omitempty"`
	StopDeg      *float64        `json:"stop_deg,omitempty"`
	SampleCount  *int            `json:"sample_count,omitempty"`
	FixedTiltDeg *float64        `json:"fixed_tilt_deg,omitempty"`
	Instruments  map[string]bool `json:"instruments,omitempty"`
}

// SettingsChange is a partial update of one instrument's settings.
type SettingsChange struct {
	FarDistance *float64 `json:"far_distance,omitempty"`
	ShowFrustum *bool    `json:"show_frustum,omitempty"`
}

// State is a plan session: the PTU head, the current request, the
// accumulated tiles and the per-instrument settings.
//
// Every mutation holds the write lock for its whole duration, so a reader
// sees the state either before or after a planning pass, never in between.
type State struct {
	mu sync.RWMutex

	model   *ptu.Model
	planner *planner.Planner
	presets *ptu.Presets
	limits  Limits

	head     *ptu.Head
	request  planner.Request
	tiles    []planner.Tile
	passes   int
	settings map[string]InstrumentSettings
}

// New creates a session with the head at home and a default request.
// A sample limit below the minimum falls back to the default one.
func New(model *ptu.Model, presets *ptu.Presets, limits Limits) *State {
	if limits.MaxSamples < planner.MinSamples {
		limits.MaxSamples = planner.DefaultMaxSamples
	}
	return &State{
		model:    model,
		planner:  planner.New(model, limits.MaxSamples),
		presets:  presets,
		limits:   limits,
		head:     ptu.NewHead(),
		request:  planner.DefaultRequest(),
		settings: make(map[string]InstrumentSettings),
	}
}

// Limits returns the session's input ranges.
func (s *State) Limits() Limits {
	return s.limits
}

// Model returns the kinematic model the session plans with.
func (s *State) Model() *ptu.Model {
	return s.model
}

// Presets returns the named PTU poses.
func (s *State) Presets() []ptu.Preset {
	return s.presets.All()
}

// PTU returns the current head state.
func (s *State) PTU() ptu.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.head.State()
}

// MovePTU moves the head in one step (clamped). A nil axis is left where
// it is, so readers never observe half of a two-axis move.
func (s *State) MovePTU(panDeg, tiltDeg *float64) ptu.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if panDeg != nil {
		s.head.SetPan(*panDeg)
	}
	if tiltDeg != nil {
		s.head.SetTilt(*tiltDeg)
	}
	return s.head.State()
}

// ApplyPreset moves the head to a named preset.
func (s *State) ApplyPreset(name string) (ptu.State, error) {
	p, err := s.presets.Get(name)
	if err != nil {
		return ptu.State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head.Apply(p)
	return s.head.State(), nil
}

// Request returns a copy of the current request.
func (s *State) Request() planner.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.request.Clamped(0)
}

// ApplyRequestChange is the single entry point for editing the request.
// Numeric values are clamped to their ranges; it never fails.
func (s *State) ApplyRequestChange(c RequestChange) planner.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.request
	if c.StartDeg != nil {
		r.StartDeg = geometry.ClampPan(*c.StartDeg)
	}
	if c.StopDeg != nil {
		r.StopDeg = geometry.ClampPan(*c.StopDeg)
	}
	if c.SampleCount != nil {
		r.SampleCount = geometry.ClampInt(*c.SampleCount, planner.MinSamples, s.MaxSamples())
	}
	if c.FixedTiltDeg != nil {
		r.FixedTiltDeg = geometry.ClampTilt(*c.FixedTiltDeg)
	}
	if len(c.Instruments) > 0 {
		set := make(map[string]bool, len(r.Instruments)+len(c.Instruments))
		for id, on := range r.Instruments {
			if on {
				set[id] = true
			}
		}
		for id, on := range c.Instruments {
			if on {
				set[id] = true
			} else {
				delete(set, id)
			}
		}
		r.Instruments = set
	}
	s.request = r
	debug.Verbose("Request: %.2f° -> %.2f°, %d samples, tilt %.2f°, instruments %v",
		r.StartDeg, r.StopDeg, r.SampleCount, r.FixedTiltDeg, r.ActiveIDs())
	return s.request.Clamped(0)
}

// MaxSamples returns the largest sample count a pass accepts.
func (s *State) MaxSamples() int {
	return s.planner.MaxSamples()
}

// Settings returns the settings of an instrument.
func (s *State) Settings(id string) (InstrumentSettings, error) {
	spec, err := s.model.Registry().Get(id)
	if err != nil {
		return InstrumentSettings{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsFor(spec), nil
}

func (s *State) settingsFor(spec instrument.Spec) InstrumentSettings {
	if st, ok := s.settings[spec.ID]; ok {
		return st
	}
	return InstrumentSettings{FarDistance: spec.FarDistance}
}

// ApplySettingsChange updates one instrument's settings. The far distance is
// clamped to the session limits. Unknown ids fail with
// instrument.ErrUnknownInstrument.
func (s *State) ApplySettingsChange(id string, c SettingsChange) (InstrumentSettings, error) {
	spec, err := s.model.Registry().Get(id)
	if err != nil {
		return InstrumentSettings{}, fmt.Errorf("settings: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.settingsFor(spec)
	if c.FarDistance != nil {
		st.FarDistance = geometry.Clamp(*c.FarDistance, s.limits.MinFar, s.limits.MaxFar)
	}
	if c.ShowFrustum != nil {
		st.ShowFrustum = *c.ShowFrustum
	}
	s.settings[id] = st
	return st, nil
}

// depthLocked returns the distance of interest for spec. Caller holds s.mu.
func (s *State) depthLocked(spec instrument.Spec) float64 {
	return s.settingsFor(spec).FarDistance
}

// Plan runs one panorama pass for the current request and appends its
// tiles to the session. It returns the tiles of this pass and the session
// tile count right after it.
func (s *State) Plan() ([]planner.Tile, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiles := s.planner.Plan(s.head, s.request, s.depthLocked)
	s.tiles = append(s.tiles, tiles...)
	s.passes++
	debug.Info("Session now holds %d tiles from %d passes", len(s.tiles), s.passes)
	return append([]planner.Tile(nil), tiles...), len(s.tiles)
}

// ClearPlan drops all tiles and resets the request to its defaults. The
// tilt and the head pose are left alone.
func (s *State) ClearPlan() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tilt := s.request.FixedTiltDeg
	s.request = planner.DefaultRequest()
	s.request.FixedTiltDeg = tilt
	s.tiles = nil
	s.passes = 0
	debug.Live("Plan cleared")
}

// Tiles returns a copy of the accumulated tiles in capture order.
func (s *State) Tiles() []planner.Tile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]planner.Tile(nil), s.tiles...)
}
