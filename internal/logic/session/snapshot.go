package session

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cjeanneret/PanCam/internal/logic/geometry"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

// InstrumentView is the render-side view of one instrument.
type InstrumentView struct {
	ID               string             `json:"id"`
	Stage            string             `json:"stage"`
	Color            string             `json:"color"`
	Opacity          float64            `json:"opacity"`
	VerticalFovDeg   float64            `json:"vertical_fov_deg"`
	HorizontalFovDeg float64            `json:"horizontal_fov_deg"`
	AspectRatio      float64            `json:"aspect_ratio"`
	NearDistance     float64            `json:"near_distance"`
	Settings         InstrumentSettings `json:"settings"`
	Active           bool               `json:"active"`
	Available        bool               `json:"available"`
	Position         mgl64.Vec3         `json:"position"`
	Direction        mgl64.Vec3         `json:"direction"`
	// OverlapPercent estimates the overlap between neighbouring captures of
	// the current request.
	OverlapPercent float64 `json:"overlap_percent"`
}

// Snapshot is an immutable copy of the session, taken under one read lock.
type Snapshot struct {
	PTU         ptu.State        `json:"ptu"`
	Request     planner.Request  `json:"request"`
	Tiles       []planner.Tile   `json:"tiles"`
	Passes      int              `json:"passes"`
	RigOrigin   mgl64.Vec3       `json:"rig_origin"`
	Instruments []InstrumentView `json:"instruments"`
}

// Snapshot copies the current state for a reader such as the render loop.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.head.State()
	req := s.request.Clamped(0)
	rig := s.model.Rig()
	reg := s.model.Registry()
	step := req.Step()

	snap := Snapshot{
		PTU:       state,
		Request:   req,
		Tiles:     append([]planner.Tile{}, s.tiles...),
		Passes:    s.passes,
		RigOrigin: rig.Origin(),
	}
	for _, spec := range reg.All() {
		pose := rig.WorldPoseOf(spec, state)
		hfov := spec.HorizontalFovDeg()
		snap.Instruments = append(snap.Instruments, InstrumentView{
			ID:               spec.ID,
			Stage:            spec.Stage.String(),
			Color:            spec.Style.Hex(),
			Opacity:          spec.Style.Opacity,
			VerticalFovDeg:   spec.VerticalFovDeg,
			HorizontalFovDeg: hfov,
			AspectRatio:      spec.AspectRatio,
			NearDistance:     spec.NearDistance,
			Settings:         s.settingsFor(spec),
			Active:           req.Instruments[spec.ID],
			Available:        len(reg.ListActive(map[string]bool{spec.ID: true})) == 1,
			Position:         pose.Position,
			Direction:        pose.Direction,
			OverlapPercent:   geometry.OverlapPercent(hfov, step),
		})
	}
	return snap
}

// SuggestSamples returns, per active instrument, the sample count that
// sweeps the current request span with the given overlap ratio.
func (s *State) SuggestSamples(overlapRatio float64) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	span := s.request.StopDeg - s.request.StartDeg
	out := make(map[string]int)
	for _, spec := range s.model.Registry().ListActive(s.request.Instruments) {
		out[spec.ID] = geometry.SamplesForOverlap(span, spec.HorizontalFovDeg(), overlapRatio, s.MaxSamples())
	}
	return out
}
