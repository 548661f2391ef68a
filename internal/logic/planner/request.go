package planner

import (
	"sort"

	"github.com/cjeanneret/PanCam/internal/logic/geometry"
)

// Sample count limits for a panorama pass.
const (
	MinSamples        = 2
	DefaultMaxSamples = 30
)

// Request describes one panorama pass: a pan sweep from StartDeg to StopDeg
// in SampleCount captures at a fixed tilt, for a set of instruments.
type Request struct {
	StartDeg     float64         `json:"start_deg"`
	StopDeg      float64         `json:"stop_deg"`
	SampleCount  int             `json:"sample_count"`
	FixedTiltDeg float64         `json:"fixed_tilt_deg"`
	Instruments  map[string]bool `json:"instruments"`
}

// DefaultRequest returns the cleared request: no sweep, two samples, no
// instruments selected.
func DefaultRequest() Request {
	return Request{
		StartDeg:    0,
		StopDeg:     0,
		SampleCount: MinSamples,
		Instruments: map[string]bool{},
	}
}

// Clamped returns a copy of r with every numeric field limited to its valid
// range. maxSamples <= 0 means no upper limit on the sample count.
// The instrument set is copied, so the result never aliases r.
func (r Request) Clamped(maxSamples int) Request {
	out := r
	out.StartDeg = geometry.ClampPan(r.StartDeg)
	out.StopDeg = geometry.ClampPan(r.StopDeg)
	out.FixedTiltDeg = geometry.ClampTilt(r.FixedTiltDeg)
	if out.SampleCount < MinSamples {
		out.SampleCount = MinSamples
	}
	if maxSamples > 0 && out.SampleCount > maxSamples {
		out.SampleCount = maxSamples
	}
	out.Instruments = make(map[string]bool, len(r.Instruments))
	for id, on := range r.Instruments {
		out.Instruments[id] = on
	}
	return out
}

// ActiveIDs returns the selected instrument ids, sorted.
func (r Request) ActiveIDs() []string {
	var ids []string
	for id, on := range r.Instruments {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Step returns the pan increment between captures.
func (r Request) Step() float64 {
	n := r.SampleCount
	if n < MinSamples {
		n = MinSamples
	}
	return (r.StopDeg - r.StartDeg) / float64(n-1)
}
