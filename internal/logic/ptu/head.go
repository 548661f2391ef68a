package ptu

import (
	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/geometry"
)

// State is the pan-tilt unit pose in degrees.
type State struct {
	PanDeg  float64 `json:"pan_deg"`
	TiltDeg float64 `json:"tilt_deg"`
}

// Head holds the PTU state. It is the only place the state is mutated;
// out-of-range angles are clamped to the nearest axis limit.
// Head is not safe for concurrent use.
type Head struct {
	state State
}

// NewHead creates a head at (0, 0).
func NewHead() *Head {
	return &Head{}
}

// State returns the current pan and tilt.
func (h *Head) State() State {
	return h.state
}

// SetPan sets the pan angle, clamped to [-180, 180].
func (h *Head) SetPan(deg float64) {
	deg = geometry.ClampPan(deg)
	if deg != h.state.PanDeg {
		debug.Move("pan", h.state.PanDeg, deg)
	}
	h.state.PanDeg = deg
}

// SetTilt sets the tilt angle, clamped to [-90, 90]. Positive tilt looks down.
func (h *Head) SetTilt(deg float64) {
	deg = geometry.ClampTilt(deg)
	if deg != h.state.TiltDeg {
		debug.Move("tilt", h.state.TiltDeg, deg)
	}
	h.state.TiltDeg = deg
}

// MovePanTilt sets both axes, pan first.
func (h *Head) MovePanTilt(panDeg, tiltDeg float64) {
	h.SetPan(panDeg)
	h.SetTilt(tiltDeg)
}

// Home returns the head to (0, 0).
func (h *Head) Home() {
	h.MovePanTilt(0, 0)
}

// Apply moves the head to a preset pose.
func (h *Head) Apply(p Preset) {
	debug.Live("PTU preset %s (pan=%.2f°, tilt=%.2f°)", p.Name, p.PanDeg, p.TiltDeg)
	h.MovePanTilt(p.PanDeg, p.TiltDeg)
}
