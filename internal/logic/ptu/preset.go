package ptu

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned when a preset name is not defined.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named fixed PTU pose.
type Preset struct {
	Name    string  `json:"name"`
	PanDeg  float64 `json:"pan_deg"`
	TiltDeg float64 `json:"tilt_deg"`
}

// DefaultPresets returns the standard mast poses: the stowed position, the
// home position and the two calibration-target views of the wide-angle pair.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "park", PanDeg: 0, TiltDeg: 60},
		{Name: "home", PanDeg: 0, TiltDeg: 0},
		{Name: "pct_rwac", PanDeg: -43.5, TiltDeg: 65.75},
		{Name: "pct_lwac", PanDeg: -70, TiltDeg: 65.75},
	}
}

// Presets is an ordered, name-indexed set of presets.
type Presets struct {
	byName map[string]Preset
	order  []string
}

// NewPresets builds a preset set. Names must be unique and non-empty.
func NewPresets(list []Preset) (*Presets, error) {
	p := &Presets{byName: make(map[string]Preset, len(list))}
	for _, pr := range list {
		if pr.Name == "" {
			return nil, fmt.Errorf("preset name is required")
		}
		if _, ok := p.byName[pr.Name]; ok {
			return nil, fmt.Errorf("duplicate preset %q", pr.Name)
		}
		p.byName[pr.Name] = pr
		p.order = append(p.order, pr.Name)
	}
	return p, nil
}

// Get returns the named preset or ErrUnknownPreset.
func (p *Presets) Get(name string) (Preset, error) {
	pr, ok := p.byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q: %w", name, ErrUnknownPreset)
	}
	return pr, nil
}

// All returns the presets in definition order.
func (p *Presets) All() []Preset {
	out := make([]Preset, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.byName[name])
	}
	return out
}
