package planner

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/geometry"
	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

// Tile is the coverage footprint of one instrument at one capture.
type Tile struct {
	PassID       uuid.UUID `json:"pass_id"`
	InstrumentID string    `json:"instrument_id"`
	CaptureIndex int       `json:"capture_index"`

	CapturePanDeg  float64 `json:"capture_pan_deg"`
	CaptureTiltDeg float64 `json:"capture_tilt_deg"`

	CameraPosition mgl64.Vec3 `json:"camera_position"`
	Direction      mgl64.Vec3 `json:"direction"` // unit view direction of the camera
	Position       mgl64.Vec3 `json:"position"`  // tile centre, CameraPosition + Direction*Depth
	Normal         mgl64.Vec3 `json:"normal"`    // unit, from the tile toward the rig origin
	Orientation    mgl64.Quat `json:"-"`         // local +z along Normal

	Depth  float64 `json:"depth"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DepthFunc returns the distance of interest for an instrument.
type DepthFunc func(spec instrument.Spec) float64

// FarDistance uses each instrument's configured far distance.
func FarDistance(spec instrument.Spec) float64 {
	return spec.FarDistance
}

// SampleAngles returns the pan angles of a sweep.
//
// Two samples capture start and stop, or start only when they are equal.
// More than two samples are evenly spaced with both endpoints included.
// Counts below two are treated as two.
func SampleAngles(startDeg, stopDeg float64, count int) []float64 {
	if count <= MinSamples {
		if stopDeg == startDeg {
			return []float64{startDeg}
		}
		return []float64{startDeg, stopDeg}
	}
	return floats.Span(make([]float64, count), startDeg, stopDeg)
}

// Planner drives the PTU through a panorama sweep and produces the coverage
// tiles of the active instruments.
type Planner struct {
	model      *ptu.Model
	maxSamples int
}

// New creates a planner over a kinematic model. Sample counts above
// maxSamples are clamped; maxSamples <= 0 disables the upper limit.
func New(model *ptu.Model, maxSamples int) *Planner {
	return &Planner{model: model, maxSamples: maxSamples}
}

// MaxSamples returns the upper sample count limit (0 = none).
func (p *Planner) MaxSamples() int {
	return p.maxSamples
}

// Plan runs one pass: the head is tilted to the request's fixed tilt, panned
// through every sample angle, and returned to pan 0 afterwards (tilt is left
// where it is). Each capture yields one tile per active, registered
// instrument, in capture order then registration order. req is not modified.
func (p *Planner) Plan(head *ptu.Head, req Request, depth DepthFunc) []Tile {
	if depth == nil {
		depth = FarDistance
	}
	r := req.Clamped(p.maxSamples)
	angles := SampleAngles(r.StartDeg, r.StopDeg, r.SampleCount)
	specs := p.model.Registry().ListActive(r.Instruments)
	rig := p.model.Rig()
	passID := uuid.New()

	debug.Section("Panorama Pass")
	debug.Value("Pass", passID)
	debug.Value("Sweep", debug.Fmt("%.2f° -> %.2f° in %d samples", r.StartDeg, r.StopDeg, r.SampleCount))
	debug.Value("Instruments", len(specs))

	head.SetTilt(r.FixedTiltDeg)

	tiles := make([]Tile, 0, len(angles)*len(specs))
	for i, angle := range angles {
		head.SetPan(angle)
		state := head.State()
		debug.Capture(i+1, len(angles), state.PanDeg, state.TiltDeg)

		for _, spec := range specs {
			d := depth(spec)
			fp, err := instrument.FootprintSize(spec, d)
			if err != nil {
				debug.Error(err)
				continue
			}
			pose := rig.WorldPoseOf(spec, state)
			centre := pose.Position.Add(pose.Direction.Mul(d))
			normal, orient := geometry.LookAt(centre, rig.Origin(), ptu.Up)

			tiles = append(tiles, Tile{
				PassID:         passID,
				InstrumentID:   spec.ID,
				CaptureIndex:   i,
				CapturePanDeg:  state.PanDeg,
				CaptureTiltDeg: state.TiltDeg,
				CameraPosition: pose.Position,
				Direction:      pose.Direction,
				Position:       centre,
				Normal:         normal,
				Orientation:    orient,
				Depth:          d,
				Width:          fp.Width,
				Height:         fp.Height,
			})
			debug.Verbose("  %s: %.3f x %.3f m at %.2f m", spec.ID, fp.Width, fp.Height, d)
		}
	}

	head.SetPan(0)

	debug.Summary("Panorama Plan")
	debug.Plan(len(angles), len(specs), len(tiles))
	return tiles
}
