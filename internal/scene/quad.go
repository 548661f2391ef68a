package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

// Quad is a planar rectangle in world space, counter-clockwise seen from
// the side its normal points to.
type Quad [4]mgl64.Vec3

// Centre returns the mean of the corners.
func (q Quad) Centre() mgl64.Vec3 {
	return q[0].Add(q[1]).Add(q[2]).Add(q[3]).Mul(0.25)
}

// TileQuad returns the world corners of a tile: bottom-left, bottom-right,
// top-right, top-left in the tile's own frame.
func TileQuad(t planner.Tile) Quad {
	w, h := t.Width/2, t.Height/2
	local := [4]mgl64.Vec3{{-w, -h, 0}, {w, -h, 0}, {w, h, 0}, {-w, h, 0}}
	var q Quad
	for i, p := range local {
		q[i] = t.Position.Add(t.Orientation.Rotate(p))
	}
	return q
}

// Frustum is the truncated view pyramid of an instrument.
type Frustum struct {
	Apex mgl64.Vec3 `json:"apex"`
	Near Quad       `json:"near"`
	Far  Quad       `json:"far"`
}

// FrustumOf builds the frustum of an instrument at a world pose, cut at its
// near distance and at far.
func FrustumOf(pose ptu.Pose, spec instrument.Spec, far float64) Frustum {
	tanHalf := math.Tan(mgl64.DegToRad(spec.VerticalFovDeg) / 2)
	plane := func(d float64) Quad {
		h := d * tanHalf
		w := h * spec.AspectRatio
		local := [4]mgl64.Vec3{{-w, -h, -d}, {w, -h, -d}, {w, h, -d}, {-w, h, -d}}
		var q Quad
		for i, p := range local {
			q[i] = mgl64.TransformCoordinate(p, pose.Transform)
		}
		return q
	}
	return Frustum{
		Apex: pose.Position,
		Near: plane(spec.NearDistance),
		Far:  plane(far),
	}
}
