package instrument

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cjeanneret/PanCam/internal/logic/geometry"
)

// Stage identifies which part of the mast an instrument is attached to.
type Stage int

const (
	// StageTilt instruments ride on the tilting head (pan and tilt apply).
	StageTilt Stage = iota
	// StagePan instruments ride on the pan stage below the tilt axis.
	StagePan
	// StageBody instruments are fixed to the rover body at the rig origin.
	StageBody
)

func (s Stage) String() string {
	switch s {
	case StageTilt:
		return "tilt"
	case StagePan:
		return "pan"
	case StageBody:
		return "body"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ParseStage converts a config string to a Stage. An empty string means tilt.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "", "tilt":
		return StageTilt, nil
	case "pan":
		return StagePan, nil
	case "body":
		return StageBody, nil
	default:
		return StageTilt, fmt.Errorf("unknown stage %q (want tilt, pan or body)", s)
	}
}

// Style is how the rendering side draws an instrument's tiles and frustum.
type Style struct {
	Color   uint32  // 0xRRGGBB
	Opacity float64 // 0..1
}

// Hex returns the color as "#rrggbb".
func (s Style) Hex() string {
	return fmt.Sprintf("#%06x", s.Color&0xffffff)
}

// Spec describes one camera instrument on the mast. Specs are immutable
// once registered.
type Spec struct {
	ID             string
	VerticalFovDeg float64
	AspectRatio    float64
	NearDistance   float64
	FarDistance    float64

	// Mount pose relative to the stage the instrument rides on.
	MountPosition mgl64.Vec3
	MountRotation mgl64.Quat
	Stage         Stage

	// Asset names the visual asset the instrument is attached to, if any.
	// Until that asset has loaded the instrument contributes no tiles.
	Asset string

	Style Style
}

// MountYaw builds a yaw-only mount rotation (toe-in) about the vertical axis.
func MountYaw(rad float64) mgl64.Quat {
	return mgl64.QuatRotate(rad, mgl64.Vec3{0, 1, 0})
}

// MountYawPitch builds a mount rotation from yaw about the vertical axis
// followed by pitch about the (yawed) horizontal axis, both in degrees.
func MountYawPitch(yawDeg, pitchDeg float64) mgl64.Quat {
	yaw := MountYaw(geometry.DegToRad(yawDeg))
	pitch := mgl64.QuatRotate(geometry.DegToRad(pitchDeg), mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Validate checks the optical and mount parameters of a spec.
// FOV problems wrap geometry.ErrInvalidFov.
func (s Spec) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("instrument id is required")
	}
	if err := geometry.ValidateFOV(s.VerticalFovDeg); err != nil {
		return fmt.Errorf("instrument %q: %w", s.ID, err)
	}
	if math.IsNaN(s.AspectRatio) || s.AspectRatio <= 0 {
		return fmt.Errorf("instrument %q: aspect ratio must be > 0, got %g", s.ID, s.AspectRatio)
	}
	if s.NearDistance < 0 {
		return fmt.Errorf("instrument %q: near distance must be >= 0, got %g", s.ID, s.NearDistance)
	}
	if !(s.FarDistance > s.NearDistance) {
		return fmt.Errorf("instrument %q: far distance (%g) must be > near distance (%g)", s.ID, s.FarDistance, s.NearDistance)
	}
	return nil
}

// MountOrientation returns the normalized mount rotation. A zero value means
// no rotation.
func (s Spec) MountOrientation() mgl64.Quat {
	if s.MountRotation.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return s.MountRotation.Normalize()
}

// HorizontalFovDeg returns the horizontal field of view implied by the
// vertical field of view and the aspect ratio.
func (s Spec) HorizontalFovDeg() float64 {
	return geometry.HorizontalFOVFromVertical(s.VerticalFovDeg, s.AspectRatio)
}

// FootprintSize returns the footprint of spec at depth.
func FootprintSize(spec Spec, depth float64) (geometry.Footprint, error) {
	fp, err := geometry.FootprintSize(spec.VerticalFovDeg, spec.AspectRatio, depth)
	if err != nil {
		return geometry.Footprint{}, fmt.Errorf("instrument %q: %w", spec.ID, err)
	}
	return fp, nil
}
