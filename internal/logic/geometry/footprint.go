package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFov is returned when a footprint cannot be computed because the
// field of view (or the sampling depth) is outside its valid domain.
var ErrInvalidFov = errors.New("invalid field of view")

// Footprint is the physical size of the rectangle one capture covers at a
// given depth, in scene units (metres).
type Footprint struct {
	Width  float64
	Height float64
}

// Scale returns the footprint multiplied by k.
func (f Footprint) Scale(k float64) Footprint {
	return Footprint{Width: f.Width * k, Height: f.Height * k}
}

// ValidateFOV checks that a vertical field of view is in (0, 180).
func ValidateFOV(verticalFovDeg float64) error {
	if math.IsNaN(verticalFovDeg) || verticalFovDeg <= 0 || verticalFovDeg >= 180 {
		return fmt.Errorf("vertical fov %g° not in (0, 180): %w", verticalFovDeg, ErrInvalidFov)
	}
	return nil
}

// FootprintSize computes the footprint of a perspective camera at depth.
//
//	height = 2 × depth × tan(vfov / 2)
//	width  = height × aspect
//
// The result is linear in depth.
func FootprintSize(verticalFovDeg, aspectRatio, depth float64) (Footprint, error) {
	if err := ValidateFOV(verticalFovDeg); err != nil {
		return Footprint{}, err
	}
	if math.IsNaN(depth) || depth <= 0 {
		return Footprint{}, fmt.Errorf("depth %g must be > 0: %w", depth, ErrInvalidFov)
	}
	if math.IsNaN(aspectRatio) || aspectRatio <= 0 {
		return Footprint{}, fmt.Errorf("aspect ratio %g must be > 0: %w", aspectRatio, ErrInvalidFov)
	}
	height := 2.0 * depth * math.Tan(DegToRad(verticalFovDeg)/2.0)
	return Footprint{Width: height * aspectRatio, Height: height}, nil
}
