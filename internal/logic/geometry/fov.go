package geometry

import (
	"fmt"
	"math"
)

// FOVCalculator computes field of view angles from sensor size and
// focal length, for instruments described by their optics rather than
// by a field of view.
type FOVCalculator struct {
	sensorWidthMm  float64
	sensorHeightMm float64
	focalLengthMm  float64
}

// NewFOVCalculator creates a new FOV calculator.
// Returns an error if any dimension is not strictly positive.
func NewFOVCalculator(sensorWidthMm, sensorHeightMm, focalLengthMm float64) (*FOVCalculator, error) {
	if !(sensorWidthMm > 0) || !(sensorHeightMm > 0) {
		return nil, fmt.Errorf("sensor size must be > 0, got %gx%g mm", sensorWidthMm, sensorHeightMm)
	}
	if !(focalLengthMm > 0) {
		return nil, fmt.Errorf("focal length must be > 0, got %g mm", focalLengthMm)
	}
	return &FOVCalculator{
		sensorWidthMm:  sensorWidthMm,
		sensorHeightMm: sensorHeightMm,
		focalLengthMm:  focalLengthMm,
	}, nil
}

// HorizontalFOV calculates the horizontal field of view in degrees.
// Formula: FOV = 2 × arctan(sensor_width / (2 × focal_length))
func (f *FOVCalculator) HorizontalFOV() float64 {
	return RadToDeg(2.0 * math.Atan(f.sensorWidthMm/(2.0*f.focalLengthMm)))
}

// VerticalFOV calculates the vertical field of view in degrees.
// Formula: FOV = 2 × arctan(sensor_height / (2 × focal_length))
func (f *FOVCalculator) VerticalFOV() float64 {
	return RadToDeg(2.0 * math.Atan(f.sensorHeightMm/(2.0*f.focalLengthMm)))
}

// AspectRatio returns sensor width over sensor height.
func (f *FOVCalculator) AspectRatio() float64 {
	return f.sensorWidthMm / f.sensorHeightMm
}

// HorizontalFOVFromVertical derives the horizontal field of view of a
// perspective camera from its vertical field of view and aspect ratio.
func HorizontalFOVFromVertical(verticalFovDeg, aspectRatio float64) float64 {
	half := math.Tan(DegToRad(verticalFovDeg) / 2.0)
	return RadToDeg(2.0 * math.Atan(half*aspectRatio))
}

// RotationAngle calculates the rotation between two captures needed to
// achieve the desired overlap.
// If overlap = 30%, then each capture covers 70% new content.
// Angle = FOV × (1 - overlap_ratio)
func RotationAngle(fovDeg, overlapRatio float64) float64 {
	return fovDeg * (1.0 - overlapRatio)
}
