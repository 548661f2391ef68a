package geometry

import "math"

// OverlapPercent estimates the horizontal overlap between two adjacent
// captures separated by stepDeg of pan, for an instrument with the given
// horizontal field of view. The result is in [0, 100].
func OverlapPercent(horizontalFovDeg, stepDeg float64) float64 {
	if horizontalFovDeg <= 0 {
		return 0
	}
	ratio := 1.0 - math.Abs(stepDeg)/horizontalFovDeg
	if ratio < 0 {
		return 0
	}
	return ratio * 100.0
}

// SamplesForOverlap calculates the number of captures needed to sweep
// spanDeg with the desired overlap ratio (0.0 to 1.0) between neighbours.
// Both endpoints are captured, so n captures give n-1 rotations; the count is
// rounded up to ensure the whole span is covered and limited to
// [2, maxSamples].
func SamplesForOverlap(spanDeg, horizontalFovDeg, overlapRatio float64, maxSamples int) int {
	if maxSamples < 2 {
		maxSamples = 2
	}
	rotation := RotationAngle(horizontalFovDeg, overlapRatio)
	if rotation <= 0 {
		return maxSamples
	}
	rotations := int(math.Ceil(math.Abs(spanDeg) / rotation))
	return ClampInt(rotations+1, 2, maxSamples)
}
