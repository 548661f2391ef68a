package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis limits of the pan-tilt unit, in degrees.
const (
	PanMinDeg  = -180.0
	PanMaxDeg  = 180.0
	TiltMinDeg = -90.0
	TiltMaxDeg = 90.0
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return mgl64.DegToRad(deg)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return mgl64.RadToDeg(rad)
}

// Clamp limits v to [lo, hi]. NaN is treated as 0 before clamping so that a
// bad slider value still lands inside the range.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return mgl64.Clamp(v, lo, hi)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPan limits a pan angle to [-180, 180].
func ClampPan(deg float64) float64 {
	return Clamp(deg, PanMinDeg, PanMaxDeg)
}

// ClampTilt limits a tilt angle to [-90, 90].
func ClampTilt(deg float64) float64 {
	return Clamp(deg, TiltMinDeg, TiltMaxDeg)
}
