package geometry

import (
	"math"
	"testing"
)

const epsilon = 0.01 // tolerance for float comparisons (degrees)

func TestNewFOVCalculator_InvalidInput(t *testing.T) {
	cases := []struct {
		name        string
		w, h, focal float64
	}{
		{"zero_width", 0, 15.8, 35},
		{"negative_height", 23.6, -1, 35},
		{"zero_focal", 23.6, 15.8, 0},
		{"nan_focal", 23.6, 15.8, math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewFOVCalculator(tc.w, tc.h, tc.focal); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// Reference: APS-C (23.6 x 15.8 mm) with 35mm lens
// HorizontalFOV = 2 * atan(23.6 / (2*35)) * 180/pi ~ 37.22 deg
// VerticalFOV   = 2 * atan(15.8 / (2*35)) * 180/pi ~ 25.43 deg
func TestFOVCalculator_APSC_35mm(t *testing.T) {
	fov, err := NewFOVCalculator(23.6, 15.8, 35)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantH := 2.0 * math.Atan(23.6/(2.0*35.0)) * 180.0 / math.Pi
	if got := fov.HorizontalFOV(); math.Abs(got-wantH) > epsilon {
		t.Errorf("HorizontalFOV() = %v, want ~%v", got, wantH)
	}
	wantV := 2.0 * math.Atan(15.8/(2.0*35.0)) * 180.0 / math.Pi
	if got := fov.VerticalFOV(); math.Abs(got-wantV) > epsilon {
		t.Errorf("VerticalFOV() = %v, want ~%v", got, wantV)
	}
	if got := fov.AspectRatio(); math.Abs(got-23.6/15.8) > 1e-9 {
		t.Errorf("AspectRatio() = %v, want %v", got, 23.6/15.8)
	}
}

func TestFOVCalculator_FOV_DecreasesWithFocalLength(t *testing.T) {
	wide, _ := NewFOVCalculator(23.6, 15.8, 18)
	tele, _ := NewFOVCalculator(23.6, 15.8, 200)

	if wide.HorizontalFOV() <= tele.HorizontalFOV() {
		t.Errorf("18mm FOV (%v) should be larger than 200mm FOV (%v)",
			wide.HorizontalFOV(), tele.HorizontalFOV())
	}
	if wide.VerticalFOV() <= tele.VerticalFOV() {
		t.Errorf("18mm vertical FOV (%v) should be larger than 200mm vertical FOV (%v)",
			wide.VerticalFOV(), tele.VerticalFOV())
	}
}

func TestHorizontalFOVFromVertical(t *testing.T) {
	cases := []struct {
		name   string
		vfov   float64
		aspect float64
		want   float64
	}{
		{"square", 38, 1, 38},
		{"apsc_35mm", 2.0 * math.Atan(15.8/70.0) * 180.0 / math.Pi, 23.6 / 15.8, 2.0 * math.Atan(23.6/70.0) * 180.0 / math.Pi},
		{"wide_aspect_widens", 30, 2, 2.0 * math.Atan(2*math.Tan(15*math.Pi/180)) * 180 / math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HorizontalFOVFromVertical(tc.vfov, tc.aspect)
			if math.Abs(got-tc.want) > epsilon {
				t.Errorf("HorizontalFOVFromVertical(%v, %v) = %v, want %v", tc.vfov, tc.aspect, got, tc.want)
			}
		})
	}
}

func TestRotationAngle_Overlap(t *testing.T) {
	cases := []struct {
		name    string
		overlap float64
		want    float64
	}{
		{"zero", 0, 38},
		{"thirty", 0.3, 38 * 0.7},
		{"half", 0.5, 19},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RotationAngle(38, tc.overlap); math.Abs(got-tc.want) > epsilon {
				t.Errorf("RotationAngle(38, %v) = %v, want %v", tc.overlap, got, tc.want)
			}
		})
	}
}
