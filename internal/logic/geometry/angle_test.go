package geometry

import (
	"math"
	"testing"
)

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{-180, -43.5, 0, 19, 65.75, 180} {
		if got := RadToDeg(DegToRad(deg)); math.Abs(got-deg) > 1e-9 {
			t.Errorf("RadToDeg(DegToRad(%v)) = %v", deg, got)
		}
	}
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
}

func TestClampPan(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{-70, -70},
		{180, 180},
		{180.5, 180},
		{-720, -180},
		{math.Inf(1), 180},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := ClampPan(tc.in); got != tc.want {
			t.Errorf("ClampPan(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampTilt(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{65.75, 65.75},
		{90, 90},
		{91, 90},
		{-200, -90},
		{math.Inf(-1), -90},
	}
	for _, tc := range cases {
		if got := ClampTilt(tc.in); got != tc.want {
			t.Errorf("ClampTilt(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(1, 2, 30); got != 2 {
		t.Errorf("ClampInt(1, 2, 30) = %d, want 2", got)
	}
	if got := ClampInt(31, 2, 30); got != 30 {
		t.Errorf("ClampInt(31, 2, 30) = %d, want 30", got)
	}
	if got := ClampInt(7, 2, 30); got != 7 {
		t.Errorf("ClampInt(7, 2, 30) = %d, want 7", got)
	}
}
