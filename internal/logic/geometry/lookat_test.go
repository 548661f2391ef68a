package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLookAt(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	cases := []struct {
		name         string
		from, target mgl64.Vec3
	}{
		{"toward_origin", mgl64.Vec3{0, 2, -4}, mgl64.Vec3{0, 2, 0}},
		{"oblique", mgl64.Vec3{1.3, 0.4, -2}, mgl64.Vec3{0, 1.9, -0.5}},
		{"straight_down", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facing, q := LookAt(tc.from, tc.target, up)
			want := tc.target.Sub(tc.from).Normalize()
			if !facing.ApproxEqualThreshold(want, 1e-9) {
				t.Errorf("facing = %v, want %v", facing, want)
			}
			if got := q.Rotate(mgl64.Vec3{0, 0, 1}); !got.ApproxEqualThreshold(want, 1e-6) {
				t.Errorf("q * +z = %v, want %v", got, want)
			}
		})
	}
}

func TestLookAt_Coincident(t *testing.T) {
	p := mgl64.Vec3{1, 2, 3}
	facing, q := LookAt(p, p, mgl64.Vec3{0, 1, 0})
	if facing != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("facing = %v, want +z", facing)
	}
	if q != mgl64.QuatIdent() {
		t.Errorf("q = %v, want identity", q)
	}
}
