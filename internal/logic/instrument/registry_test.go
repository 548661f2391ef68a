package instrument

import (
	"errors"
	"math"
	"testing"

	"github.com/cjeanneret/PanCam/internal/logic/geometry"
)

func newSpec(id string) Spec {
	return Spec{ID: id, VerticalFovDeg: 38, AspectRatio: 1, NearDistance: 1, FarDistance: 2}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(newSpec("lwac")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := r.Get("lwac")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "lwac" || got.VerticalFovDeg != 38 {
		t.Errorf("Get returned %+v", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(newSpec("hrc")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := r.Register(newSpec("hrc"))
	if !errors.Is(err, ErrDuplicateInstrument) {
		t.Errorf("second Register err = %v, want ErrDuplicateInstrument", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d after duplicate, want 1", r.Len())
	}
}

func TestRegistry_UnknownInstrument(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	if !errors.Is(err, ErrUnknownInstrument) {
		t.Errorf("Get err = %v, want ErrUnknownInstrument", err)
	}
}

func TestRegistry_InvalidFovRejected(t *testing.T) {
	cases := []struct {
		name string
		fov  float64
	}{
		{"fov_180", 180},
		{"fov_zero", 0},
		{"fov_negative", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSpec("bad")
			s.VerticalFovDeg = tc.fov
			err := NewRegistry().Register(s)
			if !errors.Is(err, geometry.ErrInvalidFov) {
				t.Errorf("Register err = %v, want ErrInvalidFov", err)
			}
		})
	}
}

func TestRegistry_InvalidSpecRejected(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"empty_id", func(s *Spec) { s.ID = "" }},
		{"zero_aspect", func(s *Spec) { s.AspectRatio = 0 }},
		{"far_not_beyond_near", func(s *Spec) { s.FarDistance = s.NearDistance }},
		{"negative_near", func(s *Spec) { s.NearDistance = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSpec("x")
			tc.mutate(&s)
			if err := NewRegistry().Register(s); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRegistry_ListActive(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"lwac", "rwac", "hrc"} {
		if err := r.Register(newSpec(id)); err != nil {
			t.Fatal(err)
		}
	}

	// Registration order wins over request order; unknown ids are skipped.
	got := r.ListActive(map[string]bool{"hrc": true, "lwac": true, "ghost": true})
	if len(got) != 2 {
		t.Fatalf("ListActive returned %d specs, want 2", len(got))
	}
	if got[0].ID != "lwac" || got[1].ID != "hrc" {
		t.Errorf("ListActive order = [%s %s], want [lwac hrc]", got[0].ID, got[1].ID)
	}

	if got := r.ListActive(nil); len(got) != 0 {
		t.Errorf("ListActive(nil) = %d specs, want 0", len(got))
	}
	if got := r.ListActive(map[string]bool{"rwac": false}); len(got) != 0 {
		t.Errorf("ListActive with false flag = %d specs, want 0", len(got))
	}
}

func TestRegistry_ListActive_AssetNotLoaded(t *testing.T) {
	r := NewRegistry()
	s := newSpec("clupi")
	s.Asset = "drill"
	if err := r.Register(s); err != nil {
		t.Fatal(err)
	}

	loaded := false
	r.SetAvailability(func(asset string) bool { return asset == "drill" && loaded })

	if got := r.ListActive(map[string]bool{"clupi": true}); len(got) != 0 {
		t.Errorf("instrument with unloaded asset should contribute nothing, got %d", len(got))
	}
	loaded = true
	if got := r.ListActive(map[string]bool{"clupi": true}); len(got) != 1 {
		t.Errorf("instrument with loaded asset should be listed, got %d", len(got))
	}
}

func TestReference_AllRegister(t *testing.T) {
	r, err := NewRegistryWith(Reference())
	if err != nil {
		t.Fatalf("reference table rejected: %v", err)
	}
	for _, id := range []string{LWAC, RWAC, HRC, NavCamL, NavCamR, LocCamL, LocCamR, CLUPI, ISEM} {
		if _, err := r.Get(id); err != nil {
			t.Errorf("Get(%s): %v", id, err)
		}
	}
}

func TestFootprintSize_Spec(t *testing.T) {
	s := newSpec("lwac")
	fp, err := FootprintSize(s, s.FarDistance)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * 2 * math.Tan(19*math.Pi/180)
	if math.Abs(fp.Height-want) > 1e-9 || math.Abs(fp.Width-want) > 1e-9 {
		t.Errorf("footprint = %+v, want %v square", fp, want)
	}

	if _, err := FootprintSize(s, 0); !errors.Is(err, geometry.ErrInvalidFov) {
		t.Errorf("depth 0 err = %v, want ErrInvalidFov", err)
	}
}

func TestSpec_MountOrientationDefaultsToIdentity(t *testing.T) {
	s := newSpec("x")
	q := s.MountOrientation()
	if q.W != 1 || q.V.Len() != 0 {
		t.Errorf("MountOrientation() = %v, want identity", q)
	}
}

func TestParseStage(t *testing.T) {
	cases := map[string]Stage{"": StageTilt, "tilt": StageTilt, "pan": StagePan, "body": StageBody}
	for in, want := range cases {
		got, err := ParseStage(in)
		if err != nil || got != want {
			t.Errorf("ParseStage(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseStage("mast"); err == nil {
		t.Error("ParseStage(\"mast\") should fail")
	}
}

func TestStyle_Hex(t *testing.T) {
	if got := (Style{Color: 0x886666}).Hex(); got != "#886666" {
		t.Errorf("Hex() = %q, want #886666", got)
	}
}
