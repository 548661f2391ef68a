package scene

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjeanneret/PanCam/internal/logic/instrument"
	"github.com/cjeanneret/PanCam/internal/logic/planner"
	"github.com/cjeanneret/PanCam/internal/logic/ptu"
)

const eps = 1e-9

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestAssets_LoadedAfterResolve(t *testing.T) {
	a := NewAssets(AssetBody, AssetMasthead, AssetDrill)
	assert.False(t, a.Loaded(AssetDrill))
	assert.Equal(t, "pending", a.Status()[AssetDrill])

	a.Resolve(AssetDrill)
	assert.True(t, a.Loaded(AssetDrill))
	assert.Equal(t, "loaded", a.Status()[AssetDrill])
	assert.False(t, a.Loaded("unknown"))
}

func TestAssets_LoadAll(t *testing.T) {
	a := NewAssets(AssetBody, AssetMasthead, AssetDrill)
	boom := errors.New("missing mesh")

	err := a.LoadAll(context.Background(), map[string]Loader{
		AssetBody:     func(context.Context) error { return nil },
		AssetMasthead: func(context.Context) error { return nil },
		AssetDrill:    func(context.Context) error { return boom },
	})
	require.ErrorIs(t, err, boom)

	assert.True(t, a.Loaded(AssetBody))
	assert.False(t, a.Loaded(AssetDrill))
	assert.Equal(t, "failed", a.Status()[AssetDrill])
	assert.ErrorIs(t, a.Err(AssetDrill), boom)
}

func TestAssets_LoadAll_FailureDoesNotCancelSiblings(t *testing.T) {
	a := NewAssets(AssetBody, AssetDrill)
	boom := errors.New("missing mesh")

	err := a.LoadAll(context.Background(), map[string]Loader{
		AssetBody: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(20 * time.Millisecond):
				return nil
			}
		},
		AssetDrill: func(context.Context) error { return boom },
	})
	require.ErrorIs(t, err, boom)

	assert.True(t, a.Loaded(AssetBody))
	assert.NoError(t, a.Err(AssetBody))
	assert.Equal(t, "failed", a.Status()[AssetDrill])
}

func TestAssets_LoadAll_CallerCancel(t *testing.T) {
	a := NewAssets(AssetBody)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.LoadAll(ctx, map[string]Loader{
		AssetBody: func(ctx context.Context) error { return ctx.Err() },
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, a.Loaded(AssetBody))
}

func TestAssets_GateRegistry(t *testing.T) {
	reg, err := instrument.NewRegistryWith(instrument.Reference())
	require.NoError(t, err)
	a := NewAssets(AssetDrill)
	reg.SetAvailability(a.Loaded)

	ids := map[string]bool{instrument.CLUPI: true, instrument.LWAC: true}
	active := reg.ListActive(ids)
	require.Len(t, active, 1)
	assert.Equal(t, instrument.LWAC, active[0].ID)

	a.Resolve(AssetDrill)
	assert.Len(t, reg.ListActive(ids), 2)
}

func TestTileQuad_Identity(t *testing.T) {
	q := TileQuad(planner.Tile{
		Position:    mgl64.Vec3{0, 0, -5},
		Orientation: mgl64.QuatIdent(),
		Width:       2,
		Height:      1,
	})
	assertVec(t, mgl64.Vec3{-1, -0.5, -5}, q[0])
	assertVec(t, mgl64.Vec3{1, -0.5, -5}, q[1])
	assertVec(t, mgl64.Vec3{1, 0.5, -5}, q[2])
	assertVec(t, mgl64.Vec3{-1, 0.5, -5}, q[3])
	assertVec(t, mgl64.Vec3{0, 0, -5}, q.Centre())
}

func TestTileQuad_PlannedTiles(t *testing.T) {
	reg, err := instrument.NewRegistryWith(instrument.Reference())
	require.NoError(t, err)
	model := ptu.NewModel(ptu.NewRig(ptu.DefaultBase), reg)
	p := planner.New(model, planner.DefaultMaxSamples)

	req := planner.DefaultRequest()
	req.StartDeg, req.StopDeg, req.SampleCount, req.FixedTiltDeg = -90, 90, 4, 20
	req.Instruments[instrument.LWAC] = true
	req.Instruments[instrument.HRC] = true

	tiles := p.Plan(ptu.NewHead(), req, nil)
	require.Len(t, tiles, 8)
	for _, tl := range tiles {
		q := TileQuad(tl)
		assertVec(t, tl.Position, q.Centre())
		assert.InDelta(t, tl.Width, q[1].Sub(q[0]).Len(), 1e-9)
		assert.InDelta(t, tl.Height, q[3].Sub(q[0]).Len(), 1e-9)
		for _, c := range q {
			assert.InDelta(t, 0, c.Sub(tl.Position).Dot(tl.Normal), 1e-9, "corner off the tile plane")
		}
	}
}

func TestFrustumOf(t *testing.T) {
	spec := instrument.Spec{ID: "cam", VerticalFovDeg: 90, AspectRatio: 2, NearDistance: 1, FarDistance: 3}
	base := mgl64.Vec3{0, 1, 0}
	pose := ptu.NewRig(base).WorldPoseOf(spec, ptu.State{})

	f := FrustumOf(pose, spec, 3)
	assertVec(t, base, f.Apex)
	assertVec(t, mgl64.Vec3{-2, 0, -1}, f.Near[0])
	assertVec(t, mgl64.Vec3{2, 2, -1}, f.Near[2])
	assertVec(t, mgl64.Vec3{-6, -2, -3}, f.Far[0])
	assertVec(t, mgl64.Vec3{6, 4, -3}, f.Far[2])
}

func TestFrustumOf_FarCentreOnAxis(t *testing.T) {
	spec := instrument.Reference()[0]
	state := ptu.State{PanDeg: 35, TiltDeg: 40}
	pose := ptu.NewRig(ptu.DefaultBase).WorldPoseOf(spec, state)

	f := FrustumOf(pose, spec, 5)
	want := pose.Position.Add(pose.Direction.Mul(5))
	assertVec(t, want, f.Far.Centre())

	// Far plane height matches the footprint at the same depth.
	fp, err := instrument.FootprintSize(spec, 5)
	require.NoError(t, err)
	assert.InDelta(t, fp.Height, f.Far[3].Sub(f.Far[0]).Len(), 1e-9)
	assert.InDelta(t, 2*5*math.Tan(mgl64.DegToRad(spec.VerticalFovDeg)/2), fp.Height, 1e-9)
}
