package ptu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cjeanneret/PanCam/internal/debug"
	"github.com/cjeanneret/PanCam/internal/logic/geometry"
	"github.com/cjeanneret/PanCam/internal/logic/instrument"
)

// Scene axes: y is up and cameras look down their local -z axis.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, -1}
)

// DefaultBase is where the mast attaches to the reference rover body.
var DefaultBase = mgl64.Vec3{0, 1.9, -0.5}

// Pose is a world-space camera pose.
type Pose struct {
	Position    mgl64.Vec3
	Direction   mgl64.Vec3 // unit view direction
	Orientation mgl64.Quat
	Transform   mgl64.Mat4 // local-to-world
}

// Rig is the fixed geometry of the mast: the world position of its origin.
//
// The transform chain is base → pan (about world y) → tilt (about the
// panned x axis, sign inverted so positive tilt looks down) → instrument
// mount offset → instrument mount rotation. The mount rotation (toe-in) is
// applied last, so pan and tilt never change it.
type Rig struct {
	Base mgl64.Vec3
}

// NewRig creates a rig with its origin at base.
func NewRig(base mgl64.Vec3) Rig {
	return Rig{Base: base}
}

// Origin returns the world position of the rig origin. Pan and tilt are pure
// rotations about it, so it does not depend on the PTU state.
func (r Rig) Origin() mgl64.Vec3 {
	return r.Base
}

// BodyTransform is the rig origin frame, unaffected by pan and tilt.
func (r Rig) BodyTransform() mgl64.Mat4 {
	return mgl64.Translate3D(r.Base.X(), r.Base.Y(), r.Base.Z())
}

// PanTransform is the frame of the pan stage.
func (r Rig) PanTransform(s State) mgl64.Mat4 {
	return r.BodyTransform().Mul4(mgl64.HomogRotate3DY(geometry.DegToRad(s.PanDeg)))
}

// TiltTransform is the frame of the tilting head, nested inside the pan stage.
func (r Rig) TiltTransform(s State) mgl64.Mat4 {
	return r.PanTransform(s).Mul4(mgl64.HomogRotate3DX(-geometry.DegToRad(s.TiltDeg)))
}

// StageTransform returns the frame an instrument on stage is attached to.
func (r Rig) StageTransform(stage instrument.Stage, s State) mgl64.Mat4 {
	switch stage {
	case instrument.StageBody:
		return r.BodyTransform()
	case instrument.StagePan:
		return r.PanTransform(s)
	default:
		return r.TiltTransform(s)
	}
}

// WorldPoseOf derives the world pose of an instrument for a PTU state.
func (r Rig) WorldPoseOf(spec instrument.Spec, s State) Pose {
	mp := spec.MountPosition
	mount := mgl64.Translate3D(mp.X(), mp.Y(), mp.Z()).Mul4(spec.MountOrientation().Mat4())
	m := r.StageTransform(spec.Stage, s).Mul4(mount)

	pose := Pose{
		Position:    m.Col(3).Vec3(),
		Direction:   m.Mat3().Mul3x1(Forward).Normalize(),
		Orientation: mgl64.Mat4ToQuat(m).Normalize(),
		Transform:   m,
	}
	debug.Trace("%s transform: %v", spec.ID, m)
	return pose
}

// Model binds a rig to an instrument registry so poses can be looked up by id.
type Model struct {
	rig      Rig
	registry *instrument.Registry
}

// NewModel creates a kinematic model.
func NewModel(rig Rig, registry *instrument.Registry) *Model {
	return &Model{rig: rig, registry: registry}
}

// Rig returns the model's rig geometry.
func (m *Model) Rig() Rig {
	return m.rig
}

// Registry returns the instrument registry the model resolves ids against.
func (m *Model) Registry() *instrument.Registry {
	return m.registry
}

// WorldPoseOf returns the world pose of the instrument with the given id,
// or instrument.ErrUnknownInstrument.
func (m *Model) WorldPoseOf(id string, s State) (Pose, error) {
	spec, err := m.registry.Get(id)
	if err != nil {
		return Pose{}, fmt.Errorf("world pose: %w", err)
	}
	pose := m.rig.WorldPoseOf(spec, s)
	debug.Pose(id, pose.Position, pose.Direction)
	return pose, nil
}
