// Package scene holds transformable objects, cameras and the flat scene list
// the renderer walks each frame.
package scene

import (
	"github.com/taigrr/tessera/pkg/math3d"
	"github.com/taigrr/tessera/pkg/models"
)

// Object is a named thing with a position, an Euler rotation in degrees and
// a scale. Its world and view matrices are cached and only recomputed after
// a mutation.
//
// Every setter marks the object dirty; WorldMatrix and ViewMatrix refresh
// both caches at most once per mutation. The mesh is shared by reference
// and is not owned by the object.
type Object struct {
	name string

	position math3d.Vec3
	rotation math3d.Vec3 // degrees, each axis in [0, 360)
	scale    math3d.Vec3

	// Mesh is drawn by the renderer; nil objects are skipped.
	Mesh *models.Mesh
	// Material overrides the mesh's own material when set.
	Material *models.Material

	world math3d.Mat4
	view  math3d.Mat4
	dirty bool

	recomputes int
}

// NewObject creates an object at the origin with unit scale.
func NewObject(name string) *Object {
	return &Object{
		name:  name,
		scale: math3d.One3(),
		world: math3d.Identity(),
		view:  math3d.Identity(),
		dirty: true,
	}
}

// NewMeshObject creates an object that draws mesh.
func NewMeshObject(name string, mesh *models.Mesh) *Object {
	o := NewObject(name)
	o.Mesh = mesh
	return o
}

// Name returns the object's identity key.
func (o *Object) Name() string { return o.name }

// Position returns the object position.
func (o *Object) Position() math3d.Vec3 { return o.position }

// Rotation returns the Euler rotation in degrees.
func (o *Object) Rotation() math3d.Vec3 { return o.rotation }

// Scale returns the per-axis scale.
func (o *Object) Scale() math3d.Vec3 { return o.scale }

// Dirty reports whether the cached matrices are stale.
func (o *Object) Dirty() bool { return o.dirty }

// SetPosition moves the object to p.
func (o *Object) SetPosition(p math3d.Vec3) {
	o.position = p
	o.dirty = true
}

// SetPositionXYZ moves the object to (x, y, z).
func (o *Object) SetPositionXYZ(x, y, z float64) {
	o.SetPosition(math3d.V3(x, y, z))
}

// Translate adds delta to the position.
func (o *Object) Translate(delta math3d.Vec3) {
	o.SetPosition(o.position.Add(delta))
}

// TranslateXYZ adds (x, y, z) to the position.
func (o *Object) TranslateXYZ(x, y, z float64) {
	o.Translate(math3d.V3(x, y, z))
}

// TranslateLocal moves the object along its own axes: delta.X is right,
// delta.Y up and delta.Z forward.
func (o *Object) TranslateLocal(delta math3d.Vec3) {
	o.Translate(math3d.EulerRotation(o.rotation).MulVec3Dir(delta))
}

// SetRotation sets the Euler rotation in degrees, wrapping every axis into
// [0, 360).
func (o *Object) SetRotation(deg math3d.Vec3) {
	o.rotation = math3d.WrapDegrees3(deg)
	o.dirty = true
}

// SetRotationXYZ sets the Euler rotation from components in degrees.
func (o *Object) SetRotationXYZ(x, y, z float64) {
	o.SetRotation(math3d.V3(x, y, z))
}

// Rotate adds delta degrees to the rotation, then wraps.
func (o *Object) Rotate(delta math3d.Vec3) {
	o.SetRotation(o.rotation.Add(delta))
}

// RotateXYZ adds (x, y, z) degrees to the rotation, then wraps.
func (o *Object) RotateXYZ(x, y, z float64) {
	o.Rotate(math3d.V3(x, y, z))
}

// SetScale sets the per-axis scale.
func (o *Object) SetScale(s math3d.Vec3) {
	o.scale = s
	o.dirty = true
}

// SetScaleXYZ sets the per-axis scale from components.
func (o *Object) SetScaleXYZ(x, y, z float64) {
	o.SetScale(math3d.V3(x, y, z))
}

// Forward returns the world-space direction the object faces: +Z rotated
// by the current rotation.
func (o *Object) Forward() math3d.Vec3 {
	return math3d.EulerRotation(o.rotation).MulVec3Dir(math3d.Forward())
}

// WorldMatrix returns T·Rx·Ry·Rz·S, recomputing it only when dirty.
func (o *Object) WorldMatrix() math3d.Mat4 {
	if o.dirty {
		o.refresh()
	}
	return o.world
}

// ViewMatrix returns the look-at matrix from the object's position along
// its forward vector, recomputing it only when dirty.
func (o *Object) ViewMatrix() math3d.Mat4 {
	if o.dirty {
		o.refresh()
	}
	return o.view
}

// refresh rebuilds both caches from the current state and clears the flag.
func (o *Object) refresh() {
	world := math3d.Translate(o.position)
	world.Rotate(o.rotation)
	s := math3d.Scale(o.scale)
	math3d.Multiply(&world, &world, &s)
	o.world = world

	o.view = math3d.LookAt(o.position, o.position.Add(o.Forward()), math3d.Up())

	o.dirty = false
	o.recomputes++
}
