package render

import (
	"github.com/taigrr/tessera/pkg/math3d"
	"github.com/taigrr/tessera/pkg/models"
)

// Plane is the set of points where Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from the plane to point; positive
// is on the normal's side.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds six inward-facing planes: left, right, bottom, top, near,
// far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes of a view-projection matrix (Gribb and
// Hartmann). The near plane is the one OpenGL clips against, -w <= z.
func NewFrustum(m math3d.Mat4) Frustum {
	// column-major: row i, column j is m[i+4j]
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	wn, wd := row(3)

	var f Frustum
	for i := range 3 {
		n, d := row(i)
		f.Planes[2*i] = Plane{Normal: wn.Add(n), D: wd + d}
		f.Planes[2*i+1] = Plane{Normal: wn.Sub(n), D: wd - d}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p is inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether any part of box may be inside. It can
// report true for boxes just outside a frustum corner.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, pl := range f.Planes {
		// corner furthest along the normal
		v := math3d.V3(
			pick(pl.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(pl.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(pl.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if pl.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere may be inside.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, pl := range f.Planes {
		if pl.Distance(center) < -radius {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// MeshBounds returns the mesh's model-space bounds.
func MeshBounds(m *models.Mesh) AABB {
	return AABB{Min: m.BoundsMin, Max: m.BoundsMax}
}

// Center returns the middle of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Transform returns the box bounding all eight corners of b under m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		c := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.MulVec3(c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
