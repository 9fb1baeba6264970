package models

import (
	"fmt"
	"slices"

	"github.com/taigrr/tessera/pkg/math3d"
)

// builder accumulates flat vertex buffers for the built-in primitives.
type builder struct {
	pos, norm, uv []float32
	idx           []uint16
}

func (b *builder) vertex(p, n math3d.Vec3, u, v float64) uint16 {
	i := uint16(len(b.pos) / 3)
	b.pos = append(b.pos, float32(p.X), float32(p.Y), float32(p.Z))
	b.norm = append(b.norm, float32(n.X), float32(n.Y), float32(n.Z))
	b.uv = append(b.uv, float32(u), float32(v))
	return i
}

// quad adds a face centered at c with outward normal n. up and n fix the
// face's right axis; corners are emitted bottom-left, top-left, top-right,
// bottom-right so both triangles are clockwise seen from outside.
func (b *builder) quad(c, n, up math3d.Vec3, half float64) {
	r := n.Cross(up).Scale(half)
	u := up.Scale(half)
	bl := b.vertex(c.Sub(r).Sub(u), n, 0, 0)
	tl := b.vertex(c.Sub(r).Add(u), n, 0, 1)
	tr := b.vertex(c.Add(r).Add(u), n, 1, 1)
	br := b.vertex(c.Add(r).Sub(u), n, 1, 0)
	b.idx = append(b.idx, bl, tl, tr, bl, tr, br)
}

// triangle adds a flat-shaded triangle, reordering it so it is clockwise
// when seen from outside a convex shape centered at the origin.
func (b *builder) triangle(p0, p1, p2 math3d.Vec3) {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	centroid := p0.Add(p1).Add(p2).Scale(1.0 / 3)
	if n.Dot(centroid) < 0 {
		p1, p2 = p2, p1
		n = n.Negate()
	}
	n = n.Normalize()
	i0 := b.vertex(p0, n, 0, 0)
	i1 := b.vertex(p1, n, 0.5, 1)
	i2 := b.vertex(p2, n, 1, 0)
	b.idx = append(b.idx, i0, i1, i2)
}

func (b *builder) mesh(name string) *Mesh {
	m, err := NewMesh(name, b.pos, b.norm, b.idx)
	if err != nil {
		// Built-in tables are static; a failure is a programming error.
		panic(err)
	}
	m.UVs = b.uv
	return m
}

// Cube returns an axis-aligned cube with the given edge length, centered on
// the origin, with 24 vertices so each face has its own normal.
func Cube(size float64) *Mesh {
	h := size / 2
	var b builder
	faces := []struct{ n, up math3d.Vec3 }{
		{math3d.V3(0, 0, -1), math3d.Up()},
		{math3d.V3(0, 0, 1), math3d.Up()},
		{math3d.V3(-1, 0, 0), math3d.Up()},
		{math3d.V3(1, 0, 0), math3d.Up()},
		{math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)},
		{math3d.V3(0, -1, 0), math3d.V3(0, 0, -1)},
	}
	for _, f := range faces {
		b.quad(f.n.Scale(h), f.n, f.up, h)
	}
	return b.mesh("cube")
}

// Pyramid returns a square-based pyramid of the given base width and
// height, centered on the origin.
func Pyramid(size float64) *Mesh {
	h := size / 2
	apex := math3d.V3(0, h, 0)
	base := [4]math3d.Vec3{
		math3d.V3(-h, -h, -h),
		math3d.V3(h, -h, -h),
		math3d.V3(h, -h, h),
		math3d.V3(-h, -h, h),
	}

	var b builder
	for i := range base {
		b.triangle(base[i], apex, base[(i+1)%4])
	}
	b.quad(math3d.V3(0, -h, 0), math3d.V3(0, -1, 0), math3d.V3(0, 0, -1), h)
	return b.mesh("pyramid")
}

// Plane returns a square in the XZ plane facing +Y.
func Plane(size float64) *Mesh {
	var b builder
	b.quad(math3d.Zero3(), math3d.Up(), math3d.V3(0, 0, 1), size/2)
	return b.mesh("plane")
}

var builtins = map[string]func(float64) *Mesh{
	"cube":    Cube,
	"pyramid": Pyramid,
	"plane":   Plane,
}

// Builtin returns the named primitive.
func Builtin(name string, size float64) (*Mesh, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin mesh %q (want one of %v)", name, BuiltinNames())
	}
	return fn(size), nil
}

// BuiltinNames lists the primitives Builtin accepts, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
