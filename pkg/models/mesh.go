// Package models provides mesh data for tessera: validated vertex and index
// buffers, built-in primitives and a glTF loader.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/tessera/pkg/gl"
	"github.com/taigrr/tessera/pkg/math3d"
)

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 1 << 16

var (
	// ErrInvalidMesh is wrapped by every buffer validation failure.
	ErrInvalidMesh = errors.New("invalid mesh")
	// ErrAlreadyBound is returned when a mesh that already owns GPU buffers
	// is bound again or mutated.
	ErrAlreadyBound = errors.New("mesh already bound")
)

// Mesh holds per-attribute vertex buffers and a triangle index list.
//
// Buffers are flat: Positions and Normals carry three floats per vertex,
// UVs two. Indices reference vertices and are wound clockwise for front
// faces. A mesh is shared by reference between objects and must not be
// modified once it has a Binding.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint16
	Materials []Material

	// Bounding box (calculated on construction)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	binding *Binding
}

// Material is a flat base color plus the PBR factors read from glTF.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Metallic  float64
	Roughness float64
}

// Binding is the GPU side of a mesh: its vertex array, the buffers feeding
// it and the number of indices to draw.
type Binding struct {
	VAO        gl.VertexArray
	Buffers    []gl.Buffer
	IndexCount int32
}

// NewMesh validates the buffers and returns a mesh that takes ownership of
// them.
func NewMesh(name string, positions, normals []float32, indices []uint16) (*Mesh, error) {
	m := &Mesh{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CalculateBounds()
	return m, nil
}

// WithUVs attaches texture coordinates, two floats per vertex.
func (m *Mesh) WithUVs(uvs []float32) (*Mesh, error) {
	if m.binding != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.Name, ErrAlreadyBound)
	}
	if len(uvs) != m.VertexCount()*2 {
		return nil, fmt.Errorf("%w: mesh %q has %d uv floats for %d vertices",
			ErrInvalidMesh, m.Name, len(uvs), m.VertexCount())
	}
	m.UVs = uvs
	return m, nil
}

// Validate checks buffer lengths and index ranges.
func (m *Mesh) Validate() error {
	switch {
	case len(m.Positions) == 0:
		return fmt.Errorf("%w: mesh %q has no positions", ErrInvalidMesh, m.Name)
	case len(m.Positions)%3 != 0:
		return fmt.Errorf("%w: mesh %q positions length %d is not a multiple of 3",
			ErrInvalidMesh, m.Name, len(m.Positions))
	case len(m.Normals) != len(m.Positions):
		return fmt.Errorf("%w: mesh %q has %d normal floats for %d position floats",
			ErrInvalidMesh, m.Name, len(m.Normals), len(m.Positions))
	case m.UVs != nil && len(m.UVs) != m.VertexCount()*2:
		return fmt.Errorf("%w: mesh %q has %d uv floats for %d vertices",
			ErrInvalidMesh, m.Name, len(m.UVs), m.VertexCount())
	case len(m.Indices) == 0 || len(m.Indices)%3 != 0:
		return fmt.Errorf("%w: mesh %q index count %d is not a positive multiple of 3",
			ErrInvalidMesh, m.Name, len(m.Indices))
	case m.VertexCount() > MaxVertices:
		return fmt.Errorf("%w: mesh %q has %d vertices, limit is %d",
			ErrInvalidMesh, m.Name, m.VertexCount(), MaxVertices)
	}

	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: mesh %q index %d at %d out of range [0,%d)",
				ErrInvalidMesh, m.Name, idx, i, n)
		}
	}
	return nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math3d.Vec3 {
	return vec3At(m.Positions, i)
}

// Normal returns vertex i's normal.
func (m *Mesh) Normal(i int) math3d.Vec3 {
	return vec3At(m.Normals, i)
}

// UV returns vertex i's texture coordinate, or zero for meshes without
// UVs.
func (m *Mesh) UV(i int) math3d.Vec2 {
	if len(m.UVs) < (i+1)*2 {
		return math3d.Vec2{}
	}
	return math3d.V2(float64(m.UVs[i*2]), float64(m.UVs[i*2+1]))
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]int {
	return [3]int{int(m.Indices[i*3]), int(m.Indices[i*3+1]), int(m.Indices[i*3+2])}
}

// Binding returns the cached GPU binding, if any.
func (m *Mesh) Binding() (*Binding, bool) {
	return m.binding, m.binding != nil
}

// Bind caches b on the mesh. A mesh is bound at most once.
func (m *Mesh) Bind(b *Binding) error {
	if m.binding != nil {
		return fmt.Errorf("mesh %q: %w", m.Name, ErrAlreadyBound)
	}
	m.binding = b
	return nil
}

// Release deletes the GPU objects behind the binding and forgets it.
func (m *Mesh) Release(ctx gl.Context) {
	if m.binding == nil {
		return
	}
	ctx.DeleteVertexArray(m.binding.VAO)
	for _, b := range m.binding.Buffers {
		ctx.DeleteBuffer(b)
	}
	m.binding = nil
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	n := m.VertexCount()
	if n == 0 {
		return
	}

	m.BoundsMin = m.Position(0)
	m.BoundsMax = m.BoundsMin
	for i := 1; i < n; i++ {
		p := m.Position(i)
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// faceNormal returns the unnormalized normal of triangle t. With clockwise
// winding in a left-handed space the edge cross product faces outward.
func (m *Mesh) faceNormal(t int) math3d.Vec3 {
	tri := m.Triangle(t)
	v0 := m.Position(tri[0])
	v1 := m.Position(tri[1])
	v2 := m.Position(tri[2])
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// CalculateNormals assigns each triangle's face normal to its vertices.
// Shared vertices end up with the normal of the last triangle touching them.
// Only valid before binding.
func (m *Mesh) CalculateNormals() error {
	if m.binding != nil {
		return fmt.Errorf("calculate normals for mesh %q: %w", m.Name, ErrAlreadyBound)
	}
	m.Normals = make([]float32, len(m.Positions))
	for t := range m.TriangleCount() {
		n := m.faceNormal(t).Normalize()
		for _, v := range m.Triangle(t) {
			setVec3(m.Normals, v, n)
		}
	}
	return nil
}

// CalculateSmoothNormals computes area-weighted averaged normals. Only
// valid before binding.
func (m *Mesh) CalculateSmoothNormals() error {
	if m.binding != nil {
		return fmt.Errorf("calculate smooth normals for mesh %q: %w", m.Name, ErrAlreadyBound)
	}
	acc := make([]math3d.Vec3, m.VertexCount())
	for t := range m.TriangleCount() {
		n := m.faceNormal(t)
		for _, v := range m.Triangle(t) {
			acc[v] = acc[v].Add(n)
		}
	}

	m.Normals = make([]float32, len(m.Positions))
	for i, n := range acc {
		setVec3(m.Normals, i, n.Normalize())
	}
	return nil
}

// Transform bakes mat into the vertex data. Only valid before binding.
func (m *Mesh) Transform(mat math3d.Mat4) error {
	if m.binding != nil {
		return fmt.Errorf("transform mesh %q: %w", m.Name, ErrAlreadyBound)
	}
	for i := range m.VertexCount() {
		setVec3(m.Positions, i, mat.MulVec3(m.Position(i)))
		// Rotation part only; non-uniform scale skews normals.
		setVec3(m.Normals, i, mat.MulVec3Dir(m.Normal(i)).Normalize())
	}
	m.CalculateBounds()
	return nil
}

// Clone creates a deep copy of the mesh without its GPU binding.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Positions: append([]float32(nil), m.Positions...),
		Normals:   append([]float32(nil), m.Normals...),
		Indices:   append([]uint16(nil), m.Indices...),
		Materials: append([]Material(nil), m.Materials...),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	if m.UVs != nil {
		clone.UVs = append([]float32(nil), m.UVs...)
	}
	return clone
}

func vec3At(buf []float32, i int) math3d.Vec3 {
	return math3d.V3(float64(buf[i*3]), float64(buf[i*3+1]), float64(buf[i*3+2]))
}

func setVec3(buf []float32, i int, v math3d.Vec3) {
	buf[i*3] = float32(v.X)
	buf[i*3+1] = float32(v.Y)
	buf[i*3+2] = float32(v.Z)
}
