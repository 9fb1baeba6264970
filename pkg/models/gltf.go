package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
//
// glTF is right-handed with counter-clockwise front faces. The loader
// negates Z on positions and normals to mirror the geometry into
// tessera's left-handed space, and swaps the last two indices of every
// triangle so front faces wind clockwise.
type GLTFLoader struct {
	// CalculateNormals generates normals for primitives that have none.
	CalculateNormals bool
	// SmoothNormals averages generated normals across shared vertices.
	SmoothNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Decode(doc, filepath.Base(path))
}

// Decode merges every triangle primitive of doc into one mesh.
func (l *GLTFLoader) Decode(doc *gltf.Document, name string) (*Mesh, error) {
	b := &gltfBuilder{materialIndex: map[int]int{}}

	for _, m := range doc.Meshes {
		if err := b.processMesh(doc, m); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(b.pos) == 0 {
		return nil, fmt.Errorf("%w: %s has no triangle primitives", ErrInvalidMesh, name)
	}
	if len(b.pos)/3 > MaxVertices {
		return nil, fmt.Errorf("%w: %s has %d vertices, limit is %d",
			ErrInvalidMesh, name, len(b.pos)/3, MaxVertices)
	}

	indices := make([]uint16, len(b.idx))
	for i, v := range b.idx {
		indices[i] = uint16(v)
	}

	mesh := &Mesh{
		Name:      name,
		Positions: b.pos,
		Normals:   b.norm,
		Indices:   indices,
		Materials: b.materials,
	}
	if b.hasUV {
		mesh.UVs = b.uv
	}

	if l.CalculateNormals && !b.hasNormals {
		calc := mesh.CalculateNormals
		if l.SmoothNormals {
			calc = mesh.CalculateSmoothNormals
		}
		if err := calc(); err != nil {
			return nil, err
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

type gltfBuilder struct {
	pos, norm, uv []float32
	idx           []int
	hasNormals    bool
	hasUV         bool
	materials     []Material
	materialIndex map[int]int
}

// processMesh extracts geometry from a GLTF mesh.
func (b *gltfBuilder) processMesh(doc *gltf.Document, m *gltf.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		acr, err := accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		positions, err := modeler.ReadPosition(doc, acr, nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		count := len(positions)

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if acr, err = accessor(doc, normIdx); err == nil {
				normals, err = modeler.ReadNormal(doc, acr, nil)
			}
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
			b.hasNormals = true
		}

		// Normalized byte and short coordinates come back as floats in 0-1.
		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if acr, err = accessor(doc, uvIdx); err == nil {
				uvs, err = modeler.ReadTextureCoord(doc, acr, nil)
			}
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
			b.hasUV = true
		}

		base := len(b.pos) / 3
		for i, p := range positions {
			b.pos = append(b.pos, p[0], p[1], -p[2])
			if i < len(normals) {
				n := normals[i]
				b.norm = append(b.norm, n[0], n[1], -n[2])
			} else {
				b.norm = append(b.norm, 0, 0, 0)
			}
			if i < len(uvs) {
				// GLTF uses top-left origin (V=0 at top), flip V for bottom-left origin
				b.uv = append(b.uv, uvs[i][0], 1-uvs[i][1])
			} else {
				b.uv = append(b.uv, 0, 0)
			}
		}

		if prim.Indices != nil {
			acr, err := accessor(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			indices, err := modeler.ReadIndices(doc, acr, nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				tri := indices[i : i+3]
				for _, v := range tri {
					if int(v) >= count {
						return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidMesh, v, count)
					}
				}
				b.idx = append(b.idx, base+int(tri[0]), base+int(tri[2]), base+int(tri[1]))
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < count; i += 3 {
				b.idx = append(b.idx, base+i, base+i+2, base+i+1)
			}
		}

		if prim.Material != nil {
			b.addMaterial(doc, *prim.Material)
		}
	}

	return nil
}

func (b *gltfBuilder) addMaterial(doc *gltf.Document, idx int) {
	if _, seen := b.materialIndex[idx]; seen || idx < 0 || idx >= len(doc.Materials) {
		return
	}
	src := doc.Materials[idx]
	mat := Material{
		Name:      src.Name,
		BaseColor: [4]float64{1, 1, 1, 1},
		Metallic:  1,
		Roughness: 1,
	}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			mat.BaseColor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			mat.Metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			mat.Roughness = *pbr.RoughnessFactor
		}
	}
	b.materialIndex[idx] = len(b.materials)
	b.materials = append(b.materials, mat)
}

// accessor returns doc's accessor i.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	return doc.Accessors[i], nil
}
