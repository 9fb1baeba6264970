package models

import (
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/tessera/pkg/math3d"
)

func ptr(i int) *int { return &i }

// buildTriangle builds a one-triangle document, counter-clockwise seen from
// +Z as glTF expects. uvs is any TEXCOORD_0 payload modeler accepts.
func buildTriangle(withNormals bool, uvs any, indices []uint16) *gltf.Document {
	doc := &gltf.Document{}
	attrs := gltf.PrimitiveAttributes{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	if uvs != nil {
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Indices:    ptr(modeler.WriteIndices(doc, indices)),
			Material:   ptr(0),
		}},
	}}
	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	return doc
}

func triangleDoc(withNormals bool) *gltf.Document {
	return buildTriangle(withNormals, [][2]float32{{0, 0}, {1, 0}, {0, 1}}, []uint16{0, 1, 2})
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
}

func TestDecodeConvertsHandedness(t *testing.T) {
	m, err := NewGLTFLoader().Decode(triangleDoc(true), "tri.glb")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	if p := m.Position(1); p != math3d.V3(1, 0, -1) {
		t.Errorf("position 1 = %v, want z negated (1, 0, -1)", p)
	}
	if n := m.Normal(0); n != math3d.V3(0, 0, -1) {
		t.Errorf("normal = %v, want (0, 0, -1)", n)
	}
	if m.Triangle(0) != [3]int{0, 2, 1} {
		t.Errorf("triangle = %v, want winding reversed to [0 2 1]", m.Triangle(0))
	}

	// The reversed winding must agree with the mirrored normal.
	face := m.faceNormal(0).Normalize()
	if !face.ApproxEqual(m.Normal(0), 1e-6) {
		t.Errorf("winding normal %v disagrees with stored %v", face, m.Normal(0))
	}
}

func TestDecodeFlipsV(t *testing.T) {
	m, err := NewGLTFLoader().Decode(triangleDoc(true), "tri.glb")
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0, 1, 1, 1, 0, 0}
	for i, v := range want {
		if m.UVs[i] != v {
			t.Fatalf("uvs = %v, want %v", m.UVs, want)
		}
	}
}

func TestDecodeMaterials(t *testing.T) {
	m, err := NewGLTFLoader().Decode(triangleDoc(true), "tri.glb")
	if err != nil {
		t.Fatal(err)
	}
	mat := m.GetMaterial(0)
	if mat == nil || mat.Name != "red" {
		t.Fatalf("material = %+v", mat)
	}
	if mat.BaseColor != [4]float64{1, 0, 0, 1} {
		t.Errorf("base color = %v", mat.BaseColor)
	}
	if mat.Roughness != 1 {
		t.Errorf("roughness = %v, want glTF default 1", mat.Roughness)
	}
	if m.GetMaterial(1) != nil || m.GetMaterial(-1) != nil {
		t.Error("out of range materials should be nil")
	}
}

func TestDecodeGeneratesNormals(t *testing.T) {
	m, err := NewGLTFLoader().Decode(triangleDoc(false), "tri.glb")
	if err != nil {
		t.Fatal(err)
	}
	for i := range m.VertexCount() {
		if n := m.Normal(i); !n.ApproxEqual(math3d.V3(0, 0, -1), 1e-6) {
			t.Errorf("generated normal %d = %v, want (0, 0, -1)", i, n)
		}
	}
}

func TestDecodeNormalizedUVs(t *testing.T) {
	tests := []struct {
		name string
		uvs  any
	}{
		{"float", [][2]float32{{0, 0}, {1, 0}, {0, 1}}},
		{"unsigned short", [][2]uint16{{0, 0}, {65535, 0}, {0, 65535}}},
		{"unsigned byte", [][2]uint8{{0, 0}, {255, 0}, {0, 255}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := buildTriangle(true, tc.uvs, []uint16{0, 1, 2})
			m, err := NewGLTFLoader().Decode(doc, "tri.glb")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			want := []float32{0, 1, 1, 1, 0, 0}
			for i, v := range want {
				if math.Abs(float64(m.UVs[i]-v)) > 1e-6 {
					t.Fatalf("uvs = %v, want %v", m.UVs, want)
				}
			}
		})
	}
}

func TestDecodeWithoutUVs(t *testing.T) {
	m, err := NewGLTFLoader().Decode(buildTriangle(true, nil, []uint16{0, 1, 2}), "tri.glb")
	if err != nil {
		t.Fatal(err)
	}
	if m.UVs != nil {
		t.Errorf("uvs = %v, want none", m.UVs)
	}
}

func TestDecodeRejectsBadAccessor(t *testing.T) {
	doc := triangleDoc(true)
	doc.Meshes[0].Primitives[0].Attributes[gltf.NORMAL] = 42

	if _, err := NewGLTFLoader().Decode(doc, "bad.glb"); err == nil {
		t.Error("expected an error for a missing accessor")
	}
}

func TestDecodeRejectsBadIndex(t *testing.T) {
	doc := buildTriangle(true, nil, []uint16{0, 1, 9})

	_, err := NewGLTFLoader().Decode(doc, "bad.glb")
	if !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("error = %v, want ErrInvalidMesh", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := NewGLTFLoader().Decode(&gltf.Document{}, "empty.glb")
	if !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("error = %v, want ErrInvalidMesh", err)
	}
}
