package gpu

import (
	"errors"
	"slices"
	"testing"

	"github.com/taigrr/tessera/pkg/gl"
	"github.com/taigrr/tessera/pkg/gl/gltest"
	"github.com/taigrr/tessera/pkg/models"
)

func TestBuildVertexArray(t *testing.T) {
	rec := standardRecorder()
	p := compile(t, rec)
	rec.Reset()

	cube := models.Cube(1)
	b, err := p.BuildVertexArray(cube)
	if err != nil {
		t.Fatalf("BuildVertexArray: %v", err)
	}

	if b.VAO == 0 || b.IndexCount != 36 {
		t.Errorf("binding = %+v, want a vertex array and 36 indices", b)
	}
	// position, normal, uv and the element buffer
	if len(b.Buffers) != 4 {
		t.Fatalf("buffers = %d, want 4", len(b.Buffers))
	}
	if got, _ := rec.BufferData(b.Buffers[0]).([]float32); !slices.Equal(got, cube.Positions) {
		t.Error("position buffer does not hold the mesh positions")
	}
	if got, _ := rec.BufferData(b.Buffers[3]).([]uint16); !slices.Equal(got, cube.Indices) {
		t.Error("element buffer does not hold the mesh indices")
	}

	pointers := rec.Named("VertexAttribPointer")
	want := [][]any{
		{uint32(0), int32(3), gl.FLOAT, false, int32(0), 0},
		{uint32(1), int32(3), gl.FLOAT, false, int32(0), 0},
		{uint32(2), int32(2), gl.FLOAT, false, int32(0), 0},
	}
	if len(pointers) != len(want) {
		t.Fatalf("attribute pointers = %d, want %d", len(pointers), len(want))
	}
	for i, c := range pointers {
		if !slices.Equal(c.Args, want[i]) {
			t.Errorf("pointer %d = %v, want %v", i, c.Args, want[i])
		}
	}
	if rec.Count("EnableVertexAttribArray") != 3 {
		t.Errorf("enabled attributes = %d, want 3", rec.Count("EnableVertexAttribArray"))
	}

	// The vertex array is unbound before ARRAY_BUFFER so it keeps its
	// element buffer.
	names := rec.Names()
	last := names[len(names)-2:]
	if !slices.Equal(last, []string{"BindVertexArray", "BindBuffer"}) {
		t.Errorf("trailing calls = %v", last)
	}

	if _, bound := cube.Binding(); bound {
		t.Error("BuildVertexArray must not cache the binding itself")
	}
}

func TestBuildVertexArrayOptionalAttributes(t *testing.T) {
	rec := standardRecorder()
	delete(rec.Attribs, "a_texCoord")
	p := compile(t, rec)

	b, err := p.BuildVertexArray(models.Cube(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Buffers) != 3 {
		t.Errorf("buffers = %d, want 3 without a texcoord attribute", len(b.Buffers))
	}
}

func TestBuildVertexArrayMissingPosition(t *testing.T) {
	rec := gltest.NewRecorder()
	delete(rec.Attribs, "a_position")
	p := compile(t, rec)
	rec.Reset()

	_, err := p.BuildVertexArray(models.Cube(1))
	if !errors.Is(err, ErrMissingAttribute) {
		t.Fatalf("error = %v, want ErrMissingAttribute", err)
	}
	if rec.Count("CreateVertexArray") != 0 || rec.Count("CreateBuffer") != 0 {
		t.Errorf("no GL objects may be created, got %v", rec.Names())
	}
}

func TestBuildVertexArrayBoundMesh(t *testing.T) {
	rec := standardRecorder()
	p := compile(t, rec)

	cube := models.Cube(1)
	b, err := p.BuildVertexArray(cube)
	if err != nil {
		t.Fatal(err)
	}
	if err := cube.Bind(b); err != nil {
		t.Fatal(err)
	}

	if _, err := p.BuildVertexArray(cube); !errors.Is(err, models.ErrAlreadyBound) {
		t.Errorf("error = %v, want ErrAlreadyBound", err)
	}
}

func TestBuildVertexArrayInvalidMesh(t *testing.T) {
	p := compile(t, standardRecorder())

	bad := &models.Mesh{Name: "bad", Positions: []float32{0, 0, 0}, Normals: []float32{0, 1, 0}, Indices: []uint16{0, 0, 1}}
	if _, err := p.BuildVertexArray(bad); !errors.Is(err, models.ErrInvalidMesh) {
		t.Errorf("error = %v, want ErrInvalidMesh", err)
	}
}
