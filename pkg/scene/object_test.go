package scene

import (
	"math"
	"testing"

	"github.com/taigrr/tessera/pkg/math3d"
	"github.com/taigrr/tessera/pkg/models"
)

func TestNewObjectDefaults(t *testing.T) {
	o := NewObject("coob")
	if o.Name() != "coob" {
		t.Errorf("name = %q", o.Name())
	}
	if !o.Dirty() {
		t.Error("new object must start dirty")
	}
	if o.Scale() != math3d.One3() {
		t.Errorf("scale = %v, want (1, 1, 1)", o.Scale())
	}
}

func TestWorldMatrixIdentityAtOrigin(t *testing.T) {
	o := NewObject("origin")
	if got := o.WorldMatrix(); !got.ApproxEqual(math3d.Identity(), 0) {
		t.Errorf("world = %v, want identity", got)
	}
}

func TestWorldMatrixTranslation(t *testing.T) {
	o := NewObject("moved")
	o.SetPosition(math3d.V3(1, 0, 0))

	w := o.WorldMatrix()
	if w.Translation() != math3d.V3(1, 0, 0) {
		t.Errorf("translation = %v, want (1, 0, 0)", w.Translation())
	}
	if got := math3d.Zero3().Transform(w); got != math3d.V3(1, 0, 0) {
		t.Errorf("origin transformed = %v, want (1, 0, 0)", got)
	}
}

func TestWorldMatrixComposition(t *testing.T) {
	o := NewObject("trs")
	o.SetPositionXYZ(4, 5, 6)
	o.SetRotationXYZ(10, 20, 30)
	o.SetScaleXYZ(1, 2, 3)

	want := math3d.Translate(math3d.V3(4, 5, 6)).
		Mul(math3d.RotationX(math3d.Radians(10))).
		Mul(math3d.RotationY(math3d.Radians(20))).
		Mul(math3d.RotationZ(math3d.Radians(30))).
		Mul(math3d.Scale(math3d.V3(1, 2, 3)))
	if got := o.WorldMatrix(); !got.ApproxEqual(want, 1e-12) {
		t.Errorf("world = %v, want T*Rx*Ry*Rz*S = %v", got, want)
	}

	// Scale applies before translation: a unit X point lands at 4+1.
	o.SetRotationXYZ(0, 0, 0)
	if got := math3d.V3(1, 0, 0).Transform(o.WorldMatrix()); !got.ApproxEqual(math3d.V3(5, 5, 6), 1e-12) {
		t.Errorf("transformed = %v, want (5, 5, 6)", got)
	}
}

func TestDirtyFlagRecomputesOnce(t *testing.T) {
	o := NewObject("cached")
	o.SetPositionXYZ(1, 2, 3)

	first := o.WorldMatrix()
	second := o.WorldMatrix()
	_ = o.ViewMatrix()
	if o.recomputes != 1 {
		t.Errorf("recomputes = %d after three reads, want 1", o.recomputes)
	}
	if first != second {
		t.Error("cached matrix changed without a mutation")
	}
	if o.Dirty() {
		t.Error("object should be clean after a read")
	}

	mutators := []struct {
		name string
		fn   func()
	}{
		{"SetPosition", func() { o.SetPosition(math3d.V3(0, 1, 0)) }},
		{"SetPositionXYZ", func() { o.SetPositionXYZ(0, 2, 0) }},
		{"SetRotation", func() { o.SetRotation(math3d.V3(0, 45, 0)) }},
		{"SetRotationXYZ", func() { o.SetRotationXYZ(0, 90, 0) }},
		{"Rotate", func() { o.Rotate(math3d.V3(1, 0, 0)) }},
		{"RotateXYZ", func() { o.RotateXYZ(0, 0, 1) }},
		{"Translate", func() { o.Translate(math3d.V3(0, 0, 1)) }},
		{"TranslateXYZ", func() { o.TranslateXYZ(1, 0, 0) }},
		{"TranslateLocal", func() { o.TranslateLocal(math3d.V3(0, 0, 1)) }},
		{"SetScale", func() { o.SetScale(math3d.V3(2, 2, 2)) }},
		{"SetScaleXYZ", func() { o.SetScaleXYZ(1, 1, 1) }},
	}

	for _, m := range mutators {
		t.Run(m.name, func(t *testing.T) {
			before := o.recomputes
			m.fn()
			if !o.Dirty() {
				t.Fatal("mutator must mark the object dirty")
			}
			_ = o.WorldMatrix()
			_ = o.WorldMatrix()
			_ = o.ViewMatrix()
			if o.recomputes != before+1 {
				t.Errorf("recomputes = %d, want %d", o.recomputes, before+1)
			}
		})
	}
}

func TestRotationWraps(t *testing.T) {
	o := NewObject("spin")
	o.SetRotationXYZ(370, -10, 720)
	if got := o.Rotation(); !got.ApproxEqual(math3d.V3(10, 350, 0), 1e-9) {
		t.Errorf("rotation = %v, want (10, 350, 0)", got)
	}

	o.RotateXYZ(-20, 20, -1)
	if got := o.Rotation(); !got.ApproxEqual(math3d.V3(350, 10, 359), 1e-9) {
		t.Errorf("rotation = %v, want (350, 10, 359)", got)
	}
}

func TestForward(t *testing.T) {
	o := NewObject("fwd")
	if got := o.Forward(); !got.ApproxEqual(math3d.Forward(), 1e-15) {
		t.Errorf("forward = %v, want (0, 0, 1)", got)
	}
	o.SetRotationXYZ(0, 90, 0)
	if got := o.Forward(); !got.ApproxEqual(math3d.Right(), 1e-12) {
		t.Errorf("forward after yaw 90 = %v, want (1, 0, 0)", got)
	}
}

func TestViewMatrix(t *testing.T) {
	o := NewObject("eye")
	o.SetPositionXYZ(0, 1, -5)

	v := o.ViewMatrix()
	if got := math3d.V3(0, 1, -5).Transform(v); !got.ApproxEqual(math3d.Zero3(), 1e-12) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	if got := math3d.V3(0, 1, 0).Transform(v); !got.ApproxEqual(math3d.V3(0, 0, 5), 1e-12) {
		t.Errorf("point ahead in view space = %v, want (0, 0, 5)", got)
	}
}

func TestTranslateLocal(t *testing.T) {
	o := NewObject("walker")
	o.SetRotationXYZ(0, 90, 0)
	o.TranslateLocal(math3d.V3(0, 0, 2))
	if got := o.Position(); !got.ApproxEqual(math3d.V3(2, 0, 0), 1e-12) {
		t.Errorf("position = %v, want (2, 0, 0)", got)
	}
}

func TestMeshIsShared(t *testing.T) {
	mesh := models.Cube(1)
	a := NewMeshObject("a", mesh)
	b := NewMeshObject("b", mesh)
	if a.Mesh != b.Mesh {
		t.Error("objects should share the mesh by reference")
	}
}

func BenchmarkWorldMatrixCached(b *testing.B) {
	o := NewObject("bench")
	o.SetRotationXYZ(10, 20, 30)

	for b.Loop() {
		_ = o.WorldMatrix()
	}
}

func BenchmarkWorldMatrixDirty(b *testing.B) {
	o := NewObject("bench")

	for b.Loop() {
		o.RotateXYZ(0, 1, 0)
		_ = o.WorldMatrix()
	}
}

func TestRecomputesStayFinite(t *testing.T) {
	o := NewObject("up")
	o.SetRotationXYZ(270, 0, 0)
	v := o.ViewMatrix()
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("view[%d] = %v", i, f)
		}
	}
}
