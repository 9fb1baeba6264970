package math3d

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var sampleMatrices = []struct {
	name string
	m    Mat4
}{
	{"identity", Identity()},
	{"translate", Translate(V3(1, -2, 3.5))},
	{"scale", Scale(V3(2, 0.5, -4))},
	{"rotate x", RotationX(0.3)},
	{"trs", Translate(V3(4, 5, 6)).Mul(EulerRotation(V3(10, 20, 30))).Mul(Scale(V3(1, 2, 3)))},
	{"arbitrary", Mat4{
		2, 0.5, -1, 0,
		0.25, 3, 0.75, 0,
		-1.5, 0.2, 1, 0,
		7, -8, 9, 1,
	}},
}

func TestMultiplyIdentity(t *testing.T) {
	id := Identity()
	for _, tc := range sampleMatrices {
		t.Run(tc.name, func(t *testing.T) {
			if got := id.Mul(tc.m); got != tc.m {
				t.Errorf("I*M = %v, want %v", got, tc.m)
			}
			if got := tc.m.Mul(id); got != tc.m {
				t.Errorf("M*I = %v, want %v", got, tc.m)
			}
		})
	}
}

func TestInvertRoundTrip(t *testing.T) {
	for _, tc := range sampleMatrices {
		t.Run(tc.name, func(t *testing.T) {
			var inv Mat4
			if err := Invert(&inv, &tc.m); err != nil {
				t.Fatalf("Invert: %v", err)
			}
			if got := tc.m.Mul(inv); !got.ApproxEqual(Identity(), 1e-4) {
				t.Errorf("M*inv(M) = %v, want identity", got)
			}
			want := FromMGL(tc.m.ToMGL().Inv())
			if !inv.ApproxEqual(want, 1e-9) {
				t.Errorf("inverse = %v, mgl64 = %v", inv, want)
			}
		})
	}
}

func TestInvertAcrossScales(t *testing.T) {
	for _, s := range []float64{1e-5, 1e-3, 1e3, 1e5} {
		t.Run(fmt.Sprintf("scale %g", s), func(t *testing.T) {
			m := Translate(V3(2, -3, 4)).Mul(EulerRotation(V3(30, 45, 60))).Mul(Scale(V3(s, s, s)))
			var inv Mat4
			if err := Invert(&inv, &m); err != nil {
				t.Fatalf("Invert: %v", err)
			}
			if got := m.Mul(inv); !got.ApproxEqual(Identity(), 1e-4) {
				t.Errorf("M*inv(M) = %v, want identity", got)
			}
		})
	}
}

func TestInvertSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"zero axis", Scale(V3(1, 0, 1))},
		{"tiny zero axis", Scale(V3(1e-5, 0, 1e-5))},
		{"parallel columns", Mat4{
			1, 2, 3, 0,
			2, 4, 6, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}},
		{"zero", Zero()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := Translate(V3(9, 9, 9))
			before := dst

			err := Invert(&dst, &tc.m)
			var degenerate *DegenerateTransformError
			if !errors.As(err, &degenerate) {
				t.Fatalf("Invert(singular) error = %v, want DegenerateTransformError", err)
			}
			if dst != before {
				t.Error("Invert must leave dst untouched on failure")
			}
		})
	}
}

func TestInvertAliased(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	if err := Invert(&m, &m); err != nil {
		t.Fatal(err)
	}
	if m.Translation() != V3(-1, -2, -3) {
		t.Errorf("translation = %v, want (-1, -2, -3)", m.Translation())
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	for _, tc := range sampleMatrices {
		t.Run(tc.name, func(t *testing.T) {
			var tt Mat4
			Transpose(&tt, &tc.m)
			Transpose(&tt, &tt)
			if tt != tc.m {
				t.Errorf("transpose(transpose(M)) = %v, want %v", tt, tc.m)
			}
			if got := FromMGL(tc.m.ToMGL().Transpose()); got != tc.m.Transpose() {
				t.Errorf("transpose = %v, mgl64 = %v", tc.m.Transpose(), got)
			}
		})
	}
}

func TestMultiplyMatchesMGL(t *testing.T) {
	for _, a := range sampleMatrices {
		for _, b := range sampleMatrices {
			got := a.m.Mul(b.m)
			want := FromMGL(a.m.ToMGL().Mul4(b.m.ToMGL()))
			if !got.ApproxEqual(want, 1e-12) {
				t.Errorf("%s*%s = %v, mgl64 = %v", a.name, b.name, got, want)
			}
		}
	}
}

func TestMultiplyAliasing(t *testing.T) {
	a := sampleMatrices[4].m
	b := sampleMatrices[5].m
	want := a.Mul(b)

	t.Run("dst is a", func(t *testing.T) {
		x, y := a, b
		Multiply(&x, &x, &y)
		if x != want {
			t.Errorf("got %v, want %v", x, want)
		}
	})

	t.Run("dst is b", func(t *testing.T) {
		x, y := a, b
		Multiply(&y, &x, &y)
		if y != want {
			t.Errorf("got %v, want %v", y, want)
		}
	})

	t.Run("square in place", func(t *testing.T) {
		x := a
		Multiply(&x, &x, &x)
		if x != a.Mul(a) {
			t.Errorf("got %v, want %v", x, a.Mul(a))
		}
	})
}

func TestRotationBuildersMatchMGL(t *testing.T) {
	for _, rad := range []float64{0, 0.25, math.Pi / 2, -1.3, 3} {
		if got, want := RotationX(rad), FromMGL(mgl64.HomogRotate3DX(rad)); !got.ApproxEqual(want, 1e-15) {
			t.Errorf("RotationX(%v) = %v, want %v", rad, got, want)
		}
		if got, want := RotationY(rad), FromMGL(mgl64.HomogRotate3DY(rad)); !got.ApproxEqual(want, 1e-15) {
			t.Errorf("RotationY(%v) = %v, want %v", rad, got, want)
		}
		if got, want := RotationZ(rad), FromMGL(mgl64.HomogRotate3DZ(rad)); !got.ApproxEqual(want, 1e-15) {
			t.Errorf("RotationZ(%v) = %v, want %v", rad, got, want)
		}
		axis := V3(1, 2, 3).Normalize()
		got := AxisAngle(axis, rad)
		want := FromMGL(mgl64.HomogRotate3D(rad, mgl64.Vec3{axis.X, axis.Y, axis.Z}))
		if !got.ApproxEqual(want, 1e-12) {
			t.Errorf("AxisAngle(%v) = %v, want %v", rad, got, want)
		}
	}
}

func TestRotateComposesXYZ(t *testing.T) {
	euler := V3(30, 45, 60)
	m := Identity()
	m.Rotate(euler)

	want := FromMGL(mgl64.HomogRotate3DX(Radians(30)).
		Mul4(mgl64.HomogRotate3DY(Radians(45))).
		Mul4(mgl64.HomogRotate3DZ(Radians(60))))
	if !m.ApproxEqual(want, 1e-12) {
		t.Errorf("Rotate(%v) = %v, want Rx*Ry*Rz = %v", euler, m, want)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := Identity()
	m.RotateY(90)
	got := m.MulVec3Dir(Forward())
	if !got.ApproxEqual(Right(), 1e-12) {
		t.Errorf("RotateY(90) * forward = %v, want (1, 0, 0)", got)
	}
}

func TestScaleAndTranslate(t *testing.T) {
	s := Scale(V3(2, 3, 4))
	if s[0] != 2 || s[5] != 3 || s[10] != 4 || s[15] != 1 {
		t.Errorf("scale diagonal = %v", s)
	}
	tr := Translate(V3(1, 0, 0))
	if tr.Translation() != V3(1, 0, 0) {
		t.Errorf("translation = %v, want (1, 0, 0)", tr.Translation())
	}
	if Zero() != (Mat4{}) {
		t.Error("Zero should be all zeros")
	}
}

func TestCopy(t *testing.T) {
	src := sampleMatrices[5].m
	var dst Mat4
	if got := Copy(&dst, &src); *got != src {
		t.Errorf("copy = %v, want %v", *got, src)
	}
	src[0] = 99
	if dst[0] == 99 {
		t.Error("copy must not share storage")
	}
}

func TestLookAt(t *testing.T) {
	t.Run("identity along +z", func(t *testing.T) {
		m := LookAt(Zero3(), Forward(), Up())
		if !m.ApproxEqual(Identity(), 1e-15) {
			t.Errorf("LookAt = %v, want identity", m)
		}
	})

	t.Run("eye maps to origin", func(t *testing.T) {
		eye := V3(3, 4, -5)
		m := LookAt(eye, V3(0, 1, 2), Up())
		if got := m.MulVec3(eye); !got.ApproxEqual(Zero3(), 1e-12) {
			t.Errorf("view*eye = %v, want origin", got)
		}
		target := m.MulVec3(V3(0, 1, 2))
		if target.Z <= 0 || math.Abs(target.X) > 1e-12 || math.Abs(target.Y) > 1e-12 {
			t.Errorf("view*target = %v, want on +Z axis", target)
		}
	})

	t.Run("left handed basis", func(t *testing.T) {
		m := LookAt(Zero3(), Forward(), Up())
		right := m.MulVec3(Right())
		if !right.ApproxEqual(Right(), 1e-15) {
			t.Errorf("world right in view = %v, want +X", right)
		}
	})

	t.Run("looking straight up stays orthonormal", func(t *testing.T) {
		m := LookAt(Zero3(), Up(), Up())
		if !m.IsFinite() {
			t.Fatalf("LookAt produced non-finite matrix %v", m)
		}
		if d := m.Determinant(); math.Abs(d-1) > 1e-9 {
			t.Errorf("det = %v, want 1", d)
		}
	})
}

func TestPerspectiveFovLH(t *testing.T) {
	near, far := 0.1, 100.0
	p, err := PerspectiveFovLH(math.Pi/2, 16.0/9.0, near, far)
	if err != nil {
		t.Fatal(err)
	}

	if got := V3(0, 0, near).Transform(p); math.Abs(got.Z) > 1e-12 {
		t.Errorf("near plane depth = %v, want 0", got.Z)
	}
	if got := V3(0, 0, far).Transform(p); math.Abs(got.Z-1) > 1e-12 {
		t.Errorf("far plane depth = %v, want 1", got.Z)
	}
	if got := V3(1, 1, 1).Transform(p); math.Abs(got.Y-1) > 1e-12 || math.Abs(got.X-9.0/16.0) > 1e-12 {
		t.Errorf("edge of 90° frustum = %v, want (0.5625, 1, _)", got)
	}
}

func TestPerspectiveFovLHDegenerate(t *testing.T) {
	tests := []struct {
		name                   string
		fov, aspect, near, far float64
	}{
		{"zero aspect", 1, 0, 0.1, 10},
		{"negative aspect", 1, -1, 0.1, 10},
		{"near equals far", 1, 1, 5, 5},
		{"zero fov", 0, 1, 0.1, 10},
		{"fov of pi", math.Pi, 1, 0.1, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PerspectiveFovLH(tc.fov, tc.aspect, tc.near, tc.far)
			var degenerate *DegenerateTransformError
			if !errors.As(err, &degenerate) {
				t.Errorf("error = %v, want DegenerateTransformError", err)
			}
		})
	}
}

func TestFloat32KeepsOrder(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	f := m.Float32()
	if f[12] != 1 || f[13] != 2 || f[14] != 3 || f[15] != 1 {
		t.Errorf("Float32 = %v, want translation at 12..14", f)
	}
}
