package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotationY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMultiplyInPlace(b *testing.B) {
	m := Translate(V3(1, 2, 3))
	r := RotationY(0.001)

	for b.Loop() {
		Multiply(&m, &m, &r)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotationY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkVec3Transform(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotationY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Transform(m)
	}
}

func BenchmarkInvert(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotationY(0.5)).Mul(Scale(V3(2, 2, 2)))
	var dst Mat4

	for b.Loop() {
		_ = Invert(&dst, &m)
	}
}

func BenchmarkEulerRotation(b *testing.B) {
	euler := V3(10, 20, 30)

	for b.Loop() {
		_ = EulerRotation(euler)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkPerspectiveFovLH(b *testing.B) {
	for b.Loop() {
		_, _ = PerspectiveFovLH(0.9, 1.333, 0.1, 100.0)
	}
}

func BenchmarkLookAt(b *testing.B) {
	eye := V3(0, 0, -10)
	target := V3(0, 0, 0)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(eye, target, up)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 0, -10), Zero3(), Up())
	proj, _ := PerspectiveFovLH(0.9, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
