package math3d

import (
	"errors"
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(3, -7, 2)
	b := V3(-1, 4, 5)

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), V3(2, -3, 7)},
		{"sub", a.Sub(b), V3(4, -11, -3)},
		{"scale", a.Scale(6), V3(18, -42, 12)},
		{"cross x*y", Right().Cross(Up()), V3(0, 0, 1)},
		{"cross y*z", Up().Cross(Forward()), V3(1, 0, 0)},
		{"negate", a.Negate(), V3(-3, 7, -2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.Equal(tc.want) {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestVec3Dot(t *testing.T) {
	if got := V3(1, 2, 3).Dot(V3(4, -5, 6)); got != 12 {
		t.Errorf("dot = %v, want 12", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 4, 0).Normalize()
	if !n.ApproxEqual(V3(0.6, 0.8, 0), 1e-12) {
		t.Errorf("normalize = %v, want (0.6, 0.8, 0)", n)
	}

	for _, v := range []Vec3{V3(1, 1, 1), V3(-3, 0.001, 8), V3(1e6, -2e6, 3), V3(0, 0, -0.25)} {
		if l := v.Normalize().Len(); math.Abs(l-1) > 1e-5 {
			t.Errorf("|normalize(%v)| = %v, want 1", v, l)
		}
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); !got.Equal(Zero3()) {
		t.Errorf("normalize(0) = %v, want zero vector", got)
	}

	_, err := Zero3().NormalizeChecked()
	var degenerate *DegenerateTransformError
	if !errors.As(err, &degenerate) {
		t.Fatalf("NormalizeChecked(0) error = %v, want DegenerateTransformError", err)
	}
	if degenerate.Op != "normalize" {
		t.Errorf("op = %q, want normalize", degenerate.Op)
	}

	v, err := V3(0, 2, 0).NormalizeChecked()
	if err != nil || !v.Equal(Up()) {
		t.Errorf("NormalizeChecked = %v, %v; want (0,1,0), nil", v, err)
	}
}

func TestVec3EqualIsStrict(t *testing.T) {
	a := V3(0.1, 0.2, 0.3)
	b := V3(0.1, 0.2, 0.3+1e-15)
	if a.Equal(b) {
		t.Error("Equal should not apply a tolerance")
	}
	if !a.ApproxEqual(b, 1e-9) {
		t.Error("ApproxEqual should accept a tiny difference")
	}
}

func TestVec3Transform(t *testing.T) {
	t.Run("translation", func(t *testing.T) {
		got := Zero3().Transform(Translate(V3(1, 0, 0)))
		if !got.Equal(V3(1, 0, 0)) {
			t.Errorf("got %v, want (1, 0, 0)", got)
		}
	})

	t.Run("perspective divide", func(t *testing.T) {
		m := Identity()
		m[15] = 2
		got := V3(2, 4, 6).Transform(m)
		if !got.Equal(V3(1, 2, 3)) {
			t.Errorf("got %v, want (1, 2, 3)", got)
		}
	})

	t.Run("zero w stays finite", func(t *testing.T) {
		m := Identity()
		m[15] = 0
		got := V3(2, 4, 6).Transform(m)
		if !got.IsFinite() || !got.Equal(V3(2, 4, 6)) {
			t.Errorf("got %v, want undivided (2, 4, 6)", got)
		}
	})
}
