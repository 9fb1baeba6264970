package gpu

import (
	"github.com/taigrr/tessera/pkg/math3d"
)

// Kind is the scalar family of a uniform value.
type Kind uint8

// Value kinds.
const (
	KindFloat Kind = iota + 1
	KindInt
	KindUint
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	}
	return "invalid"
}

// Value is data for one uniform: a flat run of scalars of one kind.
// Vectors, matrices and arrays are all flattened; a mat4 is 16 floats in
// column-major order.
type Value struct {
	kind Kind
	f    []float32
	i    []int32
	u    []uint32
}

// Values maps uniform names to the data to upload.
type Values map[string]Value

// Float returns a float, vec or mat value.
func Float(v ...float32) Value { return Value{kind: KindFloat, f: v} }

// Int returns an int or ivec value. Bool uniforms also take Int.
func Int(v ...int32) Value { return Value{kind: KindInt, i: v} }

// Uint returns a uint or uvec value.
func Uint(v ...uint32) Value { return Value{kind: KindUint, u: v} }

// Bool returns a bool or bvec value, encoded as ints.
func Bool(v ...bool) Value {
	out := make([]int32, len(v))
	for n, b := range v {
		if b {
			out[n] = 1
		}
	}
	return Int(out...)
}

// Vec3 returns a vec3 value.
func Vec3(v math3d.Vec3) Value {
	f := v.Float32()
	return Float(f[:]...)
}

// Vec4 returns a vec4 value, typically an RGBA color.
func Vec4(v [4]float64) Value {
	return Float(float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3]))
}

// Mat4 returns a mat4 value, or a mat4 array when given several.
func Mat4(ms ...math3d.Mat4) Value {
	f := make([]float32, 0, 16*len(ms))
	for _, m := range ms {
		a := m.Float32()
		f = append(f, a[:]...)
	}
	return Float(f...)
}

// Kind returns the scalar family.
func (v Value) Kind() Kind { return v.kind }

// Len returns the number of scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindFloat:
		return len(v.f)
	case KindInt:
		return len(v.i)
	case KindUint:
		return len(v.u)
	}
	return 0
}
