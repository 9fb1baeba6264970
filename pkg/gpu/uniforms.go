package gpu

import (
	"fmt"

	"github.com/taigrr/tessera/pkg/gl"
)

// uniformType describes how to upload one GL uniform type.
type uniformType struct {
	components int
	kind       Kind
	upload     func(ctx gl.Context, loc gl.UniformLocation, v Value)
}

// uniformTypes is the dispatch table from the reflected GL type to its
// setter. Samplers are absent on purpose and surface as
// UnsupportedUniformTypeError.
var uniformTypes = map[gl.Enum]uniformType{
	gl.FLOAT:      {1, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform1fv(l, v.f) }},
	gl.FLOAT_VEC2: {2, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform2fv(l, v.f) }},
	gl.FLOAT_VEC3: {3, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform3fv(l, v.f) }},
	gl.FLOAT_VEC4: {4, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform4fv(l, v.f) }},

	gl.INT:      {1, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform1iv(l, v.i) }},
	gl.INT_VEC2: {2, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform2iv(l, v.i) }},
	gl.INT_VEC3: {3, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform3iv(l, v.i) }},
	gl.INT_VEC4: {4, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform4iv(l, v.i) }},

	gl.BOOL:      {1, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform1iv(l, v.i) }},
	gl.BOOL_VEC2: {2, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform2iv(l, v.i) }},
	gl.BOOL_VEC3: {3, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform3iv(l, v.i) }},
	gl.BOOL_VEC4: {4, KindInt, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform4iv(l, v.i) }},

	gl.UNSIGNED_INT: {1, KindUint, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform1uiv(l, v.u) }},
	gl.UINT_VEC2:    {2, KindUint, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform2uiv(l, v.u) }},
	gl.UINT_VEC3:    {3, KindUint, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform3uiv(l, v.u) }},
	gl.UINT_VEC4:    {4, KindUint, func(c gl.Context, l gl.UniformLocation, v Value) { c.Uniform4uiv(l, v.u) }},

	gl.FLOAT_MAT2: {4, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix2fv(l, false, v.f) }},
	gl.FLOAT_MAT3: {9, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix3fv(l, false, v.f) }},
	gl.FLOAT_MAT4: {16, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix4fv(l, false, v.f) }},

	gl.FLOAT_MAT2x3: {6, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix2x3fv(l, false, v.f) }},
	gl.FLOAT_MAT3x2: {6, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix3x2fv(l, false, v.f) }},
	gl.FLOAT_MAT2x4: {8, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix2x4fv(l, false, v.f) }},
	gl.FLOAT_MAT4x2: {8, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix4x2fv(l, false, v.f) }},
	gl.FLOAT_MAT3x4: {12, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix3x4fv(l, false, v.f) }},
	gl.FLOAT_MAT4x3: {12, KindFloat, func(c gl.Context, l gl.UniformLocation, v Value) { c.UniformMatrix4x3fv(l, false, v.f) }},
}

// Uniform is one settable entry of a program's uniform table.
type Uniform struct {
	Name     string
	Location gl.UniformLocation
	Type     gl.Enum
	// Size is the array length; 1 for non-arrays.
	Size int

	typ uniformType
	set func(Value)
}

// Components returns the scalar count of one element, e.g. 16 for mat4.
func (u *Uniform) Components() int { return u.typ.components }

// Kind returns the scalar family the uniform accepts.
func (u *Uniform) Kind() Kind { return u.typ.kind }

// check reports why v cannot be uploaded to u, or nil.
func (u *Uniform) check(v Value) error {
	if v.kind != u.typ.kind {
		return &InvalidArgumentError{
			Name:   u.Name,
			Reason: fmt.Sprintf("got %s data for a %s uniform", v.kind, u.typ.kind),
		}
	}
	n := v.Len()
	c := u.typ.components
	switch {
	case n == 0 || n%c != 0:
		return &InvalidArgumentError{
			Name:   u.Name,
			Reason: fmt.Sprintf("value has %d scalars, want a positive multiple of %d", n, c),
		}
	case n/c > u.Size:
		return &InvalidArgumentError{
			Name:   u.Name,
			Reason: fmt.Sprintf("value holds %d elements, uniform array has %d", n/c, u.Size),
		}
	}
	return nil
}
