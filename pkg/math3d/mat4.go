package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a 4x4 matrix stored in column-major order with column vectors.
// The same layout is uploaded to the GPU untransposed.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [16]float64

// detEpsilon bounds |det| relative to the product of the column lengths,
// which is the largest the determinant can be (Hadamard). Uniform scaling
// leaves the ratio unchanged.
const detEpsilon = 1e-12

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Zero returns the all-zero matrix.
func Zero() Mat4 {
	return Mat4{}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale creates a diagonal scaling matrix with 1 in the homogeneous corner.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotationX creates a rotation matrix around the X axis.
func RotationX(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY creates a rotation matrix around the Y axis.
func RotationY(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a rotation matrix around the Z axis.
func RotationZ(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// AxisAngle creates a rotation matrix around an arbitrary axis.
func AxisAngle(axis Vec3, radians float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(radians), math.Sin(radians)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// EulerRotation returns Rx·Ry·Rz for an Euler angle triple in degrees.
func EulerRotation(deg Vec3) Mat4 {
	m := Identity()
	return *m.Rotate(deg)
}

// RotateX right-multiplies m by a rotation of deg degrees around X.
// It mutates and returns m.
func (m *Mat4) RotateX(deg float64) *Mat4 {
	r := RotationX(Radians(deg))
	return Multiply(m, m, &r)
}

// RotateY right-multiplies m by a rotation of deg degrees around Y.
func (m *Mat4) RotateY(deg float64) *Mat4 {
	r := RotationY(Radians(deg))
	return Multiply(m, m, &r)
}

// RotateZ right-multiplies m by a rotation of deg degrees around Z.
func (m *Mat4) RotateZ(deg float64) *Mat4 {
	r := RotationZ(Radians(deg))
	return Multiply(m, m, &r)
}

// Rotate applies an Euler rotation in degrees: RotateX, then RotateY, then
// RotateZ. This is intrinsic X→Y→Z composition, not a quaternion.
func (m *Mat4) Rotate(euler Vec3) *Mat4 {
	return m.RotateX(euler.X).RotateY(euler.Y).RotateZ(euler.Z)
}

// LookAt creates a left-handed view matrix looking from eye towards target.
// When up is parallel to the view direction a fallback up axis is chosen so
// the basis stays orthonormal.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	r := up.Cross(f)
	if r.LenSq() < 1e-18 {
		alt := Forward()
		if math.Abs(f.Z) > 0.9 {
			alt = Right()
		}
		r = alt.Cross(f)
	}
	r = r.Normalize()
	u := f.Cross(r).Normalize()

	return Mat4{
		r.X, u.X, f.X, 0,
		r.Y, u.Y, f.Y, 0,
		r.Z, u.Z, f.Z, 0,
		-r.Dot(eye), -u.Dot(eye), -f.Dot(eye), 1,
	}
}

// PerspectiveFovLH creates a left-handed perspective projection matrix that
// maps view depth near..far onto clip depth 0..1.
// fov is the vertical field of view in radians, aspect is width/height.
func PerspectiveFovLH(fov, aspect, near, far float64) (Mat4, error) {
	switch {
	case !(fov > 0 && fov < math.Pi):
		return Mat4{}, &DegenerateTransformError{Op: "perspective", Reason: "fov outside (0, pi)"}
	case !(aspect > 0) || math.IsInf(aspect, 0):
		return Mat4{}, &DegenerateTransformError{Op: "perspective", Reason: "aspect must be positive"}
	case near == far || math.IsNaN(near) || math.IsNaN(far):
		return Mat4{}, &DegenerateTransformError{Op: "perspective", Reason: "near equals far"}
	}

	yScale := 1.0 / math.Tan(fov/2)
	xScale := yScale / aspect
	depth := far / (far - near)

	return Mat4{
		xScale, 0, 0, 0,
		0, yScale, 0, 0,
		0, 0, depth, 1,
		0, 0, -near * depth, 0,
	}, nil
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// Multiply writes a * b into dst and returns dst. dst may alias a or b;
// the product is computed into a temporary before it is stored.
func Multiply(dst, a, b *Mat4) *Mat4 {
	*dst = a.Mul(*b)
	return dst
}

// MulVec3 transforms a Vec3 as a point (w=1).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		(m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]) / w,
		(m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]) / w,
		(m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]) / w,
	}
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Transpose writes the transpose of m into dst. dst may alias m.
func Transpose(dst, m *Mat4) *Mat4 {
	*dst = m.Transpose()
	return dst
}

// Copy copies m into dst.
func Copy(dst, m *Mat4) *Mat4 {
	*dst = *m
	return dst
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	return m[0]*(m[5]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[6]*m[15]-m[14]*m[7])+m[13]*(m[6]*m[11]-m[10]*m[7])) -
		m[4]*(m[1]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[11]-m[10]*m[3])) +
		m[8]*(m[1]*(m[6]*m[15]-m[14]*m[7])-m[5]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[7]-m[6]*m[3])) -
		m[12]*(m[1]*(m[6]*m[11]-m[10]*m[7])-m[5]*(m[2]*m[11]-m[10]*m[3])+m[9]*(m[2]*m[7]-m[6]*m[3]))
}

// Invert writes the inverse of m into dst using cofactor expansion.
// A singular matrix yields a *DegenerateTransformError and dst is left
// untouched. dst may alias m.
func Invert(dst, m *Mat4) error {
	det := m.Determinant()
	bound := 1.0
	for c := range 4 {
		bound *= math.Sqrt(m[c*4]*m[c*4] + m[c*4+1]*m[c*4+1] + m[c*4+2]*m[c*4+2] + m[c*4+3]*m[c*4+3])
	}
	// also rejects NaN and a zero column
	if !(math.Abs(det) > detEpsilon*bound) {
		return &DegenerateTransformError{Op: "invert", Reason: "matrix is singular"}
	}

	invDet := 1.0 / det
	var inv Mat4

	inv[0] = (m[5]*(m[10]*m[15]-m[14]*m[11]) - m[9]*(m[6]*m[15]-m[14]*m[7]) + m[13]*(m[6]*m[11]-m[10]*m[7])) * invDet
	inv[1] = -(m[1]*(m[10]*m[15]-m[14]*m[11]) - m[9]*(m[2]*m[15]-m[14]*m[3]) + m[13]*(m[2]*m[11]-m[10]*m[3])) * invDet
	inv[2] = (m[1]*(m[6]*m[15]-m[14]*m[7]) - m[5]*(m[2]*m[15]-m[14]*m[3]) + m[13]*(m[2]*m[7]-m[6]*m[3])) * invDet
	inv[3] = -(m[1]*(m[6]*m[11]-m[10]*m[7]) - m[5]*(m[2]*m[11]-m[10]*m[3]) + m[9]*(m[2]*m[7]-m[6]*m[3])) * invDet

	inv[4] = -(m[4]*(m[10]*m[15]-m[14]*m[11]) - m[8]*(m[6]*m[15]-m[14]*m[7]) + m[12]*(m[6]*m[11]-m[10]*m[7])) * invDet
	inv[5] = (m[0]*(m[10]*m[15]-m[14]*m[11]) - m[8]*(m[2]*m[15]-m[14]*m[3]) + m[12]*(m[2]*m[11]-m[10]*m[3])) * invDet
	inv[6] = -(m[0]*(m[6]*m[15]-m[14]*m[7]) - m[4]*(m[2]*m[15]-m[14]*m[3]) + m[12]*(m[2]*m[7]-m[6]*m[3])) * invDet
	inv[7] = (m[0]*(m[6]*m[11]-m[10]*m[7]) - m[4]*(m[2]*m[11]-m[10]*m[3]) + m[8]*(m[2]*m[7]-m[6]*m[3])) * invDet

	inv[8] = (m[4]*(m[9]*m[15]-m[13]*m[11]) - m[8]*(m[5]*m[15]-m[13]*m[7]) + m[12]*(m[5]*m[11]-m[9]*m[7])) * invDet
	inv[9] = -(m[0]*(m[9]*m[15]-m[13]*m[11]) - m[8]*(m[1]*m[15]-m[13]*m[3]) + m[12]*(m[1]*m[11]-m[9]*m[3])) * invDet
	inv[10] = (m[0]*(m[5]*m[15]-m[13]*m[7]) - m[4]*(m[1]*m[15]-m[13]*m[3]) + m[12]*(m[1]*m[7]-m[5]*m[3])) * invDet
	inv[11] = -(m[0]*(m[5]*m[11]-m[9]*m[7]) - m[4]*(m[1]*m[11]-m[9]*m[3]) + m[8]*(m[1]*m[7]-m[5]*m[3])) * invDet

	inv[12] = -(m[4]*(m[9]*m[14]-m[13]*m[10]) - m[8]*(m[5]*m[14]-m[13]*m[6]) + m[12]*(m[5]*m[10]-m[9]*m[6])) * invDet
	inv[13] = (m[0]*(m[9]*m[14]-m[13]*m[10]) - m[8]*(m[1]*m[14]-m[13]*m[2]) + m[12]*(m[1]*m[10]-m[9]*m[2])) * invDet
	inv[14] = -(m[0]*(m[5]*m[14]-m[13]*m[6]) - m[4]*(m[1]*m[14]-m[13]*m[2]) + m[12]*(m[1]*m[6]-m[5]*m[2])) * invDet
	inv[15] = (m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])) * invDet

	*dst = inv
	return nil
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Float32 converts the matrix for GPU upload, keeping column-major order.
func (m Mat4) Float32() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// FromMGL converts a mathgl matrix. Both types are column-major.
func FromMGL(m mgl64.Mat4) Mat4 {
	return Mat4(m)
}

// ToMGL converts m to a mathgl matrix.
func (m Mat4) ToMGL() mgl64.Mat4 {
	return mgl64.Mat4(m)
}

// IsFinite reports whether no element is NaN or infinite.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
