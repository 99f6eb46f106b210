package mathutil

import "math"

// Mat4 is a 4×4 matrix stored row-major. The translation lives in column 3
// (indices 3, 7, 11), so points are transformed as M × [x y z 1]ᵀ.
type Mat4 [16]float64

// AxisZ is the hand rotation axis: perpendicular to the dial, pointing at the viewer.
var AxisZ = Vec3{0, 0, 1}

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// Compose multiplies the matrices left to right, so the rightmost one is applied
// to a point first. Compose(P, R, S) yields the model matrix P·R·S.
// With no arguments it returns identity.
func Compose(ms ...Mat4) Mat4 {
	out := Mat4Identity()
	for _, m := range ms {
		out = Mat4Mul(out, m)
	}
	return out
}

// Mat4Translation returns a pure translation by v.
func Mat4Translation(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v[0],
		0, 1, 0, v[1],
		0, 0, 1, v[2],
		0, 0, 0, 1,
	}
}

// Mat4Scale returns a diagonal scale matrix.
func Mat4Scale(sx, sy, sz float64) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Mat4RotationAxis returns a rotation by angle radians about axis (Rodrigues form).
// The axis is normalized first; a zero axis yields identity.
func Mat4RotationAxis(axis Vec3, angle float64) Mat4 {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return Mat4Identity()
	}
	x, y, z := n[0], n[1], n[2]
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// MulDir transforms a direction (w=0), ignoring translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// WithTranslation returns a copy of m whose translation column is replaced by t.
func (m Mat4) WithTranslation(t Vec3) Mat4 {
	m[3], m[7], m[11] = t[0], t[1], t[2]
	return m
}

// Upper3 returns the linear (rotation/scale) part.
func (m Mat4) Upper3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	}
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
func ApproxEqual(a, b Mat4, eps float64) bool {
	for i := 0; i < 16; i++ {
		d := a[i] - b[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	return ApproxEqual(m, Mat4Identity(), 1e-8)
}
