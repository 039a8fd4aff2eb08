// Package geom provides the minimal vector/matrix plumbing the engine
// needs to compose clip transforms and build the orthographic projection
// matrix. General-purpose vector/matrix math is explicitly out of scope;
// this package exists only to serve those two internal needs.
package geom

import "math"

// Vec3 is a 3-component vector.
type Vec3 struct{ X, Y, Z float64 }

// Quat is a quaternion in (x, y, z, w) order.
type Quat struct{ X, Y, Z, W float64 }

// IdentityQuat is the no-rotation quaternion.
func IdentityQuat() Quat { return Quat{W: 1} }

// Transform is a position/rotation/scale decomposition.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// Identity is the transform with no translation, no rotation, unit scale.
func Identity() Transform {
	return Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Rotation: IdentityQuat()}
}

// Mat4 is a column-major 4x4 matrix, matching the upload format in §6.
type Mat4 [16]float64

// IdentityMat4 returns the 4x4 identity matrix.
func IdentityMat4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Matrix recomposes the TRS decomposition into a column-major 4x4 matrix:
// M = T * R * S.
func (t Transform) Matrix() Mat4 {
	r := t.Rotation.toMat4()
	s := Vec3{X: t.Scale.X, Y: t.Scale.Y, Z: t.Scale.Z}

	var m Mat4
	for col := 0; col < 3; col++ {
		var colScale float64
		switch col {
		case 0:
			colScale = s.X
		case 1:
			colScale = s.Y
		case 2:
			colScale = s.Z
		}
		for row := 0; row < 4; row++ {
			m[col*4+row] = r[col*4+row] * colScale
		}
	}
	m[3*4+0] = t.Position.X
	m[3*4+1] = t.Position.Y
	m[3*4+2] = t.Position.Z
	m[3*4+3] = 1
	return m
}

func (q Quat) toMat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two column-major 4x4 matrices: result = a * b.
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// Ortho builds the pixel-space-to-clip-space projection matrix from §6:
// maps (x,y,z) in [0,W]x[0,H]x[0,10] to clip space via
// (2x/W-1, 2y/H-1, -z/10, 1).
func Ortho(w, h float64) Mat4 {
	return Mat4{
		2 / w, 0, 0, 0,
		0, 2 / h, 0, 0,
		0, 0, -1.0 / 10.0, 0,
		-1, -1, 0, 1,
	}
}

// Finite reports whether every element of m is a finite float, used by
// tests that guard against NaN/Inf creeping into a composed transform.
func (m Mat4) Finite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
