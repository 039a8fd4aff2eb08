// Package interpolate provides linear interpolation for the scalar and
// composite value types animated properties carry. t is never clamped:
// callers are responsible for passing values in [0,1] unless extrapolation
// is intentional.
package interpolate

import "golang.org/x/exp/constraints"

// Number is any scalar interpolate.Scalar can operate on.
type Number interface {
	constraints.Integer | constraints.Float
}

// Scalar computes a + (b-a)*t in float64 and casts back to T.
func Scalar[T Number](a, b T, t float64) T {
	return T(float64(a) + (float64(b)-float64(a))*t)
}

// Vec2 is a componentwise-interpolatable 2-vector.
type Vec2 struct{ X, Y float64 }

func LerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: Scalar(a.X, b.X, t),
		Y: Scalar(a.Y, b.Y, t),
	}
}

// Vec3 is a componentwise-interpolatable 3-vector.
type Vec3 struct{ X, Y, Z float64 }

func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Scalar(a.X, b.X, t),
		Y: Scalar(a.Y, b.Y, t),
		Z: Scalar(a.Z, b.Z, t),
	}
}

// Vec4 is a componentwise-interpolatable 4-vector.
type Vec4 struct{ X, Y, Z, W float64 }

func LerpVec4(a, b Vec4, t float64) Vec4 {
	return Vec4{
		X: Scalar(a.X, b.X, t),
		Y: Scalar(a.Y, b.Y, t),
		Z: Scalar(a.Z, b.Z, t),
		W: Scalar(a.W, b.W, t),
	}
}

// Quat is a unit quaternion, componentwise-interpolated by LerpQuat.
type Quat struct{ X, Y, Z, W float64 }

// LerpQuat performs componentwise linear interpolation of the four
// components. This is nlerp WITHOUT renormalisation: the result is not
// guaranteed to be a unit quaternion mid-transition. Recorded as an open
// question rather than silently corrected.
func LerpQuat(a, b Quat, t float64) Quat {
	return Quat{
		X: Scalar(a.X, b.X, t),
		Y: Scalar(a.Y, b.Y, t),
		Z: Scalar(a.Z, b.Z, t),
		W: Scalar(a.W, b.W, t),
	}
}

// Pair lifts Scalar to 2-tuples.
func Pair[T Number](a, b [2]T, t float64) [2]T {
	return [2]T{Scalar(a[0], b[0], t), Scalar(a[1], b[1], t)}
}

// Triple lifts Scalar to 3-tuples.
func Triple[T Number](a, b [3]T, t float64) [3]T {
	return [3]T{Scalar(a[0], b[0], t), Scalar(a[1], b[1], t), Scalar(a[2], b[2], t)}
}

// Quad lifts Scalar to 4-tuples.
func Quad[T Number](a, b [4]T, t float64) [4]T {
	return [4]T{
		Scalar(a[0], b[0], t), Scalar(a[1], b[1], t),
		Scalar(a[2], b[2], t), Scalar(a[3], b[3], t),
	}
}
