package interpolate

import "testing"

func TestScalarIdentity(t *testing.T) {
	if got := Scalar(3.0, 3.0, 0.7); got != 3.0 {
		t.Errorf("Scalar(v,v,t) = %v, want 3.0", got)
	}
}

func TestScalarEndpoints(t *testing.T) {
	if got := Scalar(2.0, 8.0, 0.0); got != 2.0 {
		t.Errorf("Scalar(a,b,0) = %v, want a", got)
	}
	if got := Scalar(2.0, 8.0, 1.0); got != 8.0 {
		t.Errorf("Scalar(a,b,1) = %v, want b", got)
	}
}

func TestScalarInt(t *testing.T) {
	if got := Scalar(0, 10, 0.5); got != 5 {
		t.Errorf("Scalar(0,10,0.5) = %v, want 5", got)
	}
}

func TestLerpVec2(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: 20}
	got := LerpVec2(a, b, 0.5)
	want := Vec2{X: 5, Y: 10}
	if got != want {
		t.Errorf("LerpVec2 = %+v, want %+v", got, want)
	}
}

func TestLerpQuatUnnormalised(t *testing.T) {
	// Two unit quaternions whose componentwise midpoint is not itself unit
	// length: this documents the nlerp-without-renormalisation behaviour
	// rather than asserting it is "correct".
	a := Quat{X: 1, Y: 0, Z: 0, W: 0}
	b := Quat{X: 0, Y: 1, Z: 0, W: 0}
	got := LerpQuat(a, b, 0.5)
	want := Quat{X: 0.5, Y: 0.5, Z: 0, W: 0}
	if got != want {
		t.Errorf("LerpQuat = %+v, want %+v", got, want)
	}
}

func TestTransformComposesIndependently(t *testing.T) {
	a := TRS{Position: Vec3{X: 0}, Scale: Vec3{X: 1, Y: 1, Z: 1}}
	b := TRS{Position: Vec3{X: 10}, Scale: Vec3{X: 2, Y: 2, Z: 2}}
	got := Transform(a, b, 0.5)
	if got.Position.X != 5 {
		t.Errorf("Position.X = %v, want 5", got.Position.X)
	}
	if got.Scale.X != 1.5 {
		t.Errorf("Scale.X = %v, want 1.5", got.Scale.X)
	}
}
