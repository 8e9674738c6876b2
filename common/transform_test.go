package common

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("QuatIdentity() = %+v, want (0, 0, 0, 1)", q)
	}
}

func TestVec3RoundTrip(t *testing.T) {
	in := [3]float32{1.5, -2.25, 3.125}
	if out := Vec3ToArray(Vec3FromArray(in)); out != in {
		t.Errorf("Vec3ToArray(Vec3FromArray(%v)) = %v, want %v", in, out, in)
	}
}

func TestQuatRoundTrip(t *testing.T) {
	in := [4]float32{0.1, 0.2, 0.3, 0.9273618}
	if out := QuatToArray(QuatFromArray(in)); out != in {
		t.Errorf("QuatToArray(QuatFromArray(%v)) = %v, want %v", in, out, in)
	}
}

func TestIdentityTransform(t *testing.T) {
	tr := IdentityTransform()
	if tr.Translation.X != 0 || tr.Translation.Y != 0 || tr.Translation.Z != 0 {
		t.Errorf("IdentityTransform().Translation = %+v, want zero", tr.Translation)
	}
	if tr.Rotation != QuatIdentity() {
		t.Errorf("IdentityTransform().Rotation = %+v, want identity", tr.Rotation)
	}
}

func TestQuatFromEulerZero(t *testing.T) {
	if q := QuatFromEuler([3]float32{0, 0, 0}); q != QuatIdentity() {
		t.Errorf("QuatFromEuler(0, 0, 0) = %+v, want identity", q)
	}
}

func TestQuatFromEulerQuarterTurnX(t *testing.T) {
	q := QuatFromEuler([3]float32{math.Pi / 2, 0, 0})
	want := float32(math.Sqrt2 / 2)
	const eps = 1e-6
	if math.Abs(float64(q.X-want)) > eps || math.Abs(float64(q.W-want)) > eps ||
		math.Abs(float64(q.Y)) > eps || math.Abs(float64(q.Z)) > eps {
		t.Errorf("QuatFromEuler(pi/2, 0, 0) = %+v, want (%v, 0, 0, %v)", q, want, want)
	}
}
