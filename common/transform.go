// package common contains common types that are used throughout the batch
// renderer. They are not interface-wrapped structs, just plain structs and
// helpers that express commonly used data-types.
package common

import (
	"math"

	"github.com/goki/mat32"
)

// IDUndefined is the sentinel value for an unset integer handle, such as a
// scene graph id or a semantic object id.
const IDUndefined = -1

// Transform is a rigid transform: a translation and a rotation, no scale.
// Rotations are quaternions in (x, y, z, w) component order.
type Transform struct {
	// Translation is the positional component in world units.
	Translation mat32.Vec3
	// Rotation is the orientation component as a unit quaternion.
	Rotation mat32.Quat
}

// IdentityTransform returns a Transform with zero translation and the
// identity rotation.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{Rotation: QuatIdentity()}
}

// QuatIdentity returns the identity quaternion (0, 0, 0, 1).
//
// Returns:
//   - mat32.Quat: the identity quaternion
func QuatIdentity() mat32.Quat {
	return mat32.Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// Matrix converts the rigid transform into a 4x4 column-major matrix with
// unit scale.
//
// Returns:
//   - mat32.Mat4: the equivalent transform matrix
func (t Transform) Matrix() mat32.Mat4 {
	var m mat32.Mat4
	m.SetTransform(t.Translation, t.Rotation, mat32.Vec3{X: 1, Y: 1, Z: 1})
	return m
}

// QuatFromEuler converts intrinsic XYZ Euler angles in radians into a unit
// quaternion.
//
// Parameters:
//   - euler: rotations about the (x, y, z) axes in radians
//
// Returns:
//   - mat32.Quat: the equivalent quaternion
func QuatFromEuler(euler [3]float32) mat32.Quat {
	sx, cx := sincosHalf(euler[0])
	sy, cy := sincosHalf(euler[1])
	sz, cz := sincosHalf(euler[2])
	return mat32.Quat{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz + sx*sy*cz,
		W: cx*cy*cz - sx*sy*sz,
	}
}

func sincosHalf(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle) / 2)
	return float32(s), float32(c)
}

// Vec3FromArray converts a [3]float32 wire value into a mat32.Vec3.
// Components pass through untouched, so values round-trip bit-for-bit.
//
// Parameters:
//   - a: the (x, y, z) components
//
// Returns:
//   - mat32.Vec3: the vector
func Vec3FromArray(a [3]float32) mat32.Vec3 {
	return mat32.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Vec3ToArray converts a mat32.Vec3 into a [3]float32 wire value.
//
// Parameters:
//   - v: the vector
//
// Returns:
//   - [3]float32: the (x, y, z) components
func Vec3ToArray(v mat32.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// QuatFromArray converts a [4]float32 wire value in (x, y, z, w) order into
// a mat32.Quat. Components pass through untouched.
//
// Parameters:
//   - a: the (x, y, z, w) components
//
// Returns:
//   - mat32.Quat: the quaternion
func QuatFromArray(a [4]float32) mat32.Quat {
	return mat32.Quat{X: a[0], Y: a[1], Z: a[2], W: a[3]}
}

// QuatToArray converts a mat32.Quat into a [4]float32 wire value in
// (x, y, z, w) order.
//
// Parameters:
//   - q: the quaternion
//
// Returns:
//   - [4]float32: the (x, y, z, w) components
func QuatToArray(q mat32.Quat) [4]float32 {
	return [4]float32{q.X, q.Y, q.Z, q.W}
}
