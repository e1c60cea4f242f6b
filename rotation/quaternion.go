package rotation

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/angle"
)

// Quaternion returns the Hamilton quaternion (w, x, y, z) of the rotation.
//
// Extraction uses Shepperd's method: the trace branch is used when the trace is
// positive, otherwise the branch of the largest diagonal element. This keeps
// the divisor away from zero for every input.
func (r Rotation) Quaternion() mgl64.Vec4 {
	m := r.matrix
	m00, m11, m22 := m.At(0, 0), m.At(1, 1), m.At(2, 2)
	trace := m00 + m11 + m22

	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2 // s = 4w
		return mgl64.Vec4{
			0.25 * s,
			(m.At(2, 1) - m.At(1, 2)) / s,
			(m.At(0, 2) - m.At(2, 0)) / s,
			(m.At(1, 0) - m.At(0, 1)) / s,
		}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2 // s = 4x
		return mgl64.Vec4{
			(m.At(2, 1) - m.At(1, 2)) / s,
			0.25 * s,
			(m.At(0, 1) + m.At(1, 0)) / s,
			(m.At(0, 2) + m.At(2, 0)) / s,
		}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2 // s = 4y
		return mgl64.Vec4{
			(m.At(0, 2) - m.At(2, 0)) / s,
			(m.At(0, 1) + m.At(1, 0)) / s,
			0.25 * s,
			(m.At(1, 2) + m.At(2, 1)) / s,
		}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2 // s = 4z
		return mgl64.Vec4{
			(m.At(1, 0) - m.At(0, 1)) / s,
			(m.At(0, 2) + m.At(2, 0)) / s,
			(m.At(1, 2) + m.At(2, 1)) / s,
			0.25 * s,
		}
	}
}

// ShusterQuaternion returns the quaternion in Shuster order (x, y, z, w).
func (r Rotation) ShusterQuaternion() mgl64.Vec4 {
	return HamiltonToShuster(r.Quaternion())
}

// Quat returns the rotation as an mgl64.Quat.
func (r Rotation) Quat() mgl64.Quat {
	q := r.Quaternion()
	return mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}
}

// HamiltonToShuster reorders a (w, x, y, z) quaternion to (x, y, z, w).
func HamiltonToShuster(q mgl64.Vec4) mgl64.Vec4 {
	return mgl64.Vec4{q[1], q[2], q[3], q[0]}
}

// ShusterToHamilton reorders a (x, y, z, w) quaternion to (w, x, y, z).
func ShusterToHamilton(q mgl64.Vec4) mgl64.Vec4 {
	return mgl64.Vec4{q[3], q[0], q[1], q[2]}
}

// FromQuaternion builds a rotation from a Hamilton quaternion (w, x, y, z).
// The quaternion is normalized first; a zero or non-finite quaternion fails
// determinant validation.
func FromQuaternion(q mgl64.Vec4) (Rotation, error) {
	q = q.Normalize()
	w, x, y, z := q[0], q[1], q[2], q[3]

	m := mgl64.Mat3FromCols(
		mgl64.Vec3{1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y)},
		mgl64.Vec3{2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x)},
		mgl64.Vec3{2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y)},
	)

	r, err := New(m)
	if err != nil {
		return Rotation{}, errors.Wrapf(err, "quaternion %v", q)
	}
	return r, nil
}

// FromShusterQuaternion builds a rotation from a Shuster quaternion (x, y, z, w).
func FromShusterQuaternion(q mgl64.Vec4) (Rotation, error) {
	return FromQuaternion(ShusterToHamilton(q))
}

// FromQuat builds a rotation from an mgl64.Quat.
func FromQuat(q mgl64.Quat) (Rotation, error) {
	return FromQuaternion(mgl64.Vec4{q.W, q.V[0], q.V[1], q.V[2]})
}

// AxisAngle builds the rotation of a degrees about axis (right-hand rule).
func AxisAngle(axis mgl64.Vec3, a angle.Degree) (Rotation, error) {
	length := axis.Len()
	if !(length > 0) || math.IsInf(length, 0) {
		return Rotation{}, errors.Wrapf(ErrInvalidRotation, "rotation axis %v has no direction", axis)
	}
	axis = axis.Mul(1 / length)

	half := a.Radians().Float() / 2
	s, c := math.Sincos(half)
	return FromQuaternion(mgl64.Vec4{c, axis[0] * s, axis[1] * s, axis[2] * s})
}
