package rotation

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/angle"
)

// DefaultSequence is the Euler sequence used when none is specified.
const DefaultSequence = "123"

// X returns the basis rotation about the x-axis.
func X(a angle.Radian) Rotation {
	s, c := math.Sincos(a.Float())
	return fromMatrix(mgl64.Mat3FromCols(
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, c, s},
		mgl64.Vec3{0, -s, c},
	))
}

// Y returns the basis rotation about the y-axis.
func Y(a angle.Radian) Rotation {
	s, c := math.Sincos(a.Float())
	return fromMatrix(mgl64.Mat3FromCols(
		mgl64.Vec3{c, 0, -s},
		mgl64.Vec3{0, 1, 0},
		mgl64.Vec3{s, 0, c},
	))
}

// Z returns the basis rotation about the z-axis.
func Z(a angle.Radian) Rotation {
	s, c := math.Sincos(a.Float())
	return fromMatrix(mgl64.Mat3FromCols(
		mgl64.Vec3{c, s, 0},
		mgl64.Vec3{-s, c, 0},
		mgl64.Vec3{0, 0, 1},
	))
}

// axisRotation maps a sequence character to its basis rotation.
func axisRotation(axis byte) (func(angle.Radian) Rotation, bool) {
	switch axis {
	case '1', 'X', 'x':
		return X, true
	case '2', 'Y', 'y':
		return Y, true
	case '3', 'Z', 'z':
		return Z, true
	}
	return nil, false
}

// EulerAngles builds a rotation from three angles applied in the order given
// by sequence, e.g. "XYZ", "zyx" or "313".
//
// Each step premultiplies the running result, so the last axis in the
// sequence is the outermost factor: "123" yields Z(a3) * Y(a2) * X(a1).
func EulerAngles(a1, a2, a3 angle.Degree, sequence string) (Rotation, error) {
	if len(sequence) != 3 {
		return Rotation{}, errors.Wrapf(ErrInvalidSequence, "sequence %q must have 3 axes", sequence)
	}

	angles := [3]angle.Degree{a1, a2, a3}
	result := Identity()
	for i := 0; i < 3; i++ {
		basis, ok := axisRotation(sequence[i])
		if !ok {
			return Rotation{}, errors.WithHint(
				errors.Wrapf(ErrInvalidSequence, "sequence %q has invalid axis %q", sequence, sequence[i]),
				"use 1/2/3 or X/Y/Z",
			)
		}
		result = basis(angles[i].Radians()).Mul(result)
	}
	return result, nil
}
