// Package transform converts between homogeneous 4x4 matrices and their
// translation, rotation and scale (TRS) components.
//
// Decomposition recovers scale from column magnitudes, so it cannot tell a
// negative scale from a positive one. A bare matrix with a reflective linear
// block fails to decompose; callers that know the signed scale should use
// DecomposeSigned instead.
package transform

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/rotation"
)

// DegenerateScale is the column magnitude at or below which a column is
// treated as collapsed.
const DegenerateScale = 1e-6

// Transform represents a position, orientation and scale in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation rotation.Rotation
	Scale    mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: rotation.Identity(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix composes the transform into a homogeneous matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	return Compose(t.Position, t.Rotation, t.Scale)
}

// Compose builds the matrix T * R * S.
// Column i (i < 3) is the i-th rotation column scaled by scale[i], and the
// last column holds the position.
func Compose(position mgl64.Vec3, r rotation.Rotation, scale mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Mat4FromCols(
		r.Column(0).Mul(scale[0]).Vec4(0),
		r.Column(1).Mul(scale[1]).Vec4(0),
		r.Column(2).Mul(scale[2]).Vec4(0),
		position.Vec4(1),
	)
}

// Position returns the translation column.
func Position(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// Scale returns the magnitudes of the three linear columns.
// Collapsed columns report a scale of 1.
func Scale(m mgl64.Mat4) mgl64.Vec3 {
	var scale mgl64.Vec3
	for i := 0; i < 3; i++ {
		length := m.Col(i).Vec3().Len()
		if length <= DegenerateScale {
			length = 1
		}
		scale[i] = length
	}
	return scale
}

// unitColumns divides each linear column by its magnitude, substituting the
// basis vector for collapsed columns.
func unitColumns(m mgl64.Mat4) [3]mgl64.Vec3 {
	var cols [3]mgl64.Vec3
	for i := 0; i < 3; i++ {
		col := m.Col(i).Vec3()
		length := col.Len()
		if length <= DegenerateScale {
			var basis mgl64.Vec3
			basis[i] = 1
			cols[i] = basis
			continue
		}
		cols[i] = col.Mul(1 / length)
	}
	return cols
}

// Rotation extracts the rotation of m, assuming non-negative scale.
func Rotation(m mgl64.Mat4) (rotation.Rotation, error) {
	cols := unitColumns(m)
	r, err := rotation.New(mgl64.Mat3FromCols(cols[0], cols[1], cols[2]))
	if err != nil {
		return rotation.Rotation{}, errors.WithHint(err, "a reflective transform needs its signed scale to decompose")
	}
	return r, nil
}

// Decompose splits m into position, scale and rotation.
func Decompose(m mgl64.Mat4) (position, scale mgl64.Vec3, r rotation.Rotation, err error) {
	r, err = Rotation(m)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, rotation.Rotation{}, err
	}
	return Position(m), Scale(m), r, nil
}

// negativeCount returns how many components of v are negative.
func negativeCount(v mgl64.Vec3) int {
	n := 0
	for _, c := range v {
		if c < 0 {
			n++
		}
	}
	return n
}

// DecomposeSigned splits m using a known signed scale to resolve reflections.
//
// An even number of negative components is indistinguishable from a proper
// rotation and is absorbed into it. An odd number flips the first rotation
// column and the first returned scale component, so that
// Compose(position, r, scale) reproduces m.
func DecomposeSigned(m mgl64.Mat4, signed mgl64.Vec3) (position, scale mgl64.Vec3, r rotation.Rotation, err error) {
	cols := unitColumns(m)
	scale = Scale(m)
	if negativeCount(signed)%2 == 1 {
		cols[0] = cols[0].Mul(-1)
		scale[0] = -scale[0]
	}

	r, err = rotation.New(mgl64.Mat3FromCols(cols[0], cols[1], cols[2]))
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, rotation.Rotation{}, errors.Wrapf(err, "signed scale %v", signed)
	}
	return Position(m), scale, r, nil
}

// TransformPoint applies m to a point and divides by the homogeneous w.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	h := m.Mul4x1(p.Vec4(1))
	return h.Vec3().Mul(1 / h.W())
}

// NormalMatrix returns the inverse transpose of the linear block of m, which
// maps surface normals consistently under non-uniform scale.
func NormalMatrix(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3().Inv().Transpose()
}
