// Package rotation implements a validated proper-rotation value type.
//
// A Rotation wraps a 3x3 matrix whose determinant is within DeterminantTolerance
// of 1, together with its cached transpose. Every operation returns a new value,
// so a Rotation can be shared freely once constructed.
//
// Rotations can be built from, and converted to, several representations:
//   - matrices and orthonormal axis triplets
//   - Hamilton (w,x,y,z) and Shuster (x,y,z,w) quaternions
//   - elementary basis rotations and Euler angle sequences
//   - axis-angle pairs
package rotation

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DeterminantTolerance is the maximum allowed |det(M) - 1|.
	DeterminantTolerance = 1e-3

	// MinAxisLength is the length below which an input axis is considered degenerate.
	MinAxisLength = 1e-3
)

var (
	// ErrInvalidRotation is returned when a matrix is not a proper rotation.
	ErrInvalidRotation = errors.New("invalid rotation")

	// ErrInvalidSequence is returned for malformed Euler angle sequences.
	ErrInvalidSequence = errors.New("invalid euler sequence")
)

// Rotation is a proper rotation in three dimensions.
type Rotation struct {
	matrix    mgl64.Mat3
	transpose mgl64.Mat3
}

// Identity returns the identity rotation.
func Identity() Rotation {
	return Rotation{matrix: mgl64.Ident3(), transpose: mgl64.Ident3()}
}

// New validates m and wraps it as a Rotation.
func New(m mgl64.Mat3) (Rotation, error) {
	if err := checkDeterminant(m); err != nil {
		return Rotation{}, err
	}
	return fromMatrix(m), nil
}

func checkDeterminant(m mgl64.Mat3) error {
	det := m.Det()
	// Written as a negation so that a NaN determinant is rejected too.
	if !(math.Abs(det-1) <= DeterminantTolerance) {
		return errors.Wrapf(ErrInvalidRotation, "determinant %g is not within %g of 1", det, DeterminantTolerance)
	}
	return nil
}

// Validate reports ErrInvalidRotation for a Rotation that was not built by
// this package, such as the zero value.
func (r Rotation) Validate() error {
	if err := checkDeterminant(r.matrix); err != nil {
		return errors.WithHint(err, "use rotation.Identity() instead of the zero value")
	}
	if r.transpose != r.matrix.Transpose() {
		return errors.Wrap(ErrInvalidRotation, "cached inverse does not match the matrix")
	}
	return nil
}

// FromAxes builds a rotation whose columns are the normalized x, y and z axes.
func FromAxes(x, y, z mgl64.Vec3) (Rotation, error) {
	for i, axis := range [3]mgl64.Vec3{x, y, z} {
		length := axis.Len()
		if !(length > MinAxisLength) {
			return Rotation{}, errors.Wrapf(ErrInvalidRotation, "axis %d has length %g", i, length)
		}
	}

	r, err := New(mgl64.Mat3FromCols(x.Normalize(), y.Normalize(), z.Normalize()))
	if err != nil {
		return Rotation{}, errors.WithHint(err, "axes must be mutually orthogonal and right-handed")
	}
	return r, nil
}

// fromMatrix wraps m without validation. The caller guarantees m is proper.
func fromMatrix(m mgl64.Mat3) Rotation {
	return Rotation{matrix: m, transpose: m.Transpose()}
}

// Equal reports whether both rotations hold exactly the same matrix entries.
// No tolerance is applied: rotations built through different paths may differ
// in the last bits and compare unequal.
func (r Rotation) Equal(other Rotation) bool {
	return r.matrix == other.matrix
}

// ApproxEqual reports whether every matrix entry differs by at most threshold.
func (r Rotation) ApproxEqual(other Rotation, threshold float64) bool {
	for i := range r.matrix {
		if !(math.Abs(r.matrix[i]-other.matrix[i]) <= threshold) {
			return false
		}
	}
	return true
}

// Mul composes the two rotations, returning r * other.
// The determinant of a product is the product of the determinants, so the
// result is proper whenever both operands are.
func (r Rotation) Mul(other Rotation) Rotation {
	return fromMatrix(r.matrix.Mul3(other.matrix))
}

// Apply rotates v.
func (r Rotation) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return r.matrix.Mul3x1(v)
}

// Inverse returns the inverse rotation, which is the transpose.
func (r Rotation) Inverse() Rotation {
	return Rotation{matrix: r.transpose, transpose: r.matrix}
}

// InverseMul returns r^-1 * other using the cached transpose.
func (r Rotation) InverseMul(other Rotation) Rotation {
	return fromMatrix(r.transpose.Mul3(other.matrix))
}

// InverseApply returns r^-1 * v using the cached transpose.
func (r Rotation) InverseApply(v mgl64.Vec3) mgl64.Vec3 {
	return r.transpose.Mul3x1(v)
}

// Matrix returns the rotation matrix.
func (r Rotation) Matrix() mgl64.Mat3 {
	return r.matrix
}

// InverseMatrix returns the cached transpose.
func (r Rotation) InverseMatrix() mgl64.Mat3 {
	return r.transpose
}

// Column returns the i-th column of the matrix, i.e. the image of the i-th basis vector.
func (r Rotation) Column(i int) mgl64.Vec3 {
	return r.matrix.Col(i)
}

// Float32 casts the matrix to single precision. The conversion is lossy and
// therefore never performed implicitly.
func (r Rotation) Float32() mgl32.Mat3 {
	var m mgl32.Mat3
	for i, v := range r.matrix {
		m[i] = float32(v)
	}
	return m
}

func (r Rotation) String() string {
	m := r.matrix
	return fmt.Sprintf("Rotation[[%g %g %g] [%g %g %g] [%g %g %g]]",
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2))
}
