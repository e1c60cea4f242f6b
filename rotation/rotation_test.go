package rotation

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akmonengine/frames/angle"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// Helper function to compare Vec3 with epsilon tolerance
func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

func mat3AlmostEqual(a, b mgl64.Mat3, epsilon float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

func quatAlmostEqual(a, b mgl64.Quat, epsilon float64) bool {
	return almostEqual(a.W, b.W, epsilon) && vec3AlmostEqual(a.V, b.V, epsilon)
}

func mustAxisAngle(t *testing.T, axis mgl64.Vec3, a angle.Degree) Rotation {
	t.Helper()
	r, err := AxisAngle(axis, a)
	require.NoError(t, err)
	return r
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		matrix  mgl64.Mat3
		wantErr bool
	}{
		{"identity", mgl64.Ident3(), false},
		{"basis rotation", mgl64.Rotate3DZ(0.3), false},
		{"within tolerance", mgl64.Ident3().Mul(1.0003), false},
		{"uniform scale", mgl64.Ident3().Mul(2), true},
		{"reflection", mgl64.Diag3(mgl64.Vec3{-1, 1, 1}), true},
		{"singular", mgl64.Mat3{}, true},
		{"nan", mgl64.Mat3{math.NaN(), 0, 0, 0, 1, 0, 0, 0, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.matrix)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRotation), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.matrix, r.Matrix())
			assert.Equal(t, tt.matrix.Transpose(), r.InverseMatrix())
		})
	}
}

func TestValidate(t *testing.T) {
	a := mustAxisAngle(t, mgl64.Vec3{1, 2, 3}, 40)
	b := mustAxisAngle(t, mgl64.Vec3{0, -1, 0}, 125)
	euler, err := EulerAngles(10, 20, 30, "ZYX")
	require.NoError(t, err)
	quat, err := FromQuat(mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1}))
	require.NoError(t, err)

	for name, r := range map[string]Rotation{
		"identity":    Identity(),
		"product":     a.Mul(b),
		"inverse":     a.Inverse(),
		"inverse mul": a.InverseMul(b),
		"euler":       euler,
		"basis":       X(1.2),
		"quaternion":  quat,
	} {
		assert.NoError(t, r.Validate(), name)
	}

	t.Run("zero value", func(t *testing.T) {
		err := Rotation{}.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRotation))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})
}

func TestFromAxes(t *testing.T) {
	t.Run("normalizes axes into columns", func(t *testing.T) {
		r, err := FromAxes(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{-3, 0, 0}, mgl64.Vec3{0, 0, 0.5})
		require.NoError(t, err)

		assert.Equal(t, mgl64.Vec3{0, 1, 0}, r.Column(0))
		assert.Equal(t, mgl64.Vec3{-1, 0, 0}, r.Column(1))
		assert.Equal(t, mgl64.Vec3{0, 0, 1}, r.Column(2))
	})

	t.Run("parallel axes", func(t *testing.T) {
		axis := mgl64.Vec3{1, 0, 0}
		_, err := FromAxes(axis, axis, axis)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRotation))
	})

	t.Run("degenerate axis", func(t *testing.T) {
		_, err := FromAxes(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1e-4, 0}, mgl64.Vec3{0, 0, 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRotation))
	})

	t.Run("left-handed axes", func(t *testing.T) {
		_, err := FromAxes(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRotation))
	})
}

func TestEqual_IsExact(t *testing.T) {
	a := Z(0.5)
	b := Z(0.5)
	assert.True(t, a.Equal(b))

	m := a.Matrix()
	m[0] = math.Nextafter(m[0], 2)
	c, err := New(m)
	require.NoError(t, err)
	assert.False(t, a.Equal(c), "a one-ulp difference must compare unequal")
	assert.True(t, a.ApproxEqual(c, 1e-12))
}

// =============================================================================
// Group Law Tests
// =============================================================================

func TestGroupLaws(t *testing.T) {
	r1 := mustAxisAngle(t, mgl64.Vec3{1, 2, 3}, 37)
	r2 := mustAxisAngle(t, mgl64.Vec3{-2, 0.5, 1}, 121)
	v := mgl64.Vec3{0.3, -4, 2.5}

	t.Run("double inverse", func(t *testing.T) {
		assert.True(t, r1.Inverse().Inverse().Equal(r1))
	})

	t.Run("inverse cancels", func(t *testing.T) {
		assert.True(t, r1.Mul(r1.Inverse()).ApproxEqual(Identity(), 1e-12))
		assert.True(t, r1.InverseMul(r1).ApproxEqual(Identity(), 1e-12))
	})

	t.Run("associativity on vectors", func(t *testing.T) {
		lhs := r1.Mul(r2).Apply(v)
		rhs := r1.Apply(r2.Apply(v))
		assert.True(t, vec3AlmostEqual(lhs, rhs, 1e-12), "lhs=%v rhs=%v", lhs, rhs)
	})

	t.Run("inverse apply", func(t *testing.T) {
		got := r1.InverseApply(r1.Apply(v))
		assert.True(t, vec3AlmostEqual(got, v, 1e-12), "got %v", got)
		assert.Equal(t, r1.Inverse().Apply(v), r1.InverseApply(v))
	})

	t.Run("inverse mul", func(t *testing.T) {
		assert.True(t, r1.InverseMul(r2).Equal(r1.Inverse().Mul(r2)))
	})
}

// =============================================================================
// Basis Rotation Tests
// =============================================================================

func TestBasisRotations(t *testing.T) {
	quarter := angle.Degree(90).Radians()
	tests := []struct {
		name     string
		rotation Rotation
		in       mgl64.Vec3
		want     mgl64.Vec3
	}{
		{"Z maps x to y", Z(quarter), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{"X maps y to z", X(quarter), mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"Y maps z to x", Y(quarter), mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}},
		{"X keeps x", X(quarter), mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rotation.Apply(tt.in)
			if !vec3AlmostEqual(got, tt.want, 1e-6) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBasisRotations_MatchMathgl(t *testing.T) {
	a := angle.Radian(0.7)
	assert.True(t, mat3AlmostEqual(X(a).Matrix(), mgl64.Rotate3DX(0.7), 1e-15))
	assert.True(t, mat3AlmostEqual(Y(a).Matrix(), mgl64.Rotate3DY(0.7), 1e-15))
	assert.True(t, mat3AlmostEqual(Z(a).Matrix(), mgl64.Rotate3DZ(0.7), 1e-15))
}

// =============================================================================
// Euler Angle Tests
// =============================================================================

func TestEulerAngles_Order(t *testing.T) {
	// X first, then Y: (0,1,0) -X-> (0,0,1) -Y-> (1,0,0)
	r, err := EulerAngles(90, 90, 0, "XYZ")
	require.NoError(t, err)

	got := r.Apply(mgl64.Vec3{0, 1, 0})
	assert.True(t, vec3AlmostEqual(got, mgl64.Vec3{1, 0, 0}, 1e-12), "got %v", got)

	expected := Z(0).Mul(Y(angle.Degree(90).Radians())).Mul(X(angle.Degree(90).Radians()))
	assert.True(t, r.ApproxEqual(expected, 1e-14))
}

func TestEulerAngles_SequenceAliases(t *testing.T) {
	ref, err := EulerAngles(10, 20, 30, DefaultSequence)
	require.NoError(t, err)

	for _, seq := range []string{"XYZ", "xyz", "1yZ"} {
		r, err := EulerAngles(10, 20, 30, seq)
		require.NoError(t, err, seq)
		assert.True(t, r.Equal(ref), "sequence %q", seq)
	}

	r, err := EulerAngles(30, 45, 60, "313")
	require.NoError(t, err)
	expected := Z(angle.Degree(60).Radians()).Mul(X(angle.Degree(45).Radians())).Mul(Z(angle.Degree(30).Radians()))
	assert.True(t, r.ApproxEqual(expected, 1e-14))
}

func TestEulerAngles_InvalidSequence(t *testing.T) {
	for _, seq := range []string{"", "XY", "XYZX", "XYW", "12a", "0XY"} {
		t.Run(seq, func(t *testing.T) {
			_, err := EulerAngles(1, 2, 3, seq)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSequence), "got %v", err)
		})
	}
}

// =============================================================================
// Quaternion Tests
// =============================================================================

func TestQuaternion_RoundTrip_AllBranches(t *testing.T) {
	near := angle.Degree(170).Radians()
	tests := []struct {
		name     string
		rotation Rotation
	}{
		{"trace positive", mustAxisAngle(t, mgl64.Vec3{1, 1, 0}, 40)},
		{"m00 dominant", X(near)},
		{"m11 dominant", Y(near)},
		{"m22 dominant", Z(near)},
		{"generic", mustAxisAngle(t, mgl64.Vec3{-1, 3, 2}, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.rotation.Quaternion()
			assert.InDelta(t, 1.0, q.Len(), 1e-12)

			back, err := FromQuaternion(q)
			require.NoError(t, err)
			assert.True(t, back.ApproxEqual(tt.rotation, 1e-12), "got %v want %v", back, tt.rotation)

			shuster, err := FromShusterQuaternion(tt.rotation.ShusterQuaternion())
			require.NoError(t, err)
			assert.True(t, shuster.ApproxEqual(tt.rotation, 1e-12))
		})
	}
}

func TestQuaternion_Branches(t *testing.T) {
	// Half-turns land exactly on the diagonal branches.
	half := angle.Radian(math.Pi)
	assert.InDelta(t, 1.0, math.Abs(X(half).Quaternion()[1]), 1e-12)
	assert.InDelta(t, 1.0, math.Abs(Y(half).Quaternion()[2]), 1e-12)
	assert.InDelta(t, 1.0, math.Abs(Z(half).Quaternion()[3]), 1e-12)
	assert.Equal(t, mgl64.Vec4{1, 0, 0, 0}, Identity().Quaternion())
}

func TestQuaternion_Permutations(t *testing.T) {
	h := mgl64.Vec4{1, 2, 3, 4}
	s := HamiltonToShuster(h)
	assert.Equal(t, mgl64.Vec4{2, 3, 4, 1}, s)
	assert.Equal(t, h, ShusterToHamilton(s))
}

func TestFromQuaternion_Normalizes(t *testing.T) {
	r, err := FromQuaternion(mgl64.Vec4{2, 0, 0, 0})
	require.NoError(t, err)
	assert.True(t, r.Equal(Identity()))

	_, err = FromQuaternion(mgl64.Vec4{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRotation))
}

func TestQuat_MatchesMathgl(t *testing.T) {
	r := mustAxisAngle(t, mgl64.Vec3{0, 1, 1}, 60)
	q := r.Quat()
	expected := mgl64.QuatRotate(angle.Degree(60).Radians().Float(), mgl64.Vec3{0, 1, 1}.Normalize())
	assert.True(t, quatAlmostEqual(q, expected, 1e-12), "got %v want %v", q, expected)

	back, err := FromQuat(q)
	require.NoError(t, err)
	assert.True(t, back.ApproxEqual(r, 1e-12))
}

// =============================================================================
// Axis-Angle Tests
// =============================================================================

func TestAxisAngle(t *testing.T) {
	t.Run("half turn about z", func(t *testing.T) {
		r := mustAxisAngle(t, mgl64.Vec3{0, 0, 1}, 180)
		got := r.Apply(mgl64.Vec3{1, 0, 0})
		assert.True(t, vec3AlmostEqual(got, mgl64.Vec3{-1, 0, 0}, 1e-6), "got %v", got)
	})

	t.Run("unnormalized axis", func(t *testing.T) {
		a := mustAxisAngle(t, mgl64.Vec3{0, 0, 5}, 90)
		assert.True(t, a.ApproxEqual(Z(angle.Degree(90).Radians()), 1e-12))
	})

	t.Run("zero axis", func(t *testing.T) {
		_, err := AxisAngle(mgl64.Vec3{}, 45)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRotation))
	})
}

func TestFloat32(t *testing.T) {
	r := Z(0.25)
	m := r.Float32()
	for i := range m {
		assert.InDelta(t, r.Matrix()[i], float64(m[i]), 1e-7)
	}
}
