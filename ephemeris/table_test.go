package ephemeris

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return math.Abs(a.X()-b.X()) < epsilon &&
		math.Abs(a.Y()-b.Y()) < epsilon &&
		math.Abs(a.Z()-b.Z()) < epsilon
}

func newTestTable() *Table {
	table := NewTable("J2000")
	sun := Fixed(mgl64.Vec3{})
	table.AddBody("SUN", sun)
	table.AddBody("EARTH", CircularOrbit(sun, 100, 400, 0))
	table.AddFrame("SPIN_Z", Spin(mgl64.Vec3{0, 0, 2}, 0.5, 0))
	return table
}

func TestTable_PositionVelocity_Inertial(t *testing.T) {
	table := newTestTable()

	pos, vel, err := table.PositionVelocity("EARTH", 0, "J2000", NoCorrection, "SUN")
	require.NoError(t, err)
	assert.True(t, vec3AlmostEqual(pos, mgl64.Vec3{100, 0, 0}, 1e-12), "pos %v", pos)

	speed := 100 * 2 * math.Pi / 400
	assert.True(t, vec3AlmostEqual(vel, mgl64.Vec3{0, speed, 0}, 1e-12), "vel %v", vel)

	// Observer and target swap flips the relative state.
	pos2, vel2, err := table.PositionVelocity("SUN", 0, "J2000", NoCorrection, "EARTH")
	require.NoError(t, err)
	assert.Equal(t, pos.Mul(-1), pos2)
	assert.Equal(t, vel.Mul(-1), vel2)
}

func TestTable_PositionVelocity_RotatingFrame(t *testing.T) {
	table := NewTable("J2000")
	table.AddBody("ORIGIN", Fixed(mgl64.Vec3{}))
	table.AddBody("POINT", Fixed(mgl64.Vec3{10, 0, 0}))
	table.AddFrame("SPIN_Z", Spin(mgl64.Vec3{0, 0, 1}, 1, 0))

	// A point at rest in inertial space appears to move backwards in a spinning frame.
	pos, vel, err := table.PositionVelocity("POINT", 0, "SPIN_Z", NoCorrection, "ORIGIN")
	require.NoError(t, err)
	assert.True(t, vec3AlmostEqual(pos, mgl64.Vec3{10, 0, 0}, 1e-12))
	assert.True(t, vec3AlmostEqual(vel, mgl64.Vec3{0, -10, 0}, 1e-12), "vel %v", vel)
}

func TestTable_FrameRotation(t *testing.T) {
	table := newTestTable()
	et := math.Pi // half a radian per second: a quarter turn at pi

	m, err := table.FrameRotation("SPIN_Z", "J2000", et)
	require.NoError(t, err)
	got := m.Mul3x1(mgl64.Vec3{1, 0, 0})
	assert.True(t, vec3AlmostEqual(got, mgl64.Vec3{0, 1, 0}, 1e-12), "got %v", got)

	inv, err := table.FrameRotation("J2000", "SPIN_Z", et)
	require.NoError(t, err)
	assert.True(t, vec3AlmostEqual(inv.Mul3x1(got), mgl64.Vec3{1, 0, 0}, 1e-12))
}

func TestTable_FrameAngularRate(t *testing.T) {
	table := newTestTable()

	rate, err := table.FrameAngularRate("SPIN_Z", "J2000", 3)
	require.NoError(t, err)
	assert.True(t, vec3AlmostEqual(rate, mgl64.Vec3{0, 0, 0.5}, 1e-12))

	rate, err = table.FrameAngularRate("J2000", "SPIN_Z", 3)
	require.NoError(t, err)
	assert.True(t, vec3AlmostEqual(rate, mgl64.Vec3{0, 0, -0.5}, 1e-12))
}

func TestTable_Errors(t *testing.T) {
	table := newTestTable()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"unknown target", func() error {
			_, _, err := table.PositionVelocity("MARS", 0, "J2000", NoCorrection, "SUN")
			return err
		}, ErrUnknownBody},
		{"unknown observer", func() error {
			_, _, err := table.PositionVelocity("EARTH", 0, "J2000", NoCorrection, "PLUTO")
			return err
		}, ErrUnknownBody},
		{"unknown frame", func() error {
			_, _, err := table.PositionVelocity("EARTH", 0, "IAU_MARS", NoCorrection, "SUN")
			return err
		}, ErrUnknownFrame},
		{"light time correction", func() error {
			_, _, err := table.PositionVelocity("EARTH", 0, "J2000", "LT+S", "SUN")
			return err
		}, ErrUnsupportedCorrection},
		{"rotation from unknown", func() error {
			_, err := table.FrameRotation("IAU_MARS", "J2000", 0)
			return err
		}, ErrUnknownFrame},
		{"rate to unknown", func() error {
			_, err := table.FrameAngularRate("J2000", "IAU_MARS", 0)
			return err
		}, ErrUnknownFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

var _ Ephemeris = (*Table)(nil)
