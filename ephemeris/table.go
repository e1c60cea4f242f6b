package ephemeris

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"
)

// State is a position and velocity relative to the table's inertial origin,
// expressed in its inertial frame.
type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// StateFunc evaluates a body's inertial state at et.
type StateFunc func(et float64) State

// Orientation is the rotation from a frame to the inertial frame, and the
// frame's angular rate expressed in the inertial frame.
type Orientation struct {
	Rotation    mgl64.Mat3
	AngularRate mgl64.Vec3
}

// OrientationFunc evaluates a frame's orientation at et.
type OrientationFunc func(et float64) Orientation

// Table is an analytic ephemeris built from per-body state functions.
// It is meant for tests, examples and simple scenario tooling; it is not
// safe for concurrent mutation.
type Table struct {
	inertial string
	bodies   map[string]StateFunc
	frames   map[string]OrientationFunc
}

// NewTable creates a table whose inertial frame is named inertial.
func NewTable(inertial string) *Table {
	return &Table{
		inertial: inertial,
		bodies:   make(map[string]StateFunc),
		frames: map[string]OrientationFunc{
			inertial: Inertial(),
		},
	}
}

// AddBody registers a body state function
func (t *Table) AddBody(name string, fn StateFunc) {
	t.bodies[name] = fn
}

// AddFrame registers an orientation frame
func (t *Table) AddFrame(name string, fn OrientationFunc) {
	t.frames[name] = fn
}

func (t *Table) body(name string, et float64) (State, error) {
	fn, ok := t.bodies[name]
	if !ok {
		return State{}, errors.Wrapf(ErrUnknownBody, "%q", name)
	}
	return fn(et), nil
}

func (t *Table) orientation(name string, et float64) (Orientation, error) {
	fn, ok := t.frames[name]
	if !ok {
		return Orientation{}, errors.Wrapf(ErrUnknownFrame, "%q", name)
	}
	return fn(et), nil
}

// PositionVelocity implements Ephemeris. Velocities expressed in a rotating
// frame include the transport term of that frame's rotation.
func (t *Table) PositionVelocity(target string, et float64, frame string, abcorr string, observer string) (mgl64.Vec3, mgl64.Vec3, error) {
	if abcorr != NoCorrection {
		return mgl64.Vec3{}, mgl64.Vec3{}, errors.Wrapf(ErrUnsupportedCorrection, "%q", abcorr)
	}

	targetState, err := t.body(target, et)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, err
	}
	observerState, err := t.body(observer, et)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, err
	}
	o, err := t.orientation(frame, et)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, err
	}

	r := targetState.Position.Sub(observerState.Position)
	v := targetState.Velocity.Sub(observerState.Velocity)

	toFrame := o.Rotation.Transpose()
	position := toFrame.Mul3x1(r)
	velocity := toFrame.Mul3x1(v.Sub(o.AngularRate.Cross(r)))
	return position, velocity, nil
}

// FrameRotation implements Ephemeris.
func (t *Table) FrameRotation(from, to string, et float64) (mgl64.Mat3, error) {
	a, err := t.orientation(from, et)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	b, err := t.orientation(to, et)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	return b.Rotation.Transpose().Mul3(a.Rotation), nil
}

// FrameAngularRate implements Ephemeris.
func (t *Table) FrameAngularRate(from, to string, et float64) (mgl64.Vec3, error) {
	a, err := t.orientation(from, et)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	b, err := t.orientation(to, et)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return b.Rotation.Transpose().Mul3x1(a.AngularRate.Sub(b.AngularRate)), nil
}

// Fixed is a body at rest at position.
func Fixed(position mgl64.Vec3) StateFunc {
	return func(float64) State {
		return State{Position: position}
	}
}

// CircularOrbit is a body on a circular orbit of the given radius in the
// inertial xy plane, about center. Period is in seconds; phase in radians.
func CircularOrbit(center StateFunc, radius, period, phase float64) StateFunc {
	n := 2 * math.Pi / period
	return func(et float64) State {
		c := center(et)
		s, cs := math.Sincos(phase + n*et)
		return State{
			Position: c.Position.Add(mgl64.Vec3{radius * cs, radius * s, 0}),
			Velocity: c.Velocity.Add(mgl64.Vec3{-radius * n * s, radius * n * cs, 0}),
		}
	}
}

// Inertial is the orientation of the inertial frame itself.
func Inertial() OrientationFunc {
	return func(float64) Orientation {
		return Orientation{Rotation: mgl64.Ident3()}
	}
}

// Spin is a frame rotating about axis at rate rad/s, starting at phase rad.
func Spin(axis mgl64.Vec3, rate, phase float64) OrientationFunc {
	axis = axis.Normalize()
	return func(et float64) Orientation {
		q := mgl64.QuatRotate(phase+rate*et, axis)
		return Orientation{
			Rotation:    q.Mat4().Mat3(),
			AngularRate: axis.Mul(rate),
		}
	}
}
