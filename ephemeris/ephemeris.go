// Package ephemeris defines the queries reference frames make against an
// ephemeris engine, and provides an in-memory Table implementation.
//
// Positions are in meters, velocities in meters per second, angular rates in
// radians per second. Times are ephemeris time (ET) in seconds.
package ephemeris

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"
)

// NoCorrection is the aberration correction flag for geometric states.
const NoCorrection = "NONE"

var (
	ErrUnknownBody           = errors.New("unknown ephemeris body")
	ErrUnknownFrame          = errors.New("unknown ephemeris frame")
	ErrUnsupportedCorrection = errors.New("unsupported aberration correction")
)

// Ephemeris is the state provider consumed by reference frames.
type Ephemeris interface {
	// PositionVelocity returns the state of target relative to observer,
	// expressed in frame, at et.
	PositionVelocity(target string, et float64, frame string, abcorr string, observer string) (position, velocity mgl64.Vec3, err error)

	// FrameRotation returns the matrix rotating vectors expressed in from
	// into vectors expressed in to, at et.
	FrameRotation(from, to string, et float64) (mgl64.Mat3, error)

	// FrameAngularRate returns the angular rate of from relative to to,
	// expressed in to, at et.
	FrameAngularRate(from, to string, et float64) (mgl64.Vec3, error)
}
