// Package angle provides unit-tagged angle values.
//
// Degree and Radian are distinct types so that rotation entry points taking
// one cannot silently be handed the other. Conversions are always explicit.
package angle

import "github.com/go-gl/mathgl/mgl64"

// Degree is an angle measured in degrees.
type Degree float64

// Radian is an angle measured in radians.
type Radian float64

// Radians converts d to radians.
func (d Degree) Radians() Radian {
	return Radian(mgl64.DegToRad(float64(d)))
}

// Degrees converts r to degrees.
func (r Radian) Degrees() Degree {
	return Degree(mgl64.RadToDeg(float64(r)))
}

func (d Degree) Float() float64 { return float64(d) }

func (r Radian) Float() float64 { return float64(r) }
