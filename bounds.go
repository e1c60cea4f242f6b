package frames

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned box in scene coordinates
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyBounds contains nothing; extending it by a point yields that point.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (b Bounds) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows b to include point
func (b Bounds) Extend(point mgl64.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], point[i])
		b.Max[i] = math.Max(b.Max[i], point[i])
	}
	return b
}

// ContainsPoint checks if a point is inside the box, boundary included
func (b Bounds) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= b.Min.X() && point.X() <= b.Max.X() &&
		point.Y() >= b.Min.Y() && point.Y() <= b.Max.Y() &&
		point.Z() >= b.Min.Z() && point.Z() <= b.Max.Z()
}

// Overlaps checks if two boxes overlap on all three axes
func (b Bounds) Overlaps(other Bounds) bool {
	return b.Max.X() >= other.Min.X() && b.Min.X() <= other.Max.X() &&
		b.Max.Y() >= other.Min.Y() && b.Min.Y() <= other.Max.Y() &&
		b.Max.Z() >= other.Min.Z() && b.Min.Z() <= other.Max.Z()
}

// GlobalBounds maps the local points of frame id into the scene frame and
// returns their bounding box.
func (s *Scene) GlobalBounds(id FrameID, points []mgl64.Vec3, workers int) (Bounds, error) {
	global, err := s.LocalToGlobalPoints(id, points, workers)
	if err != nil {
		return Bounds{}, err
	}
	b := EmptyBounds()
	for _, p := range global {
		b = b.Extend(p)
	}
	return b, nil
}
