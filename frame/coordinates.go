package frame

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/transform"
)

// GlobalToLocal maps a scene-frame point into this frame.
func (f *ReferenceFrame) GlobalToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return transform.TransformPoint(f.global.transform.Inv(), point)
}

// LocalToGlobal maps a point of this frame into the scene frame.
func (f *ReferenceFrame) LocalToGlobal(point mgl64.Vec3) mgl64.Vec3 {
	return transform.TransformPoint(f.global.transform, point)
}

// GlobalDirectionToLocal rotates a direction into this frame. Scale is
// ignored, which is exact only when the global scale is uniform.
func (f *ReferenceFrame) GlobalDirectionToLocal(direction mgl64.Vec3) mgl64.Vec3 {
	return f.global.rotation.InverseApply(direction)
}

// LocalDirectionToGlobal rotates a direction into the scene frame. Scale is
// ignored, which is exact only when the global scale is uniform.
func (f *ReferenceFrame) LocalDirectionToGlobal(direction mgl64.Vec3) mgl64.Vec3 {
	return f.global.rotation.Apply(direction)
}

// rigidVelocity is the velocity of the point at global position p if it were
// carried rigidly by this frame.
func (f *ReferenceFrame) rigidVelocity(p mgl64.Vec3) mgl64.Vec3 {
	return f.global.velocity.Add(f.global.angularRate.Cross(p.Sub(f.global.position)))
}

// LocalPointToGlobalVelocity returns the scene-frame velocity of a point
// fixed in this frame.
func (f *ReferenceFrame) LocalPointToGlobalVelocity(point mgl64.Vec3) mgl64.Vec3 {
	return f.rigidVelocity(f.LocalToGlobal(point))
}

// GlobalPointToLocalVelocity returns the velocity this frame imparts at a
// scene-frame point, expressed in this frame's axes.
func (f *ReferenceFrame) GlobalPointToLocalVelocity(point mgl64.Vec3) mgl64.Vec3 {
	return f.GlobalDirectionToLocal(f.rigidVelocity(point))
}

// GlobalToLocalVelocity expresses a scene-frame velocity relative to this
// frame's origin, in this frame's axes.
func (f *ReferenceFrame) GlobalToLocalVelocity(velocity mgl64.Vec3) mgl64.Vec3 {
	return f.GlobalDirectionToLocal(velocity.Sub(f.global.velocity))
}

// LocalToGlobalVelocity is the inverse of GlobalToLocalVelocity.
func (f *ReferenceFrame) LocalToGlobalVelocity(velocity mgl64.Vec3) mgl64.Vec3 {
	return f.global.velocity.Add(f.LocalDirectionToGlobal(velocity))
}
