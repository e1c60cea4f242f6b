package frame

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/transform"
)

// reflectionHint returns a scale whose sign parity matches the product of the
// parent's global scale and the local scale, for transform.DecomposeSigned.
func reflectionHint(parentScale, localScale mgl64.Vec3) mgl64.Vec3 {
	negatives := 0
	for i := 0; i < 3; i++ {
		if parentScale[i] < 0 {
			negatives++
		}
		if localScale[i] < 0 {
			negatives++
		}
	}
	if negatives%2 == 1 {
		return mgl64.Vec3{-1, 1, 1}
	}
	return mgl64.Vec3{1, 1, 1}
}

// deriveGlobal computes the global state of a frame with the given local state
// below parent (nil for a root).
//
//	global_angular_rate = parent.global_angular_rate + global_rotation * local_angular_rate
//	global_velocity     = parent.global_velocity
//	                    + parent.global_angular_rate x (global_position - parent.global_position)
//	                    + global_rotation * local_velocity
func deriveGlobal(parent *ReferenceFrame, local state) (state, error) {
	var (
		global      state
		parentScale = mgl64.Vec3{1, 1, 1}
		parentPos   mgl64.Vec3
		parentVel   mgl64.Vec3
		parentRate  mgl64.Vec3
	)

	if parent == nil {
		global.transform = local.transform
	} else {
		global.transform = parent.global.transform.Mul4(local.transform)
		parentScale = parent.global.scale
		parentPos = parent.global.position
		parentVel = parent.global.velocity
		parentRate = parent.global.angularRate
	}

	position, scale, r, err := transform.DecomposeSigned(global.transform, reflectionHint(parentScale, local.scale))
	if err != nil {
		return state{}, err
	}
	global.position = position
	global.scale = scale
	global.rotation = r

	global.angularRate = parentRate.Add(r.Apply(local.angularRate))
	global.velocity = parentVel.
		Add(parentRate.Cross(position.Sub(parentPos))).
		Add(r.Apply(local.velocity))

	return global, nil
}
