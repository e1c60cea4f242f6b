package frame

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/angle"
	"github.com/akmonengine/frames/rotation"
	"github.com/akmonengine/frames/transform"
)

// DefaultEulerSequence is the sequence used by frame Euler angle setters.
const DefaultEulerSequence = "XYZ"

// rebuild recomposes the local transform from its TRS components and commits.
func (f *ReferenceFrame) rebuild(local state) error {
	local.transform = transform.Compose(local.position, local.rotation, local.scale)
	return f.commit(local)
}

// Position

func (f *ReferenceFrame) SetLocalPosition(position mgl64.Vec3) error {
	if err := checkFinite("position", position); err != nil {
		return err
	}
	local := f.local
	local.position = position
	return f.rebuild(local)
}

func (f *ReferenceFrame) LocalTranslateBy(translation mgl64.Vec3) error {
	if err := checkFinite("translation", translation); err != nil {
		return err
	}
	return f.SetLocalPosition(f.local.position.Add(translation))
}

// Rotation

func (f *ReferenceFrame) SetLocalRotation(r rotation.Rotation) error {
	if err := r.Validate(); err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	local := f.local
	local.rotation = r
	return f.rebuild(local)
}

func (f *ReferenceFrame) SetLocalRotationMatrix(m mgl64.Mat3) error {
	r, err := rotation.New(m)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	return f.SetLocalRotation(r)
}

// SetLocalEulerAngles sets the rotation from Euler angles; an empty sequence
// means DefaultEulerSequence.
func (f *ReferenceFrame) SetLocalEulerAngles(r1, r2, r3 angle.Degree, sequence string) error {
	if sequence == "" {
		sequence = DefaultEulerSequence
	}
	r, err := rotation.EulerAngles(r1, r2, r3, sequence)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	return f.SetLocalRotation(r)
}

// SetLocalQuaternion sets the rotation from a Hamilton (w, x, y, z) quaternion.
func (f *ReferenceFrame) SetLocalQuaternion(q mgl64.Vec4) error {
	r, err := rotation.FromQuaternion(q)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	return f.SetLocalRotation(r)
}

// SetLocalShusterQuaternion sets the rotation from a Shuster (x, y, z, w) quaternion.
func (f *ReferenceFrame) SetLocalShusterQuaternion(q mgl64.Vec4) error {
	r, err := rotation.FromShusterQuaternion(q)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	return f.SetLocalRotation(r)
}

func (f *ReferenceFrame) SetLocalAxisAngle(axis mgl64.Vec3, a angle.Degree) error {
	r, err := rotation.AxisAngle(axis, a)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	return f.SetLocalRotation(r)
}

// LocalRotateBy applies r on top of the current local rotation.
func (f *ReferenceFrame) LocalRotateBy(r rotation.Rotation) error {
	return f.SetLocalRotation(r.Mul(f.local.rotation))
}

// Scale

func (f *ReferenceFrame) SetLocalScale(scale mgl64.Vec3) error {
	if err := checkFinite("scale", scale); err != nil {
		return err
	}
	local := f.local
	local.scale = scale
	return f.rebuild(local)
}

func (f *ReferenceFrame) SetLocalUniformScale(scale float64) error {
	return f.SetLocalScale(mgl64.Vec3{scale, scale, scale})
}

// LocalScaleBy multiplies the local scale component-wise.
func (f *ReferenceFrame) LocalScaleBy(scaling mgl64.Vec3) error {
	if err := checkFinite("scaling", scaling); err != nil {
		return err
	}
	s := f.local.scale
	return f.SetLocalScale(mgl64.Vec3{s[0] * scaling[0], s[1] * scaling[1], s[2] * scaling[2]})
}

// Velocity

func (f *ReferenceFrame) SetLocalVelocity(velocity mgl64.Vec3) error {
	if err := checkFinite("velocity", velocity); err != nil {
		return err
	}
	local := f.local
	local.velocity = velocity
	return f.rebuild(local)
}

func (f *ReferenceFrame) AddLocalVelocity(delta mgl64.Vec3) error {
	if err := checkFinite("velocity", delta); err != nil {
		return err
	}
	return f.SetLocalVelocity(f.local.velocity.Add(delta))
}

// Angular rate

func (f *ReferenceFrame) SetLocalAngularRate(rate mgl64.Vec3) error {
	if err := checkFinite("angular rate", rate); err != nil {
		return err
	}
	local := f.local
	local.angularRate = rate
	return f.rebuild(local)
}

func (f *ReferenceFrame) AddLocalAngularRate(delta mgl64.Vec3) error {
	if err := checkFinite("angular rate", delta); err != nil {
		return err
	}
	return f.SetLocalAngularRate(f.local.angularRate.Add(delta))
}

// Combinations

func (f *ReferenceFrame) SetLocalPositionRotation(position mgl64.Vec3, r rotation.Rotation) error {
	if err := checkFinite("position", position); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	local := f.local
	local.position = position
	local.rotation = r
	return f.rebuild(local)
}

func (f *ReferenceFrame) SetLocalPositionRotationScale(position mgl64.Vec3, r rotation.Rotation, scale mgl64.Vec3) error {
	if err := checkFinite("position", position); err != nil {
		return err
	}
	if err := checkFinite("scale", scale); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	local := f.local
	local.position = position
	local.rotation = r
	local.scale = scale
	return f.rebuild(local)
}

// SetLocalTRS sets position, rotation and scale together.
func (f *ReferenceFrame) SetLocalTRS(t transform.Transform) error {
	return f.SetLocalPositionRotationScale(t.Position, t.Rotation, t.Scale)
}

// SetLocalTransform assigns the local transform directly and decomposes it
// back into position, rotation and scale. Reflective matrices are rejected.
func (f *ReferenceFrame) SetLocalTransform(m mgl64.Mat4) error {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidValue, "frame %q: transform %v", f.name, m)
		}
	}

	position, scale, r, err := transform.Decompose(m)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}

	local := f.local
	local.transform = m
	local.position = position
	local.rotation = r
	local.scale = scale
	return f.commit(local)
}
