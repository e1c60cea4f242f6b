package frame

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/ephemeris"
	"github.com/akmonengine/frames/rotation"
	"github.com/akmonengine/frames/transform"
)

// ConfigureSPICE sets the ephemeris object and orientation frame names.
// The parent and the scene root must already be configured SPICE frames;
// on error the previous names are kept.
func (f *ReferenceFrame) ConfigureSPICE(naifName, frameName string) error {
	prevNAIF, prevFrame := f.naifName, f.frameName
	f.naifName, f.frameName = naifName, frameName

	if err := f.checkSPICEAncestors(); err != nil {
		f.naifName, f.frameName = prevNAIF, prevFrame
		return err
	}
	return nil
}

// SetNAIFName changes only the ephemeris object name.
func (f *ReferenceFrame) SetNAIFName(naifName string) error {
	return f.ConfigureSPICE(naifName, f.frameName)
}

// SetFrameName changes only the orientation frame name.
func (f *ReferenceFrame) SetFrameName(frameName string) error {
	return f.ConfigureSPICE(f.naifName, frameName)
}

func (f *ReferenceFrame) NAIFName() string { return f.naifName }

func (f *ReferenceFrame) FrameName() string { return f.frameName }

// IsConfiguredSPICEObject reports whether an ephemeris object name is set.
func (f *ReferenceFrame) IsConfiguredSPICEObject() bool {
	return f.naifName != ""
}

// IsConfiguredSPICEFrame reports whether both object and frame names are set.
func (f *ReferenceFrame) IsConfiguredSPICEFrame() bool {
	return f.IsConfiguredSPICEObject() && f.frameName != ""
}

func (f *ReferenceFrame) checkSPICEAncestors() error {
	if f.parent != nil && !f.parent.IsConfiguredSPICEFrame() {
		return errors.WithHint(
			errors.Wrapf(ErrNotConfigured, "parent %q of frame %q", f.parent.name, f.name),
			"configure the parent's SPICE object and frame first",
		)
	}
	if scene := f.Scene(); !scene.IsConfiguredSPICEFrame() {
		return errors.WithHint(
			errors.Wrapf(ErrNotConfigured, "scene root %q of frame %q", scene.name, f.name),
			"configure the scene root's SPICE object and frame first",
		)
	}
	return nil
}

// kinematicQuery is the ephemeris-sourced state of f relative to a reference.
type kinematicQuery struct {
	position    mgl64.Vec3
	velocity    mgl64.Vec3
	rotation    rotation.Rotation
	angularRate mgl64.Vec3
	oriented    bool
}

// query fetches the state of f relative to the object and frame of ref.
func (f *ReferenceFrame) query(eph ephemeris.Ephemeris, et float64, ref *ReferenceFrame) (kinematicQuery, error) {
	var q kinematicQuery

	position, velocity, err := eph.PositionVelocity(f.naifName, et, ref.frameName, f.abcorr, ref.naifName)
	if err != nil {
		return q, errors.Wrapf(err, "state of %q relative to %q", f.naifName, ref.naifName)
	}
	q.position, q.velocity = position, velocity

	if !f.IsConfiguredSPICEFrame() {
		return q, nil
	}

	m, err := eph.FrameRotation(f.frameName, ref.frameName, et)
	if err != nil {
		return q, errors.Wrapf(err, "rotation from %q to %q", f.frameName, ref.frameName)
	}
	r, err := rotation.New(m)
	if err != nil {
		return q, errors.Wrapf(err, "rotation from %q to %q", f.frameName, ref.frameName)
	}
	rate, err := eph.FrameAngularRate(f.frameName, ref.frameName, et)
	if err != nil {
		return q, errors.Wrapf(err, "angular rate of %q relative to %q", f.frameName, ref.frameName)
	}
	q.rotation, q.angularRate, q.oriented = r, rate, true
	return q, nil
}

func (q kinematicQuery) assign(s *state) {
	s.position = q.position
	s.velocity = q.velocity
	if q.oriented {
		s.rotation = q.rotation
		s.angularRate = q.angularRate
	}
	s.transform = transform.Compose(s.position, s.rotation, s.scale)
}

// UpdateSPICEStates pulls the frame's state from eph at ephemeris time et.
//
// The local state is queried relative to the parent's object and frame. The
// global state is queried separately relative to the scene root, rather than
// composed with the parent's cached global state. Rotation and angular rate
// are only updated when the frame has an orientation frame name.
//
// A root frame defines the scene origin, so updating it is a no-op.
func (f *ReferenceFrame) UpdateSPICEStates(eph ephemeris.Ephemeris, et float64) error {
	if !f.IsConfiguredSPICEObject() {
		return errors.Wrapf(ErrNotConfigured, "frame %q has no SPICE object", f.name)
	}
	if f.parent == nil {
		return nil
	}
	if err := f.checkSPICEAncestors(); err != nil {
		return err
	}

	local, err := f.query(eph, et, f.parent)
	if err != nil {
		return errors.Wrapf(err, "frame %q local state", f.name)
	}
	global, err := f.query(eph, et, f.Scene())
	if err != nil {
		return errors.Wrapf(err, "frame %q global state", f.name)
	}

	local.assign(&f.local)
	global.assign(&f.global)
	f.notify()
	return nil
}
