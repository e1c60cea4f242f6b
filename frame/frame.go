// Package frame implements ReferenceFrame, a node in a hierarchy of spatial
// transforms carrying local and global position, rotation, scale, velocity
// and angular rate.
//
// Every setter validates its input, rebuilds the local transform, composes
// it with the parent's cached global transform and recomputes the global
// kinematic state. Children are never refreshed implicitly: after a parent
// changes, a child keeps its previous global state until one of its own
// setters, Refresh, or UpdateSPICEStates runs.
//
// Frames are not safe for concurrent use.
package frame

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/frames/ephemeris"
	"github.com/akmonengine/frames/rotation"
	"github.com/akmonengine/frames/transform"
)

var (
	// ErrInvalidValue is returned when a vector argument holds NaN or Inf.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotConfigured is returned by UpdateSPICEStates when a frame in the
	// chain lacks its SPICE object or frame name.
	ErrNotConfigured = errors.New("not configured for SPICE")

	// ErrNullParent is returned when attaching to a nil parent.
	ErrNullParent = errors.New("null parent")

	// ErrParentAlreadySet is returned when attaching a frame a second time.
	ErrParentAlreadySet = errors.New("parent already set")

	// ErrParentCycle is returned when attaching a frame below itself.
	ErrParentCycle = errors.New("parent cycle")
)

// Observer is notified after a frame's state has been recomputed.
type Observer interface {
	ReferenceFrameChanged(f *ReferenceFrame)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(f *ReferenceFrame)

func (fn ObserverFunc) ReferenceFrameChanged(f *ReferenceFrame) { fn(f) }

// state is one side (local or global) of a frame's kinematics.
type state struct {
	transform   mgl64.Mat4
	position    mgl64.Vec3
	rotation    rotation.Rotation
	scale       mgl64.Vec3
	velocity    mgl64.Vec3
	angularRate mgl64.Vec3
}

func identityState() state {
	trs := transform.NewTransform()
	return state{
		transform: trs.Matrix(),
		position:  trs.Position,
		rotation:  trs.Rotation,
		scale:     trs.Scale,
	}
}

// ReferenceFrame is a node of the transform tree.
type ReferenceFrame struct {
	name string

	local  state
	global state

	// parent is set at most once.
	parent *ReferenceFrame

	naifName  string
	frameName string
	abcorr    string

	observer Observer
}

// Option configures a frame at construction.
type Option func(f *ReferenceFrame)

// WithName sets the frame's display name.
func WithName(name string) Option {
	return func(f *ReferenceFrame) {
		f.name = name
	}
}

// WithObserver installs the change observer.
func WithObserver(o Observer) Option {
	return func(f *ReferenceFrame) {
		f.observer = o
	}
}

// WithAberrationCorrection sets the correction flag passed to ephemeris
// state queries. The default is ephemeris.NoCorrection.
func WithAberrationCorrection(abcorr string) Option {
	return func(f *ReferenceFrame) {
		f.abcorr = abcorr
	}
}

// New creates a root frame. A root is its own scene.
func New(opts ...Option) *ReferenceFrame {
	f := &ReferenceFrame{
		local:  identityState(),
		global: identityState(),
		abcorr: ephemeris.NoCorrection,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewChild creates a frame attached to parent.
func NewChild(parent *ReferenceFrame, opts ...Option) (*ReferenceFrame, error) {
	f := New(opts...)
	if err := f.SetParent(parent); err != nil {
		return nil, err
	}
	return f, nil
}

// SetParent attaches f below parent and recomputes its global state.
// A frame can be attached once. Its existing children move with it into
// parent's scene.
func (f *ReferenceFrame) SetParent(parent *ReferenceFrame) error {
	if parent == nil {
		return errors.Wrapf(ErrNullParent, "frame %q", f.name)
	}
	if f.parent != nil {
		return errors.Wrapf(ErrParentAlreadySet, "frame %q is attached to %q", f.name, f.parent.name)
	}
	if parent.Scene() == f {
		return errors.Wrapf(ErrParentCycle, "frame %q cannot be attached below itself", f.name)
	}

	global, err := deriveGlobal(parent, f.local)
	if err != nil {
		return errors.Wrapf(err, "attaching frame %q to %q", f.name, parent.name)
	}

	f.parent = parent
	f.global = global
	f.notify()
	return nil
}

func (f *ReferenceFrame) notify() {
	if f.observer != nil {
		f.observer.ReferenceFrameChanged(f)
	}
}

// commit derives global state for local and, on success, stores both.
// On failure the frame is left untouched.
func (f *ReferenceFrame) commit(local state) error {
	global, err := deriveGlobal(f.parent, local)
	if err != nil {
		return errors.Wrapf(err, "frame %q", f.name)
	}
	f.local = local
	f.global = global
	f.notify()
	return nil
}

// Refresh recomputes the global state from the parent's current cache.
func (f *ReferenceFrame) Refresh() error {
	return f.commit(f.local)
}

func checkFinite(what string, v mgl64.Vec3) error {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Wrapf(ErrInvalidValue, "%s %v", what, v)
		}
	}
	return nil
}

func (f *ReferenceFrame) Name() string { return f.name }

// Parent returns the parent frame, or nil for a root.
func (f *ReferenceFrame) Parent() *ReferenceFrame { return f.parent }

// Scene returns the root of the tree f belongs to.
func (f *ReferenceFrame) Scene() *ReferenceFrame {
	root := f
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (f *ReferenceFrame) IsRoot() bool { return f.parent == nil }

func (f *ReferenceFrame) LocalPosition() mgl64.Vec3 { return f.local.position }
func (f *ReferenceFrame) LocalRotation() rotation.Rotation { return f.local.rotation }
func (f *ReferenceFrame) LocalScale() mgl64.Vec3 { return f.local.scale }
func (f *ReferenceFrame) LocalVelocity() mgl64.Vec3 { return f.local.velocity }
func (f *ReferenceFrame) LocalAngularRate() mgl64.Vec3 { return f.local.angularRate }
func (f *ReferenceFrame) LocalTransform() mgl64.Mat4 { return f.local.transform }
func (f *ReferenceFrame) GlobalPosition() mgl64.Vec3 { return f.global.position }
func (f *ReferenceFrame) GlobalRotation() rotation.Rotation { return f.global.rotation }
func (f *ReferenceFrame) GlobalScale() mgl64.Vec3 { return f.global.scale }
func (f *ReferenceFrame) GlobalVelocity() mgl64.Vec3 { return f.global.velocity }
func (f *ReferenceFrame) GlobalAngularRate() mgl64.Vec3 { return f.global.angularRate }
func (f *ReferenceFrame) GlobalTransform() mgl64.Mat4 { return f.global.transform }

// LocalTRS returns the local position, rotation and scale.
func (f *ReferenceFrame) LocalTRS() transform.Transform {
	return transform.Transform{Position: f.local.position, Rotation: f.local.rotation, Scale: f.local.scale}
}

// GlobalTRS returns the decomposed global transform.
func (f *ReferenceFrame) GlobalTRS() transform.Transform {
	return transform.Transform{Position: f.global.position, Rotation: f.global.rotation, Scale: f.global.scale}
}

// ParentTransform returns the parent's cached global transform, or the
// identity for a root.
func (f *ReferenceFrame) ParentTransform() mgl64.Mat4 {
	if f.parent == nil {
		return mgl64.Ident4()
	}
	return f.parent.global.transform
}

// ModelMatrix is the global transform, as consumed by renderers.
func (f *ReferenceFrame) ModelMatrix() mgl64.Mat4 {
	return f.global.transform
}

// ModelMatrixFloat32 casts the model matrix to single precision.
func (f *ReferenceFrame) ModelMatrixFloat32() mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range f.global.transform {
		m[i] = float32(v)
	}
	return m
}

// ModelNormalMatrix maps local surface normals to global ones.
func (f *ReferenceFrame) ModelNormalMatrix() mgl64.Mat3 {
	return transform.NormalMatrix(f.global.transform)
}

// LocalZDir is the frame's z-axis expressed in the parent frame.
func (f *ReferenceFrame) LocalZDir() mgl64.Vec3 {
	return f.local.rotation.Column(2)
}

// GlobalZDir is the frame's z-axis expressed in the scene frame.
func (f *ReferenceFrame) GlobalZDir() mgl64.Vec3 {
	return f.global.rotation.Column(2)
}
