// Package frames holds a tree of reference frames in a Scene addressed by
// stable FrameID handles, and dispatches buffered change events.
package frames

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/akmonengine/frames/config"
	"github.com/akmonengine/frames/ephemeris"
	"github.com/akmonengine/frames/frame"
	"github.com/akmonengine/frames/transform"
)

const DEFAULT_WORKERS = 1

// FrameID is a stable handle to a frame of a Scene.
type FrameID int

const (
	// RootID is the handle of the scene root.
	RootID FrameID = 0
	// NoFrame is the parent of the root.
	NoFrame FrameID = -1
)

var (
	// ErrUnknownFrame is returned for a handle the scene never issued.
	ErrUnknownFrame = errors.New("unknown frame")

	// ErrDuplicateName is returned when a frame name is already taken.
	ErrDuplicateName = errors.New("duplicate frame name")
)

type node struct {
	frame    *frame.ReferenceFrame
	parent   FrameID
	children []FrameID
}

// Scene owns every frame of one tree. The parent of a frame is fixed when it
// is created, so nodes are stored in topological order.
type Scene struct {
	nodes []node
	ids   map[*frame.ReferenceFrame]FrameID
	names map[string]FrameID

	name        string
	spiceObject string
	spiceFrame  string
	abcorr      string

	// Workers used by batch conversions when the caller passes 0
	Workers int
	Events  Events

	logger *zap.Logger
	dirty  bool
}

type Option func(s *Scene)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Scene) {
		s.logger = logger
	}
}

// WithName names the root frame. The default is "scene".
func WithName(name string) Option {
	return func(s *Scene) {
		s.name = name
	}
}

// WithSPICE configures the root as the SPICE object and frame every other
// frame is measured against.
func WithSPICE(object, frameName string) Option {
	return func(s *Scene) {
		s.spiceObject = object
		s.spiceFrame = frameName
	}
}

func WithWorkers(workers int) Option {
	return func(s *Scene) {
		s.Workers = workers
	}
}

// WithConfig applies a scene configuration section.
func WithConfig(cfg config.SceneConfig) Option {
	return func(s *Scene) {
		if cfg.Name != "" {
			s.name = cfg.Name
		}
		if cfg.AberrationCorrection != "" {
			s.abcorr = cfg.AberrationCorrection
		}
		if cfg.SPICEObject != "" {
			s.spiceObject = cfg.SPICEObject
		}
		if cfg.SPICEFrame != "" {
			s.spiceFrame = cfg.SPICEFrame
		}
	}
}

// NewScene creates a scene holding only its root frame.
func NewScene(opts ...Option) (*Scene, error) {
	s := &Scene{
		ids:     make(map[*frame.ReferenceFrame]FrameID),
		names:   make(map[string]FrameID),
		name:    "scene",
		abcorr:  ephemeris.NoCorrection,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	root := frame.New(frame.WithName(s.name), frame.WithObserver(s), frame.WithAberrationCorrection(s.abcorr))
	if s.spiceObject != "" || s.spiceFrame != "" {
		if err := root.ConfigureSPICE(s.spiceObject, s.spiceFrame); err != nil {
			return nil, errors.Wrapf(err, "scene %q", s.name)
		}
	}
	s.add(root, NoFrame)

	s.logger.Debug("scene created",
		zap.String("name", s.name),
		zap.String("spice_object", s.spiceObject),
		zap.String("spice_frame", s.spiceFrame))
	return s, nil
}

func (s *Scene) add(f *frame.ReferenceFrame, parent FrameID) FrameID {
	id := FrameID(len(s.nodes))
	s.nodes = append(s.nodes, node{frame: f, parent: parent})
	s.ids[f] = id
	s.names[f.Name()] = id
	if parent != NoFrame {
		s.nodes[parent].children = append(s.nodes[parent].children, id)
	}
	return id
}

func (s *Scene) node(id FrameID) (*node, error) {
	if id < 0 || int(id) >= len(s.nodes) {
		return nil, errors.Wrapf(ErrUnknownFrame, "id %d", id)
	}
	return &s.nodes[id], nil
}

// NewFrame creates a frame named name below parent. Extra options are applied
// after the scene's defaults; the scene always remains the frame's observer.
func (s *Scene) NewFrame(parent FrameID, name string, opts ...frame.Option) (FrameID, error) {
	p, err := s.node(parent)
	if err != nil {
		return NoFrame, errors.Wrapf(err, "parent of %q", name)
	}
	parentFrame := p.frame
	if _, taken := s.names[name]; taken {
		return NoFrame, errors.WithHint(
			errors.Wrapf(ErrDuplicateName, "%q", name),
			"frame names are used by Lookup and must be unique within a scene",
		)
	}

	// The scene owns the name and the observer; caller options cannot replace them.
	options := append([]frame.Option{frame.WithAberrationCorrection(s.abcorr)}, opts...)
	options = append(options, frame.WithName(name), frame.WithObserver(s))
	f := frame.New(options...)

	// Register first so the attach notification resolves to the new handle.
	id := FrameID(len(s.nodes))
	s.ids[f] = id
	if err := f.SetParent(parentFrame); err != nil {
		delete(s.ids, f)
		return NoFrame, err
	}
	s.add(f, parent)

	s.Events.emit(FrameAttachedEvent{ID: id, Parent: parent})
	s.logger.Debug("frame attached",
		zap.String("frame", name),
		zap.String("parent", parentFrame.Name()),
		zap.Int("id", int(id)))
	return id, nil
}

// ReferenceFrameChanged implements frame.Observer.
func (s *Scene) ReferenceFrameChanged(f *frame.ReferenceFrame) {
	id, ok := s.ids[f]
	if !ok {
		return
	}
	s.dirty = true
	s.Events.emitChanged(id, f.Name())
	s.logger.Debug("frame changed", zap.String("frame", f.Name()), zap.Int("id", int(id)))
}

func (s *Scene) Root() FrameID { return RootID }

// Len returns the number of frames, root included.
func (s *Scene) Len() int { return len(s.nodes) }

func (s *Scene) Frame(id FrameID) (*frame.ReferenceFrame, error) {
	n, err := s.node(id)
	if err != nil {
		return nil, err
	}
	return n.frame, nil
}

// Parent returns the parent handle, NoFrame for the root.
func (s *Scene) Parent(id FrameID) (FrameID, error) {
	n, err := s.node(id)
	if err != nil {
		return NoFrame, err
	}
	return n.parent, nil
}

// Children returns the direct children of id in creation order.
func (s *Scene) Children(id FrameID) ([]FrameID, error) {
	n, err := s.node(id)
	if err != nil {
		return nil, err
	}
	return append([]FrameID(nil), n.children...), nil
}

func (s *Scene) Lookup(name string) (FrameID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Dirty reports whether any frame changed since the last ClearDirty.
func (s *Scene) Dirty() bool { return s.dirty }

func (s *Scene) ClearDirty() { s.dirty = false }

// Subscribe adds a listener for an event type
func (s *Scene) Subscribe(eventType EventType, listener EventListener) {
	s.Events.Subscribe(eventType, listener)
}

// Flush dispatches every buffered event.
func (s *Scene) Flush() {
	s.Events.flush()
}

// RefreshAll recomputes every frame's global state from its parent, top-down.
func (s *Scene) RefreshAll() error {
	for id := 1; id < len(s.nodes); id++ {
		f := s.nodes[id].frame
		if err := f.Refresh(); err != nil {
			s.logger.Error("refresh failed", zap.String("frame", f.Name()), zap.Error(err))
			return errors.Wrapf(err, "refreshing frame %q", f.Name())
		}
	}
	return nil
}

// UpdateSPICE pulls every configured non-root frame from eph at et, top-down.
// Frames without a SPICE object are skipped. The first failure stops the walk.
func (s *Scene) UpdateSPICE(eph ephemeris.Ephemeris, et float64) error {
	updated := 0
	for id := 1; id < len(s.nodes); id++ {
		f := s.nodes[id].frame
		if !f.IsConfiguredSPICEObject() {
			s.logger.Warn("skipping frame without SPICE object", zap.String("frame", f.Name()))
			continue
		}
		if err := f.UpdateSPICEStates(eph, et); err != nil {
			s.logger.Error("SPICE update failed",
				zap.String("frame", f.Name()),
				zap.Float64("et", et),
				zap.Error(err))
			return errors.Wrapf(err, "updating frame %q", f.Name())
		}
		s.Events.emit(SPICEUpdatedEvent{ID: FrameID(id), ET: et})
		updated++
	}

	s.logger.Debug("SPICE update done", zap.Float64("et", et), zap.Int("frames", updated))
	return nil
}

func (s *Scene) workers(workers int) int {
	if workers <= 0 {
		workers = s.Workers
	}
	return max(DEFAULT_WORKERS, workers)
}

// LocalToGlobalPoints maps points of frame id into the scene frame using the
// given number of workers, or the scene's Workers when 0.
func (s *Scene) LocalToGlobalPoints(id FrameID, points []mgl64.Vec3, workers int) ([]mgl64.Vec3, error) {
	f, err := s.Frame(id)
	if err != nil {
		return nil, err
	}
	out := make([]mgl64.Vec3, len(points))
	task(s.workers(workers), points, func(i int, p mgl64.Vec3) {
		out[i] = f.LocalToGlobal(p)
	})
	return out, nil
}

// GlobalToLocalPoints maps scene-frame points into frame id.
func (s *Scene) GlobalToLocalPoints(id FrameID, points []mgl64.Vec3, workers int) ([]mgl64.Vec3, error) {
	f, err := s.Frame(id)
	if err != nil {
		return nil, err
	}
	inverse := f.GlobalTransform().Inv()
	out := make([]mgl64.Vec3, len(points))
	task(s.workers(workers), points, func(i int, p mgl64.Vec3) {
		out[i] = transform.TransformPoint(inverse, p)
	})
	return out, nil
}
