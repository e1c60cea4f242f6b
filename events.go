package frames

const (
	FRAME_CHANGED EventType = iota
	FRAME_ATTACHED
	SPICE_UPDATED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// FrameChangedEvent is sent once per flush for every frame whose state was
// recomputed since the previous flush.
type FrameChangedEvent struct {
	ID   FrameID
	Name string
}

func (e FrameChangedEvent) Type() EventType { return FRAME_CHANGED }

type FrameAttachedEvent struct {
	ID     FrameID
	Parent FrameID
}

func (e FrameAttachedEvent) Type() EventType { return FRAME_ATTACHED }

// SPICEUpdatedEvent is sent for every frame refreshed by Scene.UpdateSPICE.
type SPICEUpdatedEvent struct {
	ID FrameID
	ET float64
}

func (e SPICEUpdatedEvent) Type() EventType { return SPICE_UPDATED }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Frames already holding a pending FrameChangedEvent
	changed map[FrameID]bool
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
		changed:   make(map[FrameID]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// emitChanged buffers a change event, coalescing repeated changes of a frame
func (e *Events) emitChanged(id FrameID, name string) {
	if e.changed[id] {
		return
	}
	e.changed[id] = true
	e.buffer = append(e.buffer, FrameChangedEvent{ID: id, Name: name})
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// pending returns the number of buffered events
func (e *Events) pending() int {
	return len(e.buffer)
}

// flush sends all buffered events and clears the buffer.
// Listeners may change frames; the resulting events wait for the next flush.
func (e *Events) flush() {
	buffer := e.buffer
	e.buffer = make([]Event, 0, cap(buffer))
	clear(e.changed)

	for _, event := range buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
}
