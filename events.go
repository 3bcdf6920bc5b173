package arbuild

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EventSink is the interface for optional ECS integration. When set on a
// Builder, every manipulation event is forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event describes one completed manipulation step.
type Event struct {
	Type     EventType
	Mode     Mode
	ObjectID uuid.UUID
	AnchorID uuid.UUID
	// PreviousAnchorID is the destroyed anchor (EventMove only).
	PreviousAnchorID uuid.UUID
	// Position and Rotation are the object's world pose after the step.
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// On registers a callback for one event type.
func (b *Builder) On(event EventType, fn func(Event)) CallbackHandle {
	if event >= eventTypeCount {
		return CallbackHandle{}
	}
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.byType[event] = append(b.handlers.byType[event], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: event}
}

// SetEventSink sets the optional ECS bridge.
func (b *Builder) SetEventSink(sink EventSink) {
	b.sink = sink
}

// emit fills in the object's current state and dispatches to callbacks and
// the sink.
func (b *Builder) emit(t EventType, obj *PlacedObject, previous uuid.UUID) {
	ev := Event{Type: t, Mode: b.mode, PreviousAnchorID: previous}
	if obj != nil {
		ev.ObjectID = obj.ID
		if obj.anchor != nil {
			ev.AnchorID = obj.anchor.ID
		}
		ev.Position = obj.WorldPosition()
		ev.Rotation = obj.WorldRotation()
		ev.Scale = obj.Transform.Scale
	}
	for _, h := range b.handlers.byType[t] {
		h.fn(ev)
	}
	if b.sink != nil {
		b.sink.EmitEvent(ev)
	}
}
