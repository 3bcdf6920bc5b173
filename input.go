package arbuild

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TouchEvent is a raw event from the platform input source.
type TouchEvent struct {
	Kind  TouchKind
	Slot  Slot
	Point Vec2
}

// InputEvent is a demuxed event consumed by the Builder.
type InputEvent struct {
	Kind  InputKind
	Point Vec2
	// Primary and Secondary are the latest known positions of each finger.
	Primary   Vec2
	Secondary Vec2
	// Touches is the touch count after this event was applied.
	Touches int
}

// UIQuery reports whether a screen point lies over an on-screen UI surface.
type UIQuery interface {
	IsPointOverUI(p Vec2) bool
}

// UIQueryFunc adapts an ordinary function to UIQuery.
type UIQueryFunc func(p Vec2) bool

// IsPointOverUI implements UIQuery.
func (f UIQueryFunc) IsPointOverUI(p Vec2) bool {
	return f(p)
}

// --- Demuxer ---

// Demuxer normalizes raw touch events into typed input events, filtering
// points over UI and keeping the touch counter. Events are queued until the
// Builder drains them.
type Demuxer struct {
	ui      UIQuery
	touches int
	last    [slotCount]Vec2
	queue   []InputEvent
}

// NewDemuxer creates a demuxer. ui may be nil.
func NewDemuxer(ui UIQuery) *Demuxer {
	return &Demuxer{ui: ui}
}

// Touches returns the number of counted fingers down.
func (d *Demuxer) Touches() int {
	return d.touches
}

// Pending returns the number of queued events.
func (d *Demuxer) Pending() int {
	return len(d.queue)
}

func (d *Demuxer) overUI(p Vec2) bool {
	return d.ui != nil && d.ui.IsPointOverUI(p)
}

// Push classifies ev and queues the resulting input event, if any.
// Press-ended is never suppressed so the counter cannot drift upward.
func (d *Demuxer) Push(ev TouchEvent) {
	if ev.Slot >= slotCount {
		return
	}
	var kind InputKind
	switch ev.Kind {
	case TouchPressStarted:
		if d.overUI(ev.Point) {
			return
		}
		d.touches++
		kind = InputPressStarted
	case TouchPressEnded:
		if d.touches > 0 {
			d.touches--
		}
		kind = InputPressEnded
	case TouchPosition:
		if d.overUI(ev.Point) {
			return
		}
		kind = InputPrimaryMoved
		if ev.Slot == SlotSecondary {
			kind = InputSecondaryMoved
		}
	default:
		return
	}
	if ev.Kind != TouchPressEnded {
		d.last[ev.Slot] = ev.Point
	}
	d.queue = append(d.queue, InputEvent{
		Kind:      kind,
		Point:     ev.Point,
		Primary:   d.last[SlotPrimary],
		Secondary: d.last[SlotSecondary],
		Touches:   d.touches,
	})
}

// Drain appends all queued events to buf in arrival order and empties the
// queue.
func (d *Demuxer) Drain(buf []InputEvent) []InputEvent {
	buf = append(buf, d.queue...)
	clear(d.queue)
	d.queue = d.queue[:0]
	return buf
}

// --- Ebiten input source ---

// InputSource feeds raw touch events into a Demuxer once per frame.
type InputSource interface {
	Poll(d *Demuxer)
}

// touchSample is one active contact observed during a poll.
type touchSample struct {
	id    ebiten.TouchID
	point Vec2
}

// mouseTouchID is the pseudo touch ID used for the left mouse button.
const mouseTouchID ebiten.TouchID = -1

// EbitenTouchSource reads touches from ebiten. The first finger down becomes
// the primary slot and the second the secondary; further fingers are ignored
// until a slot frees up. When Mouse is set the left mouse button drives the
// primary slot as well, for desktop use.
type EbitenTouchSource struct {
	Mouse bool

	slots   [slotCount]ebiten.TouchID
	used    [slotCount]bool
	last    [slotCount]Vec2
	idBuf   []ebiten.TouchID
	samples []touchSample
}

// NewEbitenTouchSource creates a source with mouse emulation enabled.
func NewEbitenTouchSource() *EbitenTouchSource {
	return &EbitenTouchSource{Mouse: true}
}

// Poll implements InputSource. Call it from ebiten.Game.Update.
func (s *EbitenTouchSource) Poll(d *Demuxer) {
	s.idBuf = ebiten.AppendTouchIDs(s.idBuf[:0])
	s.samples = s.samples[:0]
	for _, id := range s.idBuf {
		x, y := ebiten.TouchPosition(id)
		s.samples = append(s.samples, touchSample{id: id, point: Vec2{float64(x), float64(y)}})
	}
	if s.Mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.samples = append(s.samples, touchSample{id: mouseTouchID, point: Vec2{float64(x), float64(y)}})
	}
	s.diff(s.samples, d)
}

// diff compares this frame's contacts with the slot table and pushes the
// press, position and release events that explain the change.
func (s *EbitenTouchSource) diff(samples []touchSample, d *Demuxer) {
	// Releases first so a freed slot can be reused this frame.
	for slot := range s.used {
		if !s.used[slot] {
			continue
		}
		if !containsTouch(samples, s.slots[slot]) {
			s.used[slot] = false
			d.Push(TouchEvent{Kind: TouchPressEnded, Slot: Slot(slot), Point: s.last[slot]})
		}
	}
	for _, sm := range samples {
		slot := s.slotFor(sm.id)
		if slot < 0 {
			slot = s.allocate(sm.id)
			if slot < 0 {
				continue
			}
			s.last[slot] = sm.point
			d.Push(TouchEvent{Kind: TouchPressStarted, Slot: Slot(slot), Point: sm.point})
			d.Push(TouchEvent{Kind: TouchPosition, Slot: Slot(slot), Point: sm.point})
			continue
		}
		if sm.point != s.last[slot] {
			s.last[slot] = sm.point
			d.Push(TouchEvent{Kind: TouchPosition, Slot: Slot(slot), Point: sm.point})
		}
	}
}

// slotFor returns the slot holding id, or -1.
func (s *EbitenTouchSource) slotFor(id ebiten.TouchID) int {
	for i := range s.slots {
		if s.used[i] && s.slots[i] == id {
			return i
		}
	}
	return -1
}

// allocate assigns id to the lowest free slot, or returns -1 if full.
func (s *EbitenTouchSource) allocate(id ebiten.TouchID) int {
	for i := range s.slots {
		if !s.used[i] {
			s.used[i] = true
			s.slots[i] = id
			return i
		}
	}
	return -1
}

func containsTouch(samples []touchSample, id ebiten.TouchID) bool {
	for _, sm := range samples {
		if sm.id == id {
			return true
		}
	}
	return false
}
