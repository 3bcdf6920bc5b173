package arbuild

import "github.com/go-gl/mathgl/mgl64"

// gesture is the payload of the gesture engaged by the current touch
// sequence. Exactly one variant is active at a time; nil means idle.
type gesture interface {
	kind() GestureKind
}

// moveGesture re-anchors the selected object under a single finger.
type moveGesture struct{}

// rotateGesture spins the selected object around its anchor. hasDir is false
// until a surface hit has produced a reference direction.
type rotateGesture struct {
	lastDir mgl64.Vec3
	hasDir  bool
}

// pendingScaleGesture waits for the first dual-position event to decide
// whether the pinch started on the selected object.
type pendingScaleGesture struct{}

// scaleGesture tracks the two-finger separation from the previous event.
type scaleGesture struct {
	baseline float64
}

// spentGesture blocks every gesture until all fingers lift.
type spentGesture struct{}

func (moveGesture) kind() GestureKind         { return GestureMove }
func (rotateGesture) kind() GestureKind       { return GestureRotate }
func (pendingScaleGesture) kind() GestureKind { return GesturePendingScale }
func (scaleGesture) kind() GestureKind        { return GestureScale }
func (spentGesture) kind() GestureKind        { return GestureSpent }

// GestureSession is the transient state of one interaction, from the first
// finger down until the last finger up.
type GestureSession struct {
	touches int
	active  gesture
	// ignoring drops position events until the next press-ended.
	ignoring bool
}

// Touches returns the touch count the session last observed.
func (s *GestureSession) Touches() int {
	return s.touches
}

// Kind reports the engaged gesture.
func (s *GestureSession) Kind() GestureKind {
	if s.active == nil {
		return GestureIdle
	}
	return s.active.kind()
}

// reset returns the session to idle.
func (s *GestureSession) reset() {
	s.active = nil
}
