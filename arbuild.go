package arbuild

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a screen-space point in pixels. The origin is the top-left corner
// of the viewport with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Pose is a position plus orientation in world space.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// PoseAt returns a pose at position with identity rotation.
func PoseAt(position mgl64.Vec3) Pose {
	return Pose{Position: position, Rotation: mgl64.QuatIdent()}
}

// Mat4 returns the pose as a rigid transform matrix.
func (p Pose) Mat4() mgl64.Mat4 {
	t := mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	return t.Mul4(p.Rotation.Normalize().Mat4())
}

// Mode is the top-level manipulation mode of a Builder.
type Mode uint8

const (
	ModeSelect     Mode = iota // tap an object's body to select it
	ModeCreate                 // tap the bound surface to place a new object
	ModeManipulate             // move, rotate or scale the selected object
	modeCount
)

var modeNames = [modeCount]string{"select", "create", "manipulate"}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m >= modeCount {
		return nil, fmt.Errorf("arbuild: invalid mode %d", m)
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Used by config files
// and environment overrides.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if string(text) == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("arbuild: unknown mode %q", text)
}

// Slot identifies which finger a touch event belongs to.
type Slot uint8

const (
	SlotPrimary   Slot = iota // first finger down
	SlotSecondary             // second finger down
	slotCount
)

// TouchKind is the kind of a raw platform touch event.
type TouchKind uint8

const (
	TouchPressStarted TouchKind = iota // finger made contact
	TouchPressEnded                    // finger lifted or the touch was cancelled
	TouchPosition                      // finger position changed
)

// InputKind is the kind of a demuxed input event delivered to the Builder.
type InputKind uint8

const (
	InputPressStarted   InputKind = iota // a counted press began
	InputPressEnded                      // a press ended (never suppressed)
	InputPrimaryMoved                    // primary finger position
	InputSecondaryMoved                  // secondary finger position
	inputKindCount
)

// HitRegion classifies which collider of a placed object a ray struck.
type HitRegion uint8

const (
	RegionNone  HitRegion = iota // nothing was hit
	RegionBody                   // the object's primary collider
	RegionGizmo                  // the object's rotation handle
)

func (r HitRegion) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionGizmo:
		return "gizmo"
	default:
		return "none"
	}
}

// EventType identifies a manipulation event emitted by the Builder.
type EventType uint8

const (
	EventCreate   EventType = iota // a new object was placed and selected
	EventSelect                    // an existing object was selected
	EventDeselect                  // the selection was cleared
	EventMove                      // the selected object was re-anchored
	EventRotate                    // the selected object was rotated
	EventScale                     // the selected object was scaled
	eventTypeCount
)

var eventNames = [eventTypeCount]string{"create", "select", "deselect", "move", "rotate", "scale"}

func (e EventType) String() string {
	if e < eventTypeCount {
		return eventNames[e]
	}
	return fmt.Sprintf("EventType(%d)", e)
}

// GestureKind reports which gesture, if any, the current touch sequence
// has engaged.
type GestureKind uint8

const (
	GestureIdle         GestureKind = iota // no gesture engaged
	GestureMove                            // single-finger drag re-anchoring the object
	GestureRotate                          // single-finger drag on the gizmo
	GesturePendingScale                    // two fingers down, not yet evaluated
	GestureScale                           // two-finger pinch scaling the object
	GestureSpent                           // nothing may engage until all fingers lift
)

func (g GestureKind) String() string {
	switch g {
	case GestureMove:
		return "move"
	case GestureRotate:
		return "rotate"
	case GesturePendingScale:
		return "pending-scale"
	case GestureScale:
		return "scale"
	case GestureSpent:
		return "spent"
	default:
		return "idle"
	}
}
