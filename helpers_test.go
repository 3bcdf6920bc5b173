package arbuild

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const testDT = float32(1.0 / 60)

// nearVec compares by distance. mgl64's ApproxEqualThreshold switches to a
// far tighter bound when a component is exactly zero.
func nearVec(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}

// nearQuat compares orientations; q and -q are the same rotation.
func nearQuat(a, b mgl64.Quat, tol float64) bool {
	return math.Min(a.Sub(b).Len(), a.Add(b).Len()) < tol
}

// fixture is a Builder looking straight down at a 10m floor from 5m up.
// Screen +X is world +X and screen +Y is world +Z; the floor origin is at
// the viewport center (400, 300).
type fixture struct {
	cam     *Camera
	tracker *PlaneTracker
	anchors *LocalAnchorService
	floor   uuid.UUID
	b       *Builder
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Debug = true
	return cfg
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	return newFixtureWith(t, cfg, Collaborators{Logger: zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))})
}

func newFixtureWith(t *testing.T, cfg Config, c Collaborators) *fixture {
	t.Helper()
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.LookAt(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -1})

	tracker := NewPlaneTracker(cam)
	floor := tracker.AddPlane(Plane{Pose: PoseAt(mgl64.Vec3{}), HalfExtents: mgl64.Vec2{5, 5}})
	anchors := NewLocalAnchorService()

	c.Tracker = tracker
	c.Anchors = anchors
	c.Camera = cam
	b, err := NewBuilder(cfg, c)
	require.NoError(t, err)
	b.Surfaces().Bind(floor)

	return &fixture{cam: cam, tracker: tracker, anchors: anchors, floor: floor, b: b}
}

// screen projects a world point to the screen.
func (f *fixture) screen(t *testing.T, p mgl64.Vec3) Vec2 {
	t.Helper()
	s, ok := f.cam.WorldToScreen(p)
	require.True(t, ok, "point %v behind camera", p)
	return s
}

// run drains the inject queue, one event per frame.
func (f *fixture) run() {
	for f.b.PendingInjected() > 0 {
		f.b.Update(testDT)
	}
}

// place taps the floor at world point p in create mode and returns the new
// object.
func (f *fixture) place(t *testing.T, p mgl64.Vec3) *PlacedObject {
	t.Helper()
	require.NoError(t, f.b.SetMode(ModeCreate))
	f.b.InjectTap(f.screen(t, p))
	f.run()
	obj := f.b.Selected()
	require.NotNil(t, obj)
	return obj
}

// bodyPoint returns the screen point over the center of obj's cube body.
func (f *fixture) bodyPoint(t *testing.T, obj *PlacedObject) Vec2 {
	t.Helper()
	return f.screen(t, obj.WorldPosition().Add(mgl64.Vec3{0, 0.1, 0}))
}

// gizmoPoint returns the screen point over the center of obj's gizmo.
func (f *fixture) gizmoPoint(t *testing.T, obj *PlacedObject) Vec2 {
	t.Helper()
	c := obj.Colliders.Gizmo.(SphereCollider).Center
	return f.screen(t, mgl64.TransformCoordinate(c, obj.WorldMatrix()))
}

// recorder collects every event a Builder emits.
type recorder struct {
	events []Event
}

func (r *recorder) EmitEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
