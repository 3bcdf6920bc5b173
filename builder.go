package arbuild

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoSelection is returned by SetMode(ModeManipulate) when nothing is
// selected.
var ErrNoSelection = errors.New("arbuild: no object selected")

// Collaborators are the external services a Builder drives. Tracker and
// Anchors are required; everything else has a default.
type Collaborators struct {
	// Tracker is the surface tracking service raycasts go through.
	Tracker SurfaceTracker
	// Anchors is the AR runtime's anchor subsystem.
	Anchors AnchorService
	// Camera converts screen points to rays for the default ObjectHitTester.
	// Required unless Picker is set.
	Camera *Camera
	// Picker overrides the default camera-based hit tester.
	Picker ObjectPicker
	// Spawner defaults to NewPrefabSpawner().
	Spawner Spawner
	// UI suppresses touches over presentation-layer surfaces. May be nil.
	UI UIQuery
	// Source is polled once per Update when no injected input is queued.
	Source InputSource
	// Logger defaults to zap.NewNop().
	Logger *zap.Logger
}

// action handles one demuxed input event in one mode.
type action func(b *Builder, ev InputEvent)

// transitions is the (mode, input) dispatch table. A nil entry is a no-op.
var transitions = [modeCount][inputKindCount]action{
	ModeSelect: {
		InputPressStarted: (*Builder).pressStarted,
		InputPressEnded:   (*Builder).pressEnded,
		InputPrimaryMoved: (*Builder).pick,
	},
	ModeCreate: {
		InputPressStarted: (*Builder).pressStarted,
		InputPressEnded:   (*Builder).pressEnded,
		InputPrimaryMoved: (*Builder).create,
	},
	ModeManipulate: {
		InputPressStarted:   (*Builder).pressStarted,
		InputPressEnded:     (*Builder).pressEnded,
		InputPrimaryMoved:   (*Builder).manipulate,
		InputSecondaryMoved: (*Builder).manipulate,
	},
}

// Builder is the manipulation state machine. It owns the placed objects, the
// selection and the gesture session, and is driven by calling Update once
// per frame. A Builder is not safe for concurrent use.
type Builder struct {
	cfg      Config
	log      *zap.Logger
	input    *Demuxer
	source   InputSource
	surfaces *SurfaceRaycaster
	picker   ObjectPicker
	anchors  *AnchorAdapter
	spawner  Spawner

	mode     Mode
	selected *PlacedObject
	objects  []*PlacedObject
	session  GestureSession

	handlers handlerRegistry
	sink     EventSink

	injectQueue []TouchEvent
	runner      *ScriptRunner
	eventBuf    []InputEvent
}

// NewBuilder validates cfg and wires the collaborators.
func NewBuilder(cfg Config, c Collaborators) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c.Tracker == nil {
		return nil, errors.New("arbuild: surface tracker is required")
	}
	if c.Anchors == nil {
		return nil, errors.New("arbuild: anchor service is required")
	}
	if c.Picker == nil && c.Camera == nil {
		return nil, errors.New("arbuild: camera is required without a custom picker")
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{
		cfg:      cfg,
		log:      log,
		input:    NewDemuxer(c.UI),
		source:   c.Source,
		surfaces: NewSurfaceRaycaster(c.Tracker),
		picker:   c.Picker,
		spawner:  c.Spawner,
		mode:     cfg.InitialMode,
	}
	b.anchors = NewAnchorAdapter(c.Anchors, b.surfaces.Bound, log)
	if b.picker == nil {
		b.picker = NewObjectHitTester(c.Camera, b.Objects)
	}
	if b.spawner == nil {
		b.spawner = NewPrefabSpawner()
	}
	return b, nil
}

// Mode returns the current mode.
func (b *Builder) Mode() Mode {
	return b.mode
}

// Selected returns the selected object, or nil.
func (b *Builder) Selected() *PlacedObject {
	return b.selected
}

// Objects returns every placed object. The returned slice MUST NOT be mutated.
func (b *Builder) Objects() []*PlacedObject {
	return b.objects
}

// Gesture reports the gesture engaged by the current touch sequence.
func (b *Builder) Gesture() GestureKind {
	return b.session.Kind()
}

// Input returns the demuxer, for pushing raw touch events directly.
func (b *Builder) Input() *Demuxer {
	return b.input
}

// Surfaces returns the surface raycaster, for binding the target surface.
func (b *Builder) Surfaces() *SurfaceRaycaster {
	return b.surfaces
}

// Anchors returns the anchor adapter.
func (b *Builder) Anchors() *AnchorAdapter {
	return b.anchors
}

// SetMode switches between Select and Create on behalf of the app state
// controller, clearing any selection. Switching to Manipulate is only valid
// while an object is selected.
func (b *Builder) SetMode(m Mode) error {
	switch m {
	case ModeSelect, ModeCreate:
		b.deselect()
		b.session.reset()
		b.mode = m
	case ModeManipulate:
		if b.selected == nil {
			return ErrNoSelection
		}
		b.mode = m
	default:
		return fmt.Errorf("arbuild: invalid mode %d", m)
	}
	b.log.Debug("mode set", zap.Stringer("mode", b.mode))
	return nil
}

// IgnoreCurrentTouch drops position events until the next press ends, so the
// tap that switched into building does not also place or select something.
func (b *Builder) IgnoreCurrentTouch() {
	b.session.ignoring = true
}

// Update runs one frame: advances any script, feeds one injected event or
// polls the input source, dispatches every demuxed event, then advances
// gizmo fades by dt seconds.
func (b *Builder) Update(dt float32) {
	var stats frameStats
	var t0 time.Time
	if b.cfg.Debug {
		t0 = time.Now()
		stats.anchorsCreated, stats.anchorsDestroyed = b.anchors.created, b.anchors.destroyed
	}

	if b.runner != nil {
		b.runner.step(b)
	}
	if !b.processInjectedInput() && b.source != nil {
		b.source.Poll(b.input)
	}

	b.eventBuf = b.input.Drain(b.eventBuf[:0])
	for _, ev := range b.eventBuf {
		b.dispatch(ev)
	}

	for _, obj := range b.objects {
		obj.gizmo.update(dt)
	}

	if b.cfg.Debug {
		stats.events = len(b.eventBuf)
		stats.anchorsCreated = b.anchors.created - stats.anchorsCreated
		stats.anchorsDestroyed = b.anchors.destroyed - stats.anchorsDestroyed
		stats.elapsed = time.Since(t0)
		b.debugLog(stats)
		b.debugCheckAnchors()
	}
}

// dispatch routes ev through the transition table.
func (b *Builder) dispatch(ev InputEvent) {
	if b.session.ignoring && ev.Kind != InputPressEnded {
		return
	}
	if fn := transitions[b.mode][ev.Kind]; fn != nil {
		fn(b, ev)
	}
}

// --- Touch bookkeeping ---

func (b *Builder) pressStarted(ev InputEvent) {
	b.session.touches = ev.Touches
	if ev.Touches < 2 {
		return
	}
	// A second finger ends any single-finger gesture. Scale can only start
	// from a selection made before this touch sequence went two-finger.
	switch b.session.active.(type) {
	case scaleGesture, spentGesture:
		return
	}
	if b.mode == ModeManipulate && b.selected != nil {
		b.session.active = pendingScaleGesture{}
	} else {
		b.session.active = spentGesture{}
	}
}

func (b *Builder) pressEnded(ev InputEvent) {
	b.session.touches = ev.Touches
	if ev.Touches == 0 {
		b.session.reset()
		b.session.ignoring = false
		return
	}
	// The pinch baseline belongs to the pair that just broke up. A finger
	// landing again is evaluated afresh.
	if ev.Touches < 2 {
		switch b.session.active.(type) {
		case scaleGesture, pendingScaleGesture:
			b.session.active = pendingScaleGesture{}
		}
	}
}

// --- Create / Select ---

// create places a new object where a single finger meets the bound surface.
func (b *Builder) create(ev InputEvent) {
	if ev.Touches != 1 {
		return
	}
	pose, ok := b.surfaces.Raycast(ev.Point)
	if !ok {
		b.log.Debug("create: no surface hit", zap.Float64("x", ev.Point.X), zap.Float64("y", ev.Point.Y))
		return
	}
	anchor, err := b.anchors.Create(pose)
	if err != nil {
		b.log.Warn("create: anchor failed", zap.Error(err))
		return
	}
	obj, err := b.spawner.Spawn(b.cfg.Prefab, anchor)
	if err != nil {
		b.log.Warn("create: spawn failed", zap.String("prefab", b.cfg.Prefab), zap.Error(err))
		// A Spawner may have attached before failing.
		detachAll(anchor)
		b.anchors.Destroy(anchor)
		return
	}
	if obj.anchor != anchor {
		obj.attach(anchor)
	}
	b.objects = append(b.objects, obj)
	b.selectObject(obj)
	b.mode = ModeManipulate
	b.log.Debug("object created", zap.Stringer("object", obj.ID), zap.Stringer("anchor", anchor.ID))
	b.emit(EventCreate, obj, uuid.Nil)
}

// pick selects the object whose body lies under a single finger.
func (b *Builder) pick(ev InputEvent) {
	if ev.Touches != 1 {
		return
	}
	hit, ok := b.picker.HitTest(ev.Point)
	if !ok || hit.Region != RegionBody {
		return
	}
	b.selectObject(hit.Object)
	b.mode = ModeManipulate
	b.log.Debug("object selected", zap.Stringer("object", hit.Object.ID))
	b.emit(EventSelect, hit.Object, uuid.Nil)
}

func (b *Builder) selectObject(obj *PlacedObject) {
	if b.selected == obj {
		return
	}
	b.deselect()
	b.selected = obj
	obj.setSelected(true, b.cfg.GizmoFadeSeconds)
}

// deselect clears the selection without emitting.
func (b *Builder) deselect() bool {
	if b.selected == nil {
		return false
	}
	b.selected.setSelected(false, b.cfg.GizmoFadeSeconds)
	b.selected = nil
	return true
}

// --- Manipulate ---

// manipulate routes position events by finger count: one finger for move
// and rotate, two for scale.
func (b *Builder) manipulate(ev InputEvent) {
	if b.selected == nil {
		b.mode = ModeSelect
		return
	}
	switch ev.Touches {
	case 1:
		if ev.Kind == InputPrimaryMoved {
			b.drag(ev.Point)
		}
	case 2:
		b.pinch(ev.Primary, ev.Secondary)
	}
}

// drag engages or continues a single-finger gesture.
func (b *Builder) drag(p Vec2) {
	switch g := b.session.active.(type) {
	case nil:
		b.engage(p)
	case moveGesture:
		b.move(p)
	case rotateGesture:
		b.rotate(g, p)
	}
}

// engage classifies the first single-finger position of a touch sequence.
// A touch on neither the body nor the gizmo of the selection deselects.
func (b *Builder) engage(p Vec2) {
	hit, ok := b.picker.HitTest(p)
	if ok && hit.Object == b.selected {
		switch hit.Region {
		case RegionBody:
			b.session.active = moveGesture{}
			b.log.Debug("move engaged", zap.Stringer("object", b.selected.ID))
			return
		case RegionGizmo:
			g := rotateGesture{}
			g.lastDir, g.hasDir = b.directionFromSelected(p)
			b.session.active = g
			b.log.Debug("rotate engaged", zap.Stringer("object", b.selected.ID))
			return
		}
	}
	obj := b.selected
	b.deselect()
	b.mode = ModeSelect
	b.log.Debug("object deselected", zap.Stringer("object", obj.ID))
	b.emit(EventDeselect, obj, uuid.Nil)
}

// move re-anchors the selection where the finger meets the surface:
// create the new anchor, reparent, then destroy the old anchor.
func (b *Builder) move(p Vec2) {
	pose, ok := b.surfaces.Raycast(p)
	if !ok {
		return
	}
	obj := b.selected
	anchor, err := b.anchors.Create(pose)
	if err != nil {
		b.log.Warn("move: anchor failed", zap.Error(err))
		return
	}
	previous := obj.anchor
	obj.attach(anchor)
	b.anchors.Destroy(previous)
	b.emit(EventMove, obj, previous.ID)
}

// directionFromSelected returns the vector from the selection's anchor to
// where p meets the surface.
func (b *Builder) directionFromSelected(p Vec2) (mgl64.Vec3, bool) {
	pose, ok := b.surfaces.Raycast(p)
	if !ok {
		return mgl64.Vec3{}, false
	}
	dir := pose.Position.Sub(b.selected.anchor.Pose.Position)
	if dir.Len() < directionEpsilon {
		return mgl64.Vec3{}, false
	}
	return dir, true
}

// rotate applies the shortest-arc rotation between the previous and current
// directions, composed onto the object's orientation.
func (b *Builder) rotate(g rotateGesture, p Vec2) {
	dir, ok := b.directionFromSelected(p)
	if !ok {
		return
	}
	if !g.hasDir {
		b.session.active = rotateGesture{lastDir: dir, hasDir: true}
		return
	}
	q, ok := shortestArc(g.lastDir, dir)
	if !ok {
		return
	}
	obj := b.selected
	obj.Transform.Rotation = composeRotation(obj.anchor.Pose.Rotation, obj.Transform.Rotation, q)
	b.session.active = rotateGesture{lastDir: dir, hasDir: true}
	b.emit(EventRotate, obj, uuid.Nil)
}

// pinch evaluates or continues a two-finger scale.
func (b *Builder) pinch(primary, secondary Vec2) {
	dist := primary.Distance(secondary)
	switch g := b.session.active.(type) {
	case pendingScaleGesture:
		if b.onSelectedBody(primary) || b.onSelectedBody(secondary) {
			b.session.active = scaleGesture{baseline: dist}
			b.log.Debug("scale engaged", zap.Stringer("object", b.selected.ID), zap.Float64("baseline", dist))
		} else {
			b.session.active = spentGesture{}
		}
	case scaleGesture:
		b.scaleBy(b.selected, dist-g.baseline)
		b.session.active = scaleGesture{baseline: dist}
		b.emit(EventScale, b.selected, uuid.Nil)
	}
}

func (b *Builder) onSelectedBody(p Vec2) bool {
	hit, ok := b.picker.HitTest(p)
	return ok && hit.Object == b.selected && hit.Region == RegionBody
}

// scaleBy applies a pinch distance change to obj, clamped to the configured
// bounds.
func (b *Builder) scaleBy(obj *PlacedObject, delta float64) {
	s := obj.Transform.Scale + delta*b.cfg.ScaleSensitivity
	obj.Transform.Scale = mgl64.Clamp(s, b.cfg.MinScale, b.cfg.MaxScale)
}
