package arbuild

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ErrUnknownPrefab is returned by PrefabSpawner for an unregistered kind.
var ErrUnknownPrefab = errors.New("arbuild: unknown prefab")

// Colliders holds a placed object's hit volumes by role. Both are expressed
// in the object's local space.
type Colliders struct {
	Body  Collider
	Gizmo Collider
}

// PlacedObject is a virtual object pinned to an anchor on the tracked surface.
type PlacedObject struct {
	ID   uuid.UUID
	Kind string

	// Transform is local to the owning anchor. Scale is kept within the
	// Builder's configured bounds.
	Transform Transform
	Colliders Colliders

	// UserData is not used by arbuild.
	UserData any

	anchor   *Anchor
	selected bool
	gizmo    gizmoFade
}

// Anchor returns the anchor that owns the object.
func (o *PlacedObject) Anchor() *Anchor {
	return o.anchor
}

// Selected reports whether the object is the current selection.
func (o *PlacedObject) Selected() bool {
	return o.selected
}

// GizmoAlpha returns the rotation gizmo's current opacity in [0, 1].
func (o *PlacedObject) GizmoAlpha() float64 {
	return o.gizmo.alpha
}

// WorldMatrix returns anchor pose * local transform.
func (o *PlacedObject) WorldMatrix() mgl64.Mat4 {
	local := o.Transform.Mat4()
	if o.anchor == nil {
		return local
	}
	return o.anchor.Pose.Mat4().Mul4(local)
}

// WorldPosition returns the object's origin in world space.
func (o *PlacedObject) WorldPosition() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, o.WorldMatrix())
}

// WorldRotation returns the object's orientation in world space.
func (o *PlacedObject) WorldRotation() mgl64.Quat {
	if o.anchor == nil {
		return o.Transform.Rotation
	}
	return o.anchor.Pose.Rotation.Mul(o.Transform.Rotation).Normalize()
}

// attach reparents the object onto anchor, keeping its local transform.
// The previous anchor is left childless but alive; the caller destroys it.
func (o *PlacedObject) attach(anchor *Anchor) {
	if o.anchor != nil && o.anchor.child == o {
		o.anchor.child = nil
	}
	anchor.child = o
	o.anchor = anchor
}

// detachAll clears anchor's child link on both sides.
func detachAll(anchor *Anchor) {
	if o := anchor.child; o != nil {
		if o.anchor == anchor {
			o.anchor = nil
		}
		anchor.child = nil
	}
}

// setSelected toggles selection and starts the gizmo fade.
func (o *PlacedObject) setSelected(on bool, fade float32) {
	o.selected = on
	target := 0.0
	if on {
		target = 1
	}
	o.gizmo.start(target, fade)
}

// Spawner instantiates placed objects under an anchor.
type Spawner interface {
	Spawn(kind string, parent *Anchor) (*PlacedObject, error)
}

// Prefab describes the colliders a spawned object of Kind receives.
type Prefab struct {
	Kind      string
	Colliders Colliders
}

// CubePrefab is a 0.2m cube resting on its anchor with a spherical rotation
// handle beside it.
var CubePrefab = Prefab{
	Kind: "cube",
	Colliders: Colliders{
		Body: BoxCollider{
			Center:      mgl64.Vec3{0, 0.1, 0},
			HalfExtents: mgl64.Vec3{0.1, 0.1, 0.1},
		},
		Gizmo: SphereCollider{
			Center: mgl64.Vec3{0.3, 0.1, 0},
			Radius: 0.06,
		},
	},
}

// PrefabSpawner spawns objects from a fixed set of prefabs.
type PrefabSpawner struct {
	prefabs map[string]Prefab
}

// NewPrefabSpawner creates a spawner. With no arguments it knows CubePrefab.
func NewPrefabSpawner(prefabs ...Prefab) *PrefabSpawner {
	if len(prefabs) == 0 {
		prefabs = []Prefab{CubePrefab}
	}
	s := &PrefabSpawner{prefabs: make(map[string]Prefab, len(prefabs))}
	for _, p := range prefabs {
		s.prefabs[p.Kind] = p
	}
	return s
}

// Spawn implements Spawner. The new object has identity rotation and unit
// scale and is parented to parent.
func (s *PrefabSpawner) Spawn(kind string, parent *Anchor) (*PlacedObject, error) {
	p, ok := s.prefabs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefab, kind)
	}
	obj := &PlacedObject{
		ID:        uuid.New(),
		Kind:      kind,
		Transform: identityTransform,
		Colliders: p.Colliders,
	}
	obj.attach(parent)
	return obj, nil
}
