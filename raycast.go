package arbuild

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// SurfaceHit is one intersection between a screen ray and a tracked surface.
type SurfaceHit struct {
	TrackableID uuid.UUID
	Pose        Pose
	Distance    float64
}

// SurfaceTracker is the AR runtime's surface tracking service.
type SurfaceTracker interface {
	// Raycast returns every surface-type trackable hit by the ray through p,
	// nearest first.
	Raycast(p Vec2) []SurfaceHit
	// Highlight asks the tracker to visually mark or unmark a surface.
	Highlight(id uuid.UUID, on bool)
}

// SurfaceRaycaster filters tracker hits down to the one surface objects are
// placed on. Hits on any other surface are ignored, never used as fallback.
type SurfaceRaycaster struct {
	tracker  SurfaceTracker
	bound    uuid.UUID
	hasBound bool
}

// NewSurfaceRaycaster creates a raycaster with no bound surface.
func NewSurfaceRaycaster(tracker SurfaceTracker) *SurfaceRaycaster {
	return &SurfaceRaycaster{tracker: tracker}
}

// Bind makes id the surface all raycasts are filtered to.
func (r *SurfaceRaycaster) Bind(id uuid.UUID) {
	r.bound = id
	r.hasBound = true
}

// Unbind clears the bound surface. Raycasts miss until Bind is called again.
func (r *SurfaceRaycaster) Unbind() {
	r.bound = uuid.Nil
	r.hasBound = false
}

// Bound returns the bound surface.
func (r *SurfaceRaycaster) Bound() (uuid.UUID, bool) {
	return r.bound, r.hasBound
}

// Raycast returns the pose where the ray through p meets the bound surface.
func (r *SurfaceRaycaster) Raycast(p Vec2) (Pose, bool) {
	if !r.hasBound {
		return Pose{}, false
	}
	for _, hit := range r.tracker.Raycast(p) {
		if hit.TrackableID == r.bound {
			return hit.Pose, true
		}
	}
	return Pose{}, false
}

// SelectAt binds the nearest surface under p and highlights it. The
// previously bound surface is always unhighlighted and unbound first, so a
// tap on empty space leaves nothing bound.
func (r *SurfaceRaycaster) SelectAt(p Vec2) (uuid.UUID, bool) {
	if r.hasBound {
		r.tracker.Highlight(r.bound, false)
		r.Unbind()
	}
	hits := r.tracker.Raycast(p)
	if len(hits) == 0 {
		return uuid.Nil, false
	}
	id := hits[0].TrackableID
	r.Bind(id)
	r.tracker.Highlight(id, true)
	return id, true
}

// Plane is a bounded planar surface. Its normal is the pose's local +Y and
// its extent is measured along the pose's local X and Z axes.
type Plane struct {
	ID          uuid.UUID
	Pose        Pose
	HalfExtents mgl64.Vec2
}

// Normal returns the plane normal in world space.
func (p Plane) Normal() mgl64.Vec3 {
	return p.Pose.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// intersect returns the distance along r to the plane, limited to the plane's
// extents.
func (p Plane) intersect(r Ray) (float64, bool) {
	n := p.Normal()
	denom := n.Dot(r.Direction)
	if math.Abs(denom) < directionEpsilon {
		return 0, false
	}
	t := n.Dot(p.Pose.Position.Sub(r.Origin)) / denom
	if t < 0 {
		return 0, false
	}
	local := p.Pose.Rotation.Inverse().Rotate(r.At(t).Sub(p.Pose.Position))
	if math.Abs(local.X()) > p.HalfExtents.X() || math.Abs(local.Z()) > p.HalfExtents.Y() {
		return 0, false
	}
	return t, true
}

// PlaneTracker is an in-process SurfaceTracker over a set of planes seen
// through a Camera. It stands in for the AR runtime in tests and the desktop
// example.
type PlaneTracker struct {
	camera      *Camera
	planes      []Plane
	highlighted map[uuid.UUID]bool
	hitBuf      []SurfaceHit
}

// NewPlaneTracker creates a tracker with no planes.
func NewPlaneTracker(camera *Camera) *PlaneTracker {
	return &PlaneTracker{camera: camera, highlighted: make(map[uuid.UUID]bool)}
}

// AddPlane starts tracking p. A zero ID is replaced with a new random one.
func (t *PlaneTracker) AddPlane(p Plane) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	t.planes = append(t.planes, p)
	return p.ID
}

// UpdatePlane replaces the pose of a tracked plane, as the AR runtime does
// when its estimate of the physical surface drifts.
func (t *PlaneTracker) UpdatePlane(id uuid.UUID, pose Pose) bool {
	for i := range t.planes {
		if t.planes[i].ID == id {
			t.planes[i].Pose = pose
			return true
		}
	}
	return false
}

// RemovePlane stops tracking a plane.
func (t *PlaneTracker) RemovePlane(id uuid.UUID) {
	t.planes = slices.DeleteFunc(t.planes, func(p Plane) bool { return p.ID == id })
	delete(t.highlighted, id)
}

// Planes returns the tracked planes. The returned slice MUST NOT be mutated.
func (t *PlaneTracker) Planes() []Plane {
	return t.planes
}

// Raycast implements SurfaceTracker.
func (t *PlaneTracker) Raycast(p Vec2) []SurfaceHit {
	ray := t.camera.ScreenPointToRay(p)
	hits := t.hitBuf[:0]
	for _, plane := range t.planes {
		d, ok := plane.intersect(ray)
		if !ok {
			continue
		}
		hits = append(hits, SurfaceHit{
			TrackableID: plane.ID,
			Pose:        Pose{Position: ray.At(d), Rotation: plane.Pose.Rotation},
			Distance:    d,
		})
	}
	slices.SortFunc(hits, func(a, b SurfaceHit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	t.hitBuf = hits
	return hits
}

// Highlight implements SurfaceTracker.
func (t *PlaneTracker) Highlight(id uuid.UUID, on bool) {
	if on {
		t.highlighted[id] = true
		return
	}
	delete(t.highlighted, id)
}

// Highlighted reports whether a plane is currently highlighted.
func (t *PlaneTracker) Highlighted(id uuid.UUID) bool {
	return t.highlighted[id]
}
