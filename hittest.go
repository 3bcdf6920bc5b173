package arbuild

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Built-in Collider types ---

// Collider is a hit volume in an object's local space. IntersectRay returns
// the ray parameter of the first intersection in front of the origin.
type Collider interface {
	IntersectRay(r Ray) (float64, bool)
}

// BoxCollider is an axis-aligned box in local coordinates.
type BoxCollider struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// IntersectRay implements Collider using the slab method.
func (b BoxCollider) IntersectRay(r Ray) (float64, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for i := 0; i < 3; i++ {
		lo := b.Center[i] - b.HalfExtents[i]
		hi := b.Center[i] + b.HalfExtents[i]
		o, d := r.Origin[i], r.Direction[i]
		if math.Abs(d) < directionEpsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		// Origin is inside the box.
		return 0, true
	}
	return tMin, true
}

// SphereCollider is a sphere in local coordinates.
type SphereCollider struct {
	Center mgl64.Vec3
	Radius float64
}

// IntersectRay implements Collider.
func (s SphereCollider) IntersectRay(r Ray) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	if a < directionEpsilon {
		return 0, false
	}
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-b - sq) / a
	if t < 0 {
		t = (-b + sq) / a
		if t < 0 {
			return 0, false
		}
		return 0, true
	}
	return t, true
}

// --- Object hit testing ---

// ObjectHit is the result of a successful object hit test.
type ObjectHit struct {
	Object   *PlacedObject
	Region   HitRegion
	Distance float64
}

// ObjectPicker resolves a screen point to the placed object under it.
type ObjectPicker interface {
	HitTest(p Vec2) (ObjectHit, bool)
}

// ObjectHitTester casts camera rays against placed-object colliders.
type ObjectHitTester struct {
	camera  *Camera
	objects func() []*PlacedObject
}

// NewObjectHitTester creates a hit tester over the objects returned by
// objects at query time.
func NewObjectHitTester(camera *Camera, objects func() []*PlacedObject) *ObjectHitTester {
	return &ObjectHitTester{camera: camera, objects: objects}
}

// HitTest finds the nearest collider under p. Every object's body is
// tested; only a selected object's gizmo is, since the handle is hidden
// otherwise.
func (h *ObjectHitTester) HitTest(p Vec2) (ObjectHit, bool) {
	ray := h.camera.ScreenPointToRay(p)
	var best ObjectHit
	found := false
	for _, obj := range h.objects() {
		world := obj.WorldMatrix()
		local := transformRay(ray, world.Inv())
		try := func(c Collider, region HitRegion) {
			if c == nil {
				return
			}
			t, ok := c.IntersectRay(local)
			if !ok {
				return
			}
			d := mgl64.TransformCoordinate(local.At(t), world).Sub(ray.Origin).Len()
			if !found || d < best.Distance {
				best = ObjectHit{Object: obj, Region: region, Distance: d}
				found = true
			}
		}
		try(obj.Colliders.Body, RegionBody)
		if obj.selected {
			try(obj.Colliders.Gizmo, RegionGizmo)
		}
	}
	return best, found
}
