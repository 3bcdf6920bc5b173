package arbuild

import (
	"github.com/go-gl/mathgl/mgl64"
)

// directionEpsilon is the shortest vector length treated as a usable direction.
const directionEpsilon = 1e-9

// Transform is an object's local transform relative to its anchor.
// Scale is uniform.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// identityTransform is the transform every spawned object starts with.
var identityTransform = Transform{Rotation: mgl64.QuatIdent(), Scale: 1}

// Mat4 returns the local matrix. Composition order:
//
//	Translate(Position) -> Rotate -> Scale
func (t Transform) Mat4() mgl64.Mat4 {
	m := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(t.Rotation.Normalize().Mat4())
	return m.Mul4(mgl64.Scale3D(t.Scale, t.Scale, t.Scale))
}

// Ray is a half-line in world or local space. Direction is normalized by the
// constructors in this package.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// transformRay maps r through m. The result's direction is not normalized
// so that distances along it stay in step with the source ray.
func transformRay(r Ray, m mgl64.Mat4) Ray {
	o := m.Mul4x1(r.Origin.Vec4(1))
	d := m.Mul4x1(r.Direction.Vec4(0))
	return Ray{Origin: o.Vec3().Mul(1 / o.W()), Direction: d.Vec3()}
}

// shortestArc returns the minimal rotation taking direction from onto
// direction to. ok is false when either vector is too short to define a
// direction.
func shortestArc(from, to mgl64.Vec3) (q mgl64.Quat, ok bool) {
	if from.Len() < directionEpsilon || to.Len() < directionEpsilon {
		return mgl64.QuatIdent(), false
	}
	return mgl64.QuatBetweenVectors(from, to).Normalize(), true
}

// composeRotation pre-multiplies a world-space increment onto a local
// rotation expressed under parent.
func composeRotation(parent, local, increment mgl64.Quat) mgl64.Quat {
	world := increment.Mul(parent.Mul(local))
	return parent.Inverse().Mul(world).Normalize()
}
