package arbuild

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the device camera the AR session renders through. It converts
// screen points to world rays for hit testing and projects world points back
// to the screen.
type Camera struct {
	// Eye is the camera position in world space.
	Eye mgl64.Vec3
	// Target is the world point the camera looks at.
	Target mgl64.Vec3
	// Up is the world up hint used to orient the view.
	Up mgl64.Vec3
	// FovY is the vertical field of view in radians.
	FovY float64
	// Near and Far are the clip plane distances.
	Near, Far float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	viewProj    mgl64.Mat4
	invViewProj mgl64.Mat4
	dirty       bool
}

// NewCamera creates a camera with a 60 degree field of view looking down -Z
// from the origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Target:   mgl64.Vec3{0, 0, -1},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     mgl64.DegToRad(60),
		Near:     0.05,
		Far:      100,
		Viewport: viewport,
		dirty:    true,
	}
}

// LookAt repositions the camera and marks its matrices dirty.
func (c *Camera) LookAt(eye, target, up mgl64.Vec3) {
	c.Eye = eye
	c.Target = target
	c.Up = up
	c.dirty = true
}

// MarkDirty forces matrix recomputation after exported fields change.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	proj := mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Eye, c.Target, c.Up)
	c.viewProj = proj.Mul4(view)
	c.invViewProj = c.viewProj.Inv()
	c.dirty = false
}

// ViewProjection returns the combined projection * view matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	c.computeMatrices()
	return c.viewProj
}

// ScreenPointToRay returns the world ray passing through screen point p,
// starting on the near plane.
func (c *Camera) ScreenPointToRay(p Vec2) Ray {
	c.computeMatrices()
	vp := c.Viewport
	nx := 2*(p.X-vp.X)/vp.Width - 1
	ny := 1 - 2*(p.Y-vp.Y)/vp.Height

	near := c.invViewProj.Mul4x1(mgl64.Vec4{nx, ny, -1, 1})
	far := c.invViewProj.Mul4x1(mgl64.Vec4{nx, ny, 1, 1})
	n := near.Vec3().Mul(1 / near.W())
	f := far.Vec3().Mul(1 / far.W())
	return Ray{Origin: n, Direction: f.Sub(n).Normalize()}
}

// WorldToScreen projects a world point to screen coordinates. ok is false
// for points behind the camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (Vec2, bool) {
	c.computeMatrices()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 || math.IsNaN(clip.W()) {
		return Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	vp := c.Viewport
	return Vec2{
		X: vp.X + (ndc.X()+1)/2*vp.Width,
		Y: vp.Y + (1-ndc.Y())/2*vp.Height,
	}, true
}
