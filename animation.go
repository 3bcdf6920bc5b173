package arbuild

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// gizmoFade animates a placed object's rotation-gizmo opacity when its
// selection changes. There is no global animation manager; the Builder calls
// update for every object each frame.
type gizmoFade struct {
	alpha float64
	tween *gween.Tween
}

// start begins fading toward target over duration seconds. A non-positive
// duration snaps immediately.
func (g *gizmoFade) start(target float64, duration float32) {
	if duration <= 0 {
		g.alpha = target
		g.tween = nil
		return
	}
	g.tween = gween.New(float32(g.alpha), float32(target), duration, ease.OutQuad)
}

// update advances the fade by dt seconds.
func (g *gizmoFade) update(dt float32) {
	if g.tween == nil {
		return
	}
	val, finished := g.tween.Update(dt)
	g.alpha = float64(val)
	if finished {
		g.tween = nil
	}
}

// animating reports whether a fade is in progress.
func (g *gizmoFade) animating() bool {
	return g.tween != nil
}
