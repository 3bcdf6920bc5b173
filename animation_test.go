package arbuild

import (
	"math"
	"testing"
)

func TestGizmoFadeReachesTarget(t *testing.T) {
	var g gizmoFade
	g.start(1, 0.5)
	if !g.animating() {
		t.Fatal("expected animating after start")
	}

	// Exact halves avoid float32 accumulation drift.
	g.update(0.25)
	g.update(0.25)

	if g.animating() {
		t.Fatal("expected fade finished after full duration")
	}
	if math.Abs(g.alpha-1) > 1e-6 {
		t.Errorf("alpha = %f, want 1", g.alpha)
	}
}

func TestGizmoFadeEasesOut(t *testing.T) {
	var g gizmoFade
	g.start(1, 1)
	g.update(0.5)
	// OutQuad is past the linear midpoint halfway through.
	if g.alpha <= 0.5 || g.alpha >= 1 {
		t.Errorf("alpha = %f at half duration, want in (0.5, 1)", g.alpha)
	}
}

func TestGizmoFadeReverseFromMidway(t *testing.T) {
	var g gizmoFade
	g.start(1, 1)
	g.update(0.5)
	mid := g.alpha

	g.start(0, 1)
	g.update(0.01)
	if g.alpha > mid || g.alpha < mid-0.1 {
		t.Errorf("reverse fade jumped: %f -> %f", mid, g.alpha)
	}
	g.update(1)
	if g.alpha != 0 {
		t.Errorf("alpha = %f, want 0", g.alpha)
	}
}

func TestGizmoFadeZeroDurationSnaps(t *testing.T) {
	var g gizmoFade
	g.start(1, 0)
	if g.animating() {
		t.Error("zero duration should not animate")
	}
	if g.alpha != 1 {
		t.Errorf("alpha = %f, want 1", g.alpha)
	}
}

func TestGizmoFadeIdleUpdate(t *testing.T) {
	var g gizmoFade
	g.update(1)
	if g.alpha != 0 {
		t.Errorf("alpha = %f, want 0", g.alpha)
	}
}
