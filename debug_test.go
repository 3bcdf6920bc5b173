package arbuild

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// ---- Debug mode tests ------------------------------------------------------

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, substr) {
			t.Errorf("panic message should mention %q, got: %s", substr, msg)
		}
	}()
	fn()
}

func TestDebugMode_DestroyedAnchorPanics(t *testing.T) {
	f := newFixture(t, testConfig())
	obj := f.place(t, mgl64.Vec3{})
	obj.anchor.destroyed = true

	expectPanic(t, "destroyed anchor", func() { f.b.Update(testDT) })
}

func TestDebugMode_OrphanPanics(t *testing.T) {
	f := newFixture(t, testConfig())
	obj := f.place(t, mgl64.Vec3{})
	obj.anchor = nil

	expectPanic(t, "no anchor", func() { f.b.Update(testDT) })
}

func TestDebugMode_SharedAnchorPanics(t *testing.T) {
	f := newFixture(t, testConfig())
	a := f.place(t, mgl64.Vec3{})
	b := f.place(t, mgl64.Vec3{1, 0, 0})
	b.anchor = a.anchor

	expectPanic(t, "does not own", func() { f.b.Update(testDT) })
}

func TestDebugMode_SelectionMismatchPanics(t *testing.T) {
	f := newFixture(t, testConfig())
	f.place(t, mgl64.Vec3{})
	f.b.mode = ModeSelect

	expectPanic(t, "mode select", func() { f.b.Update(testDT) })
}

func TestReleaseMode_NoChecks(t *testing.T) {
	cfg := testConfig()
	cfg.Debug = false
	f := newFixture(t, cfg)
	obj := f.place(t, mgl64.Vec3{})
	obj.anchor.destroyed = true

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("release mode should not panic, got: %v", r)
		}
	}()
	f.b.Update(testDT)
}

func TestDestroyOwnedAnchorPanics(t *testing.T) {
	f := newFixture(t, testConfig())
	obj := f.place(t, mgl64.Vec3{})

	expectPanic(t, "still owns", func() { f.b.anchors.Destroy(obj.Anchor()) })
}

func TestDebugStats_Logged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixtureWith(t, testConfig(), Collaborators{Logger: zap.New(core)})
	obj := f.place(t, mgl64.Vec3{})

	f.b.InjectPress(SlotPrimary, f.bodyPoint(t, obj))
	f.b.InjectMove(SlotPrimary, f.screen(t, mgl64.Vec3{1, 0, 0}))
	f.run()

	frames := logs.FilterMessage("frame").AllUntimed()
	if len(frames) == 0 {
		t.Fatal("expected frame stats")
	}
	last := frames[len(frames)-1].ContextMap()
	if last["anchors_created"] != int64(1) || last["anchors_destroyed"] != int64(1) {
		t.Errorf("move frame stats = %v, want one anchor created and one destroyed", last)
	}
	if last["anchors_live"] != int64(1) {
		t.Errorf("anchors_live = %v, want 1", last["anchors_live"])
	}
	if last["gesture"] != "move" {
		t.Errorf("gesture = %v, want move", last["gesture"])
	}
}

func TestDebugStats_IdleFrameSkipped(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixtureWith(t, testConfig(), Collaborators{Logger: zap.New(core)})
	f.b.Update(testDT)
	if n := logs.FilterMessage("frame").Len(); n != 0 {
		t.Errorf("idle frame logged %d times", n)
	}
}
