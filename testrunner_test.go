package arbuild

import (
	"errors"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: mode, mode: create}
  - {action: tap, x: 100, y: 200}
  - {action: wait, frames: 3}
  - {action: pinch, x: 400, y: 300, fromX: 500, fromY: 300, toX: 550, toY: 300, steps: 2}
  - {action: press, slot: secondary, x: 1, y: 2}
`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "mode" || runner.steps[0].Mode != ModeCreate {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "tap" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].ToX != 550 || runner.steps[3].Steps != 2 {
		t.Error("step 3 mismatch")
	}
	if runner.steps[4].Slot != "secondary" {
		t.Error("step 4 mismatch")
	}
}

func TestLoadScript_JSON(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "tap", "x": 5, "y": 6}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.steps[0].X != 5 {
		t.Error("JSON step mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `steps: [`},
		{"empty", `steps: []`},
		{"unknown action", `steps: [{action: screenshot}]`},
		{"unknown slot", `steps: [{action: press, slot: third}]`},
		{"unknown mode", `steps: [{action: mode, mode: sculpt}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerStep_Tap(t *testing.T) {
	f := newFixture(t, testConfig())
	runner, err := LoadScript([]byte(`steps: [{action: tap, x: 400, y: 300}]`))
	if err != nil {
		t.Fatal(err)
	}
	f.b.SetScriptRunner(runner)

	// Frame 1: the runner queues press, position, release and the first is
	// consumed. Two more frames drain the queue.
	for i := 0; i < 3; i++ {
		f.b.Update(testDT)
	}
	if len(f.b.Objects()) != 1 {
		t.Fatalf("expected 1 object, got %d", len(f.b.Objects()))
	}
	if runner.Done() {
		t.Error("runner should not be done before it sees the empty queue")
	}
	f.b.Update(testDT)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	f := newFixture(t, testConfig())
	runner, err := LoadScript([]byte(`
steps:
  - {action: wait, frames: 3}
  - {action: move, x: 1, y: 1}
`))
	if err != nil {
		t.Fatal(err)
	}
	f.b.SetScriptRunner(runner)

	for i := 0; i < 3; i++ {
		f.b.Update(testDT)
		if runner.cursor != 1 {
			t.Fatalf("frame %d: cursor = %d, want 1 while waiting", i, runner.cursor)
		}
	}
	f.b.Update(testDT)
	if runner.cursor != 2 {
		t.Errorf("cursor = %d after wait, want 2", runner.cursor)
	}
}

func TestRunnerScriptedSession(t *testing.T) {
	f := newFixture(t, testConfig())
	runner, err := LoadScript([]byte(`
steps:
  - {action: tap, x: 400, y: 300}
  - {action: pinch, x: 400, y: 300, fromX: 500, fromY: 300, toX: 600, toY: 300, steps: 4}
  - {action: mode, mode: select}
`))
	if err != nil {
		t.Fatal(err)
	}
	f.b.SetScriptRunner(runner)
	for i := 0; i < 100 && !runner.Done(); i++ {
		f.b.Update(testDT)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if runner.Err() != nil {
		t.Fatalf("unexpected error: %v", runner.Err())
	}
	if len(f.b.Objects()) != 1 {
		t.Fatalf("expected 1 object, got %d", len(f.b.Objects()))
	}
	obj := f.b.Objects()[0]
	if d := obj.Transform.Scale - 1.1; d > 1e-9 || d < -1e-9 {
		t.Errorf("scale = %v, want 1.1", obj.Transform.Scale)
	}
	if f.b.Mode() != ModeSelect {
		t.Errorf("mode = %v, want select", f.b.Mode())
	}
}

func TestRunnerRecordsModeError(t *testing.T) {
	f := newFixture(t, testConfig())
	runner, err := LoadScript([]byte(`steps: [{action: mode, mode: manipulate}]`))
	if err != nil {
		t.Fatal(err)
	}
	f.b.SetScriptRunner(runner)
	f.b.Update(testDT)
	if !errors.Is(runner.Err(), ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", runner.Err())
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	f := newFixture(t, testConfig())
	runner, err := LoadScript([]byte(`
steps:
  - {action: drag, fromX: 0, fromY: 0, toX: 10, toY: 0, steps: 2}
  - {action: tap, x: 5, y: 5}
`))
	if err != nil {
		t.Fatal(err)
	}
	f.b.SetScriptRunner(runner)

	f.b.Update(testDT)
	if runner.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", runner.cursor)
	}
	// The drag queued 5 events; one was consumed.
	for f.b.PendingInjected() > 0 {
		f.b.Update(testDT)
		if f.b.PendingInjected() > 0 && runner.cursor != 1 {
			t.Fatal("runner advanced while the queue was non-empty")
		}
	}
}
