package arbuild

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Slot   string  `yaml:"slot,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Steps  int     `yaml:"steps,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Mode   Mode    `yaml:"mode,omitempty"`
}

// script is the top-level structure of a gesture script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner replays a recorded gesture sequence through a Builder's
// inject queue, one step at a time. Attach it with SetScriptRunner.
//
// Scripts are YAML (JSON is accepted too):
//
//	steps:
//	  - {action: mode, mode: create}
//	  - {action: tap, x: 400, y: 300}
//	  - {action: drag, fromX: 400, fromY: 300, toX: 500, toY: 300, steps: 5}
//	  - {action: press, slot: secondary, x: 500, y: 300}
//	  - {action: wait, frames: 10}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a gesture script and returns a ScriptRunner ready to be
// attached to a Builder.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("arbuild: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("arbuild: parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "tap", "press", "move", "release", "drag", "pinch", "wait", "mode":
		default:
			return nil, fmt.Errorf("arbuild: parse script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseSlot(st.Slot); err != nil {
			return nil, fmt.Errorf("arbuild: parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func parseSlot(s string) (Slot, error) {
	switch s {
	case "", "primary":
		return SlotPrimary, nil
	case "secondary":
		return SlotSecondary, nil
	}
	return 0, fmt.Errorf("unknown slot %q", s)
}

// SetScriptRunner attaches a ScriptRunner. Its step method is called from
// Update before input is processed each frame.
func (b *Builder) SetScriptRunner(r *ScriptRunner) {
	b.runner = r
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, such as an invalid mode switch.
func (r *ScriptRunner) Err() error {
	return r.err
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(b *Builder) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(b.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	slot, _ := parseSlot(st.Slot)
	at := Vec2{X: st.X, Y: st.Y}

	switch st.Action {
	case "tap":
		b.InjectTap(at)
	case "press":
		b.InjectPress(slot, at)
	case "move":
		b.InjectMove(slot, at)
	case "release":
		b.InjectRelease(slot, at)
	case "drag":
		b.InjectDrag(Vec2{X: st.FromX, Y: st.FromY}, Vec2{X: st.ToX, Y: st.ToY}, st.Steps)
	case "pinch":
		b.InjectPinch(at, Vec2{X: st.FromX, Y: st.FromY}, Vec2{X: st.ToX, Y: st.ToY}, st.Steps)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mode":
		if err := b.SetMode(st.Mode); err != nil && r.err == nil {
			r.err = fmt.Errorf("arbuild: script step %d: %w", r.cursor-1, err)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
