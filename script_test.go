package arbor

import (
	"strings"
	"testing"
)

func mustLoadScript(t *testing.T, src string) *Script {
	t.Helper()
	s, err := LoadScript([]byte(src))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	return s
}

func TestLoadScript(t *testing.T) {
	s := mustLoadScript(t, `{"steps": [
		{"action": "click", "x": 8, "y": 50},
		{"action": "wait", "frames": 3},
		{"action": "wheel", "dy": -2}
	]}`)
	if len(s.steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(s.steps))
	}
	if s.steps[2].DeltaY != -2 {
		t.Errorf("wheel dy = %v, want -2", s.steps[2].DeltaY)
	}
	if s.Done() {
		t.Error("fresh script reports done")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	cases := []struct {
		name, src, wantSub string
	}{
		{"malformed json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "drag"}]}`, `unknown action "drag"`},
	}
	for _, tc := range cases {
		_, err := LoadScript([]byte(tc.src))
		if err == nil {
			t.Errorf("%s: no error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantSub) {
			t.Errorf("%s: err = %q, want substring %q", tc.name, err.Error(), tc.wantSub)
		}
	}
}

func TestScriptClickQueuesTwoEvents(t *testing.T) {
	p, _ := testPanel(Rect{X: 0, Y: 0, Width: 200, Height: 100})
	s := mustLoadScript(t, `{"steps": [{"action": "click", "x": 8, "y": 50}]}`)

	s.step(p)
	if len(p.injectQueue) != 2 {
		t.Fatalf("queued events = %d, want press and release", len(p.injectQueue))
	}
	// The script never advances while injections are pending.
	s.step(p)
	if len(p.injectQueue) != 2 || s.Done() {
		t.Error("script advanced before the queue drained")
	}
}

func TestScriptWaitCounting(t *testing.T) {
	p, _ := testPanel(Rect{X: 0, Y: 0, Width: 200, Height: 100})
	s := mustLoadScript(t, `{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "wheel", "dy": -1}
	]}`)

	// The wait step itself burns the first frame.
	s.step(p)
	if s.waitCount != 2 {
		t.Fatalf("waitCount = %d after the wait step, want 2", s.waitCount)
	}
	s.step(p)
	s.step(p)
	if s.waitCount != 0 {
		t.Fatalf("waitCount = %d after 2 more frames, want 0", s.waitCount)
	}
	if len(p.injectQueue) != 0 {
		t.Fatal("wheel fired during the wait")
	}
	s.step(p)
	if len(p.injectQueue) != 1 {
		t.Errorf("queued events = %d after the wait, want the wheel", len(p.injectQueue))
	}
}

func TestScriptDoneAfterDrain(t *testing.T) {
	p, _ := testPanel(Rect{X: 0, Y: 0, Width: 200, Height: 100})
	s := mustLoadScript(t, `{"steps": [{"action": "click", "x": 8, "y": 50}]}`)
	p.SetScript(s)

	// Frame 1 injects, frames 1-2 consume, frame 3 observes the drain.
	for i := 0; i < 3; i++ {
		if s.Done() {
			t.Fatalf("done too early, frame %d", i)
		}
		p.Update()
	}
	if !s.Done() {
		t.Error("script not done after the queue drained")
	}
}

func TestScriptDrivesPanel(t *testing.T) {
	p, _ := testPanel(Rect{X: 0, Y: 0, Width: 200, Height: 100})
	s := mustLoadScript(t, `{"steps": [
		{"action": "click", "x": 8, "y": 50},
		{"action": "wait", "frames": 2},
		{"action": "click", "x": 8, "y": 50}
	]}`)
	p.SetScript(s)

	collapsed := false
	for i := 0; i < 20 && !s.Done(); i++ {
		p.Update()
		if _, h := p.Outliner().ContentSize(); approxEqual(h, 60, epsilon) {
			collapsed = true
		}
	}
	if !s.Done() {
		t.Fatal("script did not finish in 20 frames")
	}
	if !collapsed {
		t.Error("first click never collapsed the subtree")
	}
	if _, h := p.Outliner().ContentSize(); !approxEqual(h, 80, epsilon) {
		t.Errorf("final height = %v, want 80 after the second toggle", h)
	}
}
