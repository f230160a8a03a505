package arbor

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DeltaX float64 `json:"dx,omitempty"`
	DeltaY float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input events across frames for automated
// interaction tests and demos. Attach to a Panel via SetScript. Supported
// actions: "click" (x, y), "wheel" (dx, dy), and "wait" (frames).
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("arbor: parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("arbor: parse script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "click", "wheel", "wait":
		default:
			return nil, fmt.Errorf("arbor: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// Done reports whether all steps have been executed and drained.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Panel.Update before
// input is consumed.
func (r *Script) step(p *Panel) {
	if r.done {
		return
	}
	// Let pending injections drain before advancing.
	if len(p.injectQueue) > 0 {
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

	switch st.Action {
	case "click":
		p.InjectClick(st.X, st.Y)
	case "wheel":
		p.InjectWheel(st.DeltaX, st.DeltaY)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}
