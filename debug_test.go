package arbor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// ---- Debug stats tests ------------------------------------------------------

func TestDebugStats_PopulatedOnResync(t *testing.T) {
	o := NewOutliner(scene1())
	o.SetExpandByDefault(true)
	o.SetDebugMode(true)

	o.resync()

	// Group, A, B, C.
	if o.stats.cachedNodes != 4 {
		t.Errorf("cachedNodes = %d, want 4", o.stats.cachedNodes)
	}
	// Root plus all four nodes.
	if o.stats.layoutVisited != 5 {
		t.Errorf("layoutVisited = %d, want 5", o.stats.layoutVisited)
	}
}

func TestDebugStats_OffByDefault(t *testing.T) {
	o := NewOutliner(scene1())
	o.SetExpandByDefault(true)
	o.Update()
	if o.stats.cachedNodes != 0 || o.stats.layoutVisited != 0 {
		t.Errorf("stats populated with debug off: %+v", o.stats)
	}
}

func TestDebugLogFormat(t *testing.T) {
	o := NewOutliner(scene1())
	o.SetExpandByDefault(true)
	o.SetDebugMode(true)
	o.resync()

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	o.debugLog()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "[arbor]") || !strings.Contains(output, "layout visits: 5") {
		t.Errorf("unexpected debug log output: %q", output)
	}
}

// ---- Structure warning tests -------------------------------------------------

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	src := newFakeSource()
	src.addGroup("Deep", "n000")
	prev := "n000"
	for i := 1; i < debugMaxTreeDepth+5; i++ {
		id := fmt.Sprintf("n%03d", i)
		src.addChild(prev, id)
		prev = id
	}

	o := NewOutliner(src)
	o.SetExpandByDefault(true)
	o.SetDebugMode(true)

	// Capture stderr output.
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	o.resync()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	src := newFakeSource()
	src.addGroup("Wide", "hub")
	for i := 0; i < debugMaxChildCount+1; i++ {
		src.addChild("hub", fmt.Sprintf("c_%d", i))
	}

	o := NewOutliner(src)
	o.SetExpandByDefault(true)
	o.SetDebugMode(true)

	// Capture stderr output.
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	o.resync()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "warning: node") || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestWarnfSilentWithDebugOff(t *testing.T) {
	o := NewOutliner(scene1())

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	o.warnf("should not appear %d", 42)
	o.debugLog()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if buf.Len() != 0 {
		t.Errorf("debug output with debug mode off: %q", buf.String())
	}
}
