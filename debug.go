package arbor

import (
	"fmt"
	"os"
	"time"
)

// passStats holds the most recent cost of each engine phase. Resync and
// layout numbers persist across render-only passes, so a scroll tick still
// shows what the last structural pass cost. Only populated when the
// Outliner's debug mode is on.
type passStats struct {
	resyncTime time.Duration
	layoutTime time.Duration
	renderTime time.Duration

	cachedNodes   int
	layoutVisited int
	renderVisited int
	rowsLive      int
	togglesLive   int
}

// debugLog prints the current pass stats to stderr.
func (o *Outliner) debugLog() {
	if !o.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] resync: %v | layout: %v | render: %v\n",
		o.stats.resyncTime, o.stats.layoutTime, o.stats.renderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] nodes: %d | layout visits: %d | render visits: %d | rows: %d | toggles: %d\n",
		o.stats.cachedNodes, o.stats.layoutVisited, o.stats.renderVisited,
		o.stats.rowsLive, o.stats.togglesLive)
}

// warnf prints a warning to stderr. Silent unless debug mode is on.
func (o *Outliner) warnf(format string, args ...any) {
	if !o.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: "+format+"\n", args...)
}

// Structure thresholds that usually indicate a broken source rather than a
// genuinely huge scene: a parent chain this deep is almost always a source
// walking its own containers, and a child list this long belongs behind
// grouping.
const (
	debugMaxTreeDepth  = 64
	debugMaxChildCount = 10000
)

// debugCheckTree warns about suspicious structure after a layout pass. Only
// called when debug mode is on.
func (o *Outliner) debugCheckTree() {
	o.checkTreeShape(o.root, 0)
}

func (o *Outliner) checkTreeShape(n *Node, depth int) {
	if depth > debugMaxTreeDepth {
		o.warnf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
		return
	}
	if len(n.children) > debugMaxChildCount {
		o.warnf("node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
	for _, child := range n.children {
		o.checkTreeShape(child, depth+1)
	}
}
