package arbor

import "time"

const (
	defaultIndentWidth = 16.0
	defaultCullMargin  = 24.0
)

// Outliner is the engine core. It owns the shadow layout tree, the node
// cache, the change detector, the widget pools, and the cull state, and
// turns an external TreeSource into positioned widgets once per tick.
//
// All methods must be called from the same goroutine, normally the host's
// update loop. One Update is one cooperative tick: detect, resync and
// re-layout if needed, then re-render if the visible region moved. Widget
// click handlers installed by the render pass run later, from the host's
// input routing, never from inside a pass; handlers must not call back into
// Update from within Update.
type Outliner struct {
	src  TreeSource
	root *Node

	cache nodeCache
	det   changeDetector

	factory    WidgetFactory
	rowPool    Pool[RowWidget]
	togglePool Pool[ToggleWidget]

	// Viewport and scroll state. Scroll offsets are normalized [0, 1];
	// cullBox is derived content-space geometry, rebuilt whenever the
	// inputs move and compared against the last box to skip redundant
	// render passes.
	viewport   Rect
	scrollX    float64
	scrollY    float64
	cullMargin float64
	cullBox    Rect
	cullValid  bool

	contentW float64
	contentH float64

	indentWidth   float64
	expandDefault bool

	selected *Node
	onSelect func(SelectionEvent)
	sink     EventSink

	debug bool
	stats passStats
}

// NewOutliner creates an engine over the given source. The source must not
// be nil; widgets appear once a factory is set with SetWidgets.
func NewOutliner(src TreeSource) *Outliner {
	if src == nil {
		panic("arbor: NewOutliner called with a nil source")
	}
	return &Outliner{
		src:         src,
		root:        &Node{Expanded: true},
		cullMargin:  defaultCullMargin,
		indentWidth: defaultIndentWidth,
	}
}

// Update runs one tick: poll the change detector, resync and re-layout when
// the external tree drifted, then re-render when the cull box changed since
// the last pass. Steady state with no scrolling does no work beyond the
// detector poll.
func (o *Outliner) Update() {
	if o.det.needsResync(o.src, &o.cache) {
		o.resync()
	}
	box := o.computeCullBox()
	if !o.cullValid || box != o.cullBox {
		o.cullBox = box
		o.render()
	}
}

// Rebuild forces a full resync, layout, and render regardless of what the
// change detector thinks. This is the manual escape hatch for external
// changes the detector cannot see, like renaming an object without touching
// any child count.
func (o *Outliner) Rebuild() {
	o.resync()
	o.cullBox = o.computeCullBox()
	o.render()
}

// RequestRefresh marks the visible set dirty so the next Update re-runs the
// render pass even if nothing moved. Cheaper than Rebuild when only
// render-level state changed, like a display name shown on already-built
// widgets.
func (o *Outliner) RequestRefresh() {
	o.cullValid = false
}

// resync rebuilds the layout tree from the source and recomputes all
// geometry. The selection is dropped if its node was evicted.
func (o *Outliner) resync() {
	var t0 time.Time
	if o.debug {
		t0 = time.Now()
	}
	o.cache.resync(o.src, o.root, o.expandDefault)
	o.det.snapshot(o.root)
	if o.selected != nil && !o.selected.used {
		o.selected = nil
	}
	if o.debug {
		o.stats.resyncTime = time.Since(t0)
		o.stats.cachedNodes = o.cache.size()
	}
	o.layout(-1)
	o.cullValid = false
}

// layout runs one dimension pass over the tree. rowFloor selects a partial
// pass (subtrees entirely above the floor keep cached heights); negative
// means full. Content width is exact after a full pass and only widens on a
// partial one, since rows inside skipped subtrees are not re-measured.
func (o *Outliner) layout(rowFloor float64) {
	var t0 time.Time
	if o.debug {
		t0 = time.Now()
	}
	m := layoutMetrics{indentWidth: o.indentWidth}
	o.root.Row = 0
	o.root.Column = 0
	o.contentH = o.root.computeLayout(0, rowFloor, &m)
	if rowFloor < 0 || m.maxWidth > o.contentW {
		o.contentW = m.maxWidth
	}
	if o.debug {
		o.stats.layoutTime = time.Since(t0)
		o.stats.layoutVisited = m.visited
		o.debugCheckTree()
	}
}

// toggleNode flips one node's expansion and runs the cheapest correct
// relayout: a partial pass from the root with the node's own row as the
// floor, so subtrees above it keep their cached heights. A corrupt parent
// chain (cycle, or a node detached from the tree) discards the walk and
// falls back to a full rebuild.
func (o *Outliner) toggleNode(n *Node) {
	if n == nil {
		return
	}
	n.Expanded = !n.Expanded
	root, err := n.findRoot()
	if err != nil {
		o.warnf("toggle on %q: %v; forcing rebuild", n.Name, err)
		o.Rebuild()
		return
	}
	if root != o.root {
		o.warnf("toggle on %q: node detached from the layout tree; forcing rebuild", n.Name)
		o.Rebuild()
		return
	}
	o.layout(n.Row)
	o.cullBox = o.computeCullBox()
	o.render()
}

// selectNode updates the selection highlight and emits a selection event to
// the callback and the sink, in that order. Emission happens even when the
// node was already selected, so a host can treat repeat clicks as pings.
func (o *Outliner) selectNode(n *Node) {
	o.selected = n
	if n != nil {
		ev := SelectionEvent{Item: n.Item, Name: n.Name}
		if o.onSelect != nil {
			o.onSelect(ev)
		}
		if o.sink != nil {
			o.sink.EmitSelection(ev)
		}
	}
	o.render()
}

// ClearSelection drops the selection highlight without emitting an event.
func (o *Outliner) ClearSelection() {
	if o.selected == nil {
		return
	}
	o.selected = nil
	o.render()
}

// SelectedItem returns the identity of the selected row, nil when nothing is
// selected or the selection is a group header.
func (o *Outliner) SelectedItem() Item {
	if o.selected == nil {
		return nil
	}
	return o.selected.Item
}

// --- Configuration ---

// SetWidgets installs the widget factory and resets both pools. Widgets from
// a previously installed factory are deactivated and abandoned; disposing of
// them is the host's business.
func (o *Outliner) SetWidgets(factory WidgetFactory) {
	o.rowPool.ReleaseAll()
	o.togglePool.ReleaseAll()
	o.rowPool = Pool[RowWidget]{}
	o.togglePool = Pool[ToggleWidget]{}
	o.factory = factory
	o.cullValid = false
}

// SetViewport sets the on-screen rectangle rows are laid into.
func (o *Outliner) SetViewport(viewport Rect) {
	if o.viewport == viewport {
		return
	}
	o.viewport = viewport
	o.cullValid = false
}

// Viewport returns the current on-screen rectangle.
func (o *Outliner) Viewport() Rect {
	return o.viewport
}

// SetScroll sets the normalized scroll offsets, clamped to [0, 1]. The next
// Update re-renders if the resulting cull box moved.
func (o *Outliner) SetScroll(x, y float64) {
	o.scrollX = clampOffset(x, 1)
	o.scrollY = clampOffset(y, 1)
}

// Scroll returns the normalized scroll offsets.
func (o *Outliner) Scroll() (x, y float64) {
	return o.scrollX, o.scrollY
}

// SetCullMargin sets the slack, in pixels, added around the viewport when
// deciding which rows get widgets. Negative margins are ignored.
func (o *Outliner) SetCullMargin(margin float64) {
	if margin < 0 || margin == o.cullMargin {
		return
	}
	o.cullMargin = margin
	o.cullValid = false
}

// SetIndentWidth sets the pixel width of one indent level and re-lays-out
// immediately, since every row width and toggle position depends on it.
func (o *Outliner) SetIndentWidth(width float64) {
	if width <= 0 || width == o.indentWidth {
		return
	}
	o.indentWidth = width
	if len(o.root.children) > 0 {
		o.layout(-1)
	}
	o.cullValid = false
}

// SetExpandByDefault controls whether nodes created by future resyncs start
// expanded. Existing nodes keep their state.
func (o *Outliner) SetExpandByDefault(expand bool) {
	o.expandDefault = expand
}

// OnSelect installs a callback invoked when a row is clicked. May be nil.
func (o *Outliner) OnSelect(fn func(SelectionEvent)) {
	o.onSelect = fn
}

// SetEventSink installs an event bridge that receives selection events after
// the OnSelect callback. May be nil.
func (o *Outliner) SetEventSink(sink EventSink) {
	o.sink = sink
}

// SetDebugMode enables per-pass timing and structure warnings on stderr.
func (o *Outliner) SetDebugMode(debug bool) {
	o.debug = debug
}

// --- Geometry queries ---

// ContentSize returns the extent of the laid-out content in pixels, valid
// after the first Update or Rebuild. Hosts size scrollbars from it.
func (o *Outliner) ContentSize() (w, h float64) {
	return o.contentW, o.contentH
}

// Root returns the hidden root of the layout tree. Group headers are its
// children. The tree must not be mutated by the caller.
func (o *Outliner) Root() *Node {
	return o.root
}

// ItemRect returns the content-space rectangle of the item's row, spanning
// from its toggle gutter to the end of its label. ok is false when the item
// is not cached or is hidden inside a collapsed ancestor, in which case the
// cached geometry would be stale.
func (o *Outliner) ItemRect(item Item) (r Rect, ok bool) {
	n := o.cache.items[item]
	if n == nil {
		return Rect{}, false
	}
	visited := make(map[*Node]struct{})
	for p := n.Parent; p != nil; p = p.Parent {
		if _, seen := visited[p]; seen {
			return Rect{}, false
		}
		visited[p] = struct{}{}
		if !p.Expanded {
			return Rect{}, false
		}
	}
	x := o.indentWidth * float64(n.Column)
	return Rect{X: x, Y: n.Row, Width: n.Width - x, Height: n.rowH}, true
}

// computeCullBox derives the content-space cull rectangle from the current
// viewport, scroll, and content extents.
func (o *Outliner) computeCullBox() Rect {
	return cullBounds(o.viewport, o.scrollX, o.scrollY, o.contentW, o.contentH, o.cullMargin)
}

// toScreen converts a content-space rectangle to screen space under the
// current scroll offset and viewport origin.
func (o *Outliner) toScreen(r Rect) Rect {
	return r.Translate(
		o.viewport.X-o.scrollX*scrollRange(o.contentW, o.viewport.Width),
		o.viewport.Y-o.scrollY*scrollRange(o.contentH, o.viewport.Height),
	)
}
