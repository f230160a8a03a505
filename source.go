package arbor

// Item is an opaque handle to one node of the host's object tree. Handles
// must be comparable (they key the outliner's node cache) and stable for the
// lifetime of the underlying object: the same object must yield the same
// handle on every walk. Pointers, integer IDs, and small value types all
// qualify.
type Item = any

// Group is one top-level bucket of the external tree, e.g. one scene or one
// world. The outliner shows a header row per group with the group's items
// nested under it.
type Group struct {
	// Label is the header text. It also identifies the group across
	// refreshes, so collapsing a group survives a resync as long as the
	// label is stable.
	Label string
	// Items are the group's top-level objects in display order.
	Items []Item
}

// TreeSource exposes a live external object tree to the outliner. The
// outliner never stores Items beyond its own cache and re-walks the source
// whenever the change detector reports a structural difference.
//
// All methods are called from the outliner's update path only; a source may
// rebuild internal indexes inside Roots and rely on them in the per-item
// calls until Roots is called again.
type TreeSource interface {
	// Roots enumerates the top-level groups in display order.
	Roots() []Group

	// Children returns item's direct children in display order. The order
	// must be stable across calls unless the tree genuinely changed.
	Children(item Item) []Item

	// DisplayName returns the label text for item.
	DisplayName(item Item) string

	// Active reports whether item is enabled in the host world. Inactive
	// items still appear in the outliner, drawn dimmed.
	Active(item Item) bool

	// ChildCount returns the number of direct children of item. Called every
	// tick by the change detector, so it should be cheap, O(1) where the
	// host allows it.
	ChildCount(item Item) int

	// ItemSize returns item's preferred row size in pixels. item may be nil:
	// group header rows have no backing object, and the source must answer
	// with its default row size.
	ItemSize(item Item) (w, h float64)

	// Valid reports whether item still refers to a live object. A destroyed
	// object is a normal structural change: the detector notices and the
	// next resync evicts it.
	Valid(item Item) bool

	// Ignored reports whether item is marked to be hidden from the outliner.
	// Ignored items are excluded from the walk entirely, including their
	// descendants.
	Ignored(item Item) bool
}

// SelectionEvent is emitted when a row's label is clicked.
type SelectionEvent struct {
	// Item is the external identity of the clicked row, or nil when a group
	// header row was clicked.
	Item Item
	// Name is the row's display label at the time of the click.
	Name string
}

// EventSink receives selection events for forwarding into another event
// system. Set on an Outliner via SetEventSink; the ecs submodule provides a
// donburi-backed implementation.
type EventSink interface {
	EmitSelection(event SelectionEvent)
}
