package arbor

// Pooled is the constraint on widget handles managed by a Pool. A pooled
// widget is deactivated when free and reactivated on acquire. The pool
// tracks handles in sets, so implementations must be comparable at runtime;
// in practice that means pointer receivers, which is what any stateful
// widget uses anyway.
type Pooled interface {
	SetActive(active bool)
}

// RowWidget is one pooled label row. The renderer positions it, feeds it the
// node's display state, and wires its click handler to emit a selection
// event. Implementations draw themselves however the host likes; widgets.go
// ships a default Ebitengine implementation.
type RowWidget interface {
	// SetActive shows or hides the widget. Called by the pool.
	SetActive(active bool)
	// SetFrame positions the widget in screen space.
	SetFrame(frame Rect)
	// SetLabel sets the display text. active=false means the backing object
	// is disabled in the host world and the row should draw dimmed.
	SetLabel(label string, active bool)
	// SetSelected toggles the selection highlight.
	SetSelected(selected bool)
	// SetOnClick installs the click handler. onClick may be nil.
	SetOnClick(onClick func())
}

// ToggleWidget is one pooled expand/collapse toggle. Only rows with children
// get one.
type ToggleWidget interface {
	SetActive(active bool)
	SetFrame(frame Rect)
	// SetExpanded flips the glyph between the expanded and collapsed state.
	SetExpanded(expanded bool)
	SetOnClick(onClick func())
}

// WidgetFactory instantiates widgets when the pools run dry. Until a factory
// is set on the Outliner the render pass is a no-op.
type WidgetFactory interface {
	NewRow() RowWidget
	NewToggle() ToggleWidget
}
