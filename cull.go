package arbor

// cullBounds returns the content-space rectangle of rows worth
// materializing: the viewport translated by the current scroll offset and
// expanded by margin on all sides. The margin buys slack so small scroll
// deltas reveal already-built widgets instead of forcing a pass per pixel.
//
// Scroll offsets are normalized to [0, 1] over the scrollable range. Content
// no larger than the viewport has no scrollable range, so the offset on that
// axis pins to zero.
func cullBounds(viewport Rect, scrollX, scrollY, contentW, contentH, margin float64) Rect {
	box := Rect{
		X:      scrollX * scrollRange(contentW, viewport.Width),
		Y:      scrollY * scrollRange(contentH, viewport.Height),
		Width:  viewport.Width,
		Height: viewport.Height,
	}
	return box.Expand(margin)
}

// scrollRange returns the scrollable pixel distance on one axis, never
// negative.
func scrollRange(content, view float64) float64 {
	if content <= view {
		return 0
	}
	return content - view
}
