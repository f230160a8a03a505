package arbor

import "time"

// render materializes widgets for every row intersecting the cull box. One
// pass: release every widget back to the pools, then walk the expanded part
// of the tree and acquire a widget for each hit row, preferring the node's
// previous instance so rows that stayed visible keep their widget identity.
// Rows that left the box simply do not reacquire; their instances stay free
// for newly revealed rows. Nothing is destroyed.
//
// Without a factory the pass is a no-op: the engine still tracks structure
// and geometry, it just materializes nothing.
func (o *Outliner) render() {
	o.cullValid = true
	if o.factory == nil {
		return
	}
	var t0 time.Time
	if o.debug {
		t0 = time.Now()
		o.stats.renderVisited = 0
	}

	o.rowPool.ReleaseAll()
	o.togglePool.ReleaseAll()

	for _, gn := range o.root.children {
		o.renderNode(gn)
	}

	if o.debug {
		o.stats.renderTime = time.Since(t0)
		o.stats.rowsLive = o.rowPool.UsedCount()
		o.stats.togglesLive = o.togglePool.UsedCount()
		o.debugLog()
	}
}

// renderNode materializes one node's row, then recurses into children only
// when expanded. Collapsed subtrees cost nothing here, same as in layout.
func (o *Outliner) renderNode(n *Node) {
	if o.debug {
		o.stats.renderVisited++
	}
	if n.rowH > 0 {
		o.renderRow(n)
	}
	if !n.Expanded {
		return
	}
	for _, child := range n.children {
		o.renderNode(child)
	}
}

// renderRow acquires and positions the widgets for one row: a toggle in the
// indent gutter when the node has children, and the label row beside it.
// Each piece is culled separately; a wide label can be visible while its
// toggle is scrolled off the left edge.
func (o *Outliner) renderRow(n *Node) {
	if len(n.children) > 0 {
		toggle := Rect{
			X:      o.indentWidth * float64(n.Column),
			Y:      n.Row,
			Width:  o.indentWidth,
			Height: n.rowH,
		}
		if toggle.Intersects(o.cullBox) {
			w := o.togglePool.Acquire(o.factory.NewToggle, n.toggleWidget)
			n.toggleWidget = w
			w.SetFrame(o.toScreen(toggle))
			w.SetExpanded(n.Expanded)
			w.SetOnClick(func() { o.toggleNode(n) })
		} else {
			n.toggleWidget = nil
		}
	} else {
		n.toggleWidget = nil
	}

	labelX := o.indentWidth * float64(n.Column+1)
	label := Rect{X: labelX, Y: n.Row, Width: n.Width - labelX, Height: n.rowH}
	if label.Intersects(o.cullBox) {
		w := o.rowPool.Acquire(o.factory.NewRow, n.rowWidget)
		n.rowWidget = w
		w.SetFrame(o.toScreen(label))
		active := true
		if n.Item != nil {
			active = o.src.Active(n.Item)
		}
		w.SetLabel(n.Name, active)
		w.SetSelected(n == o.selected)
		w.SetOnClick(func() { o.selectNode(n) })
	} else {
		n.rowWidget = nil
	}
}
