package arbor

// nodeCache maps external identities to their layout nodes so node instances
// survive across resyncs. Items are keyed by identity, group headers by
// label; both keys must be comparable. Survival is what makes per-node state
// (expansion, widget hints) sticky while the external tree churns around it.
type nodeCache struct {
	items  map[Item]*Node
	groups map[string]*Node
}

// resync rebuilds the layout tree under root from a fresh walk of the
// source. One mark-and-sweep pass: every cached node starts unmarked, nodes
// seen during the walk are reattached and marked, and whatever stays
// unmarked at the end is evicted. Expansion state is the only thing reuse
// preserves; names, sizes, and child lists are refreshed unconditionally,
// and all geometry is recomputed by the layout pass that follows.
//
// Nodes for unseen items are created collapsed or expanded per
// expandDefault. Group headers always start expanded.
func (c *nodeCache) resync(src TreeSource, root *Node, expandDefault bool) {
	if c.items == nil {
		c.items = make(map[Item]*Node)
		c.groups = make(map[string]*Node)
	}
	for _, n := range c.items {
		n.used = false
	}
	for _, n := range c.groups {
		n.used = false
	}

	root.clearChildren()
	root.Expanded = true

	for _, g := range src.Roots() {
		gn := c.groups[g.Label]
		switch {
		case gn == nil:
			gn = &Node{Expanded: true}
			c.groups[g.Label] = gn
		case gn.used:
			// Duplicate label in one snapshot. The first occurrence owns
			// the cache entry; later ones get a throwaway node so two
			// visible headers never share expansion state.
			gn = &Node{Expanded: true}
		}
		gn.used = true
		gn.Name = g.Label
		gn.itemW, gn.itemH = src.ItemSize(nil)
		gn.lastChildCount = len(g.Items)
		gn.clearChildren()
		root.attachChild(gn)

		for _, item := range g.Items {
			c.syncItem(src, gn, item, expandDefault)
		}
	}

	c.sweep()
}

// syncItem reattaches one item and recurses into its children. Nil, dead,
// and ignored items are skipped along with their whole subtrees, which is
// also how destroyed objects leave the tree: they stop being seen, stay
// unmarked, and sweep collects them.
func (c *nodeCache) syncItem(src TreeSource, parent *Node, item Item, expandDefault bool) {
	if item == nil || !src.Valid(item) || src.Ignored(item) {
		return
	}
	n := c.items[item]
	if n == nil {
		n = &Node{Item: item, Expanded: expandDefault}
		c.items[item] = n
	} else if n.used {
		// The same identity twice in one snapshot. Attaching the node a
		// second time would corrupt the tree, so later occurrences are
		// dropped.
		return
	}
	n.used = true
	n.Name = src.DisplayName(item)
	n.itemW, n.itemH = src.ItemSize(item)
	n.lastChildCount = src.ChildCount(item)
	n.clearChildren()
	parent.attachChild(n)

	for _, child := range src.Children(item) {
		c.syncItem(src, n, child, expandDefault)
	}
}

// sweep evicts every cached node the current pass did not mark. Eviction
// drops the cache's reference and clears the node's links and widget hints;
// the node itself is garbage collected once the caller lets go of it.
func (c *nodeCache) sweep() {
	for item, n := range c.items {
		if !n.used {
			c.evict(n)
			delete(c.items, item)
		}
	}
	for label, n := range c.groups {
		if !n.used {
			c.evict(n)
			delete(c.groups, label)
		}
	}
}

func (c *nodeCache) evict(n *Node) {
	n.Parent = nil
	n.clearChildren()
	n.rowWidget = nil
	n.toggleWidget = nil
}

// size returns the number of cached nodes, items and group headers combined.
func (c *nodeCache) size() int {
	return len(c.items) + len(c.groups)
}
