package arbor

// changeDetector decides, once per tick, whether the external tree drifted
// from the layout tree since the last resync. It compares cheap counts
// instead of hashing the whole structure: the top-level group count, each
// group's item count, and each cached item's live child count against the
// count recorded at resync, plus a validity probe so destroyed identities
// trigger a resync even when no count moved.
//
// It is a deliberate approximation. Replacing one child with another between
// polls leaves every count equal and goes undetected, as do renames,
// reorders, and activity flips with no structural change. Those surface on
// the next detected change, or immediately via Rebuild.
type changeDetector struct {
	groupCount int
	groupItems []int
}

// snapshot records the detector baseline from the layout tree as resync left
// it. Group nodes carry the raw item count of their group, so the baseline
// matches what needsResync reads off the source.
func (d *changeDetector) snapshot(root *Node) {
	d.groupCount = len(root.children)
	d.groupItems = d.groupItems[:0]
	for _, gn := range root.children {
		d.groupItems = append(d.groupItems, gn.lastChildCount)
	}
}

// needsResync polls the source against the baseline. It touches every
// cached item once (Valid plus ChildCount), no recursion into the external
// tree, so steady-state ticks stay cheap even for large hierarchies.
func (d *changeDetector) needsResync(src TreeSource, cache *nodeCache) bool {
	roots := src.Roots()
	if len(roots) != d.groupCount {
		return true
	}
	for i, g := range roots {
		if len(g.Items) != d.groupItems[i] {
			return true
		}
	}
	for item, n := range cache.items {
		if !src.Valid(item) {
			return true
		}
		if src.ChildCount(item) != n.lastChildCount {
			return true
		}
	}
	return false
}
