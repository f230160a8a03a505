package arbor

import "errors"

// ErrStructuralCycle reports that a parent chain loops back on itself. The
// layout tree is corrupt at that point; callers should discard the affected
// walk and force a full rebuild.
var ErrStructuralCycle = errors.New("arbor: layout tree parent chain contains a cycle")

// Node is one entry of the shadow layout tree: the engine's record of one
// external object's position, size, and expansion state. Nodes are created
// and reattached by the cache during resync; geometry is derived state,
// recomputed by layout passes. A single flat struct is used for item rows,
// group header rows, and the hidden root alike.
type Node struct {
	// Item is the external identity, nil for synthetic nodes (the hidden
	// root and group header rows).
	Item Item
	// Name is the display label, refreshed from the source at resync.
	// Empty for the hidden root.
	Name string

	// Layout state. Column is the indent depth; Row is the vertical offset
	// in accumulated height units, not a line index. Height is own plus
	// expanded descendants immediately after a layout pass and stale the
	// instant the structure or any ancestor's expansion changes.
	Column int
	Row    float64
	Width  float64
	Height float64

	// Expanded controls whether children are laid out and rendered. Sticky
	// across resyncs.
	Expanded bool

	Parent   *Node
	children []*Node

	// Source state cached at resync so layout passes never touch the source.
	itemW, itemH   float64
	lastChildCount int

	// rowH is the node's own row height from the last layout pass. Height
	// accumulates the subtree, so the renderer reads rowH for the row rect.
	rowH float64

	// used is the transient marker for the cache's mark-and-sweep pass.
	used bool

	// Preferred widget references. The renderer hands these to the pools so
	// a row keeps its widget instance across frames; they are dropped (not
	// destroyed) when the node leaves the cull box.
	rowWidget    RowWidget
	toggleWidget ToggleWidget
}

// --- Tree manipulation ---

// attachChild appends child to this node's children and sets its parent
// back-reference. The cache owns tree building; there is no public mutation
// surface.
func (n *Node) attachChild(child *Node) {
	if child == nil {
		panic("arbor: cannot attach nil child")
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// clearChildren detaches all children. The backing array is nilled out so it
// retains no dangling pointers before reuse.
func (n *Node) clearChildren() {
	for i, child := range n.children {
		if child.Parent == n {
			child.Parent = nil
		}
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list in display order. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// findRoot walks parent links to the top of the tree. The walk keeps a
// visited set and fails with ErrStructuralCycle on a revisit; a hop bound
// alone would mistake a short cycle for a deep chain.
func (n *Node) findRoot() (*Node, error) {
	visited := make(map[*Node]struct{})
	cur := n
	for {
		if _, seen := visited[cur]; seen {
			return nil, ErrStructuralCycle
		}
		visited[cur] = struct{}{}
		if cur.Parent == nil {
			return cur, nil
		}
		cur = cur.Parent
	}
}

// --- Dimension computation ---

// layoutMetrics threads shared pass state through one computeLayout
// recursion: the indent width in, the maximum row width out, and a visit
// counter for the pass stats.
type layoutMetrics struct {
	indentWidth float64
	maxWidth    float64
	visited     int
}

// computeLayout recomputes geometry for this node and its expanded
// descendants, returning the subtree height. depth is the indent level of
// this node's children (synthetic group nodes do not add an indent level,
// item nodes do). rowFloor enables partial passes: a child whose cached band
// of rows ends at or above rowFloor keeps its cached Height and is not
// visited, so toggling one node re-lays-out only the subtrees that reach
// rows at or after it. Ancestors of the toggle point always straddle the
// floor and are recomputed. Pass a negative rowFloor for a full pass.
//
// Row, Column, and Width are reassigned for every child on every pass; only
// the recursion is skipped by rowFloor.
func (n *Node) computeLayout(depth int, rowFloor float64, m *layoutMetrics) float64 {
	m.visited++

	var ownH float64
	if n.Item != nil || n.Name != "" {
		ownH = n.itemH
	}
	n.rowH = ownH

	if !n.Expanded || len(n.children) == 0 {
		n.Height = ownH
		return n.Height
	}

	cursor := n.Row + ownH
	childDepth := depth
	if n.Item != nil {
		childDepth++
	}

	total := ownH
	for _, child := range n.children {
		child.Row = cursor
		child.Column = childDepth
		child.Width = m.indentWidth*float64(childDepth+1) + child.itemW
		if child.Width > m.maxWidth {
			m.maxWidth = child.Width
		}

		var h float64
		if cursor+child.Height <= rowFloor {
			h = child.Height
		} else {
			h = child.computeLayout(childDepth, rowFloor, m)
		}
		total += h
		cursor += h
	}

	n.Height = total
	return n.Height
}
