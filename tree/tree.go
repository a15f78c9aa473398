// Package tree implements a generic collapsible hierarchy: nodes are
// either leaves or containers with a folded/unfolded children_visible
// flag, addressed by a path of child indices from the root.
package tree

// Path is a sequence of child indices from the root to a node.
type Path []int

func clonePath(p Path) Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Node is either a leaf or a container of child Nodes. A container's
// children are flattened only while visible is true.
type Node struct {
	id       string
	children []*Node
	leaf     bool
	visible  bool
}

// NewLeaf builds a leaf node carrying id.
func NewLeaf(id string) *Node {
	return &Node{id: id, leaf: true}
}

// NewNonLeaf builds a container node over children, initially
// unfolded (visible).
func NewNonLeaf(id string, children []*Node) *Node {
	return &Node{id: id, children: children, visible: true}
}

// ID returns the node's identifier.
func (n *Node) ID() string { return n.id }

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n.leaf }

// Visible reports whether a container's children are currently
// flattened. Always false for a leaf, matching the invariant that a
// leaf always flattens to a single Folded row.
func (n *Node) Visible() bool { return !n.leaf && n.visible }

// Children returns a container's children, or nil for a leaf.
func (n *Node) Children() []*Node { return n.children }

// Kind discriminates a flattened row: Folded for a collapsed
// container or any leaf, Unfolded for an expanded container.
type Kind int

const (
	Folded Kind = iota
	Unfolded
)

// Row is one flattened, renderable line of the tree.
type Row struct {
	Kind Kind
	ID   string
	Path Path
}

// Get walks path from n and returns the node there, or nil if any
// segment doesn't resolve (including walking through a leaf).
func (n *Node) Get(path Path) *Node {
	cur := n
	for _, idx := range path {
		if cur.leaf || idx < 0 || idx >= len(cur.children) {
			return nil
		}
		cur = cur.children[idx]
	}
	return cur
}

// Toggle flips the visible flag of the container at path. It is a
// no-op on leaves or unresolved paths.
func (n *Node) Toggle(path Path) {
	node := n.Get(path)
	if node == nil || node.leaf {
		return
	}
	node.visible = !node.visible
}

// GetWaypoints returns the id of each node visited while descending
// path from the root, one per path segment consumed: the id is
// recorded before descending into its child, so the final node
// landed on is not itself included unless a leaf cuts the walk short.
func (n *Node) GetWaypoints(path Path) []string {
	var ids []string
	cur := n
	for _, idx := range path {
		ids = append(ids, cur.id)
		if cur.leaf {
			return ids
		}
		if idx < 0 || idx >= len(cur.children) {
			return ids
		}
		cur = cur.children[idx]
	}
	return ids
}

// FlattenVisibles walks the tree depth-first, emitting one Row per
// visible line: an Unfolded row followed by its children's rows for
// an expanded container, or a single Folded row for a collapsed
// container or any leaf.
func (n *Node) FlattenVisibles() []Row {
	var rows []Row
	flattenInto(n, Path{}, &rows)
	return rows
}

func flattenInto(n *Node, path Path, rows *[]Row) {
	if n.leaf {
		*rows = append(*rows, Row{Kind: Folded, ID: n.id, Path: clonePath(path)})
		return
	}
	if !n.visible {
		*rows = append(*rows, Row{Kind: Folded, ID: n.id, Path: clonePath(path)})
		return
	}
	*rows = append(*rows, Row{Kind: Unfolded, ID: n.id, Path: clonePath(path)})
	for i, child := range n.children {
		flattenInto(child, append(clonePath(path), i), rows)
	}
}
