package marionette

import (
	"fmt"
	"slices"
	"strings"
)

// Node is one element of a puppet's node tree. Nodes are created by the
// loader and never destroyed during a session. Capabilities such as drawing
// or physics are attached separately as components in a [World].
type Node struct {
	ID      NodeID
	Name    string
	Enabled bool

	// ZSort is the authored draw-order base. The effective value of a node is
	// the sum over itself and its ancestors.
	ZSort float32

	// TransOffset is the authored transform relative to the parent.
	TransOffset TransformOffset

	// LockToRoot makes the node's transform relative to the root instead of
	// its parent.
	LockToRoot bool
}

// NewNode returns an enabled node with an identity transform offset.
func NewNode(id NodeID, name string) Node {
	return Node{
		ID:          id,
		Name:        name,
		Enabled:     true,
		TransOffset: NewTransformOffset(),
	}
}

// arenaNode is a slot in the tree arena. Links are slot indices.
type arenaNode struct {
	node     Node
	parent   int // -1 for the root
	children []int
}

// NodeTree is an arena-backed tree of nodes with O(1) lookup by ID.
// Slot 0 always holds the root.
type NodeTree struct {
	arena []*arenaNode
	index map[NodeID]int
}

// NewNodeTree creates a tree holding only root.
func NewNodeTree(root Node) *NodeTree {
	t := &NodeTree{index: make(map[NodeID]int)}
	t.arena = append(t.arena, &arenaNode{node: root, parent: -1})
	t.index[root.ID] = 0
	return t
}

// Add appends node as the last child of parent.
// Panics if node.ID is already present or parent is unknown.
func (t *NodeTree) Add(parent NodeID, node Node) {
	if _, dup := t.index[node.ID]; dup {
		panic(fmt.Sprintf("marionette: duplicate node id %d (%q)", node.ID, node.Name))
	}
	p, ok := t.index[parent]
	if !ok {
		panic(fmt.Sprintf("marionette: parent %d of node %d (%q) does not exist", parent, node.ID, node.Name))
	}
	slot := len(t.arena)
	t.arena = append(t.arena, &arenaNode{node: node, parent: p})
	t.arena[p].children = append(t.arena[p].children, slot)
	t.index[node.ID] = slot
}

// Len returns the number of nodes including the root.
func (t *NodeTree) Len() int {
	return len(t.arena)
}

// Root returns the root node.
func (t *NodeTree) Root() *Node {
	return &t.arena[0].node
}

// Get returns the node with the given id, or nil if it is unknown.
// The returned pointer stays valid for the life of the tree.
func (t *NodeTree) Get(id NodeID) *Node {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	return &t.arena[slot].node
}

// Has reports whether id is in the tree.
func (t *NodeTree) Has(id NodeID) bool {
	_, ok := t.index[id]
	return ok
}

// Parent returns the parent of id. ok is false for the root and for
// unknown ids.
func (t *NodeTree) Parent(id NodeID) (parent *Node, ok bool) {
	slot, found := t.index[id]
	if !found || t.arena[slot].parent < 0 {
		return nil, false
	}
	return &t.arena[t.arena[slot].parent].node, true
}

// Children returns the ids of the direct children of id in insertion order.
func (t *NodeTree) Children(id NodeID) []NodeID {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	kids := t.arena[slot].children
	out := make([]NodeID, len(kids))
	for i, k := range kids {
		out[i] = t.arena[k].node.ID
	}
	return out
}

// Ancestors returns the ancestors of id, nearest first.
func (t *NodeTree) Ancestors(id NodeID) []NodeID {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	var out []NodeID
	for p := t.arena[slot].parent; p >= 0; p = t.arena[p].parent {
		out = append(out, t.arena[p].node.ID)
	}
	return out
}

// PreOrder returns id followed by its descendants in depth-first pre-order.
// A parent always precedes its descendants.
func (t *NodeTree) PreOrder(id NodeID) []NodeID {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, 0, len(t.arena))
	t.walk(slot, func(s int) bool {
		out = append(out, t.arena[s].node.ID)
		return true
	})
	return out
}

// walk visits slot and its subtree in pre-order. Returning false from fn
// skips the children of the visited slot.
func (t *NodeTree) walk(slot int, fn func(slot int) bool) {
	stack := []int{slot}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(s) {
			continue
		}
		kids := t.arena[s].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// zsortEntry pairs a node with its accumulated z-sort value and its
// pre-order encounter index used as tie-break.
type zsortEntry struct {
	id    NodeID
	value float32
	order int
}

// ZSorted returns the subtree rooted at id ordered by descending summed
// z-sort. Sums run over ancestors inside the subtree only. Ties keep
// pre-order encounter order. When skipCompositeChildren is set, a node for
// which isComposite returns true is placed as a unit and its descendants are
// left out.
func (t *NodeTree) ZSorted(id NodeID, skipCompositeChildren bool, isComposite func(NodeID) bool) []NodeID {
	slot, ok := t.index[id]
	if !ok {
		return nil
	}

	sums := make(map[int]float32, len(t.arena))
	var entries []zsortEntry
	t.walk(slot, func(s int) bool {
		an := t.arena[s]
		sum := an.node.ZSort
		if s != slot {
			sum += sums[an.parent]
		}
		sums[s] = sum
		entries = append(entries, zsortEntry{id: an.node.ID, value: sum, order: len(entries)})
		if skipCompositeChildren && s != slot && isComposite != nil && isComposite(an.node.ID) {
			return false
		}
		return true
	})

	slices.SortStableFunc(entries, compareZSortDesc)

	out := make([]NodeID, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}

func compareZSortDesc(a, b zsortEntry) int {
	switch {
	case a.value > b.value:
		return -1
	case a.value < b.value:
		return 1
	}
	return a.order - b.order
}

// String renders the tree as an indented outline, one node per line.
func (t *NodeTree) String() string {
	var sb strings.Builder
	depth := make(map[int]int, len(t.arena))
	t.walk(0, func(s int) bool {
		an := t.arena[s]
		d := 0
		if an.parent >= 0 {
			d = depth[an.parent] + 1
		}
		depth[s] = d
		sb.WriteString(strings.Repeat("  ", d))
		state := ""
		if !an.node.Enabled {
			state = " (disabled)"
		}
		fmt.Fprintf(&sb, "%s [%d] z=%g%s\n", an.node.Name, an.node.ID, an.node.ZSort, state)
		return true
	})
	return sb.String()
}
