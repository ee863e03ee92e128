package marionette

import (
	"cmp"
	"fmt"
	"slices"
)

// NodeKind is the renderable shape of a node, resolved once by Prepare.
type NodeKind uint8

const (
	KindNone         NodeKind = iota // not drawn
	KindTexturedMesh                 // a textured part
	KindComposite                    // children drawn offscreen, then as one unit
)

func (k NodeKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindTexturedMesh:
		return "TexturedMesh"
	case KindComposite:
		return "Composite"
	default:
		return fmt.Sprintf("NodeKind(%d)", k)
	}
}

// TexturedMeshRenderCtx locates a part's mesh inside the shared buffers.
type TexturedMeshRenderCtx struct {
	IndexOffset uint16
	VertOffset  uint16
	IndexLen    int
	VertLen     int
}

// CompositeRenderCtx lists the drawable children of a composite, re-sorted
// by z every frame.
type CompositeRenderCtx struct {
	Children []NodeID

	preOrder []NodeID // Children in tree order, the tie-break for each re-sort
}

// NodeRenderCtx is the per-node render metadata. Every node has one, so
// renderers can read absolute transforms of non-drawable nodes too.
type NodeRenderCtx struct {
	ID       NodeID
	Kind     NodeKind
	Enabled  bool // the node and all its ancestors are enabled
	Absolute Mat4
	ZSort    float32

	TexturedMesh *TexturedMeshRenderCtx // set for KindTexturedMesh
	Composite    *CompositeRenderCtx    // set for KindComposite
}

// Viewport is the target size requested by the embedding application.
type Viewport struct {
	Width  int
	Height int
}

// RenderCtx is everything a renderer needs to draw a prepared puppet.
type RenderCtx struct {
	VertexBuffers VertexBuffers

	nodes    []NodeRenderCtx // tree pre-order
	bySlot   map[NodeID]int
	parents  []int // index into nodes, -1 for the root
	roots    []NodeID
	rootsPre []NodeID // roots in tree order, the tie-break for each re-sort
	parts    []int // indices of KindTexturedMesh nodes
	deformTm []Vec2

	dirtyLo, dirtyHi int

	viewport   Viewport
	clearDirty bool
}

// newRenderCtx resolves node kinds, lays out the shared buffers in initial
// draw order and records per-node render metadata.
func newRenderCtx(nodes *NodeTree, w *World) *RenderCtx {
	rc := &RenderCtx{
		VertexBuffers: newVertexBuffers(),
		bySlot:        make(map[NodeID]int, nodes.Len()),
	}

	order := nodes.PreOrder(nodes.Root().ID)
	rc.nodes = make([]NodeRenderCtx, len(order))
	rc.parents = make([]int, len(order))
	for i, id := range order {
		rc.bySlot[id] = i
		rc.nodes[i] = NodeRenderCtx{ID: id, Kind: resolveKind(w, id), Enabled: true}
		rc.parents[i] = -1
		if p, ok := nodes.Parent(id); ok {
			rc.parents[i] = rc.bySlot[p.ID]
		}
	}

	isComposite := func(id NodeID) bool { return rc.node(id).Kind == KindComposite }
	for _, id := range nodes.ZSorted(nodes.Root().ID, true, isComposite) {
		nc := rc.node(id)
		switch nc.Kind {
		case KindTexturedMesh:
			rc.pushPart(w, nc)
			rc.roots = append(rc.roots, id)
		case KindComposite:
			nc.Composite = &CompositeRenderCtx{}
			for _, child := range nodes.ZSorted(id, true, isComposite) {
				if child == id {
					continue
				}
				cc := rc.node(child)
				switch cc.Kind {
				case KindTexturedMesh:
					rc.pushPart(w, cc)
					nc.Composite.Children = append(nc.Composite.Children, child)
				case KindComposite:
					Logger().Warn("nested composite is not drawn", "node", child, "composite", id)
				}
			}
			rc.roots = append(rc.roots, id)
		}
	}

	for _, id := range rc.roots {
		checkMasks(rc, w, id)
		if c := rc.node(id).Composite; c != nil {
			for _, child := range c.Children {
				checkMasks(rc, w, child)
			}
		}
	}
	byTree := func(a, b NodeID) int { return cmp.Compare(rc.bySlot[a], rc.bySlot[b]) }
	rc.rootsPre = slices.SortedFunc(slices.Values(rc.roots), byTree)
	for _, id := range rc.roots {
		if c := rc.node(id).Composite; c != nil {
			c.preOrder = slices.SortedFunc(slices.Values(c.Children), byTree)
		}
	}
	rc.markDirty(0, len(rc.VertexBuffers.Deforms))
	return rc
}

// resolveKind applies the drawable resolution rule. Conflicting or
// incomplete drawables are logged and resolved to the safest kind.
func resolveKind(w *World, id NodeID) NodeKind {
	if !DrawableComponent.Has(w, id) {
		return KindNone
	}
	tm := TexturedMeshComponent.Has(w, id)
	comp := CompositeComponent.Has(w, id)
	switch {
	case tm && comp:
		Logger().Warn("drawable has both TexturedMesh and Composite, drawing as TexturedMesh", "node", id)
		fallthrough
	case tm:
		if !MeshComponent.Has(w, id) {
			Logger().Warn("TexturedMesh drawable has no Mesh, skipping", "node", id)
			return KindNone
		}
		return KindTexturedMesh
	case comp:
		return KindComposite
	}
	Logger().Warn("drawable has neither TexturedMesh nor Composite, skipping", "node", id)
	return KindNone
}

func checkMasks(rc *RenderCtx, w *World, id NodeID) {
	d := DrawableComponent.mustGet(w, id)
	if d.Masks == nil {
		return
	}
	for _, m := range d.Masks.Masks {
		nc, ok := rc.NodeCtx(m.Source)
		if !ok || nc.Kind == KindNone {
			Logger().Warn("mask source is not drawable", "node", id, "mask", m.Source)
		}
	}
}

func (rc *RenderCtx) node(id NodeID) *NodeRenderCtx {
	return &rc.nodes[rc.bySlot[id]]
}

func (rc *RenderCtx) pushPart(w *World, nc *NodeRenderCtx) {
	mesh := MeshComponent.mustGet(w, nc.ID)
	io, vo := rc.VertexBuffers.push(nc.ID, mesh)
	nc.TexturedMesh = &TexturedMeshRenderCtx{
		IndexOffset: io,
		VertOffset:  vo,
		IndexLen:    len(mesh.Indices),
		VertLen:     len(mesh.Vertices),
	}
	rc.parts = append(rc.parts, rc.bySlot[nc.ID])
}

// NodeCtx returns the render metadata of id.
func (rc *RenderCtx) NodeCtx(id NodeID) (*NodeRenderCtx, bool) {
	i, ok := rc.bySlot[id]
	if !ok {
		return nil, false
	}
	return &rc.nodes[i], true
}

// RootDrawables returns the top-level drawables in draw order, back to
// front. Composite children are reached through their composite.
func (rc *RenderCtx) RootDrawables() []NodeID {
	return rc.roots
}

// Viewport returns the last size set with Resize.
func (rc *RenderCtx) Viewport() Viewport {
	return rc.viewport
}

// TakeClear reports whether Clear was called since the last TakeClear.
func (rc *RenderCtx) TakeClear() bool {
	c := rc.clearDirty
	rc.clearDirty = false
	return c
}

// TakeDeformDirty returns the span [lo, hi) of VertexBuffers.Deforms that
// changed since the last call and resets it. ok is false when nothing
// changed.
func (rc *RenderCtx) TakeDeformDirty() (lo, hi int, ok bool) {
	lo, hi = rc.dirtyLo, rc.dirtyHi
	rc.dirtyLo, rc.dirtyHi = 0, 0
	return lo, hi, hi > lo
}

func (rc *RenderCtx) markDirty(lo, hi int) {
	if rc.dirtyHi <= rc.dirtyLo {
		rc.dirtyLo, rc.dirtyHi = lo, hi
		return
	}
	rc.dirtyLo = min(rc.dirtyLo, lo)
	rc.dirtyHi = max(rc.dirtyHi, hi)
}

// update refreshes transforms, enabled state, draw order and the deform
// buffer from the current frame's component values.
func (rc *RenderCtx) update(nodes *NodeTree, w *World) {
	for i := range rc.nodes {
		nc := &rc.nodes[i]
		nc.Absolute = TransformStoreComponent.mustGet(w, nc.ID).Absolute
		nc.ZSort = ZSortComponent.mustGet(w, nc.ID).Value
		nc.Enabled = nodes.Get(nc.ID).Enabled
		if p := rc.parents[i]; p >= 0 {
			nc.Enabled = nc.Enabled && rc.nodes[p].Enabled
		}
	}

	for _, i := range rc.parts {
		nc := &rc.nodes[i]
		tm := nc.TexturedMesh
		if cap(rc.deformTm) < tm.VertLen {
			rc.deformTm = make([]Vec2, tm.VertLen)
		}
		tmp := rc.deformTm[:tm.VertLen]
		DeformStackComponent.mustGet(w, nc.ID).Combine(tmp)

		lo := int(tm.VertOffset)
		dst := rc.VertexBuffers.Deforms[lo : lo+tm.VertLen]
		if !slices.Equal(dst, tmp) {
			copy(dst, tmp)
			rc.markDirty(lo, lo+tm.VertLen)
		}
	}

	byZ := func(a, b NodeID) int {
		return cmp.Compare(rc.node(b).ZSort, rc.node(a).ZSort)
	}
	// Each frame sorts from tree order, so equal z values never keep an
	// order left over from an earlier frame.
	rc.roots = append(rc.roots[:0], rc.rootsPre...)
	slices.SortStableFunc(rc.roots, byZ)
	for _, id := range rc.roots {
		if c := rc.node(id).Composite; c != nil {
			c.Children = append(c.Children[:0], c.preOrder...)
			slices.SortStableFunc(c.Children, byZ)
		}
	}
}
