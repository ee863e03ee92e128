package marionette

import (
	"cmp"
	"fmt"
	"slices"
)

// DeformSourceKind tags where a deform contribution came from.
type DeformSourceKind uint8

const (
	DeformFromParam DeformSourceKind = iota // a parameter binding
	DeformFromNode                          // a node, e.g. a physics driver
)

// DeformSource identifies one contributor to a node's deform stack.
type DeformSource struct {
	Kind DeformSourceKind
	ID   uint32
}

// ParamDeform returns the source key for deforms submitted by param id.
func ParamDeform(id ParamID) DeformSource {
	return DeformSource{Kind: DeformFromParam, ID: uint32(id)}
}

// NodeDeform returns the source key for deforms submitted by node id.
func NodeDeform(id NodeID) DeformSource {
	return DeformSource{Kind: DeformFromNode, ID: uint32(id)}
}

func compareDeformSource(a, b DeformSource) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

type deformEntry struct {
	source    DeformSource
	submitted bool
	offsets   []Vec2
}

// DeformStack collects per-vertex displacement contributions for one mesh
// and sums them once per frame. Entries are kept sorted by source so the
// summation order never depends on submission order.
type DeformStack struct {
	length  int
	entries []deformEntry
}

// NewDeformStack creates a stack for a mesh with length vertices.
func NewDeformStack(length int) DeformStack {
	return DeformStack{length: length}
}

// Len returns the vertex count every submission must match.
func (s *DeformStack) Len() int {
	return s.length
}

// Reset marks all sources as not submitted for the new frame. Stored
// offsets are kept for reuse.
func (s *DeformStack) Reset() {
	for i := range s.entries {
		s.entries[i].submitted = false
	}
}

// Push records the contribution of src for this frame. Panics when
// len(offsets) differs from the stack length or when src already submitted
// since the last Reset.
func (s *DeformStack) Push(src DeformSource, offsets []Vec2) {
	if len(offsets) != s.length {
		panic(fmt.Sprintf("marionette: deform of length %d pushed to a stack of length %d", len(offsets), s.length))
	}
	i, found := slices.BinarySearchFunc(s.entries, src, func(e deformEntry, t DeformSource) int {
		return compareDeformSource(e.source, t)
	})
	if !found {
		s.entries = slices.Insert(s.entries, i, deformEntry{source: src, offsets: make([]Vec2, s.length)})
	}
	e := &s.entries[i]
	if e.submitted {
		panic(fmt.Sprintf("marionette: deform source %v submitted twice in one frame", src))
	}
	e.submitted = true
	copy(e.offsets, offsets)
}

// Combine writes the sum of this frame's submissions into out. Panics when
// len(out) differs from the stack length.
func (s *DeformStack) Combine(out []Vec2) {
	if len(out) != s.length {
		panic(fmt.Sprintf("marionette: deform output of length %d for a stack of length %d", len(out), s.length))
	}
	clear(out)
	for i := range s.entries {
		e := &s.entries[i]
		if !e.submitted {
			continue
		}
		for j, d := range e.offsets {
			out[j] = out[j].Add(d)
		}
	}
}
