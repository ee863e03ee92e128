package marionette

import (
	"fmt"
	"math"
)

// VertexBuffers are the shared GPU-bound arrays of a puppet. Verts, UVs and
// Indices are static after Prepare; Deforms runs parallel to Verts and is
// rewritten every frame.
type VertexBuffers struct {
	Verts   []Vec2
	UVs     []Vec2
	Indices []uint16
	Deforms []Vec2
}

// Viewport quad occupying the first 4 vertices and 6 indices, used to draw
// offscreen composite targets back onto the screen.
const (
	QuadVertOffset  = 0
	QuadIndexOffset = 0
	QuadIndexLen    = 6
)

func newVertexBuffers() VertexBuffers {
	return VertexBuffers{
		Verts:   []Vec2{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
		UVs:     []Vec2{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		Indices: []uint16{0, 1, 2, 2, 1, 3},
		Deforms: make([]Vec2, 4),
	}
}

// push appends mesh and returns where its indices and vertices start.
// Indices are rebased onto the shared vertex array. Panics when the mesh is
// malformed or the buffers would exceed 16-bit indexing.
func (vb *VertexBuffers) push(id NodeID, m *Mesh) (indexOffset, vertOffset uint16) {
	if len(m.UVs) != len(m.Vertices) {
		panic(fmt.Sprintf("marionette: mesh of node %d has %d vertices but %d uvs", id, len(m.Vertices), len(m.UVs)))
	}
	if len(vb.Verts) > math.MaxUint16 || len(vb.Verts)+len(m.Vertices) > math.MaxUint16+1 {
		panic(fmt.Sprintf("marionette: mesh of node %d overflows 16-bit vertex indexing", id))
	}
	if len(vb.Indices) > math.MaxUint16 {
		panic(fmt.Sprintf("marionette: mesh of node %d overflows 16-bit index offsets", id))
	}
	indexOffset = uint16(len(vb.Indices))
	vertOffset = uint16(len(vb.Verts))

	vb.Verts = append(vb.Verts, m.Vertices...)
	vb.UVs = append(vb.UVs, m.UVs...)
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			panic(fmt.Sprintf("marionette: mesh of node %d indexes vertex %d of %d", id, i, len(m.Vertices)))
		}
		vb.Indices = append(vb.Indices, i+vertOffset)
	}
	vb.Deforms = append(vb.Deforms, make([]Vec2, len(m.Vertices))...)
	return indexOffset, vertOffset
}
