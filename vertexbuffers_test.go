package marionette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBuffersStartWithViewportQuad(t *testing.T) {
	vb := newVertexBuffers()
	assert.Len(t, vb.Verts, 4)
	assert.Len(t, vb.UVs, 4)
	assert.Len(t, vb.Deforms, 4)
	assert.Len(t, vb.Indices, QuadIndexLen)
}

func TestVertexBuffersPushRebases(t *testing.T) {
	vb := newVertexBuffers()
	first := NewQuadMesh(2, 2)
	io, vo := vb.push(1, &first)
	assert.Equal(t, uint16(6), io)
	assert.Equal(t, uint16(4), vo)

	tri := NewPolygonMesh([]Vec2{{0, 0}, {1, 0}, {0, 1}})
	io, vo = vb.push(2, &tri)
	assert.Equal(t, uint16(12), io)
	assert.Equal(t, uint16(8), vo)
	assert.Equal(t, []uint16{8, 9, 10}, vb.Indices[12:15])
	assert.Len(t, vb.Deforms, len(vb.Verts))
	assert.Equal(t, tri.Vertices, vb.Verts[8:11])
}

func TestVertexBuffersRejectMalformedMeshes(t *testing.T) {
	vb := newVertexBuffers()
	noUVs := Mesh{Vertices: []Vec2{{0, 0}}}
	require.Panics(t, func() { vb.push(1, &noUVs) })

	badIndex := Mesh{Vertices: []Vec2{{0, 0}}, UVs: []Vec2{{0, 0}}, Indices: []uint16{0, 1}}
	require.Panics(t, func() { vb.push(2, &badIndex) })
}
