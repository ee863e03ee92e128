package marionette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentAddGetHas(t *testing.T) {
	w := NewWorld()
	assert.False(t, MeshComponent.Has(w, 1))
	_, ok := MeshComponent.Get(w, 1)
	assert.False(t, ok)

	MeshComponent.Add(w, 1, NewQuadMesh(2, 2))
	require.True(t, MeshComponent.Has(w, 1))
	m, ok := MeshComponent.Get(w, 1)
	require.True(t, ok)
	assert.Len(t, m.Vertices, 4)

	assert.False(t, DrawableComponent.Has(w, 1), "capabilities are independent")
	assert.False(t, MeshComponent.Has(w, 2))
}

func TestComponentGetReturnsLiveValue(t *testing.T) {
	w := NewWorld()
	ZSortComponent.Add(w, 3, ZSort{})
	z, _ := ZSortComponent.Get(w, 3)
	z.Offset = 4

	again, _ := ZSortComponent.Get(w, 3)
	assert.Equal(t, float32(4), again.Offset)
}

func TestComponentDuplicateKeepsFirst(t *testing.T) {
	w := NewWorld()
	ZSortComponent.Add(w, 1, ZSort{Offset: 1})
	ZSortComponent.Add(w, 1, ZSort{Offset: 2})

	z, _ := ZSortComponent.Get(w, 1)
	assert.Equal(t, float32(1), z.Offset)
}

func TestComponentDuplicatePanicsInDebug(t *testing.T) {
	globalDebug = true
	t.Cleanup(func() { globalDebug = false })

	w := NewWorld()
	ZSortComponent.Add(w, 1, ZSort{})
	require.Panics(t, func() { ZSortComponent.Add(w, 1, ZSort{}) })
}

func TestComponentMustGetPanics(t *testing.T) {
	w := NewWorld()
	require.Panics(t, func() { TransformStoreComponent.mustGet(w, 5) })
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "SimplePhysics", SimplePhysicsComponent.Name())
	assert.Equal(t, "DeformStack", DeformStackComponent.Name())
}

func TestWorldDonburiEntityPerNode(t *testing.T) {
	w := NewWorld()
	MeshComponent.Add(w, 1, Mesh{})
	DrawableComponent.Add(w, 1, NewDrawable())
	MeshComponent.Add(w, 2, Mesh{})
	assert.Equal(t, 2, w.Donburi().Len())
}
