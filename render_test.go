package marionette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderRig builds
//
//	Root
//	├── Body (part)
//	├── Eyes (composite)
//	│   ├── EyeL (part)
//	│   └── EyeR (part)
//	├── Hair (part, 1x2 grid)
//	├── Group (drawable without a shape)
//	└── Broken (textured mesh without a mesh)
func renderRig() *rig {
	r := newRig()
	r.part(0, 1, "Body", NewQuadMesh(10, 10))
	r.composite(0, 2, "Eyes")
	r.part(2, 3, "EyeL", NewQuadMesh(2, 2))
	r.part(2, 4, "EyeR", NewQuadMesh(2, 2))
	r.part(0, 5, "Hair", NewGridMesh(4, 8, 1, 2))
	r.node(0, 6, "Group")
	DrawableComponent.Add(r.world, 6, NewDrawable())
	r.node(0, 7, "Broken")
	DrawableComponent.Add(r.world, 7, NewDrawable())
	TexturedMeshComponent.Add(r.world, 7, TexturedMesh{})
	return r
}

func TestRenderCtxKinds(t *testing.T) {
	rc := renderRig().puppet().Prepare()

	want := map[NodeID]NodeKind{
		0: KindNone,
		1: KindTexturedMesh,
		2: KindComposite,
		3: KindTexturedMesh,
		5: KindTexturedMesh,
		6: KindNone,
		7: KindNone,
	}
	for id, kind := range want {
		nc, ok := rc.NodeCtx(id)
		require.True(t, ok)
		assert.Equal(t, kind, nc.Kind, "node %d", id)
	}
	_, ok := rc.NodeCtx(99)
	assert.False(t, ok)
}

func TestRenderCtxLayout(t *testing.T) {
	rc := renderRig().puppet().Prepare()

	assert.Equal(t, []NodeID{1, 2, 5}, rc.RootDrawables())

	eyes, _ := rc.NodeCtx(2)
	require.NotNil(t, eyes.Composite)
	assert.Equal(t, []NodeID{3, 4}, eyes.Composite.Children)

	offsets := map[NodeID]TexturedMeshRenderCtx{
		1: {IndexOffset: 6, VertOffset: 4, IndexLen: 6, VertLen: 4},
		3: {IndexOffset: 12, VertOffset: 8, IndexLen: 6, VertLen: 4},
		4: {IndexOffset: 18, VertOffset: 12, IndexLen: 6, VertLen: 4},
		5: {IndexOffset: 24, VertOffset: 16, IndexLen: 12, VertLen: 6},
	}
	for id, want := range offsets {
		nc, _ := rc.NodeCtx(id)
		require.NotNil(t, nc.TexturedMesh, "node %d", id)
		assert.Equal(t, want, *nc.TexturedMesh, "node %d", id)
	}

	vb := rc.VertexBuffers
	assert.Len(t, vb.Verts, 22)
	assert.Len(t, vb.Deforms, 22)
	assert.Equal(t, []uint16{4, 6, 5, 5, 6, 7}, vb.Indices[6:12])
}

func TestRenderCtxNestedCompositeIsSkipped(t *testing.T) {
	r := renderRig()
	r.composite(2, 8, "Pupils")
	r.part(8, 9, "Pupil", NewQuadMesh(1, 1))
	rc := r.puppet().Prepare()

	eyes, _ := rc.NodeCtx(2)
	assert.Equal(t, []NodeID{3, 4}, eyes.Composite.Children)
	pupil, _ := rc.NodeCtx(9)
	assert.Nil(t, pupil.TexturedMesh)
}

func TestRenderCtxEnabledPropagates(t *testing.T) {
	r := renderRig()
	p := r.puppet()
	rc := p.Prepare()

	r.nodes.Get(2).Enabled = false
	p.BeginSetParams()
	p.EndSetParams(0)

	for id, enabled := range map[NodeID]bool{1: true, 2: false, 3: false, 4: false, 5: true} {
		nc, _ := rc.NodeCtx(id)
		assert.Equal(t, enabled, nc.Enabled, "node %d", id)
	}
}

func TestRenderCtxResortsByZ(t *testing.T) {
	r := renderRig()
	z := r.param(scalarParam(0, "Z", 0, 1))
	z.Bindings = []Binding{
		{Node: 1, Kind: BindZSort, Interpolate: InterpolateLinear, Values: scalarValues(0, -10)},
		{Node: 4, Kind: BindZSort, Interpolate: InterpolateLinear, Values: scalarValues(0, 1)},
	}
	p := r.puppet()
	rc := p.Prepare()

	p.BeginSetParams()
	require.NoError(t, p.SetParam("Z", Vec2{1, 0}))
	p.EndSetParams(0)

	assert.Equal(t, []NodeID{2, 5, 1}, rc.RootDrawables())
	eyes, _ := rc.NodeCtx(2)
	assert.Equal(t, []NodeID{4, 3}, eyes.Composite.Children)
}

func TestRenderCtxDeformDirty(t *testing.T) {
	r := renderRig()
	hair := MeshComponent.mustGet(r.world, 5)
	wave := r.param(scalarParam(0, "Wave", 0, 1))
	wave.Bindings = []Binding{{
		Node:        5,
		Kind:        BindDeform,
		Interpolate: InterpolateLinear,
		Deforms:     columns([][]Vec2{make([]Vec2, 6)}, [][]Vec2{filled(len(hair.Vertices), Vec2{2, 0})}),
	}}
	p := r.puppet()
	rc := p.Prepare()

	lo, hi, ok := rc.TakeDeformDirty()
	require.True(t, ok)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 22, hi)

	p.BeginSetParams()
	p.EndSetParams(0)
	_, _, ok = rc.TakeDeformDirty()
	assert.False(t, ok, "unchanged deforms are not dirty")

	p.BeginSetParams()
	require.NoError(t, p.SetParam("Wave", Vec2{0.5, 0}))
	p.EndSetParams(0)
	lo, hi, ok = rc.TakeDeformDirty()
	require.True(t, ok)
	assert.Equal(t, 16, lo)
	assert.Equal(t, 22, hi)
	for i := lo; i < hi; i++ {
		assertVec2(t, "deform", rc.VertexBuffers.Deforms[i], Vec2{1, 0})
	}
}

func TestRenderCtxAbsoluteTransforms(t *testing.T) {
	r := renderRig()
	r.nodes.Get(2).TransOffset.Translation = Vec3{3, 4, 0}
	rc := r.puppet().Prepare()

	eyeL, _ := rc.NodeCtx(3)
	assertNear(t, "x", eyeL.Absolute[12], 3)
	assertNear(t, "y", eyeL.Absolute[13], 4)
}

func TestPrepareTwicePanics(t *testing.T) {
	p := renderRig().puppet()
	p.Prepare()
	require.Panics(t, func() { p.Prepare() })
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "Composite", KindComposite.String())
	assert.Equal(t, "NodeKind(9)", NodeKind(9).String())
}

func TestRenderCtxTiesReturnToTreeOrder(t *testing.T) {
	r := renderRig()
	z := r.param(scalarParam(0, "Z", 0, 1))
	z.Bindings = []Binding{
		{Node: 1, Kind: BindZSort, Interpolate: InterpolateLinear, Values: scalarValues(0, -1)},
		{Node: 3, Kind: BindZSort, Interpolate: InterpolateLinear, Values: scalarValues(0, -1)},
	}
	p := r.puppet()
	rc := p.Prepare()
	eyes, _ := rc.NodeCtx(2)

	frame := func(v float32) {
		p.BeginSetParams()
		require.NoError(t, p.SetParam("Z", Vec2{v, 0}))
		p.EndSetParams(0)
	}

	frame(0)
	assert.Equal(t, []NodeID{1, 2, 5}, rc.RootDrawables())
	assert.Equal(t, []NodeID{3, 4}, eyes.Composite.Children)

	frame(1)
	assert.Equal(t, []NodeID{2, 5, 1}, rc.RootDrawables())
	assert.Equal(t, []NodeID{4, 3}, eyes.Composite.Children)

	frame(0)
	assert.Equal(t, []NodeID{1, 2, 5}, rc.RootDrawables(), "equal z must fall back to tree order")
	assert.Equal(t, []NodeID{3, 4}, eyes.Composite.Children)
}

func TestRenderCtxTieBreakIgnoresAuthoredZ(t *testing.T) {
	r := newRig()
	r.part(0, 1, "A", NewQuadMesh(1, 1))
	r.part(0, 2, "B", NewQuadMesh(1, 1)).ZSort = 1
	z := r.param(scalarParam(0, "Z", 0, 1))
	z.Bindings = []Binding{{Node: 2, Kind: BindZSort, Interpolate: InterpolateLinear, Values: scalarValues(0, -1)}}
	p := r.puppet()
	rc := p.Prepare()
	assert.Equal(t, []NodeID{2, 1}, rc.RootDrawables())

	p.BeginSetParams()
	require.NoError(t, p.SetParam("Z", Vec2{1, 0}))
	p.EndSetParams(0)
	assert.Equal(t, []NodeID{1, 2}, rc.RootDrawables(), "tied parts draw in tree order")
}
