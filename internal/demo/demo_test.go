package demo

import (
	"testing"

	"github.com/phanxgames/marionette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrepares(t *testing.T) {
	p := Build(marionette.DefaultConfig())
	rc := p.Prepare()

	assert.Len(t, p.Params(), len(paramIDs))
	for name, id := range paramIDs {
		param, ok := p.Param(name)
		require.True(t, ok, name)
		assert.Equal(t, id, param.ID)
	}

	eyes, ok := rc.NodeCtx(NodeEyes)
	require.True(t, ok)
	assert.Equal(t, marionette.KindComposite, eyes.Kind)
	assert.ElementsMatch(t, []marionette.NodeID{NodeEyeL, NodeEyeR}, eyes.Composite.Children)

	anchor, _ := rc.NodeCtx(NodeHairAnchor)
	assert.Equal(t, marionette.KindNone, anchor.Kind)
	assert.NotContains(t, rc.RootDrawables(), NodeEyeL)
	assert.Contains(t, rc.RootDrawables(), NodeBlush)
}

func TestSmileDeformsMouth(t *testing.T) {
	p := Build(marionette.DefaultConfig())
	rc := p.Prepare()

	p.BeginSetParams()
	require.NoError(t, p.SetParam(ParamSmile, marionette.Vec2{1, 0}))
	p.EndSetParams(1.0 / 60)

	mouth, _ := rc.NodeCtx(NodeMouth)
	d := rc.VertexBuffers.Deforms[mouth.TexturedMesh.VertOffset:]
	assert.InDelta(t, -4, d[0][1], 1e-5, "corners rise")
	assert.InDelta(t, 2, d[mouthCols/2][1], 1e-5, "the middle dips")
	assert.InDelta(t, -4, d[mouthCols][1], 1e-5)
}

func TestHairSwaysAgainstHeadMotion(t *testing.T) {
	p := Build(marionette.DefaultConfig())
	p.Prepare()

	for range 10 {
		p.BeginSetParams()
		p.EndSetParams(1.0 / 60)
	}
	rest, _ := p.ParamValue(ParamSway)
	assert.InDelta(t, 0, rest[0], 0.05, "hair hangs still while the head is idle")

	p.BeginSetParams()
	require.NoError(t, p.SetParam(ParamHead, marionette.Vec2{1, 0}))
	p.EndSetParams(1.0 / 60)

	sway, _ := p.ParamValue(ParamSway)
	assert.Less(t, sway[0], float32(0), "hair lags behind a head turning right")
}

func TestBlinkClosesEyes(t *testing.T) {
	p := Build(marionette.DefaultConfig())
	rc := p.Prepare()

	p.BeginSetParams()
	require.NoError(t, p.SetParam(ParamBlink, marionette.Vec2{1, 0}))
	p.EndSetParams(0)

	eyes, _ := rc.NodeCtx(NodeEyes)
	// The head carries no scale, so the eyes' y scale is the blink value.
	assert.InDelta(t, 0.1, eyes.Absolute.Col(1).Vec3().Len(), 1e-5)
}
