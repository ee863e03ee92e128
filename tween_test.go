package marionette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestTweenParam(t *testing.T) {
	p := smileRig().puppet()
	tw, err := TweenParam(p, "Smile", Vec2{1, 0}, 1, ease.Linear)
	require.NoError(t, err)
	assert.Equal(t, "Smile", tw.Name())

	tw.Update(0.5)
	v, _ := p.ParamValue("Smile")
	assertVec2(t, "halfway", v, Vec2{0.5, 0})
	assert.False(t, tw.Done)

	tw.Update(0.5)
	v, _ = p.ParamValue("Smile")
	assertVec2(t, "end", v, Vec2{1, 0})
	assert.True(t, tw.Done)

	require.NoError(t, p.SetParam("Smile", Vec2{0.2, 0}))
	tw.Update(0.5)
	v, _ = p.ParamValue("Smile")
	assert.Equal(t, Vec2{0.2, 0}, v, "a finished tween no longer writes")

	tw.Reset()
	assert.False(t, tw.Done)
	tw.Update(0.25)
	v, _ = p.ParamValue("Smile")
	assertVec2(t, "after reset", v, Vec2{0.25, 0})
}

func TestTweenParamUnknown(t *testing.T) {
	p := smileRig().puppet()
	_, err := TweenParam(p, "Frown", Vec2{1, 0}, 1, ease.Linear)
	assert.ErrorIs(t, err, ErrUnknownParam)
}
