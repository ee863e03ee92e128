package marionette

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs every Renderer call as a short string.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) OnBeginMasks(masks *Masks) { r.add("masks %d", len(masks.Masks)) }
func (r *recorder) OnBeginMask(mask Mask)     { r.add("mask %d %s", mask.Source, mask.Mode) }
func (r *recorder) OnBeginMaskedContent()     { r.add("content") }
func (r *recorder) OnEndMask()                { r.add("end-mask") }

func (r *recorder) DrawTexturedMesh(asMask bool, node *NodeRenderCtx, _ *Drawable, _ *TexturedMesh) {
	if asMask {
		r.add("mask-mesh %d", node.ID)
		return
	}
	r.add("mesh %d", node.ID)
}

func (r *recorder) BeginComposite(_ bool, node *NodeRenderCtx, _ *Drawable) {
	r.add("composite %d", node.ID)
}

func (r *recorder) FinishComposite(_ bool, node *NodeRenderCtx, _ *Drawable) {
	r.add("finish %d", node.ID)
}

func (r *recorder) OnBeginDraw(*Puppet) { r.add("begin") }
func (r *recorder) OnEndDraw(*Puppet)   { r.add("end") }

func mask(w *World, id NodeID, masks ...Mask) {
	d := DrawableComponent.mustGet(w, id)
	d.Masks = &Masks{Threshold: 0.5, Masks: masks}
}

func TestDrawOrder(t *testing.T) {
	p := renderRig().puppet()
	p.Prepare()

	rec := &recorder{}
	Draw(rec, p)
	assert.Equal(t, []string{
		"begin",
		"mesh 1",
		"composite 2", "mesh 3", "mesh 4", "finish 2",
		"mesh 5",
		"end",
	}, rec.calls)
}

func TestDrawSkipsDisabled(t *testing.T) {
	r := renderRig()
	p := r.puppet()
	p.Prepare()
	r.nodes.Get(1).Enabled = false
	r.nodes.Get(4).Enabled = false
	p.EndSetParams(0)

	rec := &recorder{}
	Draw(rec, p)
	assert.Equal(t, []string{
		"begin",
		"composite 2", "mesh 3", "finish 2",
		"mesh 5",
		"end",
	}, rec.calls)
}

func TestDrawMasks(t *testing.T) {
	r := renderRig()
	mask(r.world, 5, Mask{Source: 1, Mode: MaskModeMask}, Mask{Source: 3, Mode: MaskModeDodge})
	mask(r.world, 2, Mask{Source: 1, Mode: MaskModeMask})
	p := r.puppet()
	p.Prepare()

	rec := &recorder{}
	Draw(rec, p)
	assert.Equal(t, []string{
		"begin",
		"mesh 1",
		"masks 1", "mask 1 Mask", "mask-mesh 1", "content",
		"composite 2", "mesh 3", "mesh 4", "finish 2",
		"end-mask",
		"masks 2", "mask 1 Mask", "mask-mesh 1", "mask 3 DodgeMask", "mask-mesh 3", "content",
		"mesh 5",
		"end-mask",
		"end",
	}, rec.calls)
}

func TestDrawMaskSourcesIgnoreTheirOwnMasks(t *testing.T) {
	r := renderRig()
	mask(r.world, 1, Mask{Source: 5, Mode: MaskModeMask})
	mask(r.world, 5, Mask{Source: 1, Mode: MaskModeMask})
	p := r.puppet()
	p.Prepare()

	rec := &recorder{}
	require.NotPanics(t, func() { Draw(rec, p) })
	assert.Equal(t, []string{
		"begin",
		"masks 1", "mask 5 Mask", "mask-mesh 5", "content", "mesh 1", "end-mask",
		"composite 2", "mesh 3", "mesh 4", "finish 2",
		"masks 1", "mask 1 Mask", "mask-mesh 1", "content", "mesh 5", "end-mask",
		"end",
	}, rec.calls)
}

func TestDrawBeforePreparePanics(t *testing.T) {
	p := renderRig().puppet()
	require.Panics(t, func() { Draw(&recorder{}, p) })
}
