package marionette

// Renderer receives draw calls for a prepared puppet in Inochi2D order.
// Implementations own all GPU state; the dispatch in [Draw] only decides
// what is drawn and in which order.
type Renderer interface {
	// OnBeginMasks starts a masked draw, e.g. by clearing a stencil.
	OnBeginMasks(masks *Masks)
	// OnBeginMask prepares for drawing one mask source.
	OnBeginMask(mask Mask)
	// OnBeginMaskedContent switches from mask sources to masked content.
	OnBeginMaskedContent()
	// OnEndMask ends a masked draw.
	OnEndMask()

	// DrawTexturedMesh draws one part. asMask is set while drawing a mask
	// source.
	DrawTexturedMesh(asMask bool, node *NodeRenderCtx, drawable *Drawable, mesh *TexturedMesh)
	// BeginComposite prepares an offscreen target for a composite's children.
	BeginComposite(asMask bool, node *NodeRenderCtx, drawable *Drawable)
	// FinishComposite draws the offscreen target with the composite's
	// blending.
	FinishComposite(asMask bool, node *NodeRenderCtx, drawable *Drawable)

	// OnBeginDraw runs before a puppet is drawn, e.g. to upload deforms.
	OnBeginDraw(p *Puppet)
	// OnEndDraw runs after a puppet is drawn.
	OnEndDraw(p *Puppet)
}

// Draw dispatches every enabled root drawable of p to r, back to front.
// Panics if p has not been prepared.
func Draw(r Renderer, p *Puppet) {
	rc := p.RenderCtx()
	if rc == nil {
		panic("marionette: Draw called before Prepare")
	}
	r.OnBeginDraw(p)
	for _, id := range rc.RootDrawables() {
		nc := rc.node(id)
		if !nc.Enabled {
			continue
		}
		drawDrawable(r, p.world, rc, false, nc)
	}
	r.OnEndDraw(p)
}

func drawDrawable(r Renderer, w *World, rc *RenderCtx, asMask bool, nc *NodeRenderCtx) {
	if nc.Kind == KindNone {
		return
	}
	drawable := DrawableComponent.mustGet(w, nc.ID)

	// Mask sources are drawn without their own masks.
	masked := !asMask && drawable.Masks != nil && len(drawable.Masks.Masks) > 0
	if masked {
		r.OnBeginMasks(drawable.Masks)
		for _, m := range drawable.Masks.Masks {
			src, ok := rc.NodeCtx(m.Source)
			if !ok {
				continue
			}
			r.OnBeginMask(m)
			drawDrawable(r, w, rc, true, src)
		}
		r.OnBeginMaskedContent()
	}

	switch nc.Kind {
	case KindTexturedMesh:
		r.DrawTexturedMesh(asMask, nc, drawable, TexturedMeshComponent.mustGet(w, nc.ID))
	case KindComposite:
		drawComposite(r, w, rc, asMask, nc, drawable)
	}

	if masked {
		r.OnEndMask()
	}
}

func drawComposite(r Renderer, w *World, rc *RenderCtx, asMask bool, nc *NodeRenderCtx, drawable *Drawable) {
	children := nc.Composite.Children
	if len(children) == 0 {
		return
	}
	r.BeginComposite(asMask, nc, drawable)
	for _, id := range children {
		child := rc.node(id)
		if !child.Enabled {
			continue
		}
		r.DrawTexturedMesh(asMask, child, DrawableComponent.mustGet(w, id), TexturedMeshComponent.mustGet(w, id))
	}
	r.FinishComposite(asMask, nc, drawable)
}
