package ebitenbackend

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/marionette"
)

// Stats counts the work done by the last Draw.
type Stats struct {
	DrawCalls  int
	Composites int
	MaskPasses int
	// DeformVerts is the number of deform entries that changed since the
	// previous Draw.
	DeformVerts int
}

// maskPass is one masked draw in progress. Sources with Mask mode are
// accumulated in keep, Dodge sources in cut. Content is drawn offscreen and
// combined with both when the pass ends.
type maskPass struct {
	keep, cut, content *ebiten.Image
	hasKeep, hasCut    bool
}

// Renderer draws puppets onto ebiten images. A Renderer is not safe for
// concurrent use.
type Renderer struct {
	Camera Camera

	textures []*ebiten.Image
	pool     renderTexturePool

	puppet  *marionette.Puppet
	rc      *marionette.RenderCtx
	view    ebiten.GeoM
	targets []*ebiten.Image // top is the current draw target
	passes  []maskPass
	width   int
	height  int

	verts []ebiten.Vertex
	inds  []uint16
	stats Stats
}

// NewRenderer returns a renderer that samples textures by TextureID.
func NewRenderer(textures []*ebiten.Image) *Renderer {
	return &Renderer{Camera: NewCamera(), textures: textures}
}

// SetTexture installs img as texture id, growing the table as needed.
func (r *Renderer) SetTexture(id marionette.TextureID, img *ebiten.Image) {
	for int(id) >= len(r.textures) {
		r.textures = append(r.textures, nil)
	}
	r.textures[id] = img
}

// Texture returns the image for id, or nil.
func (r *Renderer) Texture(id marionette.TextureID) *ebiten.Image {
	if int(id) >= len(r.textures) {
		return nil
	}
	return r.textures[id]
}

// Stats returns counters for the last Draw.
func (r *Renderer) Stats() Stats { return r.stats }

// Draw renders p onto screen. p must have been prepared.
func (r *Renderer) Draw(screen *ebiten.Image, p *marionette.Puppet) {
	r.targets = append(r.targets[:0], screen)
	b := screen.Bounds()
	r.width, r.height = b.Dx(), b.Dy()
	if vp := p.RenderCtx(); vp != nil {
		if v := vp.Viewport(); v.Width > 0 && v.Height > 0 {
			r.width, r.height = v.Width, v.Height
		}
	}
	marionette.Draw(r, p)
}

func (r *Renderer) target() *ebiten.Image {
	return r.targets[len(r.targets)-1]
}

func (r *Renderer) pushTarget(img *ebiten.Image) {
	r.targets = append(r.targets, img)
}

func (r *Renderer) popTarget() *ebiten.Image {
	img := r.targets[len(r.targets)-1]
	r.targets = r.targets[:len(r.targets)-1]
	return img
}

// OnBeginDraw implements marionette.Renderer.
func (r *Renderer) OnBeginDraw(p *marionette.Puppet) {
	r.puppet = p
	r.rc = p.RenderCtx()
	r.stats = Stats{}
	if r.rc.TakeClear() {
		r.target().Clear()
	}
	if lo, hi, ok := r.rc.TakeDeformDirty(); ok {
		r.stats.DeformVerts = hi - lo
	}
	r.view = r.Camera.View(r.width, r.height)
}

// OnEndDraw implements marionette.Renderer.
func (r *Renderer) OnEndDraw(*marionette.Puppet) {
	if len(r.targets) != 1 || len(r.passes) != 0 {
		panic("ebitenbackend: unbalanced composite or mask at end of draw")
	}
	r.puppet, r.rc = nil, nil
}

// OnBeginMasks implements marionette.Renderer.
func (r *Renderer) OnBeginMasks(*marionette.Masks) {
	pass := maskPass{
		keep:    r.pool.Acquire(r.width, r.height),
		cut:     r.pool.Acquire(r.width, r.height),
		content: r.pool.Acquire(r.width, r.height),
	}
	r.passes = append(r.passes, pass)
	r.pushTarget(pass.keep)
	r.stats.MaskPasses++
}

// OnBeginMask implements marionette.Renderer.
func (r *Renderer) OnBeginMask(mask marionette.Mask) {
	pass := &r.passes[len(r.passes)-1]
	if mask.Mode == marionette.MaskModeDodge {
		pass.hasCut = true
		r.targets[len(r.targets)-1] = pass.cut
		return
	}
	pass.hasKeep = true
	r.targets[len(r.targets)-1] = pass.keep
}

// OnBeginMaskedContent implements marionette.Renderer.
func (r *Renderer) OnBeginMaskedContent() {
	r.targets[len(r.targets)-1] = r.passes[len(r.passes)-1].content
}

// OnEndMask implements marionette.Renderer.
func (r *Renderer) OnEndMask() {
	pass := r.passes[len(r.passes)-1]
	r.passes = r.passes[:len(r.passes)-1]
	r.popTarget()

	if pass.hasKeep {
		op := &ebiten.DrawImageOptions{Blend: maskKeep}
		pass.content.DrawImage(pass.keep, op)
	}
	if pass.hasCut {
		op := &ebiten.DrawImageOptions{Blend: maskCut}
		pass.content.DrawImage(pass.cut, op)
	}
	r.target().DrawImage(pass.content, nil)
	r.stats.DrawCalls++

	r.pool.Release(pass.keep)
	r.pool.Release(pass.cut)
	r.pool.Release(pass.content)
}

// DrawTexturedMesh implements marionette.Renderer.
func (r *Renderer) DrawTexturedMesh(asMask bool, node *marionette.NodeRenderCtx, drawable *marionette.Drawable, mesh *marionette.TexturedMesh) {
	tex := r.Texture(mesh.Albedo)
	if tex == nil {
		marionette.Logger().Debug("part texture missing", "node", node.ID, "texture", mesh.Albedo)
		return
	}
	c := drawColor(asMask, drawable.Blending)
	b := tex.Bounds()
	vb := &r.rc.VertexBuffers
	r.verts = appendPartVertices(r.verts[:0], vb, node.TexturedMesh, node.Absolute, r.view, float32(b.Dx()), float32(b.Dy()), c)
	r.inds = appendPartIndices(r.inds[:0], vb, node.TexturedMesh)

	var op ebiten.DrawTrianglesOptions
	op.Blend = ebiten.BlendSourceOver
	if !asMask {
		op.Blend = blendFor(drawable.Blending.Mode)
	}
	r.target().DrawTriangles(r.verts, r.inds, tex, &op)
	r.stats.DrawCalls++
}

// BeginComposite implements marionette.Renderer.
func (r *Renderer) BeginComposite(bool, *marionette.NodeRenderCtx, *marionette.Drawable) {
	r.pushTarget(r.pool.Acquire(r.width, r.height))
	r.stats.Composites++
}

// FinishComposite implements marionette.Renderer. The offscreen target is
// drawn with the viewport quad from the shared vertex buffers.
func (r *Renderer) FinishComposite(asMask bool, _ *marionette.NodeRenderCtx, drawable *marionette.Drawable) {
	img := r.popTarget()
	vb := &r.rc.VertexBuffers
	c := drawColor(asMask, drawable.Blending)
	r.verts = appendQuadVertices(r.verts[:0], vb, float32(r.width), float32(r.height), c)
	r.inds = r.inds[:0]
	for _, i := range vb.Indices[marionette.QuadIndexOffset : marionette.QuadIndexOffset+marionette.QuadIndexLen] {
		r.inds = append(r.inds, i-marionette.QuadVertOffset)
	}

	var op ebiten.DrawTrianglesOptions
	op.Blend = ebiten.BlendSourceOver
	if !asMask {
		op.Blend = blendFor(drawable.Blending.Mode)
	}
	r.target().DrawTriangles(r.verts, r.inds, img, &op)
	r.stats.DrawCalls++
	r.pool.Release(img)
}

// rgba is a premultiplied vertex color.
type rgba [4]float32

// drawColor returns the vertex color of a drawable. Mask sources are drawn
// in opaque white so only their coverage counts.
func drawColor(asMask bool, b marionette.Blending) rgba {
	if asMask {
		return rgba{1, 1, 1, 1}
	}
	a := b.Opacity
	return rgba{b.Tint[0] * a, b.Tint[1] * a, b.Tint[2] * a, a}
}

// appendPartVertices transforms one part's vertices to screen space:
// deform offset, then absolute node transform, then view.
func appendPartVertices(dst []ebiten.Vertex, vb *marionette.VertexBuffers, tm *marionette.TexturedMeshRenderCtx, abs marionette.Mat4, view ebiten.GeoM, texW, texH float32, c rgba) []ebiten.Vertex {
	lo := int(tm.VertOffset)
	for i := lo; i < lo+tm.VertLen; i++ {
		p := vb.Verts[i].Add(vb.Deforms[i])
		w := abs.Mul4x1(mgl32.Vec4{p[0], p[1], 0, 1})
		sx, sy := view.Apply(float64(w[0]), float64(w[1]))
		uv := vb.UVs[i]
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   uv[0] * texW,
			SrcY:   uv[1] * texH,
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		})
	}
	return dst
}

// appendPartIndices copies a part's indices rebased to its first vertex.
func appendPartIndices(dst []uint16, vb *marionette.VertexBuffers, tm *marionette.TexturedMeshRenderCtx) []uint16 {
	lo := int(tm.IndexOffset)
	for _, i := range vb.Indices[lo : lo+tm.IndexLen] {
		dst = append(dst, i-tm.VertOffset)
	}
	return dst
}

// appendQuadVertices maps the [-1, 1] viewport quad onto a w by h target,
// sampling the same region of the source.
func appendQuadVertices(dst []ebiten.Vertex, vb *marionette.VertexBuffers, w, h float32, c rgba) []ebiten.Vertex {
	for i := marionette.QuadVertOffset; i < marionette.QuadVertOffset+4; i++ {
		p, uv := vb.Verts[i], vb.UVs[i]
		dst = append(dst, ebiten.Vertex{
			DstX:   (p[0] + 1) / 2 * w,
			DstY:   (p[1] + 1) / 2 * h,
			SrcX:   uv[0] * w,
			SrcY:   uv[1] * h,
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		})
	}
	return dst
}
