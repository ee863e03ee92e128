// Package ebitenbackend draws marionette puppets with Ebitengine.
//
// [Renderer] implements [marionette.Renderer] on top of
// [ebiten.Image.DrawTriangles]. Parts are transformed on the CPU: each
// vertex is offset by its deform, moved by the node's absolute transform and
// then mapped to the screen by a [Camera]. Composites and masks render into
// pooled offscreen images that are combined with fixed-function blending.
//
// Typical use inside an ebiten.Game:
//
//	func (g *game) Update() error {
//		g.puppet.BeginSetParams()
//		_ = g.puppet.SetParam("Head:: Yaw-Pitch", yawPitch)
//		g.puppet.EndSetParams(1.0 / float32(ebiten.TPS()))
//		g.renderer.Camera.Update(1.0 / float32(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *game) Draw(screen *ebiten.Image) {
//		g.renderer.Draw(screen, g.puppet)
//	}
//
// Mask thresholds and screen tint need a custom shader and are not
// applied; masks use the source alpha directly.
package ebitenbackend
