package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the camera position.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps puppet space to the screen. Position is added to puppet
// coordinates before rotation, so a camera at (0, 0) puts the puppet origin
// at the viewport center.
type Camera struct {
	X, Y float64
	// Rotation is in radians.
	Rotation float64
	// ScaleX and ScaleY zoom the view; 1 is one puppet pixel per screen pixel.
	ScaleX, ScaleY float64

	scroll *scrollAnim
}

// NewCamera returns a camera at the origin with unit scale.
func NewCamera() Camera {
	return Camera{ScaleX: 1, ScaleY: 1}
}

// ScrollTo animates the camera position to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// Update advances a running ScrollTo animation by dt seconds.
func (c *Camera) Update(dt float32) {
	s := c.scroll
	if s == nil {
		return
	}
	if !s.doneX {
		v, done := s.tweenX.Update(dt)
		c.X, s.doneX = float64(v), done
	}
	if !s.doneY {
		v, done := s.tweenY.Update(dt)
		c.Y, s.doneY = float64(v), done
	}
	if s.doneX && s.doneY {
		c.scroll = nil
	}
}

// View returns the puppet-to-screen transform for a viewport of the given
// size:
//
//	Scale(sx, sy) * Translate(w/2sx, h/2sy) * Rotate(rotation) * Translate(X, Y)
func (c *Camera) View(width, height int) ebiten.GeoM {
	sx, sy := c.ScaleX, c.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	var m ebiten.GeoM
	m.Translate(c.X, c.Y)
	m.Rotate(c.Rotation)
	m.Translate(float64(width)/(2*sx), float64(height)/(2*sy))
	m.Scale(sx, sy)
	return m
}

// WorldToScreen converts a puppet-space point to screen coordinates.
func (c *Camera) WorldToScreen(width, height int, x, y float64) (float64, float64) {
	m := c.View(width, height)
	return m.Apply(x, y)
}

// ScreenToWorld converts a screen point to puppet space.
func (c *Camera) ScreenToWorld(width, height int, x, y float64) (float64, float64) {
	m := c.View(width, height)
	m.Invert()
	return m.Apply(x, y)
}
