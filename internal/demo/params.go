package demo

import (
	"github.com/phanxgames/marionette"
)

var paramIDs = map[string]marionette.ParamID{
	ParamHead:   0,
	ParamSmile:  1,
	ParamBreath: 2,
	ParamSway:   3,
	ParamBlink:  4,
}

var (
	axis3 = []float32{0, 0.5, 1}
	axis2 = []float32{0, 1}
	axis1 = []float32{0}
)

// grid fills a w x h matrix from fn(x, y).
func grid[T any](w, h int, fn func(x, y int) T) marionette.Matrix2D[T] {
	m := marionette.NewMatrix2D[T](w, h)
	for x := range w {
		for y := range h {
			m.Set(x, y, fn(x, y))
		}
	}
	return m
}

func scalarBinding(id marionette.NodeID, kind marionette.BindingKind, w, h int, fn func(x, y int) float32) marionette.Binding {
	return marionette.Binding{
		Node:        id,
		Kind:        kind,
		Interpolate: marionette.InterpolateLinear,
		Values:      grid(w, h, fn),
	}
}

func buildParams(w *marionette.World) map[string]*marionette.Param {
	params := map[string]*marionette.Param{}
	add := func(p *marionette.Param) {
		p.ID = paramIDs[p.Name]
		params[p.Name] = p
	}

	steps := [3]float32{-1, 0, 1}
	add(&marionette.Param{
		Name:   ParamHead,
		IsVec2: true,
		Min:    marionette.Vec2{-1, -1},
		Max:    marionette.Vec2{1, 1},
		Axes:   marionette.AxisPoints{X: axis3, Y: axis3},
		Bindings: []marionette.Binding{
			scalarBinding(NodeHead, marionette.BindTransformTX, 3, 3, func(x, _ int) float32 { return 18 * steps[x] }),
			scalarBinding(NodeHead, marionette.BindTransformTY, 3, 3, func(_, y int) float32 { return 10 * steps[y] }),
			scalarBinding(NodeHead, marionette.BindTransformRZ, 3, 3, func(x, _ int) float32 { return -0.08 * steps[x] }),
			scalarBinding(NodeEyes, marionette.BindTransformTX, 3, 3, func(x, _ int) float32 { return 6 * steps[x] }),
		},
	})

	mouth, _ := marionette.MeshComponent.Get(w, NodeMouth)
	rest := make([]marionette.Vec2, len(mouth.Vertices))
	smile := marionette.GridDeform(*mouth, mouthCols, mouthRows, func(col, _ int, _ marionette.Vec2) marionette.Vec2 {
		// Corners rise, the middle dips.
		edge := float32(col-mouthCols/2) / float32(mouthCols/2)
		return marionette.Vec2{0, -6*edge*edge + 2}
	})
	add(&marionette.Param{
		Name: ParamSmile,
		Max:  marionette.Vec2{1, 0},
		Axes: marionette.AxisPoints{X: axis2, Y: axis1},
		Bindings: []marionette.Binding{{
			Node:        NodeMouth,
			Kind:        marionette.BindDeform,
			Interpolate: marionette.InterpolateLinear,
			Deforms: grid(2, 1, func(x, _ int) []marionette.Vec2 {
				if x == 0 {
					return rest
				}
				return smile
			}),
		}},
	})

	add(&marionette.Param{
		Name: ParamBreath,
		Max:  marionette.Vec2{1, 0},
		Axes: marionette.AxisPoints{X: axis2, Y: axis1},
		Bindings: []marionette.Binding{
			scalarBinding(NodeBody, marionette.BindTransformSY, 2, 1, func(x, _ int) float32 { return 1 + 0.04*float32(x) }),
			scalarBinding(NodeBody, marionette.BindTransformTY, 2, 1, func(x, _ int) float32 { return -4 * float32(x) }),
		},
	})

	hair, _ := marionette.MeshComponent.Get(w, NodeHair)
	bend := func(dir float32) []marionette.Vec2 {
		return marionette.GridDeform(*hair, hairCols, hairRows, func(_, row int, _ marionette.Vec2) marionette.Vec2 {
			// Lower rows swing further.
			t := float32(row) / hairRows
			return marionette.Vec2{dir * 30 * t * t, 0}
		})
	}
	left, straight, right := bend(-1), bend(0), bend(1)
	add(&marionette.Param{
		Name:   ParamSway,
		IsVec2: true,
		Min:    marionette.Vec2{-1, -1},
		Max:    marionette.Vec2{1, 1},
		Axes:   marionette.AxisPoints{X: axis3, Y: axis3},
		Bindings: []marionette.Binding{
			{
				Node:        NodeHair,
				Kind:        marionette.BindDeform,
				Interpolate: marionette.InterpolateLinear,
				Deforms: grid(3, 3, func(x, _ int) []marionette.Vec2 {
					return [3][]marionette.Vec2{left, straight, right}[x]
				}),
			},
			scalarBinding(NodeHair, marionette.BindTransformSY, 3, 3, func(_, y int) float32 { return 1 + 0.1*steps[y] }),
		},
	})

	add(&marionette.Param{
		Name: ParamBlink,
		Max:  marionette.Vec2{1, 0},
		Axes: marionette.AxisPoints{X: axis2, Y: axis1},
		Bindings: []marionette.Binding{
			scalarBinding(NodeEyes, marionette.BindTransformSY, 2, 1, func(x, _ int) float32 { return 1 - 0.9*float32(x) }),
		},
	})

	return params
}
