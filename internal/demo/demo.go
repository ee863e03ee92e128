// Package demo builds a small procedural puppet used by the example
// program, the CLI and integration tests. It needs no asset files: parts
// reference texture slots the caller fills with generated images.
package demo

import (
	"github.com/phanxgames/marionette"
)

// Parameter names.
const (
	ParamHead   = "Head:: Yaw-Pitch"
	ParamSmile  = "Smile"
	ParamBreath = "Body:: Breath"
	ParamSway   = "Hair:: Sway"
	ParamBlink  = "Eyes:: Blink"
)

// Node IDs.
const (
	NodeRoot marionette.NodeID = iota
	NodeBody
	NodeHead
	NodeMouth
	NodeEyes
	NodeEyeL
	NodeEyeR
	NodeBlush
	NodeHairAnchor
	NodeHair
)

// Texture slots.
const (
	TexBody marionette.TextureID = iota
	TexHead
	TexMouth
	TexEye
	TexBlush
	TexHair
	NumTextures
)

// Mesh grid sizes, needed to build matching deforms.
const (
	mouthCols, mouthRows = 4, 1
	hairCols, hairRows   = 1, 4
)

// Build assembles the demo rig and returns the puppet, not yet prepared.
func Build(cfg marionette.Config) *marionette.Puppet {
	nodes, w := buildTree()
	return marionette.NewPuppet(cfg, nodes, w, buildParams(w))
}

func node(id marionette.NodeID, name string, x, y, z float32) marionette.Node {
	n := marionette.NewNode(id, name)
	n.TransOffset.Translation = marionette.Vec3{x, y, 0}
	n.ZSort = z
	return n
}

func part(w *marionette.World, id marionette.NodeID, tex marionette.TextureID, mesh marionette.Mesh) {
	marionette.DrawableComponent.Add(w, id, marionette.NewDrawable())
	marionette.MeshComponent.Add(w, id, mesh)
	marionette.TexturedMeshComponent.Add(w, id, marionette.TexturedMesh{Albedo: tex})
}

func buildTree() (*marionette.NodeTree, *marionette.World) {
	nodes := marionette.NewNodeTree(marionette.NewNode(NodeRoot, "Root"))
	w := marionette.NewWorld()

	nodes.Add(NodeRoot, node(NodeBody, "Body", 0, 120, 0))
	part(w, NodeBody, TexBody, marionette.NewGridMesh(160, 240, 4, 4))

	nodes.Add(NodeBody, node(NodeHead, "Head", 0, -190, -0.1))
	part(w, NodeHead, TexHead, marionette.NewPolygonMesh(octagon(70)))

	nodes.Add(NodeHead, node(NodeMouth, "Mouth", 0, 32, -0.05))
	part(w, NodeMouth, TexMouth, marionette.NewGridMesh(40, 10, mouthCols, mouthRows))

	nodes.Add(NodeHead, node(NodeEyes, "Eyes", 0, -12, -0.02))
	marionette.DrawableComponent.Add(w, NodeEyes, marionette.NewDrawable())
	marionette.CompositeComponent.Add(w, NodeEyes, marionette.Composite{})

	nodes.Add(NodeEyes, node(NodeEyeL, "Eye L", -24, 0, 0))
	part(w, NodeEyeL, TexEye, marionette.NewQuadMesh(18, 18))
	nodes.Add(NodeEyes, node(NodeEyeR, "Eye R", 24, 0, 0))
	part(w, NodeEyeR, TexEye, marionette.NewQuadMesh(18, 18))

	nodes.Add(NodeHead, node(NodeBlush, "Blush", 0, 14, -0.01))
	part(w, NodeBlush, TexBlush, marionette.NewQuadMesh(150, 24))
	if d, ok := marionette.DrawableComponent.Get(w, NodeBlush); ok {
		d.Blending.Mode = marionette.BlendMultiply
		d.Blending.Opacity = 0.6
		d.Masks = &marionette.Masks{
			Threshold: 0.5,
			Masks:     []marionette.Mask{{Source: NodeHead, Mode: marionette.MaskModeMask}},
		}
	}

	nodes.Add(NodeHead, node(NodeHairAnchor, "Hair Physics", 0, -60, 0))
	props := marionette.DefaultPhysicsProps()
	props.Length = 80
	props.Frequency = 1.5
	props.AngleDamping = 0.4
	props.LengthDamping = 0.8
	marionette.SimplePhysicsComponent.Add(w, NodeHairAnchor, marionette.SimplePhysics{
		Param:   paramIDs[ParamSway],
		Model:   marionette.SpringPendulum,
		MapMode: marionette.MapXY,
		Props:   props,
	})

	hair := node(NodeHair, "Hair", 0, -30, 0.3)
	nodes.Add(NodeHead, hair)
	part(w, NodeHair, TexHair, marionette.NewGridMesh(150, 120, hairCols, hairRows))

	return nodes, w
}

// octagon returns a regular octagon of radius r centred on the origin.
func octagon(r float32) []marionette.Vec2 {
	const s = 0.70710678 // sin(45°)
	return []marionette.Vec2{
		{0, -r}, {r * s, -r * s}, {r, 0}, {r * s, r * s},
		{0, r}, {-r * s, r * s}, {-r, 0}, {-r * s, -r * s},
	}
}
