// Package marionette evaluates rigged 2D puppets in the Inochi2D model.
//
// A puppet is a tree of nodes plus parameters and physics drivers. Each
// frame the caller sets parameter values; marionette turns them into node
// transforms, mesh deforms and a draw order, and packs vertex data into
// shared buffers a GPU backend can upload as-is.
//
// # Building a puppet
//
// A loader creates a [NodeTree], attaches capabilities to nodes through a
// [World] and describes parameters:
//
//	nodes := marionette.NewNodeTree(marionette.NewNode(0, "Root"))
//	nodes.Add(0, marionette.NewNode(1, "Mouth"))
//
//	world := marionette.NewWorld()
//	marionette.DrawableComponent.Add(world, 1, marionette.NewDrawable())
//	marionette.TexturedMeshComponent.Add(world, 1, marionette.TexturedMesh{Albedo: 0})
//	marionette.MeshComponent.Add(world, 1, marionette.NewGridMesh(64, 32, 4, 2))
//
//	puppet := marionette.NewPuppet(marionette.DefaultConfig(), nodes, world, params)
//	rc := puppet.Prepare()
//
// # Frame loop
//
//	puppet.BeginSetParams()
//	if err := puppet.SetParam("Smile", marionette.Vec2{0.5, 0}); err != nil {
//		// unknown parameter
//	}
//	puppet.EndSetParams(dt)
//
// EndSetParams applies parameters, propagates transforms, steps physics and
// refreshes the [RenderCtx]. A renderer then walks the result with [Draw];
// package ebitenbackend provides one for Ebitengine.
//
// # Errors
//
// Setting an unknown parameter returns an [*UnknownParamError]. Broken
// invariants, such as a deform of the wrong length or a source submitting
// twice in one frame, panic. A physics step that produces non-finite state
// is discarded and logged at debug level.
package marionette
