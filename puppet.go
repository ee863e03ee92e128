package marionette

import (
	"fmt"
	"slices"
	"time"
)

// Config holds puppet-wide settings supplied by the loader.
type Config struct {
	Physics PuppetPhysics
	// Debug enables extra invariant checks and per-frame timing logs.
	Debug bool
}

// DefaultConfig returns a config with Inochi2D physics defaults.
func DefaultConfig() Config {
	return Config{Physics: DefaultPuppetPhysics()}
}

// PhysicsEvent reports the value a physics driver wrote to its parameter.
type PhysicsEvent struct {
	Node  NodeID
	Param string
	Value Vec2
}

// EventSink receives physics events. Set one with [Puppet.SetEventSink].
type EventSink interface {
	EmitEvent(event PhysicsEvent)
}

// Puppet is a loaded, evaluable rig. All methods must be called from one
// goroutine.
//
// A frame is evaluated with
//
//	p.BeginSetParams()
//	_ = p.SetParam("Head:: Yaw-Pitch", v)
//	p.EndSetParams(dt)
type Puppet struct {
	cfg     Config
	nodes   *NodeTree
	world   *World
	params  *ParamCtx
	byName  map[string]*Param
	physics *PhysicsCtx
	render  *RenderCtx

	meshNodes []NodeID
	inFrame   bool
	viewport  Viewport
	sink      EventSink
	debug     bool
}

// NewPuppet takes ownership of a loaded node tree, its components and its
// parameters. It attaches the per-frame components every node needs and
// resolves the initial transforms. Panics when the rig is inconsistent,
// e.g. a binding whose value grid does not match its parameter's axes.
func NewPuppet(cfg Config, nodes *NodeTree, w *World, params map[string]*Param) *Puppet {
	p := &Puppet{
		cfg:    cfg,
		nodes:  nodes,
		world:  w,
		byName: params,
	}
	p.SetDebugMode(cfg.Debug)

	for _, id := range nodes.PreOrder(nodes.Root().ID) {
		TransformStoreComponent.Add(w, id, TransformStore{Relative: nodes.Get(id).TransOffset})
		ZSortComponent.Add(w, id, ZSort{})
		if mesh, ok := MeshComponent.Get(w, id); ok {
			DeformStackComponent.Add(w, id, NewDeformStack(len(mesh.Vertices)))
			p.meshNodes = append(p.meshNodes, id)
		}
	}

	p.params = newParamCtx(params)
	for _, param := range p.params.params {
		if err := param.Validate(nodes, w); err != nil {
			panic(err)
		}
	}
	p.physics = newPhysicsCtx(nodes, w, p.params)

	resetTransforms(nodes, w)
	updateTransforms(nodes, w)
	return p
}

// Prepare lays out the shared render buffers and returns the render
// context. Panics when called twice.
func (p *Puppet) Prepare() *RenderCtx {
	if p.render != nil {
		panic("marionette: puppet already prepared for rendering")
	}
	p.render = newRenderCtx(p.nodes, p.world)
	p.render.viewport = p.viewport
	p.render.update(p.nodes, p.world)
	return p.render
}

// BeginSetParams starts a frame: transform and z-sort deltas are cleared
// and deform stacks accept new submissions. Parameter values are kept.
func (p *Puppet) BeginSetParams() {
	p.resetFrame()
	p.inFrame = true
}

func (p *Puppet) resetFrame() {
	for _, id := range p.meshNodes {
		DeformStackComponent.mustGet(p.world, id).Reset()
	}
	resetTransforms(p.nodes, p.world)
}

// SetParam sets the value of the named parameter for this and later
// frames. Values outside the parameter bounds are clamped when applied.
func (p *Puppet) SetParam(name string, v Vec2) error {
	return p.params.Set(name, v)
}

// ParamValue returns the current value of the named parameter.
func (p *Puppet) ParamValue(name string) (Vec2, bool) {
	return p.params.Get(name)
}

// ResetParams restores every parameter to its default value.
func (p *Puppet) ResetParams() {
	p.params.ResetAll()
}

// EndSetParams evaluates the frame: parameters are applied, transforms
// propagated, physics advanced by dt seconds and the render context
// refreshed. Physics outputs are written to their parameters and applied
// again before the render refresh, so they show on screen this frame and
// persist as parameter values for the next one.
func (p *Puppet) EndSetParams(dt float32) {
	if !p.inFrame {
		p.resetFrame()
	}
	p.inFrame = false

	var stats debugStats
	start := time.Now()

	p.params.apply(p.world)
	stats.applyTime = time.Since(start)

	mark := time.Now()
	updateTransforms(p.nodes, p.world)
	stats.transformTime = time.Since(mark)

	if len(p.physics.drivers) > 0 {
		mark = time.Now()
		outs := p.physics.step(p.cfg.Physics, p.world, dt)
		p.resetFrame()
		for _, o := range outs {
			if err := p.params.Set(o.Param, o.Value); err != nil {
				panic(fmt.Sprintf("marionette: physics output: %v", err))
			}
			if p.sink != nil {
				p.sink.EmitEvent(PhysicsEvent(o))
			}
		}
		p.params.apply(p.world)
		updateTransforms(p.nodes, p.world)
		stats.physicsTime = time.Since(mark)
		stats.drivers = len(outs)
	}

	if p.render != nil {
		mark = time.Now()
		p.render.update(p.nodes, p.world)
		stats.renderTime = time.Since(mark)
	}
	p.debugLog(stats)
}

// Resize records the viewport size for the renderer.
func (p *Puppet) Resize(width, height int) {
	p.viewport = Viewport{Width: width, Height: height}
	if p.render != nil {
		p.render.viewport = p.viewport
	}
}

// Clear asks the renderer to clear its target before the next draw.
func (p *Puppet) Clear() {
	if p.render != nil {
		p.render.clearDirty = true
	}
}

// Nodes returns the node tree.
func (p *Puppet) Nodes() *NodeTree { return p.nodes }

// World returns the component store.
func (p *Puppet) World() *World { return p.world }

// RenderCtx returns the render context, or nil before Prepare.
func (p *Puppet) RenderCtx() *RenderCtx { return p.render }

// Physics returns the puppet-wide physics constants.
func (p *Puppet) Physics() PuppetPhysics { return p.cfg.Physics }

// Param returns the named parameter.
func (p *Puppet) Param(name string) (*Param, bool) {
	param, ok := p.byName[name]
	return param, ok
}

// Params returns every parameter ordered by ID.
func (p *Puppet) Params() []*Param {
	return slices.Clone(p.params.params)
}

// SetEventSink installs sink to receive physics events. Pass nil to stop.
func (p *Puppet) SetEventSink(sink EventSink) {
	p.sink = sink
}

// SetDebugMode toggles invariant checks and frame timing logs.
func (p *Puppet) SetDebugMode(enabled bool) {
	p.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set puppet debug flag so component
// operations, which lack a puppet pointer, can check it cheaply.
var globalDebug bool
