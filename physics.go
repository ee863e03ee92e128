package marionette

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PuppetPhysics holds the puppet-wide physics constants.
type PuppetPhysics struct {
	PixelsPerMeter float32
	Gravity        float32 // m/s^2
}

// DefaultPuppetPhysics returns the Inochi2D defaults: 1000 px/m and earth
// gravity.
func DefaultPuppetPhysics() PuppetPhysics {
	return PuppetPhysics{PixelsPerMeter: 1000, Gravity: 9.8}
}

// PhysicsModel selects the pendulum simulated by a SimplePhysics driver.
type PhysicsModel uint8

const (
	RigidPendulum  PhysicsModel = iota // fixed-length bob
	SpringPendulum                     // bob on a damped spring
)

func (m PhysicsModel) String() string {
	switch m {
	case RigidPendulum:
		return "Pendulum"
	case SpringPendulum:
		return "SpringPendulum"
	default:
		return fmt.Sprintf("PhysicsModel(%d)", m)
	}
}

// ParamMapMode selects how the bob position is written back to the driven
// parameter.
type ParamMapMode uint8

const (
	MapAngleLength ParamMapMode = iota // (angle / pi, length / rest length)
	MapXY                              // rest-length normalized offset, +y up
	MapYX                              // MapXY with components swapped
	MapLengthAngle                     // MapAngleLength with components swapped
)

func (m ParamMapMode) String() string {
	switch m {
	case MapAngleLength:
		return "AngleLength"
	case MapXY:
		return "XY"
	case MapYX:
		return "YX"
	case MapLengthAngle:
		return "LengthAngle"
	default:
		return fmt.Sprintf("ParamMapMode(%d)", m)
	}
}

// PhysicsProps are the tunables of one driver.
type PhysicsProps struct {
	Gravity       float32 // scale of the puppet gravity
	Length        float32 // rest length in pixels
	Frequency     float32 // spring resonant frequency in Hz
	AngleDamping  float32
	LengthDamping float32
	OutputScale   Vec2
}

// DefaultPhysicsProps returns the Inochi2D defaults.
func DefaultPhysicsProps() PhysicsProps {
	return PhysicsProps{
		Gravity:       1,
		Length:        1,
		Frequency:     1,
		AngleDamping:  0.5,
		LengthDamping: 0.5,
		OutputScale:   Vec2{1, 1},
	}
}

// SimplePhysics makes a node drive a parameter from a simulated pendulum
// hanging off the node's position.
//
// The integrator state below persists across frames and is never reset by
// the frame loop.
type SimplePhysics struct {
	Param     ParamID
	Model     PhysicsModel
	MapMode   ParamMapMode
	Props     PhysicsProps
	LocalOnly bool // follow the node's local translation instead of its world position

	started bool
	vars    physicsVars
	bob     Vec2
	anchor  Vec2
	output  Vec2
}

// Bob returns the simulated bob position, in the same space as Anchor.
func (sp *SimplePhysics) Bob() Vec2 { return sp.bob }

// Anchor returns the anchor position used by the last update.
func (sp *SimplePhysics) Anchor() Vec2 { return sp.anchor }

// Output returns the parameter value produced by the last update.
func (sp *SimplePhysics) Output() Vec2 { return sp.output }

// Physics sub-stepping limits.
const (
	maxPhysicsDelta = 10   // seconds simulated per update at most
	physicsStep     = 0.01 // fixed sub-step in seconds
)

// update advances the simulation by dt seconds following the node
// transform ts and returns the value for the driven parameter.
func (sp *SimplePhysics) update(pp PuppetPhysics, ts *TransformStore, dt float32) Vec2 {
	sp.anchor = sp.calcAnchor(ts)
	if !sp.started {
		sp.resetBob()
		sp.started = true
	}

	h := min(dt, maxPhysicsDelta)
	for h > physicsStep {
		sp.tick(pp, physicsStep)
		h -= physicsStep
	}
	sp.tick(pp, h)

	sp.output = sp.calcOutput(ts)
	return sp.output
}

// resetBob hangs the bob at rest one rest length below the anchor.
func (sp *SimplePhysics) resetBob() {
	sp.bob = sp.anchor.Add(Vec2{0, sp.Props.Length})
	sp.vars = physicsVars{}
	if sp.Model == SpringPendulum {
		sp.vars = physicsVars{sp.bob[0], sp.bob[1], 0, 0}
	}
}

func (sp *SimplePhysics) calcAnchor(ts *TransformStore) Vec2 {
	if sp.LocalOnly {
		t := ts.Relative.Translation
		return Vec2{t[0], t[1]}
	}
	p := ts.Absolute.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	return Vec2{p[0], p[1]}
}

func (sp *SimplePhysics) tick(pp PuppetPhysics, h float32) {
	if h <= 0 {
		return
	}
	g := sp.Props.Gravity * pp.PixelsPerMeter * pp.Gravity

	switch sp.Model {
	case RigidPendulum:
		d := sp.bob.Sub(sp.anchor)
		sp.vars[0] = atan232(-d[0], d[1])
		if !rk4Step(&sp.vars, 2, h, rigidPendulumDeriv(sp.Props, g)) {
			Logger().Debug("physics step discarded", "model", sp.Model, "param", sp.Param)
		}
		angle := sp.vars[0]
		sp.bob = sp.anchor.Add(Vec2{-sin32(angle), cos32(angle)}.Mul(sp.Props.Length))

	case SpringPendulum:
		if !rk4Step(&sp.vars, 4, h, springPendulumDeriv(sp.Props, g, sp.anchor)) {
			Logger().Debug("physics step discarded", "model", sp.Model, "param", sp.Param)
		}
		sp.bob = Vec2{sp.vars[0], sp.vars[1]}
	}
}

// calcOutput maps the bob back to a parameter value. The direction is
// measured in the node's local space, the length in world space.
func (sp *SimplePhysics) calcOutput(ts *TransformStore) Vec2 {
	var local Vec2
	if sp.LocalOnly {
		local = sp.bob.Sub(sp.anchor)
	} else {
		p := ts.Absolute.Inv().Mul4x1(mgl32.Vec4{sp.bob[0], sp.bob[1], 0, 1})
		local = Vec2{p[0], p[1]}
	}
	angle := Vec2{0, 1}
	if l := local.Len(); l > 0 {
		angle = local.Mul(1 / l)
	}

	var relLength float32
	if sp.Props.Length != 0 {
		relLength = sp.bob.Sub(sp.anchor).Len() / sp.Props.Length
	}

	var v Vec2
	switch sp.MapMode {
	case MapXY, MapYX:
		p := angle.Mul(relLength).Sub(Vec2{0, 1})
		v = Vec2{p[0], -p[1]}
		if sp.MapMode == MapYX {
			v = Vec2{v[1], v[0]}
		}
	case MapAngleLength, MapLengthAngle:
		a := atan232(-angle[0], angle[1]) / math.Pi
		v = Vec2{a, relLength}
		if sp.MapMode == MapLengthAngle {
			v = Vec2{relLength, a}
		}
	}
	return Vec2{v[0] * sp.Props.OutputScale[0], v[1] * sp.Props.OutputScale[1]}
}

// physicsOutput is one driver result waiting to be written to its parameter.
type physicsOutput struct {
	Node  NodeID
	Param string
	Value Vec2
}

// PhysicsCtx runs every SimplePhysics driver of a puppet.
type PhysicsCtx struct {
	drivers    []NodeID
	paramNames map[ParamID]string
	outputs    []physicsOutput
}

// newPhysicsCtx collects drivers in pre-order. Panics when a driver names
// a parameter the puppet lacks.
func newPhysicsCtx(nodes *NodeTree, w *World, params *ParamCtx) *PhysicsCtx {
	c := &PhysicsCtx{paramNames: make(map[ParamID]string, len(params.params))}
	for _, p := range params.params {
		c.paramNames[p.ID] = p.Name
	}
	for _, id := range nodes.PreOrder(nodes.Root().ID) {
		sp, ok := SimplePhysicsComponent.Get(w, id)
		if !ok {
			continue
		}
		if _, known := c.paramNames[sp.Param]; !known {
			panic(fmt.Sprintf("marionette: physics node %d drives unknown parameter id %d", id, sp.Param))
		}
		c.drivers = append(c.drivers, id)
	}
	return c
}

// step updates every driver against the current transforms. The returned
// slice is reused by the next call.
func (c *PhysicsCtx) step(pp PuppetPhysics, w *World, dt float32) []physicsOutput {
	c.outputs = c.outputs[:0]
	for _, id := range c.drivers {
		sp := SimplePhysicsComponent.mustGet(w, id)
		ts := TransformStoreComponent.mustGet(w, id)
		v := sp.update(pp, ts, dt)
		c.outputs = append(c.outputs, physicsOutput{Node: id, Param: c.paramNames[sp.Param], Value: v})
	}
	return c.outputs
}
