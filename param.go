package marionette

import (
	"cmp"
	"fmt"
	"slices"
)

// BindingKind is the node attribute a binding drives.
type BindingKind uint8

const (
	BindZSort BindingKind = iota
	BindTransformTX
	BindTransformTY
	BindTransformSX
	BindTransformSY
	BindTransformRX
	BindTransformRY
	BindTransformRZ
	BindDeform
)

var bindingKindNames = [...]string{
	BindZSort:       "zSort",
	BindTransformTX: "transform.t.x",
	BindTransformTY: "transform.t.y",
	BindTransformSX: "transform.s.x",
	BindTransformSY: "transform.s.y",
	BindTransformRX: "transform.r.x",
	BindTransformRY: "transform.r.y",
	BindTransformRZ: "transform.r.z",
	BindDeform:      "deform",
}

func (k BindingKind) String() string {
	if int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return fmt.Sprintf("BindingKind(%d)", k)
}

// ParseBindingKind maps an Inochi2D binding name such as "transform.s.x"
// to a BindingKind.
func ParseBindingKind(s string) (BindingKind, error) {
	for i, name := range bindingKindNames {
		if name == s {
			return BindingKind(i), nil
		}
	}
	return 0, fmt.Errorf("marionette: unknown binding kind %q", s)
}

// AxisPoints are the normalized grid coordinates of a parameter, each axis
// sorted ascending within [0, 1]. One-dimensional parameters use a single
// Y point.
type AxisPoints struct {
	X []float32
	Y []float32
}

// Binding links a parameter to one attribute of one node. Values holds the
// authored deltas for scalar kinds, Deforms the per-vertex offsets for
// BindDeform. Both are indexed by axis position (x, y). An empty IsSet means
// every cell is authored.
type Binding struct {
	Node        NodeID
	Kind        BindingKind
	Interpolate InterpolateMode
	IsSet       Matrix2D[bool]
	Values      Matrix2D[float32]
	Deforms     Matrix2D[[]Vec2]
}

// Param is a bounded 1D or 2D control value driving its bindings.
type Param struct {
	ID       ParamID
	Name     string
	IsVec2   bool
	Min      Vec2
	Max      Vec2
	Defaults Vec2
	Axes     AxisPoints
	Bindings []Binding
}

// Validate checks the parameter against the node tree and world it will
// drive. Every returned error wraps ErrInvalidParam.
func (p *Param) Validate(nodes *NodeTree, w *World) error {
	if p.Min[0] > p.Max[0] || p.Min[1] > p.Max[1] {
		return invalidParam(p, "min %v exceeds max %v", p.Min, p.Max)
	}
	for axis, pts := range [2][]float32{p.Axes.X, p.Axes.Y} {
		if len(pts) == 0 {
			return invalidParam(p, "axis %d has no points", axis)
		}
		if !slices.IsSorted(pts) {
			return invalidParam(p, "axis %d points %v are not sorted", axis, pts)
		}
	}
	w0, h0 := len(p.Axes.X), len(p.Axes.Y)
	for i := range p.Bindings {
		b := &p.Bindings[i]
		if !nodes.Has(b.Node) {
			return invalidParam(p, "binding %d targets unknown node %d", i, b.Node)
		}
		if b.Kind > BindDeform {
			return invalidParam(p, "binding %d has unknown kind %d", i, b.Kind)
		}
		if b.IsSet.Width() != 0 && (b.IsSet.Width() != w0 || b.IsSet.Height() != h0) {
			return invalidParam(p, "binding %d is-set matrix is %dx%d, want %dx%d", i, b.IsSet.Width(), b.IsSet.Height(), w0, h0)
		}
		if b.Kind != BindDeform {
			if b.Values.Width() != w0 || b.Values.Height() != h0 {
				return invalidParam(p, "binding %d (%s) values are %dx%d, want %dx%d", i, b.Kind, b.Values.Width(), b.Values.Height(), w0, h0)
			}
			continue
		}
		if b.Deforms.Width() != w0 || b.Deforms.Height() != h0 {
			return invalidParam(p, "binding %d (deform) values are %dx%d, want %dx%d", i, b.Deforms.Width(), b.Deforms.Height(), w0, h0)
		}
		mesh, ok := MeshComponent.Get(w, b.Node)
		if !ok {
			return invalidParam(p, "deform binding %d targets node %d which has no mesh", i, b.Node)
		}
		for x := range w0 {
			for y := range h0 {
				if n := len(b.Deforms.At(x, y)); n != len(mesh.Vertices) {
					return invalidParam(p, "deform binding %d cell (%d, %d) has %d offsets, mesh has %d vertices", i, x, y, n, len(mesh.Vertices))
				}
			}
		}
	}
	return nil
}

// normalize clamps v to the parameter bounds and maps it to [0, 1]^2.
// A zero-width bound maps to 0.
func (p *Param) normalize(v Vec2) Vec2 {
	var out Vec2
	for c := 0; c < 2; c++ {
		x := min(max(v[c], p.Min[c]), p.Max[c])
		if span := p.Max[c] - p.Min[c]; span != 0 {
			out[c] = (x - p.Min[c]) / span
		}
	}
	return out
}

// axisSegment returns the indices of the grid points bounding t. A single
// point axis yields (0, 0).
func axisSegment(pts []float32, t float32) (lo, hi int) {
	n := len(pts)
	if n == 1 {
		return 0, 0
	}
	i, found := slices.BinarySearch(pts, t)
	switch {
	case found && i == n-1:
		return n - 2, n - 1
	case found:
		return i, i + 1
	case i == 0:
		return 0, 1
	case i >= n:
		return n - 2, n - 1
	}
	return i - 1, i
}

// apply writes the parameter's effect at value v into the world: scalar
// deltas into TransformStore and ZSort, deforms into the target's
// DeformStack under this parameter's source key. scratch is reused for
// interpolated deforms.
func (p *Param) apply(v Vec2, w *World, scratch *[]Vec2) {
	t := p.normalize(v)

	xlo, xhi := axisSegment(p.Axes.X, t[0])
	ylo, yhi := axisSegment(p.Axes.Y, t[1])
	in := interpRange[Vec2]{
		beg: Vec2{p.Axes.X[xlo], p.Axes.Y[ylo]},
		end: Vec2{p.Axes.X[xhi], p.Axes.Y[yhi]},
	}
	// Points outside the grid's span snap to its edge.
	t[0] = min(max(t[0], in.beg[0]), in.end[0])
	t[1] = min(max(t[1], in.beg[1]), in.end[1])

	for i := range p.Bindings {
		b := &p.Bindings[i]

		if b.Kind == BindDeform {
			ds := DeformStackComponent.mustGet(w, b.Node)
			if cap(*scratch) < ds.Len() {
				*scratch = make([]Vec2, ds.Len())
			}
			buf := (*scratch)[:ds.Len()]
			top := interpRange[[]Vec2]{b.Deforms.At(xlo, ylo), b.Deforms.At(xhi, ylo)}
			bottom := interpRange[[]Vec2]{b.Deforms.At(xlo, yhi), b.Deforms.At(xhi, yhi)}
			biInterpolateVec2s(t, in, top, bottom, b.Interpolate, buf)
			ds.Push(ParamDeform(p.ID), buf)
			continue
		}

		top := interpRange[float32]{b.Values.At(xlo, ylo), b.Values.At(xhi, ylo)}
		bottom := interpRange[float32]{b.Values.At(xlo, yhi), b.Values.At(xhi, yhi)}
		d := biInterpolate(t, in, top, bottom, b.Interpolate)

		if b.Kind == BindZSort {
			ZSortComponent.mustGet(w, b.Node).Offset += d
			continue
		}
		rel := &TransformStoreComponent.mustGet(w, b.Node).Relative
		switch b.Kind {
		case BindTransformTX:
			rel.Translation[0] += d
		case BindTransformTY:
			rel.Translation[1] += d
		case BindTransformSX:
			rel.Scale[0] *= d
		case BindTransformSY:
			rel.Scale[1] *= d
		case BindTransformRX:
			rel.Rotation[0] += d
		case BindTransformRY:
			rel.Rotation[1] += d
		case BindTransformRZ:
			rel.Rotation[2] += d
		}
	}
}

// ParamCtx holds the current value of every parameter of a puppet.
type ParamCtx struct {
	params  []*Param // ascending by ID
	byName  map[string]int
	values  []Vec2
	scratch []Vec2
}

// newParamCtx indexes params and seeds every value with its default.
// Panics when a map key differs from its parameter's name or two
// parameters share an ID.
func newParamCtx(params map[string]*Param) *ParamCtx {
	c := &ParamCtx{byName: make(map[string]int, len(params))}
	for name, p := range params {
		if p == nil || p.Name != name {
			panic(fmt.Sprintf("marionette: parameter registered as %q is named differently", name))
		}
		c.params = append(c.params, p)
	}
	slices.SortFunc(c.params, func(a, b *Param) int { return cmp.Compare(a.ID, b.ID) })
	c.values = make([]Vec2, len(c.params))
	for i, p := range c.params {
		if i > 0 && c.params[i-1].ID == p.ID {
			panic(fmt.Sprintf("marionette: parameters %q and %q share id %d", c.params[i-1].Name, p.Name, p.ID))
		}
		c.byName[p.Name] = i
		c.values[i] = p.Defaults
	}
	return c
}

// Set stores the value used by the next apply. Out-of-range values are
// accepted and clamped when applied.
func (c *ParamCtx) Set(name string, v Vec2) error {
	i, ok := c.byName[name]
	if !ok {
		return &UnknownParamError{Name: name}
	}
	c.values[i] = v
	return nil
}

// Get returns the current value of a parameter.
func (c *ParamCtx) Get(name string) (Vec2, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Vec2{}, false
	}
	return c.values[i], true
}

// ResetAll restores every parameter to its default value.
func (c *ParamCtx) ResetAll() {
	for i, p := range c.params {
		c.values[i] = p.Defaults
	}
}

// apply evaluates every parameter whose value is non-zero, in ID order.
func (c *ParamCtx) apply(w *World) {
	for i, p := range c.params {
		v := c.values[i]
		if v == (Vec2{}) {
			continue
		}
		p.apply(v, w, &c.scratch)
	}
}
