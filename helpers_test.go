package marionette

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec2(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(float64(got[0]-want[0])) > epsilon || math.Abs(float64(got[1]-want[1])) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMat4(t *testing.T, name string, got, want Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v\ngot  %v\nwant %v", name, i, got[i], want[i], got, want)
			return
		}
	}
}

// rig assembles puppets for tests.
type rig struct {
	nodes  *NodeTree
	world  *World
	params map[string]*Param
}

func newRig() *rig {
	return &rig{
		nodes:  NewNodeTree(NewNode(0, "Root")),
		world:  NewWorld(),
		params: map[string]*Param{},
	}
}

func (r *rig) node(parent, id NodeID, name string) *Node {
	r.nodes.Add(parent, NewNode(id, name))
	return r.nodes.Get(id)
}

// part adds a drawable textured mesh node.
func (r *rig) part(parent, id NodeID, name string, mesh Mesh) *Node {
	n := r.node(parent, id, name)
	DrawableComponent.Add(r.world, id, NewDrawable())
	MeshComponent.Add(r.world, id, mesh)
	TexturedMeshComponent.Add(r.world, id, TexturedMesh{Albedo: TextureID(id)})
	return n
}

// composite adds a drawable composite node.
func (r *rig) composite(parent, id NodeID, name string) *Node {
	n := r.node(parent, id, name)
	DrawableComponent.Add(r.world, id, NewDrawable())
	CompositeComponent.Add(r.world, id, Composite{})
	return n
}

func (r *rig) param(p *Param) *Param {
	r.params[p.Name] = p
	return p
}

func (r *rig) puppet() *Puppet {
	return NewPuppet(DefaultConfig(), r.nodes, r.world, r.params)
}

// columns builds a matrix from cols[x][y] and panics on ragged input.
func columns[T any](cols ...[]T) Matrix2D[T] {
	m, err := Matrix2DFromColumns(cols)
	if err != nil {
		panic(err)
	}
	return m
}

// filled returns n copies of v.
func filled(n int, v Vec2) []Vec2 {
	out := make([]Vec2, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// scalarParam returns a 1D parameter over [0, 1] with axis points xs.
func scalarParam(id ParamID, name string, xs ...float32) *Param {
	return &Param{
		ID:       id,
		Name:     name,
		Max:      Vec2{1, 0},
		Defaults: Vec2{},
		Axes:     AxisPoints{X: xs, Y: []float32{0}},
	}
}

// scalarValues builds a one-row value matrix for a 1D parameter.
func scalarValues(vals ...float32) Matrix2D[float32] {
	cols := make([][]float32, len(vals))
	for i, v := range vals {
		cols[i] = []float32{v}
	}
	return columns(cols...)
}
