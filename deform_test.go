package marionette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeformStackCombineSums(t *testing.T) {
	s := NewDeformStack(2)
	s.Push(ParamDeform(1), []Vec2{{1, 0}, {0, 1}})
	s.Push(NodeDeform(4), []Vec2{{2, 2}, {-1, 0}})

	out := make([]Vec2, 2)
	s.Combine(out)
	assert.Equal(t, []Vec2{{3, 2}, {-1, 1}}, out)
}

func TestDeformStackOrderIndependent(t *testing.T) {
	a := []Vec2{{0.1, 0.2}}
	b := []Vec2{{1e7, -3}}
	c := []Vec2{{-1e7, 0.7}}

	first := NewDeformStack(1)
	first.Push(ParamDeform(0), a)
	first.Push(ParamDeform(1), b)
	first.Push(NodeDeform(0), c)

	second := NewDeformStack(1)
	second.Push(NodeDeform(0), c)
	second.Push(ParamDeform(1), b)
	second.Push(ParamDeform(0), a)

	x, y := make([]Vec2, 1), make([]Vec2, 1)
	first.Combine(x)
	second.Combine(y)
	assert.Equal(t, x, y, "sum must be bit-identical regardless of submission order")
}

func TestDeformStackResetDropsSubmissions(t *testing.T) {
	s := NewDeformStack(1)
	s.Push(ParamDeform(0), []Vec2{{5, 5}})
	s.Reset()

	out := []Vec2{{9, 9}}
	s.Combine(out)
	assert.Equal(t, []Vec2{{0, 0}}, out, "unsubmitted sources contribute nothing")

	s.Push(ParamDeform(0), []Vec2{{1, 1}})
	s.Combine(out)
	assert.Equal(t, []Vec2{{1, 1}}, out)
}

func TestDeformStackPushCopies(t *testing.T) {
	s := NewDeformStack(1)
	in := []Vec2{{1, 2}}
	s.Push(ParamDeform(0), in)
	in[0] = Vec2{7, 7}

	out := make([]Vec2, 1)
	s.Combine(out)
	assert.Equal(t, Vec2{1, 2}, out[0])
}

func TestDeformStackDoubleSubmitPanics(t *testing.T) {
	s := NewDeformStack(1)
	s.Push(ParamDeform(2), []Vec2{{1, 1}})
	require.Panics(t, func() { s.Push(ParamDeform(2), []Vec2{{1, 1}}) })

	// Same numeric id from another source kind is a different source.
	require.NotPanics(t, func() { s.Push(NodeDeform(2), []Vec2{{1, 1}}) })
}

func TestDeformStackLengthMismatchPanics(t *testing.T) {
	s := NewDeformStack(3)
	assert.Equal(t, 3, s.Len())
	require.Panics(t, func() { s.Push(ParamDeform(0), make([]Vec2, 2)) })
	require.Panics(t, func() { s.Combine(make([]Vec2, 4)) })
}
