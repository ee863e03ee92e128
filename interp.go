package marionette

import "fmt"

// InterpolateMode selects how binding values are blended between grid
// points.
type InterpolateMode uint8

const (
	InterpolateNearest InterpolateMode = iota // snap to the closer grid point on each axis
	InterpolateLinear                         // bilinear
)

func (m InterpolateMode) String() string {
	switch m {
	case InterpolateNearest:
		return "Nearest"
	case InterpolateLinear:
		return "Linear"
	default:
		return fmt.Sprintf("InterpolateMode(%d)", m)
	}
}

// ParseInterpolateMode maps an Inochi2D interpolation name to a mode.
func ParseInterpolateMode(s string) (InterpolateMode, error) {
	switch s {
	case "Nearest":
		return InterpolateNearest, nil
	case "Linear":
		return InterpolateLinear, nil
	}
	return InterpolateLinear, fmt.Errorf("marionette: unknown interpolation mode %q", s)
}

// interpRange is a closed interval [beg, end].
type interpRange[T any] struct {
	beg, end T
}

// interpolate maps t from in onto out. A zero-width input range yields
// out.beg.
func interpolate(t float32, in interpRange[float32], out interpRange[float32], mode InterpolateMode) float32 {
	span := in.end - in.beg
	if span == 0 {
		return out.beg
	}
	if mode == InterpolateNearest {
		if in.end-t < t-in.beg {
			return out.end
		}
		return out.beg
	}
	if t == in.end {
		return out.end
	}
	return (t-in.beg)*(out.end-out.beg)/span + out.beg
}

// biInterpolate blends the four cell corners at t. top runs along x at the
// cell's minimum y, bottom along x at its maximum y.
func biInterpolate(t Vec2, in interpRange[Vec2], top, bottom interpRange[float32], mode InterpolateMode) float32 {
	inX := interpRange[float32]{in.beg[0], in.end[0]}
	inY := interpRange[float32]{in.beg[1], in.end[1]}
	beg := interpolate(t[0], inX, top, mode)
	end := interpolate(t[0], inX, bottom, mode)
	return interpolate(t[1], inY, interpRange[float32]{beg, end}, mode)
}

// biInterpolateVec2s writes the per-element blend of four offset lists into
// out, which must be as long as each corner list.
func biInterpolateVec2s(t Vec2, in interpRange[Vec2], top, bottom interpRange[[]Vec2], mode InterpolateMode, out []Vec2) {
	for i := range out {
		for c := 0; c < 2; c++ {
			out[i][c] = biInterpolate(t, in,
				interpRange[float32]{top.beg[i][c], top.end[i][c]},
				interpRange[float32]{bottom.beg[i][c], bottom.end[i][c]},
				mode)
		}
	}
}
