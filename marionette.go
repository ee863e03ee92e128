package marionette

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is a 2D vector used for deform offsets, mesh vertices and parameter values.
type Vec2 = mgl32.Vec2

// Vec3 is a 3D vector used for translations, Euler rotations and colors.
type Vec3 = mgl32.Vec3

// Mat4 is a column-major 4x4 matrix holding absolute node transforms.
type Mat4 = mgl32.Mat4

// NodeID identifies a node within one puppet. IDs are assigned by the loader
// and never reused during a session.
type NodeID uint32

// ParamID identifies a parameter within one puppet.
type ParamID uint32

// TextureID indexes a texture owned by the renderer.
type TextureID uint32

// BlendMode selects how a drawable is composited over what is below it.
// The set follows the Inochi2D blend modes.
type BlendMode uint8

const (
	BlendNormal         BlendMode = iota // source-over
	BlendMultiply                        // source * destination
	BlendColorDodge                      // destination / (1 - source)
	BlendLinearDodge                     // additive
	BlendScreen                          // 1 - (1-src)*(1-dst)
	BlendClipToLower                     // draw only where destination has alpha
	BlendSliceFromLower                  // erase destination where source has alpha
)

var blendModeNames = [...]string{
	BlendNormal:         "Normal",
	BlendMultiply:       "Multiply",
	BlendColorDodge:     "ColorDodge",
	BlendLinearDodge:    "LinearDodge",
	BlendScreen:         "Screen",
	BlendClipToLower:    "ClipToLower",
	BlendSliceFromLower: "SliceFromLower",
}

func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", b)
}

// ParseBlendMode maps an Inochi2D blend mode name to a BlendMode.
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendModeNames {
		if name == s {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, fmt.Errorf("marionette: unknown blend mode %q", s)
}

// MaskMode selects how a mask source affects the masked drawable.
type MaskMode uint8

const (
	MaskModeMask  MaskMode = iota // draw only inside the mask
	MaskModeDodge                 // draw only outside the mask
)

func (m MaskMode) String() string {
	switch m {
	case MaskModeMask:
		return "Mask"
	case MaskModeDodge:
		return "DodgeMask"
	default:
		return fmt.Sprintf("MaskMode(%d)", m)
	}
}

// ParseMaskMode maps an Inochi2D mask mode name to a MaskMode.
func ParseMaskMode(s string) (MaskMode, error) {
	switch s {
	case "Mask":
		return MaskModeMask, nil
	case "DodgeMask", "Dodge":
		return MaskModeDodge, nil
	}
	return MaskModeMask, fmt.Errorf("marionette: unknown mask mode %q", s)
}
