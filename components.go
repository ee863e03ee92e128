package marionette

// Blending describes how a drawable is composited.
type Blending struct {
	Mode       BlendMode
	Tint       Vec3
	ScreenTint Vec3
	Opacity    float32
}

// Mask names a node whose shape masks a drawable.
type Mask struct {
	Source NodeID
	Mode   MaskMode
}

// Masks is the mask list of a drawable.
type Masks struct {
	Threshold float32
	Masks     []Mask
}

// Drawable marks a node as visible. Its shape comes from either a
// TexturedMesh or a Composite component.
type Drawable struct {
	Blending Blending
	Masks    *Masks // nil when unmasked
}

// NewDrawable returns a Drawable with normal blending, white tint and full
// opacity.
func NewDrawable() Drawable {
	return Drawable{Blending: Blending{
		Mode:    BlendNormal,
		Tint:    Vec3{1, 1, 1},
		Opacity: 1,
	}}
}

// Mesh is a triangle mesh in node-local space.
type Mesh struct {
	Vertices []Vec2
	UVs      []Vec2
	Indices  []uint16
	Origin   Vec2
}

// TexturedMesh gives a drawable a mesh shape sampled from textures.
type TexturedMesh struct {
	Albedo   TextureID
	Emissive TextureID
	Bumpmap  TextureID
}

// Composite marks a drawable whose drawable children are rendered offscreen
// and drawn as one unit.
type Composite struct{}

// TransformStore holds a node's per-frame transform state. Relative starts
// each frame as the node's authored offset and absorbs parameter deltas.
type TransformStore struct {
	Relative TransformOffset
	Absolute Mat4
}

// ZSort holds a node's per-frame draw-order state. Offset absorbs parameter
// deltas; Value is the ancestor-summed result after propagation.
type ZSort struct {
	Offset float32
	Value  float32
}

// Component kinds. Drawable, Mesh, TexturedMesh, Composite and SimplePhysics
// are authored by the loader; the rest are attached by [NewPuppet] and
// [Puppet.Prepare].
var (
	DrawableComponent      = newComponentType[Drawable]("Drawable")
	MeshComponent          = newComponentType[Mesh]("Mesh")
	TexturedMeshComponent  = newComponentType[TexturedMesh]("TexturedMesh")
	CompositeComponent     = newComponentType[Composite]("Composite")
	SimplePhysicsComponent = newComponentType[SimplePhysics]("SimplePhysics")

	TransformStoreComponent = newComponentType[TransformStore]("TransformStore")
	ZSortComponent          = newComponentType[ZSort]("ZSort")
	DeformStackComponent    = newComponentType[DeformStack]("DeformStack")
)
