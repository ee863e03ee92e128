package marionette

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformOffset is a node transform relative to its parent.
type TransformOffset struct {
	Translation Vec3
	Rotation    Vec3 // Euler angles in radians, applied X then Y then Z
	Scale       Vec2
	PixelSnap   bool
}

// NewTransformOffset returns the identity offset.
func NewTransformOffset() TransformOffset {
	return TransformOffset{Scale: Vec2{1, 1}}
}

// Matrix composes the offset as Translate * Rx * Ry * Rz * Scale. With
// PixelSnap set the x and y translation are rounded to whole pixels.
func (o TransformOffset) Matrix() Mat4 {
	tx, ty, tz := o.Translation[0], o.Translation[1], o.Translation[2]
	if o.PixelSnap {
		tx = float32(math.Round(float64(tx)))
		ty = float32(math.Round(float64(ty)))
	}
	rot := mgl32.HomogRotate3DX(o.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(o.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation[2]))
	return mgl32.Translate3D(tx, ty, tz).
		Mul4(rot).
		Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], 1))
}

// resetTransforms re-seeds every node's relative transform from its authored
// offset and clears z-sort deltas. Deltas from parameters never carry over
// between frames.
func resetTransforms(nodes *NodeTree, w *World) {
	for _, an := range nodes.arena {
		ts := TransformStoreComponent.mustGet(w, an.node.ID)
		ts.Relative = an.node.TransOffset
		zs := ZSortComponent.mustGet(w, an.node.ID)
		zs.Offset = 0
	}
}

// updateTransforms resolves absolute transforms and summed z-sort values in
// pre-order so every parent is final before its children are read.
func updateTransforms(nodes *NodeTree, w *World) {
	root := nodes.arena[0].node.ID
	rootTS := TransformStoreComponent.mustGet(w, root)
	rootTS.Absolute = rootTS.Relative.Matrix()
	rootAbs := rootTS.Absolute
	rootZ := ZSortComponent.mustGet(w, root)
	rootZ.Value = nodes.arena[0].node.ZSort + rootZ.Offset

	nodes.walk(0, func(slot int) bool {
		if slot == 0 {
			return true
		}
		an := nodes.arena[slot]
		parent := nodes.arena[an.parent].node.ID

		base := rootAbs
		if !an.node.LockToRoot {
			base = TransformStoreComponent.mustGet(w, parent).Absolute
		}
		ts := TransformStoreComponent.mustGet(w, an.node.ID)
		ts.Absolute = base.Mul4(ts.Relative.Matrix())

		parentZ := ZSortComponent.mustGet(w, parent).Value
		zs := ZSortComponent.mustGet(w, an.node.ID)
		zs.Value = parentZ + an.node.ZSort + zs.Offset
		return true
	})
}
