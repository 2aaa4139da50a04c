package coordspace

import "github.com/soypat/geometry/ms3"

// Aabb128 is an axis-aligned world-space box in millimeters.
type Aabb128 struct {
	Min, Max WorldPosition
}

// LocalAabb is the camera-relative float32 analogue of an Aabb128, for
// cheap overlap tests via IntersectsAabb. The horizon and quadtree
// packages do not use it; they work from bounding spheres and quadtree
// paths directly. Backed by
// soypat/geometry's ms3.Box, the AABB type the corpus's SDF package
// (soypat-gsdf) already uses for bounding-volume plumbing.
type LocalAabb = ms3.Box

// ToLocalAabb projects a world-space box into camera-relative space.
func ToLocalAabb(b Aabb128, origin WorldPosition) LocalAabb {
	min := ToLocal(b.Min, origin)
	max := ToLocal(b.Max, origin)
	return LocalAabb{
		Min: ms3.Vec{X: min.X(), Y: min.Y(), Z: min.Z()},
		Max: ms3.Vec{X: max.X(), Y: max.Y(), Z: max.Z()},
	}
}

// IntersectsAabb reports whether two AABBs overlap, including touching
// faces.
func IntersectsAabb(a, b LocalAabb) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}
