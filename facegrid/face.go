// Package facegrid holds the static cube-face topology: the six faces, the
// 24-edge adjacency graph between them, and the cubesphere projection from
// a unit-square face UV to a point on the unit sphere.
package facegrid

import "github.com/go-gl/mathgl/mgl32"

// Face identifies one of the six cube faces.
type Face uint8

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
	faceCount = 6
)

func (f Face) String() string {
	switch f {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return "invalid-face"
	}
}

// Edge identifies one of a face's four edges in UV space.
type Edge uint8

const (
	EdgeU0 Edge = iota // u == 0
	EdgeU1             // u == 1
	EdgeV0             // v == 0
	EdgeV1             // v == 1
	edgeCount = 4
)

// Neighbor describes the face/edge on the other side of an edge crossing,
// plus whether the crossing reverses the traversal direction along that
// edge (rotation is 0 or 1 steps of 90 degrees relative orientation,
// reduced to "same" or "reversed" since cube faces only ever meet at
// reversed or matched parameterizations for axis-aligned quadtree edges).
type Neighbor struct {
	Face     Face
	Edge     Edge
	Reversed bool
}

// edgeNeighbor is the static 6x4 adjacency table. Index [face][edge].
// Derived directly from ToCubePoint's per-face formulas: each entry's
// shared 3D edge curve was solved algebraically against every other
// face's four edges to find its match and whether the two faces'
// parameterizations run the same (Reversed=false) or opposite
// (Reversed=true) direction along it.
var edgeNeighbor = [faceCount][edgeCount]Neighbor{
	PosX: {
		EdgeU0: {Face: PosZ, Edge: EdgeU1, Reversed: false},
		EdgeU1: {Face: NegZ, Edge: EdgeU0, Reversed: false},
		EdgeV0: {Face: NegY, Edge: EdgeU1, Reversed: true},
		EdgeV1: {Face: PosY, Edge: EdgeU1, Reversed: false},
	},
	NegX: {
		EdgeU0: {Face: NegZ, Edge: EdgeU1, Reversed: false},
		EdgeU1: {Face: PosZ, Edge: EdgeU0, Reversed: false},
		EdgeV0: {Face: NegY, Edge: EdgeU0, Reversed: false},
		EdgeV1: {Face: PosY, Edge: EdgeU0, Reversed: true},
	},
	PosY: {
		EdgeU0: {Face: NegX, Edge: EdgeV1, Reversed: true},
		EdgeU1: {Face: PosX, Edge: EdgeV1, Reversed: false},
		EdgeV0: {Face: PosZ, Edge: EdgeV1, Reversed: false},
		EdgeV1: {Face: NegZ, Edge: EdgeV1, Reversed: true},
	},
	NegY: {
		EdgeU0: {Face: NegX, Edge: EdgeV0, Reversed: false},
		EdgeU1: {Face: PosX, Edge: EdgeV0, Reversed: true},
		EdgeV0: {Face: NegZ, Edge: EdgeV0, Reversed: true},
		EdgeV1: {Face: PosZ, Edge: EdgeV0, Reversed: false},
	},
	PosZ: {
		EdgeU0: {Face: NegX, Edge: EdgeU1, Reversed: false},
		EdgeU1: {Face: PosX, Edge: EdgeU0, Reversed: false},
		EdgeV0: {Face: NegY, Edge: EdgeV1, Reversed: false},
		EdgeV1: {Face: PosY, Edge: EdgeV0, Reversed: false},
	},
	NegZ: {
		EdgeU0: {Face: PosX, Edge: EdgeU1, Reversed: false},
		EdgeU1: {Face: NegX, Edge: EdgeU0, Reversed: false},
		EdgeV0: {Face: NegY, Edge: EdgeV0, Reversed: true},
		EdgeV1: {Face: PosY, Edge: EdgeV1, Reversed: true},
	},
}

// NeighborAcross returns the face/edge adjacent to (f, e).
func NeighborAcross(f Face, e Edge) Neighbor {
	return edgeNeighbor[f][e]
}

// AllFaces returns the six faces in a stable order.
func AllFaces() [faceCount]Face {
	return [faceCount]Face{PosX, NegX, PosY, NegY, PosZ, NegZ}
}

// ToCubePoint maps a face and UV in [0,1]^2 to a point on the surface of
// the axis-aligned unit cube [-1,1]^3.
func ToCubePoint(f Face, u, v float64) mgl32.Vec3 {
	// Remap UV from [0,1] to [-1,1].
	a := float32(2*u - 1)
	b := float32(2*v - 1)
	switch f {
	case PosX:
		return mgl32.Vec3{1, b, -a}
	case NegX:
		return mgl32.Vec3{-1, b, a}
	case PosY:
		return mgl32.Vec3{a, 1, -b}
	case NegY:
		return mgl32.Vec3{a, -1, b}
	case PosZ:
		return mgl32.Vec3{a, b, 1}
	case NegZ:
		return mgl32.Vec3{-a, b, -1}
	default:
		return mgl32.Vec3{}
	}
}

// ToSphereDirection projects a cube-surface point outward to the unit
// sphere.
func ToSphereDirection(cubePoint mgl32.Vec3) mgl32.Vec3 {
	return cubePoint.Normalize()
}
