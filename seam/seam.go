package seam

import "github.com/kestrelworks/planetlod/meshdata"

// NeighborLodDelta describes, for each of the six directions, how many LOD
// levels coarser the neighbor across that face is (0 = same LOD, 1 = one
// level coarser). The quadtree balance invariant guarantees this never
// exceeds 1.
type NeighborLodDelta [6]int

// deltaFor returns the LOD delta for a vertex's face normal.
func (n NeighborLodDelta) deltaFor(dir meshdata.Direction) int {
	return n[dir]
}

// Fixer eliminates T-junctions against coarser neighbors and can add skirt
// geometry as a fallback visual seal where constraining alone would distort
// the surface too much.
type Fixer struct{}

// NewFixer returns a ready-to-use seam fixer.
func NewFixer() *Fixer { return &Fixer{} }

// onBoundaryPlane reports whether a vertex lies on the chunk face that dir
// points out of, given the chunk's voxel resolution.
func onBoundaryPlane(v meshdata.PackedVertex, dir meshdata.Direction, resolution int) bool {
	switch dir {
	case meshdata.DirPosX:
		return int(v.X) == resolution
	case meshdata.DirNegX:
		return int(v.X) == 0
	case meshdata.DirPosY:
		return int(v.Y) == resolution
	case meshdata.DirNegY:
		return int(v.Y) == 0
	case meshdata.DirPosZ:
		return int(v.Z) == resolution
	default: // DirNegZ
		return int(v.Z) == 0
	}
}

// snapToFactor rounds n to the nearest multiple of factor, clamped to
// [0, resolution].
func snapToFactor(n, factor, resolution int) int {
	snapped := ((n + factor/2) / factor) * factor
	if snapped > resolution {
		snapped = resolution
	}
	if snapped < 0 {
		snapped = 0
	}
	return snapped
}

// FixMesh constrains every vertex that lies on a boundary shared with a
// coarser neighbor so its in-plane coordinates fall on that neighbor's
// coarser grid, eliminating the T-junctions a naive per-chunk mesh would
// otherwise leave at LOD transitions. A vertex touching two boundary
// planes at once (a chunk edge or corner) is constrained against both.
func (fx *Fixer) FixMesh(mesh *meshdata.ChunkMesh, resolution int, deltas NeighborLodDelta) {
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		dirs := [6]meshdata.Direction{
			meshdata.DirPosX, meshdata.DirNegX,
			meshdata.DirPosY, meshdata.DirNegY,
			meshdata.DirPosZ, meshdata.DirNegZ,
		}
		for _, dir := range dirs {
			delta := deltas.deltaFor(dir)
			if delta <= 0 || !onBoundaryPlane(*v, dir, resolution) {
				continue
			}
			factor := 1 << uint(delta)
			switch dir {
			case meshdata.DirPosX, meshdata.DirNegX:
				v.Y = uint8(snapToFactor(int(v.Y), factor, resolution))
				v.Z = uint8(snapToFactor(int(v.Z), factor, resolution))
			case meshdata.DirPosY, meshdata.DirNegY:
				v.X = uint8(snapToFactor(int(v.X), factor, resolution))
				v.Z = uint8(snapToFactor(int(v.Z), factor, resolution))
			case meshdata.DirPosZ, meshdata.DirNegZ:
				v.X = uint8(snapToFactor(int(v.X), factor, resolution))
				v.Y = uint8(snapToFactor(int(v.Y), factor, resolution))
			}
		}
	}
}

// onSameBoundaryPlane reports whether both vertices share one boundary
// plane (a chunk face), which is what makes the edge between them a chunk
// boundary edge rather than an interior one.
func onSameBoundaryPlane(a, b meshdata.PackedVertex, resolution int) bool {
	return (a.X == b.X && (a.X == 0 || int(a.X) == resolution)) ||
		(a.Y == b.Y && (a.Y == 0 || int(a.Y) == resolution)) ||
		(a.Z == b.Z && (a.Z == 0 || int(a.Z) == resolution))
}

// AddSkirts emits a thin downward-extended quad along every quad edge that
// runs along a chunk boundary plane, as a fallback visual seal for any
// crack vertex constraining alone does not close (e.g. where the surface
// normal changes sharply near the edge). depth is in local voxel units.
// Every AddQuad/AddQuadFlipped call appends exactly four vertices, so
// mesh.Vertices is walked four at a time.
func (fx *Fixer) AddSkirts(mesh *meshdata.ChunkMesh, resolution int, depth uint8) {
	quadCount := len(mesh.Vertices) / 4
	for q := 0; q < quadCount; q++ {
		corners := [4]meshdata.PackedVertex{
			mesh.Vertices[q*4], mesh.Vertices[q*4+1],
			mesh.Vertices[q*4+2], mesh.Vertices[q*4+3],
		}
		for i := 0; i < 4; i++ {
			a, b := corners[i], corners[(i+1)%4]
			if !onSameBoundaryPlane(a, b, resolution) {
				continue
			}
			skirtA, skirtB := a, b
			skirtA.Y = dropBy(a.Y, depth)
			skirtB.Y = dropBy(b.Y, depth)
			mesh.AddQuad(a, b, skirtB, skirtA)
		}
	}
}

func dropBy(y, depth uint8) uint8 {
	if y >= depth {
		return y - depth
	}
	return 0
}
