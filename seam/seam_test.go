package seam

import (
	"testing"

	"github.com/kestrelworks/planetlod/facegrid"
	"github.com/kestrelworks/planetlod/meshdata"
)

// S9 — a fine chunk's vertices along a boundary shared with a neighbor one
// LOD level coarser must, after fixing, land on the coarser grid (every
// in-plane coordinate a multiple of 2), eliminating the T-junctions the
// unconstrained mesh would have.
func TestFixMeshEliminatesTJunctions(t *testing.T) {
	const resolution = 32
	mesh := meshdata.NewChunkMesh()
	// A quad on the +X boundary plane with an odd-coordinate corner, which
	// a same-LOD neighbor would be fine with but a coarser one would not.
	mesh.AddQuad(
		meshdata.PackedVertex{X: resolution, Y: 3, Z: 5, NormalIdx: meshdata.DirPosX},
		meshdata.PackedVertex{X: resolution, Y: 7, Z: 5, NormalIdx: meshdata.DirPosX},
		meshdata.PackedVertex{X: resolution, Y: 7, Z: 9, NormalIdx: meshdata.DirPosX},
		meshdata.PackedVertex{X: resolution, Y: 3, Z: 9, NormalIdx: meshdata.DirPosX},
	)

	var deltas NeighborLodDelta
	deltas[meshdata.DirPosX] = 1

	NewFixer().FixMesh(mesh, resolution, deltas)

	for _, v := range mesh.Vertices {
		if int(v.X) != resolution {
			continue
		}
		if v.Y%2 != 0 || v.Z%2 != 0 {
			t.Errorf("vertex (%d,%d,%d) not aligned to coarser grid after fix", v.X, v.Y, v.Z)
		}
	}
}

// Vertices not on the constrained boundary plane must be left untouched.
func TestFixMeshLeavesInteriorVerticesAlone(t *testing.T) {
	const resolution = 32
	mesh := meshdata.NewChunkMesh()
	mesh.AddQuad(
		meshdata.PackedVertex{X: 3, Y: 5, Z: 0, NormalIdx: meshdata.DirNegZ},
		meshdata.PackedVertex{X: 7, Y: 5, Z: 0, NormalIdx: meshdata.DirNegZ},
		meshdata.PackedVertex{X: 7, Y: 9, Z: 0, NormalIdx: meshdata.DirNegZ},
		meshdata.PackedVertex{X: 3, Y: 9, Z: 0, NormalIdx: meshdata.DirNegZ},
	)
	var deltas NeighborLodDelta
	deltas[meshdata.DirPosX] = 1 // only +X is coarser; this quad faces -Z

	NewFixer().FixMesh(mesh, resolution, deltas)

	want := []uint8{3, 5, 7, 5, 7, 9, 3, 9}
	got := []uint8{}
	for _, v := range mesh.Vertices {
		got = append(got, v.X, v.Y)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("interior vertex coordinates changed: got %v want %v", got, want)
		}
	}
}

// Two adjacent chunks computing the same boundary UV must land on exactly
// the same float64 position.
func TestDisplaceIsDeterministicAcrossChunks(t *testing.T) {
	x1, y1, z1 := Displace(facegrid.PosZ, 0.5, 0.5, 6_371_000_000)
	x2, y2, z2 := Displace(facegrid.PosZ, 0.5, 0.5, 6_371_000_000)
	if x1 != x2 || y1 != y2 || z1 != z2 {
		t.Fatal("Displace is not deterministic for identical inputs")
	}
}
