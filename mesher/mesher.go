// Package mesher implements greedy meshing: turning a resolution-aware
// voxel grid into a compact triangle mesh, one quad per maximal run of
// same-material, same-occlusion faces. The per-direction mask-and-merge
// structure follows the teacher's GreedyMeshChunk, generalized from a
// fixed 32^3 grid to chunkdata.LodChunkData's variable resolution and
// extended with per-vertex ambient occlusion.
package mesher

import (
	"github.com/kestrelworks/planetlod/chunkdata"
	"github.com/kestrelworks/planetlod/meshdata"
	"github.com/kestrelworks/planetlod/voxeltype"
)

// GreedyMesher turns a chunk neighborhood into a ChunkMesh using a voxel
// type registry to decide occlusion and face materials.
type GreedyMesher struct {
	Registry voxeltype.Registry
}

// NewGreedyMesher returns a mesher backed by the given registry.
func NewGreedyMesher(reg voxeltype.Registry) *GreedyMesher {
	return &GreedyMesher{Registry: reg}
}

// maskCell is one unit face of the 2D slice mask: the material to draw and
// the four per-corner ambient occlusion values, in c0..c3 winding order.
type maskCell struct {
	present  bool
	material uint16
	ao       [4]uint8
}

func (m maskCell) equalForMerge(o maskCell) bool {
	return m.present && o.present && m.material == o.material && m.ao == o.ao
}

// axisSpec is the per-direction axis permutation: w is the axis the
// direction's normal lies on, u and v span the face plane such that
// eu x ev = e_w (a cyclic permutation of the three axes).
type axisSpec struct {
	u, v, w int
	sign    int // +1 faces look toward +w, -1 toward -w
}

func axisFor(dir meshdata.Direction) axisSpec {
	switch dir {
	case meshdata.DirPosX:
		return axisSpec{u: 1, v: 2, w: 0, sign: 1}
	case meshdata.DirNegX:
		return axisSpec{u: 1, v: 2, w: 0, sign: -1}
	case meshdata.DirPosY:
		return axisSpec{u: 2, v: 0, w: 1, sign: 1}
	case meshdata.DirNegY:
		return axisSpec{u: 2, v: 0, w: 1, sign: -1}
	case meshdata.DirPosZ:
		return axisSpec{u: 0, v: 1, w: 2, sign: 1}
	default: // DirNegZ
		return axisSpec{u: 0, v: 1, w: 2, sign: -1}
	}
}

// compose maps (u,v,w) grid coordinates back to (x,y,z).
func (a axisSpec) compose(cu, cv, cw int) (x, y, z int) {
	var p [3]int
	p[a.u], p[a.v], p[a.w] = cu, cv, cw
	return p[0], p[1], p[2]
}

// Mesh greedily meshes the neighborhood's center chunk, sampling solidity
// and materials through reg and using nb's neighbor routing for boundary
// faces and ambient occlusion.
func (gm *GreedyMesher) Mesh(nb *chunkdata.Neighborhood) *meshdata.ChunkMesh {
	out := meshdata.NewChunkMesh()
	r := nb.Center.Resolution()
	if r == 0 {
		return out
	}

	dirs := [6]meshdata.Direction{
		meshdata.DirPosX, meshdata.DirNegX,
		meshdata.DirPosY, meshdata.DirNegY,
		meshdata.DirPosZ, meshdata.DirNegZ,
	}
	for _, dir := range dirs {
		gm.meshDirection(nb, r, dir, out)
	}
	return out
}

func (gm *GreedyMesher) meshDirection(nb *chunkdata.Neighborhood, r int, dir meshdata.Direction, out *meshdata.ChunkMesh) {
	a := axisFor(dir)
	reg := gm.Registry

	for w0 := 0; w0 < r; w0++ {
		mask := make([][]maskCell, r)
		for i := range mask {
			mask[i] = make([]maskCell, r)
		}

		for v0 := 0; v0 < r; v0++ {
			for u0 := 0; u0 < r; u0++ {
				x, y, z := a.compose(u0, v0, w0)
				id := nb.Center.Get(x, y, z)
				if !reg.IsSolid(id) || reg.IsTransparent(id) {
					continue
				}

				nx, ny, nz := a.compose(u0, v0, w0+a.sign)
				neighborID := nb.At(nx, ny, nz)
				if reg.IsSolid(neighborID) && !reg.IsTransparent(neighborID) {
					continue // occluded, no face
				}

				mask[u0][v0] = maskCell{
					present:  true,
					material: materialFor(reg, id, dir),
					ao:       cornerAO(nb, reg, a, x, y, z),
				}
			}
		}

		emitSlice(mask, r, w0, a, dir, out)
	}
}

func materialFor(reg voxeltype.Registry, id voxeltype.Id, dir meshdata.Direction) uint16 {
	f := reg.FacesOf(id)
	switch dir {
	case meshdata.DirPosX:
		return f.PosX
	case meshdata.DirNegX:
		return f.NegX
	case meshdata.DirPosY:
		return f.PosY
	case meshdata.DirNegY:
		return f.NegY
	case meshdata.DirPosZ:
		return f.PosZ
	default:
		return f.NegZ
	}
}

// cornerAO computes the four per-vertex ambient occlusion levels (0=fully
// lit .. 3=fully occluded) for the unit face of the solid voxel at
// (x,y,z) facing dir, sampling the three occluder cells per corner in the
// layer immediately outward of the face.
func cornerAO(nb *chunkdata.Neighborhood, reg voxeltype.Registry, a axisSpec, x, y, z int) [4]uint8 {
	var out [4]uint8
	corners := [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, c := range corners {
		su, sv := 2*c[0]-1, 2*c[1]-1
		side1Occluded := occludedAt(nb, reg, a, x, y, z, su, 0)
		side2Occluded := occludedAt(nb, reg, a, x, y, z, 0, sv)
		cornerOccluded := occludedAt(nb, reg, a, x, y, z, su, sv)
		out[i] = aoLevel(side1Occluded, side2Occluded, cornerOccluded)
	}
	return out
}

func occludedAt(nb *chunkdata.Neighborhood, reg voxeltype.Registry, a axisSpec, x, y, z, su, sv int) bool {
	var off [3]int
	off[a.w] = a.sign
	off[a.u] += su
	off[a.v] += sv
	id := nb.At(x+off[0], y+off[1], z+off[2])
	return reg.IsSolid(id) && !reg.IsTransparent(id)
}

func aoLevel(side1, side2, corner bool) uint8 {
	if side1 && side2 {
		return 3
	}
	occluders := 0
	if side1 {
		occluders++
	}
	if side2 {
		occluders++
	}
	if corner {
		occluders++
	}
	return uint8(occluders)
}

func emitSlice(mask [][]maskCell, r, w0 int, a axisSpec, dir meshdata.Direction, out *meshdata.ChunkMesh) {
	visited := make([][]bool, r)
	for i := range visited {
		visited[i] = make([]bool, r)
	}

	for v0 := 0; v0 < r; v0++ {
		for u0 := 0; u0 < r; u0++ {
			cell := mask[u0][v0]
			if !cell.present || visited[u0][v0] {
				continue
			}

			width := 1
			for u1 := u0 + 1; u1 < r; u1++ {
				if visited[u1][v0] || !mask[u1][v0].equalForMerge(cell) {
					break
				}
				width++
			}

			height := 1
		heightLoop:
			for v1 := v0 + 1; v1 < r; v1++ {
				for u1 := u0; u1 < u0+width; u1++ {
					if visited[u1][v1] || !mask[u1][v1].equalForMerge(cell) {
						break heightLoop
					}
				}
				height++
			}

			for v1 := v0; v1 < v0+height; v1++ {
				for u1 := u0; u1 < u0+width; u1++ {
					visited[u1][v1] = true
				}
			}

			emitQuad(out, a, dir, u0, v0, w0, width, height, cell)
		}
	}
}

func emitQuad(out *meshdata.ChunkMesh, a axisSpec, dir meshdata.Direction, u0, v0, w0, width, height int, cell maskCell) {
	wPlane := w0
	if a.sign > 0 {
		wPlane = w0 + 1
	}

	type corner struct{ cu, cv int }
	local := [4]corner{
		{u0, v0},
		{u0 + width, v0},
		{u0 + width, v0 + height},
		{u0, v0 + height},
	}

	verts := [4]meshdata.PackedVertex{}
	for i, c := range local {
		x, y, z := a.compose(c.cu, c.cv, wPlane)
		verts[i] = meshdata.PackedVertex{
			X: uint8(x), Y: uint8(y), Z: uint8(z),
			NormalIdx:  dir,
			AO:         cell.ao[i],
			MaterialID: cell.material,
		}
	}
	// Texture coordinates follow the run's width/height, corner order
	// c0..c3 matching the position corners above.
	verts[0].U, verts[0].V = 0, 0
	verts[1].U, verts[1].V = uint8(clampTexel(width)), 0
	verts[2].U, verts[2].V = uint8(clampTexel(width)), uint8(clampTexel(height))
	verts[3].U, verts[3].V = 0, uint8(clampTexel(height))

	if a.sign > 0 {
		if uint32(cell.ao[0])+uint32(cell.ao[2]) > uint32(cell.ao[1])+uint32(cell.ao[3]) {
			out.AddQuadFlipped(verts[0], verts[1], verts[2], verts[3])
		} else {
			out.AddQuad(verts[0], verts[1], verts[2], verts[3])
		}
		return
	}

	// Negative-facing quads wind the opposite way to stay front-facing.
	rv := [4]meshdata.PackedVertex{verts[0], verts[3], verts[2], verts[1]}
	if uint32(rv[0].AO)+uint32(rv[2].AO) > uint32(rv[1].AO)+uint32(rv[3].AO) {
		out.AddQuadFlipped(rv[0], rv[1], rv[2], rv[3])
	} else {
		out.AddQuad(rv[0], rv[1], rv[2], rv[3])
	}
}

func clampTexel(n int) int {
	if n > 255 {
		return 255
	}
	return n
}
