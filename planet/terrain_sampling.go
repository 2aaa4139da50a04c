package planet

import (
	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/chunkdata"
	"github.com/kestrelworks/planetlod/coordspace"
	"github.com/kestrelworks/planetlod/meshdata"
	"github.com/kestrelworks/planetlod/seam"
	"github.com/kestrelworks/planetlod/terrain"
)

// generatePlanetChunk samples a chunk's flat local grid (X,Z as tangent-
// plane coordinates, Y as depth below/above the surface along the face
// normal) the way a flat voxel chunk would, then relies on the mesher's
// output being displaced onto the cubesphere afterward by displaceMesh —
// sampling stays grid-based so LOD coarsening remains pure subsampling per
// terrain.Generate, while the curvature only ever bends the rendered mesh.
func generatePlanetChunk(sampler terrain.Sampler, addr chunkaddr.Address, radiusMM float64) *chunkdata.LodChunkData {
	data := chunkdata.New(addr.Lod)
	r := data.Resolution()
	u0, v0, uvSpan := chunkUVBounds(addr)
	voxelSizeMM := voxelSizeMMAt(addr.Lod)

	for lx := 0; lx < r; lx++ {
		u := u0 + (float64(lx)+0.5)/float64(r)*uvSpan
		for lz := 0; lz < r; lz++ {
			v := v0 + (float64(lz)+0.5)/float64(r)*uvSpan
			for ly := 0; ly < r; ly++ {
				radial := radiusMM + (float64(ly)-float64(r)/2)*voxelSizeMM
				wx, wy, wz := seam.Displace(addr.Face, u, v, radial)
				data.Set(lx, ly, lz, sampler.Sample(int64(wx), int64(wy), int64(wz)))
			}
		}
	}
	return data
}

// displaceMesh fills mesh.Displaced with each vertex's cubesphere-displaced
// world position, using the same tangent-plane mapping generatePlanetChunk
// used to sample it, so the rendered surface and the voxel data it came
// from agree exactly at every vertex.
func displaceMesh(mesh *meshdata.ChunkMesh, addr chunkaddr.Address, resolution int, planetCenter coordspace.WorldPosition, radiusMM float64) {
	u0, v0, uvSpan := chunkUVBounds(addr)
	voxelSizeMM := voxelSizeMMAt(addr.Lod)
	cx, cy, cz := worldPosToFloat3(planetCenter)

	mesh.Displaced = make([]meshdata.DisplacedVertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		u := u0 + float64(v.X)/float64(resolution)*uvSpan
		vv := v0 + float64(v.Z)/float64(resolution)*uvSpan
		radial := radiusMM + (float64(v.Y)-float64(resolution)/2)*voxelSizeMM
		dx, dy, dz := seam.Displace(addr.Face, u, vv, radial)
		mesh.Displaced[i] = meshdata.DisplacedVertex{
			WorldX: float32(cx + dx),
			WorldY: float32(cy + dy),
			WorldZ: float32(cz + dz),
		}
	}
}

// chunkUVBounds returns addr's UV corner and span on its cube face.
func chunkUVBounds(addr chunkaddr.Address) (u0, v0, span float64) {
	depth := chunkaddr.Depth(addr.Path)
	half := chunkaddr.HalfExtent(depth)
	centerU, centerV := chunkaddr.UV(addr.Path)
	return centerU - half, centerV - half, 2 * half
}

// voxelSizeMMAt returns the edge length, in millimeters, of a single voxel
// at the given LOD.
func voxelSizeMMAt(lod uint8) float64 {
	return float64(BaseVoxelSizeMM) * float64(uint64(1)<<lod)
}
