// Package terrain defines the Sampler collaborator boundary and Generate,
// which decides only *where* to sample it at a given LOD.
package terrain

import (
	"github.com/kestrelworks/planetlod/chunkdata"
	"github.com/kestrelworks/planetlod/voxeltype"
)

// Sampler is the external TerrainSampler collaborator: a pure function of
// world position in millimeters, safe for concurrent shared-read use by the
// worker pool.
type Sampler interface {
	Sample(wx, wy, wz int64) voxeltype.Id
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(wx, wy, wz int64) voxeltype.Id

// Sample calls f.
func (f SamplerFunc) Sample(wx, wy, wz int64) voxeltype.Id { return f(wx, wy, wz) }

// Generate samples terrain into a LodChunkData at the given LOD. Sampling
// step is base_voxel_size * 2^lod: a LOD-N voxel at local (x,y,z) samples
// exactly the world position a LOD-0 voxel at (x*2^N, y*2^N, z*2^N) would,
// so LOD coarsening is subsampling, never averaging.
func Generate(sampler Sampler, chunkOriginMM [3]int64, lod uint8, baseVoxelSizeMM int64) *chunkdata.LodChunkData {
	out := chunkdata.New(lod)
	r := out.Resolution()
	step := baseVoxelSizeMM << lod

	for x := 0; x < r; x++ {
		wx := chunkOriginMM[0] + int64(x)*step
		for y := 0; y < r; y++ {
			wy := chunkOriginMM[1] + int64(y)*step
			for z := 0; z < r; z++ {
				wz := chunkOriginMM[2] + int64(z)*step
				out.Set(x, y, z, sampler.Sample(wx, wy, wz))
			}
		}
	}
	return out
}
