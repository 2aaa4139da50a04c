package terrain

import (
	"testing"

	"github.com/kestrelworks/planetlod/voxeltype"
)

// S5 — a LOD-1 chunk subsamples the same terrain function a LOD-0 chunk
// would at double the coordinates, for a terrain function that is a
// 1000 mm checkerboard in wx and wz.
func TestLodSubsamplesNotAverages(t *testing.T) {
	flat := SamplerFunc(func(wx, wy, wz int64) voxeltype.Id {
		// A terrain function with fine-grained structure in X and Z, so
		// naive averaging between LOD 0 and LOD 1 would disagree with
		// subsampling; this must still match exactly.
		if (wx/1000+wz/1000)%2 == 0 {
			return voxeltype.Id(1)
		}
		return voxeltype.Id(2)
	})

	origin := [3]int64{0, 0, 0}
	lod0 := Generate(flat, origin, 0, 1000)
	lod1 := Generate(flat, origin, 1, 1000)

	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			for z := 0; z < 16; z++ {
				got := lod1.Get(x, y, z)
				want := lod0.Get(2*x, 2*y, 2*z)
				if got != want {
					t.Fatalf("lod1(%d,%d,%d)=%v want lod0(%d,%d,%d)=%v", x, y, z, got, 2*x, 2*y, 2*z, want)
				}
			}
		}
	}
}
