// Package seam eliminates the T-junction cracks that appear where chunks
// of different LOD meet, adds skirt geometry as a fallback visual seal,
// and computes the exact double-precision cubesphere displacement shared
// by both sides of a chunk boundary so their edge vertices land on
// identical floating-point positions.
package seam

import (
	"math"

	"github.com/kestrelworks/planetlod/facegrid"
)

// CubespherePoint maps a face and UV in [0,1]^2 to a point on the surface
// of the axis-aligned unit cube [-1,1]^3, in float64. This mirrors
// facegrid.ToCubePoint's formulas exactly but stays in float64 throughout:
// two chunks on either side of a shared edge that both call this with the
// same (face, u, v) get bit-identical results, which float32 rounding
// could not guarantee this close to a LOD boundary.
func CubespherePoint(f facegrid.Face, u, v float64) (x, y, z float64) {
	a := 2*u - 1
	b := 2*v - 1
	switch f {
	case facegrid.PosX:
		return 1, b, -a
	case facegrid.NegX:
		return -1, b, a
	case facegrid.PosY:
		return a, 1, -b
	case facegrid.NegY:
		return a, -1, b
	case facegrid.PosZ:
		return a, b, 1
	default: // NegZ
		return -a, b, -1
	}
}

// SphereDirection normalizes a cube-surface point onto the unit sphere.
func SphereDirection(x, y, z float64) (dx, dy, dz float64) {
	n := math.Sqrt(x*x + y*y + z*z)
	return x / n, y / n, z / n
}

// Displace computes the exact world-space position of a face/UV coordinate
// at the given radial distance from the planet center (planet radius plus
// terrain height), in millimeters.
func Displace(f facegrid.Face, u, v float64, radiusMM float64) (x, y, z float64) {
	cx, cy, cz := CubespherePoint(f, u, v)
	dx, dy, dz := SphereDirection(cx, cy, cz)
	return dx * radiusMM, dy * radiusMM, dz * radiusMM
}
