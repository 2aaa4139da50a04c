// Package planetmode selects a planet's rendering representation from the
// camera's altitude above its surface, and tracks when a camera-facing
// impostor needs to be re-rendered. Thresholds and blend math are plain
// arithmetic in the teacher's style of small, directly-testable pure
// functions (facegrid.go's per-face coordinate formulas), not grounded in
// any one corpus file since the teacher has no notion of altitude-based
// level switching.
package planetmode

import "math"

// Mode is a planet's current rendering representation.
type Mode int

const (
	// VoxelTerrain renders full voxel chunk meshes, closest to the surface.
	VoxelTerrain Mode = iota
	// HybridTerrainSphere blends voxel terrain with a geometric sphere as
	// the camera climbs, avoiding a hard pop between the two.
	HybridTerrainSphere
	// GeometricSphere renders the planet as a plain textured sphere, too
	// far out for individual chunks to matter.
	GeometricSphere
	// Impostor renders a camera-facing quad textured with a pre-rendered
	// snapshot of the planet, for extreme distances.
	Impostor
)

// String names a Mode for logging.
func (m Mode) String() string {
	switch m {
	case VoxelTerrain:
		return "VoxelTerrain"
	case HybridTerrainSphere:
		return "HybridTerrainSphere"
	case GeometricSphere:
		return "GeometricSphere"
	case Impostor:
		return "Impostor"
	default:
		return "Unknown"
	}
}

// Thresholds are altitude boundaries between modes, in units of planet
// radius. Defaults below match the donor engine's observed LOD-switch
// distances.
type Thresholds struct {
	VoxelMax  float64
	HybridMax float64
	SphereMax float64
}

// DefaultThresholds switches to HybridTerrainSphere at 1% of planet
// radius, GeometricSphere at 5%, and Impostor past 10x the radius.
var DefaultThresholds = Thresholds{
	VoxelMax:  0.01,
	HybridMax: 0.05,
	SphereMax: 10,
}

// Selection is the resolved mode plus a blend weight in [0,1] used only in
// HybridTerrainSphere to cross-fade voxel terrain into the geometric
// sphere; it is 0 in every other mode.
type Selection struct {
	Mode  Mode
	Blend float64
}

// Select resolves a Selection from camera altitude h and planet radius r,
// both in the same length unit. Thresholds are expressed as multiples of
// r, so the comparisons below are scale-invariant to planet size.
//
// Monotonicity: as h increases, the blend-weighted "orbitalness" — 0 in
// VoxelTerrain, Blend in HybridTerrainSphere, 1 in GeometricSphere and
// Impostor — never decreases, so there is no visual pop as the camera
// climbs or a partial-blend frame snaps backward as it descends.
func Select(h, r float64, th Thresholds) Selection {
	if r <= 0 {
		return Selection{Mode: VoxelTerrain}
	}
	ratio := h / r

	switch {
	case ratio < th.VoxelMax:
		return Selection{Mode: VoxelTerrain, Blend: 0}
	case ratio < th.HybridMax:
		span := th.HybridMax - th.VoxelMax
		blend := 0.0
		if span > 0 {
			blend = (ratio - th.VoxelMax) / span
		}
		return Selection{Mode: HybridTerrainSphere, Blend: clamp01(blend)}
	case ratio < th.SphereMax:
		return Selection{Mode: GeometricSphere, Blend: 0}
	default:
		return Selection{Mode: Impostor, Blend: 0}
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// AngleBetween returns the angle in radians between two unit-length
// direction vectors, via the numerically stable acos(clamp(dot)) form.
func AngleBetween(ax, ay, az, bx, by, bz float64) float64 {
	dot := ax*bx + ay*by + az*bz
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	return math.Acos(dot)
}
