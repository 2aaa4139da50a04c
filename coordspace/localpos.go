package coordspace

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LocalPosition is a camera-relative position suitable for GPU upload. It is
// only exact while |axis| < 2^23 mm (~8 km) from the active origin, which
// to_local's caller must maintain via periodic rebasing.
type LocalPosition = mgl32.Vec3

// ExactLocalRangeMM is the largest per-axis delta magnitude for which
// float32 round-trips back to the exact millimeter integer.
const ExactLocalRangeMM = 1 << 23

// ToLocal converts a world position to a camera-relative float32 position.
// Subtraction happens in exact i128 arithmetic before the cast to f32, so
// precision loss only occurs in the final narrowing, not in the delta
// itself.
func ToLocal(p, origin WorldPosition) LocalPosition {
	dx := p.X.SaturatingSub(origin.X)
	dy := p.Y.SaturatingSub(origin.Y)
	dz := p.Z.SaturatingSub(origin.Z)
	return LocalPosition{float32(dx.ToFloat64()), float32(dy.ToFloat64()), float32(dz.ToFloat64())}
}

// ToWorld reconstructs a world position from a local position and origin,
// rounding each axis to the nearest millimeter. Exact for |l| < 2^23.
func ToWorld(l LocalPosition, origin WorldPosition) WorldPosition {
	dx := roundToInt128(float64(l.X()))
	dy := roundToInt128(float64(l.Y()))
	dz := roundToInt128(float64(l.Z()))
	return WorldPosition{
		X: origin.X.SaturatingAdd(dx),
		Y: origin.Y.SaturatingAdd(dy),
		Z: origin.Z.SaturatingAdd(dz),
	}
}

func roundToInt128(v float64) Int128 {
	r := math.Round(v)
	neg := r < 0
	if neg {
		r = -r
	}
	const two32 = 4294967296.0
	hi := uint64(r / (two32 * two32))
	rem := r - float64(hi)*(two32*two32)
	lo := uint64(rem)
	out := Int128{Hi: int64(hi), Lo: lo}
	if neg {
		out = out.Neg()
	}
	return out
}

// RebaseThresholdDefaultMM is the default |camera-origin| infinity-norm
// distance at which RebaseIfNeeded resets the origin.
const RebaseThresholdDefaultMM = 10_000_000 // 10 km in mm

// Space tracks the active rebase origin used to derive LocalPosition values
// for GPU-resident geometry. It is the only mutable state CoordSpace owns.
type Space struct {
	origin         WorldPosition
	thresholdMM    int64
	rebaseThreshDe Int128 // cached Int128(thresholdMM) for comparisons
}

// NewSpace creates a coordinate space with the given rebase threshold in mm.
func NewSpace(origin WorldPosition, thresholdMM int64) *Space {
	s := &Space{origin: origin, thresholdMM: thresholdMM}
	s.rebaseThreshDe = FromInt64(thresholdMM)
	return s
}

// Origin returns the current rebase origin.
func (s *Space) Origin() WorldPosition { return s.origin }

// ToLocal converts p relative to the space's current origin.
func (s *Space) ToLocal(p WorldPosition) LocalPosition { return ToLocal(p, s.origin) }

// ToWorld reconstructs a world position relative to the space's origin.
func (s *Space) ToWorld(l LocalPosition) WorldPosition { return ToWorld(l, s.origin) }

// RebaseIfNeeded resets the origin to camera when the infinity-norm distance
// between camera and the current origin exceeds the configured threshold.
// It returns the delta (new origin - old origin) and true if a rebase
// occurred; collaborators must re-transform any long-lived GPU-resident
// positions by this delta.
func (s *Space) RebaseIfNeeded(camera WorldPosition) (delta Vec3I128, rebased bool) {
	dx := camera.X.SaturatingSub(s.origin.X)
	dy := camera.Y.SaturatingSub(s.origin.Y)
	dz := camera.Z.SaturatingSub(s.origin.Z)

	if absCmp(dx, s.rebaseThreshDe) <= 0 && absCmp(dy, s.rebaseThreshDe) <= 0 && absCmp(dz, s.rebaseThreshDe) <= 0 {
		return Vec3I128{}, false
	}

	delta = Vec3I128{X: dx, Y: dy, Z: dz}
	s.origin = camera
	return delta, true
}

// absCmp compares |v| to a non-negative bound b, returning -1/0/1.
func absCmp(v, bound Int128) int {
	if v.IsNeg() {
		v = v.Neg()
	}
	return v.Cmp(bound)
}
