// Package schedule computes per-chunk work priorities and orders pending
// mesh/terrain jobs by that priority using a generation-tagged max-heap, so
// a chunk's priority can be updated in O(log n) without a linear scan.
package schedule

// Weights tunes the relative contribution of each term in Score. With
// zero-value weights every Score is 0.
type Weights struct {
	DistanceWeight    float64
	LodBonusPerLevel  float64
	FrustumMultiplier float64
	ForwardWeight     float64
}

// DefaultWeights favors near, finer-LOD, in-frustum, forward-facing
// chunks. Because distance is squared millimeters, the distance term is
// negligible beyond a few millimeters, and the LOD and forward terms
// decide the order of most chunks.
var DefaultWeights = Weights{
	DistanceWeight:    1,
	LodBonusPerLevel:  0.05,
	FrustumMultiplier: 4,
	ForwardWeight:     0.1,
}

// Score computes a composite scheduling priority, higher is more urgent:
// inverse-square distance (nearer chunks score higher), a flat bonus per
// LOD level the chunk is finer than the coarsest (maxLod - lod), a multiplier
// applied only when the chunk is in the view frustum, and a small term
// rewarding chunks ahead of the camera's forward vector (forwardDot in
// [-1,1], as from a normalized dot product).
func Score(distanceSqMM2 float64, lod, maxLod uint8, inFrustum bool, forwardDot float64, w Weights) float64 {
	if distanceSqMM2 < 0 {
		distanceSqMM2 = 0
	}
	invDistSq := w.DistanceWeight / (distanceSqMM2 + 1)
	lodBonus := w.LodBonusPerLevel * float64(int(maxLod)-int(lod))
	forwardTerm := w.ForwardWeight * forwardDot

	base := invDistSq + lodBonus + forwardTerm
	if inFrustum {
		return base * w.FrustumMultiplier
	}
	return base
}
