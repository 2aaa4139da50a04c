package planetmode

import (
	"math"
	"testing"
)

func TestSelectModeBoundaries(t *testing.T) {
	const r = 1000.0
	cases := []struct {
		h    float64
		want Mode
	}{
		{h: 1, want: VoxelTerrain},
		{h: r * 0.02, want: HybridTerrainSphere},
		{h: r * 1, want: GeometricSphere},
		{h: r * 50, want: Impostor},
	}
	for _, c := range cases {
		got := Select(c.h, r, DefaultThresholds)
		if got.Mode != c.want {
			t.Errorf("Select(h=%f) = %v, want %v", c.h, got.Mode, c.want)
		}
	}
}

func TestHybridBlendInterpolatesLinearly(t *testing.T) {
	const r = 1000.0
	th := DefaultThresholds
	lo := th.VoxelMax * r
	hi := th.HybridMax * r
	mid := (lo + hi) / 2

	sel := Select(mid, r, th)
	if sel.Mode != HybridTerrainSphere {
		t.Fatalf("expected HybridTerrainSphere at midpoint, got %v", sel.Mode)
	}
	if math.Abs(sel.Blend-0.5) > 1e-9 {
		t.Errorf("expected blend ~0.5 at midpoint, got %f", sel.Blend)
	}
}

// Monotonicity invariant: orbitalness (0 in VoxelTerrain, Blend in
// HybridTerrainSphere, 1 beyond it) must never decrease as altitude rises.
func TestOrbitalnessIsMonotonicAsAltitudeRises(t *testing.T) {
	const r = 1000.0
	orbitalness := func(s Selection) float64 {
		switch s.Mode {
		case VoxelTerrain:
			return 0
		case HybridTerrainSphere:
			return s.Blend
		default:
			return 1
		}
	}

	prev := -1.0
	for h := 0.0; h <= r*200; h += r * 0.001 {
		cur := orbitalness(Select(h, r, DefaultThresholds))
		if cur < prev-1e-9 {
			t.Fatalf("orbitalness decreased at h=%f: %f -> %f", h, prev, cur)
		}
		prev = cur
	}
}

func TestNeedsRecaptureDetectsViewDrift(t *testing.T) {
	s := NewImpostorState([3]float64{0, 0, 1}, [3]float64{1, 0, 0})
	if s.NeedsRecapture([3]float64{0, 0, 1}, [3]float64{1, 0, 0}) {
		t.Fatal("expected no recapture needed for identical directions")
	}
	// Rotate view direction by ~10 degrees, well past the ~3 degree default.
	theta := 10.0 * math.Pi / 180.0
	rotated := [3]float64{math.Sin(theta), 0, math.Cos(theta)}
	if !s.NeedsRecapture(rotated, [3]float64{1, 0, 0}) {
		t.Fatal("expected recapture needed after a 10 degree view rotation")
	}
}

func TestNeedsRecaptureDetectsSunDrift(t *testing.T) {
	s := NewImpostorState([3]float64{0, 0, 1}, [3]float64{1, 0, 0})
	theta := 10.0 * math.Pi / 180.0
	rotatedSun := [3]float64{math.Cos(theta), math.Sin(theta), 0}
	if !s.NeedsRecapture([3]float64{0, 0, 1}, rotatedSun) {
		t.Fatal("expected recapture needed after a 10 degree sun rotation")
	}
}
