package chunkaddr

import "testing"

func TestDescendAscendRoundtrip(t *testing.T) {
	path := RootPath
	path = Descend(path, QuadrantTopRight)
	path = Descend(path, QuadrantBottomLeft)

	if got := Depth(path); got != 2 {
		t.Fatalf("Depth() = %d, want 2", got)
	}

	parent, q := Ascend(path)
	if q != QuadrantBottomLeft {
		t.Errorf("Ascend() quadrant = %v, want QuadrantBottomLeft", q)
	}
	grandparent, q := Ascend(parent)
	if q != QuadrantTopRight {
		t.Errorf("Ascend() quadrant = %v, want QuadrantTopRight", q)
	}
	if grandparent != RootPath {
		t.Errorf("Ascend() to root = %d, want RootPath", grandparent)
	}
}

func TestAscendRootIsNoop(t *testing.T) {
	parent, q := Ascend(RootPath)
	if parent != RootPath || q != 0 {
		t.Errorf("Ascend(RootPath) = (%d, %v), want (RootPath, 0)", parent, q)
	}
}

func TestQuadrantsRootFirst(t *testing.T) {
	path := Descend(Descend(RootPath, QuadrantTopLeft), QuadrantBottomRight)
	got := Quadrants(path)
	want := []Quadrant{QuadrantTopLeft, QuadrantBottomRight}
	if len(got) != len(want) {
		t.Fatalf("Quadrants() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Quadrants()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUVCentersEachQuadrantCorrectly(t *testing.T) {
	cases := []struct {
		q      Quadrant
		u, v   float64
	}{
		{QuadrantBottomLeft, 0.25, 0.25},
		{QuadrantBottomRight, 0.75, 0.25},
		{QuadrantTopLeft, 0.25, 0.75},
		{QuadrantTopRight, 0.75, 0.75},
	}
	for _, c := range cases {
		path := Descend(RootPath, c.q)
		u, v := UV(path)
		if !almostEqual(u, c.u) || !almostEqual(v, c.v) {
			t.Errorf("UV(%v) = (%f,%f), want (%f,%f)", c.q, u, v, c.u, c.v)
		}
	}
}

func TestHalfExtentHalvesPerDepth(t *testing.T) {
	if got := HalfExtent(0); got != 0.5 {
		t.Errorf("HalfExtent(0) = %f, want 0.5", got)
	}
	if got := HalfExtent(1); got != 0.25 {
		t.Errorf("HalfExtent(1) = %f, want 0.25", got)
	}
	if got := HalfExtent(2); got != 0.125 {
		t.Errorf("HalfExtent(2) = %f, want 0.125", got)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
