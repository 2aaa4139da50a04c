package facegrid

import "testing"

func TestNeighborAcrossIsSymmetric(t *testing.T) {
	for _, f := range AllFaces() {
		for _, e := range [edgeCount]Edge{EdgeU0, EdgeU1, EdgeV0, EdgeV1} {
			nb := NeighborAcross(f, e)
			back := NeighborAcross(nb.Face, nb.Edge)
			if back.Face != f || back.Edge != e {
				t.Errorf("NeighborAcross(%v,%v)=%v,%v does not cross back: got %v,%v",
					f, e, nb.Face, nb.Edge, back.Face, back.Edge)
			}
			if back.Reversed != nb.Reversed {
				t.Errorf("NeighborAcross(%v,%v).Reversed=%v, crossing back gives %v, want equal",
					f, e, nb.Reversed, back.Reversed)
			}
		}
	}
}

func TestNeighborAcrossNeverMapsToSelf(t *testing.T) {
	for _, f := range AllFaces() {
		for _, e := range [edgeCount]Edge{EdgeU0, EdgeU1, EdgeV0, EdgeV1} {
			if nb := NeighborAcross(f, e); nb.Face == f {
				t.Errorf("NeighborAcross(%v,%v) maps to itself", f, e)
			}
		}
	}
}

func TestToSphereDirectionIsUnitLength(t *testing.T) {
	for _, f := range AllFaces() {
		p := ToCubePoint(f, 0.3, 0.8)
		d := ToSphereDirection(p)
		n := d.Len()
		if n < 0.999 || n > 1.001 {
			t.Errorf("ToSphereDirection(%v) length = %f, want ~1", f, n)
		}
	}
}

func TestAllFacesAreDistinct(t *testing.T) {
	seen := map[Face]bool{}
	for _, f := range AllFaces() {
		if seen[f] {
			t.Errorf("duplicate face %v in AllFaces()", f)
		}
		seen[f] = true
	}
	if len(seen) != 6 {
		t.Errorf("AllFaces() returned %d distinct faces, want 6", len(seen))
	}
}
