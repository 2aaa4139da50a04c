package transition

import (
	"testing"

	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/facegrid"
)

func addr(path uint64) chunkaddr.Address {
	return chunkaddr.Address{Face: facegrid.PosX, Path: path, Lod: 0}
}

func TestCrossfadeAlphasStartAtFullyOld(t *testing.T) {
	m := NewManager(1.0)
	m.OnLodChanged(addr(1), 2, 1)
	old, new := m.CrossfadeAlphas(addr(1))
	if old != 1 || new != 0 {
		t.Fatalf("expected (1,0) before any tick, got (%f,%f)", old, new)
	}
}

func TestCrossfadeAlphasApproximatelySumToOneMidTransition(t *testing.T) {
	m := NewManager(1.0)
	m.OnLodChanged(addr(1), 2, 1)
	m.Tick(0.5)
	old, new := m.CrossfadeAlphas(addr(1))
	sum := old + new
	if sum < 0.85 || sum > 1.15 {
		t.Fatalf("expected old+new within 0.15 of 1, got %f", sum)
	}
}

func TestTickCompletesAndReleasesTransition(t *testing.T) {
	m := NewManager(1.0)
	m.OnLodChanged(addr(1), 2, 1)
	m.OnLodChanged(addr(2), 0, 1)

	completed := m.Tick(2.0) // overshoot duration
	if len(completed) != 2 {
		t.Fatalf("expected both transitions to complete, got %v", completed)
	}
	if m.IsTransitioning(addr(1)) || m.IsTransitioning(addr(2)) {
		t.Fatal("expected no transitions in flight after completion")
	}
	old, new := m.CrossfadeAlphas(addr(1))
	if old != 0 || new != 1 {
		t.Fatalf("expected stable chunk to report (0,1), got (%f,%f)", old, new)
	}
}

func TestUntrackedChunkIsStable(t *testing.T) {
	m := NewManager(1.0)
	if m.IsTransitioning(addr(99)) {
		t.Fatal("expected untracked chunk to not be transitioning")
	}
	old, new := m.CrossfadeAlphas(addr(99))
	if old != 0 || new != 1 {
		t.Fatalf("expected (0,1) for untracked chunk, got (%f,%f)", old, new)
	}
}
