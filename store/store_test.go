package store

import (
	"testing"

	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/chunkdata"
	"github.com/kestrelworks/planetlod/facegrid"
)

func addr(path uint64) chunkaddr.Address {
	return chunkaddr.Address{Face: facegrid.PosX, Path: path, Lod: 0}
}

func TestPutAndGetRoundtrip(t *testing.T) {
	tracker := NewTracker(1 << 30)
	s := NewStore(tracker)
	e := &Entry{Priority: 1.0}
	if err := s.Put(addr(1), e); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok := s.Get(addr(1))
	if !ok || got != e {
		t.Fatalf("Get did not return the entry just put")
	}
}

func TestEvictsLowestPriorityFirstWhenOverBudget(t *testing.T) {
	tracker := NewTracker(0) // any non-empty entry immediately exceeds budget
	s := NewStore(tracker)

	// Entries carry no Voxels/Mesh so bytes() is 0; drive eviction purely
	// via an artificially shrunk budget instead, by accounting bytes
	// directly through the tracker.
	tracker.budgetB = 2

	low := &Entry{Priority: 1.0}
	high := &Entry{Priority: 10.0}

	// Simulate non-zero sizes by bumping the tracker directly alongside Put,
	// since a bare Entry{} reports zero bytes.
	if err := s.Put(addr(1), low); err != nil {
		t.Fatalf("Put low: %v", err)
	}
	tracker.Add(2)
	if err := s.Put(addr(2), high); err != nil {
		t.Fatalf("Put high: %v", err)
	}
	tracker.Add(2)

	s.evictUntilWithinBudget(addr(2))

	if _, ok := s.Get(addr(1)); ok {
		t.Error("expected low-priority entry to be evicted")
	}
	if _, ok := s.Get(addr(2)); !ok {
		t.Error("expected high-priority entry to survive eviction")
	}
}

func TestUpdatePriorityAffectsEvictionOrder(t *testing.T) {
	// Each entry holds a 1-voxel LOD-5 chunk: EstimatedBytes is 1 palette
	// entry * 2 + 1 index * 1 = 3 bytes, so both fit a 6-byte budget
	// exactly, and evicting either one brings an over-budget store back
	// within it.
	tracker := NewTracker(6)
	s := NewStore(tracker)

	a := &Entry{Priority: 1.0, Voxels: chunkdata.New(chunkdata.MaxLod)}
	b := &Entry{Priority: 2.0, Voxels: chunkdata.New(chunkdata.MaxLod)}
	_ = s.Put(addr(1), a)
	_ = s.Put(addr(2), b)

	// Flip priorities: addr(1) becomes more important than addr(2).
	s.UpdatePriority(addr(1), 100.0)
	tracker.Add(1) // force over-budget: 7 resident bytes against a budget of 6

	s.evictUntilWithinBudget(addr(0)) // protect nothing resident

	if _, ok := s.Get(addr(2)); ok {
		t.Error("expected now-lower-priority addr(2) to be evicted")
	}
	if _, ok := s.Get(addr(1)); !ok {
		t.Error("expected now-higher-priority addr(1) to survive")
	}
}

func TestRemoveDropsEntryAndAccounting(t *testing.T) {
	tracker := NewTracker(1 << 30)
	s := NewStore(tracker)
	_ = s.Put(addr(1), &Entry{Priority: 1.0})
	s.Remove(addr(1))
	if _, ok := s.Get(addr(1)); ok {
		t.Error("expected entry to be gone after Remove")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store after Remove, got len %d", s.Len())
	}
}
