package schedule

import (
	"testing"

	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/facegrid"
)

func addr(path uint64) chunkaddr.Address {
	return chunkaddr.Address{Face: facegrid.PosX, Path: path, Lod: 0}
}

func TestPopReturnsHighestPriorityFirst(t *testing.T) {
	q := NewQueue()
	q.Push(addr(1), 1.0)
	q.Push(addr(2), 5.0)
	q.Push(addr(3), 3.0)

	order := []uint64{}
	for {
		a, ok := q.Pop()
		if !ok {
			break
		}
		order = append(order, a.Path)
	}
	want := []uint64{2, 3, 1}
	if len(order) != len(want) {
		t.Fatalf("got %v want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v want %v", order, want)
		}
	}
}

// Re-pushing an address already in the queue must supersede its old
// priority, and the stale entry must never surface from Pop.
func TestRepushInvalidatesStaleEntry(t *testing.T) {
	q := NewQueue()
	q.Push(addr(1), 1.0)
	q.Push(addr(1), 100.0) // supersede

	a, ok := q.Pop()
	if !ok || a.Path != 1 {
		t.Fatalf("expected to pop addr 1, got %v ok=%v", a, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected queue empty after popping the only live entry")
	}
}

func TestRemoveInvalidatesPendingEntry(t *testing.T) {
	q := NewQueue()
	q.Push(addr(1), 1.0)
	q.Push(addr(2), 2.0)
	q.Remove(addr(2))

	a, ok := q.Pop()
	if !ok || a.Path != 1 {
		t.Fatalf("expected addr 1 after removing addr 2, got %v ok=%v", a, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected queue empty after skipping the removed entry")
	}
}
