package schedule

import (
	"container/heap"
	"sync"

	"github.com/kestrelworks/planetlod/chunkaddr"
)

// heapEntry is one scheduling request in flight. Generation lets Queue
// invalidate a stale entry in O(1) instead of scanning the heap to remove
// it: Push on an already-queued address just bumps the address's current
// generation and pushes a fresh entry: pops of any older-generation entry
// for that address are silently discarded.
type heapEntry struct {
	addr       chunkaddr.Address
	priority   float64
	generation uint64
}

type entryHeap []*heapEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].priority > h[j].priority } // max-heap
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(*heapEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Queue is a thread-safe priority queue of pending chunk work, ordered by
// descending Score.
type Queue struct {
	mu         sync.Mutex
	h          entryHeap
	generation map[chunkaddr.Address]uint64
	nextGen    uint64 // last generation handed out; never reused, even after Pop or Remove
}

// NewQueue returns an empty scheduling queue.
func NewQueue() *Queue {
	return &Queue{generation: make(map[chunkaddr.Address]uint64)}
}

// Push enqueues addr at the given priority. If addr is already queued, its
// prior entry is invalidated in favor of this one (the caller always wants
// the most recently computed priority to win).
func (q *Queue) Push(addr chunkaddr.Address, priority float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextGen++
	gen := q.nextGen
	q.generation[addr] = gen
	heap.Push(&q.h, &heapEntry{addr: addr, priority: priority, generation: gen})
}

// Pop removes and returns the highest-priority still-valid address. Returns
// ok=false when the queue is empty.
func (q *Queue) Pop() (addr chunkaddr.Address, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.h.Len() > 0 {
		e := heap.Pop(&q.h).(*heapEntry)
		if e.generation != q.generation[e.addr] {
			continue // stale: a newer Push for this address has superseded it
		}
		delete(q.generation, e.addr)
		return e.addr, true
	}
	return chunkaddr.Address{}, false
}

// Len reports the number of entries still in the heap, including stale
// ones not yet lazily discarded — an upper bound on pending work, not an
// exact count.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}

// Remove invalidates any pending entry for addr without requiring a pop,
// e.g. when a chunk leaves view before its work item is serviced.
func (q *Queue) Remove(addr chunkaddr.Address) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.generation, addr)
}
