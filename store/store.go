// Package store holds resident chunk voxel data and meshes under a memory
// budget, evicting the least useful chunks first when that budget is
// exceeded. Storage follows the teacher's map-plus-RWMutex chunk registry
// pattern (pkg/game/chunk_manager.go), generalized from a flat chunk
// coordinate key to chunkaddr.Address and extended with priority-ordered
// eviction.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/kestrelworks/planetlod/chunkaddr"
	"github.com/kestrelworks/planetlod/chunkdata"
	"github.com/kestrelworks/planetlod/meshdata"
)

// ErrBudgetExhausted is returned by Put when accepting an entry would
// exceed the budget even after evicting every other chunk.
var ErrBudgetExhausted = errors.New("store: chunk exceeds the entire memory budget by itself")

// Entry is one resident chunk's data.
type Entry struct {
	Voxels *chunkdata.LodChunkData
	Mesh   *meshdata.ChunkMesh
	// OldMesh is the outgoing mesh while this chunk is mid-transition: both
	// meshes are resident (and counted against the budget) until the
	// transition completes and the caller clears it via ClearOldMesh.
	OldMesh  *meshdata.ChunkMesh
	Priority float64
}

func (e *Entry) bytes() int64 {
	var n int64
	if e.Voxels != nil {
		n += e.Voxels.EstimatedBytes()
	}
	if e.Mesh != nil {
		n += e.Mesh.EstimatedBytes()
	}
	if e.OldMesh != nil {
		n += e.OldMesh.EstimatedBytes()
	}
	return n
}

// Tracker accounts resident bytes against a configured budget. It does not
// own the data itself, only the running total — Store calls it to decide
// when eviction is needed.
type Tracker struct {
	mu        sync.Mutex
	budgetB   int64
	residentB int64
}

// NewTracker creates a tracker with the given byte budget.
func NewTracker(budgetBytes int64) *Tracker {
	return &Tracker{budgetB: budgetBytes}
}

// Budget returns the configured byte budget.
func (t *Tracker) Budget() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.budgetB
}

// Resident returns the current tracked byte total.
func (t *Tracker) Resident() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.residentB
}

// Add adds delta (may be negative) to the resident total.
func (t *Tracker) Add(delta int64) {
	t.mu.Lock()
	t.residentB += delta
	t.mu.Unlock()
}

// OverBudget reports whether the resident total exceeds the budget.
func (t *Tracker) OverBudget() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.residentB > t.budgetB
}

// Store holds resident chunks keyed by address and evicts the
// lowest-priority ones first when over budget.
type Store struct {
	mu      sync.RWMutex
	entries map[chunkaddr.Address]*Entry
	tracker *Tracker
	trans   transitioning
}

// NewStore creates an empty store governed by tracker.
func NewStore(tracker *Tracker) *Store {
	return &Store{entries: make(map[chunkaddr.Address]*Entry), tracker: tracker}
}

// Get returns the resident entry for addr, if any.
func (s *Store) Get(addr chunkaddr.Address) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[addr]
	return e, ok
}

// Put installs or replaces the entry for addr, then evicts the
// lowest-priority resident entries (never the one just inserted, even if
// it is itself the lowest-priority) until back within budget. Returns
// ErrBudgetExhausted if entry alone exceeds the entire budget.
func (s *Store) Put(addr chunkaddr.Address, entry *Entry) error {
	if entry.bytes() > s.tracker.Budget() {
		return ErrBudgetExhausted
	}

	s.mu.Lock()
	if old, ok := s.entries[addr]; ok {
		s.tracker.Add(-old.bytes())
	}
	s.entries[addr] = entry
	s.mu.Unlock()
	s.tracker.Add(entry.bytes())

	s.evictUntilWithinBudget(addr)
	return nil
}

// EvictOverBudget runs the eviction sweep without protecting any address,
// for the control loop's standalone "drain the budget" step rather than as
// a side effect of a particular Put.
func (s *Store) EvictOverBudget() {
	s.evictUntilWithinBudget(chunkaddr.Address{})
}

// Remove evicts addr unconditionally, e.g. when it leaves view.
func (s *Store) Remove(addr chunkaddr.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[addr]; ok {
		s.tracker.Add(-e.bytes())
		delete(s.entries, addr)
	}
}

// UpdatePriority updates addr's eviction priority without touching its
// data, e.g. after a frame's scheduling pass recomputes scores.
func (s *Store) UpdatePriority(addr chunkaddr.Address, priority float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[addr]; ok {
		e.Priority = priority
	}
}

// Len returns the number of resident entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Range calls fn for every resident entry. fn must not call back into the
// Store.
func (s *Store) Range(fn func(addr chunkaddr.Address, e *Entry)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for a, e := range s.entries {
		fn(a, e)
	}
}

// ClearOldMesh drops addr's outgoing transition mesh and releases its
// bytes back to the tracker. Called once transition.Manager reports the
// crossfade for addr has completed.
func (s *Store) ClearOldMesh(addr chunkaddr.Address) {
	s.mu.Lock()
	e, ok := s.entries[addr]
	if !ok || e.OldMesh == nil {
		s.mu.Unlock()
		return
	}
	freed := e.OldMesh.EstimatedBytes()
	e.OldMesh = nil
	s.mu.Unlock()
	s.tracker.Add(-freed)
}

// transitioning reports whether addr is currently mid-transition. Checked
// by eviction so a chunk briefly holding two meshes isn't evicted out from
// under its own crossfade.
type transitioning interface {
	IsTransitioning(addr chunkaddr.Address) bool
}

// SetTransitionChecker wires the transition tracker eviction must consult:
// chunks it reports as mid-transition are skipped by evictUntilWithinBudget
// even when they're the lowest-priority resident entry, since their extra
// memory usage is temporary and released via ClearOldMesh on completion.
func (s *Store) SetTransitionChecker(t transitioning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trans = t
}

// evictUntilWithinBudget removes ascending-priority entries (excluding
// protect and anything mid-transition) until the tracker reports within
// budget or no more entries are evictable.
func (s *Store) evictUntilWithinBudget(protect chunkaddr.Address) {
	for s.tracker.OverBudget() {
		s.mu.Lock()
		victim, found := s.lowestPriorityLocked(protect)
		if !found {
			s.mu.Unlock()
			return
		}
		e := s.entries[victim]
		delete(s.entries, victim)
		s.mu.Unlock()
		s.tracker.Add(-e.bytes())
	}
}

func (s *Store) lowestPriorityLocked(protect chunkaddr.Address) (chunkaddr.Address, bool) {
	type candidate struct {
		addr     chunkaddr.Address
		priority float64
	}
	candidates := make([]candidate, 0, len(s.entries))
	for a, e := range s.entries {
		if a == protect {
			continue
		}
		if s.trans != nil && s.trans.IsTransitioning(a) {
			continue
		}
		candidates = append(candidates, candidate{a, e.Priority})
	}
	if len(candidates) == 0 {
		return chunkaddr.Address{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].priority < candidates[j].priority })
	return candidates[0].addr, true
}
