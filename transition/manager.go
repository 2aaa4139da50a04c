package transition

import (
	"sync"

	"github.com/kestrelworks/planetlod/chunkaddr"
)

// Manager tracks one ChunkTransition per chunk currently swapping LOD
// representations, following the teacher's map-plus-mutex chunk registry
// pattern (pkg/game/chunk_manager.go). A chunk absent from the map is
// Stable: fully opaque at whatever LOD the caller currently has resident
// for it.
type Manager struct {
	mu          sync.Mutex
	transitions map[chunkaddr.Address]*ChunkTransition
	duration    float32
}

// NewManager creates a Manager using duration seconds for every crossfade.
func NewManager(duration float32) *Manager {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Manager{transitions: make(map[chunkaddr.Address]*ChunkTransition), duration: duration}
}

// OnLodChanged starts (or restarts, if one was already in flight) a
// crossfade from fromLod to toLod for addr.
func (m *Manager) OnLodChanged(addr chunkaddr.Address, fromLod, toLod uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[addr] = newChunkTransition(fromLod, toLod, m.duration)
}

// IsTransitioning reports whether addr currently has a crossfade in
// flight. Chunks mid-transition are excluded from eviction by ChunkStore,
// since their extra memory usage is temporary.
func (m *Manager) IsTransitioning(addr chunkaddr.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.transitions[addr]
	return ok
}

// CrossfadeAlphas returns the (old, new) render weights for addr's two
// representations. A chunk with no transition in flight is fully Stable at
// its single current representation: (0, 1).
func (m *Manager) CrossfadeAlphas(addr chunkaddr.Address) (old, new float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transitions[addr]
	if !ok {
		return 0, 1
	}
	return t.crossfadeAlphas()
}

// Tick advances every in-flight transition by dt seconds. It returns the
// addresses whose transition has just completed, so the caller can release
// the outgoing mesh and drop the FromLod representation.
func (m *Manager) Tick(dt float32) []chunkaddr.Address {
	m.mu.Lock()
	defer m.mu.Unlock()

	var completed []chunkaddr.Address
	for addr, t := range m.transitions {
		if t.tick(dt) {
			delete(m.transitions, addr)
			completed = append(completed, addr)
		}
	}
	return completed
}
