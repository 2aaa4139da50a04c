// Package worker runs chunk build jobs (terrain generation, meshing, seam
// fixing) on a fixed-size goroutine pool, generalizing the teacher's
// single chunkWorker goroutine (pkg/game/chunk_manager.go) to N workers
// pulling from one buffered job channel, each publishing results to a
// single results channel that planet.Planet drains under a per-frame
// ingest cap. A job whose Generation is more than the pool's staleLimit
// behind the newest submitted generation by the time a worker is free to
// run it is dropped unexecuted, since the
// scheduling pass that requested it has since recomputed a fresher set of
// priorities.
package worker

import (
	"sync"

	"github.com/kestrelworks/planetlod/chunkaddr"
)

// Job is one unit of background work keyed by chunk address.
type Job struct {
	Addr       chunkaddr.Address
	Generation uint64
	Run        func() (Result, error)
}

// Result is what a completed Job produces; the fields a caller cares about
// depend on the job kind, so Run returns an opaque Payload the caller type
// -asserts.
type Result struct {
	Addr    chunkaddr.Address
	Payload any
}

// Outcome pairs a completed Result with any error Run returned.
type Outcome struct {
	Result Result
	Err    error
}

// Pool is a fixed-size worker pool draining a buffered job queue into a
// single results channel.
type Pool struct {
	jobs    chan Job
	results chan Outcome
	wg      sync.WaitGroup

	mu         sync.Mutex
	generation uint64 // the most recent generation seen; jobs older than this by more than staleLimit are dropped
	staleLimit uint64
}

// NewPool starts a pool of n workers pulling from a queue buffered to
// queueSize. staleLimit bounds how many generations behind the newest
// submitted job a queued job may be before it's discarded unrun.
func NewPool(n, queueSize int, staleLimit uint64) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs:       make(chan Job, queueSize),
		results:    make(chan Outcome, queueSize),
		staleLimit: staleLimit,
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.runWorker()
	}
	return p
}

func (p *Pool) runWorker() {
	defer p.wg.Done()
	for job := range p.jobs {
		if p.isStale(job.Generation) {
			continue
		}
		result, err := job.Run()
		p.results <- Outcome{Result: result, Err: err}
	}
}

func (p *Pool) isStale(jobGen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation > jobGen+p.staleLimit
}

// Submit enqueues job, blocking if the queue is full. It updates the
// pool's notion of the newest generation seen, which later staleness
// checks compare against.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	if job.Generation > p.generation {
		p.generation = job.Generation
	}
	p.mu.Unlock()
	p.jobs <- job
}

// TrySubmit enqueues job without blocking, reporting false if the queue is
// full.
func (p *Pool) TrySubmit(job Job) bool {
	p.mu.Lock()
	if job.Generation > p.generation {
		p.generation = job.Generation
	}
	p.mu.Unlock()
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Drain pulls up to max completed outcomes without blocking, for a
// caller's per-frame ingest cap. It returns fewer than max if the results
// channel empties first.
func (p *Pool) Drain(max int) []Outcome {
	out := make([]Outcome, 0, max)
	for len(out) < max {
		select {
		case o := <-p.results:
			out = append(out, o)
		default:
			return out
		}
	}
	return out
}

// Close stops accepting new jobs and waits for in-flight workers to drain
// the remaining queue, then closes the results channel.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}
