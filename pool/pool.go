package pool

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/utkarsh5026/threadpool/internal/cpu"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pool is a long-running pool of worker goroutines fed from a single FIFO
// queue. Work is submitted with Submit, Exec, SubmitRange, SubmitLoop,
// ForEachChunk or SubmitSlice; each submission returns immediately with a
// Future or Group through which the outcome is retrieved later.
//
// One mutex guards the queue and every piece of pool state. Two condition
// variables hang off it: newWork wakes a worker when an item is queued or the
// pool resumes, taskDone wakes callers blocked in Wait when an item finishes.
type Pool struct {
	conf *poolConfig
	log  *zap.Logger

	// lifecycle serializes Resize, Close, Pause and Resume.
	lifecycle sync.Mutex

	mu       sync.Mutex
	newWork  *sync.Cond
	taskDone *sync.Cond
	queue    deque.Deque[*workItem]
	state    poolState
	threads  int
	workers  *errgroup.Group
	seq      uint64
}

// poolState is only read or written with Pool.mu held.
type poolState struct {
	running     bool // workers keep looping
	paused      bool // workers must not dequeue; the queue is kept
	closed      bool // new submissions are rejected
	waiting     int  // callers blocked in Wait
	outstanding int  // queued + executing
}

// settled reports whether a drain may return. While paused, queued items are
// tolerated as long as nothing is mid-execution.
func (s *poolState) settled(queued int) bool {
	if s.paused {
		return s.outstanding == queued
	}
	return s.outstanding == 0
}

// New creates a Pool and starts its workers immediately.
//
// Default configuration:
//   - threads: runtime.NumCPU()
//   - minPartitionSize: 0 (chunks sized by dividing the range)
//   - logger: zap.NewNop()
//
// Example:
//
//	p := pool.New(pool.WithThreadCount(4))
//	defer p.Close()
//
//	future, _ := pool.Submit(p, func() (int, error) { return 10 + 12, nil })
//	sum, err := future.Get()
func New(opts ...Option) *Pool {
	cfg := newConfig(opts...)

	p := &Pool{
		conf: cfg,
		log:  cfg.logger,
	}
	p.newWork = sync.NewCond(&p.mu)
	p.taskDone = sync.NewCond(&p.mu)

	p.mu.Lock()
	p.startWorkersLocked(cfg.threadCount)
	threads := p.threads
	p.mu.Unlock()

	p.log.Info("pool started",
		zap.Int("threads", threads),
		zap.Int("min_partition_size", cfg.minPartitionSize),
		zap.Bool("rate_limited", cfg.rateLimiter != nil),
		zap.Bool("cpu_affinity", cfg.pinWorkers),
	)

	return p
}

// Wait blocks until every outstanding item has finished. While the pool is
// paused it returns as soon as nothing is executing, leaving queued items in
// place.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.waitLocked()
}

// Pause stops workers from dequeuing. Items already executing run to
// completion; queued items are kept. Pausing a closed pool has no effect.
func (p *Pool) Pause() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.closed {
		p.setPausedLocked(true)
	}
}

// Resume lets workers dequeue again after Pause.
func (p *Pool) Resume() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.closed {
		p.setPausedLocked(false)
	}
}

// Paused reports whether workers are currently barred from dequeuing.
func (p *Pool) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.paused
}

// Resize replaces the worker set with one of the given size, resolved the same
// way as WithThreadCount. In-flight items finish first; queued items are kept
// and picked up by the new workers. The pause state in effect before the call
// is restored afterwards.
//
// Submissions may continue concurrently: they only ever touch the queue.
func (p *Pool) Resize(threads int) error {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.closed {
		return ErrPoolClosed
	}

	previous := p.threads
	wasPaused := p.state.paused

	p.setPausedLocked(true)
	p.waitLocked()
	p.stopWorkersLocked()
	p.startWorkersLocked(threads)
	p.setPausedLocked(wasPaused)

	p.log.Info("pool resized",
		zap.Int("from", previous),
		zap.Int("to", p.threads),
		zap.Int("queued", p.queue.Len()),
	)

	return nil
}

// Close rejects further submissions, runs everything already queued (resuming
// a paused pool), then stops and joins the workers. Calling Close more than
// once returns ErrPoolClosed.
func (p *Pool) Close() error {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.closed {
		return ErrPoolClosed
	}
	p.state.closed = true

	if p.state.paused {
		p.setPausedLocked(false)
	}
	p.waitLocked()
	p.stopWorkersLocked()

	p.log.Info("pool closed", zap.Uint64("items_submitted", p.seq))
	return nil
}

// QueuedCount returns the number of items waiting to be dequeued.
func (p *Pool) QueuedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// ActiveCount returns the number of items currently executing.
func (p *Pool) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.outstanding - p.queue.Len()
}

// ThreadCount returns the number of workers in the current worker set.
func (p *Pool) ThreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.threads
}

// MinPartitionSize returns the default chunk width for partitioned loops.
func (p *Pool) MinPartitionSize() int {
	return p.conf.minPartitionSize
}

func (p *Pool) enqueue(run func() error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.closed {
		return ErrPoolClosed
	}

	p.seq++
	p.queue.PushBack(&workItem{seq: p.seq, run: run})
	p.state.outstanding++
	p.newWork.Signal()

	return nil
}

func (p *Pool) waitLocked() {
	p.state.waiting++
	for !p.state.settled(p.queue.Len()) {
		p.taskDone.Wait()
	}
	p.state.waiting--
}

func (p *Pool) setPausedLocked(paused bool) {
	p.state.paused = paused
	if paused {
		// a paused pool may already be settled
		p.taskDone.Broadcast()
		return
	}
	p.newWork.Broadcast()
}

func (p *Pool) startWorkersLocked(requested int) {
	p.threads = cpu.ResolveCount(requested)
	p.state.running = true

	g := &errgroup.Group{}
	for i := range p.threads {
		g.Go(func() error {
			p.worker(i)
			return nil
		})
	}
	p.workers = g
}

// stopWorkersLocked releases p.mu while joining the workers and reacquires it
// before returning.
func (p *Pool) stopWorkersLocked() {
	p.state.running = false
	p.newWork.Broadcast()

	workers := p.workers
	p.mu.Unlock()
	_ = workers.Wait()
	p.mu.Lock()
}
