package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/threadpool/internal/cpu"
	"go.uber.org/zap"
)

// workItem is a deferred zero-argument unit of work. run executes the bound
// callable, publishes the outcome to its Future and returns the error it
// published so the worker can log it.
type workItem struct {
	seq uint64
	run func() error
}

// worker is the loop run by every worker goroutine. It sleeps while the queue
// is empty or the pool is paused, exits once running is cleared, and executes
// each dequeued item outside the lock.
func (p *Pool) worker(id int) {
	if p.conf.pinWorkers {
		release, core, err := cpu.PinWorker(id)
		defer release()

		if err != nil {
			p.log.Debug("worker not pinned", zap.Int("worker", id), zap.Error(err))
		} else {
			p.log.Debug("worker pinned", zap.Int("worker", id), zap.Int("core", core))
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		for p.state.running && (p.state.paused || p.queue.Len() == 0) {
			p.newWork.Wait()
		}
		if !p.state.running {
			return
		}

		item := p.queue.PopFront()

		p.mu.Unlock()
		p.execute(id, item)
		p.mu.Lock()

		p.state.outstanding--
		if p.state.waiting > 0 {
			p.taskDone.Broadcast()
		}
	}
}

// execute runs a single item. Failures have already been published to the
// item's Future; here they are only logged. Nothing an item does may take the
// worker down with it.
func (p *Pool) execute(workerID int, item *workItem) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("work item escaped recovery",
				zap.Int("worker", workerID),
				zap.Uint64("seq", item.seq),
				zap.Any("panic", r),
			)
		}
	}()

	if p.conf.rateLimiter != nil {
		// only fails when burst is zero, which WithRateLimit never configures
		if err := p.conf.rateLimiter.Wait(context.Background()); err != nil {
			p.log.Debug("rate limiter wait failed",
				zap.Int("worker", workerID),
				zap.Uint64("seq", item.seq),
				zap.Error(err),
			)
		}
	}

	err := item.run()
	switch {
	case err == nil:
	case errors.Is(err, ErrWorkPanic):
		p.log.Warn("recovered panic in work item",
			zap.Int("worker", workerID),
			zap.Uint64("seq", item.seq),
			zap.Error(err),
		)
	default:
		p.log.Debug("work item failed",
			zap.Int("worker", workerID),
			zap.Uint64("seq", item.seq),
			zap.Error(err),
		)
	}
}

// runWithRecovery calls fn, converting a panic into an ErrWorkPanic error that
// carries the panic value and stack trace.
func runWithRecovery[R any](fn func() (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkPanic, r, buf[:n])
		}
	}()

	return fn()
}
