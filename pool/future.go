package pool

import (
	"context"
	"sync"
	"time"
)

// Future is the consumer side of a one-shot result channel.
//
// Exactly one outcome, a value or an error, is ever published to a Future. The
// outcome is buffered, so Get may be called any number of times and from any
// number of goroutines; every call observes the same value and error.
//
// A caller that never retrieves the outcome never learns about a failure.
// Dropping a Future does not affect execution of its work item.
type Future[R any] struct {
	done  chan struct{}
	once  sync.Once
	value R
	err   error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{
		done: make(chan struct{}),
	}
}

// complete publishes the outcome. Only the first call has any effect.
func (f *Future[R]) complete(value R, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Get blocks until the work item has run and returns its value and error.
//
// Example:
//
//	future, _ := pool.Submit(p, func() (int, error) { return 10 + 12, nil })
//	sum, err := future.Get() // 22, nil
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// Wait blocks until the work item has run, discarding the value.
// The returned error is the one Get would return.
func (f *Future[R]) Wait() error {
	<-f.done
	return f.err
}

// GetWithContext is like Get but stops waiting when ctx is done, returning the
// context's error. The work item itself keeps running.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout is like Get but gives up after timeout with
// context.DeadlineExceeded. A non-positive timeout waits indefinitely.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	if timeout <= 0 {
		return f.Get()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

// TryGet returns the outcome without blocking. ready reports whether the work
// item has completed; value and err are zero when it has not.
func (f *Future[R]) TryGet() (value R, err error, ready bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		return value, nil, false
	}
}

// Done returns a channel closed once the outcome is available.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the outcome is available.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
