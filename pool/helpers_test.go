package pool

import (
	"testing"
	"time"
)

// newTestPool creates a pool that is closed when the test ends.
func newTestPool(t *testing.T, opts ...Option) *Pool {
	t.Helper()

	p := New(opts...)
	t.Cleanup(func() {
		_ = p.Close()
	})
	return p
}

// waitOrFail runs fn in the background and fails the test if it does not
// return within timeout.
func waitOrFail(t *testing.T, timeout time.Duration, what string, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("timeout waiting for %s", what)
	}
}

// gate blocks work items until released.
type gate struct {
	ch chan struct{}
}

func newGate() *gate {
	return &gate{ch: make(chan struct{})}
}

func (g *gate) wait() {
	<-g.ch
}

func (g *gate) open() {
	close(g.ch)
}
