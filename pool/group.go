package pool

import "fmt"

// Group is an ordered, fixed-size collection of Futures. A Group returned by a
// partitioned submission is index-aligned with the chunk boundaries that
// produced it: slot i holds the outcome of chunk i, whichever worker ran it and
// whenever it finished.
type Group[R any] struct {
	futures []*Future[R]
}

// NewGroup allocates a Group with n empty slots. Negative sizes are treated as
// zero.
func NewGroup[R any](n int) *Group[R] {
	return &Group[R]{
		futures: make([]*Future[R], max(n, 0)),
	}
}

// Len returns the number of slots.
func (g *Group[R]) Len() int {
	return len(g.futures)
}

// Set installs the Future for slot index.
func (g *Group[R]) Set(index int, f *Future[R]) error {
	if err := g.checkIndex(index); err != nil {
		return err
	}
	g.futures[index] = f
	return nil
}

// Get returns the Future at index without blocking. The Future is nil if the
// slot was never set.
func (g *Group[R]) Get(index int) (*Future[R], error) {
	if err := g.checkIndex(index); err != nil {
		return nil, err
	}
	return g.futures[index], nil
}

// WaitAll blocks until the work behind every installed slot has completed.
// Values and errors are left in place for later retrieval.
func (g *Group[R]) WaitAll() {
	for _, f := range g.futures {
		if f != nil {
			<-f.Done()
		}
	}
}

// Collect blocks until every slot has completed and returns the values in slot
// order. If any slot failed, the error of the lowest failing slot is returned,
// wrapped with its index; the values slice is still fully populated with
// whatever the slots produced.
func (g *Group[R]) Collect() ([]R, error) {
	results := make([]R, len(g.futures))
	var firstErr error

	for i, f := range g.futures {
		if f == nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("partition %d: %w", i, ErrEmptySlot)
			}
			continue
		}

		value, err := f.Get()
		results[i] = value
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("partition %d: %w", i, err)
		}
	}

	return results, firstErr
}

func (g *Group[R]) checkIndex(index int) error {
	if index < 0 || index >= len(g.futures) {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(g.futures))
	}
	return nil
}
