package pool

import (
	"fmt"

	"github.com/utkarsh5026/threadpool/internal/cpu"
	"github.com/utkarsh5026/threadpool/partition"
)

// Submit queues fn for execution and returns its Future without waiting.
// Arguments are bound by closing over them:
//
//	sum := func(a, b int) int { return a + b }
//	future, err := pool.Submit(p, func() (int, error) { return sum(10, 12), nil })
//
// Whatever fn returns, or a panic it raises, is published to the Future and
// never propagates to the worker or the submitter. The item runs exactly once
// even if the Future is dropped.
func Submit[R any](p *Pool, fn func() (R, error)) (*Future[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	future := newFuture[R]()
	err := p.enqueue(func() error {
		value, err := runWithRecovery(fn)
		future.complete(value, err)
		return err
	})
	if err != nil {
		return nil, err
	}

	return future, nil
}

// Exec queues a callable that produces no value. The Future completes with
// fn's error.
func Exec(p *Pool, fn func() error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	return Submit(p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// SubmitRange partitions the index range between start and end and queues
// fn(lo, hi) once per chunk.
//
// chunks must be positive; like the thread count it is capped at the number of
// logical CPUs. minSize, when non-zero, fixes the chunk width; zero falls back
// to the pool's WithMinPartitionSize value. See partition.Range for the exact
// rules. The returned Group has one slot per chunk actually produced, and slot
// i always holds the outcome of chunk i. An empty range yields an empty Group
// and submits nothing.
//
// Example:
//
//	group, _ := pool.SubmitRange(p, 0, 100_000, 4, 0, func(lo, hi int) (int, error) {
//	    sum := 0
//	    for i := lo; i < hi; i++ {
//	        sum += i
//	    }
//	    return sum, nil
//	})
//	partials, err := group.Collect()
func SubmitRange[R any](
	p *Pool,
	start, end, chunks, minSize int,
	fn func(lo, hi int) (R, error),
) (*Group[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}
	if chunks <= 0 {
		return nil, fmt.Errorf("%w: chunk count must be positive, got %d", ErrInvalidArgument, chunks)
	}

	if minSize == 0 {
		minSize = p.conf.minPartitionSize
	}

	bounds, err := partition.Range(start, end, cpu.ResolveCount(chunks), minSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	chunkList := partition.Chunks(bounds)
	group := NewGroup[R](len(chunkList))

	for i, c := range chunkList {
		future, err := Submit(p, func() (R, error) {
			return fn(c.Start, c.End)
		})
		if err != nil {
			return group, fmt.Errorf("submitting partition %d: %w", i, err)
		}
		_ = group.Set(i, future)
	}

	return group, nil
}

// SubmitLoop is SubmitRange over [0, end).
func SubmitLoop[R any](
	p *Pool,
	end, chunks, minSize int,
	fn func(lo, hi int) (R, error),
) (*Group[R], error) {
	return SubmitRange(p, 0, end, chunks, minSize, fn)
}

// ForEachChunk is SubmitRange for loop bodies that produce no value. Use
// WaitAll on the returned Group, or Collect to surface the first failure.
func ForEachChunk(
	p *Pool,
	start, end, chunks, minSize int,
	fn func(lo, hi int) error,
) (*Group[struct{}], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	return SubmitRange(p, start, end, chunks, minSize, func(lo, hi int) (struct{}, error) {
		return struct{}{}, fn(lo, hi)
	})
}

// SubmitSlice partitions data and queues fn once per sub-slice. Sub-slices
// share data's backing array but are capacity-limited, so appending inside fn
// never clobbers a neighbouring chunk.
func SubmitSlice[T, R any](
	p *Pool,
	data []T,
	chunks, minSize int,
	fn func(chunk []T) (R, error),
) (*Group[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	return SubmitRange(p, 0, len(data), chunks, minSize, func(lo, hi int) (R, error) {
		return fn(data[lo:hi:hi])
	})
}
