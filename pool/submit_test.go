package pool

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/threadpool/internal/cpu"
	"github.com/utkarsh5026/threadpool/partition"
	"golang.org/x/sync/errgroup"
)

func TestSubmit(t *testing.T) {
	t.Run("bound arguments", func(t *testing.T) {
		p := newTestPool(t)

		sum := func(a, b int) int { return a + b }
		future, err := Submit(p, func() (int, error) { return sum(10, 12), nil })
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		value, err := future.GetWithTimeout(2 * time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != 22 {
			t.Errorf("expected 22, got %d", value)
		}
	})

	t.Run("nil function", func(t *testing.T) {
		p := newTestPool(t)

		if _, err := Submit[int](p, nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := Exec(p, nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("dropped futures still run", func(t *testing.T) {
		p := newTestPool(t, WithThreadCount(2))

		var executed atomic.Int32
		for range 20 {
			if _, err := Exec(p, func() error { executed.Add(1); return nil }); err != nil {
				t.Fatalf("submit failed: %v", err)
			}
		}

		waitOrFail(t, 2*time.Second, "Wait", p.Wait)
		if got := executed.Load(); got != 20 {
			t.Errorf("expected 20 executed items, got %d", got)
		}
	})
}

func TestSubmit_FIFO(t *testing.T) {
	p := newTestPool(t, WithThreadCount(1))
	p.Pause()

	var mu sync.Mutex
	var order []int
	for i := range 10 {
		_, err := Exec(p, func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	p.Resume()
	waitOrFail(t, 2*time.Second, "Wait", p.Wait)

	mu.Lock()
	defer mu.Unlock()
	for i, v := range order {
		if v != i {
			t.Fatalf("expected dequeue order 0..9, got %v", order)
		}
	}
	if len(order) != 10 {
		t.Errorf("expected 10 items, got %d", len(order))
	}
}

func TestSubmit_ConcurrentSubmitters(t *testing.T) {
	p := newTestPool(t, WithThreadCount(4))

	const submitters, perSubmitter = 8, 200
	counts := make([]atomic.Int32, submitters*perSubmitter)
	futures := make([]*Future[int], submitters*perSubmitter)

	var g errgroup.Group
	for s := range submitters {
		g.Go(func() error {
			for i := range perSubmitter {
				idx := s*perSubmitter + i
				f, err := Submit(p, func() (int, error) {
					counts[idx].Add(1)
					return idx, nil
				})
				if err != nil {
					return err
				}
				futures[idx] = f
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for idx, f := range futures {
		v, err := f.GetWithTimeout(5 * time.Second)
		if err != nil {
			t.Fatalf("item %d failed: %v", idx, err)
		}
		if v != idx {
			t.Fatalf("item %d returned %d", idx, v)
		}
	}

	p.Wait()
	for i := range counts {
		if c := counts[i].Load(); c != 1 {
			t.Fatalf("item %d executed %d times", i, c)
		}
	}
}

func TestSubmitRange(t *testing.T) {
	t.Run("ten plus twelve", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		group, err := SubmitRange(p, 0, 1, 1, 0, func(lo, hi int) (int, error) {
			return 10 + 12, nil
		})
		chk.NoError(err)
		chk.Equal(1, group.Len())

		values, err := group.Collect()
		chk.NoError(err)
		chk.Equal([]int{22}, values)
	})

	t.Run("shared counter reaches range size", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		var mu sync.Mutex
		counter := 0

		group, err := ForEachChunk(p, 0, 100_000, 4, 0, func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				mu.Lock()
				counter++
				mu.Unlock()
			}
			return nil
		})
		chk.NoError(err)
		chk.Equal(cpu.ResolveCount(4), group.Len())
		if group.Len() < 4 {
			t.Logf("only %d CPU(s): range split into %d chunks instead of 4", cpu.Parallelism(), group.Len())
		}

		group.WaitAll()

		mu.Lock()
		defer mu.Unlock()
		chk.Equal(100_000, counter)
	})

	t.Run("results follow chunk order", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		group, err := SubmitRange(p, 0, 10, 1, 3, func(lo, hi int) ([2]int, error) {
			// later chunks finish first
			time.Sleep(time.Duration(10-lo) * time.Millisecond)
			return [2]int{lo, hi}, nil
		})
		chk.NoError(err)

		values, err := group.Collect()
		chk.NoError(err)
		chk.Equal([][2]int{{0, 3}, {3, 6}, {6, 9}, {9, 10}}, values)
	})

	t.Run("reversed bounds", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		group, err := SubmitRange(p, 10, 0, 1, 5, func(lo, hi int) (int, error) {
			return hi - lo, nil
		})
		chk.NoError(err)

		values, err := group.Collect()
		chk.NoError(err)
		chk.Equal([]int{5, 5}, values)
	})

	t.Run("empty range submits nothing", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		var calls atomic.Int32
		group, err := SubmitRange(p, 7, 7, 4, 0, func(lo, hi int) (int, error) {
			calls.Add(1)
			return 0, nil
		})
		chk.NoError(err)
		chk.Equal(0, group.Len())

		values, err := group.Collect()
		chk.NoError(err)
		chk.Empty(values)

		p.Wait()
		chk.Zero(calls.Load())
	})

	t.Run("invalid arguments", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		body := func(lo, hi int) (int, error) { return 0, nil }

		_, err := SubmitRange(p, 0, 10, 0, 0, body)
		chk.ErrorIs(err, ErrInvalidArgument)

		_, err = SubmitRange(p, 0, 10, -3, 0, body)
		chk.ErrorIs(err, ErrInvalidArgument)

		_, err = SubmitRange(p, 0, 10, 2, -1, body)
		chk.ErrorIs(err, ErrInvalidArgument)

		_, err = SubmitRange[int](p, 0, 10, 2, 0, nil)
		chk.ErrorIs(err, ErrInvalidArgument)

		chk.Zero(p.QueuedCount())
	})

	t.Run("range wider than an int", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		group, err := SubmitRange(p, math.MinInt, math.MaxInt, 1, 0, func(lo, hi int) ([2]int, error) {
			return [2]int{lo, hi}, nil
		})
		chk.NoError(err)

		values, err := group.Collect()
		chk.NoError(err)
		chk.Equal([][2]int{{math.MinInt, math.MaxInt}}, values)
	})

	t.Run("too many fixed-width chunks", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		_, err := SubmitLoop(p, math.MaxInt, 1, 1, func(lo, hi int) (int, error) { return 0, nil })
		chk.ErrorIs(err, ErrInvalidArgument)
		chk.ErrorIs(err, partition.ErrTooManyChunks)
		chk.Zero(p.QueuedCount())
	})

	t.Run("pool partition size is the default width", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t, WithMinPartitionSize(4))

		group, err := SubmitLoop(p, 10, 1, 0, func(lo, hi int) (int, error) {
			return hi - lo, nil
		})
		chk.NoError(err)

		values, err := group.Collect()
		chk.NoError(err)
		chk.Equal([]int{4, 4, 2}, values)

		// an explicit width wins over the pool default
		group, err = SubmitLoop(p, 10, 1, 5, func(lo, hi int) (int, error) {
			return hi - lo, nil
		})
		chk.NoError(err)

		values, err = group.Collect()
		chk.NoError(err)
		chk.Equal([]int{5, 5}, values)
	})

	t.Run("chunk failure surfaces in collect", func(t *testing.T) {
		chk := require.New(t)
		p := newTestPool(t)

		errOdd := errors.New("odd chunk")
		group, err := SubmitLoop(p, 40, 1, 10, func(lo, hi int) (int, error) {
			if (lo/10)%2 == 1 {
				return 0, fmt.Errorf("chunk at %d: %w", lo, errOdd)
			}
			return hi - lo, nil
		})
		chk.NoError(err)
		chk.Equal(4, group.Len())

		values, err := group.Collect()
		chk.ErrorIs(err, errOdd)
		chk.Contains(err.Error(), "partition 1")
		chk.Equal([]int{10, 0, 10, 0}, values)

		f, err := group.Get(2)
		chk.NoError(err)
		v, err := f.Get()
		chk.NoError(err)
		chk.Equal(10, v)
	})
}

func TestSubmitSlice(t *testing.T) {
	chk := require.New(t)
	p := newTestPool(t)

	data := make([]int, 1000)
	for i := range data {
		data[i] = i + 1
	}

	group, err := SubmitSlice(p, data, 4, 0, func(chunk []int) (int, error) {
		sum := 0
		for _, v := range chunk {
			sum += v
		}
		return sum, nil
	})
	chk.NoError(err)

	partials, err := group.Collect()
	chk.NoError(err)

	total := 0
	for _, s := range partials {
		total += s
	}
	chk.Equal(500_500, total)

	t.Run("appending stays within the chunk", func(t *testing.T) {
		chk := require.New(t)

		data := []int{1, 2, 3, 4, 5, 6}
		group, err := SubmitSlice(p, data, 1, 3, func(chunk []int) (int, error) {
			chunk = append(chunk, -1)
			return len(chunk), nil
		})
		chk.NoError(err)

		values, err := group.Collect()
		chk.NoError(err)
		chk.Equal([]int{4, 4}, values)
		chk.Equal([]int{1, 2, 3, 4, 5, 6}, data)
	})
}
