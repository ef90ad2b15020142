// Package pool provides a long-running worker pool with a single FIFO queue,
// one-shot result handles and partitioned loop submission.
//
// The primary type is Pool: a fixed set of worker goroutines that dequeue
// deferred work items in submission order. Submissions return immediately
// with a Future (a single item) or a Group (one Future per chunk of a
// partitioned loop); callers retrieve outcomes later by blocking on them.
//
// # Basic Usage
//
//	p := pool.New(pool.WithThreadCount(4))
//	defer p.Close()
//
//	future, err := pool.Submit(p, func() (int, error) {
//	    return 10 + 12, nil
//	})
//	sum, err := future.Get() // 22
//
// # Partitioned Loops
//
// A loop's index range is split into chunks (see package partition) and each
// chunk is queued as its own item:
//
//	group, err := pool.SubmitRange(p, 0, len(data), 4, 0, func(lo, hi int) (float64, error) {
//	    return sum(data[lo:hi]), nil
//	})
//	partials, err := group.Collect() // partials[i] is the sum of chunk i
//
// ForEachChunk covers loop bodies without a result and SubmitSlice partitions a
// slice directly.
//
// # Lifecycle
//
//   - Wait blocks until every queued and executing item has finished
//   - Pause and Resume stop and restart dispatch without discarding the queue
//   - Resize swaps the worker set, keeping queued items
//   - Close drains all work and stops the workers
//
// # Configuration Options
//
//   - WithThreadCount(n): number of workers (default and cap: runtime.NumCPU())
//   - WithMinPartitionSize(n): default chunk width for partitioned loops
//   - WithLogger(l): zap logger for lifecycle events and failed items
//   - WithRateLimit(tasksPerSecond, burst): throttle item dispatch
//   - WithCPUAffinity(): pin each worker to its own OS thread and core
//
// # Error Handling
//
// An item's error, or a panic it raises (converted to an error wrapping
// ErrWorkPanic with a stack trace), is stored in that item's Future and
// surfaced only by Get, Wait or Group.Collect. Failing items never stop a
// worker or affect other items. There is no retry and no cancellation of
// queued items.
package pool
