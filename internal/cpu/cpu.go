// Package cpu resolves worker counts against the machine's parallelism and
// optionally pins worker goroutines to cores.
package cpu

import (
	"errors"
	"runtime"
)

// ErrPinningUnsupported is returned by PinWorker on platforms without
// per-thread affinity.
var ErrPinningUnsupported = errors.New("cpu pinning not supported")

// Parallelism is the hardware parallelism hint: the number of logical CPUs
// usable by the current process.
func Parallelism() int {
	return max(runtime.NumCPU(), 1)
}

// ResolveCount maps a requested worker or chunk count onto the parallelism
// hint. Zero, negative and oversubscribed requests all resolve to the hint.
func ResolveCount(n int) int {
	hint := Parallelism()
	if n <= 0 || n > hint {
		return hint
	}
	return n
}

func wrapCore(id int) int {
	n := Parallelism()
	return ((id % n) + n) % n
}
