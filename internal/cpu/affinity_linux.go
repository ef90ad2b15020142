//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinWorker locks the calling goroutine to its OS thread and binds that thread
// to core workerID, wrapped around the logical CPU count. It returns the core
// chosen. The goroutine stays locked even when binding fails; release must be
// called in every case.
func PinWorker(workerID int) (release func(), core int, err error) {
	runtime.LockOSThread()

	core = wrapCore(workerID)

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	// pid 0 is the calling thread
	err = unix.SchedSetaffinity(0, &mask)
	return runtime.UnlockOSThread, core, err
}
