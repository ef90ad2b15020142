//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// PinWorker locks the calling goroutine to its OS thread and binds that thread
// to core workerID, wrapped around the logical CPU count.
func PinWorker(workerID int) (release func(), core int, err error) {
	runtime.LockOSThread()

	core = wrapCore(workerID)
	handle, _, _ := getCurrentThread.Call()

	prev, _, callErr := setThreadAffinityMask.Call(handle, uintptr(1)<<uint(core))
	if prev == 0 {
		err = callErr
	}
	return runtime.UnlockOSThread, core, err
}
