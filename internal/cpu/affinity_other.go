//go:build !linux && !windows

package cpu

import (
	"fmt"
	"runtime"
)

// PinWorker locks the calling goroutine to its OS thread. Binding to a core is
// not supported here, so err is always ErrPinningUnsupported.
func PinWorker(workerID int) (release func(), core int, err error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, wrapCore(workerID), fmt.Errorf("%w on %s", ErrPinningUnsupported, runtime.GOOS)
}
