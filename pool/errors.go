package pool

import "errors"

var (
	// ErrInvalidArgument reports a precondition violation at the call site,
	// such as a non-positive chunk count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned when a Group slot index is outside [0, Len()).
	ErrIndexOutOfRange = errors.New("group index out of range")

	// ErrEmptySlot is returned by Collect for a slot that never received a Future.
	ErrEmptySlot = errors.New("group slot has no future")

	// ErrPoolClosed is returned by operations attempted after Close.
	ErrPoolClosed = errors.New("pool closed")

	// ErrWorkPanic wraps a panic recovered while executing a work item.
	ErrWorkPanic = errors.New("worker panic")
)
