// Package partition splits an index range into contiguous chunks.
//
// The planner is a pure function: given [start, end), a desired number of
// chunks and an optional fixed chunk width, it returns the ordered chunk
// boundaries. Adjacent boundaries (b[i], b[i+1]) describe the half-open range
// handled by the i-th chunk, so the result always has one more element than
// the number of chunks produced.
//
//	bounds, _ := partition.Range(0, 10, 3, 0)
//	// bounds: [0 4 8 10] -> chunks [0,4) [4,8) [8,10)
package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChunkCount is returned when the requested chunk count is not positive.
	ErrInvalidChunkCount = errors.New("chunk count must be positive")

	// ErrInvalidChunkSize is returned for a negative minimum chunk size.
	ErrInvalidChunkSize = errors.New("minimum chunk size must not be negative")

	// ErrTooManyChunks is returned when a plan would hold more than MaxChunks
	// chunks.
	ErrTooManyChunks = errors.New("too many chunks")
)

// MaxChunks bounds the number of chunks a single plan may produce.
const MaxChunks = 1 << 24

// Chunk is the half-open index range [Start, End).
type Chunk struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the chunk. It wraps for a
// chunk wider than math.MaxInt.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Range computes chunk boundaries for the index range between start and end.
//
// If end < start the two are swapped. When minSize is non-zero it is used as the
// chunk width; otherwise the width is count/chunks, rounded up by one whenever
// the division leaves a remainder. The number of chunks produced is
// ceil(count/width), which may differ from the requested count. Every chunk but
// the last has exactly the computed width and the last boundary is always end,
// so the last chunk absorbs whatever is left.
//
// Any pair of ints is a valid range, including ones whose length does not fit
// in an int. An empty range yields a single boundary and therefore zero chunks.
func Range(start, end, chunks, minSize int) ([]int, error) {
	if chunks <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkCount, chunks)
	}
	if minSize < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, minSize)
	}

	if end < start {
		start, end = end, start
	}

	// the length of [start, end) always fits in a uint
	count := uint(end) - uint(start)
	if count == 0 {
		return []int{start}, nil
	}

	width := chunkWidth(count, uint(chunks), uint(minSize))
	n := count / width
	if count%width != 0 {
		n++
	}
	if n > MaxChunks {
		return nil, fmt.Errorf("%w: width %d splits %d indices into %d chunks", ErrTooManyChunks, width, count, n)
	}

	bounds := make([]int, n+1)
	for i := range n {
		// i*width < count, so the sum lands inside [start, end)
		bounds[i] = int(uint(start) + i*width)
	}
	bounds[n] = end

	return bounds, nil
}

// chunkWidth resolves the width every chunk but the last will have.
func chunkWidth(count, chunks, minSize uint) uint {
	if minSize > 0 {
		return minSize
	}

	width := count / chunks
	if count%chunks != 0 && width < count {
		width++
	}

	return max(width, 1)
}

// Sizes returns the length of each chunk produced by Range(0, count, chunks, 0).
// The sizes always sum to count.
func Sizes(count, chunks int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("data count must not be negative: got %d", count)
	}

	bounds, err := Range(0, count, chunks, 0)
	if err != nil {
		return nil, err
	}

	sizes := make([]int, len(bounds)-1)
	for i := range sizes {
		sizes[i] = bounds[i+1] - bounds[i]
	}
	return sizes, nil
}

// Chunks pairs adjacent boundaries into chunks.
func Chunks(bounds []int) []Chunk {
	if len(bounds) < 2 {
		return nil
	}

	out := make([]Chunk, len(bounds)-1)
	for i := range out {
		out[i] = Chunk{Start: bounds[i], End: bounds[i+1]}
	}
	return out
}
