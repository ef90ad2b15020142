package pool

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a Pool.
type Option func(*poolConfig)

type poolConfig struct {
	threadCount      int
	minPartitionSize int
	logger           *zap.Logger
	rateLimiter      *rate.Limiter
	pinWorkers       bool
}

// WithThreadCount sets the number of worker goroutines.
// Zero, or a count above the machine's parallelism, resolves to the number of
// logical CPUs. Negative counts are ignored.
func WithThreadCount(count int) Option {
	return func(cfg *poolConfig) {
		if count >= 0 {
			cfg.threadCount = count
		}
	}
}

// WithMinPartitionSize sets the chunk width used by partitioned loops whose
// own minSize argument is zero. Zero (the default) means chunks are sized by
// dividing the range by the chunk count.
func WithMinPartitionSize(size int) Option {
	return func(cfg *poolConfig) {
		if size >= 0 {
			cfg.minPartitionSize = size
		}
	}
}

// WithLogger sets the logger used for lifecycle events and captured work
// failures. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *poolConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRateLimit throttles how fast workers start dequeued items.
// tasksPerSecond is the sustained rate and burst the number of items that may
// start back to back. Invalid values leave the pool unthrottled.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 items/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *poolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithCPUAffinity locks every worker to its own OS thread and, where the
// platform allows it, pins worker i to core i modulo the CPU count.
func WithCPUAffinity() Option {
	return func(cfg *poolConfig) {
		cfg.pinWorkers = true
	}
}

func newConfig(opts ...Option) *poolConfig {
	cfg := &poolConfig{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
