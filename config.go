package cler

import (
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// SchedulerKind selects the dispatch strategy a FlowGraph uses to drive its
// runners.
type SchedulerKind int

const (
	// ThreadPerBlock spawns exactly one worker per runner.
	ThreadPerBlock SchedulerKind = iota
	// FixedThreadPool spawns a fixed number of workers, round-robining
	// runners across them in declaration order.
	FixedThreadPool
)

func (k SchedulerKind) String() string {
	switch k {
	case ThreadPerBlock:
		return "ThreadPerBlock"
	case FixedThreadPool:
		return "FixedThreadPool"
	default:
		return "SchedulerKind(unknown)"
	}
}

// CrashCallback is invoked at most once per FlowGraph lifetime, the first
// time any runner's step returns a terminal Result. ctx is whatever was
// passed to WithCrashCallback.
type CrashCallback func(runnerName string, kind ErrorKind, ctx any)

// FlowGraphConfig holds the recognized FlowGraph options, built with
// functional options (WithScheduler, WithNumWorkers, ...) rather than a
// public struct literal, matching the corpus's options pattern for
// configuring long-lived runtime objects.
type FlowGraphConfig struct {
	scheduler       SchedulerKind
	numWorkers      int
	adaptiveSleep   bool
	sleepMultiplier float64
	sleepMax        time.Duration
	failThreshold   int
	detailedStats   bool
	logger          *logiface.Logger[*stumpy.Event]
	crashCallback   CrashCallback
	crashCtx        any
}

// defaultFlowGraphConfig matches §6: ThreadPerBlock, adaptive sleep off,
// detailed stats on.
func defaultFlowGraphConfig() FlowGraphConfig {
	return FlowGraphConfig{
		scheduler:       ThreadPerBlock,
		numWorkers:      1,
		adaptiveSleep:   false,
		sleepMultiplier: 2.0,
		sleepMax:        50 * time.Millisecond,
		failThreshold:   16,
		detailedStats:   true,
	}
}

// ConfigOption configures a FlowGraphConfig. Apply via NewFlowGraphConfig.
type ConfigOption func(*FlowGraphConfig)

// NewFlowGraphConfig builds a FlowGraphConfig from the defaults plus opts,
// applied in order (later options override earlier ones).
func NewFlowGraphConfig(opts ...ConfigOption) FlowGraphConfig {
	cfg := defaultFlowGraphConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithScheduler selects the dispatch strategy.
func WithScheduler(kind SchedulerKind) ConfigOption {
	return func(c *FlowGraphConfig) { c.scheduler = kind }
}

// WithNumWorkers sets the FixedThreadPool worker count. Ignored under
// ThreadPerBlock. n <= 0 is clamped to 1.
func WithNumWorkers(n int) ConfigOption {
	return func(c *FlowGraphConfig) {
		if n <= 0 {
			n = 1
		}
		c.numWorkers = n
	}
}

// WithAdaptiveSleep enables or disables idle backoff.
func WithAdaptiveSleep(enabled bool) ConfigOption {
	return func(c *FlowGraphConfig) { c.adaptiveSleep = enabled }
}

// WithAdaptiveSleepMultiplier sets the geometric ramp-up factor. Values
// less than 1 are clamped to 1 (no ramp-up, sleep grows only by the
// additive 1µs floor).
func WithAdaptiveSleepMultiplier(m float64) ConfigOption {
	return func(c *FlowGraphConfig) {
		if m < 1 {
			m = 1
		}
		c.sleepMultiplier = m
	}
}

// WithAdaptiveSleepMax sets the upper bound on the adaptive sleep target.
func WithAdaptiveSleepMax(d time.Duration) ConfigOption {
	return func(c *FlowGraphConfig) { c.sleepMax = d }
}

// WithAdaptiveSleepFailThreshold sets the consecutive-transient-failure
// count that arms ramp-up.
func WithAdaptiveSleepFailThreshold(n int) ConfigOption {
	return func(c *FlowGraphConfig) {
		if n < 0 {
			n = 0
		}
		c.failThreshold = n
	}
}

// WithDetailedStats enables or disables per-step counter/timing updates.
func WithDetailedStats(enabled bool) ConfigOption {
	return func(c *FlowGraphConfig) { c.detailedStats = enabled }
}

// WithLogger attaches a structured logger for lifecycle and starvation
// events. A nil logger (the default) disables logging entirely; logiface
// loggers are nil-safe, so callers may also pass a logger built with all
// levels disabled to the same effect.
func WithLogger(logger *logiface.Logger[*stumpy.Event]) ConfigOption {
	return func(c *FlowGraphConfig) { c.logger = logger }
}

// WithCrashCallback registers cb, invoked at most once with ctx when the
// first terminal Result is observed.
func WithCrashCallback(cb CrashCallback, ctx any) ConfigOption {
	return func(c *FlowGraphConfig) {
		c.crashCallback = cb
		c.crashCtx = ctx
	}
}

// Scheduler returns the configured dispatch strategy.
func (c FlowGraphConfig) Scheduler() SchedulerKind { return c.scheduler }

// NumWorkers returns the configured FixedThreadPool worker count.
func (c FlowGraphConfig) NumWorkers() int { return c.numWorkers }

// AdaptiveSleep reports whether idle backoff is enabled.
func (c FlowGraphConfig) AdaptiveSleep() bool { return c.adaptiveSleep }

// DetailedStats reports whether per-step counters are maintained.
func (c FlowGraphConfig) DetailedStats() bool { return c.detailedStats }
