package cler

import (
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// NewJSONLogger builds the default stumpy-backed JSON logger, suitable for
// WithLogger. level sets the minimum level that will actually be written;
// logiface loggers below their configured level are no-ops, so passing a
// restrictive level costs nothing per call.
func NewJSONLogger(level logiface.Level) *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(),
		logiface.WithLevel[*stumpy.Event](level),
	)
}

// starvationLimiter rate-limits the "runner starved" warning logged by the
// scheduler, one category per runner name, so a stuck block logs at a
// capped rate instead of once per failed step. Two windows: at most 1 line
// per runner per second, and at most 20 per runner per minute, matching the
// kind of multi-window configuration catrate.Limiter is built for.
type starvationLimiter struct {
	limiter *catrate.Limiter
}

func newStarvationLimiter() *starvationLimiter {
	return &starvationLimiter{
		limiter: catrate.NewLimiter(map[time.Duration]int{
			time.Second: 1,
			time.Minute: 20,
		}),
	}
}

// allow reports whether a starvation warning for runnerName may be logged
// right now.
func (s *starvationLimiter) allow(runnerName string) bool {
	if s == nil || s.limiter == nil {
		return false
	}
	_, ok := s.limiter.Allow(runnerName)
	return ok
}

func logRunnerStarved(logger *logiface.Logger[*stumpy.Event], runnerName string, kind ErrorKind, consecutiveFails int) {
	if logger == nil {
		return
	}
	logger.Warning().
		Str("runner", runnerName).
		Str("kind", kind.String()).
		Int("consecutive_fails", consecutiveFails).
		Log("runner starved")
}

func logRunnerCrashed(logger *logiface.Logger[*stumpy.Event], runnerName string, kind ErrorKind) {
	if logger == nil {
		return
	}
	logger.Err().
		Str("runner", runnerName).
		Str("kind", kind.String()).
		Log("runner returned terminal error, stopping flowgraph")
}

func logFlowGraphRunning(logger *logiface.Logger[*stumpy.Event], numRunners int, scheduler SchedulerKind) {
	if logger == nil {
		return
	}
	logger.Info().
		Int("runners", numRunners).
		Str("scheduler", scheduler.String()).
		Log("flowgraph running")
}

func logFlowGraphStopped(logger *logiface.Logger[*stumpy.Event]) {
	if logger == nil {
		return
	}
	logger.Info().Log("flowgraph stopped")
}
