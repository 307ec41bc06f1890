package cler

import (
	"sync/atomic"
	"time"
)

// BlockExecutionStats holds the per-runner counters the scheduler
// maintains. Every field is mutated only by the single worker currently
// driving that runner's steps (thread-per-block: always the same worker;
// fixed-thread-pool: whichever worker is currently round-robining to it,
// never more than one at a time). External readers only load values, so no
// locking is needed, but a reader may observe a slightly stale snapshot.
type BlockExecutionStats struct {
	_ [sizeOfCacheLine]byte

	successfulSteps atomic.Uint64
	failedSteps     atomic.Uint64
	totalIdleNanos  atomic.Int64
	currentSleepNs  atomic.Int64
	runtimeNanos    atomic.Int64

	_ [sizeOfCacheLine]byte
}

// Snapshot is a point-in-time, non-atomic copy of a BlockExecutionStats,
// safe to pass around and print.
type Snapshot struct {
	SuccessfulSteps uint64
	FailedSteps     uint64
	TotalIdle       time.Duration
	CurrentSleep    time.Duration
	Runtime         time.Duration
}

// Snapshot reads every counter. Individual loads are each atomic, but the
// set as a whole is not a consistent point-in-time view under concurrent
// updates -- acceptable per the "readers accept slightly stale values"
// contract.
func (s *BlockExecutionStats) Snapshot() Snapshot {
	return Snapshot{
		SuccessfulSteps: s.successfulSteps.Load(),
		FailedSteps:     s.failedSteps.Load(),
		TotalIdle:       time.Duration(s.totalIdleNanos.Load()),
		CurrentSleep:    time.Duration(s.currentSleepNs.Load()),
		Runtime:         time.Duration(s.runtimeNanos.Load()),
	}
}

func (s *BlockExecutionStats) recordSuccess() {
	s.successfulSteps.Add(1)
}

func (s *BlockExecutionStats) recordFailure(idle time.Duration) {
	s.failedSteps.Add(1)
	s.totalIdleNanos.Add(int64(idle))
}

func (s *BlockExecutionStats) setCurrentSleep(d time.Duration) {
	s.currentSleepNs.Store(int64(d))
}

func (s *BlockExecutionStats) addRuntime(d time.Duration) {
	s.runtimeNanos.Add(int64(d))
}
