package cler

import "time"

// runnerState is the adaptive-sleep and stats bookkeeping the scheduler
// keeps per runner, regardless of which scheduler variant (ThreadPerBlock
// or FixedThreadPool) is driving it.
type runnerState struct {
	runner Runner
	stats  BlockExecutionStats

	currentSleep     time.Duration
	consecutiveFails int
}

func newRunnerState(r Runner) *runnerState {
	return &runnerState{runner: r}
}

// isBackpressureKind reports whether kind is one of the two "waiting on the
// rest of the graph" outcomes that participate in adaptive-sleep ramp-up,
// as opposed to ProcedureError/BadData, which always just yield.
func isBackpressureKind(kind ErrorKind) bool {
	return kind == NotEnoughSamples || kind == NotEnoughSpace
}

// stepOnce runs one scheduler tick for rs: invokes the runner's step,
// updates stats and the adaptive-sleep target per §4.7.2, and reports
// whether the scheduler should now sleep (vs. yield) and whether a
// terminal Result was observed (in which case kind is that Result's
// ErrorKind).
//
// This is shared by both scheduler variants: ThreadPerBlock calls it once
// per worker per loop iteration on its single runner; FixedThreadPool calls
// it once per worker per loop iteration on whichever runner is currently up
// in that worker's round-robin.
func (rs *runnerState) stepOnce(cfg *FlowGraphConfig, limiter *starvationLimiter) (ok, shouldSleep, terminal bool, kind ErrorKind) {
	before := time.Now()
	result := rs.runner.Step()

	if result.IsOk() {
		rs.consecutiveFails = 0
		if cfg.detailedStats {
			rs.stats.recordSuccess()
		}
		if cfg.adaptiveSleep {
			rs.currentSleep = time.Duration(float64(rs.currentSleep) * 0.5)
			rs.stats.setCurrentSleep(rs.currentSleep)
		}
		return true, false, false, Ok
	}

	if result.IsTerminal() {
		logRunnerCrashed(cfg.logger, rs.runner.Name(), result.Kind())
		return false, false, true, result.Kind()
	}

	if !isBackpressureKind(result.Kind()) {
		if cfg.detailedStats {
			rs.stats.recordFailure(time.Since(before))
		}
		return false, false, false, Ok
	}

	rs.consecutiveFails++
	if cfg.detailedStats {
		rs.stats.recordFailure(time.Since(before))
	}

	if cfg.adaptiveSleep && rs.consecutiveFails > cfg.failThreshold {
		next := time.Duration(float64(rs.currentSleep)*cfg.sleepMultiplier) + time.Microsecond
		if next > cfg.sleepMax {
			next = cfg.sleepMax
		}
		rs.currentSleep = next
		rs.stats.setCurrentSleep(rs.currentSleep)
		if limiter != nil && limiter.allow(rs.runner.Name()) {
			logRunnerStarved(cfg.logger, rs.runner.Name(), result.Kind(), rs.consecutiveFails)
		}
		return false, true, false, Ok
	}

	return false, false, false, Ok
}

// idle applies the idle policy decided by the most recent stepOnce's
// shouldSleep return: adaptive sleep at the current target, or a bare
// yield.
func (rs *runnerState) idle(policy TaskPolicy, shouldSleep bool) {
	if shouldSleep {
		policy.SleepUS(rs.currentSleep.Microseconds())
		return
	}
	policy.Yield()
}
