package cler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlowGraphConfig_Defaults(t *testing.T) {
	cfg := NewFlowGraphConfig()
	assert.Equal(t, ThreadPerBlock, cfg.Scheduler())
	assert.Equal(t, 1, cfg.NumWorkers())
	assert.False(t, cfg.AdaptiveSleep())
	assert.True(t, cfg.DetailedStats())
}

func TestFlowGraphConfig_Options(t *testing.T) {
	cfg := NewFlowGraphConfig(
		WithScheduler(FixedThreadPool),
		WithNumWorkers(4),
		WithAdaptiveSleep(true),
		WithAdaptiveSleepMultiplier(3),
		WithAdaptiveSleepMax(10*time.Millisecond),
		WithAdaptiveSleepFailThreshold(8),
		WithDetailedStats(false),
	)
	assert.Equal(t, FixedThreadPool, cfg.Scheduler())
	assert.Equal(t, 4, cfg.NumWorkers())
	assert.True(t, cfg.AdaptiveSleep())
	assert.False(t, cfg.DetailedStats())
	assert.Equal(t, 3.0, cfg.sleepMultiplier)
	assert.Equal(t, 10*time.Millisecond, cfg.sleepMax)
	assert.Equal(t, 8, cfg.failThreshold)
}

func TestFlowGraphConfig_NumWorkersClampedToOne(t *testing.T) {
	cfg := NewFlowGraphConfig(WithNumWorkers(0))
	assert.Equal(t, 1, cfg.NumWorkers())
	cfg = NewFlowGraphConfig(WithNumWorkers(-3))
	assert.Equal(t, 1, cfg.NumWorkers())
}

func TestSchedulerKind_String(t *testing.T) {
	assert.Equal(t, "ThreadPerBlock", ThreadPerBlock.String())
	assert.Equal(t, "FixedThreadPool", FixedThreadPool.String())
}
