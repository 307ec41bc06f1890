package cler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlockExecutionStats_Snapshot(t *testing.T) {
	var s BlockExecutionStats
	s.recordSuccess()
	s.recordSuccess()
	s.recordFailure(5 * time.Millisecond)
	s.setCurrentSleep(200 * time.Microsecond)
	s.addRuntime(10 * time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.SuccessfulSteps)
	assert.Equal(t, uint64(1), snap.FailedSteps)
	assert.Equal(t, 5*time.Millisecond, snap.TotalIdle)
	assert.Equal(t, 200*time.Microsecond, snap.CurrentSleep)
	assert.Equal(t, 10*time.Millisecond, snap.Runtime)
}
