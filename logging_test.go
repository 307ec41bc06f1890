package cler

import (
	"bytes"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleLogging_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf)),
		logiface.WithLevel[*stumpy.Event](logiface.LevelInformational),
	)
	require.NotNil(t, logger)

	logFlowGraphRunning(logger, 3, ThreadPerBlock)
	logFlowGraphStopped(logger)

	out := buf.String()
	assert.Contains(t, out, "flowgraph running")
	assert.Contains(t, out, "flowgraph stopped")
	assert.Contains(t, out, "ThreadPerBlock")
}

func TestStarvationLimiter_RateLimitsPerCategory(t *testing.T) {
	lim := newStarvationLimiter()
	assert.True(t, lim.allow("runner-a"))
	assert.False(t, lim.allow("runner-a"))
	assert.True(t, lim.allow("runner-b"))
}

func TestStarvationLimiter_NilIsSafe(t *testing.T) {
	var lim *starvationLimiter
	assert.False(t, lim.allow("anything"))
}
