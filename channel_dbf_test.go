package cler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelDBF_ReadDBFMatchesPops(t *testing.T) {
	c := NewChannelDBF[int](2048)
	defer c.Close()

	for i := 0; i < 1500; i++ {
		require.True(t, c.TryPush(i))
	}
	for i := 0; i < 1000; i++ {
		var v int
		require.True(t, c.TryPop(&v))
	}
	for i := 1500; i < 2000; i++ {
		require.True(t, c.TryPush(i))
	}

	span := c.ReadDBF(c.Size())
	require.Len(t, span, 500+500)
	for i, v := range span {
		if i < 500 {
			assert.Equal(t, 1000+i, v)
		} else {
			assert.Equal(t, 1500+(i-500), v)
		}
	}
	assert.Equal(t, 0, c.Size())
}

func TestChannelDBF_WriteDBFCommitThenPopsMatch(t *testing.T) {
	c := NewChannelDBF[int](2048)
	defer c.Close()

	for i := 0; i < 1800; i++ {
		require.True(t, c.TryPush(i))
	}
	for i := 0; i < 1800; i++ {
		var v int
		require.True(t, c.TryPop(&v))
	}

	n := 700
	span := c.WriteDBF(n)
	require.Len(t, span, n)
	for i := range span {
		span[i] = 5000 + i
	}
	c.CommitWriteDBF(n)

	require.Equal(t, n, c.Size())
	for i := 0; i < n; i++ {
		var v int
		require.True(t, c.TryPop(&v))
		assert.Equal(t, 5000+i, v)
	}
}

func TestChannelDBF_FallsBackBelowMinSize(t *testing.T) {
	c := NewChannelDBF[int](4)
	defer c.Close()
	assert.False(t, c.IsMirrored())

	require.True(t, c.TryPush(1))
	require.True(t, c.TryPush(2))
	var v int
	require.True(t, c.TryPop(&v))
	assert.Equal(t, 1, v)
}
