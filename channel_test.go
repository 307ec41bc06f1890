package cler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_PushPopFIFO(t *testing.T) {
	c := NewChannel[int](8)
	for i := 0; i < 5; i++ {
		require.True(t, c.TryPush(i))
	}
	require.Equal(t, 5, c.Size())
	require.Equal(t, 3, c.Space())

	for i := 0; i < 5; i++ {
		var v int
		require.True(t, c.TryPop(&v))
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, c.Size())
}

func TestChannel_TryPushFullTryPopEmpty(t *testing.T) {
	c := NewChannel[int](2)
	require.True(t, c.TryPush(1))
	require.True(t, c.TryPush(2))
	assert.False(t, c.TryPush(3))

	var v int
	require.True(t, c.TryPop(&v))
	require.True(t, c.TryPop(&v))
	assert.False(t, c.TryPop(&v))
}

func TestChannel_SizeSpaceInvariant(t *testing.T) {
	c := NewChannel[int](16)
	for i := 0; i < 100; i++ {
		if i%3 != 0 {
			c.TryPush(i)
		} else {
			var v int
			c.TryPop(&v)
		}
		assert.Equal(t, c.Cap(), c.Size()+c.Space())
	}
}

func TestChannel_WriteNReadN(t *testing.T) {
	c := NewChannel[int](8)
	src := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	n := c.WriteN(src, len(src))
	assert.Equal(t, 8, n)
	assert.Equal(t, 8, c.Size())

	dst := make([]int, 10)
	n = c.ReadN(dst, 10)
	assert.Equal(t, 8, n)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, dst[:8])
}

func TestChannel_PeekWriteCommitWriteEquivalentToPushes(t *testing.T) {
	capacity := 8
	a := NewChannel[int](capacity)
	b := NewChannel[int](capacity)

	// wrap the ring first so the peeked region actually splits.
	for i := 0; i < 6; i++ {
		a.Push(i)
		b.Push(i)
	}
	for i := 0; i < 6; i++ {
		var v int
		a.Pop(&v)
		b.Pop(&v)
	}

	values := []int{100, 101, 102, 103, 104}
	for _, v := range values {
		b.Push(v)
	}

	s1, s2 := a.PeekWrite()
	total := len(s1) + len(s2)
	require.GreaterOrEqual(t, total, len(values))
	copy(s1, values)
	if len(s1) < len(values) {
		copy(s2, values[len(s1):])
	}
	a.CommitWrite(len(values))

	for _, want := range values {
		var got, wantGot int
		require.True(t, a.TryPop(&got))
		require.True(t, b.TryPop(&wantGot))
		assert.Equal(t, want, got)
		assert.Equal(t, wantGot, got)
	}
}

func TestChannel_PeekReadCommitRead(t *testing.T) {
	c := NewChannel[int](8)
	for i := 0; i < 6; i++ {
		c.Push(i)
	}
	for i := 0; i < 6; i++ {
		var v int
		c.Pop(&v)
	}
	for i := 10; i < 14; i++ {
		c.Push(i)
	}

	s1, s2 := c.PeekRead()
	got := append(append([]int{}, s1...), s2...)
	assert.Equal(t, []int{10, 11, 12, 13}, got)

	c.CommitRead(2)
	assert.Equal(t, 2, c.Size())
	var v int
	require.True(t, c.TryPop(&v))
	assert.Equal(t, 12, v)
}

func TestChannel_DefaultCapacity(t *testing.T) {
	c := NewChannel[float32](0)
	assert.Equal(t, DefaultBufferSize, c.Cap())
}
