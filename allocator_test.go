package cler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearAllocator_AllocAndReset(t *testing.T) {
	a := NewLinearAllocator(16)
	b1 := a.Alloc(10)
	require.NotNil(t, b1)
	assert.Equal(t, 10, a.Used())

	b2 := a.Alloc(10)
	assert.Nil(t, b2)

	a.Reset()
	assert.Equal(t, 0, a.Used())
	b3 := a.Alloc(16)
	assert.NotNil(t, b3)
}

func TestStackAllocator_MarkRelease(t *testing.T) {
	a := NewStackAllocator(32)
	a.Alloc(8)
	mark := a.Mark()
	a.Alloc(8)
	a.Alloc(8)
	assert.Equal(t, 24, a.Used())

	a.Release(mark)
	assert.Equal(t, 8, a.Used())
}

func TestStackAllocator_ReleaseOutOfRangePanics(t *testing.T) {
	a := NewStackAllocator(32)
	a.Alloc(8)
	assert.Panics(t, func() { a.Release(StackMarker(100)) })
}

func TestPoolAllocator_AllocFreeReuse(t *testing.T) {
	p := NewPoolAllocator(2, 64)
	b1, ok := p.Alloc()
	require.True(t, ok)
	b2, ok := p.Alloc()
	require.True(t, ok)

	_, ok = p.Alloc()
	assert.False(t, ok)

	p.Free(b1)
	b3, ok := p.Alloc()
	require.True(t, ok)
	assert.Equal(t, len(b1), len(b3))

	p.Free(b2)
	p.Free(b3)
}
