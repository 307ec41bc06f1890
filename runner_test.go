package cler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sinkBlock has no outputs; it just drains one input channel.
type sinkBlock struct {
	BlockBase
	in       *Channel[int]
	received []int
}

func newSinkBlock(in *Channel[int]) *sinkBlock {
	return &sinkBlock{BlockBase: NewBlockBase("sink"), in: in}
}

func (b *sinkBlock) Procedure() Result {
	var v int
	if !b.in.TryPop(&v) {
		return ResultErr(NotEnoughSamples)
	}
	b.received = append(b.received, v)
	return ResultOk()
}

// counterSource produces 0, 1, 2, ... on its single output until space runs
// out, returning NotEnoughSpace.
type counterSource struct {
	BlockBase
	next int
}

func newCounterSource() *counterSource {
	return &counterSource{BlockBase: NewBlockBase("counter")}
}

func (b *counterSource) Procedure(out1 *Channel[int]) Result {
	if !out1.TryPush(b.next) {
		return ResultErr(NotEnoughSpace)
	}
	b.next++
	return ResultOk()
}

// fanoutSource duplicates the same counter onto two outputs.
type fanoutSource struct {
	BlockBase
	next int
}

func (b *fanoutSource) Procedure(out1, out2 *Channel[int]) Result {
	if out1.Space() == 0 || out2.Space() == 0 {
		return ResultErr(NotEnoughSpace)
	}
	out1.Push(b.next)
	out2.Push(b.next)
	b.next++
	return ResultOk()
}

// triOutSource writes a distinct constant onto each of three outputs.
type triOutSource struct {
	BlockBase
}

func (b *triOutSource) Procedure(out1, out2, out3 *Channel[int]) Result {
	if out1.Space() == 0 || out2.Space() == 0 || out3.Space() == 0 {
		return ResultErr(NotEnoughSpace)
	}
	out1.Push(1)
	out2.Push(2)
	out3.Push(3)
	return ResultOk()
}

func TestRunner0_Step(t *testing.T) {
	in := NewChannel[int](4)
	in.Push(42)
	block := newSinkBlock(in)
	r := NewRunner0[*sinkBlock](block)

	assert.Equal(t, "sink", r.Name())
	require.True(t, r.Step().IsOk())
	assert.Equal(t, []int{42}, block.received)

	assert.True(t, r.Step().Kind() == NotEnoughSamples)
}

func TestRunner1_Step(t *testing.T) {
	out := NewChannel[int](4)
	block := newCounterSource()
	r := NewRunner1[*counterSource](block, out)

	for i := 0; i < 4; i++ {
		require.True(t, r.Step().IsOk())
	}
	assert.Equal(t, NotEnoughSpace, r.Step().Kind())

	var v int
	for i := 0; i < 4; i++ {
		require.True(t, out.TryPop(&v))
		assert.Equal(t, i, v)
	}
}

func TestRunner2_Step(t *testing.T) {
	out1 := NewChannel[int](4)
	out2 := NewChannel[int](4)
	block := &fanoutSource{}
	r := NewRunner2[*fanoutSource](block, out1, out2)

	require.True(t, r.Step().IsOk())
	require.True(t, r.Step().IsOk())

	var a, b int
	require.True(t, out1.TryPop(&a))
	require.True(t, out2.TryPop(&b))
	assert.Equal(t, 0, a)
	assert.Equal(t, 0, b)
}

func TestRunner3_Step(t *testing.T) {
	out1 := NewChannel[int](4)
	out2 := NewChannel[int](4)
	out3 := NewChannel[int](4)
	block := &triOutSource{}
	r := NewRunner3[*triOutSource](block, out1, out2, out3)

	require.True(t, r.Step().IsOk())

	var a, b, c int
	require.True(t, out1.TryPop(&a))
	require.True(t, out2.TryPop(&b))
	require.True(t, out3.TryPop(&c))
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 3, c)
}
