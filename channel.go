package cler

import "sync/atomic"

// Channel is a bounded, lock-free, single-producer/single-consumer FIFO of
// T. Exactly one block may call the producer methods (Push, TryPush,
// WriteN, PeekWrite/CommitWrite) and exactly one block (typically a
// different one) may call the consumer methods (Pop, TryPop, ReadN,
// PeekRead/CommitRead). Calling a producer method from two goroutines
// concurrently, or mixing producer and consumer roles, breaks the ring's
// invariants -- the channel itself performs no such checking.
//
// T should be a small, trivially-copyable value: a sample, a struct of
// samples, or a Blob handle (see blob.go) for variable-length payloads.
//
// The memory model mirrors the CLER C++ SPSC queue this is ported from:
// the producer writes elements into the backing array and then releases
// its write index (tail) with an atomic store; the consumer acquires tail
// before reading the elements it guards, and symmetrically releases its
// own read index (head). Go's sync/atomic operations provide the
// necessary acquire/release ordering, so no additional fences are needed.
type Channel[T any] struct {
	_        [sizeOfCacheLine]byte
	buf      []T
	capacity uint64

	// tail is the producer-owned write index: the number of elements ever
	// pushed. Only the producer mutates it; the consumer only loads it.
	tail atomic.Uint64
	_    [sizeOfCacheLine - sizeOfAtomicUint64]byte

	// head is the consumer-owned read index: the number of elements ever
	// popped. Only the consumer mutates it; the producer only loads it.
	head atomic.Uint64
	_    [sizeOfCacheLine - sizeOfAtomicUint64]byte
}

// NewChannel constructs a channel with the given capacity. A capacity of 0
// uses DefaultBufferSize. A power-of-two capacity is preferred (cheaper
// modulo on some platforms) but not required.
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Channel[T]{
		buf:      make([]T, capacity),
		capacity: uint64(capacity),
	}
}

// Cap returns the fixed capacity of the channel.
func (c *Channel[T]) Cap() int { return int(c.capacity) }

// Size returns a lower bound on the number of elements readable by the
// consumer. It never overcounts: a concurrent push may mean the true size
// is larger by the time the caller acts on the result, but never smaller.
func (c *Channel[T]) Size() int {
	tail := c.tail.Load()
	head := c.head.Load()
	return int(tail - head)
}

// Space returns a lower bound on the number of slots writable by the
// producer. Symmetric to Size: never overcounts.
func (c *Channel[T]) Space() int {
	return int(c.capacity) - c.Size()
}

// Push writes v into the ring and publishes it to the consumer. Caller
// (the producer) must have already confirmed Space() > 0; behavior is
// undefined otherwise.
func (c *Channel[T]) Push(v T) {
	tail := c.tail.Load()
	c.buf[tail%c.capacity] = v
	c.tail.Store(tail + 1)
}

// Pop reads the oldest unread element into *out and retires it. Caller
// (the consumer) must have already confirmed Size() > 0; behavior is
// undefined otherwise.
func (c *Channel[T]) Pop(out *T) {
	head := c.head.Load()
	*out = c.buf[head%c.capacity]
	c.head.Store(head + 1)
}

// TryPush pushes v if there is space, reporting whether it did.
func (c *Channel[T]) TryPush(v T) bool {
	if c.Space() == 0 {
		return false
	}
	c.Push(v)
	return true
}

// TryPop pops into *out if an element is available, reporting whether it
// did.
func (c *Channel[T]) TryPop(out *T) bool {
	if c.Size() == 0 {
		return false
	}
	c.Pop(out)
	return true
}

// WriteN copies min(n, Space()) elements from src into the ring in order,
// publishing them, and returns the count copied.
func (c *Channel[T]) WriteN(src []T, n int) int {
	if n > len(src) {
		n = len(src)
	}
	if space := c.Space(); n > space {
		n = space
	}
	if n <= 0 {
		return 0
	}
	tail := c.tail.Load()
	for i := 0; i < n; i++ {
		c.buf[(tail+uint64(i))%c.capacity] = src[i]
	}
	c.tail.Store(tail + uint64(n))
	return n
}

// ReadN copies min(n, Size()) elements from the ring into dst in order,
// retiring them, and returns the count copied.
func (c *Channel[T]) ReadN(dst []T, n int) int {
	if n > len(dst) {
		n = len(dst)
	}
	if size := c.Size(); n > size {
		n = size
	}
	if n <= 0 {
		return 0
	}
	head := c.head.Load()
	for i := 0; i < n; i++ {
		dst[i] = c.buf[(head+uint64(i))%c.capacity]
	}
	c.head.Store(head + uint64(n))
	return n
}

// PeekWrite returns up to two contiguous writable spans into the ring's
// backing array (the second is non-empty only when the writable region
// wraps past the end of the array). Their combined length is at most
// Space(). Neither span is visible to the consumer until CommitWrite.
func (c *Channel[T]) PeekWrite() (s1, s2 []T) {
	space := c.Space()
	if space == 0 {
		return nil, nil
	}
	start := c.tail.Load() % c.capacity
	end := start + uint64(space)
	if end <= c.capacity {
		return c.buf[start:end], nil
	}
	return c.buf[start:c.capacity], c.buf[0 : end-c.capacity]
}

// CommitWrite publishes the first n elements written into the spans
// returned by the most recent PeekWrite, making them visible to the
// consumer. n must not exceed that PeekWrite's combined span length.
func (c *Channel[T]) CommitWrite(n int) {
	c.tail.Store(c.tail.Load() + uint64(n))
}

// PeekRead returns up to two contiguous readable spans into the ring's
// backing array. Their combined length is at most Size(). The returned
// slices are valid until the next CommitRead.
func (c *Channel[T]) PeekRead() (s1, s2 []T) {
	size := c.Size()
	if size == 0 {
		return nil, nil
	}
	start := c.head.Load() % c.capacity
	end := start + uint64(size)
	if end <= c.capacity {
		return c.buf[start:end], nil
	}
	return c.buf[start:c.capacity], c.buf[0 : end-c.capacity]
}

// CommitRead drops the first n elements of the spans returned by the most
// recent PeekRead. n must not exceed that PeekRead's combined span length.
func (c *Channel[T]) CommitRead(n int) {
	c.head.Store(c.head.Load() + uint64(n))
}
