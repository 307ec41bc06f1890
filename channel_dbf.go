package cler

import "unsafe"

// DoublyMappedMinSize is the smallest byte size this package will attempt to
// double-map. Below it the fixed cost of two mmap/MapViewOfFileEx calls
// dwarfs the copy a plain Channel would have done anyway.
const DoublyMappedMinSize = 4096

// ChannelDBF is a Channel variant backed, where the platform allows it, by a
// virtual-memory double mapping: the same physical pages are mapped twice in
// a row, so any window of up to Cap() elements starting anywhere in the ring
// appears contiguous in memory even when it logically wraps. That lets
// ReadDBF/WriteDBF hand back a single slice instead of the split (s1, s2)
// pair PeekRead/PeekWrite return, at the cost of requiring capacity*sizeof(T)
// to be a whole number of virtual-memory pages.
//
// Where the platform has no such primitive (or the mapping setup fails),
// ChannelDBF transparently falls back to copying wrap-spanning windows into
// a scratch buffer: the API stays contiguous, but the zero-copy property
// does not hold for those windows.
type ChannelDBF[T any] struct {
	Channel[T]

	mirrored bool
	raw      []byte // length 2*byteSize when mirrored, nil otherwise
	closeFn  func() error
	scratch  []T // length capacity, used only when !mirrored
}

// NewChannelDBF constructs a doubly-mapped channel of the given capacity.
// A real double mapping is attempted only when capacity*sizeof(T) is at
// least DoublyMappedMinSize; below that, on platforms without a
// double-mapping primitive, or if the platform call fails (e.g. a size that
// is not a page multiple, or exhausted mmap regions), it silently builds the
// copy-on-wrap fallback instead of returning an error, since the two are
// behaviorally equivalent to callers.
func NewChannelDBF[T any](capacity int) *ChannelDBF[T] {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	byteSize := capacity * elemSize

	c := &ChannelDBF[T]{}
	if elemSize > 0 && byteSize >= DoublyMappedMinSize {
		if raw, closeFn, err := mmapDouble(byteSize); err == nil {
			mirror := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), 2*capacity)
			c.Channel = Channel[T]{buf: mirror[:capacity], capacity: uint64(capacity)}
			c.mirrored = true
			c.raw = raw
			c.closeFn = closeFn
			return c
		}
	}

	c.Channel = Channel[T]{buf: make([]T, capacity), capacity: uint64(capacity)}
	c.scratch = make([]T, capacity)
	return c
}

// IsMirrored reports whether this channel got a real virtual-memory double
// mapping, as opposed to the copy-on-wrap fallback. Exposed mainly for
// tests; block code should not need to branch on it.
func (c *ChannelDBF[T]) IsMirrored() bool { return c.mirrored }

// Close releases the double mapping, if one was made. It is a no-op for the
// fallback path. Callers should invoke this when tearing down a flowgraph
// built with doubly-mapped channels, typically deferred right after
// construction.
func (c *ChannelDBF[T]) Close() error {
	if c.closeFn == nil {
		return nil
	}
	fn := c.closeFn
	c.closeFn = nil
	return fn()
}

// ReadDBF returns a single contiguous slice of up to n available elements
// (fewer if Size() < n) and retires them from the ring. On a mirrored
// channel the slice always aliases the ring's backing memory directly; on
// the fallback path it is copied into scratch space whenever the window
// would otherwise wrap.
//
// Unlike the peek/commit pair on Channel, ReadDBF folds the retire into the
// same call: the returned slice is only valid until the next call that
// advances head (ReadDBF, Pop, TryPop, ReadN), since on the mirrored path it
// aliases ring memory the producer may already be writing into again.
func (c *ChannelDBF[T]) ReadDBF(n int) []T {
	size := c.Size()
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}
	head := c.head.Load()
	start := head % c.capacity

	if c.mirrored {
		out := c.buf[start : start+uint64(n)]
		c.head.Store(head + uint64(n))
		return out
	}

	if start+uint64(n) <= c.capacity {
		out := c.buf[start : start+uint64(n)]
		c.head.Store(head + uint64(n))
		return out
	}
	first := c.capacity - start
	copy(c.scratch[:first], c.buf[start:c.capacity])
	copy(c.scratch[first:n], c.buf[0:uint64(n)-first])
	c.head.Store(head + uint64(n))
	return c.scratch[:n]
}

// WriteDBF returns a single contiguous writable slice of up to n elements
// (fewer if Space() < n). The caller fills in up to len(result) elements and
// must call CommitWriteDBF with however many it actually wrote. On the
// fallback path the returned slice may be scratch space; CommitWriteDBF
// copies it into the ring (Channel.CommitWrite does not).
func (c *ChannelDBF[T]) WriteDBF(n int) []T {
	space := c.Space()
	if n > space {
		n = space
	}
	if n <= 0 {
		return nil
	}
	tail := c.tail.Load()
	start := tail % c.capacity

	if c.mirrored {
		return c.buf[start : start+uint64(n)]
	}
	if start+uint64(n) <= c.capacity {
		return c.buf[start : start+uint64(n)]
	}
	return c.scratch[:n]
}

// CommitWriteDBF publishes the first n elements of the most recent
// WriteDBF's returned slice. On the fallback path, if that slice was
// scratch space (a wrap-spanning window), this copies it into the ring
// before publishing.
func (c *ChannelDBF[T]) CommitWriteDBF(n int) {
	if n <= 0 {
		return
	}
	tail := c.tail.Load()
	start := tail % c.capacity

	if !c.mirrored && start+uint64(n) > c.capacity {
		first := c.capacity - start
		copy(c.buf[start:c.capacity], c.scratch[:first])
		copy(c.buf[0:uint64(n)-first], c.scratch[first:n])
	}
	c.tail.Store(tail + uint64(n))
}
