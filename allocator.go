package cler

import "fmt"

// LinearAllocator is a bump allocator over a fixed backing buffer: Alloc
// advances an offset and never frees individual allocations, only the
// whole arena at once via Reset. Blocks that need per-step scratch space
// they don't want touching the GC heap can carry one of these instead of
// allocating a fresh slice every step.
type LinearAllocator struct {
	buf    []byte
	offset int
}

// NewLinearAllocator allocates a size-byte arena.
func NewLinearAllocator(size int) *LinearAllocator {
	if size <= 0 {
		panic("cler: NewLinearAllocator requires size > 0")
	}
	return &LinearAllocator{buf: make([]byte, size)}
}

// Alloc returns an n-byte slice carved from the arena, or nil if the arena
// is exhausted.
func (a *LinearAllocator) Alloc(n int) []byte {
	if n <= 0 || a.offset+n > len(a.buf) {
		return nil
	}
	out := a.buf[a.offset : a.offset+n]
	a.offset += n
	return out
}

// Reset rewinds the arena, invalidating every slice previously handed out
// by Alloc. Callers must not retain those slices across a Reset.
func (a *LinearAllocator) Reset() { a.offset = 0 }

// Used returns the number of bytes currently allocated out of the arena.
func (a *LinearAllocator) Used() int { return a.offset }

// Capacity returns the arena's total size.
func (a *LinearAllocator) Capacity() int { return len(a.buf) }

// StackMarker is a checkpoint returned by StackAllocator.Mark, rewound to
// by StackAllocator.Release.
type StackMarker int

// StackAllocator is a LIFO bump allocator: like LinearAllocator, but Mark/
// Release let a block free a nested range of allocations in one call
// instead of only ever resetting the whole arena.
type StackAllocator struct {
	LinearAllocator
}

// NewStackAllocator allocates a size-byte arena.
func NewStackAllocator(size int) *StackAllocator {
	return &StackAllocator{LinearAllocator: *NewLinearAllocator(size)}
}

// Mark returns a checkpoint at the current offset.
func (a *StackAllocator) Mark() StackMarker { return StackMarker(a.offset) }

// Release rewinds the arena to marker, invalidating every slice allocated
// since. It panics if marker is negative or lies past the current offset
// (for example a marker taken after an earlier Release rewound below it).
// Markers carry no generation: a stale marker that still lies within
// [0, offset] is accepted and rewinds to it.
func (a *StackAllocator) Release(marker StackMarker) {
	if int(marker) > a.offset || int(marker) < 0 {
		panic(fmt.Sprintf("cler: StackAllocator.Release: marker %d out of range [0, %d]", marker, a.offset))
	}
	a.offset = int(marker)
}

// PoolAllocator is a fixed-block-size freelist: every allocation is
// exactly blockSize bytes, carved from a numBlocks*blockSize backing
// buffer, and Free pushes the block back onto a freelist for reuse. Slab
// (slab.go) is the same pattern specialized to Blob handles; PoolAllocator
// is the general raw-byte-block version for blocks that need fixed-size
// scratch allocations with an explicit free, rather than a whole-arena
// reset.
type PoolAllocator struct {
	storage   []byte
	blockSize int
	free      *Channel[int]
}

// NewPoolAllocator allocates numBlocks blocks of blockSize bytes each.
func NewPoolAllocator(numBlocks, blockSize int) *PoolAllocator {
	if numBlocks <= 0 || blockSize <= 0 {
		panic("cler: NewPoolAllocator requires numBlocks > 0 and blockSize > 0")
	}
	p := &PoolAllocator{
		storage:   make([]byte, numBlocks*blockSize),
		blockSize: blockSize,
		free:      NewChannel[int](numBlocks),
	}
	for i := 0; i < numBlocks; i++ {
		p.free.Push(i)
	}
	return p
}

// Alloc pops a free block, returning (block, true), or (nil, false) if the
// pool is exhausted.
func (p *PoolAllocator) Alloc() ([]byte, bool) {
	var idx int
	if !p.free.TryPop(&idx) {
		return nil, false
	}
	start := idx * p.blockSize
	return p.storage[start : start+p.blockSize], true
}

// Free returns block to the pool. block must be a slice previously
// returned by Alloc on this same PoolAllocator, with its original bounds
// intact (not re-sliced).
func (p *PoolAllocator) Free(block []byte) {
	off := cap(p.storage) - cap(block)
	idx := off / p.blockSize
	if !p.free.TryPush(idx) {
		panic("cler: PoolAllocator free-list overflowed, double free?")
	}
}
