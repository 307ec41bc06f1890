package cler

// Slab is a fixed-capacity pool of equal-sized byte regions, lent out as
// Blob handles with an explicit release obligation. The free-index queue
// reuses Channel[int], the same SPSC primitive channels between blocks are
// built on -- take_slot/release_slot are themselves a one-producer,
// one-consumer-per-direction protocol as long as callers respect it (see
// the Non-goals on multi-producer/multi-consumer channels).
type Slab struct {
	storage     []byte
	maxBlobSize int
	numSlots    int
	freeSlots   *Channel[int]
}

// NewSlab allocates one backing buffer of numSlots*maxBlobSize bytes and a
// free-index queue initialized to contain every slot index.
func NewSlab(numSlots, maxBlobSize int) *Slab {
	if numSlots <= 0 {
		panic("cler: NewSlab requires numSlots > 0")
	}
	if maxBlobSize <= 0 {
		panic("cler: NewSlab requires maxBlobSize > 0")
	}
	s := &Slab{
		storage:     make([]byte, numSlots*maxBlobSize),
		maxBlobSize: maxBlobSize,
		numSlots:    numSlots,
		freeSlots:   NewChannel[int](numSlots),
	}
	for i := 0; i < numSlots; i++ {
		s.freeSlots.Push(i)
	}
	return s
}

// NumSlots returns the slab's fixed slot count.
func (s *Slab) NumSlots() int { return s.numSlots }

// MaxBlobSize returns the fixed size of each slot in bytes.
func (s *Slab) MaxBlobSize() int { return s.maxBlobSize }

// TakeSlot pops a free slot and returns a Blob bound to it. Returns a
// transient NotEnoughSpace Result when no slot is currently free.
func (s *Slab) TakeSlot() (Blob, Result) {
	var idx int
	if !s.freeSlots.TryPop(&idx) {
		return Blob{}, ResultErr(NotEnoughSpace)
	}
	start := idx * s.maxBlobSize
	return Blob{
		data:    s.storage[start : start+s.maxBlobSize],
		slotIdx: idx,
		slab:    s,
		live:    true,
	}, ResultOk()
}

// releaseSlot pushes idx back onto the free queue. Called by Blob.Release;
// not exported since a slot must only ever be freed through its Blob.
func (s *Slab) releaseSlot(idx int) {
	if !s.freeSlots.TryPush(idx) {
		panic("cler: slab free-slot queue overflowed, double release?")
	}
}
