package cler

// Blob is a borrowed, variable-length byte region lent out by a Slab. Its
// lifetime is the interval between Slab.TakeSlot and Blob.Release; it must
// be released exactly once. Channels can only carry fixed-size values, so
// a Blob is what flows through a channel when a block needs to pass a
// variable-length payload (a datagram, a framed packet) without copying
// the bytes themselves: the channel carries this small handle, the bytes
// stay in the slab.
//
// Sending a Blob across a channel transfers the release obligation to the
// receiver -- the sender must not touch or release it after the push.
// Blob itself cannot enforce that (channels are generic over T and know
// nothing about release obligations), so this is a contract on block
// authors, not a runtime check.
type Blob struct {
	data    []byte
	slotIdx int
	slab    *Slab
	live    bool
}

// Data returns the blob's backing bytes. Valid only while the blob is live
// (between TakeSlot and Release).
func (b *Blob) Data() []byte { return b.data }

// Len returns the fixed slot size, not a logical payload length -- callers
// that write fewer bytes than Len must track their own length separately.
func (b *Blob) Len() int { return len(b.data) }

// SlotIndex returns the slab slot this blob is bound to.
func (b *Blob) SlotIndex() int { return b.slotIdx }

// Release returns the slot to the owning slab's free queue. Calling
// Release twice on the same blob is a programmer error and panics, the
// same as the source's double-release assertion.
func (b *Blob) Release() {
	if !b.live {
		panic("cler: Blob released twice")
	}
	b.live = false
	b.slab.releaseSlot(b.slotIdx)
}
