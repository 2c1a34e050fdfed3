package arena

import "encoding/binary"

// MissingLength is the sentinel length reported for an absent key. It is
// the all-ones 32-bit value, distinct from a present zero-length value.
const MissingLength uint32 = ^uint32(0)

// Arena is a caller-held scratch region that batch operations grow and
// reuse to return variable-length results without a per-call allocation.
// It is not safe for concurrent use — an arena is single-owner at any
// instant, per the concurrency model.
type Arena struct {
	buf []byte
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

// Reset logically empties the arena. Any slice previously returned by a
// call against this arena is invalidated the moment Reset is called again
// by a later operation — callers must not retain those slices across calls.
func (a *Arena) Reset() {
	a.buf = a.buf[:0]
}

// Cap reports the arena's current backing capacity, useful for tests that
// assert the high-water mark doesn't grow unboundedly across reuse.
func (a *Arena) Cap() int {
	return cap(a.buf)
}

// alloc appends n zeroed bytes to the arena and returns the slice backing
// them. The returned slice aliases the arena's buffer and is only valid
// until the next Reset.
func (a *Arena) alloc(n int) []byte {
	start := len(a.buf)
	a.buf = append(a.buf, make([]byte, n)...)
	return a.buf[start : start+n]
}

// PutBytes copies b into the arena and returns the arena-owned copy.
func (a *Arena) PutBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	dst := a.alloc(len(b))
	copy(dst, b)
	return dst
}

// ValueTape holds the result of packing a batch of values into the arena
// per the header-then-bytes layout of the value tape (spec 4.2).
type ValueTape struct {
	// Lengths is fixed-width per task; MissingLength marks an absent key.
	Lengths []uint32
	// Values is the concatenation of all present values' bytes, in task
	// order. Offsets are reconstructed by summing Lengths of prior
	// present tasks — no offset table is stored, matching the tape's
	// compactness.
	Values []byte
}

// Slice returns the byte range for task i within Values, or (nil, false)
// if task i is missing.
func (t ValueTape) Slice(i int) ([]byte, bool) {
	if t.Lengths[i] == MissingLength {
		return nil, false
	}
	off := 0
	for j := 0; j < i; j++ {
		if t.Lengths[j] != MissingLength {
			off += int(t.Lengths[j])
		}
	}
	return t.Values[off : off+int(t.Lengths[i])], true
}

// WriteValueTape packs values into the arena as a value tape. A nil entry
// in values marks that task as missing. The returned ValueTape's slices
// alias the arena and are valid until the next Reset on this arena.
func (a *Arena) WriteValueTape(values [][]byte) ValueTape {
	n := len(values)
	lengths := make([]uint32, n)
	total := 0
	for i, v := range values {
		if v == nil {
			lengths[i] = MissingLength
			continue
		}
		lengths[i] = uint32(len(v))
		total += len(v)
	}

	body := a.alloc(total)
	pos := 0
	for i, v := range values {
		if lengths[i] == MissingLength {
			continue
		}
		copy(body[pos:pos+len(v)], v)
		pos += len(v)
	}

	return ValueTape{Lengths: lengths, Values: body}
}

// WriteLengthTape packs only the length header of a value tape, with no
// value bytes, for reads that only asked for lengths (spec 4.5). lengths[i]
// must already be MissingLength for absent tasks.
func (a *Arena) WriteLengthTape(lengths []uint32) ValueTape {
	return ValueTape{Lengths: lengths}
}

// KeyTape packs a slice of ascending keys returned by a scan into the
// arena as a contiguous array of big-endian int64s, mirroring the way the
// value tape avoids per-task allocation.
func (a *Arena) KeyTape(keys []int64) []byte {
	out := a.alloc(len(keys) * 8)
	for i, k := range keys {
		binary.BigEndian.PutUint64(out[i*8:i*8+8], uint64(k))
	}
	return out
}

// NameTape packs collection names as a single NUL-delimited buffer, the
// layout collection_list returns per the original header's arena
// convention.
func (a *Arena) NameTape(names []string) []byte {
	total := 0
	for _, n := range names {
		total += len(n) + 1
	}
	out := a.alloc(total)
	pos := 0
	for _, n := range names {
		copy(out[pos:], n)
		pos += len(n)
		out[pos] = 0
		pos++
	}
	return out
}
