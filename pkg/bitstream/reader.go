package bitstream

import "fmt"

// Reader is the mirror image of Writer: it unpacks values from bytes,
// most significant bit first, carrying sub-byte position between reads.
type Reader struct {
	buf []byte

	// pos is the read position in bits from the start of buf.
	pos uint
}

// NewReader returns a reader over data. The slice is not copied; the
// caller must not mutate it while reading.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// ReadBits reads n bits, most significant first, into the low bits of
// the result. n must be at most 64.
func (r *Reader) ReadBits(n uint) (uint64, error) {
	if n > 64 {
		return 0, fmt.Errorf("bitstream: cannot read %d bits at once", n)
	}
	if r.pos+n > uint(len(r.buf))*8 {
		return 0, fmt.Errorf("bitstream: short read: need %d bits, %d left", n, uint(len(r.buf))*8-r.pos)
	}
	var v uint64
	for i := uint(0); i < n; i++ {
		byteIdx := r.pos >> 3
		bitIdx := 7 - r.pos&7
		v = v<<1 | uint64(r.buf[byteIdx]>>bitIdx&1)
		r.pos++
	}
	return v, nil
}

// ReadBytes reads n whole bytes, honoring any sub-byte offset.
func (r *Reader) ReadBytes(n uint) ([]byte, error) {
	if r.pos&7 == 0 {
		start := r.pos >> 3
		if start+n > uint(len(r.buf)) {
			return nil, fmt.Errorf("bitstream: short read: need %d bytes, %d left", n, uint(len(r.buf))-start)
		}
		r.pos += n * 8
		return r.buf[start : start+n], nil
	}

	out := make([]byte, n)
	for i := range out {
		b, err := r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(b)
	}
	return out, nil
}

// Align skips to the next byte boundary and returns the number of bits
// skipped.
func (r *Reader) Align() uint {
	skip := (8 - r.pos&7) & 7
	r.pos += skip
	return skip
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() uint {
	return uint(len(r.buf))*8 - r.pos
}
