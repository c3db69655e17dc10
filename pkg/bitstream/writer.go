package bitstream

import "fmt"

// Writer packs values into bytes, most significant bit first. Up to seven
// bits of a partially filled byte are held back until later writes
// complete it or Align flushes it zero-padded.
type Writer struct {
	buf []byte

	// leftover holds pending bits in its low positions.
	leftover uint8

	// pending counts the bits in leftover, 0..7.
	pending uint
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBits writes the low n bits of value, most significant first.
// n must be at most 64.
func (w *Writer) WriteBits(value uint64, n uint) error {
	if n > 64 {
		return fmt.Errorf("bitstream: cannot write %d bits at once", n)
	}
	for i := int(n) - 1; i >= 0; i-- {
		w.leftover = w.leftover<<1 | uint8(value>>uint(i)&1)
		w.pending++
		if w.pending == 8 {
			w.buf = append(w.buf, w.leftover)
			w.leftover = 0
			w.pending = 0
		}
	}
	return nil
}

// WriteBytes writes whole bytes, merging with any pending leftover bits.
func (w *Writer) WriteBytes(data []byte) error {
	if w.pending == 0 {
		w.buf = append(w.buf, data...)
		return nil
	}
	for _, b := range data {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// Align flushes pending bits zero-padded to the next byte boundary and
// returns the number of padding bits written.
func (w *Writer) Align() uint {
	if w.pending == 0 {
		return 0
	}
	pad := 8 - w.pending
	w.buf = append(w.buf, w.leftover<<pad)
	w.leftover = 0
	w.pending = 0
	return pad
}

// Pending returns the number of leftover bits not yet flushed, 0..7.
func (w *Writer) Pending() uint {
	return w.pending
}

// Bytes returns the completed output. Pending bits are not included;
// call Align first if the stream must end on a byte boundary.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// BitLen returns the total number of bits written, including pending
// ones.
func (w *Writer) BitLen() uint {
	return uint(len(w.buf))*8 + w.pending
}
