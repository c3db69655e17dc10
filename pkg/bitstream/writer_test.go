package bitstream

import (
	"bytes"
	"testing"
)

func TestWriter_ByteAligned(t *testing.T) {
	w := NewWriter()
	if err := w.WriteBytes([]byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(w.Bytes(), []byte{0xAA, 0xBB}) {
		t.Errorf("bytes = %x, want aabb", w.Bytes())
	}
	if w.Pending() != 0 {
		t.Errorf("pending = %d, want 0", w.Pending())
	}
}

func TestWriter_BitPacking(t *testing.T) {
	w := NewWriter()
	// 0b101 then 0b10110 pack MSB-first into one byte: 0b10110110.
	if err := w.WriteBits(0b101, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Pending() != 3 {
		t.Errorf("pending = %d, want 3", w.Pending())
	}
	if err := w.WriteBits(0b10110, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(w.Bytes(), []byte{0b10110110}) {
		t.Errorf("bytes = %08b, want 10110110", w.Bytes())
	}
	if w.Pending() != 0 {
		t.Errorf("pending = %d, want 0", w.Pending())
	}
}

func TestWriter_LeftoverMerge(t *testing.T) {
	w := NewWriter()
	// Three pending bits force the following bytes through the merge
	// path.
	if err := w.WriteBits(0b111, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteBytes([]byte{0x00}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 111 00000 | 000 + 5 pending zeros
	if !bytes.Equal(w.Bytes(), []byte{0b11100000}) {
		t.Errorf("bytes = %08b, want 11100000", w.Bytes())
	}
	if w.Pending() != 3 {
		t.Errorf("pending = %d, want 3", w.Pending())
	}
}

func TestWriter_Align(t *testing.T) {
	w := NewWriter()
	if err := w.WriteBits(0b11, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pad := w.Align()
	if pad != 6 {
		t.Errorf("pad = %d, want 6", pad)
	}
	if !bytes.Equal(w.Bytes(), []byte{0b11000000}) {
		t.Errorf("bytes = %08b, want 11000000", w.Bytes())
	}
	if w.Align() != 0 {
		t.Error("aligned stream should need no padding")
	}
}

func TestReader_MirrorsWriter(t *testing.T) {
	w := NewWriter()
	if err := w.WriteBits(0b10110, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteBytes([]byte{0xCD}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Align()

	r := NewReader(w.Bytes())
	bits, err := r.ReadBits(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bits != 0b10110 {
		t.Errorf("bits = %05b, want 10110", bits)
	}
	data, err := r.ReadBytes(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data[0] != 0xCD {
		t.Errorf("byte = %02x, want cd", data[0])
	}
	if skip := r.Align(); skip != 3 {
		t.Errorf("align skipped %d bits, want 3", skip)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.Remaining())
	}
}

func TestReader_ShortRead(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, err := r.ReadBits(16); err == nil {
		t.Error("want short-read error")
	}
	if _, err := r.ReadBytes(2); err == nil {
		t.Error("want short-read error")
	}
}
