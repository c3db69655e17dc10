package bitstream

import (
	"fmt"
	"math"

	"github.com/openpid/openpid-go/pkg/schema"
)

// Putter writes a logical value of type T as one wire datatype and
// reports the number of bits written.
type Putter[T any] interface {
	Put(w *Writer, v T) (uint, error)
}

// Getter reads one wire datatype and returns the logical value.
type Getter[T any] interface {
	Get(r *Reader) (T, error)
}

// UintCodec encodes unsigned integers of 8, 16, 32 or 64 bits.
type UintCodec struct {
	Bits       uint
	Endianness schema.Endianness
}

func (c UintCodec) Put(w *Writer, v uint64) (uint, error) {
	data, err := uintBytes(v, c.Bits, c.Endianness)
	if err != nil {
		return 0, err
	}
	if err := w.WriteBytes(data); err != nil {
		return 0, err
	}
	return c.Bits, nil
}

func (c UintCodec) Get(r *Reader) (uint64, error) {
	data, err := r.ReadBytes(c.Bits / 8)
	if err != nil {
		return 0, err
	}
	return uintFromBytes(data, c.Bits, c.Endianness)
}

// IntCodec encodes two's-complement signed integers of 8, 16, 32 or 64
// bits. There is deliberately no one's-complement codec; the compiler
// rejects that signing mode instead of encoding it wrong.
type IntCodec struct {
	Bits       uint
	Endianness schema.Endianness
}

func (c IntCodec) Put(w *Writer, v int64) (uint, error) {
	if err := checkIntWidth(c.Bits); err != nil {
		return 0, err
	}
	// Two's complement is the native representation; masking to width is
	// all the conversion needed.
	u := uint64(v)
	if c.Bits < 64 {
		u &= 1<<c.Bits - 1
	}
	return UintCodec{Bits: c.Bits, Endianness: c.Endianness}.Put(w, u)
}

func (c IntCodec) Get(r *Reader) (int64, error) {
	u, err := UintCodec{Bits: c.Bits, Endianness: c.Endianness}.Get(r)
	if err != nil {
		return 0, err
	}
	// Sign-extend from the declared width.
	if c.Bits < 64 && u&(1<<(c.Bits-1)) != 0 {
		u |= ^uint64(0) << c.Bits
	}
	return int64(u), nil
}

// FloatCodec encodes IEEE-754 floats of 32 or 64 bits.
type FloatCodec struct {
	Bits       uint
	Endianness schema.Endianness
}

func (c FloatCodec) Put(w *Writer, v float64) (uint, error) {
	var u uint64
	switch c.Bits {
	case 32:
		u = uint64(math.Float32bits(float32(v)))
	case 64:
		u = math.Float64bits(v)
	default:
		return 0, fmt.Errorf("bitstream: unsupported float width %d", c.Bits)
	}
	data, err := uintBytes(u, c.Bits, c.Endianness)
	if err != nil {
		return 0, err
	}
	if err := w.WriteBytes(data); err != nil {
		return 0, err
	}
	return c.Bits, nil
}

func (c FloatCodec) Get(r *Reader) (float64, error) {
	data, err := r.ReadBytes(c.Bits / 8)
	if err != nil {
		return 0, err
	}
	u, err := uintFromBytes(data, c.Bits, c.Endianness)
	if err != nil {
		return 0, err
	}
	switch c.Bits {
	case 32:
		return float64(math.Float32frombits(uint32(u))), nil
	case 64:
		return math.Float64frombits(u), nil
	default:
		return 0, fmt.Errorf("bitstream: unsupported float width %d", c.Bits)
	}
}

// BytesCodec encodes a fixed run of Bits raw bits. A non-byte-multiple
// width leaves leftover state in the stream, exercising the merge path.
type BytesCodec struct {
	Bits uint
}

func (c BytesCodec) Put(w *Writer, v []byte) (uint, error) {
	need := (c.Bits + 7) / 8
	if uint(len(v)) < need {
		return 0, fmt.Errorf("bitstream: raw value is %d bytes, need %d for %d bits", len(v), need, c.Bits)
	}
	remaining := c.Bits
	for _, b := range v {
		if remaining == 0 {
			break
		}
		take := remaining
		if take > 8 {
			take = 8
		}
		if err := w.WriteBits(uint64(b>>(8-take)), take); err != nil {
			return 0, err
		}
		remaining -= take
	}
	return c.Bits, nil
}

func (c BytesCodec) Get(r *Reader) ([]byte, error) {
	out := make([]byte, 0, (c.Bits+7)/8)
	remaining := c.Bits
	for remaining > 0 {
		take := remaining
		if take > 8 {
			take = 8
		}
		bits, err := r.ReadBits(take)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(bits)<<(8-take))
		remaining -= take
	}
	return out, nil
}

// StringCodec encodes UTF-8 text of exactly Bytes bytes.
type StringCodec struct {
	Bytes uint
}

func (c StringCodec) Put(w *Writer, v string) (uint, error) {
	if uint(len(v)) != c.Bytes {
		return 0, fmt.Errorf("bitstream: string is %d bytes, declared %d", len(v), c.Bytes)
	}
	if err := w.WriteBytes([]byte(v)); err != nil {
		return 0, err
	}
	return c.Bytes * 8, nil
}

func (c StringCodec) Get(r *Reader) (string, error) {
	data, err := r.ReadBytes(c.Bytes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func checkIntWidth(bits uint) error {
	switch bits {
	case 8, 16, 32, 64:
		return nil
	default:
		return fmt.Errorf("bitstream: unsupported integer width %d", bits)
	}
}

// uintBytes serializes the low bits of v in the given byte order.
func uintBytes(v uint64, bits uint, e schema.Endianness) ([]byte, error) {
	if err := checkIntWidth(bits); err != nil {
		return nil, err
	}
	n := bits / 8
	out := make([]byte, n)
	for i := uint(0); i < n; i++ {
		shift := (n - 1 - i) * 8
		if e == schema.LittleEndian {
			shift = i * 8
		}
		out[i] = byte(v >> shift)
	}
	return out, nil
}

// uintFromBytes deserializes in the given byte order.
func uintFromBytes(data []byte, bits uint, e schema.Endianness) (uint64, error) {
	if err := checkIntWidth(bits); err != nil {
		return 0, err
	}
	n := bits / 8
	if uint(len(data)) < n {
		return 0, fmt.Errorf("bitstream: need %d bytes, have %d", n, len(data))
	}
	var v uint64
	for i := uint(0); i < n; i++ {
		shift := (n - 1 - i) * 8
		if e == schema.LittleEndian {
			shift = i * 8
		}
		v |= uint64(data[i]) << shift
	}
	return v, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Putter[uint64]  = UintCodec{}
	_ Getter[uint64]  = UintCodec{}
	_ Putter[int64]   = IntCodec{}
	_ Getter[int64]   = IntCodec{}
	_ Putter[float64] = FloatCodec{}
	_ Getter[float64] = FloatCodec{}
	_ Putter[[]byte]  = BytesCodec{}
	_ Getter[[]byte]  = BytesCodec{}
	_ Putter[string]  = StringCodec{}
	_ Getter[string]  = StringCodec{}
)
