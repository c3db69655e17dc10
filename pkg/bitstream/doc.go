// Package bitstream implements the bit-accounting engine that generated
// driver code targets: a byte-oriented transport carrying up to seven
// bits of leftover state between non-byte-aligned operations.
//
// Writer and Reader are the two halves of the engine. Bits are packed
// most significant first. Byte-aligned operations pass through directly
// when no leftover bits are pending; unaligned operations merge with the
// leftover byte until whole output bytes form.
//
// On top of the engine sit the wire codecs (UintCodec, IntCodec,
// FloatCodec, BytesCodec, StringCodec), each implementing both the
// Putter and Getter capability interfaces so encoding and decoding share
// the same bit accounting. The code generator accepts exactly the
// (width, signing, endianness) combinations these codecs support.
package bitstream
