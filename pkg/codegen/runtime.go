package codegen

// RuntimePreamble is the fixed bit-stream support code emitted at the top
// of every generated crate. It is not derived from the schema: all
// compiled fragments assume exactly these semantics, mirrored by the Go
// implementation in package bitstream.
//
//   - put_bytes: whole bytes, written directly when no leftover bits are
//     pending, otherwise merged bit by bit.
//   - put_bits / put_raw: arbitrary bit runs, most significant bit first,
//     buffered in the leftover byte until a whole byte is available.
//   - align: flushes pending bits zero-padded to the next byte boundary.
//
// Every method reports the number of bits written.
const RuntimePreamble = `#![no_std]

use embedded_io::Write;

/// A byte-oriented transport with sub-byte write support.
///
/// Writes that do not end on a byte boundary leave up to seven pending
/// bits in ` + "`leftover`" + `; the next write merges with them, and
/// ` + "`align`" + ` flushes them zero-padded.
pub struct BitStream<W: Write> {
    stream: W,
    leftover: u8,
    leftover_bits: u8,
}

impl<W: Write> BitStream<W> {
    pub fn new(stream: W) -> Self {
        Self { stream, leftover: 0, leftover_bits: 0 }
    }

    /// Writes whole bytes, merging with any pending leftover bits.
    pub fn put_bytes(&mut self, data: &[u8]) -> Result<usize, W::Error> {
        if self.leftover_bits == 0 {
            self.stream.write_all(data)?;
        } else {
            for &b in data {
                self.put_bits(b as u64, 8)?;
            }
        }
        Ok(data.len() * 8)
    }

    /// Writes the low ` + "`bits`" + ` bits of ` + "`value`" + `, most significant first.
    pub fn put_bits(&mut self, value: u64, bits: u32) -> Result<usize, W::Error> {
        for i in (0..bits).rev() {
            self.leftover = (self.leftover << 1) | (((value >> i) & 1) as u8);
            self.leftover_bits += 1;
            if self.leftover_bits == 8 {
                let byte = self.leftover;
                self.leftover = 0;
                self.leftover_bits = 0;
                self.stream.write_all(&[byte])?;
            }
        }
        Ok(bits as usize)
    }

    /// Writes the first ` + "`bits`" + ` bits of ` + "`data`" + `, most significant first.
    pub fn put_raw(&mut self, data: &[u8], bits: u32) -> Result<usize, W::Error> {
        let mut remaining = bits;
        for &b in data {
            if remaining == 0 {
                break;
            }
            let take = remaining.min(8);
            self.put_bits((b >> (8 - take)) as u64, take)?;
            remaining -= take;
        }
        Ok(bits as usize)
    }

    /// Flushes pending bits zero-padded to the next byte boundary.
    /// Returns the number of padding bits written.
    pub fn align(&mut self) -> Result<usize, W::Error> {
        if self.leftover_bits == 0 {
            return Ok(0);
        }
        let pad = (8 - self.leftover_bits) as usize;
        let byte = self.leftover << pad;
        self.leftover = 0;
        self.leftover_bits = 0;
        self.stream.write_all(&[byte])?;
        Ok(pad)
    }
}

/// Writes a logical value as its wire datatype. Implementations report
/// the number of bits written.
pub trait Put<W: Write> {
    fn put(&self, stream: &mut BitStream<W>) -> Result<usize, W::Error>;
}
`
