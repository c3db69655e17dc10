// Package codegen compiles an OpenPID schema into source code fragments
// for an embedded Rust driver.
//
// The compiler is a single-pass, side-effect-free tree walk. Each packet
// segment compiles to a CodeChunk: generated code text plus the ordered
// logical variables the code consumes (Inputs) and produces (Outputs).
// Chunks compose bottom-up: segment chunks concatenate into one payload
// function whose parameter list is the merged, first-appearance-ordered
// input list.
//
// All schema errors (unresolved struct references, unsupported widths,
// misaligned strings, cyclic struct graphs) are detected here at compile
// time; generated code never has to re-validate the schema at runtime.
// Compilation of a payload aborts on the first error and produces no
// partial output.
//
// The generated fragments assume the bit-stream contract emitted as the
// crate preamble (see RuntimePreamble): a byte transport carrying up to
// seven bits of leftover state between non-byte-aligned writes. Package
// bitstream implements the same contract in Go for testing the encodings.
package codegen
