package codegen

import (
	"fmt"
	"strings"
)

// UnresolvedStructError reports a Struct segment naming a struct absent
// from the schema.
type UnresolvedStructError struct {
	// Payload is the payload whose compilation hit the missing reference.
	Payload string
	// Field is the segment name that carries the reference.
	Field string
	// StructName is the name that failed to resolve.
	StructName string
}

func (e *UnresolvedStructError) Error() string {
	return fmt.Sprintf("payload %q: field %q references unknown struct %q", e.Payload, e.Field, e.StructName)
}

// CyclicReferenceError reports a struct embedding itself directly or
// transitively.
type CyclicReferenceError struct {
	Payload string
	Field   string
	// Cycle is the chain of struct names from the outermost reference to
	// the repeated one, e.g. ["a", "b", "a"].
	Cycle []string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("payload %q: field %q: cyclic struct reference: %s",
		e.Payload, e.Field, strings.Join(e.Cycle, " -> "))
}

// UnsupportedWidthError reports an integer, float or length-prefix bit
// width outside the supported set.
type UnsupportedWidthError struct {
	Payload string
	Field   string
	Bits    uint
	// Supported lists the widths the datatype accepts.
	Supported []uint
}

func (e *UnsupportedWidthError) Error() string {
	widths := make([]string, len(e.Supported))
	for i, w := range e.Supported {
		widths[i] = fmt.Sprintf("%d", w)
	}
	return fmt.Sprintf("payload %q: field %q: unsupported width %d bits (supported: %s)",
		e.Payload, e.Field, e.Bits, strings.Join(widths, ", "))
}

// UnsupportedSigningError reports a signing mode with no encoding support.
// One's complement needs sign-magnitude bit manipulation that is not
// implemented; failing here beats emitting wrong arithmetic.
type UnsupportedSigningError struct {
	Payload string
	Field   string
	Signing string
}

func (e *UnsupportedSigningError) Error() string {
	return fmt.Sprintf("payload %q: field %q: unsupported signing %s", e.Payload, e.Field, e.Signing)
}

// SizeMismatchError reports a declared bit width inconsistent with the
// literal payload size of a Const segment.
type SizeMismatchError struct {
	Payload string
	Field   string
	// DeclaredBits is the segment's declared width.
	DeclaredBits uint
	// LiteralBits is 8x the literal byte count.
	LiteralBits uint
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("payload %q: field %q: declared %d bits but literal is %d bits",
		e.Payload, e.Field, e.DeclaredBits, e.LiteralBits)
}

// NotByteAlignedError reports a byte-oriented datatype declared with a
// width that is not a multiple of 8.
type NotByteAlignedError struct {
	Payload string
	Field   string
	Bits    uint
}

func (e *NotByteAlignedError) Error() string {
	return fmt.Sprintf("payload %q: field %q: %d bits is not a whole number of bytes", e.Payload, e.Field, e.Bits)
}

// DuplicateVariableError reports two segments in one payload producing
// the same input variable name. The collision would silently bind two
// wire fields to one parameter, so it is rejected rather than merged.
type DuplicateVariableError struct {
	Payload string
	Name    string
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("payload %q: duplicate input variable %q", e.Payload, e.Name)
}
