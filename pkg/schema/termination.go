package schema

import "fmt"

// TerminationKind discriminates the termination policies for unsized
// segments.
type TerminationKind int

const (
	// TerminationLengthPrefixed writes the element (or byte) count first,
	// as an unsigned big-endian integer of PrefixBits width.
	TerminationLengthPrefixed TerminationKind = iota

	// TerminationDelimiter writes the data followed by a sentinel byte.
	// The sentinel is not escaped; schema authors must choose a byte that
	// cannot occur in the data.
	TerminationDelimiter
)

func (k TerminationKind) String() string {
	switch k {
	case TerminationLengthPrefixed:
		return "length_prefixed"
	case TerminationDelimiter:
		return "delimiter"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Termination tells a decoder where an unsized segment ends. Exactly one
// policy applies per segment.
type Termination struct {
	Kind TerminationKind

	// PrefixBits is the width of the length prefix for
	// TerminationLengthPrefixed: 8, 16 or 32.
	PrefixBits uint

	// Delimiter is the sentinel byte for TerminationDelimiter.
	Delimiter byte
}

// ValidPrefixBits reports whether a length-prefix width is supported.
func ValidPrefixBits(bits uint) bool {
	return bits == 8 || bits == 16 || bits == 32
}
