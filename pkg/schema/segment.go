package schema

import "fmt"

// SegmentKind discriminates the PacketSegment variants.
type SegmentKind int

const (
	// SegmentSized is a fixed-width field with a declared bit width.
	SegmentSized SegmentKind = iota
	// SegmentUnsized is a variable-width field with a termination policy.
	SegmentUnsized
	// SegmentStruct embeds a named ReusableStruct inline.
	SegmentStruct
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentSized:
		return "sized"
	case SegmentUnsized:
		return "unsized"
	case SegmentStruct:
		return "struct"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// PacketSegment is one field within a payload or struct. Kind selects which
// of the remaining fields are meaningful:
//
//   - SegmentSized: Bits, Sized
//   - SegmentUnsized: Unsized, Termination
//   - SegmentStruct: StructName
type PacketSegment struct {
	// Name is the field name. For Sized and Unsized segments it names the
	// logical variable the generated code reads the value from.
	Name string

	// Description documents the field; propagated into generated doc
	// comments. Optional.
	Description string

	Kind SegmentKind

	// Bits is the declared width of a Sized segment.
	Bits uint

	// Sized is the wire datatype of a Sized segment.
	Sized SizedDataType

	// Unsized is the wire datatype of an Unsized segment.
	Unsized UnsizedDataType

	// Termination tells a decoder where an Unsized segment ends.
	Termination Termination

	// StructName is the referenced struct for a Struct segment.
	StructName string
}

// SizedKind discriminates the SizedDataType variants.
type SizedKind int

const (
	// SizedRaw is an opaque fixed-size byte run.
	SizedRaw SizedKind = iota
	// SizedConst is a literal byte sequence baked into the schema.
	SizedConst
	// SizedInteger is a fixed-width integer with endianness and signing.
	SizedInteger
	// SizedStringUTF8 is UTF-8 text occupying a whole number of bytes.
	SizedStringUTF8
	// SizedFloatIEEE is an IEEE-754 float, 32 or 64 bits.
	SizedFloatIEEE
)

func (k SizedKind) String() string {
	switch k {
	case SizedRaw:
		return "raw"
	case SizedConst:
		return "const"
	case SizedInteger:
		return "integer"
	case SizedStringUTF8:
		return "string_utf8"
	case SizedFloatIEEE:
		return "float_ieee"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// SizedDataType is the wire representation of a fixed-width segment.
type SizedDataType struct {
	Kind SizedKind

	// Const holds the literal bytes of a SizedConst. The segment's declared
	// bit width must equal 8*len(Const) exactly.
	Const []byte

	// Endianness applies to SizedInteger and SizedFloatIEEE.
	Endianness Endianness

	// Signing applies to SizedInteger.
	Signing Signing
}

// UnsizedKind discriminates the UnsizedDataType variants.
type UnsizedKind int

const (
	// UnsizedRaw is an opaque variable-length byte run.
	UnsizedRaw UnsizedKind = iota
	// UnsizedStringUTF8 is variable-length UTF-8 text.
	UnsizedStringUTF8
	// UnsizedArray is a repeated struct.
	UnsizedArray
)

func (k UnsizedKind) String() string {
	switch k {
	case UnsizedRaw:
		return "raw"
	case UnsizedStringUTF8:
		return "string_utf8"
	case UnsizedArray:
		return "array"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// UnsizedDataType is the wire representation of a variable-width segment.
type UnsizedDataType struct {
	Kind UnsizedKind

	// ItemStruct names the element struct of an UnsizedArray.
	ItemStruct string
}

// Endianness selects the byte order of multi-byte values.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// Signing selects the signed-integer representation.
type Signing int

const (
	Unsigned Signing = iota
	TwosComplement
	OnesComplement
)

func (s Signing) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case TwosComplement:
		return "twos_complement"
	case OnesComplement:
		return "ones_complement"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
