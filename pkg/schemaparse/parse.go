package schemaparse

import (
	"fmt"
	"regexp"

	"github.com/openpid/openpid-go/pkg/schema"
)

// rawSchema is the on-disk shape shared by the TOML and YAML formats.
type rawSchema struct {
	Device   rawDevice             `toml:"device" yaml:"device"`
	Structs  map[string]rawStruct  `toml:"structs" yaml:"structs"`
	Payloads map[string]rawPayload `toml:"payloads" yaml:"payloads"`
}

type rawDevice struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	DocVersion  string `toml:"doc_version" yaml:"doc_version"`
}

type rawStruct struct {
	Description string       `toml:"description" yaml:"description"`
	Fields      []rawSegment `toml:"fields" yaml:"fields"`
}

type rawPayload struct {
	Description string       `toml:"description" yaml:"description"`
	Segments    []rawSegment `toml:"segments" yaml:"segments"`
}

// rawSegment is one field declaration. Type selects the variant; the
// remaining attributes apply per type:
//
//	raw      bits (sized) or termination (unsized)
//	const    bits, value
//	integer  bits, endianness, signing
//	string   bits (sized) or termination (unsized)
//	float    bits, endianness
//	struct   struct
//	array    item, termination
type rawSegment struct {
	Name        string          `toml:"name" yaml:"name"`
	Description string          `toml:"description" yaml:"description"`
	Type        string          `toml:"type" yaml:"type"`
	Bits        uint            `toml:"bits" yaml:"bits"`
	Endianness  string          `toml:"endianness" yaml:"endianness"`
	Signing     string          `toml:"signing" yaml:"signing"`
	Value       []int           `toml:"value" yaml:"value"`
	Struct      string          `toml:"struct" yaml:"struct"`
	Item        string          `toml:"item" yaml:"item"`
	Termination *rawTermination `toml:"termination" yaml:"termination"`
}

type rawTermination struct {
	Kind       string `toml:"kind" yaml:"kind"`
	PrefixBits uint   `toml:"prefix_bits" yaml:"prefix_bits"`
	Delimiter  int    `toml:"delimiter" yaml:"delimiter"`
}

// identRe matches names usable as generated-code identifiers.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// convert turns the raw form into the immutable model, validating enum
// strings, names and per-type required attributes.
func convert(raw *rawSchema) (*schema.Schema, error) {
	s := &schema.Schema{
		Device: schema.DeviceInfo{
			Name:        raw.Device.Name,
			Description: raw.Device.Description,
			DocVersion:  raw.Device.DocVersion,
		},
		Structs:  make(map[string]schema.ReusableStruct, len(raw.Structs)),
		Payloads: make(map[string]schema.Payload, len(raw.Payloads)),
	}

	for name, rs := range raw.Structs {
		if !identRe.MatchString(name) {
			return nil, fmt.Errorf("struct %q: name is not a valid identifier", name)
		}
		fields, err := convertSegments(rs.Fields, fmt.Sprintf("struct %q", name))
		if err != nil {
			return nil, err
		}
		s.Structs[name] = schema.ReusableStruct{
			Name:        name,
			Description: rs.Description,
			Fields:      fields,
		}
	}

	for name, rp := range raw.Payloads {
		if !identRe.MatchString(name) {
			return nil, fmt.Errorf("payload %q: name is not a valid identifier", name)
		}
		segments, err := convertSegments(rp.Segments, fmt.Sprintf("payload %q", name))
		if err != nil {
			return nil, err
		}
		s.Payloads[name] = schema.Payload{
			Description: rp.Description,
			Segments:    segments,
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func convertSegments(raws []rawSegment, where string) ([]schema.PacketSegment, error) {
	segs := make([]schema.PacketSegment, 0, len(raws))
	for _, r := range raws {
		seg, err := convertSegment(r)
		if err != nil {
			return nil, fmt.Errorf("%s: field %q: %w", where, r.Name, err)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

func convertSegment(r rawSegment) (schema.PacketSegment, error) {
	if !identRe.MatchString(r.Name) {
		return schema.PacketSegment{}, fmt.Errorf("name is not a valid identifier")
	}

	seg := schema.PacketSegment{Name: r.Name, Description: r.Description}

	switch r.Type {
	case "raw":
		if r.Termination != nil {
			seg.Kind = schema.SegmentUnsized
			seg.Unsized = schema.UnsizedDataType{Kind: schema.UnsizedRaw}
			return withTermination(seg, r.Termination)
		}
		if r.Bits == 0 {
			return seg, fmt.Errorf("raw segment needs bits or a termination policy")
		}
		seg.Kind = schema.SegmentSized
		seg.Bits = r.Bits
		seg.Sized = schema.SizedDataType{Kind: schema.SizedRaw}
		return seg, nil

	case "const":
		if len(r.Value) == 0 {
			return seg, fmt.Errorf("const segment needs a value")
		}
		data := make([]byte, len(r.Value))
		for i, v := range r.Value {
			if v < 0 || v > 0xff {
				return seg, fmt.Errorf("const byte %d out of range: %d", i, v)
			}
			data[i] = byte(v)
		}
		seg.Kind = schema.SegmentSized
		seg.Bits = r.Bits
		seg.Sized = schema.SizedDataType{Kind: schema.SizedConst, Const: data}
		return seg, nil

	case "integer", "int":
		endian, err := parseEndianness(r.Endianness)
		if err != nil {
			return seg, err
		}
		signing, err := parseSigning(r.Signing)
		if err != nil {
			return seg, err
		}
		seg.Kind = schema.SegmentSized
		seg.Bits = r.Bits
		seg.Sized = schema.SizedDataType{Kind: schema.SizedInteger, Endianness: endian, Signing: signing}
		return seg, nil

	case "string":
		if r.Termination != nil {
			seg.Kind = schema.SegmentUnsized
			seg.Unsized = schema.UnsizedDataType{Kind: schema.UnsizedStringUTF8}
			return withTermination(seg, r.Termination)
		}
		if r.Bits == 0 {
			return seg, fmt.Errorf("string segment needs bits or a termination policy")
		}
		seg.Kind = schema.SegmentSized
		seg.Bits = r.Bits
		seg.Sized = schema.SizedDataType{Kind: schema.SizedStringUTF8}
		return seg, nil

	case "float":
		endian, err := parseEndianness(r.Endianness)
		if err != nil {
			return seg, err
		}
		seg.Kind = schema.SegmentSized
		seg.Bits = r.Bits
		seg.Sized = schema.SizedDataType{Kind: schema.SizedFloatIEEE, Endianness: endian}
		return seg, nil

	case "struct":
		if r.Struct == "" {
			return seg, fmt.Errorf("struct segment needs a struct name")
		}
		seg.Kind = schema.SegmentStruct
		seg.StructName = r.Struct
		return seg, nil

	case "array":
		if r.Item == "" {
			return seg, fmt.Errorf("array segment needs an item struct")
		}
		if r.Termination == nil {
			return seg, fmt.Errorf("array segment needs a termination policy")
		}
		seg.Kind = schema.SegmentUnsized
		seg.Unsized = schema.UnsizedDataType{Kind: schema.UnsizedArray, ItemStruct: r.Item}
		return withTermination(seg, r.Termination)

	case "":
		return seg, fmt.Errorf("segment type is required")

	default:
		return seg, fmt.Errorf("unknown segment type %q", r.Type)
	}
}

func withTermination(seg schema.PacketSegment, raw *rawTermination) (schema.PacketSegment, error) {
	switch raw.Kind {
	case "length_prefixed":
		if !schema.ValidPrefixBits(raw.PrefixBits) {
			return seg, fmt.Errorf("length prefix width must be 8, 16 or 32 bits, got %d", raw.PrefixBits)
		}
		seg.Termination = schema.Termination{
			Kind:       schema.TerminationLengthPrefixed,
			PrefixBits: raw.PrefixBits,
		}
	case "delimiter":
		if raw.Delimiter < 0 || raw.Delimiter > 0xff {
			return seg, fmt.Errorf("delimiter out of byte range: %d", raw.Delimiter)
		}
		seg.Termination = schema.Termination{
			Kind:      schema.TerminationDelimiter,
			Delimiter: byte(raw.Delimiter),
		}
	case "":
		return seg, fmt.Errorf("termination kind is required")
	default:
		return seg, fmt.Errorf("unknown termination kind %q", raw.Kind)
	}
	return seg, nil
}

func parseEndianness(s string) (schema.Endianness, error) {
	switch s {
	case "big", "":
		return schema.BigEndian, nil
	case "little":
		return schema.LittleEndian, nil
	default:
		return 0, fmt.Errorf("unknown endianness %q", s)
	}
}

func parseSigning(s string) (schema.Signing, error) {
	switch s {
	case "unsigned", "":
		return schema.Unsigned, nil
	case "twos_complement", "signed":
		return schema.TwosComplement, nil
	case "ones_complement":
		return schema.OnesComplement, nil
	default:
		return 0, fmt.Errorf("unknown signing %q", s)
	}
}
