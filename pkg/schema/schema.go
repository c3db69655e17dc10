package schema

import (
	"fmt"
	"sort"
)

// DeviceInfo identifies the device a schema describes.
type DeviceInfo struct {
	// Name is the device name, used as the generated crate name.
	Name string

	// Description is a human-readable summary of the device.
	Description string

	// DocVersion is the optional version of the protocol document,
	// "major.minor" or "major.minor.patch". Empty if unversioned.
	DocVersion string
}

// Schema is the root of a parsed protocol description. It is immutable
// after loading; compilation never mutates it.
type Schema struct {
	Device DeviceInfo

	// Structs maps struct name to its definition. Keys are unique by
	// construction (map semantics); the loader rejects duplicate names.
	Structs map[string]ReusableStruct

	// Payloads maps payload name to its definition.
	Payloads map[string]Payload
}

// ReusableStruct is a named, reusable group of segments embeddable inside
// a payload or another struct.
type ReusableStruct struct {
	Name        string
	Description string
	Fields      []PacketSegment
}

// Payload is one message definition: an ordered sequence of segments.
type Payload struct {
	Description string
	Segments    []PacketSegment
}

// Struct resolves a struct reference by name. It is the single lookup
// point for nested struct compilation; the caller attaches payload/field
// attribution when the lookup fails.
func (s *Schema) Struct(name string) (ReusableStruct, bool) {
	rs, ok := s.Structs[name]
	return rs, ok
}

// SortedStructNames returns all struct names in lexical order. Whole-schema
// compilation iterates this rather than the map so output is deterministic.
func (s *Schema) SortedStructNames() []string {
	names := make([]string, 0, len(s.Structs))
	for name := range s.Structs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedPayloadNames returns all payload names in lexical order.
func (s *Schema) SortedPayloadNames() []string {
	names := make([]string, 0, len(s.Payloads))
	for name := range s.Payloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate performs structural checks the loader relies on: non-empty
// device name, named fields, and struct references that at least point at
// a declared struct. Width and datatype rules are checked per segment at
// compile time, where payload/field attribution is available.
func (s *Schema) Validate() error {
	if s.Device.Name == "" {
		return fmt.Errorf("schema: device name is required")
	}

	for _, name := range s.SortedStructNames() {
		rs := s.Structs[name]
		if err := validateSegments(rs.Fields, fmt.Sprintf("struct %q", name)); err != nil {
			return err
		}
	}

	for _, name := range s.SortedPayloadNames() {
		p := s.Payloads[name]
		if len(p.Segments) == 0 {
			return fmt.Errorf("schema: payload %q has no segments", name)
		}
		if err := validateSegments(p.Segments, fmt.Sprintf("payload %q", name)); err != nil {
			return err
		}
	}

	return nil
}

func validateSegments(segs []PacketSegment, where string) error {
	seen := make(map[string]bool, len(segs))
	for i, seg := range segs {
		if seg.Name == "" {
			return fmt.Errorf("schema: %s: segment %d has no name", where, i)
		}
		if seen[seg.Name] {
			return fmt.Errorf("schema: %s: duplicate segment name %q", where, seg.Name)
		}
		seen[seg.Name] = true
		switch seg.Kind {
		case SegmentSized, SegmentUnsized, SegmentStruct:
		default:
			return fmt.Errorf("schema: %s: segment %q has unknown kind %d", where, seg.Name, seg.Kind)
		}
		if seg.Kind == SegmentStruct && seg.StructName == "" {
			return fmt.Errorf("schema: %s: segment %q references an unnamed struct", where, seg.Name)
		}
	}
	return nil
}
