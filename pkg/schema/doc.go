// Package schema implements the in-memory model of an OpenPID protocol
// description.
//
// # Model Hierarchy
//
// A protocol description is a Schema:
//
//	Schema
//	├── DeviceInfo (name, description, doc version)
//	├── Structs: name -> ReusableStruct
//	│   └── ordered PacketSegment fields
//	└── Payloads: name -> Payload
//	    └── ordered PacketSegment fields
//
// A Payload is one message the device accepts or emits. A ReusableStruct is
// a named group of segments that payloads (and other structs) embed by
// reference. A PacketSegment is one field on the wire: fixed-width (Sized),
// variable-width (Unsized), or a nested struct reference (Struct).
//
// The model is built once by the loader (package schemaparse) and is
// read-only for the rest of the run; the code generator only ever walks it.
package schema
