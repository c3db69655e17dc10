package codegen

import (
	"fmt"
	"strings"

	"github.com/openpid/openpid-go/pkg/schema"
)

// CompileStructDef emits the type definition for a reusable struct. The
// chunk's Inputs and Outputs both list the fields: a struct definition
// neither consumes nor produces wire data itself, but its fields are the
// variables any instance carries.
func (g *Generator) CompileStructDef(name string) (CodeChunk, error) {
	rs, ok := g.schema.Struct(name)
	if !ok {
		return CodeChunk{}, &UnresolvedStructError{Field: name, StructName: name}
	}

	var fields []Var
	seen := make(map[string]bool, len(rs.Fields))
	for _, f := range rs.Fields {
		if seen[f.Name] {
			return CodeChunk{}, &DuplicateVariableError{Payload: fmt.Sprintf("struct %s", name), Name: f.Name}
		}
		seen[f.Name] = true
		ft, err := g.structFieldVarType(name, f)
		if err != nil {
			return CodeChunk{}, err
		}
		if ft == "" {
			// Const segments are baked into the write code; an instance
			// stores nothing for them.
			continue
		}
		fields = append(fields, Var{Name: f.Name, Datatype: ft, Desc: f.Description})
	}

	var b strings.Builder
	b.WriteString(docLines(rs.Description))
	if g.lifetimes[name] {
		fmt.Fprintf(&b, "pub struct %s<'a> {\n", name)
	} else {
		fmt.Fprintf(&b, "pub struct %s {\n", name)
	}
	for _, f := range fields {
		b.WriteString(indent(docLines(f.Desc)))
		fmt.Fprintf(&b, "%spub %s: %s,\n", tab, f.Name, f.Datatype)
	}
	b.WriteString("}\n")

	return CodeChunk{Code: b.String(), Inputs: fields, Outputs: fields}, nil
}

// structFieldVarType maps a struct field to its owned-or-borrowed type in
// the generated definition. Returns "" for segments that store no data.
// Width validation mirrors the segment compiler so a struct definition
// never succeeds where its write code would fail.
func (g *Generator) structFieldVarType(structName string, f schema.PacketSegment) (string, error) {
	ctx := compileContext{payload: fmt.Sprintf("struct %s", structName)}

	switch f.Kind {
	case schema.SegmentSized:
		switch f.Sized.Kind {
		case schema.SizedRaw:
			return fmt.Sprintf("[u8; %d]", byteLen(f.Bits)), nil
		case schema.SizedConst:
			if f.Bits != uint(len(f.Sized.Const))*8 {
				return "", &SizeMismatchError{
					Payload:      ctx.payload,
					Field:        f.Name,
					DeclaredBits: f.Bits,
					LiteralBits:  uint(len(f.Sized.Const)) * 8,
				}
			}
			return "", nil
		case schema.SizedInteger:
			if !widthSupported(f.Bits, integerWidths) {
				return "", &UnsupportedWidthError{Payload: ctx.payload, Field: f.Name, Bits: f.Bits, Supported: integerWidths}
			}
			if f.Sized.Signing == schema.OnesComplement {
				return "", &UnsupportedSigningError{Payload: ctx.payload, Field: f.Name, Signing: f.Sized.Signing.String()}
			}
			return intType(f.Bits, f.Sized.Signing), nil
		case schema.SizedStringUTF8:
			if f.Bits%8 != 0 {
				return "", &NotByteAlignedError{Payload: ctx.payload, Field: f.Name, Bits: f.Bits}
			}
			return "&'a str", nil
		case schema.SizedFloatIEEE:
			if !widthSupported(f.Bits, floatWidths) {
				return "", &UnsupportedWidthError{Payload: ctx.payload, Field: f.Name, Bits: f.Bits, Supported: floatWidths}
			}
			return floatType(f.Bits), nil
		}

	case schema.SegmentUnsized:
		switch f.Unsized.Kind {
		case schema.UnsizedRaw:
			return "&'a [u8]", nil
		case schema.UnsizedStringUTF8:
			return "&'a str", nil
		case schema.UnsizedArray:
			item := f.Unsized.ItemStruct
			if _, ok := g.schema.Struct(item); !ok {
				return "", &UnresolvedStructError{Payload: ctx.payload, Field: f.Name, StructName: item}
			}
			if g.lifetimes[item] {
				return fmt.Sprintf("&'a [%s<'a>]", item), nil
			}
			return fmt.Sprintf("&'a [%s]", item), nil
		}

	case schema.SegmentStruct:
		if _, ok := g.schema.Struct(f.StructName); !ok {
			return "", &UnresolvedStructError{Payload: ctx.payload, Field: f.Name, StructName: f.StructName}
		}
		return g.structFieldType(f.StructName), nil
	}

	return "", fmt.Errorf("struct %q: field %q: unknown segment kind %s", structName, f.Name, f.Kind)
}

// FieldNames lists variable names in order, for tooling that prints
// struct and payload summaries.
func FieldNames(fields []Var) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
