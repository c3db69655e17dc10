package codegen

import (
	"fmt"
	"strings"

	"github.com/openpid/openpid-go/pkg/schema"
)

// integerWidths are the integer widths with native byte-serialization
// routines in the target.
var integerWidths = []uint{8, 16, 32, 64}

// floatWidths are the supported IEEE-754 widths.
var floatWidths = []uint{32, 64}

// prefixWidths are the supported length-prefix widths for unsized
// segments.
var prefixWidths = []uint{8, 16, 32}

// compileSegment compiles one packet segment into a write fragment. The
// context carries the enclosing payload name, the field prefix when the
// segment lives inside a struct instance, and the ancestor set for cycle
// detection.
func (g *Generator) compileSegment(ctx compileContext, seg schema.PacketSegment) (CodeChunk, error) {
	switch seg.Kind {
	case schema.SegmentSized:
		return g.compileSized(ctx, seg)
	case schema.SegmentUnsized:
		return g.compileUnsized(ctx, seg)
	case schema.SegmentStruct:
		return g.compileStructSegment(ctx, seg)
	default:
		return CodeChunk{}, fmt.Errorf("payload %q: field %q: unknown segment kind %s", ctx.payload, seg.Name, seg.Kind)
	}
}

// compileSized handles fixed-width segments. Width and alignment rules
// are checked here, per datatype, so every encoding stays independently
// testable.
func (g *Generator) compileSized(ctx compileContext, seg schema.PacketSegment) (CodeChunk, error) {
	name := ctx.prefix + seg.Name

	switch seg.Sized.Kind {
	case schema.SizedRaw:
		v := Var{Name: name, Datatype: fmt.Sprintf("[u8; %d]", byteLen(seg.Bits)), Desc: seg.Description}
		var code string
		if seg.Bits%8 == 0 {
			code = fmt.Sprintf("stream.put_bytes(&%s)?;\n", name)
		} else {
			code = fmt.Sprintf("stream.put_raw(&%s, %d)?;\n", name, seg.Bits)
		}
		return CodeChunk{Code: code, Inputs: []Var{v}}, nil

	case schema.SizedConst:
		literalBits := uint(len(seg.Sized.Const)) * 8
		if seg.Bits != literalBits {
			return CodeChunk{}, &SizeMismatchError{
				Payload:      ctx.payload,
				Field:        seg.Name,
				DeclaredBits: seg.Bits,
				LiteralBits:  literalBits,
			}
		}
		code := fmt.Sprintf("// %s\nstream.put_bytes(&[%s])?;\n", seg.Name, byteLiteral(seg.Sized.Const))
		return CodeChunk{Code: code}, nil

	case schema.SizedInteger:
		if !widthSupported(seg.Bits, integerWidths) {
			return CodeChunk{}, &UnsupportedWidthError{
				Payload:   ctx.payload,
				Field:     seg.Name,
				Bits:      seg.Bits,
				Supported: integerWidths,
			}
		}
		if seg.Sized.Signing == schema.OnesComplement {
			return CodeChunk{}, &UnsupportedSigningError{
				Payload: ctx.payload,
				Field:   seg.Name,
				Signing: seg.Sized.Signing.String(),
			}
		}
		v := Var{Name: name, Datatype: intType(seg.Bits, seg.Sized.Signing), Desc: seg.Description}
		code := fmt.Sprintf("stream.put_bytes(&%s.%s())?;\n", name, endianFn(seg.Sized.Endianness))
		return CodeChunk{Code: code, Inputs: []Var{v}}, nil

	case schema.SizedStringUTF8:
		if seg.Bits%8 != 0 {
			return CodeChunk{}, &NotByteAlignedError{Payload: ctx.payload, Field: seg.Name, Bits: seg.Bits}
		}
		v := Var{Name: name, Datatype: "&str", Desc: seg.Description}
		code := fmt.Sprintf("debug_assert_eq!(%s.len(), %d);\nstream.put_bytes(%s.as_bytes())?;\n",
			name, seg.Bits/8, name)
		return CodeChunk{Code: code, Inputs: []Var{v}}, nil

	case schema.SizedFloatIEEE:
		if !widthSupported(seg.Bits, floatWidths) {
			return CodeChunk{}, &UnsupportedWidthError{
				Payload:   ctx.payload,
				Field:     seg.Name,
				Bits:      seg.Bits,
				Supported: floatWidths,
			}
		}
		v := Var{Name: name, Datatype: floatType(seg.Bits), Desc: seg.Description}
		code := fmt.Sprintf("stream.put_bytes(&%s.%s())?;\n", name, endianFn(seg.Sized.Endianness))
		return CodeChunk{Code: code, Inputs: []Var{v}}, nil

	default:
		return CodeChunk{}, fmt.Errorf("payload %q: field %q: unknown sized datatype %s", ctx.payload, seg.Name, seg.Sized.Kind)
	}
}

// compileUnsized handles variable-width segments. The termination policy
// decides how a decoder finds the end: a length prefix written before the
// data, or a sentinel byte written after it.
func (g *Generator) compileUnsized(ctx compileContext, seg schema.PacketSegment) (CodeChunk, error) {
	term := seg.Termination
	if term.Kind == schema.TerminationLengthPrefixed && !widthSupported(term.PrefixBits, prefixWidths) {
		return CodeChunk{}, &UnsupportedWidthError{
			Payload:   ctx.payload,
			Field:     seg.Name,
			Bits:      term.PrefixBits,
			Supported: prefixWidths,
		}
	}

	name := ctx.prefix + seg.Name

	switch seg.Unsized.Kind {
	case schema.UnsizedRaw:
		v := Var{Name: name, Datatype: "&[u8]", Desc: seg.Description}
		var code string
		switch term.Kind {
		case schema.TerminationLengthPrefixed:
			code = fmt.Sprintf("%sstream.put_bytes(&(%s.len() as %s).to_be_bytes())?;\nstream.put_bytes(%s)?;\n",
				lenGuard(name, term.PrefixBits), name, prefixType(term.PrefixBits), name)
		case schema.TerminationDelimiter:
			code = fmt.Sprintf("stream.put_bytes(%s)?;\nstream.put_bytes(&[0x%02x])?;\n", name, term.Delimiter)
		}
		return CodeChunk{Code: code, Inputs: []Var{v}}, nil

	case schema.UnsizedStringUTF8:
		v := Var{Name: name, Datatype: "&str", Desc: seg.Description}
		var code string
		switch term.Kind {
		case schema.TerminationLengthPrefixed:
			code = fmt.Sprintf("%sstream.put_bytes(&(%s.len() as %s).to_be_bytes())?;\nstream.put_bytes(%s.as_bytes())?;\n",
				lenGuard(name, term.PrefixBits), name, prefixType(term.PrefixBits), name)
		case schema.TerminationDelimiter:
			code = fmt.Sprintf("stream.put_bytes(%s.as_bytes())?;\nstream.put_bytes(&[0x%02x])?;\n", name, term.Delimiter)
		}
		return CodeChunk{Code: code, Inputs: []Var{v}}, nil

	case schema.UnsizedArray:
		return g.compileArray(ctx, seg)

	default:
		return CodeChunk{}, fmt.Errorf("payload %q: field %q: unknown unsized datatype %s", ctx.payload, seg.Name, seg.Unsized.Kind)
	}
}

// compileArray emits a write loop over a slice of item structs. The item
// fields compile under the loop-variable prefix "item."; those inner
// variables stay scoped to the loop and the enclosing unit sees only the
// slice itself.
func (g *Generator) compileArray(ctx compileContext, seg schema.PacketSegment) (CodeChunk, error) {
	itemName := seg.Unsized.ItemStruct
	if ctx.inCycle(itemName) {
		return CodeChunk{}, &CyclicReferenceError{
			Payload: ctx.payload,
			Field:   seg.Name,
			Cycle:   append(append([]string{}, ctx.ancestors...), itemName),
		}
	}
	item, ok := g.schema.Struct(itemName)
	if !ok {
		return CodeChunk{}, &UnresolvedStructError{Payload: ctx.payload, Field: seg.Name, StructName: itemName}
	}

	inner, err := g.compileFields(ctx.child("item", itemName), item.Fields)
	if err != nil {
		return CodeChunk{}, err
	}

	name := ctx.prefix + seg.Name
	var b strings.Builder
	if seg.Termination.Kind == schema.TerminationLengthPrefixed {
		b.WriteString(lenGuard(name, seg.Termination.PrefixBits))
		fmt.Fprintf(&b, "stream.put_bytes(&(%s.len() as %s).to_be_bytes())?;\n",
			name, prefixType(seg.Termination.PrefixBits))
	}
	fmt.Fprintf(&b, "for item in %s.iter() {\n%s}\n", name, indent(inner.Code))
	if seg.Termination.Kind == schema.TerminationDelimiter {
		fmt.Fprintf(&b, "stream.put_bytes(&[0x%02x])?;\n", seg.Termination.Delimiter)
	}

	v := Var{
		Name:     name,
		Datatype: fmt.Sprintf("&[%s]", g.structType(itemName)),
		Desc:     seg.Description,
	}
	return CodeChunk{Code: b.String(), Inputs: []Var{v}}, nil
}

// compileStructSegment expands a struct reference inline. Every field of
// the referenced struct compiles under the "<field>." prefix; the
// enclosing unit depends on exactly one aggregate variable, the struct
// instance, never on the individual members.
func (g *Generator) compileStructSegment(ctx compileContext, seg schema.PacketSegment) (CodeChunk, error) {
	if ctx.inCycle(seg.StructName) {
		return CodeChunk{}, &CyclicReferenceError{
			Payload: ctx.payload,
			Field:   seg.Name,
			Cycle:   append(append([]string{}, ctx.ancestors...), seg.StructName),
		}
	}

	rs, ok := g.schema.Struct(seg.StructName)
	if !ok {
		return CodeChunk{}, &UnresolvedStructError{Payload: ctx.payload, Field: seg.Name, StructName: seg.StructName}
	}

	inner, err := g.compileFields(ctx.child(seg.Name, seg.StructName), rs.Fields)
	if err != nil {
		return CodeChunk{}, err
	}

	desc := seg.Description
	if desc == "" {
		desc = rs.Description
	}
	aggregate := Var{Name: ctx.prefix + seg.Name, Datatype: g.structType(seg.StructName), Desc: desc}

	code := fmt.Sprintf("// %s: %s\n%s", seg.Name, seg.StructName, inner.Code)
	return CodeChunk{Code: code, Inputs: []Var{aggregate}}, nil
}

// compileFields compiles an ordered field list and concatenates the
// fragments. Used for struct expansion and array loop bodies; the caller
// decides what happens to the inner inputs. Field names must be unique
// within the list, otherwise two wire fields would read the same member.
func (g *Generator) compileFields(ctx compileContext, fields []schema.PacketSegment) (CodeChunk, error) {
	var out CodeChunk
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return CodeChunk{}, &DuplicateVariableError{Payload: ctx.payload, Name: ctx.prefix + f.Name}
		}
		seen[f.Name] = true
		chunk, err := g.compileSegment(ctx, f)
		if err != nil {
			return CodeChunk{}, err
		}
		out = out.append(chunk)
	}
	return out, nil
}

func widthSupported(bits uint, supported []uint) bool {
	for _, w := range supported {
		if bits == w {
			return true
		}
	}
	return false
}
