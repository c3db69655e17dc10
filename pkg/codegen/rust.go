package codegen

import (
	"fmt"
	"strings"

	"github.com/openpid/openpid-go/pkg/schema"
)

// tab is one level of indentation in generated code.
const tab = "    "

// byteLen returns the number of whole bytes covering a bit count.
func byteLen(bits uint) uint {
	return (bits + 7) / 8
}

// intType maps a validated integer width and signing to the target type.
func intType(bits uint, signing schema.Signing) string {
	prefix := "u"
	if signing == schema.TwosComplement {
		prefix = "i"
	}
	return fmt.Sprintf("%s%d", prefix, bits)
}

// floatType maps a validated float width to the target type.
func floatType(bits uint) string {
	return fmt.Sprintf("f%d", bits)
}

// endianFn returns the byte-conversion method for the given byte order.
func endianFn(e schema.Endianness) string {
	if e == schema.LittleEndian {
		return "to_le_bytes"
	}
	return "to_be_bytes"
}

// prefixType returns the unsigned type of a validated length-prefix width.
func prefixType(bits uint) string {
	return fmt.Sprintf("u%d", bits)
}

// lenGuard emits a debug assertion that a length fits its prefix. The
// `as` cast after it truncates silently, so overlong input must be
// caught before the prefix is written.
func lenGuard(name string, prefixBits uint) string {
	return fmt.Sprintf("debug_assert!(%s.len() <= %s::MAX as usize);\n", name, prefixType(prefixBits))
}

// structType returns the type expression used when a struct appears as a
// function parameter or slice element. Structs holding borrowed data take
// an elided lifetime.
func (g *Generator) structType(name string) string {
	if g.lifetimes[name] {
		return name + "<'_>"
	}
	return name
}

// structFieldType is structType for use inside another struct definition,
// where the lifetime cannot be elided.
func (g *Generator) structFieldType(name string) string {
	if g.lifetimes[name] {
		return name + "<'a>"
	}
	return name
}

// byteLiteral renders bytes as a target-language byte-slice literal body.
func byteLiteral(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ", ")
}

// indent shifts every non-empty line of a fragment one level right.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = tab + line
		}
	}
	return strings.Join(lines, "\n")
}

// docLines renders free text as a doc comment, one "/// " line per input
// line. Returns "" for empty text.
func docLines(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("/// ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
