package openpid_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpid/openpid-go/pkg/codegen"
	"github.com/openpid/openpid-go/pkg/scaffold"
	"github.com/openpid/openpid-go/pkg/schemaparse"
)

// integrationSchema exercises the whole pipeline: constants, integers in
// both byte orders, floats, strings, a nested struct, a sub-byte raw run
// and a length-prefixed array.
const integrationSchema = `
[device]
name = "enviro-node"
description = "Environmental sensing node"
doc_version = "1.0"

[structs.sample_t]
description = "One measurement sample"

[[structs.sample_t.fields]]
name = "channel"
type = "integer"
bits = 8

[[structs.sample_t.fields]]
name = "value"
type = "float"
bits = 32
endianness = "little"

[structs.frame_hdr_t]
description = "Frame header"

[[structs.frame_hdr_t.fields]]
name = "sync"
type = "const"
bits = 16
value = [0x55, 0xAA]

[[structs.frame_hdr_t.fields]]
name = "seq"
type = "integer"
bits = 16

[payloads.report]
description = "Uploads buffered samples"

[[payloads.report.segments]]
name = "hdr"
type = "struct"
struct = "frame_hdr_t"

[[payloads.report.segments]]
name = "flags"
type = "raw"
bits = 3

[[payloads.report.segments]]
name = "samples"
description = "Buffered samples, oldest first"
type = "array"
item = "sample_t"
  [payloads.report.segments.termination]
  kind = "length_prefixed"
  prefix_bits = 8

[payloads.set_name]
description = "Renames the node"

[[payloads.set_name.segments]]
name = "name"
description = "New node name"
type = "string"
  [payloads.set_name.segments.termination]
  kind = "delimiter"
  delimiter = 0
`

// TestGenerateEndToEnd compiles a schema from disk and writes the crate,
// then checks the layout and the compiled semantics in one pass.
func TestGenerateEndToEnd(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "enviro.toml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(integrationSchema), 0o644))

	s, err := schemaparse.Load(schemaPath)
	require.NoError(t, err)

	art, err := codegen.NewGenerator(s).CompileSchema()
	require.NoError(t, err)
	require.Len(t, art.Structs, 2)
	require.Len(t, art.Payloads, 2)

	out := filepath.Join(t.TempDir(), "crate")
	require.NoError(t, scaffold.New(out, zerolog.Nop()).Write(art))

	lib, err := os.ReadFile(filepath.Join(out, "src", "lib.rs"))
	require.NoError(t, err)
	text := string(lib)

	// Fixed runtime contract first.
	assert.True(t, strings.HasPrefix(text, "#![no_std]"))
	assert.Contains(t, text, "pub struct BitStream")

	// Struct definitions, in sorted order, before the payloads.
	frameIdx := strings.Index(text, "pub struct frame_hdr_t")
	sampleIdx := strings.Index(text, "pub struct sample_t")
	reportIdx := strings.Index(text, "pub fn report")
	require.True(t, frameIdx > 0 && sampleIdx > 0 && reportIdx > 0)
	assert.Less(t, frameIdx, sampleIdx)
	assert.Less(t, sampleIdx, reportIdx)

	// Nested struct members travel through the aggregate parameter.
	assert.Contains(t, text, "hdr.seq.to_be_bytes()")
	assert.Contains(t, text, "0x55, 0xaa")

	// Sub-byte raw run goes through the leftover-merging path.
	assert.Contains(t, text, "put_raw(&flags, 3)")

	// Array loop with its length prefix.
	assert.Contains(t, text, "samples.len() as u8")
	assert.Contains(t, text, "item.value.to_le_bytes()")

	// Delimiter-terminated string.
	assert.Contains(t, text, "name.as_bytes()")
	assert.Contains(t, text, "put_bytes(&[0x00])")
}

// TestGenerateDeterministic regenerates the same schema and requires
// byte-identical output files.
func TestGenerateDeterministic(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "enviro.toml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(integrationSchema), 0o644))

	generate := func() (string, string) {
		s, err := schemaparse.Load(schemaPath)
		require.NoError(t, err)
		art, err := codegen.NewGenerator(s).CompileSchema()
		require.NoError(t, err)

		out := t.TempDir()
		require.NoError(t, scaffold.New(out, zerolog.Nop()).Write(art))

		lib, err := os.ReadFile(filepath.Join(out, "src", "lib.rs"))
		require.NoError(t, err)
		manifest, err := os.ReadFile(filepath.Join(out, "Cargo.toml"))
		require.NoError(t, err)
		return string(lib), string(manifest)
	}

	lib1, man1 := generate()
	for i := 0; i < 5; i++ {
		lib2, man2 := generate()
		require.Equal(t, lib1, lib2, "lib.rs differs on run %d", i)
		require.Equal(t, man1, man2, "Cargo.toml differs on run %d", i)
	}
}
