package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpid/openpid-go/pkg/codegen"
	"github.com/openpid/openpid-go/pkg/schema"
)

func testArtifact() *codegen.Artifact {
	return &codegen.Artifact{
		Device: schema.DeviceInfo{
			Name:        "Motor Controller",
			Description: "Stepper motor controller",
			DocVersion:  "1.2",
		},
		Structs: []codegen.CodeChunk{
			{Code: "pub struct header_t {\n    pub seq: u8,\n}\n"},
		},
		Payloads: []codegen.CodeChunk{
			{Code: "pub fn ping<W: Write>(stream: &mut BitStream<W>) -> Result<(), W::Error> {\n    Ok(())\n}\n"},
		},
	}
}

func TestWrite_CrateLayout(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zerolog.Nop())

	require.NoError(t, s.Write(testArtifact()))

	manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `name = "motor-controller"`)
	assert.Contains(t, string(manifest), `version = "1.2.0"`)
	assert.Contains(t, string(manifest), `description = "Stepper motor controller"`)
	assert.Contains(t, string(manifest), `embedded-io`)

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), "Cargo.lock")

	lib, err := os.ReadFile(filepath.Join(dir, "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(lib), "#![no_std]")
	assert.Contains(t, string(lib), "pub struct BitStream")
	assert.Contains(t, string(lib), "pub struct header_t")
	assert.Contains(t, string(lib), "pub fn ping")
}

func TestWrite_DefaultVersion(t *testing.T) {
	dir := t.TempDir()
	art := testArtifact()
	art.Device.DocVersion = ""

	require.NoError(t, New(dir, zerolog.Nop()).Write(art))

	manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `version = "0.1.0"`)
}

func TestWrite_BadVersion(t *testing.T) {
	dir := t.TempDir()
	art := testArtifact()
	art.Device.DocVersion = "not-a-version"

	err := New(dir, zerolog.Nop()).Write(art)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doc_version")
}

func TestWrite_MajorVersionBumpWarning(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, New(dir, zerolog.Nop()).Write(testArtifact()))

	// Same major: silent regeneration.
	var buf bytes.Buffer
	art := testArtifact()
	art.Device.DocVersion = "1.9"
	require.NoError(t, New(dir, zerolog.New(&buf)).Write(art))
	assert.NotContains(t, buf.String(), "major version changed")

	// Major bump over the manifest written above: warn, still write.
	buf.Reset()
	art.Device.DocVersion = "2.0"
	require.NoError(t, New(dir, zerolog.New(&buf)).Write(art))
	assert.Contains(t, buf.String(), "major version changed")
	assert.Contains(t, buf.String(), `"previous":"1.9.0"`)
	assert.Contains(t, buf.String(), `"next":"2.0.0"`)

	manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `version = "2.0.0"`)
}

func TestWrite_Deterministic(t *testing.T) {
	art := testArtifact()

	read := func() string {
		dir := t.TempDir()
		require.NoError(t, New(dir, zerolog.Nop()).Write(art))
		lib, err := os.ReadFile(filepath.Join(dir, "src", "lib.rs"))
		require.NoError(t, err)
		manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
		require.NoError(t, err)
		return string(manifest) + string(lib)
	}

	first := read()
	assert.Equal(t, first, read(), "repeated runs must be byte-identical")
}

func TestManifestEscaping(t *testing.T) {
	dir := t.TempDir()
	art := testArtifact()
	art.Device.Description = "line1\nline2 \"quoted\" back\\slash"

	require.NoError(t, New(dir, zerolog.Nop()).Write(art))

	manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `line1\nline2 \"quoted\" back\\slash`)
	assert.NotContains(t, string(manifest), "line1\nline2")
}

func TestCrateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Motor Controller", "motor-controller"},
		{"bme280", "bme280"},
		{"weird!@#name", "weirdname"},
		{"", "openpid-driver"},
		{"!!!", "openpid-driver"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CrateName(tt.in), "CrateName(%q)", tt.in)
	}
}
