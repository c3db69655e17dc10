// Package scaffold writes compiled code into a target crate layout.
//
// The scaffolder is deliberately dumb: it receives finished code chunks
// and device metadata from the compiler, renders the manifest, and
// performs filesystem I/O. It never inspects generated code text.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/openpid/openpid-go/pkg/codegen"
	"github.com/openpid/openpid-go/pkg/version"
)

// Scaffolder writes a generated driver crate to a directory.
type Scaffolder struct {
	target string
	log    zerolog.Logger
}

// New creates a scaffolder writing under target.
func New(target string, log zerolog.Logger) *Scaffolder {
	return &Scaffolder{target: target, log: log}
}

// Write lays out the crate: manifest, ignore file, and src/lib.rs with
// the bit-stream preamble, struct definitions and payload functions.
// I/O errors surface unchanged.
func (s *Scaffolder) Write(art *codegen.Artifact) error {
	if err := os.MkdirAll(filepath.Join(s.target, "src"), 0o755); err != nil {
		return err
	}

	crateVersion, err := version.CrateVersion(art.Device.DocVersion)
	if err != nil {
		return fmt.Errorf("doc_version: %w", err)
	}
	if art.Device.DocVersion == "" {
		s.log.Warn().
			Str("device", art.Device.Name).
			Str("version", crateVersion).
			Msg("schema has no doc_version, defaulting crate version")
	}
	s.warnMajorBump(crateVersion)

	manifest, err := renderManifest(manifestData{
		Name:        CrateName(art.Device.Name),
		Version:     crateVersion,
		Description: art.Device.Description,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.target, "Cargo.toml"), []byte(manifest), 0o644); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.target, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return err
	}

	lib := renderLib(art)
	if err := os.WriteFile(filepath.Join(s.target, "src", "lib.rs"), []byte(lib), 0o644); err != nil {
		return err
	}

	s.log.Info().
		Str("crate", CrateName(art.Device.Name)).
		Str("target", s.target).
		Int("structs", len(art.Structs)).
		Int("payloads", len(art.Payloads)).
		Msg("wrote generated crate")
	return nil
}

// warnMajorBump compares the next crate version against the manifest
// already in the target, if any. A major version change means existing
// consumers of the driver break on regeneration; that is worth a warning
// but never blocks the write.
func (s *Scaffolder) warnMajorBump(next string) {
	prev, ok := s.previousCrateVersion()
	if !ok {
		return
	}
	pv, err := version.Parse(prev)
	if err != nil {
		return
	}
	nv, err := version.Parse(next)
	if err != nil {
		return
	}
	if !pv.Compatible(nv) {
		s.log.Warn().
			Str("previous", pv.String()).
			Str("next", nv.String()).
			Msg("major version changed, regenerated driver breaks existing consumers")
	}
}

// previousCrateVersion reads the version out of a manifest left by an
// earlier run. An absent or hand-edited manifest reports false; it must
// never block regeneration.
func (s *Scaffolder) previousCrateVersion() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.target, "Cargo.toml"))
	if err != nil {
		return "", false
	}
	var m struct {
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &m); err != nil || m.Package.Version == "" {
		return "", false
	}
	return m.Package.Version, true
}

// renderLib assembles src/lib.rs: fixed preamble, then struct
// definitions, then payload functions, each already in deterministic
// order from the compiler.
func renderLib(art *codegen.Artifact) string {
	var b strings.Builder
	b.WriteString(codegen.RuntimePreamble)
	for _, chunk := range art.Structs {
		b.WriteString("\n")
		b.WriteString(chunk.Code)
	}
	for _, chunk := range art.Payloads {
		b.WriteString("\n")
		b.WriteString(chunk.Code)
	}
	return b.String()
}

// CrateName converts a device name into a valid crate name: lowercase,
// spaces to dashes, everything else outside [a-z0-9_-] dropped.
func CrateName(device string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(device) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "openpid-driver"
	}
	return b.String()
}

type manifestData struct {
	Name        string
	Version     string
	Description string
}

// Schema strings are user input headed into a TOML manifest; escaping
// them closes an injection hole for hostile schema files.
var manifestTmpl = template.Must(template.New("Cargo.toml").Funcs(template.FuncMap{
	"escape": escapeTOML,
}).Parse(`[package]
name = "{{escape .Name}}"
version = "{{escape .Version}}"
edition = "2021"
authors = ["OpenPID Codegen"]
description = "{{escape .Description}}"
categories = ["embedded", "no-std", "parser-implementations", "hardware-support"]
keywords = ["driver", "openpid"]

[dependencies]
embedded-hal = "1"

# For serial/UART stream representation
embedded-io = "0.6.1"
`))

func renderManifest(data manifestData) (string, error) {
	var b strings.Builder
	if err := manifestTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering manifest: %w", err)
	}
	return b.String(), nil
}

// escapeTOML escapes a string for a double-quoted TOML value.
func escapeTOML(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

const gitignore = `target/
Cargo.lock
**/*.rs.bk
debug/
*.pdb
`
