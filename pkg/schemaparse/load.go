package schemaparse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/openpid/openpid-go/pkg/schema"
)

// Format identifies a schema file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("cannot tell schema format from extension of %q (want .toml, .yaml or .yml)", path)
	}
}

// Parse parses schema data in the given format.
func Parse(data []byte, format Format) (*schema.Schema, error) {
	var raw rawSchema
	switch format {
	case FormatTOML:
		// TOML rejects duplicate keys itself, so duplicate struct or
		// payload names fail here.
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown schema format %q", format)
	}
	return convert(&raw)
}

// Load reads and parses a schema file, picking the format from the
// extension.
func Load(path string) (*schema.Schema, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
