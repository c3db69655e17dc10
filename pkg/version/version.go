// Package version parses and compares protocol document versions.
//
// A schema's doc_version follows "major.minor" or "major.minor.patch".
// The generated crate reuses it as its package version, so the
// scaffolder validates it here before writing a manifest.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Default is the crate version used when a schema declares none.
const Default = "0.1.0"

// DocVersion is a parsed document version.
type DocVersion struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor" or "major.minor.patch" version string.
func Parse(s string) (DocVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return DocVersion{}, fmt.Errorf("invalid version %q: expected major.minor[.patch]", s)
	}

	nums := make([]uint16, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil || part == "" {
			return DocVersion{}, fmt.Errorf("invalid version %q: bad component %q", s, part)
		}
		nums[i] = uint16(n)
	}

	return DocVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v DocVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible returns true if the other version has the same major
// version. Regenerating a driver from a document with a different major
// version is a breaking change for its consumers.
func (v DocVersion) Compatible(other DocVersion) bool {
	return v.Major == other.Major
}

// CrateVersion normalizes a schema doc version for the generated
// manifest: empty input falls back to Default, anything else must parse.
func CrateVersion(docVersion string) (string, error) {
	if docVersion == "" {
		return Default, nil
	}
	v, err := Parse(docVersion)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
