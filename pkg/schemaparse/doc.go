// Package schemaparse loads persisted OpenPID protocol descriptions into
// the schema model.
//
// Two on-disk formats are supported: TOML (the original interchange
// format) and YAML. Both decode into the same raw form and pass through
// the same conversion, so a description can be translated between
// formats without semantic drift.
//
// The loader owns shape validation: known datatype and enum strings,
// identifier-safe names, unique struct keys, required attributes per
// datatype. Cross-reference resolution (a segment naming a missing
// struct) is left to the compiler, which reports it with payload and
// field attribution.
package schemaparse
