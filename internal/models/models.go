package models

import (
	"strings"
)

// Value is a generic type to represent any document value.
// This can be a string, number, boolean, null, object, or array.
type Value interface{}

// Object represents a document mapping, which is a map of strings to Values.
type Object map[string]Value

// Array represents a document sequence, which is a slice of Values.
type Array []Value

// Format identifies one of the supported serialization formats.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ValidFormats lists the format names accepted on the command line.
var ValidFormats = []string{
	string(FormatJSON),
	string(FormatTOML),
	string(FormatYAML),
}

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	return string(f)
}

// Display returns the format name as it appears in diagnostics.
func (f Format) Display() string {
	return strings.ToUpper(string(f))
}

// FormatList returns the valid format names joined for error messages,
// e.g. "json, toml, yaml".
func FormatList() string {
	return strings.Join(ValidFormats, ", ")
}

// Document holds a parsed value together with the format that produced it.
// Source exists only for diagnostics; serialization dispatches on the shape
// of Root alone.
type Document struct {
	Root   Value
	Source Format
}
