package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/mcncl/cyd/internal/errors"
	"github.com/mcncl/cyd/internal/models"
)

// Serialize encodes a parsed document in the given output format. The
// document's source format is only consulted for diagnostics; encoding
// dispatches on the shape of the value alone.
func Serialize(doc models.Document, format models.Format) ([]byte, error) {
	switch format {
	case models.FormatJSON:
		return serializeJSON(doc)
	case models.FormatTOML:
		return serializeTOML(doc)
	case models.FormatYAML:
		return serializeYAML(doc)
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("unknown output format %q", format),
			errors.ErrUnknownFormat,
		)
	}
}

// serializeJSON emits compact JSON with no trailing newline
func serializeJSON(doc models.Document) ([]byte, error) {
	out, err := json.Marshal(doc.Root)
	if err != nil {
		// NaN/Infinity from a YAML source land here as an unsupported value
		return nil, errors.NewSerializeError(fmt.Sprintf("cannot encode %s value as JSON: %v", doc.Source.Display(), err), err)
	}
	return out, nil
}

// serializeTOML emits a complete TOML document. TOML has no notion of a
// non-table document root, so sequences and scalars are rejected up front.
func serializeTOML(doc models.Document) ([]byte, error) {
	root, ok := doc.Root.(models.Object)
	if !ok {
		return nil, errors.NewSerializeError(
			fmt.Sprintf("cannot encode %s %s as a TOML document: the root must be a table", doc.Source.Display(), describe(doc.Root)),
			errors.ErrRootNotTable,
		)
	}
	out, err := toml.Marshal(root)
	if err != nil {
		return nil, errors.NewSerializeError(fmt.Sprintf("cannot encode %s value as TOML: %v", doc.Source.Display(), err), err)
	}
	return out, nil
}

// serializeYAML emits block-style YAML with a trailing newline
func serializeYAML(doc models.Document) ([]byte, error) {
	out, err := yaml.Marshal(doc.Root)
	if err != nil {
		return nil, errors.NewSerializeError(fmt.Sprintf("cannot encode %s value as YAML: %v", doc.Source.Display(), err), err)
	}
	return out, nil
}

// describe names a value's shape for error messages
func describe(v models.Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case models.Array:
		return "sequence"
	case models.Object:
		return "mapping"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
