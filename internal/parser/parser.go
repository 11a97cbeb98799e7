package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	stderrors "errors"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/mcncl/cyd/internal/errors"
	"github.com/mcncl/cyd/internal/models"
)

// Parse decodes the full input bytes in the given format and returns a
// Document holding the normalized generic value. The whole input must be
// buffered by the caller; TOML in particular cannot be parsed incrementally.
func Parse(data []byte, format models.Format) (models.Document, error) {
	var (
		root models.Value
		err  error
	)
	switch format {
	case models.FormatJSON:
		root, err = parseJSON(data)
	case models.FormatTOML:
		root, err = parseTOML(data)
	case models.FormatYAML:
		root, err = parseYAML(data)
	default:
		// The config layer validates format names before we get here, but
		// handle it rather than assume.
		return models.Document{}, errors.NewConfigError(
			fmt.Sprintf("unknown input format %q", format),
			errors.ErrUnknownFormat,
		)
	}
	if err != nil {
		return models.Document{}, err
	}
	return models.Document{Root: root, Source: format}, nil
}

// parseJSON decodes a single JSON value, rejecting trailing data
func parseJSON(data []byte) (models.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Ensure numbers are read as json.Number

	var raw interface{}
	if err := decoder.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxErr *json.SyntaxError
		if stderrors.As(err, &syntaxErr) {
			return nil, errors.NewParseError(
				fmt.Sprintf("invalid JSON at offset %d: %v", syntaxErr.Offset, syntaxErr),
				err,
			)
		}
		return nil, errors.NewParseError(fmt.Sprintf("invalid JSON: %v", err), err)
	}

	// Exactly one top-level value is allowed. Trailing whitespace is fine,
	// a second value is not.
	var trailing interface{}
	if err := decoder.Decode(&trailing); err == nil {
		return nil, errors.NewParseError("invalid JSON: multiple values at the document root", nil)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParseError(fmt.Sprintf("invalid JSON: trailing data after document: %v", err), err)
	}

	return normalize(raw)
}

// parseTOML decodes a complete TOML document
func parseTOML(data []byte) (models.Value, error) {
	var raw interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		var decodeErr *toml.DecodeError
		if stderrors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, errors.NewParseError(
				fmt.Sprintf("invalid TOML at line %d, column %d: %s", row, col, decodeErr.Error()),
				err,
			)
		}
		return nil, errors.NewParseError(fmt.Sprintf("invalid TOML: %v", err), err)
	}
	return normalize(raw)
}

// parseYAML decodes a YAML document. Decoding into a plain interface{}
// would stringify non-string mapping keys before we could see them, so
// mappings are decoded as ordered yaml.MapSlice values whose keys keep
// their decoded types; normalize rejects the non-string ones.
func parseYAML(data []byte) (models.Value, error) {
	var raw interface{}
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		// goccy errors already carry [line:column] positions in the message
		return nil, errors.NewParseError(fmt.Sprintf("invalid YAML: %v", err), err)
	}
	return normalize(raw)
}

// normalize converts the decoded library types into the generic value model.
// Numbers collapse to int64/float64, mappings to Object, sequences to Array.
// Values the common model cannot represent are rejected here rather than
// silently coerced to strings by a later encoder.
func normalize(val interface{}) (models.Value, error) {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.Object, len(v))
		for key, value := range v {
			norm, err := normalize(value)
			if err != nil {
				return nil, err
			}
			obj[key] = norm
		}
		return obj, nil
	case yaml.MapSlice:
		obj := make(models.Object, len(v))
		for _, item := range v {
			name, ok := item.Key.(string)
			if !ok {
				return nil, errors.NewParseError(
					fmt.Sprintf("mapping key %v (%T) is not a string", item.Key, item.Key),
					errors.ErrNonStringKey,
				)
			}
			norm, err := normalize(item.Value)
			if err != nil {
				return nil, err
			}
			obj[name] = norm
		}
		return obj, nil
	case []interface{}:
		arr := make(models.Array, len(v))
		for i, value := range v {
			norm, err := normalize(value)
			if err != nil {
				return nil, err
			}
			arr[i] = norm
		}
		return arr, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
		return nil, errors.NewParseError(
			fmt.Sprintf("number %q does not fit in the value model", v.String()),
			errors.ErrUnsupportedValue,
		)
	case uint64:
		// YAML integers decode unsigned; fold into int64 so numeric values
		// compare equal across formats.
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
		return v, nil
	case int:
		return int64(v), nil
	case time.Time:
		return nil, errors.NewParseError(
			"date-time values have no representation in the common value model",
			errors.ErrUnsupportedValue,
		)
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return nil, errors.NewParseError(
			"local date-time values have no representation in the common value model",
			errors.ErrUnsupportedValue,
		)
	default:
		// Primitives (string, int64, float64, bool, nil) pass through as is
		return v, nil
	}
}
