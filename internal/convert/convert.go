package convert

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/mcncl/cyd/internal/errors"
	"github.com/mcncl/cyd/internal/models"
	"github.com/mcncl/cyd/internal/parser"
	"github.com/mcncl/cyd/internal/serializer"
)

// Run performs one conversion: read all of r, parse it as the input format,
// re-serialize as the output format and write the result to w. Every failure
// is terminal and typed by stage; there is no retry or partial recovery.
func Run(r io.Reader, w io.Writer, input, output models.Format) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.NewInputError("failed to read standard input", err)
	}

	// All three formats are text; reject binary garbage before the format
	// libraries see it.
	if !utf8.Valid(data) {
		return errors.NewInputError("input is not valid UTF-8", errors.ErrInvalidUTF8)
	}

	// None of the three formats defines an empty document as a valid
	// top-level value (TOML would read whitespace as an empty table, which
	// is never what a pipe producing nothing meant).
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	doc, err := parser.Parse(data, input)
	if err != nil {
		return err
	}

	out, err := serializer.Serialize(doc, output)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return errors.NewOutputError("failed to write to standard output", err)
	}
	return nil
}
