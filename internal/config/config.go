package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcncl/cyd/internal/errors"
	"github.com/mcncl/cyd/internal/models"
)

// Environment variables that provide defaults for the two format flags.
// Their values are resolved here and never echoed into help output.
const (
	EnvInput  = "CYD_INPUT"
	EnvOutput = "CYD_OUTPUT"
)

// Config holds the resolved input and output formats for one invocation
type Config struct {
	Input  models.Format
	Output models.Format
}

// Resolve determines the input and output formats from the CLI flag values,
// falling back to the CYD_INPUT / CYD_OUTPUT environment variables when a
// flag is absent. The flag always wins when both are present. Resolution
// happens before any stdin read so a bad format name fails fast.
func Resolve(inputFlag, outputFlag string) (*Config, error) {
	input, err := resolveFormat(inputFlag, EnvInput, "--input")
	if err != nil {
		return nil, err
	}
	output, err := resolveFormat(outputFlag, EnvOutput, "--output")
	if err != nil {
		return nil, err
	}
	return &Config{Input: input, Output: output}, nil
}

// resolveFormat applies flag-over-environment precedence for a single format
func resolveFormat(flagValue, envVar, flagName string) (models.Format, error) {
	name := flagValue
	if name == "" {
		name = os.Getenv(envVar)
	}
	if strings.TrimSpace(name) == "" {
		return "", errors.NewConfigError(
			fmt.Sprintf("no format specified for %s (set the flag or %s)", flagName, envVar),
			errors.ErrMissingFormat,
		)
	}
	return ParseFormat(name)
}

// ParseFormat matches a format name case-insensitively against the allow-list
func ParseFormat(name string) (models.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(models.FormatJSON):
		return models.FormatJSON, nil
	case string(models.FormatTOML):
		return models.FormatTOML, nil
	case string(models.FormatYAML):
		return models.FormatYAML, nil
	default:
		return "", errors.NewConfigError(
			fmt.Sprintf("unknown format %q (valid formats: %s)", name, models.FormatList()),
			errors.ErrUnknownFormat,
		)
	}
}
