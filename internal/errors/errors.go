package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrInvalidUTF8      = errors.New("input is not valid UTF-8 text")
	ErrUnknownFormat    = errors.New("unknown format name")
	ErrMissingFormat    = errors.New("no format specified")
	ErrNonStringKey     = errors.New("mapping key is not a string")
	ErrUnsupportedValue = errors.New("value has no representation in the common value model")
	ErrRootNotTable     = errors.New("TOML documents must have a table at the root")
)

// ErrorType categorizes errors by the stage that produced them
type ErrorType string

const (
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeParse     ErrorType = "parse"
	ErrorTypeSerialize ErrorType = "serialize"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewConfigError creates a new error related to format selection
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading standard input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a new error related to decoding the input document
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewSerializeError creates a new error related to encoding the output document
func NewSerializeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSerialize,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing standard output
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeSerialize:
			return fmt.Sprintf("Serialize error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Errors that never got wrapped in an AppError
	return fmt.Sprintf("Error: %v", err)
}
