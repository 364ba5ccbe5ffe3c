package tuning

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument indicates the document is not well-formed JSON/YAML
	ErrInvalidDocument = errors.New("invalid tuning config document")

	// ErrMissingType indicates the "type" discriminator is absent
	ErrMissingType = errors.New("missing type discriminator")

	// ErrUnsupportedType indicates the "type" discriminator names another supervisor
	ErrUnsupportedType = errors.New("unsupported tuning config type")
)

// ParseError wraps a decoding failure with the offending property.
// Field is empty when the document as a whole could not be parsed.
type ParseError struct {
	Field string // Wire name of the property
	Err   error  // Underlying error
}

// Error returns formatted error message
func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v", e.Err)
	}
	return fmt.Sprintf("field '%s': %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new parse error
func NewParseError(field string, err error) *ParseError {
	return &ParseError{
		Field: field,
		Err:   err,
	}
}
