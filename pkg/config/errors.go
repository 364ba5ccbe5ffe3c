package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrConfigNotFound is returned when the config directory or a file it
	// references does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidYAML is returned when warehousecfg.yaml cannot be decoded.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrValidationFailed wraps every error reported by ConfigValidator.
	ErrValidationFailed = errors.New("configuration validation failed")

	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidValue         = errors.New("invalid field value")
)

// ValidationError locates a rejected setting by YAML section and key.
type ValidationError struct {
	Section string // http, explain or ingestion
	Field   string // YAML key inside the section; empty for the whole section
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("%s: field '%s': %v", e.Section, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a ValidationError for section and field.
func NewValidationError(section, field string, err error) *ValidationError {
	return &ValidationError{Section: section, Field: field, Err: err}
}

// LoadError reports a configuration file that could not be read or parsed.
// Dir is the configuration directory; File is relative to it.
type LoadError struct {
	Dir  string
	File string
	Err  error
}

// Path is the file location on disk.
func (e *LoadError) Path() string {
	return filepath.Join(e.Dir, e.File)
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError builds a LoadError for file inside dir.
func NewLoadError(dir, file string, err error) *LoadError {
	return &LoadError{Dir: dir, File: file, Err: err}
}
