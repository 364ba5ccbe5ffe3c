package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
)

// ConfigValidator validates configuration comprehensively with clear error messages
type ConfigValidator struct {
	cfg    *Config
	fields *validator.Validate
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	fields := validator.New()
	// Report YAML names so errors match what users wrote
	fields.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	return &ConfigValidator{
		cfg:    cfg,
		fields: fields,
	}
}

// ValidateAll performs comprehensive validation (fail-fast - stops at first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateHTTP(); err != nil {
		return fmt.Errorf("http validation failed: %w", err)
	}

	if err := v.validateExplain(); err != nil {
		return fmt.Errorf("explain validation failed: %w", err)
	}

	if err := v.validateIngestion(); err != nil {
		return fmt.Errorf("ingestion validation failed: %w", err)
	}

	return nil
}

func (v *ConfigValidator) validateHTTP() error {
	h := v.cfg.HTTP
	if h == nil {
		return NewValidationError("http", "", fmt.Errorf("%w: http section is nil", ErrMissingRequiredField))
	}

	err := v.fields.Struct(h)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return NewValidationError("http", fe.Field(), ErrMissingRequiredField)
		}
		return NewValidationError("http", fe.Field(), fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return NewValidationError("http", "", err)
}

func (v *ConfigValidator) validateExplain() error {
	e := v.cfg.Explain
	if e == nil {
		return NewValidationError("explain", "", fmt.Errorf("%w: explain section is nil", ErrMissingRequiredField))
	}
	if !e.DefaultLevel.IsValid() {
		return NewValidationError("explain", "default_level",
			fmt.Errorf("%w: unknown level %q", ErrInvalidValue, e.DefaultLevel))
	}
	return nil
}

func (v *ConfigValidator) validateIngestion() error {
	in := v.cfg.Ingestion
	if in == nil {
		return NewValidationError("ingestion", "", fmt.Errorf("%w: ingestion section is nil", ErrMissingRequiredField))
	}
	if in.SupervisorType != tuning.SupervisorType {
		return NewValidationError("ingestion", "supervisor_type",
			fmt.Errorf("%w: unsupported supervisor type %q", ErrInvalidValue, in.SupervisorType))
	}
	if in.ReloadInterval < 0 {
		return NewValidationError("ingestion", "reload_interval",
			fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	for _, path := range v.cfg.SpecFilePaths() {
		if _, err := os.Stat(path); err != nil {
			return NewValidationError("ingestion", "spec_files",
				fmt.Errorf("%w: %s", ErrConfigNotFound, path))
		}
	}
	return nil
}
