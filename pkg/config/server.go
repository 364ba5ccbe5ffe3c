package config

import (
	"time"

	"github.com/codeready-toolchain/warehousecfg/pkg/explain"
	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
)

// HTTPConfig controls the introspection API listener.
type HTTPConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr" validate:"required"`

	// ReadTimeout bounds reading a request, body included.
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"gt=0"`

	// ShutdownTimeout is the max time to drain in-flight requests on shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`

	// MaxBodyBytes caps request bodies accepted by the API.
	MaxBodyBytes int64 `yaml:"max_body_bytes" validate:"gt=0"`
}

// DefaultHTTPConfig returns the built-in listener defaults.
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}

// ExplainConfig controls explain rendering.
type ExplainConfig struct {
	// DefaultLevel is used when a request names no level.
	DefaultLevel explain.Level `yaml:"default_level"`
}

// DefaultExplainConfig returns the built-in explain defaults.
func DefaultExplainConfig() *ExplainConfig {
	return &ExplainConfig{DefaultLevel: explain.LevelDefault}
}

// IngestionConfig points at the supervisor tuning documents to serve.
type IngestionConfig struct {
	// SupervisorType must match the "type" of every tuning document.
	SupervisorType string `yaml:"supervisor_type"`

	// SpecFiles are tuning documents merged in order. Relative paths are
	// resolved against the configuration directory.
	SpecFiles []string `yaml:"spec_files,omitempty"`

	// ReloadInterval re-reads SpecFiles periodically. Zero loads them once.
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

// DefaultIngestionConfig returns the built-in ingestion defaults.
func DefaultIngestionConfig() *IngestionConfig {
	return &IngestionConfig{SupervisorType: tuning.SupervisorType}
}
