package config

import (
	"fmt"
	"path/filepath"

	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
)

// Config is the umbrella configuration object returned by Initialize.
type Config struct {
	configDir string // Configuration directory path (for reference)

	HTTP      *HTTPConfig
	Explain   *ExplainConfig
	Ingestion *IngestionConfig
}

// Initialize is defined in loader.go

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}

// SpecFilePaths returns the ingestion spec files with relative paths
// resolved against the configuration directory.
func (c *Config) SpecFilePaths() []string {
	paths := make([]string, 0, len(c.Ingestion.SpecFiles))
	for _, f := range c.Ingestion.SpecFiles {
		if !filepath.IsAbs(f) {
			f = filepath.Join(c.configDir, f)
		}
		paths = append(paths, f)
	}
	return paths
}

// LoadTuning loads and merges the configured supervisor tuning documents.
// It returns nil without error when no spec files are configured.
func (c *Config) LoadTuning() (*tuning.SupervisorTuningConfig, error) {
	paths := c.SpecFilePaths()
	if len(paths) == 0 {
		return nil, nil
	}
	cfg, err := tuning.LoadFiles(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load supervisor tuning: %w", err)
	}
	return cfg, nil
}
