package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file read from the configuration directory.
const FileName = "warehousecfg.yaml"

// YAMLConfig represents the complete warehousecfg.yaml file structure
type YAMLConfig struct {
	HTTP      *HTTPConfig      `yaml:"http"`
	Explain   *ExplainConfig   `yaml:"explain"`
	Ingestion *IngestionConfig `yaml:"ingestion"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Load warehousecfg.yaml from configDir (optional)
//  2. Expand environment variables
//  3. Merge user values over the built-in defaults
//  4. Validate
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	log.Info("Configuration initialized successfully",
		"http_addr", cfg.HTTP.Addr,
		"explain_level", cfg.Explain.DefaultLevel,
		"spec_files", len(cfg.Ingestion.SpecFiles))

	return cfg, nil
}

// load is the internal loader (not exported)
func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{
		configDir: configDir,
	}

	user, err := loader.loadConfigYAML()
	if err != nil {
		return nil, NewLoadError(configDir, FileName, err)
	}

	// Start with defaults, then merge user config on top to preserve unset defaults
	httpCfg := DefaultHTTPConfig()
	explainCfg := DefaultExplainConfig()
	ingestionCfg := DefaultIngestionConfig()

	if user.HTTP != nil {
		if err := mergo.Merge(httpCfg, user.HTTP, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge http config: %w", err)
		}
	}
	if user.Explain != nil {
		if err := mergo.Merge(explainCfg, user.Explain, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge explain config: %w", err)
		}
	}
	if user.Ingestion != nil {
		if err := mergo.Merge(ingestionCfg, user.Ingestion, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge ingestion config: %w", err)
		}
	}

	return &Config{
		configDir: configDir,
		HTTP:      httpCfg,
		Explain:   explainCfg,
		Ingestion: ingestionCfg,
	}, nil
}

// validate performs comprehensive validation on loaded configuration
func validate(cfg *Config) error {
	validator := NewValidator(cfg)
	return validator.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

// loadConfigYAML reads warehousecfg.yaml. The file is optional: a missing
// file yields the built-in defaults, but a missing directory is an error.
func (l *configLoader) loadConfigYAML() (*YAMLConfig, error) {
	var config YAMLConfig

	if _, err := os.Stat(l.configDir); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, l.configDir)
	}

	if err := l.loadYAML(FileName, &config); err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			slog.Info("No configuration file found, using defaults",
				"path", filepath.Join(l.configDir, FileName))
			return &config, nil
		}
		return nil, err
	}

	return &config, nil
}
