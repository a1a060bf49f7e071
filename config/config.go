package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/s0up4200/ethproofs/ethproofs"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment overrides, e.g. ETHPROOFS_API_KEY
const EnvPrefix = "ETHPROOFS"

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error, so the API key can
// come from the environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ethproofs"))
		}
		v.AddConfigPath("/etc/ethproofs/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults; key is registered so the environment can supply it
	v.SetDefault("api.key", "")
	v.SetDefault("api.environment", EnvironmentProduction)
	v.SetDefault("api.url", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.user_agent", ethproofs.DefaultUserAgent)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Batch defaults
	v.SetDefault("batch.concurrency", ethproofs.DefaultConcurrency)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Key == "" || cfg.API.Key == "your-api-key-here" {
		return fmt.Errorf("api.key must be set to a valid API key")
	}

	switch cfg.API.Environment {
	case EnvironmentProduction, EnvironmentStaging:
	case EnvironmentCustom:
		if cfg.API.URL == "" {
			return fmt.Errorf("api.url is required when api.environment is custom")
		}
	default:
		return fmt.Errorf("invalid api.environment: %s (must be 'production', 'staging' or 'custom')", cfg.API.Environment)
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Batch.Concurrency < 1 || cfg.Batch.Concurrency > ethproofs.MaxConcurrency {
		return fmt.Errorf("batch.concurrency must be between 1 and %d", ethproofs.MaxConcurrency)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s is empty", name)
		}
	}

	return nil
}

// BaseURL returns the API base URL for the configured environment
func (a API) BaseURL() string {
	switch a.Environment {
	case EnvironmentStaging:
		return ethproofs.StagingURL
	case EnvironmentCustom:
		return a.URL
	default:
		return ethproofs.ProductionURL
	}
}
