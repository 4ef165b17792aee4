package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/petstore/petstore"
)

// Load loads the configuration from file. Without an explicit path a missing
// config file is not an error and the defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".petstore"))
		}

		// Check /etc
		v.AddConfigPath("/etc/petstore/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Pet-store defaults
	v.SetDefault("petstore.base_url", petstore.DefaultBaseURL)
	v.SetDefault("petstore.api_key", "")
	v.SetDefault("petstore.timeout", petstore.DefaultTimeout)
	v.SetDefault("petstore.open_timeout", petstore.DefaultOpenTimeout)

	// Output defaults
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)

	// Twin defaults
	v.SetDefault("twin.addr", "127.0.0.1:8080")
	v.SetDefault("twin.api_key", "")
	v.SetDefault("twin.seed", false)
}

// Validate checks if the configuration is valid. It is exported so the CLI
// can re-check after applying flag overrides.
func Validate(cfg *Config) error {
	if cfg.Petstore.BaseURL == "" {
		return fmt.Errorf("petstore.base_url is required")
	}
	if u, err := url.Parse(cfg.Petstore.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid petstore.base_url: %s", cfg.Petstore.BaseURL)
	}

	if cfg.Petstore.Timeout <= 0 {
		return fmt.Errorf("petstore.timeout must be positive")
	}
	if cfg.Petstore.OpenTimeout <= 0 {
		return fmt.Errorf("petstore.open_timeout must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
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

	// Validate output format
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output.format: %s (must be 'table' or 'json')", cfg.Output.Format)
	}

	for kind, filters := range map[string]map[string]string{"pets": cfg.Filters.Pets, "orders": cfg.Filters.Orders} {
		for name, expr := range filters {
			if strings.TrimSpace(expr) == "" {
				return fmt.Errorf("filters.%s.%s has an empty expression", kind, name)
			}
		}
	}

	if cfg.Twin.Addr == "" {
		return fmt.Errorf("twin.addr is required")
	}

	return nil
}
