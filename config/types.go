package config

import (
	"time"

	"github.com/s0up4200/petstore/petstore"
)

// Config represents the complete configuration structure
type Config struct {
	Petstore PetstoreConfig `mapstructure:"petstore"`
	Filters  FilterConfig   `mapstructure:"filters"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Twin     TwinConfig     `mapstructure:"twin"`
}

// PetstoreConfig holds the pet-store API connection details
type PetstoreConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

// ClientConfig converts the settings into a client Configuration
func (p PetstoreConfig) ClientConfig() *petstore.Configuration {
	return &petstore.Configuration{
		BaseURL:     p.BaseURL,
		APIKey:      p.APIKey,
		Timeout:     p.Timeout,
		OpenTimeout: p.OpenTimeout,
	}
}

// FilterConfig contains named filter expressions per resource
type FilterConfig struct {
	Pets   map[string]string `mapstructure:"pets"`
	Orders map[string]string `mapstructure:"orders"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// TracingConfig toggles span export to stderr
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TwinConfig holds settings for the local pet-store twin server
type TwinConfig struct {
	Addr   string `mapstructure:"addr"`
	APIKey string `mapstructure:"api_key"`
	Seed   bool   `mapstructure:"seed"`
}
