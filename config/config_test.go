package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Petstore: PetstoreConfig{
			BaseURL:     "https://petstore.swagger.io/v2",
			Timeout:     60 * time.Second,
			OpenTimeout: 10 * time.Second,
		},
		Output:  OutputConfig{Format: "table"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Twin:    TwinConfig{Addr: "127.0.0.1:8080"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Petstore.BaseURL = "" },
			wantErr: "petstore.base_url is required",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Petstore.BaseURL = "petstore/v2" },
			wantErr: "invalid petstore.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Petstore.Timeout = 0 },
			wantErr: "petstore.timeout must be positive",
		},
		{
			name:    "zero open timeout",
			mutate:  func(c *Config) { c.Petstore.OpenTimeout = 0 },
			wantErr: "petstore.open_timeout must be positive",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.Format = "yaml" },
			wantErr: "invalid output.format: yaml",
		},
		{
			name:    "empty named filter",
			mutate:  func(c *Config) { c.Filters.Pets = map[string]string{"sold": "  "} },
			wantErr: "filters.pets.sold has an empty expression",
		},
		{
			name:    "missing twin addr",
			mutate:  func(c *Config) { c.Twin.Addr = "" },
			wantErr: "twin.addr is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
petstore:
  base_url: http://localhost:8080/v2
  api_key: special-key
  timeout: 5s
filters:
  pets:
    sold: Status == "sold"
  orders:
    bulk: Quantity > 5
output:
  format: json
logging:
  level: debug
twin:
  seed: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v2", cfg.Petstore.BaseURL)
	assert.Equal(t, "special-key", cfg.Petstore.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Petstore.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Petstore.OpenTimeout)
	assert.Equal(t, `Status == "sold"`, cfg.Filters.Pets["sold"])
	assert.Equal(t, "Quantity > 5", cfg.Filters.Orders["bulk"])
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Twin.Seed)
	assert.Equal(t, "127.0.0.1:8080", cfg.Twin.Addr)

	client := cfg.Petstore.ClientConfig()
	assert.Equal(t, "special-key", client.APIKey)
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://petstore.swagger.io/v2", cfg.Petstore.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Petstore.Timeout)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.False(t, cfg.Tracing.Enabled)
}
