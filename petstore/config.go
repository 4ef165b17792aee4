package petstore

import (
	"time"
)

const (
	// DefaultBaseURL is the public root of the pet-store service
	DefaultBaseURL = "https://petstore.swagger.io/v2"
	// DefaultTimeout bounds a whole request, response body included
	DefaultTimeout = 60 * time.Second
	// DefaultOpenTimeout bounds establishing the connection
	DefaultOpenTimeout = 10 * time.Second
)

// Configuration holds the connection settings shared by every API of a Client.
type Configuration struct {
	BaseURL     string
	APIKey      string // sent as the api_key header when non-empty
	Timeout     time.Duration
	OpenTimeout time.Duration
}

// NewConfiguration returns a Configuration with default values
func NewConfiguration() *Configuration {
	return &Configuration{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		OpenTimeout: DefaultOpenTimeout,
	}
}

// Validate checks that the configuration can be used to build a client
func (c *Configuration) Validate() error {
	if c == nil || c.BaseURL == "" {
		return newValidationError("base_url cannot be nil or empty")
	}
	return nil
}

func (c *Configuration) clone() *Configuration {
	cp := *c
	return &cp
}
