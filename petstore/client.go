package petstore

// Client is the entry point to the pet-store service. It validates its
// Configuration once at construction and shares one HTTP connection pool
// between its APIs. A Client is safe for concurrent use.
type Client struct {
	config *Configuration
	pet    *PetAPI
	store  *StoreAPI
}

// NewClient creates a client from cfg. A nil cfg uses NewConfiguration.
// cfg is copied; later changes to it do not affect the client.
func NewClient(cfg *Configuration, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = NewConfiguration()
	}
	cfg = cfg.clone()

	o := defaultClientOptions()
	for _, opt := range opts {
		opt(o)
	}

	exec, err := newExecutor(cfg, o)
	if err != nil {
		return nil, err
	}

	exec.logger.Debug().
		Str("base_url", exec.baseURL).
		Bool("api_key", cfg.APIKey != "").
		Dur("timeout", cfg.Timeout).
		Dur("open_timeout", cfg.OpenTimeout).
		Msg("Created petstore client")

	return &Client{
		config: cfg,
		pet:    &PetAPI{exec: exec},
		store:  &StoreAPI{exec: exec},
	}, nil
}

// Configure creates a client from the default configuration after applying
// setup to it.
func Configure(setup func(*Configuration), opts ...Option) (*Client, error) {
	cfg := NewConfiguration()
	if setup != nil {
		setup(cfg)
	}
	return NewClient(cfg, opts...)
}

// Pet returns the pet API
func (c *Client) Pet() *PetAPI {
	return c.pet
}

// Store returns the store API
func (c *Client) Store() *StoreAPI {
	return c.store
}

// Config returns a copy of the configuration the client was built with
func (c *Client) Config() Configuration {
	return *c.config
}
