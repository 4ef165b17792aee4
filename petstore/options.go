package petstore

import (
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/s0up4200/petstore/petstore"

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	httpClient     *http.Client
	logger         zerolog.Logger
	tracerProvider trace.TracerProvider
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		logger:         zerolog.Nop(),
		tracerProvider: otel.GetTracerProvider(),
	}
}

// WithHTTPClient sets a custom HTTP client. Timeout and OpenTimeout from the
// Configuration are not applied to it.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTracerProvider sets the provider used to create a span per request
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *clientOptions) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}
