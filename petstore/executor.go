package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// executor sends requests for every API of a Client. It holds no per-request
// state and is safe for concurrent use.
type executor struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
	tracer     trace.Tracer
}

func newExecutor(cfg *Configuration, opts *clientOptions) (*executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, newValidationError("base_url is not a valid URL: %q", cfg.BaseURL)
	}

	httpClient := opts.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	return &executor{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     opts.logger,
		tracer:     opts.tracerProvider.Tracer(tracerName),
	}, nil
}

// newHTTPClient applies OpenTimeout to dialing and the TLS handshake and
// Timeout to the whole exchange.
func newHTTPClient(cfg *Configuration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.OpenTimeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   cfg.OpenTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		transport.TLSHandshakeTimeout = cfg.OpenTimeout
	}
	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}

// do performs one call. A 2xx body is decoded into out; decoded is false when
// the body was empty, in which case out is left untouched.
func (e *executor) do(ctx context.Context, method, path string, query url.Values, body, out any) (decoded bool, err error) {
	ctx, span := e.tracer.Start(ctx, "petstore "+method+" /"+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", "/"+path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	reqURL := e.baseURL + "/" + path
	if method == http.MethodGet && len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return false, &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to encode request body: %v", err), Err: err}
		}
		if s := string(payload); s != "{}" && s != "null" {
			reader = bytes.NewReader(payload)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return false, &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("api_key", e.apiKey)
	}

	e.logger.Debug().
		Str("method", method).
		Str("url", reqURL).
		Msg("Sending petstore request")

	start := time.Now()
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return false, newConnectionError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, newConnectionError(err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	e.logger.Debug().
		Str("method", method).
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Received petstore response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, classifyResponse(resp.StatusCode, respBody)
	}

	if trimmed := bytes.TrimSpace(respBody); len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) || out == nil {
		return false, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return false, &Error{
			Kind:       KindAPI,
			Message:    fmt.Sprintf("failed to decode response: %v", err),
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Err:        err,
		}
	}
	return true, nil
}

// classifyResponse maps a non-2xx response onto an Error. The message comes
// from the body's "message" field when present.
func classifyResponse(status int, body []byte) *Error {
	apiErr := &Error{
		StatusCode: status,
		Body:       body,
		Message:    messageOf(body),
	}

	var fallback string
	switch status {
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
		fallback = "Resource not found"
	case http.StatusBadRequest, http.StatusMethodNotAllowed:
		apiErr.Kind = KindInvalidRequest
		fallback = "Invalid request"
	default:
		apiErr.Kind = KindAPI
		fallback = fmt.Sprintf("HTTP %d", status)
	}
	if apiErr.Message == "" {
		apiErr.Message = fallback
	}
	return apiErr
}
