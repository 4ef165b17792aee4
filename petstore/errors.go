package petstore

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindValidation indicates a local field check failed before any request was sent
	KindValidation ErrorKind = iota
	// KindConnection indicates no response was received (timeout, refused, reset)
	KindConnection
	// KindNotFound indicates an HTTP 404
	KindNotFound
	// KindInvalidRequest indicates an HTTP 400 or 405
	KindInvalidRequest
	// KindAPI indicates any other non-2xx response
	KindAPI
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the client.
// StatusCode and Body are only set for the HTTP kinds.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       []byte
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("petstore: %s error (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("petstore: %s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

func newValidationError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func newConnectionError(err error) *Error {
	return &Error{
		Kind:    KindConnection,
		Message: fmt.Sprintf("Connection failed: %v", err),
		Err:     err,
	}
}

// KindOf returns the kind of a petstore error. ok is false when err is not one.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func hasKind(err error, kinds ...ErrorKind) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// IsValidation checks if an error is a local validation failure
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsConnection checks if an error is a transport failure
func IsConnection(err error) bool {
	return hasKind(err, KindConnection)
}

// IsNotFound checks if an error is an HTTP 404
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsInvalidRequest checks if an error is an HTTP 400 or 405
func IsInvalidRequest(err error) bool {
	return hasKind(err, KindInvalidRequest)
}

// IsAPIError checks if an error came from a non-2xx response of any kind,
// including not-found and invalid-request responses.
func IsAPIError(err error) bool {
	return hasKind(err, KindNotFound, KindInvalidRequest, KindAPI)
}
