package petstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindValidation, "validation"},
		{KindConnection, "connection"},
		{KindNotFound, "not_found"},
		{KindInvalidRequest, "invalid_request"},
		{KindAPI, "api"},
		{ErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	withStatus := &Error{Kind: KindNotFound, StatusCode: 404, Message: "Pet not found"}
	assert.Equal(t, "petstore: not_found error (HTTP 404): Pet not found", withStatus.Error())

	local := newValidationError("pet_id must be a positive integer")
	assert.Equal(t, "petstore: validation error: pet_id must be a positive integer", local.Error())
}

func TestConnectionErrorUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := newConnectionError(cause)

	assert.Equal(t, "Connection failed: dial tcp: connection refused", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		validation     bool
		connection     bool
		notFound       bool
		invalidRequest bool
		api            bool
	}{
		{name: "validation", err: &Error{Kind: KindValidation}, validation: true},
		{name: "connection", err: &Error{Kind: KindConnection}, connection: true},
		{name: "not found", err: &Error{Kind: KindNotFound}, notFound: true, api: true},
		{name: "invalid request", err: &Error{Kind: KindInvalidRequest}, invalidRequest: true, api: true},
		{name: "api", err: &Error{Kind: KindAPI}, api: true},
		{name: "wrapped", err: fmt.Errorf("get pet: %w", &Error{Kind: KindNotFound}), notFound: true, api: true},
		{name: "foreign", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.connection, IsConnection(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.invalidRequest, IsInvalidRequest(tt.err))
			assert.Equal(t, tt.api, IsAPIError(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrap: %w", &Error{Kind: KindAPI}))
	assert.True(t, ok)
	assert.Equal(t, KindAPI, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
