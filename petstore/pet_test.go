package petstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetCreate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/pet", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Rex","photoUrls":["https://example.com/rex.jpg"],"tags":[],"status":"available"}`, string(body))

		var sent map[string]any
		require.NoError(t, json.Unmarshal(body, &sent))
		sent["id"] = 101
		writeJSON(w, http.StatusOK, sent)
	}, nil)

	input := &Pet{
		Name:      "Rex",
		PhotoURLs: []string{"https://example.com/rex.jpg"},
		Status:    PetStatusAvailable,
	}
	pet, err := client.Pet().Create(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, pet)

	assert.Equal(t, int64(101), *pet.ID)
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, PetStatusAvailable, pet.Status)
	assert.Nil(t, input.ID, "input must not be modified")
}

func TestPetWriteValidationSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{})
	}, nil)

	ctx := context.Background()
	invalid := []*Pet{
		nil,
		{PhotoURLs: []string{"a"}},
		{Name: "Rex"},
		{Name: "Rex", PhotoURLs: []string{"a"}, Status: "adopted"},
	}

	for _, pet := range invalid {
		_, err := client.Pet().Create(ctx, pet)
		assert.True(t, IsValidation(err))

		_, err = client.Pet().Update(ctx, pet)
		assert.True(t, IsValidation(err))
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestPetUpdate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v2/pet", r.URL.Path)

		var pet Pet
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pet))
		writeJSON(w, http.StatusOK, pet)
	}, nil)

	pet, err := client.Pet().Update(context.Background(), &Pet{
		ID:        Int64(4),
		Name:      "Rex",
		PhotoURLs: []string{"a"},
		Status:    PetStatusSold,
	})
	require.NoError(t, err)
	assert.Equal(t, PetStatusSold, pet.Status)
	assert.Equal(t, int64(4), *pet.ID)
}

func TestPetGetByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/pet/12", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"id":12,"category":{"id":1,"name":"Dogs"},"name":"Rex","photo_urls":["a"],"status":"pending"}`)
	}, nil)

	pet, err := client.Pet().GetByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Dogs", pet.Category.Name)
	assert.Equal(t, []string{"a"}, pet.PhotoURLs)
	assert.Equal(t, []Tag{}, pet.Tags)
	assert.Equal(t, PetStatusPending, pet.Status)
}

func TestPetIDValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}, nil)

	for _, id := range []int64{0, -1} {
		_, err := client.Pet().GetByID(context.Background(), id)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "pet_id must be a positive integer")

		ok, err := client.Pet().Delete(context.Background(), id)
		assert.False(t, ok)
		assert.True(t, IsValidation(err))
	}
}

func TestPetDelete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		switch r.URL.Path {
		case "/v2/pet/5":
			writeJSON(w, http.StatusOK, map[string]any{"code": 200, "type": "unknown", "message": "5"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, nil)

	ok, err := client.Pet().Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Pet().Delete(context.Background(), 6)
	assert.False(t, ok)
	assert.True(t, IsNotFound(err))
}
