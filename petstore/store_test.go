package petstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/store/order", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"petId":7,"quantity":1,"status":"placed","complete":false}`, string(body))

		var sent map[string]any
		require.NoError(t, json.Unmarshal(body, &sent))
		sent["id"] = 11
		writeJSON(w, http.StatusOK, sent)
	}, nil)

	order, err := client.Store().PlaceOrder(context.Background(), &Order{
		PetID:    Int64(7),
		Quantity: Int32(1),
		Status:   OrderStatusPlaced,
		Complete: Bool(false),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), *order.ID)
	assert.Equal(t, int64(7), *order.PetID)
	assert.False(t, *order.Complete)
}

// Orders are not checked locally, unlike pets. Values the service would
// reject still go out on the wire and come back as an API error.
func TestPlaceOrderSkipsLocalValidation(t *testing.T) {
	var received []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		writeJSON(w, http.StatusBadRequest, map[string]any{"code": 400, "type": "unknown", "message": "Invalid Order"})
	}, nil)

	_, err := client.Store().PlaceOrder(context.Background(), &Order{
		Quantity: Int32(-5),
		Status:   "teleported",
	})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	assert.True(t, IsInvalidRequest(err))
	assert.JSONEq(t, `{"quantity":-5,"status":"teleported"}`, string(received))
}

func TestPlaceOrderNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}, nil)

	_, err := client.Store().PlaceOrder(context.Background(), nil)
	assert.True(t, IsValidation(err))
}

func TestOrderGetByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/store/order/3":
			_, _ = io.WriteString(w, `{"id":3,"petId":7,"quantity":2,"shipDate":"2024-05-01T10:00:00.000+0000","status":"approved","complete":true}`)
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"code": 1, "type": "error", "message": "Order not found"})
		}
	}, nil)

	order, err := client.Store().GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusApproved, order.Status)
	assert.Equal(t, "2024-05-01T10:00:00.000+0000", order.ShipDate)

	_, err = client.Store().GetByID(context.Background(), 4)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Order not found")
}

func TestOrderIDValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}, nil)

	_, err := client.Store().GetByID(context.Background(), 0)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "order_id must be a positive integer")

	ok, err := client.Store().Delete(context.Background(), -2)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "order_id must be a positive integer")
}

func TestOrderDelete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v2/store/order/8", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}, nil)

	ok, err := client.Store().Delete(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, ok)
}
