package petstore

import (
	"context"
	"net/http"
	"strconv"
)

// StoreAPI groups the /store/order endpoints
type StoreAPI struct {
	exec *executor
}

// PlaceOrder submits an order. Unlike pets, orders are sent without any local
// field checks and the service decides what it accepts.
func (a *StoreAPI) PlaceOrder(ctx context.Context, order *Order) (*Order, error) {
	if order == nil {
		return nil, newValidationError("order is required")
	}

	var out Order
	ok, err := a.exec.do(ctx, http.MethodPost, "store/order", nil, order, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// GetByID fetches a single order
func (a *StoreAPI) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	if err := validateID("order_id", orderID); err != nil {
		return nil, err
	}

	var order Order
	ok, err := a.exec.do(ctx, http.MethodGet, orderPath(orderID), nil, nil, &order)
	if err != nil || !ok {
		return nil, err
	}
	return &order, nil
}

// Delete cancels an order. It returns true once the service accepted the call.
func (a *StoreAPI) Delete(ctx context.Context, orderID int64) (bool, error) {
	if err := validateID("order_id", orderID); err != nil {
		return false, err
	}
	if _, err := a.exec.do(ctx, http.MethodDelete, orderPath(orderID), nil, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

func orderPath(id int64) string {
	return "store/order/" + strconv.FormatInt(id, 10)
}
