package petstore

import "context"

// PetService defines the pet operations of the service
type PetService interface {
	Create(ctx context.Context, pet *Pet) (*Pet, error)
	Update(ctx context.Context, pet *Pet) (*Pet, error)
	GetByID(ctx context.Context, petID int64) (*Pet, error)
	Delete(ctx context.Context, petID int64) (bool, error)
}

// StoreService defines the order operations of the service
type StoreService interface {
	PlaceOrder(ctx context.Context, order *Order) (*Order, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	Delete(ctx context.Context, orderID int64) (bool, error)
}

var (
	_ PetService   = (*PetAPI)(nil)
	_ StoreService = (*StoreAPI)(nil)
)
