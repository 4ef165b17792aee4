package petstore

import (
	"encoding/json"
	"slices"
)

// PetStatus represents the lifecycle state of a pet in the store
type PetStatus string

const (
	// PetStatusAvailable indicates the pet can be ordered
	PetStatusAvailable PetStatus = "available"
	// PetStatusPending indicates an order for the pet is in progress
	PetStatusPending PetStatus = "pending"
	// PetStatusSold indicates the pet has been sold
	PetStatusSold PetStatus = "sold"
)

// PetStatuses lists every accepted PetStatus in wire order
var PetStatuses = []PetStatus{PetStatusAvailable, PetStatusPending, PetStatusSold}

// Valid reports whether s is one of the known statuses
func (s PetStatus) Valid() bool {
	return slices.Contains(PetStatuses, s)
}

// OrderStatus is the status of an order. The service accepts any value; the
// constants below are the ones it documents.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Category groups pets in the catalog
type Category struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Tag is a label attached to a pet
type Tag struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Pet is the pet resource. Name, PhotoURLs and Status are only checked when
// the pet is written; decoded pets are returned as the service sent them.
type Pet struct {
	ID        *int64    `json:"id,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name,omitempty" validate:"notblank"`
	PhotoURLs []string  `json:"photoUrls" validate:"min=1"`
	Tags      []Tag     `json:"tags"`
	Status    PetStatus `json:"status,omitempty" validate:"omitempty,oneof=available pending sold"`
}

// MarshalJSON encodes the pet with photoUrls and tags always present
func (p Pet) MarshalJSON() ([]byte, error) {
	type wirePet Pet
	w := wirePet(p)
	if w.PhotoURLs == nil {
		w.PhotoURLs = []string{}
	}
	if w.Tags == nil {
		w.Tags = []Tag{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a pet, accepting snake_case aliases for wire keys
func (p *Pet) UnmarshalJSON(data []byte) error {
	type wirePet Pet
	var w wirePet
	if err := decodeWire(data, &w); err != nil {
		return err
	}
	*p = Pet(w)
	if p.PhotoURLs == nil {
		p.PhotoURLs = []string{}
	}
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
	return nil
}

// Clone returns a deep copy of the pet
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	cp := *p
	cp.ID = clonePtr(p.ID)
	if p.Category != nil {
		cp.Category = &Category{ID: clonePtr(p.Category.ID), Name: p.Category.Name}
	}
	cp.PhotoURLs = append([]string{}, p.PhotoURLs...)
	cp.Tags = make([]Tag, len(p.Tags))
	for i, t := range p.Tags {
		cp.Tags[i] = Tag{ID: clonePtr(t.ID), Name: t.Name}
	}
	return &cp
}

// Order is a purchase order for a pet. No field is validated on write.
type Order struct {
	ID       *int64      `json:"id,omitempty"`
	PetID    *int64      `json:"petId,omitempty"`
	Quantity *int32      `json:"quantity,omitempty"`
	ShipDate string      `json:"shipDate,omitempty"`
	Status   OrderStatus `json:"status,omitempty"`
	Complete *bool       `json:"complete,omitempty"`
}

// UnmarshalJSON decodes an order, accepting snake_case aliases for wire keys
func (o *Order) UnmarshalJSON(data []byte) error {
	type wireOrder Order
	var w wireOrder
	if err := decodeWire(data, &w); err != nil {
		return err
	}
	*o = Order(w)
	return nil
}

// Clone returns a deep copy of the order
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.ID = clonePtr(o.ID)
	cp.PetID = clonePtr(o.PetID)
	cp.Quantity = clonePtr(o.Quantity)
	cp.Complete = clonePtr(o.Complete)
	return &cp
}

// APIResponse is the generic acknowledgement/error body used by the service
type APIResponse struct {
	Code    *int32 `json:"code,omitempty"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

// Int64 returns a pointer to v
func Int64(v int64) *int64 { return &v }

// Int32 returns a pointer to v
func Int32(v int32) *int32 { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
