package twin

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/s0up4200/petstore/petstore"
)

// ErrIDsExhausted is returned when no ID is left to assign
var ErrIDsExhausted = errors.New("no ids left to assign")

// State is the serializable contents of a Store
type State struct {
	Pets   []*petstore.Pet   `json:"pets"`
	Orders []*petstore.Order `json:"orders"`
}

// Store holds the twin's pets and orders in memory. Values are cloned on the
// way in and out so callers never share memory with the store.
type Store struct {
	mu          sync.RWMutex
	pets        map[int64]*petstore.Pet
	orders      map[int64]*petstore.Order
	nextPetID   int64
	nextOrderID int64
	seed        *State
}

// NewStore creates an empty store. When seed is non-nil it is loaded now and
// again on every Reset.
func NewStore(seed *State) *Store {
	s := &Store{seed: seed}
	s.Reset()
	return s
}

// SavePet stores the pet, assigning an ID when it has none
func (s *Store) SavePet(pet *petstore.Pet) (*petstore.Pet, error) {
	clone := pet.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := assignID(clone.ID, &s.nextPetID)
	if err != nil {
		return nil, err
	}
	clone.ID = id
	s.pets[*clone.ID] = clone
	return clone.Clone(), nil
}

// ReplacePet overwrites an existing pet. It reports false when no pet has that ID.
func (s *Store) ReplacePet(pet *petstore.Pet) (*petstore.Pet, bool) {
	if pet == nil || pet.ID == nil {
		return nil, false
	}
	clone := pet.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[*clone.ID]; !ok {
		return nil, false
	}
	s.pets[*clone.ID] = clone
	return clone.Clone(), true
}

// Pet returns the pet with the given ID
func (s *Store) Pet(id int64) (*petstore.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pet, ok := s.pets[id]
	return pet.Clone(), ok
}

// DeletePet removes a pet and reports whether it existed
func (s *Store) DeletePet(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return false
	}
	delete(s.pets, id)
	return true
}

// SaveOrder stores the order, assigning an ID when it has none
func (s *Store) SaveOrder(order *petstore.Order) (*petstore.Order, error) {
	clone := order.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := assignID(clone.ID, &s.nextOrderID)
	if err != nil {
		return nil, err
	}
	clone.ID = id
	s.orders[*clone.ID] = clone
	return clone.Clone(), nil
}

// Order returns the order with the given ID
func (s *Store) Order(id int64) (*petstore.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	return order.Clone(), ok
}

// DeleteOrder removes an order and reports whether it existed
func (s *Store) DeleteOrder(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return false
	}
	delete(s.orders, id)
	return true
}

// Snapshot returns a copy of the store contents ordered by ID
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{
		Pets:   make([]*petstore.Pet, 0, len(s.pets)),
		Orders: make([]*petstore.Order, 0, len(s.orders)),
	}
	for _, p := range s.pets {
		state.Pets = append(state.Pets, p.Clone())
	}
	for _, o := range s.orders {
		state.Orders = append(state.Orders, o.Clone())
	}
	slices.SortFunc(state.Pets, func(a, b *petstore.Pet) int { return compareIDs(a.ID, b.ID) })
	slices.SortFunc(state.Orders, func(a, b *petstore.Order) int { return compareIDs(a.ID, b.ID) })
	return state
}

// LoadState replaces the store contents with the JSON-encoded State in data
func (s *Store) LoadState(data []byte) error {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}
	for i, p := range state.Pets {
		if p == nil || p.ID == nil {
			return fmt.Errorf("pets[%d] has no id", i)
		}
	}
	for i, o := range state.Orders {
		if o == nil || o.ID == nil {
			return fmt.Errorf("orders[%d] has no id", i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(state)
	return nil
}

// Reset clears the store and reloads the seed data, if any
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seed != nil {
		s.load(*s.seed)
		return
	}
	s.load(State{})
}

// load must be called with s.mu held
func (s *Store) load(state State) {
	s.pets = make(map[int64]*petstore.Pet, len(state.Pets))
	s.orders = make(map[int64]*petstore.Order, len(state.Orders))
	s.nextPetID, s.nextOrderID = 0, 0

	for _, p := range state.Pets {
		s.pets[*p.ID] = p.Clone()
		s.nextPetID = max(s.nextPetID, *p.ID)
	}
	for _, o := range state.Orders {
		s.orders[*o.ID] = o.Clone()
		s.nextOrderID = max(s.nextOrderID, *o.ID)
	}
}

// assignID returns id when it is set, bumping next past it, or allocates a
// new one. Allocation fails once an ID has reached math.MaxInt64.
func assignID(id *int64, next *int64) (*int64, error) {
	if id != nil && *id > 0 {
		*next = max(*next, *id)
		return id, nil
	}
	if *next == math.MaxInt64 {
		return nil, ErrIDsExhausted
	}
	*next++
	return petstore.Int64(*next), nil
}

func compareIDs(a, b *int64) int {
	switch {
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// SeedState returns a small catalog used by `petstore twin --seed`
func SeedState() *State {
	return &State{
		Pets: []*petstore.Pet{
			{
				ID:        petstore.Int64(1),
				Name:      "Rex",
				Category:  &petstore.Category{ID: petstore.Int64(1), Name: "Dogs"},
				PhotoURLs: []string{"https://example.com/rex.jpg"},
				Tags:      []petstore.Tag{{ID: petstore.Int64(1), Name: "friendly"}},
				Status:    petstore.PetStatusAvailable,
			},
			{
				ID:        petstore.Int64(2),
				Name:      "Tom",
				Category:  &petstore.Category{ID: petstore.Int64(2), Name: "Cats"},
				PhotoURLs: []string{"https://example.com/tom.jpg"},
				Tags:      []petstore.Tag{},
				Status:    petstore.PetStatusPending,
			},
			{
				ID:        petstore.Int64(3),
				Name:      "Nemo",
				Category:  &petstore.Category{ID: petstore.Int64(3), Name: "Fish"},
				PhotoURLs: []string{"https://example.com/nemo.jpg"},
				Tags:      []petstore.Tag{{ID: petstore.Int64(2), Name: "small"}},
				Status:    petstore.PetStatusSold,
			},
		},
		Orders: []*petstore.Order{
			{
				ID:       petstore.Int64(1),
				PetID:    petstore.Int64(3),
				Quantity: petstore.Int32(1),
				ShipDate: "2024-05-01T10:00:00.000+0000",
				Status:   petstore.OrderStatusDelivered,
				Complete: petstore.Bool(true),
			},
		},
	}
}
