package petstore

import (
	"context"
	"net/http"
	"strconv"
)

// PetAPI groups the /pet endpoints
type PetAPI struct {
	exec *executor
}

// Create validates pet and adds it to the store. It returns the pet as stored,
// or nil when the service answers with an empty body.
func (a *PetAPI) Create(ctx context.Context, pet *Pet) (*Pet, error) {
	if err := ValidatePet(pet); err != nil {
		return nil, err
	}
	return a.send(ctx, http.MethodPost, pet)
}

// Update validates pet and replaces the stored pet with the same ID
func (a *PetAPI) Update(ctx context.Context, pet *Pet) (*Pet, error) {
	if err := ValidatePet(pet); err != nil {
		return nil, err
	}
	return a.send(ctx, http.MethodPut, pet)
}

// GetByID fetches a single pet. A missing pet is reported as a not-found error.
func (a *PetAPI) GetByID(ctx context.Context, petID int64) (*Pet, error) {
	if err := validateID("pet_id", petID); err != nil {
		return nil, err
	}

	var pet Pet
	ok, err := a.exec.do(ctx, http.MethodGet, petPath(petID), nil, nil, &pet)
	if err != nil || !ok {
		return nil, err
	}
	return &pet, nil
}

// Delete removes a pet. It returns true once the service accepted the call.
func (a *PetAPI) Delete(ctx context.Context, petID int64) (bool, error) {
	if err := validateID("pet_id", petID); err != nil {
		return false, err
	}
	if _, err := a.exec.do(ctx, http.MethodDelete, petPath(petID), nil, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (a *PetAPI) send(ctx context.Context, method string, pet *Pet) (*Pet, error) {
	var out Pet
	ok, err := a.exec.do(ctx, method, "pet", nil, pet, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func petPath(id int64) string {
	return "pet/" + strconv.FormatInt(id, 10)
}
