package petstore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of in-flight requests of a batch call
const DefaultConcurrency = 5

// FetchError records a failed lookup within a batch
type FetchError struct {
	ID  int64
	Err error
}

// BatchResult holds the outcome of a batch lookup. Items keeps the order of
// the requested IDs; a failed or empty lookup leaves a nil entry.
type BatchResult[T any] struct {
	Items  []*T
	Failed []FetchError
}

// GetMany fetches several pets concurrently. Individual failures are
// collected in Failed rather than aborting the batch; the returned error is
// only set when ctx is cancelled.
func (a *PetAPI) GetMany(ctx context.Context, ids []int64) (BatchResult[Pet], error) {
	return getMany(ctx, ids, a.GetByID)
}

// GetMany fetches several orders concurrently, see PetAPI.GetMany
func (a *StoreAPI) GetMany(ctx context.Context, ids []int64) (BatchResult[Order], error) {
	return getMany(ctx, ids, a.GetByID)
}

func getMany[T any](ctx context.Context, ids []int64, get func(context.Context, int64) (*T, error)) (BatchResult[T], error) {
	items := make([]*T, len(ids))
	errs := make([]error, len(ids))

	g := new(errgroup.Group)
	g.SetLimit(DefaultConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			if ctx.Err() != nil {
				errs[i] = newConnectionError(ctx.Err())
				return nil
			}
			items[i], errs[i] = get(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult[T]{Items: items}
	for i, err := range errs {
		if err != nil {
			result.Failed = append(result.Failed, FetchError{ID: ids[i], Err: err})
		}
	}
	return result, ctx.Err()
}
