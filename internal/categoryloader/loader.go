package categoryloader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader"

	"github.com/stackmart/catalog/internal/domain"
)

// CategoryRepository mirrors repository.CategoryRepository; it is declared
// here so this package does not import repository, which depends on catalog
// and would close an import cycle.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]domain.CategoryRef, error)
}

// CategoryLoader batches per-product category lookups so concurrent detail
// requests in one request window collapse into a single store round trip.
type CategoryLoader struct {
	Loader *dataloader.Loader
}

func NewCategoryLoader(repo CategoryRepository) *CategoryLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		ids := make([]uuid.UUID, len(keys))
		for i, k := range keys {
			id, err := uuid.Parse(k.String())
			if err != nil {
				return []*dataloader.Result{{Error: fmt.Errorf("invalid product id: %w", err)}}
			}
			ids[i] = id
		}

		byProduct, err := repo.ListByProductIDs(ctx, ids)
		if err != nil {
			results := make([]*dataloader.Result, len(keys))
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		results := make([]*dataloader.Result, len(keys))
		for i, id := range ids {
			refs := byProduct[id]
			if refs == nil {
				refs = []domain.CategoryRef{}
			}
			results[i] = &dataloader.Result{Data: refs}
		}

		return results
	}

	loader := dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(5*time.Millisecond))

	return &CategoryLoader{Loader: loader}
}

// Load fetches the categories of one product through the batch window.
func (l *CategoryLoader) Load(ctx context.Context, productID uuid.UUID) ([]domain.CategoryRef, error) {
	thunk := l.Loader.Load(ctx, dataloader.StringKey(productID.String()))
	data, err := thunk()
	if err != nil {
		return nil, err
	}
	refs, ok := data.([]domain.CategoryRef)
	if !ok {
		return nil, fmt.Errorf("unexpected loader result type %T", data)
	}
	return refs, nil
}
