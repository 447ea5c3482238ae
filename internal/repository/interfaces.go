package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/stackmart/catalog/internal/domain"
)

// CategoryRepository defines the interface for category lookups. The
// product store itself implements catalog.Store, declared next to the
// engine that consumes it.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]domain.CategoryRef, error)
}
