package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/stackmart/catalog/internal/domain"
)

// Store is the relational collaborator the engine executes plans against.
// QueryPage runs the assembled plan and returns the page rows together with
// the exact count of all rows matching the scalar predicates and join mode
// (the seek predicate never narrows the count).
type Store interface {
	QueryPage(ctx context.Context, plan QueryPlan) ([]ProductRow, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (ProductRow, error)
}

// Service is the catalog query engine behind both the storefront listing
// and the admin grid. Each call is stateless; concurrent requests share
// nothing but the store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListRequest carries one listing call. CategoryID, when set, overrides any
// category embedded in the filter object.
type ListRequest struct {
	Filter     domain.FilterSpec
	CategoryID *uuid.UUID
	Cursor     string
	Limit      int
}

// ListProducts compiles, executes and transforms one catalog page.
// An invalid or chain-mismatched cursor restarts from the first page rather
// than failing the request; store failures surface as a single
// *domain.CatalogQueryError.
func (s *Service) ListProducts(ctx context.Context, req ListRequest) (ListResult, error) {
	chain := ResolveSort(req.Filter)
	compiled := CompileFilter(req.Filter, req.CategoryID)

	cursor, err := DecodeCursor(req.Cursor, chain)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCursor) {
			return ListResult{}, err
		}
		cursor = nil
	}

	plan := AssemblePlan(compiled, chain, BuildSeek(chain, cursor), req.Limit)

	rows, total, err := s.store.QueryPage(ctx, plan)
	if err != nil {
		return ListResult{}, domain.QueryFailed(err)
	}

	return TransformPage(rows, total, plan.Limit, chain)
}

// GetProduct returns a single product without its categories; callers
// hydrate those through the batched category loader.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, err
		}
		return domain.Product{}, domain.QueryFailed(err)
	}
	return transformRow(row), nil
}
