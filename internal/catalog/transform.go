package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/stackmart/catalog/internal/domain"
)

// ProductRow is a raw result row as scanned by the store: product columns
// plus the joined category rows, which may repeat and are not yet
// deduplicated.
type ProductRow struct {
	ID          uuid.UUID
	Name        string
	Price       *float64
	Stock       *int
	IsActive    bool
	IsFeatured  bool
	HasVariants bool
	CreatedAt   time.Time
	Categories  []CategoryRow
}

// CategoryRow is one joined category row before deduplication.
type CategoryRow struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListResult is the page returned to callers.
type ListResult struct {
	Products   []domain.Product
	Total      int
	NextCursor *string
}

// TransformPage normalises raw rows into output products and computes the
// next cursor. A cursor is emitted only when the page came back full and
// fewer rows than the total were returned, so the exact last page never
// carries one.
func TransformPage(rows []ProductRow, total, limit int, chain SortChain) (ListResult, error) {
	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = transformRow(row)
	}

	result := ListResult{Products: products, Total: total}

	hasMore := len(rows) == limit && len(rows) < total
	if hasMore {
		token, err := EncodeCursor(products[len(products)-1], chain)
		if err != nil {
			return ListResult{}, err
		}
		result.NextCursor = &token
	}

	return result, nil
}

func transformRow(row ProductRow) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       row.Price,
		Stock:       row.Stock,
		IsActive:    row.IsActive,
		IsFeatured:  row.IsFeatured,
		HasVariants: row.HasVariants,
		CreatedAt:   row.CreatedAt,
		Categories:  DedupCategories(row.Categories),
	}
}

// DedupCategories flattens repeated category rows into a unique list keyed
// by category id, preserving first-seen order.
func DedupCategories(rows []CategoryRow) []domain.CategoryRef {
	refs := make([]domain.CategoryRef, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}
		refs = append(refs, domain.CategoryRef{ID: row.ID, Name: row.Name})
	}
	return refs
}
