package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stackmart/catalog/internal/domain"
)

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates the category store over a pgx pool.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

// List returns every category, for storefront navigation.
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, created_at FROM categories ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// ListByProductIDs fetches the categories of many products in one round
// trip, keyed by product id. Products without categories are simply absent
// from the map.
func (r *categoryRepository) ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]domain.CategoryRef, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID][]domain.CategoryRef{}, nil
	}

	rows, err := r.pool.Query(ctx,
		"SELECT pc.product_id, c.id, c.name FROM product_categories pc "+
			"JOIN categories c ON c.id = pc.category_id "+
			"WHERE pc.product_id = ANY($1) ORDER BY pc.product_id, c.name",
		productIDs)
	if err != nil {
		return nil, fmt.Errorf("list categories by products: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.CategoryRef, len(productIDs))
	for rows.Next() {
		var (
			productID uuid.UUID
			ref       domain.CategoryRef
		)
		if err := rows.Scan(&productID, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		result[productID] = append(result[productID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product categories: %w", err)
	}

	return result, nil
}
