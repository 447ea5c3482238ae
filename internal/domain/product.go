package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the catalog entity returned by listing and detail queries.
// Price and Stock are nullable in the store and stay pointers here so the
// sort engine can honour NULLS LAST ordering.
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       *float64
	Stock       *int
	IsActive    bool
	IsFeatured  bool
	HasVariants bool
	CreatedAt   time.Time
	Categories  []CategoryRef
}

// CategoryRef is the flattened {id, name} pair attached to a product after
// the result transformer deduplicates the joined category rows.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Category is the persisted category entity.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewProductID allocates a time-ordered product identifier. UUIDv7 byte
// order follows creation order, which is what makes id usable as the final
// keyset tie-breaker.
func NewProductID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
