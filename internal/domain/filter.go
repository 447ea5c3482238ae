package domain

import (
	"github.com/google/uuid"
)

// Role identifies which filter vocabulary and visibility rules apply.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// CustomerSort names the storefront sort orders.
type CustomerSort string

const (
	SortFeatured  CustomerSort = "featured"
	SortPriceAsc  CustomerSort = "price_asc"
	SortPriceDesc CustomerSort = "price_desc"
	SortNewest    CustomerSort = "newest"
)

// AdminSortField names the admin grid's leading sort columns.
type AdminSortField string

const (
	AdminSortName    AdminSortField = "name"
	AdminSortPrice   AdminSortField = "price"
	AdminSortStock   AdminSortField = "stock"
	AdminSortCreated AdminSortField = "created"
)

// SortDirection is the admin grid's direction toggle.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterSpec is the closed, role-tagged filter union. Exactly one concrete
// variant is active per request; the compiler type-switches on it once at
// the boundary and everything downstream works on compiled predicates.
type FilterSpec interface {
	Role() Role
	// Validate reports combinations the caller layer should reject before
	// compiling; the engine itself compiles invalid ranges verbatim and
	// returns zero rows.
	Validate() error
}

// CustomerFilter is the storefront-facing filter vocabulary.
type CustomerFilter struct {
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	CategoryID  *uuid.UUID
	Sort        CustomerSort
}

func (CustomerFilter) Role() Role { return RoleCustomer }

func (f CustomerFilter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return &InvalidFilterError{Reason: "minPrice exceeds maxPrice"}
	}
	return nil
}

// AdminFilter is the back-office filter vocabulary. Admin controls
// visibility explicitly through IsActive; the engine never injects an
// implicit is_active predicate for this role.
type AdminFilter struct {
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	MinStock    *int
	MaxStock    *int
	IsActive    *bool
	HasVariants *bool
	SortBy      AdminSortField
	SortDir     SortDirection
}

func (AdminFilter) Role() Role { return RoleAdmin }

func (f AdminFilter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return &InvalidFilterError{Reason: "minPrice exceeds maxPrice"}
	}
	if f.MinStock != nil && f.MaxStock != nil && *f.MinStock > *f.MaxStock {
		return &InvalidFilterError{Reason: "minStock exceeds maxStock"}
	}
	return nil
}
