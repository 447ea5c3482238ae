package catalog

import (
	"github.com/stackmart/catalog/internal/domain"
)

// SortKey is one entry of a sort chain.
type SortKey struct {
	Field     Field
	Desc      bool
	NullsLast bool
}

// SortChain is an ordered sequence of sort keys terminating in the unique
// (id, asc) tie-breaker. The tie-breaker is what makes the chain a strict
// total order and therefore what makes keyset pagination correct.
type SortChain []SortKey

// Fields returns the chain's field names in chain order.
func (c SortChain) Fields() []Field {
	fields := make([]Field, len(c))
	for i, key := range c {
		fields[i] = key.Field
	}
	return fields
}

// ResolveSort maps the filter's named sort order to a sort chain for the
// filter's role. Unknown names fall back to the role default.
func ResolveSort(spec domain.FilterSpec) SortChain {
	switch f := spec.(type) {
	case domain.CustomerFilter:
		return resolveCustomerSort(f.Sort)
	case *domain.CustomerFilter:
		return resolveCustomerSort(f.Sort)
	case domain.AdminFilter:
		return resolveAdminSort(f.SortBy, f.SortDir)
	case *domain.AdminFilter:
		return resolveAdminSort(f.SortBy, f.SortDir)
	default:
		return withTieBreaker(nil)
	}
}

func resolveCustomerSort(sort domain.CustomerSort) SortChain {
	switch sort {
	case domain.SortPriceAsc:
		return withTieBreaker(SortChain{{Field: FieldPrice, NullsLast: true}})
	case domain.SortPriceDesc:
		return withTieBreaker(SortChain{{Field: FieldPrice, Desc: true, NullsLast: true}})
	case domain.SortNewest:
		return withTieBreaker(SortChain{{Field: FieldCreatedAt, Desc: true}})
	default:
		// featured is the storefront default
		return withTieBreaker(SortChain{
			{Field: FieldIsFeatured, Desc: true, NullsLast: true},
			{Field: FieldCreatedAt, Desc: true},
		})
	}
}

func resolveAdminSort(by domain.AdminSortField, dir domain.SortDirection) SortChain {
	desc := dir == domain.SortDesc

	var field Field
	switch by {
	case domain.AdminSortPrice:
		field = FieldPrice
	case domain.AdminSortStock:
		field = FieldStock
	case domain.AdminSortCreated:
		field = FieldCreatedAt
	default:
		field = FieldName
	}

	return withTieBreaker(SortChain{{Field: field, Desc: desc, NullsLast: field.Nullable()}})
}

// withTieBreaker appends (id, asc) unless id already leads the chain.
func withTieBreaker(chain SortChain) SortChain {
	for _, key := range chain {
		if key.Field == FieldID {
			return chain
		}
	}
	return append(chain, SortKey{Field: FieldID})
}
