package catalog

import (
	"github.com/google/uuid"
)

const (
	// DefaultLimit matches the storefront's page size.
	DefaultLimit = 12
	MaxLimit     = 100
)

// QueryPlan is the immutable, request-scoped description of one catalog
// query. It is assembled once from the pure compiler outputs and rendered
// to SQL only inside the repository; nothing mutates it afterwards.
type QueryPlan struct {
	Predicates []Predicate
	Join       JoinMode
	CategoryID uuid.UUID
	Seek       SeekExpr
	Chain      SortChain
	Limit      int
}

// AssemblePlan combines the compiled filter, resolved sort chain and seek
// predicate into one executable plan. The seek predicate is ANDed with the
// scalar predicates for the page query; the count query uses the scalar
// predicates and join mode only, so the total reflects the whole match set.
func AssemblePlan(filter CompiledFilter, chain SortChain, seek SeekExpr, limit int) QueryPlan {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return QueryPlan{
		Predicates: filter.Predicates,
		Join:       filter.Join,
		CategoryID: filter.CategoryID,
		Seek:       seek,
		Chain:      chain,
		Limit:      limit,
	}
}
