package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/stackmart/catalog/internal/domain"
)

// PredOp is a scalar predicate operator.
type PredOp int

const (
	OpEq PredOp = iota
	OpGt
	OpGte
	OpLt
	OpLte
	// OpContains is a case-insensitive substring match on a text column.
	OpContains
)

// Predicate is one scalar condition against the product row. All predicates
// of a plan are AND-combined.
type Predicate struct {
	Field Field
	Op    PredOp
	Value any
}

// JoinMode selects the category join shape: left keeps every product and
// uses associations purely for display, inner restricts the row set to
// products linked to a specific category.
type JoinMode int

const (
	JoinLeft JoinMode = iota
	JoinInner
)

// CompiledFilter is the Filter Compiler's output: scalar predicates plus
// the join-mode decision. The same predicate list applies in both join
// modes; switching to the inner shape never drops a predicate.
type CompiledFilter struct {
	Predicates []Predicate
	Join       JoinMode
	CategoryID uuid.UUID // set when Join == JoinInner
}

// CompileFilter resolves the role-tagged filter union into predicates once,
// at the boundary. categoryOverride, when present, always wins over a
// category embedded in the filter object.
func CompileFilter(spec domain.FilterSpec, categoryOverride *uuid.UUID) CompiledFilter {
	switch f := spec.(type) {
	case domain.CustomerFilter:
		return compileCustomer(f, categoryOverride)
	case *domain.CustomerFilter:
		return compileCustomer(*f, categoryOverride)
	case domain.AdminFilter:
		return compileAdmin(f)
	case *domain.AdminFilter:
		return compileAdmin(*f)
	default:
		return CompiledFilter{}
	}
}

func compileCustomer(f domain.CustomerFilter, categoryOverride *uuid.UUID) CompiledFilter {
	// Customers only ever see active products.
	preds := []Predicate{{Field: FieldIsActive, Op: OpEq, Value: true}}

	if f.MinPrice != nil {
		preds = append(preds, Predicate{Field: FieldPrice, Op: OpGte, Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		preds = append(preds, Predicate{Field: FieldPrice, Op: OpLte, Value: *f.MaxPrice})
	}
	if f.InStockOnly {
		preds = append(preds, Predicate{Field: FieldStock, Op: OpGt, Value: 0})
	}

	compiled := CompiledFilter{Predicates: preds, Join: JoinLeft}

	categoryID := f.CategoryID
	if categoryOverride != nil {
		categoryID = categoryOverride
	}
	if categoryID != nil && *categoryID != uuid.Nil {
		compiled.Join = JoinInner
		compiled.CategoryID = *categoryID
	}

	return compiled
}

func compileAdmin(f domain.AdminFilter) CompiledFilter {
	// Admins control visibility explicitly; no implicit is_active here.
	var preds []Predicate

	if search := strings.TrimSpace(f.Search); search != "" {
		preds = append(preds, Predicate{Field: FieldName, Op: OpContains, Value: search})
	}
	if f.MinPrice != nil {
		preds = append(preds, Predicate{Field: FieldPrice, Op: OpGte, Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		preds = append(preds, Predicate{Field: FieldPrice, Op: OpLte, Value: *f.MaxPrice})
	}
	if f.MinStock != nil {
		preds = append(preds, Predicate{Field: FieldStock, Op: OpGte, Value: *f.MinStock})
	}
	if f.MaxStock != nil {
		preds = append(preds, Predicate{Field: FieldStock, Op: OpLte, Value: *f.MaxStock})
	}
	if f.IsActive != nil {
		preds = append(preds, Predicate{Field: FieldIsActive, Op: OpEq, Value: *f.IsActive})
	}
	if f.HasVariants != nil {
		preds = append(preds, Predicate{Field: FieldHasVariants, Op: OpEq, Value: *f.HasVariants})
	}

	return CompiledFilter{Predicates: preds, Join: JoinLeft}
}
