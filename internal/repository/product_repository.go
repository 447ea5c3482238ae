package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stackmart/catalog/internal/catalog"
	"github.com/stackmart/catalog/internal/domain"
)

// productRepository renders catalog query plans to SQL and executes them
// against the pool. It implements catalog.Store.
type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates the product store over a pgx pool.
func NewProductRepository(pool *pgxpool.Pool) catalog.Store {
	return &productRepository{pool: pool}
}

const productColumns = "p.id, p.name, p.price, p.stock, p.is_active, p.is_featured, p.has_variants, p.created_at"

// categoriesLateral attaches the product's category rows as a JSON array so
// LIMIT applies to products, never to association rows.
const categoriesLateral = "LEFT JOIN LATERAL (" +
	"SELECT jsonb_agg(jsonb_build_object('id', c.id, 'name', c.name) ORDER BY pc2.category_id) AS items " +
	"FROM product_categories pc2 JOIN categories c ON c.id = pc2.category_id " +
	"WHERE pc2.product_id = p.id) cats ON TRUE "

// QueryPage executes the plan in two round trips: an exact count over the
// scalar predicates and join mode, then the seek-constrained page itself.
func (r *productRepository) QueryPage(ctx context.Context, plan catalog.QueryPlan) ([]catalog.ProductRow, int, error) {
	rendered := renderPlan(plan)

	var total int
	if err := r.pool.QueryRow(ctx, rendered.countSQL, rendered.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.pool.Query(ctx, rendered.pageSQL, rendered.pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var page []catalog.ProductRow
	for rows.Next() {
		var (
			row      catalog.ProductRow
			catsJSON []byte
		)
		if err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Price,
			&row.Stock,
			&row.IsActive,
			&row.IsFeatured,
			&row.HasVariants,
			&row.CreatedAt,
			&catsJSON,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		if err := json.Unmarshal(catsJSON, &row.Categories); err != nil {
			return nil, 0, fmt.Errorf("decode categories for product %s: %w", row.ID, err)
		}
		page = append(page, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return page, total, nil
}

// GetProduct fetches a single product without its categories.
func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (catalog.ProductRow, error) {
	query := "SELECT " + productColumns + " FROM products p WHERE p.id = $1"

	var row catalog.ProductRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.Name,
		&row.Price,
		&row.Stock,
		&row.IsActive,
		&row.IsFeatured,
		&row.HasVariants,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.ProductRow{}, domain.ErrProductNotFound
		}
		return catalog.ProductRow{}, fmt.Errorf("get product: %w", err)
	}

	return row, nil
}

type renderedPlan struct {
	pageSQL   string
	pageArgs  []any
	countSQL  string
	countArgs []any
}

type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) addArg(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// renderPlan turns the immutable plan into the page and count statements.
// Both share the scalar WHERE clauses and join shape; only the page query
// carries the seek predicate, ORDER BY and LIMIT.
func renderPlan(plan catalog.QueryPlan) renderedPlan {
	builder := &sqlBuilder{}

	from := "FROM products p "
	if plan.Join == catalog.JoinInner {
		from += fmt.Sprintf("JOIN product_categories pc ON pc.product_id = p.id AND pc.category_id = %s ",
			builder.addArg(plan.CategoryID))
	}

	var where []string
	for _, pred := range plan.Predicates {
		where = append(where, renderPredicate(pred, builder))
	}

	countWhere := ""
	if len(where) > 0 {
		countWhere = "WHERE " + strings.Join(where, " AND ")
	}
	countSQL := strings.TrimSpace("SELECT COUNT(*) " + from + countWhere)
	countArgs := append([]any{}, builder.args...)

	if seek := renderSeek(plan.Seek, builder); seek != "" {
		where = append(where, seek)
	}

	var page strings.Builder
	page.WriteString("SELECT " + productColumns + ", COALESCE(cats.items, '[]'::jsonb) ")
	page.WriteString(from)
	page.WriteString(categoriesLateral)
	if len(where) > 0 {
		page.WriteString("WHERE " + strings.Join(where, " AND ") + " ")
	}
	page.WriteString(renderOrder(plan.Chain) + " ")
	page.WriteString("LIMIT " + builder.addArg(plan.Limit))

	return renderedPlan{
		pageSQL:   page.String(),
		pageArgs:  builder.args,
		countSQL:  countSQL,
		countArgs: countArgs,
	}
}

func renderPredicate(pred catalog.Predicate, builder *sqlBuilder) string {
	column := pred.Field.Column()
	switch pred.Op {
	case catalog.OpEq:
		return fmt.Sprintf("%s = %s", column, builder.addArg(pred.Value))
	case catalog.OpGt:
		return fmt.Sprintf("%s > %s", column, builder.addArg(pred.Value))
	case catalog.OpGte:
		return fmt.Sprintf("%s >= %s", column, builder.addArg(pred.Value))
	case catalog.OpLt:
		return fmt.Sprintf("%s < %s", column, builder.addArg(pred.Value))
	case catalog.OpLte:
		return fmt.Sprintf("%s <= %s", column, builder.addArg(pred.Value))
	case catalog.OpContains:
		pattern := escapeLike(fmt.Sprint(pred.Value))
		return fmt.Sprintf("%s ILIKE '%%' || %s || '%%' ESCAPE '\\'", column, builder.addArg(pattern))
	default:
		return "FALSE"
	}
}

func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `%`, `\%`)
	value = strings.ReplaceAll(value, `_`, `\_`)
	return value
}

// renderSeek emits the OR-of-AND keyset expansion.
func renderSeek(seek catalog.SeekExpr, builder *sqlBuilder) string {
	if len(seek) == 0 {
		return ""
	}

	disjuncts := make([]string, 0, len(seek))
	for _, conj := range seek {
		conds := make([]string, 0, len(conj))
		for _, cond := range conj {
			conds = append(conds, renderSeekCond(cond, builder))
		}
		disjuncts = append(disjuncts, "("+strings.Join(conds, " AND ")+")")
	}

	return "(" + strings.Join(disjuncts, " OR ") + ")"
}

func renderSeekCond(cond catalog.SeekCond, builder *sqlBuilder) string {
	column := cond.Field.Column()
	switch cond.Op {
	case catalog.SeekIsNull:
		return column + " IS NULL"
	case catalog.SeekEq:
		return fmt.Sprintf("%s = %s", column, builder.addArg(cond.Value))
	case catalog.SeekGt, catalog.SeekLt:
		op := ">"
		if cond.Op == catalog.SeekLt {
			op = "<"
		}
		expr := fmt.Sprintf("%s %s %s", column, op, builder.addArg(cond.Value))
		if cond.OrNull {
			expr = fmt.Sprintf("(%s OR %s IS NULL)", expr, column)
		}
		return expr
	default:
		return "FALSE"
	}
}

func renderOrder(chain catalog.SortChain) string {
	orderings := make([]string, 0, len(chain))
	for _, key := range chain {
		expr := key.Field.Column()
		if key.Desc {
			expr += " DESC"
		} else {
			expr += " ASC"
		}
		if key.NullsLast {
			expr += " NULLS LAST"
		}
		orderings = append(orderings, expr)
	}
	return "ORDER BY " + strings.Join(orderings, ", ")
}
