package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackmart/catalog/internal/domain"
)

func TestBuildSeek_NoCursor(t *testing.T) {
	chain := ResolveSort(domain.CustomerFilter{})
	assert.Nil(t, BuildSeek(chain, nil))
	assert.Nil(t, BuildSeek(chain, CursorValues{}))
}

func TestBuildSeek_FeaturedChainExpansion(t *testing.T) {
	chain := ResolveSort(domain.CustomerFilter{Sort: domain.SortFeatured})
	id := uuid.MustParse("018f3a2e-0000-7000-8000-000000000001")
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	seek := BuildSeek(chain, CursorValues{
		FieldIsFeatured: true,
		FieldCreatedAt:  created,
		FieldID:         id,
	})

	// (featured < v) OR (featured = v AND created < v) OR
	// (featured = v AND created = v AND id > v)
	require.Len(t, seek, 3)

	require.Len(t, seek[0], 1)
	assert.Equal(t, SeekCond{Field: FieldIsFeatured, Op: SeekLt, Value: true}, seek[0][0])

	require.Len(t, seek[1], 2)
	assert.Equal(t, SeekCond{Field: FieldIsFeatured, Op: SeekEq, Value: true}, seek[1][0])
	assert.Equal(t, SeekCond{Field: FieldCreatedAt, Op: SeekLt, Value: created}, seek[1][1])

	require.Len(t, seek[2], 3)
	assert.Equal(t, SeekCond{Field: FieldIsFeatured, Op: SeekEq, Value: true}, seek[2][0])
	assert.Equal(t, SeekCond{Field: FieldCreatedAt, Op: SeekEq, Value: created}, seek[2][1])
	assert.Equal(t, SeekCond{Field: FieldID, Op: SeekGt, Value: id}, seek[2][2])
}

func TestBuildSeek_NullableKeyWidensWithIsNull(t *testing.T) {
	chain := ResolveSort(domain.CustomerFilter{Sort: domain.SortPriceAsc})
	id := uuid.MustParse("018f3a2e-0000-7000-8000-000000000002")

	seek := BuildSeek(chain, CursorValues{
		FieldPrice: 19.5,
		FieldID:    id,
	})

	require.Len(t, seek, 2)
	// Ascending nulls-last: rows with NULL price still lie ahead.
	assert.Equal(t, SeekCond{Field: FieldPrice, Op: SeekGt, Value: 19.5, OrNull: true}, seek[0][0])
	assert.Equal(t, SeekCond{Field: FieldPrice, Op: SeekEq, Value: 19.5}, seek[1][0])
	assert.Equal(t, SeekCond{Field: FieldID, Op: SeekGt, Value: id}, seek[1][1])
}

func TestBuildSeek_NullCursorValueDropsStrictBranch(t *testing.T) {
	chain := ResolveSort(domain.CustomerFilter{Sort: domain.SortPriceAsc})
	id := uuid.MustParse("018f3a2e-0000-7000-8000-000000000003")

	seek := BuildSeek(chain, CursorValues{
		FieldPrice: nil,
		FieldID:    id,
	})

	// Nothing sorts strictly after NULL on a nulls-last key; only the id
	// tie-breaker can advance, under a price IS NULL guard.
	require.Len(t, seek, 1)
	require.Len(t, seek[0], 2)
	assert.Equal(t, SeekCond{Field: FieldPrice, Op: SeekIsNull}, seek[0][0])
	assert.Equal(t, SeekCond{Field: FieldID, Op: SeekGt, Value: id}, seek[0][1])
}

func TestBuildSeek_IDOnlyFallback(t *testing.T) {
	chain := SortChain{{Field: FieldID}}
	id := uuid.MustParse("018f3a2e-0000-7000-8000-000000000004")

	seek := BuildSeek(chain, CursorValues{FieldID: id})
	require.Len(t, seek, 1)
	require.Len(t, seek[0], 1)
	assert.Equal(t, SeekCond{Field: FieldID, Op: SeekGt, Value: id}, seek[0][0])
}
