package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stackmart/catalog/internal/catalog"
	"github.com/stackmart/catalog/internal/domain"
)

// pagedLister serves a fixed product set in cursor-linked pages, recording
// the page sizes it was asked for.
type pagedLister struct {
	products []domain.Product
	limits   []int
	err      error
}

func (l *pagedLister) ListProducts(_ context.Context, req catalog.ListRequest) (catalog.ListResult, error) {
	if l.err != nil {
		return catalog.ListResult{}, l.err
	}
	l.limits = append(l.limits, req.Limit)

	start := 0
	if req.Cursor != "" {
		fmt.Sscanf(req.Cursor, "offset:%d", &start)
	}
	end := start + req.Limit
	if end > len(l.products) {
		end = len(l.products)
	}

	result := catalog.ListResult{
		Products: l.products[start:end],
		Total:    len(l.products),
	}
	if end < len(l.products) {
		token := fmt.Sprintf("offset:%d", end)
		result.NextCursor = &token
	}
	return result, nil
}

func exportProducts(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		price := float64(10 * (i + 1))
		stock := i
		products[i] = domain.Product{
			ID:        uuid.MustParse(fmt.Sprintf("018f3a2e-0000-7000-8000-%012d", i+1)),
			Name:      fmt.Sprintf("Product %d", i+1),
			Price:     &price,
			Stock:     &stock,
			IsActive:  true,
			CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return products
}

func TestStream_CSVWalksAllPages(t *testing.T) {
	lister := &pagedLister{products: exportProducts(5)}
	service := NewService(lister, WithPageSize(2))

	var buf bytes.Buffer
	err := service.Stream(context.Background(), domain.AdminFilter{}, FormatCSV, &buf)
	require.NoError(t, err)

	// Three pages of two, two, one.
	assert.Equal(t, []int{2, 2, 2}, lister.limits)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Product 1", records[1][1])
	assert.Equal(t, "10.00", records[1][2])
	assert.Equal(t, "Product 5", records[5][1])
}

func TestStream_CSVNullColumnsAreEmpty(t *testing.T) {
	product := exportProducts(1)[0]
	product.Price = nil
	product.Stock = nil
	lister := &pagedLister{products: []domain.Product{product}}

	var buf bytes.Buffer
	err := NewService(lister).Stream(context.Background(), domain.AdminFilter{}, FormatCSV, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][2])
	assert.Equal(t, "", records[1][3])
}

func TestStream_EmptyFormatDefaultsToCSV(t *testing.T) {
	lister := &pagedLister{products: exportProducts(1)}

	var buf bytes.Buffer
	err := NewService(lister).Stream(context.Background(), domain.AdminFilter{}, "", &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStream_XLSXRoundTrip(t *testing.T) {
	lister := &pagedLister{products: exportProducts(3)}
	service := NewService(lister, WithPageSize(2))

	var buf bytes.Buffer
	err := service.Stream(context.Background(), domain.AdminFilter{}, FormatXLSX, &buf)
	require.NoError(t, err)

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "Product 3", rows[3][1])
}

func TestStream_UnsupportedFormat(t *testing.T) {
	service := NewService(&pagedLister{})

	err := service.Stream(context.Background(), domain.AdminFilter{}, Format("pdf"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestStream_ListerFailureAborts(t *testing.T) {
	cause := domain.QueryFailed(assert.AnError)
	service := NewService(&pagedLister{err: cause})

	var buf bytes.Buffer
	err := service.Stream(context.Background(), domain.AdminFilter{}, FormatCSV, &buf)
	assert.ErrorIs(t, err, cause)
}
