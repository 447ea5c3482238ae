package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stackmart/catalog/internal/catalog"
	"github.com/stackmart/catalog/internal/domain"
)

// Format selects the export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ProductLister is the slice of the catalog service the exporter needs.
type ProductLister interface {
	ListProducts(ctx context.Context, req catalog.ListRequest) (catalog.ListResult, error)
}

// Service streams the admin catalog to a file by walking the listing
// cursor until it runs out, so exports see exactly the pages a paging
// client would.
type Service struct {
	lister   ProductLister
	pageSize int
}

type Option func(*Service)

func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func NewService(lister ProductLister, opts ...Option) *Service {
	service := &Service{
		lister:   lister,
		pageSize: catalog.MaxLimit,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

var exportHeader = []string{"id", "name", "price", "stock", "active", "featured", "variants", "created_at"}

// Stream writes every product matching the admin filter to w.
func (s *Service) Stream(ctx context.Context, filter domain.AdminFilter, format Format, w io.Writer) error {
	switch format {
	case FormatXLSX:
		return s.streamXLSX(ctx, filter, w)
	case FormatCSV, "":
		return s.streamCSV(ctx, filter, w)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func (s *Service) streamCSV(ctx context.Context, filter domain.AdminFilter, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	err := s.walk(ctx, filter, func(p domain.Product) error {
		if err := writer.Write(csvRecord(p)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func (s *Service) streamXLSX(ctx context.Context, filter domain.AdminFilter, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Products"
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name export sheet: %w", err)
	}

	header := make([]any, len(exportHeader))
	for i, col := range exportHeader {
		header[i] = col
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	rowNum := 1
	err := s.walk(ctx, filter, func(p domain.Product) error {
		rowNum++
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, xlsxRecord(p)); err != nil {
			return fmt.Errorf("write xlsx row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return nil
}

// walk follows nextCursor page by page, invoking fn per product.
func (s *Service) walk(ctx context.Context, filter domain.AdminFilter, fn func(domain.Product) error) error {
	cursor := ""
	for {
		result, err := s.lister.ListProducts(ctx, catalog.ListRequest{
			Filter: filter,
			Cursor: cursor,
			Limit:  s.pageSize,
		})
		if err != nil {
			return err
		}

		for _, p := range result.Products {
			if err := fn(p); err != nil {
				return err
			}
		}

		if result.NextCursor == nil {
			return nil
		}
		cursor = *result.NextCursor
	}
}

func csvRecord(p domain.Product) []string {
	price := ""
	if p.Price != nil {
		price = strconv.FormatFloat(*p.Price, 'f', 2, 64)
	}
	stock := ""
	if p.Stock != nil {
		stock = strconv.Itoa(*p.Stock)
	}
	return []string{
		p.ID.String(),
		p.Name,
		price,
		stock,
		strconv.FormatBool(p.IsActive),
		strconv.FormatBool(p.IsFeatured),
		strconv.FormatBool(p.HasVariants),
		p.CreatedAt.Format(time.RFC3339),
	}
}

func xlsxRecord(p domain.Product) *[]any {
	var price any
	if p.Price != nil {
		price = *p.Price
	}
	var stock any
	if p.Stock != nil {
		stock = *p.Stock
	}
	return &[]any{
		p.ID.String(),
		p.Name,
		price,
		stock,
		p.IsActive,
		p.IsFeatured,
		p.HasVariants,
		p.CreatedAt.Format(time.RFC3339),
	}
}
