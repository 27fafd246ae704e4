package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/pkg/collection"
	"github.com/shashiranjanraj/bhandar/pkg/event"
	"github.com/shashiranjanraj/bhandar/pkg/logger"
	"github.com/shashiranjanraj/bhandar/pkg/metrics"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
)

// csvRow is one raw line of an uploaded product CSV. All cells arrive as
// strings; coercion happens in toProduct so a bad cell can name its row.
type csvRow struct {
	Name         string `csv:"name"`
	SKU          string `csv:"sku"`
	Category     string `csv:"category"`
	Price        string `csv:"price"`
	Quantity     string `csv:"quantity"`
	ReorderLevel string `csv:"reorderLevel"`
	ExpiryDate   string `csv:"expiryDate"`
	Supplier     string `csv:"supplier"`
	Barcode      string `csv:"barcode"`
	ImageURL     string `csv:"imageUrl"`
	Description  string `csv:"description"`
}

const importChunkSize = 200

// CSVService imports and exports product inventories.
type CSVService struct {
	store repositories.ProductStore
	pool  *workerpool.Pool
}

func NewCSVService(store repositories.ProductStore, pool *workerpool.Pool) *CSVService {
	return &CSVService{store: store, pool: pool}
}

// Import parses r as a product CSV and inserts every row. A single bad
// row rejects the whole file with an error naming the row, so a retry
// after fixing the file never produces duplicates.
func (s *CSVService) Import(ctx context.Context, r io.Reader) (int, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, fmt.Errorf("csv import: parse: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("csv import: file has no data rows")
	}

	products := make([]models.Product, 0, len(rows))
	for i, row := range rows {
		p, err := row.toProduct()
		if err != nil {
			metrics.CSVRowsImported.WithLabelValues("rejected").Inc()
			// Row numbers are 1-based and count the header line.
			return 0, fmt.Errorf("csv import: row %d: %w", i+2, err)
		}
		products = append(products, p)
	}

	inserted := 0
	for _, chunk := range collection.Chunk(products, importChunkSize) {
		chunk := chunk
		var n int
		var insErr error
		// Run blocks until the worker has finished the insert, so n and
		// insErr are settled when it returns.
		err := s.pool.Run(func() {
			n, insErr = s.store.InsertMany(ctx, chunk)
		})
		if err != nil {
			return inserted, fmt.Errorf("csv import: %w", err)
		}
		if insErr != nil {
			return inserted, fmt.Errorf("csv import: %w", insErr)
		}
		inserted += n
	}

	metrics.CSVRowsImported.WithLabelValues("ok").Add(float64(inserted))
	event.FireAsync(event.ProductsImported, inserted)
	logger.Info("csv import complete", "rows", inserted)
	return inserted, nil
}

func (r csvRow) toProduct() (models.Product, error) {
	if strings.TrimSpace(r.Name) == "" {
		return models.Product{}, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return models.Product{}, fmt.Errorf("category is required")
	}

	price, err := cast.ToFloat64E(strings.TrimSpace(r.Price))
	if err != nil {
		return models.Product{}, fmt.Errorf("price %q is not a number", r.Price)
	}
	if price < 0 {
		return models.Product{}, fmt.Errorf("price must not be negative")
	}

	quantity, err := cast.ToIntE(strings.TrimSpace(r.Quantity))
	if err != nil {
		return models.Product{}, fmt.Errorf("quantity %q is not an integer", r.Quantity)
	}
	if quantity < 0 {
		return models.Product{}, fmt.Errorf("quantity must not be negative")
	}

	p := models.Product{
		Name:        strings.TrimSpace(r.Name),
		SKU:         strings.TrimSpace(r.SKU),
		Category:    strings.TrimSpace(r.Category),
		Price:       price,
		Quantity:    quantity,
		Supplier:    strings.TrimSpace(r.Supplier),
		Barcode:     strings.TrimSpace(r.Barcode),
		ImageURL:    strings.TrimSpace(r.ImageURL),
		Description: strings.TrimSpace(r.Description),
	}

	if v := strings.TrimSpace(r.ReorderLevel); v != "" {
		level, err := cast.ToIntE(v)
		if err != nil {
			return models.Product{}, fmt.Errorf("reorderLevel %q is not an integer", r.ReorderLevel)
		}
		p.ReorderLevel = level
	}

	if v := strings.TrimSpace(r.ExpiryDate); v != "" {
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return models.Product{}, fmt.Errorf("expiryDate %q is not a date", r.ExpiryDate)
		}
		p.ExpiryDate = &t
	}

	return p, nil
}

// exportFields is the column order of exports: the product's JSON keys
// with internal ids left out, matching the file the dashboard produces.
var exportFields = []string{
	"name", "sku", "category", "price", "quantity", "reorderLevel",
	"expiryDate", "supplier", "barcode", "imageUrl", "description",
	"createdAt", "updatedAt",
}

// ExportCSV writes products to w in the dashboard's format: a plain
// header line, then every cell JSON-encoded (strings quoted, numbers
// bare, missing values as "").
func (s *CSVService) ExportCSV(w io.Writer, products []models.Product) error {
	if _, err := io.WriteString(w, strings.Join(exportFields, ",")+"\n"); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}

	for _, p := range products {
		cells := make([]string, len(exportFields))
		for i, field := range exportFields {
			raw, err := json.Marshal(fieldValue(p, field))
			if err != nil {
				return fmt.Errorf("csv export: encode %s: %w", field, err)
			}
			cells[i] = string(raw)
		}
		if _, err := io.WriteString(w, strings.Join(cells, ",")+"\n"); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	return nil
}

// ExportXLSX writes products to w as a single-sheet spreadsheet with the
// same columns as the CSV export.
func (s *CSVService) ExportXLSX(w io.Writer, products []models.Product) error {
	xlsx := excelize.NewFile()
	const sheet = "Sheet1"

	for i, field := range exportFields {
		xlsx.SetCellValue(sheet, cellRef(i, 0), field)
	}
	for rowIdx, p := range products {
		for colIdx, field := range exportFields {
			xlsx.SetCellValue(sheet, cellRef(colIdx, rowIdx+1), fieldValue(p, field))
		}
	}

	if err := xlsx.Write(w); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}
	return nil
}

func cellRef(col, row int) string {
	return excelize.ToAlphaString(col) + cast.ToString(row+1)
}

// fieldValue maps an export column name to the product's value for it.
// Absent optional values export as "".
func fieldValue(p models.Product, field string) interface{} {
	switch field {
	case "name":
		return p.Name
	case "sku":
		return p.SKU
	case "category":
		return p.Category
	case "price":
		return p.Price
	case "quantity":
		return p.Quantity
	case "reorderLevel":
		return p.ReorderLevel
	case "expiryDate":
		if p.ExpiryDate == nil {
			return ""
		}
		return p.ExpiryDate.UTC().Format(time.RFC3339)
	case "supplier":
		return p.Supplier
	case "barcode":
		return p.Barcode
	case "imageUrl":
		return p.ImageURL
	case "description":
		return p.Description
	case "createdAt":
		return p.CreatedAt.UTC().Format(time.RFC3339)
	case "updatedAt":
		return p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return ""
}
