// Package importer loads catalog products from CSV.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopswift/internal/catalog"
	"shopswift/internal/domain"
)

// Columns of the catalog CSV. id and inStock are optional.
var Header = []string{"id", "name", "description", "price", "category", "imageUrl", "inStock"}

var requiredColumns = []string{"name", "description", "price", "category", "imageUrl"}

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// RowError reports the first invalid data row. Row counts from 1 and does not
// include the header line.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// CSVImporter reads catalog CSV and writes the products to a ProductWriter.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, w ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, writer: w}
}

// Parse reads and validates every row without writing anything.
func (i *CSVImporter) Parse() ([]domain.Product, error) {
	headers, err := i.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var products []domain.Product
	for row := 1; ; row++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if blank(record) {
			continue
		}
		p, err := parseRow(record, index)
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		products = append(products, p)
	}
	return products, nil
}

// Run parses the whole file first, so an invalid row leaves the writer
// untouched, then upserts every product in file order.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	products, err := i.Parse()
	if err != nil {
		return 0, err
	}
	imported := 0
	for _, p := range products {
		if _, err := i.writer.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		imported++
	}
	return imported, nil
}

// ReadProducts parses a catalog CSV in one call.
func ReadProducts(r io.Reader) ([]domain.Product, error) {
	return NewCSVImporter(r, nil).Parse()
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	in := catalog.ProductInput{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Price:       pick(record, index, "price"),
		Category:    pick(record, index, "category"),
		ImageURL:    pick(record, index, "imageUrl"),
	}
	if raw := pick(record, index, "inStock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.Product{}, fmt.Errorf("inStock: %q is not a boolean", raw)
		}
		in.InStock = &v
	}
	return in.Normalize()
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
