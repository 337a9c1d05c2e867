// Package ingest parses uploaded inventory CSV batches into domain items.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
)

// requiredColumns must all be present in the header; the batch is rejected
// otherwise.
var requiredColumns = []string{
	"sku",
	"product_name",
	"category",
	"quantity",
	"cost_basis",
	"selling_price",
	"shelf_life_days",
	"current_age_days",
	"sale_through_rate",
}

// ValidationError reports the required columns missing from an uploaded
// batch. It is fatal for the batch and surfaced to the caller unmodified.
type ValidationError struct {
	MissingColumns []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}

// Reader parses inventory CSV batches.
type Reader struct {
	now func() time.Time
}

// NewReader creates a Reader stamping derived dates from the real clock.
func NewReader() *Reader {
	return &Reader{now: time.Now}
}

// NewReaderAt creates a Reader with a fixed clock, for reproducible output.
func NewReaderAt(now func() time.Time) *Reader {
	return &Reader{now: now}
}

// ReadBatch parses a CSV stream into inventory items. The header is
// validated against the required column set; optional columns
// (store_location, avg_daily_sales, last_week_sales) are defaulted when
// absent. days_remaining and expiry_date are always rederived, never read
// from the input.
func (r *Reader) ReadBatch(src io.Reader) ([]domain.InventoryItem, error) {
	reader := csv.NewReader(src)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if missing := missingColumns(colMap); len(missing) > 0 {
		return nil, &ValidationError{MissingColumns: missing}
	}

	now := r.now()
	var items []domain.InventoryItem
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		line++

		item, err := parseItem(record, colMap, now)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		items = append(items, item)
	}

	return items, nil
}

func missingColumns(colMap map[string]int) []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)

	return missing
}

func parseItem(record []string, colMap map[string]int, now time.Time) (domain.InventoryItem, error) {
	field := func(name string) string {
		idx, ok := colMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var item domain.InventoryItem
	item.SKU = field("sku")
	item.ProductName = field("product_name")

	category, ok := domain.ParseCategory(field("category"))
	if !ok {
		return item, fmt.Errorf("unknown category %q", field("category"))
	}
	item.Category = category

	var err error
	if item.Quantity, err = parseInt(field("quantity")); err != nil {
		return item, fmt.Errorf("quantity: %w", err)
	}
	if item.CostBasis, err = parseFloat(field("cost_basis")); err != nil {
		return item, fmt.Errorf("cost_basis: %w", err)
	}
	if item.SellingPrice, err = parseFloat(field("selling_price")); err != nil {
		return item, fmt.Errorf("selling_price: %w", err)
	}
	if item.ShelfLifeDays, err = parseInt(field("shelf_life_days")); err != nil {
		return item, fmt.Errorf("shelf_life_days: %w", err)
	}
	if item.CurrentAgeDays, err = parseInt(field("current_age_days")); err != nil {
		return item, fmt.Errorf("current_age_days: %w", err)
	}
	if item.SaleThroughRate, err = parseFloat(field("sale_through_rate")); err != nil {
		return item, fmt.Errorf("sale_through_rate: %w", err)
	}

	// Optional columns fall back to defaults.
	if store, ok := domain.ParseStoreLocation(field("store_location")); ok {
		item.StoreLocation = store
	} else {
		item.StoreLocation = domain.StoreA
	}

	if raw := field("avg_daily_sales"); raw != "" {
		if item.AvgDailySales, err = parseFloat(raw); err != nil {
			return item, fmt.Errorf("avg_daily_sales: %w", err)
		}
	} else {
		item.AvgDailySales = float64(item.Quantity) * item.SaleThroughRate / 7
	}

	if raw := field("last_week_sales"); raw != "" {
		if item.LastWeekSales, err = parseInt(raw); err != nil {
			return item, fmt.Errorf("last_week_sales: %w", err)
		}
	} else {
		item.LastWeekSales = int(item.AvgDailySales * 7)
	}

	item.RefreshShelfLife(now)

	return item, nil
}

func parseInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}

	return v, nil
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}

	return v, nil
}
