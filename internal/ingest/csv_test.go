package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestReadBatchParsesFullRow(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,product_name,category,quantity,cost_basis,selling_price,shelf_life_days,current_age_days,sale_through_rate,store_location,avg_daily_sales,last_week_sales",
		"FRES_001,Organic Milk 1L,Fresh Food,40,2.50,4.00,7,5,0.30,Store_B,1.7,12",
	}, "\n")

	items, err := NewReaderAt(fixedClock).ReadBatch(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "FRES_001", it.SKU)
	assert.Equal(t, domain.CategoryFreshFood, it.Category)
	assert.Equal(t, domain.StoreB, it.StoreLocation)
	assert.Equal(t, 40, it.Quantity)
	assert.InDelta(t, 2.50, it.CostBasis, 0.0001)
	assert.InDelta(t, 0.30, it.SaleThroughRate, 0.0001)
	assert.Equal(t, 2, it.DaysRemaining)
	assert.Equal(t, "03/06/2025", it.ExpiryDate)
	assert.InDelta(t, 1.7, it.AvgDailySales, 0.0001)
	assert.Equal(t, 12, it.LastWeekSales)
}

func TestReadBatchDefaultsOptionalColumns(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,product_name,category,quantity,cost_basis,selling_price,shelf_life_days,current_age_days,sale_through_rate",
		"GENE_001,Pasta Sauce,General Goods,70,3.00,5.00,90,10,0.50",
	}, "\n")

	items, err := NewReaderAt(fixedClock).ReadBatch(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, domain.StoreA, it.StoreLocation)
	assert.InDelta(t, 70*0.50/7, it.AvgDailySales, 0.0001)
	assert.Equal(t, int(it.AvgDailySales*7), it.LastWeekSales)
}

func TestReadBatchClampsDaysRemaining(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,product_name,category,quantity,cost_basis,selling_price,shelf_life_days,current_age_days,sale_through_rate",
		"PERI_001,Yogurt 500g,Perishables,10,2.00,3.00,5,9,0.20",
	}, "\n")

	items, err := NewReaderAt(fixedClock).ReadBatch(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 0, items[0].DaysRemaining)
}

func TestReadBatchMissingColumnsIsValidationError(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,product_name,quantity",
		"X,Y,1",
	}, "\n")

	_, err := NewReaderAt(fixedClock).ReadBatch(strings.NewReader(csvData))
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{
		"category", "cost_basis", "selling_price",
		"shelf_life_days", "current_age_days", "sale_through_rate",
	}, vErr.MissingColumns)
	assert.Contains(t, vErr.Error(), "missing required columns")
}

func TestReadBatchRejectsUnknownCategory(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,product_name,category,quantity,cost_basis,selling_price,shelf_life_days,current_age_days,sale_through_rate",
		"X,Y,Electronics,1,1.0,2.0,10,1,0.5",
	}, "\n")

	_, err := NewReaderAt(fixedClock).ReadBatch(strings.NewReader(csvData))
	assert.ErrorContains(t, err, "unknown category")
}
