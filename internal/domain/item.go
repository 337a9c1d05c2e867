// backend-go/internal/domain/item.go
package domain

import "time"

// ExpiryDateFormat is the display format used for item expiry dates.
const ExpiryDateFormat = "02/01/2006"

// InventoryItem is one SKU-instance flowing through the assessment pipeline.
// The Computed block is populated stage by stage; callers must treat those
// fields as outputs only.
type InventoryItem struct {
	SKU           string        `json:"sku" db:"sku"`
	ProductName   string        `json:"product_name" db:"product_name"`
	Category      Category      `json:"category" db:"category"`
	StoreLocation StoreLocation `json:"store_location" db:"store_location"`

	Quantity     int     `json:"quantity" db:"quantity"`
	CostBasis    float64 `json:"cost_basis" db:"cost_basis"`
	SellingPrice float64 `json:"selling_price" db:"selling_price"`

	ShelfLifeDays  int    `json:"shelf_life_days" db:"shelf_life_days"`
	CurrentAgeDays int    `json:"current_age_days" db:"current_age_days"`
	DaysRemaining  int    `json:"days_remaining" db:"days_remaining"`
	ExpiryDate     string `json:"expiry_date" db:"expiry_date"`

	SaleThroughRate float64 `json:"sale_through_rate" db:"sale_through_rate"`
	AvgDailySales   float64 `json:"avg_daily_sales" db:"avg_daily_sales"`
	LastWeekSales   int     `json:"last_week_sales" db:"last_week_sales"`

	// Computed by the pipeline, in stage order.
	RiskScore              float64       `json:"risk_score" db:"risk_score"`
	RiskLevel              RiskLevel     `json:"risk_level" db:"risk_level"`
	TimeToAction           string        `json:"time_to_action" db:"time_to_action"`
	CanDonate              bool          `json:"can_donate" db:"can_donate"`
	CanReallocate          bool          `json:"can_reallocate" db:"can_reallocate"`
	ReallocationStore      StoreLocation `json:"reallocation_store,omitempty" db:"reallocation_store"`
	ReallocationCost       float64       `json:"reallocation_cost" db:"reallocation_cost"`
	TargetStoreSellThrough float64       `json:"target_store_sell_through" db:"target_store_sell_through"`
	PrimaryRecommendation  Strategy      `json:"primary_recommendation" db:"primary_recommendation"`
	SecondaryOptions       []Strategy    `json:"secondary_options" db:"-"`
	ExpectedRecovery       float64       `json:"expected_recovery" db:"expected_recovery"`
	PotentialLoss          float64       `json:"potential_loss" db:"potential_loss"`
	MarginImpact           float64       `json:"margin_impact" db:"margin_impact"`
	ProfitMarginPct        float64       `json:"profit_margin_pct" db:"profit_margin_pct"`
	MarkdownPercentage     float64       `json:"markdown_percentage" db:"markdown_percentage"`

	BatchID   string    `json:"batch_id,omitempty" db:"batch_id"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// RefreshShelfLife rederives DaysRemaining and ExpiryDate from shelf life and
// age. Derived fields are never trusted from input.
func (it *InventoryItem) RefreshShelfLife(now time.Time) {
	remaining := it.ShelfLifeDays - it.CurrentAgeDays
	if remaining < 0 {
		remaining = 0
	}
	it.DaysRemaining = remaining
	it.ExpiryDate = now.AddDate(0, 0, remaining).Format(ExpiryDateFormat)
}

// GrossMargin returns (selling_price - cost_basis) / selling_price, the
// fraction the financial normalization step keeps inside [0.10, 0.70].
func (it *InventoryItem) GrossMargin() float64 {
	if it.SellingPrice == 0 {
		return 0
	}

	return (it.SellingPrice - it.CostBasis) / it.SellingPrice
}
