// backend-go/internal/repository/assessment_repository.go
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// AssessmentRepository persists assessed batches and serves dashboard reads.
type AssessmentRepository interface {
	SaveBatch(ctx context.Context, batch *domain.AssessmentBatch, items []domain.InventoryItem) error
	GetItems(ctx context.Context, filter domain.AssessmentFilter) ([]domain.InventoryItem, int, error)
	GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, error)
	ListBatches(ctx context.Context, limit int) ([]domain.AssessmentBatch, error)
}

type assessmentRepository struct {
	db *postgres.DB
}

func NewAssessmentRepository(db *postgres.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) SaveBatch(ctx context.Context, batch *domain.AssessmentBatch, items []domain.InventoryItem) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO assessment_batches (id, source, item_count, created_at)
			VALUES ($1, $2, $3, $4)
		`, batch.ID, batch.Source, batch.ItemCount, batch.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO assessment_items (
				batch_id, sku, product_name, category, store_location,
				quantity, cost_basis, selling_price,
				shelf_life_days, current_age_days, days_remaining, expiry_date,
				sale_through_rate, avg_daily_sales, last_week_sales,
				risk_score, risk_level, time_to_action,
				can_donate, can_reallocate, reallocation_store, reallocation_cost,
				target_store_sell_through, primary_recommendation, secondary_options,
				expected_recovery, potential_loss, margin_impact, profit_margin_pct,
				markdown_percentage, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29,
				$30, $31
			)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare item insert: %w", err)
		}
		defer stmt.Close()

		for i := range items {
			it := &items[i]
			_, err = stmt.ExecContext(ctx,
				batch.ID, it.SKU, it.ProductName, it.Category, it.StoreLocation,
				it.Quantity, it.CostBasis, it.SellingPrice,
				it.ShelfLifeDays, it.CurrentAgeDays, it.DaysRemaining, it.ExpiryDate,
				it.SaleThroughRate, it.AvgDailySales, it.LastWeekSales,
				it.RiskScore, it.RiskLevel, it.TimeToAction,
				it.CanDonate, it.CanReallocate, it.ReallocationStore, it.ReallocationCost,
				it.TargetStoreSellThrough, it.PrimaryRecommendation, domain.JoinStrategies(it.SecondaryOptions),
				it.ExpectedRecovery, it.PotentialLoss, it.MarginImpact, it.ProfitMarginPct,
				it.MarkdownPercentage, batch.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %s: %w", it.SKU, err)
			}
		}

		return nil
	})
}

// itemRow carries the joined secondary_options column alongside the domain
// struct for sqlx scanning.
type itemRow struct {
	domain.InventoryItem
	SecondaryOptionsRaw string `db:"secondary_options"`
}

func (r *assessmentRepository) GetItems(ctx context.Context, filter domain.AssessmentFilter) ([]domain.InventoryItem, int, error) {
	where, args := buildItemFilter(filter)

	countQuery := "SELECT COUNT(*) FROM assessment_items" + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting items: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	query := `
		SELECT batch_id, sku, product_name, category, store_location,
			quantity, cost_basis, selling_price,
			shelf_life_days, current_age_days, days_remaining, expiry_date,
			sale_through_rate, avg_daily_sales, last_week_sales,
			risk_score, risk_level, time_to_action,
			can_donate, can_reallocate, reallocation_store, reallocation_cost,
			target_store_sell_through, primary_recommendation, secondary_options,
			expected_recovery, potential_loss, margin_impact, profit_margin_pct,
			markdown_percentage, created_at
		FROM assessment_items` + where + fmt.Sprintf(`
		ORDER BY risk_score DESC, sku
		LIMIT %d OFFSET %d`, pageSize, (page-1)*pageSize)

	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error getting items: %w", err)
	}

	items := make([]domain.InventoryItem, len(rows))
	for i, row := range rows {
		items[i] = row.InventoryItem
		items[i].SecondaryOptions = domain.SplitStrategies(row.SecondaryOptionsRaw)
	}

	return items, total, nil
}

func (r *assessmentRepository) GetSummary(ctx context.Context, filter domain.AssessmentFilter) (*domain.AssessmentSummary, error) {
	where, args := buildItemFilter(filter)

	summary := &domain.AssessmentSummary{}

	headline := struct {
		TotalItems       int     `db:"total_items"`
		CriticalItems    int     `db:"critical_items"`
		PotentialLoss    float64 `db:"potential_loss"`
		ExpectedRecovery float64 `db:"expected_recovery"`
	}{}

	headlineQuery := `
		SELECT
			COUNT(*) AS total_items,
			COUNT(*) FILTER (WHERE risk_level = 'CRITICAL') AS critical_items,
			COALESCE(SUM(potential_loss), 0) AS potential_loss,
			COALESCE(SUM(expected_recovery), 0) AS expected_recovery
		FROM assessment_items` + where

	if err := r.db.GetContext(ctx, &headline, headlineQuery, args...); err != nil {
		return nil, fmt.Errorf("error getting summary totals: %w", err)
	}

	summary.TotalItems = headline.TotalItems
	summary.CriticalItems = headline.CriticalItems
	summary.PotentialLoss = headline.PotentialLoss
	summary.ExpectedRecovery = headline.ExpectedRecovery
	if summary.PotentialLoss > 0 {
		summary.RecoveryRate = summary.ExpectedRecovery / summary.PotentialLoss * 100
	}

	riskQuery := `
		SELECT risk_level, COUNT(*) AS count
		FROM assessment_items` + where + `
		GROUP BY risk_level`
	if err := r.db.SelectContext(ctx, &summary.ByRiskLevel, riskQuery, args...); err != nil {
		return nil, fmt.Errorf("error getting risk breakdown: %w", err)
	}

	recQuery := `
		SELECT primary_recommendation,
			COUNT(*) AS count,
			COALESCE(SUM(expected_recovery), 0) AS total_recovery,
			COALESCE(SUM(potential_loss), 0) AS total_loss
		FROM assessment_items` + where + `
		GROUP BY primary_recommendation`
	if err := r.db.SelectContext(ctx, &summary.ByRecommendation, recQuery, args...); err != nil {
		return nil, fmt.Errorf("error getting recommendation breakdown: %w", err)
	}

	return summary, nil
}

func (r *assessmentRepository) ListBatches(ctx context.Context, limit int) ([]domain.AssessmentBatch, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT id, source, item_count, created_at
		FROM assessment_batches
		ORDER BY created_at DESC
		LIMIT $1
	`

	var batches []domain.AssessmentBatch
	if err := r.db.SelectContext(ctx, &batches, query, limit); err != nil {
		return nil, fmt.Errorf("error listing batches: %w", err)
	}

	return batches, nil
}

func buildItemFilter(filter domain.AssessmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCounter := 1

	if filter.BatchID != "" {
		conditions = append(conditions, fmt.Sprintf("batch_id = $%d", argCounter))
		args = append(args, filter.BatchID)
		argCounter++
	}

	if len(filter.RiskLevels) > 0 {
		conditions = append(conditions, fmt.Sprintf("risk_level = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(asStrings(filter.RiskLevels)))
		argCounter++
	}

	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(asStrings(filter.Categories)))
		argCounter++
	}

	if len(filter.Stores) > 0 {
		conditions = append(conditions, fmt.Sprintf("store_location = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(asStrings(filter.Stores)))
		argCounter++
	}

	if len(filter.Recommendations) > 0 {
		conditions = append(conditions, fmt.Sprintf("primary_recommendation = ANY($%d::text[])", argCounter))
		args = append(args, pq.Array(asStrings(filter.Recommendations)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func asStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}

	return out
}
