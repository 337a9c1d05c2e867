package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessment_batches (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS assessment_items (
	id BIGSERIAL PRIMARY KEY,
	batch_id TEXT NOT NULL REFERENCES assessment_batches(id) ON DELETE CASCADE,
	sku TEXT NOT NULL,
	product_name TEXT NOT NULL,
	category TEXT NOT NULL,
	store_location TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	cost_basis DOUBLE PRECISION NOT NULL,
	selling_price DOUBLE PRECISION NOT NULL,
	shelf_life_days INTEGER NOT NULL,
	current_age_days INTEGER NOT NULL,
	days_remaining INTEGER NOT NULL,
	expiry_date TEXT NOT NULL,
	sale_through_rate DOUBLE PRECISION NOT NULL,
	avg_daily_sales DOUBLE PRECISION NOT NULL,
	last_week_sales INTEGER NOT NULL,
	risk_score DOUBLE PRECISION NOT NULL,
	risk_level TEXT NOT NULL,
	time_to_action TEXT NOT NULL,
	can_donate BOOLEAN NOT NULL,
	can_reallocate BOOLEAN NOT NULL,
	reallocation_store TEXT NOT NULL DEFAULT '',
	reallocation_cost DOUBLE PRECISION NOT NULL,
	target_store_sell_through DOUBLE PRECISION NOT NULL,
	primary_recommendation TEXT NOT NULL,
	secondary_options TEXT NOT NULL,
	expected_recovery DOUBLE PRECISION NOT NULL,
	potential_loss DOUBLE PRECISION NOT NULL,
	margin_impact DOUBLE PRECISION NOT NULL,
	profit_margin_pct DOUBLE PRECISION NOT NULL,
	markdown_percentage DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_assessment_items_batch ON assessment_items(batch_id);
CREATE INDEX IF NOT EXISTS idx_assessment_items_risk ON assessment_items(risk_level);
`

// EnsureSchema creates the assessment tables if they do not exist yet.
func EnsureSchema(ctx context.Context, exec sqlx.ExecerContext) error {
	_, err := exec.ExecContext(ctx, schema)

	return err
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, db.DB)
}
