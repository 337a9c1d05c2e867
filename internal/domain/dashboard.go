package domain

import "time"

// AssessmentBatch groups the items assessed together in one pipeline run.
type AssessmentBatch struct {
	ID        string    `json:"id" db:"id"`
	Source    string    `json:"source" db:"source"`
	ItemCount int       `json:"item_count" db:"item_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Batch sources.
const (
	BatchSourceUpload = "upload"
	BatchSourceSample = "sample"
	BatchSourceDrive  = "drive"
)

// AssessmentFilter narrows item listings and summary aggregates.
type AssessmentFilter struct {
	BatchID         string          `json:"batch_id"`
	RiskLevels      []RiskLevel     `json:"risk_levels"`
	Categories      []Category      `json:"categories"`
	Stores          []StoreLocation `json:"stores"`
	Recommendations []Strategy      `json:"recommendations"`
	Page            int             `json:"page"`
	PageSize        int             `json:"page_size"`
}

// RiskLevelCount is one slice of the risk distribution chart.
type RiskLevelCount struct {
	RiskLevel RiskLevel `json:"risk_level" db:"risk_level"`
	Count     int       `json:"count" db:"count"`
}

// RecommendationCount is one slice of the recommendation distribution chart.
type RecommendationCount struct {
	Recommendation Strategy `json:"recommendation" db:"primary_recommendation"`
	Count          int      `json:"count" db:"count"`
	TotalRecovery  float64  `json:"total_recovery" db:"total_recovery"`
	TotalLoss      float64  `json:"total_loss" db:"total_loss"`
}

// AssessmentSummary is the dashboard headline block plus its breakdowns.
type AssessmentSummary struct {
	TotalItems       int                   `json:"total_items"`
	CriticalItems    int                   `json:"critical_items"`
	PotentialLoss    float64               `json:"potential_loss"`
	ExpectedRecovery float64               `json:"expected_recovery"`
	RecoveryRate     float64               `json:"recovery_rate"`
	ByRiskLevel      []RiskLevelCount      `json:"by_risk_level"`
	ByRecommendation []RecommendationCount `json:"by_recommendation"`
}
