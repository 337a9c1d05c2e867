package shrinkage

import (
	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
)

// Risk score weights: time pressure dominates sales performance.
const (
	timeUrgencyWeight  = 0.6
	salesProblemWeight = 0.4
)

// ScoreItem computes the 0-100 shrinkage risk score for an item from its
// remaining shelf life and sell-through performance.
func ScoreItem(it *domain.InventoryItem) float64 {
	daysRemaining := it.DaysRemaining
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	// Zero shelf life means the item is already at maximal time urgency.
	timeUrgency := 1.0
	if it.ShelfLifeDays > 0 {
		timeUrgency = 1 - float64(daysRemaining)/float64(it.ShelfLifeDays)
	}

	salesProblem := 1 - it.SaleThroughRate

	score := (timeUrgency*timeUrgencyWeight + salesProblem*salesProblemWeight) * 100

	return clamp(score, 0, 100)
}

// RiskLevelForScore buckets a risk score into its tier. Upper bounds are
// inclusive: 40 is still LOW, 80 is still HIGH.
func RiskLevelForScore(score float64) domain.RiskLevel {
	switch {
	case score <= 40:
		return domain.RiskLow
	case score <= 60:
		return domain.RiskMedium
	case score <= 80:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

var timeToActionByLevel = map[domain.RiskLevel]string{
	domain.RiskLow:      "7+ days",
	domain.RiskMedium:   "3-7 days",
	domain.RiskHigh:     "1-3 days",
	domain.RiskCritical: "0-24 hours",
}

// TimeToAction returns the display bucket for a tier. It is informational
// only and matches the tier 1:1.
func TimeToAction(level domain.RiskLevel) string {
	return timeToActionByLevel[level]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
