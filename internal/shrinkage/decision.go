package shrinkage

import (
	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
)

// minDonationValue filters out items too cheap to be worth the donation
// paperwork.
const minDonationValue = 1.0

// CanDonateItem reports whether an item qualifies for donation: edible
// category, at least one day left for processing, and non-trivial value.
func CanDonateItem(category domain.Category, daysRemaining int, costBasis float64) bool {
	if category != domain.CategoryFreshFood && category != domain.CategoryPerishables {
		return false
	}

	if daysRemaining < 1 {
		return false
	}

	if costBasis < minDonationValue {
		return false
	}

	return true
}

// PrimaryStrategy picks the disposition recommendation. Rules are evaluated
// in strict precedence order within each tier; the first match wins.
func PrimaryStrategy(riskScore float64, category domain.Category, canReallocate, canDonate bool, daysRemaining int) domain.Strategy {
	switch RiskLevelForScore(riskScore) {
	case domain.RiskCritical:
		if category == domain.CategoryFreshFood {
			// At least 1 day needed for donation processing.
			if canDonate && daysRemaining >= 1 {
				return domain.StrategyDonate
			}
			return domain.StrategyLiquidate
		}
		return domain.StrategyLiquidate

	case domain.RiskHigh:
		if category == domain.CategoryFreshFood {
			if canDonate && daysRemaining >= 2 {
				return domain.StrategyDonate
			}
			if canReallocate && daysRemaining >= 3 {
				return domain.StrategyReallocateMarkdown
			}
			return domain.StrategyMarkdown
		}
		if canReallocate && daysRemaining >= 4 {
			return domain.StrategyReallocateMarkdown
		}
		if canReallocate {
			return domain.StrategyReallocate
		}
		return domain.StrategyMarkdown

	case domain.RiskMedium:
		if canReallocate && daysRemaining >= 5 {
			return domain.StrategyReallocateMarkdown
		}
		if canReallocate {
			return domain.StrategyReallocate
		}
		if canDonate && (category == domain.CategoryFreshFood || category == domain.CategoryPerishables) && daysRemaining >= 3 {
			return domain.StrategyDonate
		}
		return domain.StrategyMarkdown

	default:
		return domain.StrategyNoAction
	}
}

// SecondaryOptions lists the fallback strategies still open to an item, in
// fixed order, excluding the primary. MARKDOWN and LIQUIDATE are always on
// the table; REALLOCATE and DONATE keep their own eligibility gates.
func SecondaryOptions(category domain.Category, canReallocate, canDonate bool, primary domain.Strategy, daysRemaining int) []domain.Strategy {
	var options []domain.Strategy

	if primary != domain.StrategyReallocate && canReallocate {
		options = append(options, domain.StrategyReallocate)
	}

	if primary != domain.StrategyDonate && canDonate &&
		(category == domain.CategoryFreshFood || category == domain.CategoryPerishables) &&
		daysRemaining >= 1 {
		options = append(options, domain.StrategyDonate)
	}

	if primary != domain.StrategyMarkdown {
		options = append(options, domain.StrategyMarkdown)
	}

	if primary != domain.StrategyLiquidate {
		options = append(options, domain.StrategyLiquidate)
	}

	return options
}
