package shrinkage

import (
	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
)

// Recovery model constants.
const (
	salvageRate        = 0.10 // salvage value of unsold stock left alone
	reallocPriceFactor = 0.95 // slight price concession at the receiving store
	reallocSplit       = 0.70 // share of stock shipped under REALLOCATE+MARKDOWN
	donationTaxRate    = 0.30 // tax-deduction proxy on cost basis
	liquidationRate    = 0.30 // bulk buyer pays 30% of retail
)

// MarkdownPercentage maps a risk score to the discount depth applied under a
// markdown strategy.
func MarkdownPercentage(riskScore float64) float64 {
	switch {
	case riskScore >= 80:
		return 30
	case riskScore >= 60:
		return 25
	case riskScore >= 40:
		return 15
	default:
		return 0
	}
}

// ExpectedRecovery estimates the money recovered by executing the item's
// final primary recommendation.
func ExpectedRecovery(it *domain.InventoryItem) float64 {
	quantity := float64(it.Quantity)

	switch it.PrimaryRecommendation {
	case domain.StrategyNoAction:
		sold := quantity * it.SaleThroughRate
		unsold := quantity - sold
		return sold*it.SellingPrice + unsold*it.SellingPrice*salvageRate

	case domain.StrategyReallocate:
		base := it.SellingPrice * reallocPriceFactor * quantity
		return base*it.TargetStoreSellThrough - it.ReallocationCost

	case domain.StrategyMarkdown:
		pct := MarkdownPercentage(it.RiskScore)
		return it.SellingPrice * (1 - pct/100) * quantity

	case domain.StrategyReallocateMarkdown:
		reallocQty := quantity * reallocSplit
		base := it.SellingPrice * reallocPriceFactor * reallocQty
		reallocRecovery := base*it.TargetStoreSellThrough - it.ReallocationCost*reallocSplit

		markdownQty := quantity * (1 - reallocSplit)
		pct := MarkdownPercentage(it.RiskScore)
		markdownRecovery := it.SellingPrice * (1 - pct/100) * markdownQty

		return reallocRecovery + markdownRecovery

	case domain.StrategyDonate:
		return it.CostBasis * donationTaxRate * quantity

	case domain.StrategyLiquidate:
		return it.SellingPrice * liquidationRate * quantity

	default:
		return 0
	}
}

// PotentialLoss is the cost basis expected to be written off if nothing is
// done: the stock that will not sell at the current rate.
func PotentialLoss(it *domain.InventoryItem) float64 {
	unsoldProbability := 1 - it.SaleThroughRate

	return it.CostBasis * float64(it.Quantity) * unsoldProbability
}

// totalStrategyCost is the cost basis of the batch plus any transport spend
// the chosen strategy incurs. Under the combined strategy only the shipped
// portion pays transport.
func totalStrategyCost(it *domain.InventoryItem) float64 {
	total := it.CostBasis * float64(it.Quantity)

	switch it.PrimaryRecommendation {
	case domain.StrategyReallocate:
		total += it.ReallocationCost
	case domain.StrategyReallocateMarkdown:
		total += it.ReallocationCost * reallocSplit
	}

	return total
}

// MarginImpact is expected recovery minus total strategy cost.
func MarginImpact(it *domain.InventoryItem) float64 {
	return it.ExpectedRecovery - totalStrategyCost(it)
}

// ProfitMarginPct expresses the margin impact as a percentage of expected
// recovery. The denominator is recovery rather than cost, matching the
// dashboard's historical definition; 0 when recovery is 0.
func ProfitMarginPct(it *domain.InventoryItem) float64 {
	if it.ExpectedRecovery == 0 {
		return 0
	}

	return (it.ExpectedRecovery - totalStrategyCost(it)) / it.ExpectedRecovery * 100
}
