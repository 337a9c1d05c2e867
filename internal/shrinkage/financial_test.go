package shrinkage

import (
	"testing"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMarkdownPercentageSteps(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{85, 30},
		{80, 30},
		{79.9, 25},
		{60, 25},
		{59.9, 15},
		{40, 15},
		{39.9, 0},
		{0, 0},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, MarkdownPercentage(tc.score), 0.0001, "score %.1f", tc.score)
	}
}

func TestExpectedRecoveryNoAction(t *testing.T) {
	it := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyNoAction,
		Quantity:              10,
		SellingPrice:          5,
		SaleThroughRate:       0.6,
	}

	// 6 sold at full price + 4 unsold at 10% salvage.
	assert.InDelta(t, 6*5+4*5*0.10, ExpectedRecovery(it), 0.0001)
}

func TestExpectedRecoveryMarkdown(t *testing.T) {
	// Scenario: risk 85 gives a 30% markdown on a $10 item, 20 units.
	it := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyMarkdown,
		RiskScore:             85,
		SellingPrice:          10,
		Quantity:              20,
	}

	assert.InDelta(t, 140.0, ExpectedRecovery(it), 0.0001)
}

func TestExpectedRecoveryReallocate(t *testing.T) {
	it := &domain.InventoryItem{
		PrimaryRecommendation:  domain.StrategyReallocate,
		SellingPrice:           10,
		Quantity:               20,
		TargetStoreSellThrough: 0.8,
		ReallocationCost:       12,
	}

	// 10 * 0.95 * 20 * 0.8 - 12
	assert.InDelta(t, 140.0, ExpectedRecovery(it), 0.0001)
}

func TestExpectedRecoveryReallocateMarkdownSplit(t *testing.T) {
	// Scenario: 100 units at $10, risk 65 (25% markdown), target sell-through
	// 0.8, transport $50. 70% shipped, 30% marked down.
	it := &domain.InventoryItem{
		PrimaryRecommendation:  domain.StrategyReallocateMarkdown,
		SellingPrice:           10,
		Quantity:               100,
		RiskScore:              65,
		TargetStoreSellThrough: 0.8,
		ReallocationCost:       50,
	}

	// realloc: (10*0.95*70*0.8) - 35 = 497; markdown: 10*0.75*30 = 225
	assert.InDelta(t, 722.0, ExpectedRecovery(it), 0.0001)
}

func TestExpectedRecoveryDonateAndLiquidate(t *testing.T) {
	donate := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyDonate,
		CostBasis:             4,
		Quantity:              10,
	}
	assert.InDelta(t, 12.0, ExpectedRecovery(donate), 0.0001)

	liquidate := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyLiquidate,
		SellingPrice:          8,
		Quantity:              10,
	}
	assert.InDelta(t, 24.0, ExpectedRecovery(liquidate), 0.0001)
}

func TestPotentialLossIgnoresStrategy(t *testing.T) {
	it := &domain.InventoryItem{
		CostBasis:       3,
		Quantity:        10,
		SaleThroughRate: 0.4,
	}

	assert.InDelta(t, 3*10*0.6, PotentialLoss(it), 0.0001)
}

func TestMarginImpactAddsTransportForReallocation(t *testing.T) {
	it := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyReallocate,
		CostBasis:             2,
		Quantity:              10,
		ReallocationCost:      6,
		ExpectedRecovery:      50,
	}
	assert.InDelta(t, 50-(20+6), MarginImpact(it), 0.0001)

	it.PrimaryRecommendation = domain.StrategyReallocateMarkdown
	assert.InDelta(t, 50-(20+6*0.7), MarginImpact(it), 0.0001)

	it.PrimaryRecommendation = domain.StrategyMarkdown
	assert.InDelta(t, 50-20, MarginImpact(it), 0.0001)
}

func TestProfitMarginPctDividesByRecovery(t *testing.T) {
	it := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyMarkdown,
		CostBasis:             2,
		Quantity:              10,
		ExpectedRecovery:      40,
	}

	assert.InDelta(t, (40.0-20.0)/40.0*100, ProfitMarginPct(it), 0.0001)
}

func TestProfitMarginPctZeroRecovery(t *testing.T) {
	it := &domain.InventoryItem{
		PrimaryRecommendation: domain.StrategyLiquidate,
		CostBasis:             2,
		Quantity:              10,
		ExpectedRecovery:      0,
	}

	assert.Zero(t, ProfitMarginPct(it))
}
