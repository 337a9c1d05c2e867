// Package shrinkage implements the shrinkage risk assessment pipeline:
// risk scoring, reallocation matching, disposition decisions, and financial
// recovery estimates over a batch of inventory items.
package shrinkage

import (
	"math/rand"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
)

// Pipeline runs the four assessment stages over item batches. It owns the
// random source used by financial normalization; everything else is
// deterministic.
//
// Callers must invoke the stages in order: ScoreRisk, ApplyDecisionLogic,
// MatchReallocation, EstimateFinancials. ApplyDecisionLogic produces a
// provisional recommendation with reallocation assumed unavailable so that
// donation/markdown/liquidation eligibility is visible early;
// MatchReallocation then re-runs the decision with real viability. Run wires
// the whole sequence, including a Normalize pre-pass.
type Pipeline struct {
	rng *rand.Rand
}

// NewPipeline creates a Pipeline drawing normalization randomness from rng.
// A nil rng gets a time-seeded source.
func NewPipeline(rng *rand.Rand) *Pipeline {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Pipeline{rng: rng}
}

// Normalize repairs pricing on every item so the margin invariant holds
// before scoring. Safe to call on already-clean batches.
func (p *Pipeline) Normalize(items []domain.InventoryItem) []domain.InventoryItem {
	for i := range items {
		NormalizeFinancials(p.rng, &items[i])
	}

	return items
}

// ScoreRisk populates risk_score, risk_level, and time_to_action.
func (p *Pipeline) ScoreRisk(items []domain.InventoryItem) []domain.InventoryItem {
	for i := range items {
		it := &items[i]
		it.RiskScore = ScoreItem(it)
		it.RiskLevel = RiskLevelForScore(it.RiskScore)
		it.TimeToAction = TimeToAction(it.RiskLevel)
	}

	return items
}

// ApplyDecisionLogic is the first decision pass: donation eligibility plus a
// provisional recommendation computed with can_reallocate forced to false.
func (p *Pipeline) ApplyDecisionLogic(items []domain.InventoryItem) []domain.InventoryItem {
	for i := range items {
		it := &items[i]
		it.CanDonate = CanDonateItem(it.Category, it.DaysRemaining, it.CostBasis)
		it.CanReallocate = false
		decideItem(it)
	}

	return items
}

// MatchReallocation populates the reallocation fields and re-runs the
// decision now that viability is known. LOW-risk items stay at NO ACTION by
// construction of the decision table.
func (p *Pipeline) MatchReallocation(items []domain.InventoryItem) []domain.InventoryItem {
	for i := range items {
		it := &items[i]

		res := CheckReallocation(it)
		it.CanReallocate = res.Viable
		it.ReallocationStore = res.Store
		it.ReallocationCost = res.Cost
		it.TargetStoreSellThrough = res.SellThrough

		decideItem(it)
	}

	return items
}

// EstimateFinancials populates the recovery figures for the final
// recommendation.
func (p *Pipeline) EstimateFinancials(items []domain.InventoryItem) []domain.InventoryItem {
	for i := range items {
		it := &items[i]
		it.ExpectedRecovery = ExpectedRecovery(it)
		it.PotentialLoss = PotentialLoss(it)
		it.MarginImpact = MarginImpact(it)
		it.ProfitMarginPct = ProfitMarginPct(it)
		it.MarkdownPercentage = MarkdownPercentage(it.RiskScore)
	}

	return items
}

// Run executes the full assessment over a batch in the required order.
func (p *Pipeline) Run(items []domain.InventoryItem) []domain.InventoryItem {
	items = p.Normalize(items)
	items = p.ScoreRisk(items)
	items = p.ApplyDecisionLogic(items)
	items = p.MatchReallocation(items)
	items = p.EstimateFinancials(items)

	return items
}

func decideItem(it *domain.InventoryItem) {
	it.PrimaryRecommendation = PrimaryStrategy(it.RiskScore, it.Category, it.CanReallocate, it.CanDonate, it.DaysRemaining)
	it.SecondaryOptions = SecondaryOptions(it.Category, it.CanReallocate, it.CanDonate, it.PrimaryRecommendation, it.DaysRemaining)
}
