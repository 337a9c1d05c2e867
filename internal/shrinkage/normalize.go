package shrinkage

import (
	"math"
	"math/rand"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
)

// Margin bounds enforced by financial normalization.
const (
	minGrossMargin = 0.10
	maxGrossMargin = 0.70

	// Rounding to cents can nudge a resampled price back out of bounds, so
	// the repair loop re-checks after every draw instead of trusting one.
	maxRepairRounds = 8
)

// NormalizeFinancials repairs an item's selling price until it is above cost
// and the gross margin sits inside [0.10, 0.70]. Resampling draws from the
// supplied source so batches are reproducible under a fixed seed.
func NormalizeFinancials(rng *rand.Rand, it *domain.InventoryItem) {
	for round := 0; round < maxRepairRounds; round++ {
		if it.SellingPrice <= it.CostBasis {
			it.SellingPrice = roundCents(it.CostBasis * uniform(rng, 1.3, 2.0))
			continue
		}

		margin := it.GrossMargin()
		if margin > maxGrossMargin {
			it.SellingPrice = roundCents(it.CostBasis * uniform(rng, 1.3, 1.7))
			continue
		}
		if margin < minGrossMargin {
			it.SellingPrice = roundCents(it.CostBasis * uniform(rng, 1.4, 2.0))
			continue
		}

		return
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
