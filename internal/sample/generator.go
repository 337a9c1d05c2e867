// Package sample generates demo inventory batches with a controlled spread
// of categories and risk levels.
package sample

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/andresuchdata/shrinkguard/backend-go/internal/shrinkage"
)

// DefaultSeed keeps demo batches reproducible across runs.
const DefaultSeed = 42

type categoryProfile struct {
	shelfLifeMin, shelfLifeMax int
	costMin, costMax           float64
	marginMin, marginMax       float64
	products                   []string
	skuPrefix                  string
}

var categoryProfiles = map[domain.Category]categoryProfile{
	domain.CategoryFreshFood: {
		shelfLifeMin: 1, shelfLifeMax: 7,
		costMin: 2, costMax: 12,
		marginMin: 1.4, marginMax: 2.2,
		products:  []string{"Organic Milk 1L", "Fresh Bread", "Bananas 1kg", "Lettuce Head", "Chicken Breast 1kg"},
		skuPrefix: "FRES",
	},
	domain.CategoryPerishables: {
		shelfLifeMin: 5, shelfLifeMax: 30,
		costMin: 2, costMax: 18,
		marginMin: 1.5, marginMax: 2.5,
		products:  []string{"Yogurt 500g", "Cheese Block", "Deli Ham 500g", "Muffins 6pk", "Fresh Pasta"},
		skuPrefix: "PERI",
	},
	domain.CategoryGeneralGoods: {
		shelfLifeMin: 30, shelfLifeMax: 365,
		costMin: 3, costMax: 50,
		marginMin: 1.3, marginMax: 2.0,
		products:  []string{"Canned Beans", "Pasta Sauce", "Breakfast Cereal", "Shampoo 400ml", "Laundry Detergent"},
		skuPrefix: "GENE",
	},
}

// Age and sell-through bands used to steer an item toward a target tier.
var riskBands = map[domain.RiskLevel]struct {
	ageMinFrac, ageMaxFrac float64
	rateMin, rateMax       float64
}{
	domain.RiskLow:      {0.0, 0.3, 0.65, 0.95},
	domain.RiskMedium:   {0.3, 0.6, 0.45, 0.65},
	domain.RiskHigh:     {0.6, 0.8, 0.25, 0.45},
	domain.RiskCritical: {0.8, 1.0, 0.05, 0.25},
}

// Generator builds demo batches from an owned random source.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator seeded for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Generate produces numItems inventory items spread evenly across the three
// categories, and within each category across the four risk tiers. Pricing
// is passed through the same normalization safety net the pipeline applies
// to uploads.
func (g *Generator) Generate(numItems int) []domain.InventoryItem {
	if numItems <= 0 {
		return nil
	}

	perCategory := numItems / 3
	remainder := numItems % 3

	counts := map[domain.Category]int{
		domain.CategoryFreshFood:    perCategory,
		domain.CategoryPerishables:  perCategory,
		domain.CategoryGeneralGoods: perCategory,
	}
	if remainder > 0 {
		counts[domain.CategoryFreshFood]++
	}
	if remainder > 1 {
		counts[domain.CategoryPerishables]++
	}

	now := g.now()
	items := make([]domain.InventoryItem, 0, numItems)
	itemID := 1

	for _, category := range domain.Categories {
		count := counts[category]
		targets := g.shuffledRiskTargets(count)

		for i := 0; i < count; i++ {
			items = append(items, g.generateItem(category, targets[i], itemID, now))
			itemID++
		}
	}

	for i := range items {
		shrinkage.NormalizeFinancials(g.rng, &items[i])
	}

	return items
}

// shuffledRiskTargets spreads count items evenly across the four tiers, then
// shuffles so tiers do not cluster by SKU.
func (g *Generator) shuffledRiskTargets(count int) []domain.RiskLevel {
	perLevel := count / 4
	distribution := []int{perLevel, perLevel, perLevel, perLevel}
	for i := 0; i < count%4; i++ {
		distribution[i]++
	}

	targets := make([]domain.RiskLevel, 0, count)
	for i, level := range domain.RiskLevels {
		for j := 0; j < distribution[i]; j++ {
			targets = append(targets, level)
		}
	}

	g.rng.Shuffle(len(targets), func(i, j int) {
		targets[i], targets[j] = targets[j], targets[i]
	})

	return targets
}

func (g *Generator) generateItem(category domain.Category, target domain.RiskLevel, itemID int, now time.Time) domain.InventoryItem {
	profile := categoryProfiles[category]
	band := riskBands[target]

	shelfLife := g.intBetween(profile.shelfLifeMin, profile.shelfLifeMax)

	ageLo := int(float64(shelfLife) * band.ageMinFrac)
	ageHi := int(float64(shelfLife) * band.ageMaxFrac)
	if target == domain.RiskCritical {
		// Critical items stop one day short of full shelf life so age stays
		// below expiry.
		ageHi = shelfLife - 1
		if ageHi < ageLo {
			ageHi = ageLo
		}
	}
	currentAge := g.intBetween(ageLo, ageHi)

	rate := g.floatBetween(band.rateMin, band.rateMax)

	costBasis := round2(g.floatBetween(profile.costMin, profile.costMax))
	sellingPrice := round2(costBasis * g.floatBetween(profile.marginMin, profile.marginMax))

	quantity := g.intBetween(5, 100)
	avgDailySales := math.Round(float64(quantity)*rate/7*10) / 10
	lastWeekSales := int(avgDailySales * 7 * g.floatBetween(0.8, 1.2))

	item := domain.InventoryItem{
		SKU:             fmt.Sprintf("%s_%03d", profile.skuPrefix, itemID),
		ProductName:     profile.products[g.rng.Intn(len(profile.products))],
		Category:        category,
		StoreLocation:   domain.StoreLocations[g.rng.Intn(len(domain.StoreLocations))],
		Quantity:        quantity,
		CostBasis:       costBasis,
		SellingPrice:    sellingPrice,
		ShelfLifeDays:   shelfLife,
		CurrentAgeDays:  currentAge,
		SaleThroughRate: round2(rate),
		AvgDailySales:   avgDailySales,
		LastWeekSales:   lastWeekSales,
	}
	item.RefreshShelfLife(now)

	return item
}

func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) floatBetween(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
