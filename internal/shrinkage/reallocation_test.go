package shrinkage

import (
	"testing"

	"github.com/andresuchdata/shrinkguard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func reallocCandidate() domain.InventoryItem {
	return domain.InventoryItem{
		Category:      domain.CategoryGeneralGoods,
		StoreLocation: domain.StoreA,
		Quantity:      20,
		DaysRemaining: 10,
	}
}

func TestCheckReallocationGates(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.InventoryItem)
	}{
		{"too close to expiry", func(it *domain.InventoryItem) { it.DaysRemaining = 2 }},
		{"batch too small", func(it *domain.InventoryItem) { it.Quantity = 4 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := reallocCandidate()
			tc.mutate(&it)

			res := CheckReallocation(&it)

			assert.False(t, res.Viable)
			assert.Empty(t, res.Store)
			assert.Zero(t, res.Cost)
			assert.Zero(t, res.SellThrough)
		})
	}
}

func TestCheckReallocationViableImpliesGates(t *testing.T) {
	for qty := 0; qty <= 10; qty++ {
		for days := 0; days <= 6; days++ {
			it := reallocCandidate()
			it.Quantity = qty
			it.DaysRemaining = days

			if CheckReallocation(&it).Viable {
				assert.GreaterOrEqual(t, qty, 5)
				assert.GreaterOrEqual(t, days, 3)
			}
		}
	}
}

func TestFindReallocationStorePrefersLargestCompatible(t *testing.T) {
	cases := []struct {
		name     string
		category domain.Category
		current  domain.StoreLocation
		want     domain.StoreLocation
		viable   bool
	}{
		{"general goods from A goes to B", domain.CategoryGeneralGoods, domain.StoreA, domain.StoreB, true},
		{"general goods from B goes to A", domain.CategoryGeneralGoods, domain.StoreB, domain.StoreA, true},
		{"perishables from A goes to B", domain.CategoryPerishables, domain.StoreA, domain.StoreB, true},
		{"fresh food from B goes to A", domain.CategoryFreshFood, domain.StoreB, domain.StoreA, true},
		{"fresh food from A has nowhere to go", domain.CategoryFreshFood, domain.StoreA, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, ok := findReallocationStore(tc.current, tc.category)
			assert.Equal(t, tc.viable, ok)
			assert.Equal(t, tc.want, store)
		})
	}
}

func TestReallocationCostUsesDistanceAndCategoryFactors(t *testing.T) {
	it := domain.InventoryItem{
		Category:      domain.CategoryFreshFood,
		StoreLocation: domain.StoreB,
		Quantity:      10,
		DaysRemaining: 5,
	}

	res := CheckReallocation(&it)

	assert.True(t, res.Viable)
	assert.Equal(t, domain.StoreA, res.Store)
	// 0.50 base x 1.2 (B-A) x 1.5 (fresh food) x 10 units
	assert.InDelta(t, 9.0, res.Cost, 0.0001)
	assert.InDelta(t, 0.85, res.SellThrough, 0.0001)
}

func TestStoreSellThroughFallsBackToDefault(t *testing.T) {
	assert.InDelta(t, defaultStoreSellThrough, storeSellThrough("Unknown", domain.StoreA), 0.0001)
	assert.InDelta(t, 0.85, storeSellThrough(domain.CategoryGeneralGoods, domain.StoreC), 0.0001)
}
