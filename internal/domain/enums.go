package domain

import "strings"

// Category is a product category recognised by the assessment pipeline.
type Category string

const (
	CategoryFreshFood    Category = "Fresh Food"
	CategoryPerishables  Category = "Perishables"
	CategoryGeneralGoods Category = "General Goods"
)

// Categories lists all valid categories in display order.
var Categories = []Category{CategoryFreshFood, CategoryPerishables, CategoryGeneralGoods}

var categoryByKey = map[string]Category{
	"fresh food":    CategoryFreshFood,
	"perishables":   CategoryPerishables,
	"general goods": CategoryGeneralGoods,
}

// ParseCategory returns the category for a given label (case-insensitive).
func ParseCategory(label string) (Category, bool) {
	c, ok := categoryByKey[strings.ToLower(strings.TrimSpace(label))]

	return c, ok
}

// StoreLocation identifies one of the three stores in the network.
type StoreLocation string

const (
	StoreA StoreLocation = "Store_A"
	StoreB StoreLocation = "Store_B"
	StoreC StoreLocation = "Store_C"
)

// StoreLocations lists all stores in priority order (largest first).
var StoreLocations = []StoreLocation{StoreA, StoreB, StoreC}

var storeByKey = map[string]StoreLocation{
	"store_a": StoreA,
	"store_b": StoreB,
	"store_c": StoreC,
}

// ParseStoreLocation returns the store for a given label (case-insensitive).
func ParseStoreLocation(label string) (StoreLocation, bool) {
	s, ok := storeByKey[strings.ToLower(strings.TrimSpace(label))]

	return s, ok
}

// RiskLevel is the bucketed shrinkage risk tier derived from the risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevels lists the tiers from least to most urgent.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

var riskLevelByKey = map[string]RiskLevel{
	"low":      RiskLow,
	"medium":   RiskMedium,
	"high":     RiskHigh,
	"critical": RiskCritical,
}

// ParseRiskLevel returns the tier for a given label (case-insensitive).
func ParseRiskLevel(label string) (RiskLevel, bool) {
	l, ok := riskLevelByKey[strings.ToLower(strings.TrimSpace(label))]

	return l, ok
}

// Strategy is a disposition recommendation for an at-risk item.
type Strategy string

const (
	StrategyNoAction           Strategy = "NO ACTION"
	StrategyMarkdown           Strategy = "MARKDOWN"
	StrategyReallocate         Strategy = "REALLOCATE"
	StrategyReallocateMarkdown Strategy = "REALLOCATE+MARKDOWN"
	StrategyDonate             Strategy = "DONATE"
	StrategyLiquidate          Strategy = "LIQUIDATE"
)

// Strategies lists every recommendation the decision engine can emit.
var Strategies = []Strategy{
	StrategyNoAction,
	StrategyMarkdown,
	StrategyReallocate,
	StrategyReallocateMarkdown,
	StrategyDonate,
	StrategyLiquidate,
}

var strategyByKey = map[string]Strategy{
	"no action":           StrategyNoAction,
	"markdown":            StrategyMarkdown,
	"reallocate":          StrategyReallocate,
	"reallocate+markdown": StrategyReallocateMarkdown,
	"donate":              StrategyDonate,
	"liquidate":           StrategyLiquidate,
}

// ParseStrategy returns the strategy for a given label (case-insensitive).
func ParseStrategy(label string) (Strategy, bool) {
	s, ok := strategyByKey[strings.ToLower(strings.TrimSpace(label))]

	return s, ok
}

// JoinStrategies renders an ordered strategy list the way the dashboard
// displays secondary options: pipe-separated, or "None" when empty.
func JoinStrategies(options []Strategy) string {
	if len(options) == 0 {
		return "None"
	}

	parts := make([]string, len(options))
	for i, opt := range options {
		parts[i] = string(opt)
	}

	return strings.Join(parts, " | ")
}

// SplitStrategies parses the pipe-separated form produced by JoinStrategies.
// Unknown labels are dropped.
func SplitStrategies(joined string) []Strategy {
	joined = strings.TrimSpace(joined)
	if joined == "" || strings.EqualFold(joined, "None") {
		return nil
	}

	var options []Strategy
	for _, part := range strings.Split(joined, "|") {
		if s, ok := ParseStrategy(part); ok {
			options = append(options, s)
		}
	}

	return options
}
