package analysis

import (
	"sort"

	"vending-insights/models"
)

// Strength tiers.
const (
	StrengthStrong = "strong"
	StrengthMedium = "medium"
	StrengthWeak   = "weak"
)

const reasonNoProducts = "no product data"

type brandFigures struct {
	count       int
	performance float64
}

type tierOutcome struct {
	strength string
	reason   string
}

var strengthTable = []rule[brandFigures, tierOutcome]{
	{
		when: func(b brandFigures) bool { return b.count >= 5 && b.performance >= 80 },
		then: is[brandFigures](tierOutcome{StrengthStrong, "broad product range with excellent performance"}),
	},
	{
		when: func(b brandFigures) bool { return b.count >= 3 && b.performance >= 70 },
		then: is[brandFigures](tierOutcome{StrengthMedium, "moderate product range with good performance"}),
	},
}

var weakTier = tierOutcome{StrengthWeak, "few products or average performance"}

// BrandAggregate groups the products that share one brand.
type BrandAggregate struct {
	Brand    string
	Products []models.Product
}

func (b BrandAggregate) Count() int { return len(b.Products) }

func (b BrandAggregate) AveragePrice() float64 { return averagePrice(b.Products) }

func (b BrandAggregate) MinPrice() float64 {
	if len(b.Products) == 0 {
		return 0
	}
	lo := b.Products[0].Price
	for _, p := range b.Products[1:] {
		lo = min(lo, p.Price)
	}
	return lo
}

func (b BrandAggregate) MaxPrice() float64 {
	if len(b.Products) == 0 {
		return 0
	}
	hi := b.Products[0].Price
	for _, p := range b.Products[1:] {
		hi = max(hi, p.Price)
	}
	return hi
}

// AveragePerformance skips products that carry no performance data.
func (b BrandAggregate) AveragePerformance() float64 {
	return meanProductPerformance(b.Products)
}

// GroupByBrand splits products into aggregates ordered by brand name.
// Product order within a brand follows the input.
func GroupByBrand(products []models.Product) []BrandAggregate {
	index := make(map[string]int)
	var groups []BrandAggregate
	for _, p := range products {
		i, ok := index[p.Brand]
		if !ok {
			i = len(groups)
			index[p.Brand] = i
			groups = append(groups, BrandAggregate{Brand: p.Brand})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Brand < groups[j].Brand })
	return groups
}

// AnalyzeBrandStrength grades one brand's product set.
func AnalyzeBrandStrength(products []models.Product) models.BrandStrength {
	if len(products) == 0 {
		return models.BrandStrength{Strength: StrengthWeak, Reason: reasonNoProducts}
	}

	agg := BrandAggregate{Products: products}
	stats := &models.BrandStats{
		ProductCount:       agg.Count(),
		AveragePrice:       agg.AveragePrice(),
		AveragePerformance: agg.AveragePerformance(),
	}
	tier := decideOr(strengthTable, brandFigures{count: stats.ProductCount, performance: stats.AveragePerformance}, weakTier)

	return models.BrandStrength{Strength: tier.strength, Reason: tier.reason, Stats: stats}
}

// SummarizeBrand reports count and price figures; all zero without products.
func SummarizeBrand(brand string, products []models.Product) models.BrandSummary {
	agg := BrandAggregate{Brand: brand, Products: products}
	return models.BrandSummary{
		Brand:        brand,
		ProductCount: agg.Count(),
		AveragePrice: agg.AveragePrice(),
		MinPrice:     agg.MinPrice(),
		MaxPrice:     agg.MaxPrice(),
	}
}
