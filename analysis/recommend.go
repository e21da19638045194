package analysis

import (
	"fmt"

	"vending-insights/models"
)

// Recommendation tags.
const (
	TagValuePick   = "value pick"
	TagPremiumPick = "premium pick"
	TagBudgetPick  = "budget pick"
)

type candidate struct {
	product     models.Product
	performance models.PerformanceScore
	price       models.PricePosition
}

var recommendationTable = []rule[candidate, models.Recommendation]{
	{
		when: func(c candidate) bool {
			return c.performance.OverallScore >= 80 &&
				(c.price.Position == PositionMid || c.price.Position == PositionLow)
		},
		then: func(c candidate) models.Recommendation {
			return recommendation(c, TagValuePick, fmt.Sprintf(
				"performance %s, price %s, strong value for money", c.performance.Level, c.price.Position))
		},
	},
	{
		when: func(c candidate) bool { return c.performance.OverallScore >= 90 },
		then: func(c candidate) models.Recommendation {
			return recommendation(c, TagPremiumPick, fmt.Sprintf(
				"performance %s, suited to customers with demanding performance needs", c.performance.Level))
		},
	},
	{
		when: func(c candidate) bool { return c.price.Position == PositionLow },
		then: func(c candidate) models.Recommendation {
			return recommendation(c, TagBudgetPick, fmt.Sprintf(
				"price %s, suited to customers on a limited budget", c.price.Position))
		},
	},
}

func recommendation(c candidate, tag, reason string) models.Recommendation {
	return models.Recommendation{
		ProductID:   c.product.ID,
		ProductName: c.product.Name,
		Tag:         tag,
		Reason:      reason,
	}
}

// Recommend tags products against the average price of the given set.
// Products matching no rule are left out; input order is preserved.
func Recommend(products []models.Product) []models.Recommendation {
	recs := make([]models.Recommendation, 0)
	if len(products) == 0 {
		return recs
	}

	avg := averagePrice(products)
	for _, p := range products {
		c := candidate{
			product:     p,
			performance: ScorePerformance(p.Performance),
			price:       ClassifyPriceRelative(p.Price, avg),
		}
		if rec, ok := decide(recommendationTable, c); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}
