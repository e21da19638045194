package analysis

import (
	"fmt"

	"vending-insights/models"
)

// strategyAdvice is attached to every assessment regardless of input.
var strategyAdvice = []string{
	"focus development on the mid-to-high-end segment where demand is strongest",
	"keep improving product performance and user experience",
	"build out a complete after-sales service network",
}

// AssessProducts writes a short narrative per product: one line on its price
// band and, when it has performance data, one line on its performance.
func AssessProducts(products []models.Product) models.ProductAssessment {
	out := models.ProductAssessment{
		Insights:        make([]string, 0, len(products)*2),
		Recommendations: append([]string(nil), strategyAdvice...),
	}
	if len(products) == 0 {
		return out
	}

	for _, p := range products {
		out.Insights = append(out.Insights, priceBandInsight(p))
		if score, ok := averagePerformance(p.Performance); ok {
			out.Insights = append(out.Insights, fmt.Sprintf("%s performance is %s", p.Name, InsightWording(score)))
		}
	}

	out.PriceRange = models.PriceRange{
		Low:     products[0].Price,
		High:    products[0].Price,
		Average: averagePrice(products),
	}
	for _, p := range products[1:] {
		out.PriceRange.Low = min(out.PriceRange.Low, p.Price)
		out.PriceRange.High = max(out.PriceRange.High, p.Price)
	}
	return out
}

func priceBandInsight(p models.Product) string {
	switch ClassifyPriceAbsolute(p.Price) {
	case BandLow:
		return fmt.Sprintf("%s is priced low, suited to customers on a limited budget", p.Name)
	case BandHigh:
		return fmt.Sprintf("%s is priced high, positioned for the high-end market", p.Name)
	default:
		return fmt.Sprintf("%s is moderately priced, suited to the mass market", p.Name)
	}
}
