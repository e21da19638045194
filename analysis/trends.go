package analysis

import "vending-insights/models"

// IndustryTrends aggregates the full catalog into totals and distributions.
func IndustryTrends(catalog []models.Product) models.TrendSummary {
	summary := models.TrendSummary{BrandDistribution: make(map[string]int)}
	if len(catalog) == 0 {
		return summary
	}

	summary.BrandDistribution = distinctBrands(catalog)
	summary.TotalProducts = len(catalog)
	summary.TotalBrands = len(summary.BrandDistribution)
	summary.AveragePrice = averagePrice(catalog)

	for _, p := range catalog {
		switch ClassifyPriceAbsolute(p.Price) {
		case BandLow:
			summary.PriceDistribution.Low++
		case BandMedium:
			summary.PriceDistribution.Medium++
		case BandHigh:
			summary.PriceDistribution.High++
		}
	}
	return summary
}
