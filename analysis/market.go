package analysis

import "vending-insights/models"

var priceLevelTable = []rule[float64, string]{
	{when: above(10000), then: is[float64]("market is positioned high-end overall")},
	{when: above(5000), then: is[float64]("market is positioned mid-range overall")},
}

var competitionTable = []rule[float64, string]{
	{when: atLeast(10), then: is[float64]("competition is intense, many brands")},
	{when: atLeast(5), then: is[float64]("competition is moderate, several brands")},
}

var marketPerformanceTable = []rule[float64, string]{
	{when: atLeast(80), then: is[float64]("product performance is excellent overall")},
	{when: atLeast(70), then: is[float64]("product performance is good overall")},
}

// MarketInsights returns one statement each for price level, competitive
// density and performance level, in that order.
func MarketInsights(products []models.Product) []string {
	if len(products) == 0 {
		return []string{}
	}

	brands := distinctBrands(products)
	return []string{
		decideOr(priceLevelTable, averagePrice(products), "market is positioned low-end overall"),
		decideOr(competitionTable, float64(len(brands)), "competition is limited, few brands"),
		decideOr(marketPerformanceTable, meanProductPerformance(products), "product performance is average overall"),
	}
}

func distinctBrands(products []models.Product) map[string]int {
	brands := make(map[string]int)
	for _, p := range products {
		brands[p.Brand]++
	}
	return brands
}
