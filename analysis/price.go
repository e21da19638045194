package analysis

import "vending-insights/models"

type PriceBand string

const (
	BandLow    PriceBand = "low"
	BandMedium PriceBand = "medium"
	BandHigh   PriceBand = "high"
)

const (
	lowBandCeiling    = 5000
	mediumBandCeiling = 15000
)

// Relative positions.
const (
	PositionUnknown = "unknown"
	PositionLow     = "low"
	PositionMid     = "mid"
	PositionHigh    = "high"
)

// ClassifyPriceAbsolute places a price into the fixed market bands.
// Both band edges belong to BandMedium.
func ClassifyPriceAbsolute(price float64) PriceBand {
	switch {
	case price < lowBandCeiling:
		return BandLow
	case price <= mediumBandCeiling:
		return BandMedium
	default:
		return BandHigh
	}
}

type relativeInput struct {
	price   float64
	average float64
}

var positionTable = []rule[relativeInput, models.PricePosition]{
	{
		when: func(in relativeInput) bool { return in.price < in.average*0.8 },
		then: positioned(PositionLow, "below market average"),
	},
	{
		when: func(in relativeInput) bool { return in.price < in.average*1.2 },
		then: positioned(PositionMid, "near market average"),
	},
	{
		when: func(relativeInput) bool { return true },
		then: positioned(PositionHigh, "above market average"),
	},
}

func positioned(position, comparison string) func(relativeInput) models.PricePosition {
	return func(in relativeInput) models.PricePosition {
		return models.PricePosition{
			Position:      position,
			Comparison:    comparison,
			Price:         in.price,
			MarketAverage: in.average,
		}
	}
}

// ClassifyPriceRelative positions a price against a market average.
// A zero price carries no information and is reported as unknown.
func ClassifyPriceRelative(price, marketAverage float64) models.PricePosition {
	if price == 0 {
		return models.PricePosition{Position: PositionUnknown, Comparison: "no data", MarketAverage: marketAverage}
	}
	pos, _ := decide(positionTable, relativeInput{price: price, average: marketAverage})
	return pos
}

func averagePrice(products []models.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var total float64
	for _, p := range products {
		total += p.Price
	}
	return total / float64(len(products))
}
