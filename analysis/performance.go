package analysis

import (
	"math"

	"vending-insights/models"
)

// Scoring levels.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelMedium    = "medium"
	LevelGeneral   = "general"
)

// Narrative wording used when describing a single product's performance.
const (
	WordingExcellent = "excellent"
	WordingGood      = "good"
	WordingAverage   = "average"
)

var levelTable = tierTable(
	[]float64{90, 80, 70},
	[]string{LevelExcellent, LevelGood, LevelMedium},
)

// wordingTable is independent of levelTable and uses lower cut-offs.
var wordingTable = tierTable(
	[]float64{80, 60},
	[]string{WordingExcellent, WordingGood},
)

// ScorePerformance reduces a performance map to its mean and level.
// An empty map scores 0 at LevelGeneral.
func ScorePerformance(performance map[string]float64) models.PerformanceScore {
	score, _ := averagePerformance(performance)
	if performance == nil {
		performance = map[string]float64{}
	}
	return models.PerformanceScore{
		OverallScore: score,
		Level:        PerformanceLevel(score),
		Details:      performance,
	}
}

// PerformanceLevel maps an overall score onto the scoring level ladder.
func PerformanceLevel(score float64) string {
	return decideOr(levelTable, score, LevelGeneral)
}

// InsightWording maps an overall score onto the narrative wording ladder.
func InsightWording(score float64) string {
	return decideOr(wordingTable, score, WordingAverage)
}

// averagePerformance reports false when the map holds no metrics.
// Metrics are summed in key order so the result does not depend on map iteration.
func averagePerformance(performance map[string]float64) (float64, bool) {
	if len(performance) == 0 {
		return 0, false
	}
	keys := sortedKeys(performance)
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = performance[k]
	}
	return compensatedSum(values) / float64(len(values)), true
}

// compensatedSum is Neumaier's variant of Kahan summation.
func compensatedSum(values []float64) float64 {
	var sum, c float64
	for _, v := range values {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			c += (sum - t) + v
		} else {
			c += (v - t) + sum
		}
		sum = t
	}
	return sum + c
}

// meanProductPerformance averages per-product averages, skipping products
// without performance data.
func meanProductPerformance(products []models.Product) float64 {
	var total float64
	var n int
	for _, p := range products {
		if avg, ok := averagePerformance(p.Performance); ok {
			total += avg
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
