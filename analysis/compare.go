package analysis

import (
	"errors"
	"sort"

	"vending-insights/models"
)

// ErrTooFewProducts is returned by callers that need at least two products
// before invoking CompareProducts.
var ErrTooFewProducts = errors.New("at least two products are required for comparison")

// CompareProducts lines up specs, prices and performance metrics across products.
// Spec and metric keys are the union across all products; a product that lacks a
// metric contributes 0 to that metric's series.
func CompareProducts(products []models.Product) models.ComparisonResult {
	specKeys := make(map[string]struct{})
	metricKeys := make(map[string]struct{})
	prices := make([]models.PricePoint, 0, len(products))

	for _, p := range products {
		for k := range p.Specs {
			specKeys[k] = struct{}{}
		}
		for k := range p.Performance {
			metricKeys[k] = struct{}{}
		}
		prices = append(prices, models.PricePoint{ID: p.ID, Name: p.Name, Price: p.Price})
	}

	metrics := sortedKeys(metricKeys)
	series := make(map[string][]models.MetricValue, len(metrics))
	for _, m := range metrics {
		values := make([]models.MetricValue, 0, len(products))
		for _, p := range products {
			values = append(values, models.MetricValue{ID: p.ID, Name: p.Name, Value: p.Performance[m]})
		}
		series[m] = values
	}

	return models.ComparisonResult{
		Products:              products,
		CommonSpecs:           sortedKeys(specKeys),
		CommonPerformance:     metrics,
		PriceComparison:       prices,
		PerformanceComparison: series,
	}
}

func sortedKeys[V any](set map[string]V) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
