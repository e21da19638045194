package models

// PerformanceScore is the scalar reduction of a performance map.
type PerformanceScore struct {
	OverallScore float64            `json:"overall_score"`
	Level        string             `json:"level"`
	Details      map[string]float64 `json:"details"`
}

// PricePosition places a price relative to a market average.
type PricePosition struct {
	Position      string  `json:"position"`
	Comparison    string  `json:"comparison"`
	Price         float64 `json:"price"`
	MarketAverage float64 `json:"market_average"`
}

type PricePoint struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type MetricValue struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ComparisonResult is the side-by-side view of two or more products.
// CommonSpecs and CommonPerformance hold the union of keys, not the intersection.
type ComparisonResult struct {
	Products              []Product                `json:"products"`
	CommonSpecs           []string                 `json:"common_specs"`
	CommonPerformance     []string                 `json:"common_performance"`
	PriceComparison       []PricePoint             `json:"price_comparison"`
	PerformanceComparison map[string][]MetricValue `json:"performance_comparison"`
}

type Recommendation struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Tag         string `json:"recommendation"`
	Reason      string `json:"reason"`
}

// BrandStats is only present on a BrandStrength computed from at least one product.
type BrandStats struct {
	ProductCount       int     `json:"product_count"`
	AveragePrice       float64 `json:"average_price"`
	AveragePerformance float64 `json:"average_performance"`
}

type BrandStrength struct {
	Strength string      `json:"strength"`
	Reason   string      `json:"reason"`
	Stats    *BrandStats `json:"stats,omitempty"`
}

// BrandSummary is the price overview of one brand's products.
type BrandSummary struct {
	Brand        string  `json:"brand"`
	ProductCount int     `json:"product_count"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

type PriceDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// TrendSummary aggregates the whole catalog.
type TrendSummary struct {
	TotalProducts     int               `json:"total_products"`
	TotalBrands       int               `json:"total_brands"`
	AveragePrice      float64           `json:"average_price"`
	PriceDistribution PriceDistribution `json:"price_distribution"`
	BrandDistribution map[string]int    `json:"brand_distribution"`
}

type PriceRange struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Average float64 `json:"average"`
}

// ProductAssessment is the rule-based narrative for a selection of products.
type ProductAssessment struct {
	Insights        []string   `json:"insights"`
	Recommendations []string   `json:"recommendations"`
	PriceRange      PriceRange `json:"price_range"`
}

// BrandReport pairs a brand's price summary with its strength tier.
type BrandReport struct {
	Summary  BrandSummary  `json:"summary"`
	Strength BrandStrength `json:"strength"`
}

// MarketReport bundles everything one analysis run produces.
type MarketReport struct {
	ID              string            `json:"id"`
	Trends          TrendSummary      `json:"trends"`
	MarketInsights  []string          `json:"market_insights"`
	Recommendations []Recommendation  `json:"recommendations"`
	Assessment      ProductAssessment `json:"assessment"`
	Brands          []BrandReport     `json:"brands"`
	Comparison      *ComparisonResult `json:"comparison,omitempty"`
}
