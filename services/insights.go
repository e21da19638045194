package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"vending-insights/analysis"
	"vending-insights/models"
	"vending-insights/storage"
	"vending-insights/utils"
)

// InsightService fetches catalog data and runs the analytics over it.
type InsightService struct {
	logger *utils.Logger
	store  storage.ProductReader
	pool   *utils.WorkerPool
}

func NewInsightService(logger *utils.Logger, store storage.ProductReader, pool *utils.WorkerPool) *InsightService {
	return &InsightService{logger: logger.With("insights"), store: store, pool: pool}
}

// Compare fetches the given products and lines them up side by side.
// Unknown ids are ignored; fewer than two known products is an error.
func (s *InsightService) Compare(ctx context.Context, ids []string) (models.ComparisonResult, error) {
	if len(ids) < 2 {
		return models.ComparisonResult{}, analysis.ErrTooFewProducts
	}
	products, err := s.store.FetchByIDs(ctx, ids)
	if err != nil {
		return models.ComparisonResult{}, fmt.Errorf("insights: compare: %w", err)
	}
	if len(products) < 2 {
		return models.ComparisonResult{}, fmt.Errorf("insights: compare: %d of %d ids found: %w",
			len(products), len(ids), analysis.ErrTooFewProducts)
	}
	return analysis.CompareProducts(products), nil
}

// BrandReports fetches each brand's products concurrently and grades them.
// The result follows the order of brands.
func (s *InsightService) BrandReports(ctx context.Context, brands []string) ([]models.BrandReport, error) {
	reports := make([]models.BrandReport, len(brands))
	var mu sync.Mutex
	var firstErr error

	for i, brand := range brands {
		s.pool.Submit(func() {
			products, err := s.store.FetchByBrand(ctx, brand)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("insights: brand %q: %w", brand, err)
				}
				mu.Unlock()
				return
			}
			reports[i] = brandReport(brand, products)
			s.logger.Debug("Brand %s: %d products", brand, len(products))
		})
	}
	s.pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return reports, nil
}

func brandReport(brand string, products []models.Product) models.BrandReport {
	return models.BrandReport{
		Summary:  analysis.SummarizeBrand(brand, products),
		Strength: analysis.AnalyzeBrandStrength(products),
	}
}

// Generate builds a full market report over the catalog. Brand reports cover
// brands when given, otherwise every brand in the catalog. A comparison is
// included when compareIDs resolve to at least two products.
func (s *InsightService) Generate(ctx context.Context, brands, compareIDs []string) (*models.MarketReport, error) {
	catalog, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("insights: fetch catalog: %w", err)
	}
	if len(catalog) == 0 {
		s.logger.Warn("Catalog is empty, report will be blank")
	}

	report := &models.MarketReport{
		ID:              uuid.NewString(),
		Trends:          analysis.IndustryTrends(catalog),
		MarketInsights:  analysis.MarketInsights(catalog),
		Recommendations: analysis.Recommend(catalog),
		Assessment:      analysis.AssessProducts(catalog),
	}

	if len(brands) > 0 {
		if report.Brands, err = s.BrandReports(ctx, brands); err != nil {
			return nil, err
		}
	} else {
		for _, agg := range analysis.GroupByBrand(catalog) {
			report.Brands = append(report.Brands, brandReport(agg.Brand, agg.Products))
		}
	}

	if len(compareIDs) > 0 {
		cmp, err := s.Compare(ctx, compareIDs)
		if err != nil {
			s.logger.Warn("Skipping comparison: %v", err)
		} else {
			report.Comparison = &cmp
		}
	}

	s.logger.Info("Report %s: %d products, %d brands, %d recommendations",
		report.ID, report.Trends.TotalProducts, report.Trends.TotalBrands, len(report.Recommendations))
	return report, nil
}

// WriteJSON stores the report as indented JSON, creating parent directories.
func (s *InsightService) WriteJSON(report *models.MarketReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("insights: create report dir: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("insights: encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("insights: write report: %w", err)
	}
	return nil
}

func (s *InsightService) Print(r *models.MarketReport) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 VENDING MARKET INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	t := r.Trends
	fmt.Printf("\033[1;33m  Industry Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Products       : \033[1m%d\033[0m\n", t.TotalProducts)
	fmt.Printf("  Brands         : \033[1m%d\033[0m\n", t.TotalBrands)
	fmt.Printf("  Average price  : \033[1;32m%.2f\033[0m\n", t.AveragePrice)
	fmt.Printf("  Price bands    : low %d | medium %d | high %d\n",
		t.PriceDistribution.Low, t.PriceDistribution.Medium, t.PriceDistribution.High)
	fmt.Println()

	fmt.Printf("\033[1;33m  Market Insights\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.MarketInsights) == 0 {
		fmt.Printf("  No product data\n")
	}
	for _, line := range r.MarketInsights {
		fmt.Printf("  • %s\n", line)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Recommendations\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Recommendations) == 0 {
		fmt.Printf("  No product matched a recommendation rule\n")
	}
	for _, rec := range r.Recommendations {
		fmt.Printf("  \033[1m%-14s\033[0m %-32s %s\n", rec.Tag, truncate(rec.ProductName, 30), rec.Reason)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Brands\033[0m\n")
	fmt.Printf("  %s\n", thin)
	brands := append([]models.BrandReport(nil), r.Brands...)
	sort.SliceStable(brands, func(i, j int) bool {
		return brands[i].Summary.ProductCount > brands[j].Summary.ProductCount
	})
	for _, b := range brands {
		bar := strings.Repeat("█", b.Summary.ProductCount)
		fmt.Printf("  %-20s %-6s %s (%d)\n", truncate(b.Summary.Brand, 18), b.Strength.Strength, bar, b.Summary.ProductCount)
	}

	if r.Comparison != nil {
		fmt.Println()
		fmt.Printf("\033[1;33m  Comparison\033[0m\n")
		fmt.Printf("  %s\n", thin)
		for _, pp := range r.Comparison.PriceComparison {
			fmt.Printf("  %-32s %10.2f\n", truncate(pp.Name, 30), pp.Price)
		}
		for _, metric := range r.Comparison.CommonPerformance {
			fmt.Printf("  %s:", metric)
			for _, v := range r.Comparison.PerformanceComparison[metric] {
				fmt.Printf(" %s=%.1f", v.ID, v.Value)
			}
			fmt.Println()
		}
	}

	fmt.Printf("\n  Report id: %s\n", r.ID)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
