package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vending-insights/config"
	"vending-insights/models"
	"vending-insights/scraper/catalog"
	"vending-insights/services"
	"vending-insights/storage"
	"vending-insights/utils"
)

func main() {
	logger := utils.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(logger *utils.Logger) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Vending Insights starting ===")
	logger.Info("Config: store=%s | import=%q | catalog=%q | concurrency=%d",
		cfg.StoreDriver, cfg.ImportCSVPath, cfg.CatalogURL, cfg.MaxConcurrency)

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	store, err := storage.Open(ctx, cfg.StoreDriver, cfg.DSN(), retry, logger)
	if err != nil {
		if cfg.StoreDriver == config.DriverPostgres {
			logger.Error("Make sure PostgreSQL is running or set STORE_DRIVER=sqlite")
		}
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer store.Close()

	raw := collectRaw(ctx, cfg, logger)
	if len(raw) > 0 {
		snapshotRaw(cfg.RawSnapshotPath, raw, logger)

		products, rejected := services.NewImporter(logger).Clean(raw)
		if len(rejected) > 0 {
			logger.Warn("%d rows rejected, see warnings above", len(rejected))
		}
		if err := store.Upsert(ctx, products); err != nil {
			logger.Error("Catalog write failed: %v", err)
		}
	} else {
		logger.Info("No import source configured, analysing the stored catalog")
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, 0)
	insightSvc := services.NewInsightService(logger, store, pool)
	report, err := insightSvc.Generate(ctx, cfg.ReportBrands, cfg.CompareIDs)
	if err != nil {
		return fmt.Errorf("report generation: %w", err)
	}
	insightSvc.Print(report)

	if cfg.ReportPath != "" {
		if err := insightSvc.WriteJSON(report, cfg.ReportPath); err != nil {
			return err
		}
		logger.Info("Report written to %s", cfg.ReportPath)
	}
	return nil
}

// collectRaw gathers rows from the CSV import file and the catalog site,
// whichever are configured. A failing source is logged and skipped.
func collectRaw(ctx context.Context, cfg *config.Config, logger *utils.Logger) []*models.RawProduct {
	var raw []*models.RawProduct

	if cfg.ImportCSVPath != "" {
		rows, err := storage.ReadRawCSV(cfg.ImportCSVPath)
		if err != nil {
			logger.Error("CSV import failed: %v", err)
		} else {
			logger.Info("Read %d rows from %s", len(rows), cfg.ImportCSVPath)
			raw = append(raw, rows...)
		}
	}

	if cfg.CatalogURL != "" {
		rows, err := catalog.New(cfg, logger).Scrape(ctx)
		if err != nil {
			logger.Error("Catalog scrape failed: %v", err)
		} else {
			raw = append(raw, rows...)
		}
	}
	return raw
}

func snapshotRaw(path string, raw []*models.RawProduct, logger *utils.Logger) {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		logger.Warn("Raw snapshot disabled: %v", err)
		return
	}
	defer w.Close()

	if err := w.WriteRaw(raw); err != nil {
		logger.Warn("Raw snapshot failed: %v", err)
		return
	}
	logger.Info("Raw rows saved to %s", path)
}
