package catalog

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"vending-insights/config"
	"vending-insights/models"
	"vending-insights/utils"
)

const source = "catalog"

// extractCardsJS reads product cards marked up as
//
//	<div data-product data-model=".." data-name=".." data-brand=".." data-price=".."
//	     data-color=".." data-specs='{..}' data-performance='{..}'>
//
// falling back to the visible text of .name/.brand/.price children.
const extractCardsJS = `
(function() {
	var cards = document.querySelectorAll('[data-product]');
	var out = [];
	for (var i = 0; i < cards.length; i++) {
		var c = cards[i];
		var text = function(sel) {
			var el = c.querySelector(sel);
			return el ? el.innerText.trim() : '';
		};
		out.push({
			model:       c.getAttribute('data-model') || text('.model'),
			name:        c.getAttribute('data-name') || text('.name'),
			brand:       c.getAttribute('data-brand') || text('.brand'),
			price:       c.getAttribute('data-price') || text('.price').replace(/[^0-9.,]/g, ''),
			color:       c.getAttribute('data-color') || '',
			specs:       c.getAttribute('data-specs') || '',
			performance: c.getAttribute('data-performance') || ''
		});
	}
	return out;
})()
`

type card struct {
	Model       string `json:"model"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       string `json:"price"`
	Color       string `json:"color"`
	Specs       string `json:"specs"`
	Performance string `json:"performance"`
}

// Scraper loads catalog pages in a headless browser and extracts product cards.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	seen    *utils.KeySet
	retry   *utils.RetryConfig
	timeout time.Duration

	mu       sync.Mutex
	products []*models.RawProduct
}

func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	logger = logger.With("catalog")
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		seen:   utils.NewKeySet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		timeout: 60 * time.Second,
	}
}

// PageURLs expands the catalog URL into one URL per page using a page query
// parameter. Page 1 is the URL as configured.
func PageURLs(base string, pages int) ([]string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse url %q: %w", base, err)
	}
	pages = max(pages, 1)
	out := make([]string, 0, pages)
	out = append(out, u.String())
	for page := 2; page <= pages; page++ {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		next := *u
		next.RawQuery = q.Encode()
		out = append(out, next.String())
	}
	return out, nil
}

// Scrape visits every catalog page concurrently and returns the raw rows,
// deduplicated by model.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.RawProduct, error) {
	pages, err := PageURLs(s.cfg.CatalogURL, s.cfg.CatalogPages)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Starting scrape of %d pages at %s", len(pages), s.cfg.CatalogURL)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if bin := findChromeBinary(s.cfg.ChromeBin); bin != "" {
		s.logger.Info("Using browser binary: %s", bin)
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("catalog: start browser: %w", err)
	}

	var failed int
	for i, pageURL := range pages {
		s.pool.Submit(func() {
			rows, err := s.scrapePage(browserCtx, pageURL)
			if err != nil {
				s.logger.Error("Page %d failed: %v", i+1, err)
				s.mu.Lock()
				failed++
				s.mu.Unlock()
				return
			}
			s.collect(rows)
			s.logger.Debug("Page %d: %d cards", i+1, len(rows))
		})
	}
	s.pool.Wait()

	s.logger.Info("Scrape complete: %d raw products, %d failed pages", len(s.products), failed)
	if failed == len(pages) {
		return nil, fmt.Errorf("catalog: all %d pages failed", failed)
	}
	return s.products, nil
}

func (s *Scraper) scrapePage(browserCtx context.Context, pageURL string) ([]card, error) {
	var cards []card
	err := s.retry.Do(browserCtx, "catalog-page", func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()
		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.timeout)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Evaluate(extractCardsJS, &cards),
		)
	})
	return cards, err
}

// collect converts cards to raw rows, keeping the first card seen per model.
func (s *Scraper) collect(cards []card) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cards {
		if c.Model == "" || !s.seen.Add(c.Model) {
			continue
		}
		s.products = append(s.products, &models.RawProduct{
			Model:          c.Model,
			Name:           c.Name,
			Brand:          c.Brand,
			RawPrice:       c.Price,
			Color:          c.Color,
			RawSpecs:       c.Specs,
			RawPerformance: c.Performance,
			Source:         source,
			ImportedAt:     now,
		})
	}
}

// findChromeBinary locates Chrome/Chromium, preferring the configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	for _, p := range []string{"/usr/bin/chromium", "/snap/bin/chromium", "/opt/google/chrome/google-chrome"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
