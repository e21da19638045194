package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"vending-insights/models"
	"vending-insights/utils"
)

const productColumns = "id, name, brand, price, color, specs, performance, created_at, updated_at"

// SQLStore is the product catalog backed by Postgres or SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	logger  *utils.Logger
}

// Open connects to the catalog database, waits for it to answer pings,
// and creates the schema if needed.
func Open(ctx context.Context, driver, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*SQLStore, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	if d.driver == sqliteDialect.driver && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("storage: create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	if d.driver == sqliteDialect.driver {
		db.SetMaxOpenConns(1)
	}

	if err := retry.Do(ctx, "storage-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	s := &SQLStore{db: db, dialect: d, logger: logger.With("store")}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	s.logger.Info("Connected to %s catalog", driver)
	return s, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Upsert inserts products in batches, replacing any existing row with the same id.
// When ids repeat within the input, the last occurrence wins.
func (s *SQLStore) Upsert(ctx context.Context, products []models.Product) error {
	products = lastByID(products)
	if len(products) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(products); i += batchSize {
		end := min(i+batchSize, len(products))
		if err := s.upsertBatch(ctx, products[i:end]); err != nil {
			return err
		}
	}
	s.logger.Info("Upserted %d products", len(products))
	return nil
}

func (s *SQLStore) upsertBatch(ctx context.Context, batch []models.Product) error {
	const cols = 9
	now := time.Now().UTC()
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, p := range batch {
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = s.dialect.placeholder(idx*cols + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		specs, err := json.Marshal(nonNilSpecs(p.Specs))
		if err != nil {
			return fmt.Errorf("storage: encode specs for %s: %w", p.ID, err)
		}
		perf, err := json.Marshal(nonNilPerformance(p.Performance))
		if err != nil {
			return fmt.Errorf("storage: encode performance for %s: %w", p.ID, err)
		}
		created := p.CreatedAt
		if created.IsZero() {
			created = now
		}
		valueArgs = append(valueArgs,
			p.ID, p.Name, p.Brand, p.Price, p.Color, string(specs), string(perf), created, now)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (%s)
		VALUES %s
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			price = excluded.price,
			color = excluded.color,
			specs = excluded.specs,
			performance = excluded.performance,
			updated_at = excluded.updated_at
	`, productColumns, strings.Join(valueStrings, ","))

	if _, err := s.db.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("storage: upsert batch: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = "+s.dialect.placeholder(1), id)
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: delete %s: %w", id, ErrNotFound)
	}
	return nil
}

// FetchAll retrieves the full catalog ordered by id.
func (s *SQLStore) FetchAll(ctx context.Context) ([]models.Product, error) {
	return s.query(ctx, "fetch all", "")
}

func (s *SQLStore) FetchByID(ctx context.Context, id string) (models.Product, error) {
	products, err := s.query(ctx, "fetch by id", "WHERE id = "+s.dialect.placeholder(1), id)
	if err != nil {
		return models.Product{}, err
	}
	if len(products) == 0 {
		return models.Product{}, fmt.Errorf("storage: %s: %w", id, ErrNotFound)
	}
	return products[0], nil
}

// FetchByIDs returns the products that exist, in the order their ids were given.
// Unknown ids are skipped.
func (s *SQLStore) FetchByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = s.dialect.placeholder(i + 1)
		args[i] = id
	}
	found, err := s.query(ctx, "fetch by ids", "WHERE id IN ("+strings.Join(ph, ",")+")", args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *SQLStore) FetchByBrand(ctx context.Context, brand string) ([]models.Product, error) {
	return s.query(ctx, "fetch by brand", "WHERE brand = "+s.dialect.placeholder(1), brand)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches keyword case-insensitively against id, name and brand.
func (s *SQLStore) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
	p := s.dialect.placeholder
	where := fmt.Sprintf(
		`WHERE LOWER(name) LIKE %s ESCAPE '\' OR LOWER(brand) LIKE %s ESCAPE '\' OR LOWER(id) LIKE %s ESCAPE '\'`,
		p(1), p(2), p(3))
	return s.query(ctx, "search", where, pattern, pattern, pattern)
}

// FetchByPriceRange applies whichever bounds are non-nil; both are inclusive.
func (s *SQLStore) FetchByPriceRange(ctx context.Context, minPrice, maxPrice *float64) ([]models.Product, error) {
	var conds []string
	var args []any
	if minPrice != nil {
		args = append(args, *minPrice)
		conds = append(conds, "price >= "+s.dialect.placeholder(len(args)))
	}
	if maxPrice != nil {
		args = append(args, *maxPrice)
		conds = append(conds, "price <= "+s.dialect.placeholder(len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	return s.query(ctx, "fetch by price range", where, args...)
}

func (s *SQLStore) query(ctx context.Context, op, where string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM products %s ORDER BY id", productColumns, where), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", op, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		var specs, perf []byte
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.Price, &p.Color,
			&specs, &perf, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: %s: scan row: %w", op, err)
		}
		if err := json.Unmarshal(specs, &p.Specs); err != nil {
			return nil, fmt.Errorf("storage: %s: decode specs of %s: %w", op, p.ID, err)
		}
		if err := json.Unmarshal(perf, &p.Performance); err != nil {
			return nil, fmt.Errorf("storage: %s: decode performance of %s: %w", op, p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", op, err)
	}
	return products, nil
}

func lastByID(products []models.Product) []models.Product {
	pos := make(map[string]int, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if i, ok := pos[p.ID]; ok {
			out[i] = p
			continue
		}
		pos[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

func nonNilSpecs(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilPerformance(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

// IsNotFound reports whether err means the product does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
