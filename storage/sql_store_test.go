package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vending-insights/config"
	"vending-insights/models"
	"vending-insights/utils"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	logger := utils.NewLoggerTo(io.Discard, io.Discard, false)
	retry := &utils.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond, Logger: logger}
	path := filepath.Join(t.TempDir(), "catalog.sqlite")

	s, err := Open(context.Background(), config.DriverSQLite, path, retry, logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *SQLStore) {
	t.Helper()
	products := []models.Product{
		{ID: "HAHA-100", Name: "HAHA Smart Cabinet 100", Brand: "HAHA", Price: 12999, Color: "#3b82f6",
			Specs:       map[string]string{"screen": "15.6in", "lanes": "24"},
			Performance: map[string]float64{"recognition": 95, "response": 90}},
		{ID: "HAHA-200", Name: "HAHA Mini", Brand: "HAHA", Price: 4200},
		{ID: "BOX-1", Name: "Boxly Fridge", Brand: "Boxly", Price: 18000,
			Performance: map[string]float64{"recognition": 96}},
	}
	if err := s.Upsert(context.Background(), products); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	all, err := s.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("FetchAll returned %d products; want 3", len(all))
	}

	p, err := s.FetchByID(ctx, "HAHA-100")
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if p.Specs["lanes"] != "24" || p.Performance["recognition"] != 95 || p.Price != 12999 {
		t.Errorf("round-trip lost data: %+v", p)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Errorf("timestamps not populated: %+v", p)
	}

	mini, err := s.FetchByID(ctx, "HAHA-200")
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if mini.Specs == nil || len(mini.Performance) != 0 {
		t.Errorf("empty maps should decode as empty, got %+v", mini)
	}
}

func TestStoreFetchByIDNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.FetchByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) || !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreFetchByIDsKeepsOrder(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	got, err := s.FetchByIDs(context.Background(), []string{"BOX-1", "nope", "HAHA-100"})
	if err != nil {
		t.Fatalf("FetchByIDs: %v", err)
	}
	if want := []string{"BOX-1", "HAHA-100"}; !equal(ids(got), want) {
		t.Errorf("FetchByIDs = %v; want %v", ids(got), want)
	}
}

func TestStoreQueries(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	brand, err := s.FetchByBrand(ctx, "HAHA")
	if err != nil || !equal(ids(brand), []string{"HAHA-100", "HAHA-200"}) {
		t.Errorf("FetchByBrand = %v, %v", ids(brand), err)
	}

	found, err := s.Search(ctx, "boxly")
	if err != nil || !equal(ids(found), []string{"BOX-1"}) {
		t.Errorf("Search(boxly) = %v, %v", ids(found), err)
	}

	found, err = s.Search(ctx, "mini")
	if err != nil || !equal(ids(found), []string{"HAHA-200"}) {
		t.Errorf("Search(mini) = %v, %v", ids(found), err)
	}

	lo, hi := 5000.0, 15000.0
	ranged, err := s.FetchByPriceRange(ctx, &lo, &hi)
	if err != nil || !equal(ids(ranged), []string{"HAHA-100"}) {
		t.Errorf("FetchByPriceRange(5000,15000) = %v, %v", ids(ranged), err)
	}
	ranged, err = s.FetchByPriceRange(ctx, &lo, nil)
	if err != nil || !equal(ids(ranged), []string{"BOX-1", "HAHA-100"}) {
		t.Errorf("FetchByPriceRange(5000,nil) = %v, %v", ids(ranged), err)
	}
	ranged, err = s.FetchByPriceRange(ctx, nil, nil)
	if err != nil || len(ranged) != 3 {
		t.Errorf("FetchByPriceRange(nil,nil) = %v, %v", ids(ranged), err)
	}
}

func TestStoreUpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	err := s.Upsert(ctx, []models.Product{
		{ID: "BOX-1", Name: "Boxly Fridge", Brand: "Boxly", Price: 1},
		{ID: "BOX-1", Name: "Boxly Fridge v2", Brand: "Boxly", Price: 17500},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	p, err := s.FetchByID(ctx, "BOX-1")
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if p.Name != "Boxly Fridge v2" || p.Price != 17500 {
		t.Errorf("upsert did not keep the last row: %+v", p)
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	if err := s.Delete(ctx, "HAHA-200"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.FetchByID(ctx, "HAHA-200"); !IsNotFound(err) {
		t.Errorf("expected deleted product to be gone, got %v", err)
	}
	if err := s.Delete(ctx, "HAHA-200"); !IsNotFound(err) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	logger := utils.NewLoggerTo(io.Discard, io.Discard, false)
	_, err := Open(context.Background(), "mysql", "", &utils.RetryConfig{MaxAttempts: 1}, logger)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStoreSearchTreatsWildcardsLiterally(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()
	promo := models.Product{ID: "PROMO_50", Name: "Cooler 50% off", Brand: "HAHA", Price: 3000}
	if err := s.Upsert(ctx, []models.Product{promo}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	tests := []struct {
		keyword string
		want    []string
	}{
		{"%", []string{"PROMO_50"}},
		{"50%", []string{"PROMO_50"}},
		{"_", []string{"PROMO_50"}},
		{"haha_", nil},
	}
	for _, tt := range tests {
		got, err := s.Search(ctx, tt.keyword)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.keyword, err)
		}
		if !equal(ids(got), tt.want) {
			t.Errorf("Search(%q) = %v; want %v", tt.keyword, ids(got), tt.want)
		}
	}
}

func TestStoreKeepsFullPricePrecision(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := models.Product{ID: "EDGE-1", Name: "Edge", Brand: "Edge", Price: 4999.995}
	if err := s.Upsert(ctx, []models.Product{p}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := s.FetchByID(ctx, "EDGE-1")
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if got.Price != p.Price {
		t.Errorf("Price = %v; want %v", got.Price, p.Price)
	}
	if strings.Contains(postgresDialect.schema, "NUMERIC") {
		t.Error("postgres schema rounds prices; want DOUBLE PRECISION")
	}
}
