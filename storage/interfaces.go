package storage

import (
	"context"
	"errors"

	"vending-insights/models"
)

// ErrNotFound is returned when a product id is not in the catalog.
var ErrNotFound = errors.New("product not found")

// ProductReader is the record-fetch side of the catalog.
type ProductReader interface {
	FetchAll(ctx context.Context) ([]models.Product, error)
	FetchByID(ctx context.Context, id string) (models.Product, error)
	FetchByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	FetchByBrand(ctx context.Context, brand string) ([]models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	FetchByPriceRange(ctx context.Context, minPrice, maxPrice *float64) ([]models.Product, error)
}

// ProductWriter is the interface any storage backend must satisfy.
type ProductWriter interface {
	Upsert(ctx context.Context, products []models.Product) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// RawProductWriter is the interface for persisting unprocessed import rows.
type RawProductWriter interface {
	WriteRaw(products []*models.RawProduct) error
	Close() error
}
