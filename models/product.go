package models

import "time"

// RawProduct holds an unvalidated catalog row exactly as it was imported or scraped.
// It is written to the raw CSV snapshot before any cleaning takes place.
type RawProduct struct {
	Model          string `validate:"required"`
	Name           string `validate:"required"`
	Brand          string `validate:"required"`
	RawPrice       string `validate:"required,numeric"`
	Color          string
	RawSpecs       string
	RawPerformance string
	Source         string
	ImportedAt     time.Time
}

// Product is the cleaned catalog record every analytics function consumes.
// Performance values are nominally 0-100 but are never clamped.
type Product struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Brand       string             `json:"brand"`
	Price       float64            `json:"price"`
	Color       string             `json:"color"`
	Specs       map[string]string  `json:"specs"`
	Performance map[string]float64 `json:"performance"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
