package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"vending-insights/models"
)

var requiredColumns = []string{"model", "name", "brand", "price"}

// ReadRawCSV loads import rows from a CSV file whose header names at least
// model, name, brand and price. Optional columns are color, specs and
// performance, the last two holding JSON objects.
func ReadRawCSV(path string) ([]*models.RawProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()
	return DecodeRawCSV(f, "csv:"+path)
}

// DecodeRawCSV is ReadRawCSV over an arbitrary reader.
func DecodeRawCSV(r io.Reader, source string) ([]*models.RawProduct, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: empty file")
		}
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", col)
		}
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	now := time.Now()
	var out []*models.RawProduct
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		out = append(out, &models.RawProduct{
			Model:          field(row, "model"),
			Name:           field(row, "name"),
			Brand:          field(row, "brand"),
			RawPrice:       field(row, "price"),
			Color:          field(row, "color"),
			RawSpecs:       field(row, "specs"),
			RawPerformance: field(row, "performance"),
			Source:         source,
			ImportedAt:     now,
		})
	}
	return out, nil
}
