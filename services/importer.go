package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"vending-insights/models"
	"vending-insights/utils"
)

// ErrInvalidRow marks an import row that was rejected.
var ErrInvalidRow = errors.New("invalid import row")

const defaultBrandColor = "#666666"

var brandColors = map[string]string{
	"可口可乐": "#E61D2B",
	"百事可乐": "#004691",
	"娃哈哈":  "#FF6600",
	"康师傅":  "#FF0000",
	"统一":   "#0066CC",
	"农夫山泉": "#00A859",
	"怡宝":   "#0066CC",
	"脉动":   "#FF6600",
	"红牛":   "#D6001C",
	"东鹏特饮": "#FF6600",
}

// BrandColor returns the display colour registered for brand.
func BrandColor(brand string) string {
	if c, ok := brandColors[brand]; ok {
		return c
	}
	return defaultBrandColor
}

// RowError describes why one import row was rejected. Row is 1-based.
type RowError struct {
	Row   int
	Model string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Model, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Importer turns RawProducts into clean, validated Products.
type Importer struct {
	logger   *utils.Logger
	validate *validator.Validate
}

func NewImporter(logger *utils.Logger) *Importer {
	return &Importer{
		logger:   logger.With("import"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Clean normalises and validates raw rows. Rejected rows are returned as
// RowErrors alongside the accepted products; a bad row never aborts the import.
// Duplicate models keep the first occurrence.
func (im *Importer) Clean(raw []*models.RawProduct) ([]models.Product, []*RowError) {
	seen := utils.NewKeySet()
	result := make([]models.Product, 0, len(raw))
	var rejected []*RowError

	for i, r := range raw {
		row := normaliseRaw(r)
		p, err := im.convert(row)
		if err == nil && !seen.Add(p.ID) {
			err = fmt.Errorf("%w: duplicate model", ErrInvalidRow)
		}
		if err != nil {
			re := &RowError{Row: i + 1, Model: row.Model, Err: err}
			im.logger.Warn("Dropping %v", re)
			rejected = append(rejected, re)
			continue
		}
		result = append(result, p)
	}

	im.logger.Info("Cleaned %d → %d products (rejected %d)", len(raw), len(result), len(rejected))
	return result, rejected
}

func (im *Importer) convert(row models.RawProduct) (models.Product, error) {
	if err := im.validate.Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
			}
			return models.Product{}, fmt.Errorf("%w: %s", ErrInvalidRow, strings.Join(fields, ", "))
		}
		return models.Product{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}

	price, err := strconv.ParseFloat(row.RawPrice, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: price %q: %v", ErrInvalidRow, row.RawPrice, err)
	}
	if price < 0 {
		return models.Product{}, fmt.Errorf("%w: negative price %v", ErrInvalidRow, price)
	}

	specs, err := parseSpecs(row.RawSpecs)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: specs: %v", ErrInvalidRow, err)
	}
	perf, err := parsePerformance(row.RawPerformance)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: performance: %v", ErrInvalidRow, err)
	}

	color := row.Color
	if color == "" {
		color = BrandColor(row.Brand)
	}

	return models.Product{
		ID:          row.Model,
		Name:        row.Name,
		Brand:       row.Brand,
		Price:       price,
		Color:       color,
		Specs:       specs,
		Performance: perf,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func normaliseRaw(r *models.RawProduct) models.RawProduct {
	out := *r
	out.Model = strings.TrimSpace(r.Model)
	out.Name = normaliseText(r.Name)
	out.Brand = normaliseText(r.Brand)
	out.RawPrice = strings.ReplaceAll(strings.TrimSpace(r.RawPrice), ",", "")
	out.Color = strings.TrimSpace(r.Color)
	return out
}

// parseSpecs accepts a JSON object; non-string values are kept in their printed form.
func parseSpecs(raw string) (map[string]string, error) {
	specs := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return specs, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}
	for k, v := range decoded {
		if s, ok := v.(string); ok {
			specs[k] = s
			continue
		}
		specs[k] = fmt.Sprint(v)
	}
	return specs, nil
}

// parsePerformance accepts a JSON object of numeric scores. Values outside
// 0-100 are kept as given.
func parsePerformance(raw string) (map[string]float64, error) {
	perf := make(map[string]float64)
	if strings.TrimSpace(raw) == "" {
		return perf, nil
	}
	if err := json.Unmarshal([]byte(raw), &perf); err != nil {
		return nil, err
	}
	return perf, nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
