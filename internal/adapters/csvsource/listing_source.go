package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"invest-project/internal/core/domain"
)

// ListingCSVAdapter реализует ListingSourcePort поверх CSV-файла
// с выгрузкой листингов.
type ListingCSVAdapter struct {
	path string
}

// NewListingCSVAdapter создает новый адаптер.
func NewListingCSVAdapter(path string) (*ListingCSVAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("listing csv adapter: path cannot be empty")
	}
	return &ListingCSVAdapter{path: path}, nil
}

// FetchProperties читает все листинги из файла. Нечисловой текст в
// числовой колонке обнуляет только это поле: строка остаётся в
// выдаче, прогон не прерывается.
func (a *ListingCSVAdapter) FetchProperties(ctx context.Context) ([]domain.PropertyRecord, error) {
	file, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("listing csv adapter: failed to open '%s': %w", a.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // выгрузки бывают с неровными строками

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("listing csv adapter: failed to read header of '%s': %w", a.path, err)
	}
	col := columnIndex(header)

	var records []domain.PropertyRecord
	skipped := 0
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// Ломаная строка портит только саму себя.
			skipped++
			continue
		}

		rec := domain.PropertyRecord{
			PropertyID:    field(row, col, "property_id"),
			Address:       field(row, col, "full_street_line"),
			City:          field(row, col, "city"),
			State:         field(row, col, "state"),
			ZipCode:       normalizeZip(field(row, col, "zip_code")),
			Beds:          floatField(row, col, "beds"),
			FullBaths:     floatField(row, col, "full_baths"),
			HalfBaths:     floatField(row, col, "half_baths"),
			Sqft:          floatField(row, col, "sqft"),
			LotSqft:       floatField(row, col, "lot_sqft"),
			YearBuilt:     floatField(row, col, "year_built"),
			Style:         field(row, col, "style"),
			ListPrice:     floatField(row, col, "list_price"),
			PricePerSqft:  floatField(row, col, "price_per_sqft"),
			Tax:           floatField(row, col, "tax"),
			HOAFee:        floatField(row, col, "hoa_fee"),
			ParkingGarage: floatField(row, col, "parking_garage"),
			Description:   field(row, col, "text"),
		}
		if rec.PropertyID == "" {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	log.Printf("ListingCSVAdapter: Read %d listings from '%s' (%d rows skipped)\n", len(records), a.path, skipped)
	return records, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func floatField(row []string, col map[string]int, name string) float64 {
	raw := field(row, col, name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizeZip приводит индекс к целочисленному виду: выгрузки
// нередко содержат "10001.0".
func normalizeZip(raw string) string {
	if raw == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
		return strconv.Itoa(int(f))
	}
	return raw
}
