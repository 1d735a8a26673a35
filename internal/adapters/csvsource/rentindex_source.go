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

	"invest-project/internal/core/rentindex"
)

// RentIndexCSVAdapter реализует RentIndexSourcePort поверх публичной
// выгрузки ZORI: колонки-идентификаторы плюс разрежённый помесячный
// ряд наблюдений, по строке на почтовый индекс.
type RentIndexCSVAdapter struct {
	path string
}

// NewRentIndexCSVAdapter создает новый адаптер.
func NewRentIndexCSVAdapter(path string) (*RentIndexCSVAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("rent index csv adapter: path cannot be empty")
	}
	return &RentIndexCSVAdapter{path: path}, nil
}

// LoadRentIndex читает выгрузку и строит индекс аренды. Строка с
// нечисловым значением в числовой колонке пропускается молча —
// построение индекса из-за неё не прерывается.
func (a *RentIndexCSVAdapter) LoadRentIndex(ctx context.Context) (*rentindex.Index, error) {
	file, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("rent index csv adapter: failed to open '%s': %w", a.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("rent index csv adapter: failed to read header of '%s': %w", a.path, err)
	}

	// Колонки дат в выгрузке начинаются с года ("2024-07-31").
	zipIdx, stateIdx := -1, -1
	dateIdx := make(map[string]int)
	var months []string
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch strings.ToLower(name) {
		case "regionname":
			zipIdx = i
		case "state":
			stateIdx = i
		}
		if strings.HasPrefix(name, "20") {
			dateIdx[name] = i
			months = append(months, name)
		}
	}
	if zipIdx < 0 || len(months) == 0 {
		return nil, fmt.Errorf("rent index csv adapter: '%s' has no RegionName or date columns", a.path)
	}

	var rows []rentindex.Row
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
			skipped++
			continue
		}

		parsed, ok := a.parseRow(row, zipIdx, stateIdx, dateIdx)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, parsed)
	}

	ix := rentindex.Build(months, rows)
	log.Printf("RentIndexCSVAdapter: Loaded rent index for %d zip codes across %d states from '%s' (%d rows skipped)\n",
		ix.Len(), ix.States(), a.path, skipped)
	return ix, nil
}

func (a *RentIndexCSVAdapter) parseRow(row []string, zipIdx, stateIdx int, dateIdx map[string]int) (rentindex.Row, bool) {
	if zipIdx >= len(row) {
		return rentindex.Row{}, false
	}
	zip := normalizeZip(strings.TrimSpace(row[zipIdx]))
	if _, err := strconv.Atoi(zip); err != nil {
		return rentindex.Row{}, false
	}

	state := ""
	if stateIdx >= 0 && stateIdx < len(row) {
		state = strings.TrimSpace(row[stateIdx])
	}

	values := make(map[string]float64, len(dateIdx))
	for month, i := range dateIdx {
		if i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue // разрежённый ряд: пустые месяцы допустимы
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return rentindex.Row{}, false
		}
		values[month] = v
	}

	return rentindex.Row{Zip: zip, State: state, Values: values}, true
}
