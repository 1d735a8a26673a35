package filestorage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"invest-project/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProFormaFileStorageAdapterSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	adapter, err := NewProFormaFileStorageAdapter(path)
	require.NoError(t, err)

	withEstimate := domain.ProFormaRecord{
		PropertyID:  "P1",
		City:        "New York",
		State:       "NY",
		ZipCode:     "10001",
		ListPrice:   500000,
		HasEstimate: true,
		MonthlyRent: 3322.5,
		CapRatePct:  7.82,
	}
	withoutEstimate := domain.ProFormaRecord{
		PropertyID: "P2",
		State:      "ZZ",
		ListPrice:  400000,
	}

	require.NoError(t, adapter.Save(context.Background(), withEstimate))
	require.NoError(t, adapter.Save(context.Background(), withoutEstimate))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // заголовок и две записи

	header := rows[0]
	assert.Equal(t, csvHeader, header)

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	first := rows[1]
	assert.Equal(t, "P1", first[col["property_id"]])
	assert.Equal(t, "true", first[col["has_estimate"]])
	assert.Equal(t, "3322.5", first[col["monthly_rent"]])
	assert.Equal(t, "7.82", first[col["cap_rate"]])

	// Без оценки арендные колонки пустые.
	second := rows[2]
	assert.Equal(t, "P2", second[col["property_id"]])
	assert.Equal(t, "false", second[col["has_estimate"]])
	assert.Equal(t, "", second[col["monthly_rent"]])
	assert.Equal(t, "", second[col["rent_year5"]])
	assert.Equal(t, "0", second[col["cap_rate"]])
}

func TestNewProFormaFileStorageAdapterEmptyFilename(t *testing.T) {
	_, err := NewProFormaFileStorageAdapter("")
	assert.Error(t, err)
}
