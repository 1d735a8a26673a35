package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestListingCSVAdapterFetchProperties(t *testing.T) {
	csvData := `property_id,full_street_line,city,state,zip_code,beds,full_baths,half_baths,sqft,year_built,style,list_price,tax,hoa_fee,parking_garage,text
P1,350 W 31st St,New York,NY,10001.0,2,2,0,1200,2015,Condo,500000,0,0,1,Luxury doorman building
P2,12 Main St,Brooklyn,NY,11201,3,1,1,abc,1990,Townhouse,750000,8000,,0,
,1 No Id Ave,Queens,NY,11101,1,1,0,600,2000,Condo,300000,0,0,0,
`
	adapter, err := NewListingCSVAdapter(writeTempCSV(t, csvData))
	require.NoError(t, err)

	records, err := adapter.FetchProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2) // строка без property_id пропущена

	first := records[0]
	assert.Equal(t, "P1", first.PropertyID)
	assert.Equal(t, "10001", first.ZipCode) // "10001.0" нормализуется
	assert.Equal(t, 2.0, first.Beds)
	assert.Equal(t, 500000.0, first.ListPrice)
	assert.Equal(t, "Luxury doorman building", first.Description)

	// Нечисловой sqft обнуляет только это поле, строка остаётся.
	second := records[1]
	assert.Equal(t, "P2", second.PropertyID)
	assert.Equal(t, 0.0, second.Sqft)
	assert.Equal(t, 8000.0, second.Tax)
	assert.Equal(t, 0.0, second.HOAFee)
	assert.Equal(t, 1.5, second.Baths())
}

func TestListingCSVAdapterMissingColumns(t *testing.T) {
	// Колонки, которых нет в файле, дают нулевые значения полей.
	csvData := `property_id,city,state,zip_code,list_price
P1,New York,NY,10001,400000
`
	adapter, err := NewListingCSVAdapter(writeTempCSV(t, csvData))
	require.NoError(t, err)

	records, err := adapter.FetchProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 0.0, records[0].Beds)
	assert.Equal(t, "", records[0].Style)
	assert.Equal(t, 400000.0, records[0].ListPrice)
}

func TestListingCSVAdapterMissingFile(t *testing.T) {
	adapter, err := NewListingCSVAdapter(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)

	_, err = adapter.FetchProperties(context.Background())
	assert.Error(t, err)
}

func TestNewListingCSVAdapterEmptyPath(t *testing.T) {
	_, err := NewListingCSVAdapter("")
	assert.Error(t, err)
}

func TestNormalizeZip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10001", "10001"},
		{"10001.0", "10001"},
		{"", ""},
		{"ABCDE", "ABCDE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeZip(tt.in), "in=%q", tt.in)
	}
}
