package proforma

import (
	"testing"
	"time"

	"invest-project/internal/core/domain"
	"invest-project/internal/core/rentindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIndex строит минимальный индекс: один почтовый индекс с плоской
// арендой (нулевые рост и сезонность).
func testIndex(zip, state string, rent float64) *rentindex.Index {
	months := []string{"2024-06", "2024-07"}
	return rentindex.Build(months, []rentindex.Row{
		{Zip: zip, State: state, Values: map[string]float64{"2024-06": rent, "2024-07": rent}},
	})
}

var estimateAsOf = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

func TestEstimateRentWeightedBlend(t *testing.T) {
	ix := testIndex("99999", "XX", 2000)

	rec := domain.PropertyRecord{
		PropertyID: "p1",
		ZipCode:    "99999",
		State:      "XX",
		Beds:       2,
		FullBaths:  2,
		Sqft:       1200,
		YearBuilt:  2010,
		Style:      domain.StyleCondo,
		ListPrice:  400000,
	}

	est, ok := EstimateRent(rec, ix, estimateAsOf)
	require.True(t, ok)

	// 1.15*0.35 + 1.1*0.25 + 1.05*0.15 + 1.0*0.15 + 1.15*0.10 = 1.1
	assert.InDelta(t, 2200, est.MonthlyRent, 1e-9)
	assert.InDelta(t, 26400, est.AnnualRent, 1e-9)

	// CAGR без истории зажимается в 2, район 0.75*2, Condo +0.05.
	assert.InDelta(t, 3.55, est.GrowthRatePct, 1e-9)

	assert.InDelta(t, 400000.0/26400, est.GrossRentMultiplier, 1e-9)

	// Год 1 — базовая аренда, дальше компаундинг темпом роста.
	assert.InDelta(t, 2200, est.RentByYear[0], 1e-9)
	assert.InDelta(t, 2200*1.0355, est.RentByYear[1], 1e-9)
	assert.InDelta(t, 2200*1.0355*1.0355, est.RentByYear[2], 1e-9)
}

func TestEstimateRentNeutralProperty(t *testing.T) {
	ix := testIndex("99999", "XX", 2000)

	// Все факторы нейтральны: аренда равна базовой из индекса.
	rec := domain.PropertyRecord{
		ZipCode:   "99999",
		State:     "XX",
		Beds:      1,
		FullBaths: 1,
		Sqft:      800,
		YearBuilt: 1990,
		Style:     "Ranch",
	}

	est, ok := EstimateRent(rec, ix, estimateAsOf)
	require.True(t, ok)
	assert.InDelta(t, 2000, est.MonthlyRent, 1e-9)
}

func TestEstimateRentSeasonalityAdjustment(t *testing.T) {
	// Рост 2000 → 2020 за месяц даёт июльскую сезонность +1%.
	months := []string{"2024-06", "2024-07"}
	ix := rentindex.Build(months, []rentindex.Row{
		{Zip: "99999", State: "XX", Values: map[string]float64{"2024-06": 2000, "2024-07": 2020}},
	})

	rec := domain.PropertyRecord{
		ZipCode:   "99999",
		State:     "XX",
		Beds:      1,
		FullBaths: 1,
		Sqft:      800,
		YearBuilt: 1990,
		Style:     "Ranch",
	}

	est, ok := EstimateRent(rec, ix, estimateAsOf)
	require.True(t, ok)
	assert.InDelta(t, 2020*1.01, est.MonthlyRent, 1e-6)
}

func TestEstimateRentMultiFamily(t *testing.T) {
	ix := testIndex("99999", "XX", 2000)

	rec := domain.PropertyRecord{
		ZipCode:   "99999",
		State:     "XX",
		Beds:      6,
		FullBaths: 2,
		Sqft:      3200,
		Style:     domain.StyleMultiFamily,
	}

	est, ok := EstimateRent(rec, ix, estimateAsOf)
	require.True(t, ok)

	// 6 спален → 3 юнита, дисконт за мультиюнит, без взвешенной смеси.
	assert.InDelta(t, 2000*3*0.85, est.MonthlyRent, 1e-9)
	assert.InDelta(t, 3.58, est.GrowthRatePct, 1e-9)
}

func TestEstimateRentMultiFamilyMinimumUnits(t *testing.T) {
	ix := testIndex("99999", "XX", 2000)

	rec := domain.PropertyRecord{
		ZipCode: "99999",
		State:   "XX",
		Beds:    4,
		Style:   domain.StyleMultiFamily,
	}

	est, ok := EstimateRent(rec, ix, estimateAsOf)
	require.True(t, ok)
	assert.InDelta(t, 2000*2*0.85, est.MonthlyRent, 1e-9)
}

func TestEstimateRentStateAverageFallback(t *testing.T) {
	ix := testIndex("99999", "XX", 2000)

	// Нечисловой индекс не разрешается, но штат известен: базой
	// становится средняя по штату, рост — по умолчанию.
	rec := domain.PropertyRecord{
		ZipCode:   "",
		State:     "XX",
		Beds:      1,
		FullBaths: 1,
		Sqft:      800,
		YearBuilt: 1990,
		Style:     domain.StyleCondo,
	}

	est, ok := EstimateRent(rec, ix, estimateAsOf)
	require.True(t, ok)

	// Смесь для кондо: 1.0*0.35 + 1.0*0.25 + 1.0*0.15 + 1.0*0.15 + 1.15*0.10 = 1.015
	assert.InDelta(t, 2000*1.015, est.MonthlyRent, 1e-9)

	// CAGR по умолчанию 3.0 + 1.5 района по умолчанию + 0.05 за тип.
	assert.InDelta(t, 4.55, est.GrowthRatePct, 1e-9)
}

func TestEstimateRentUnresolvableLocation(t *testing.T) {
	ix := testIndex("99999", "XX", 2000)

	rec := domain.PropertyRecord{ZipCode: "", State: "ZZ"}
	_, ok := EstimateRent(rec, ix, estimateAsOf)
	assert.False(t, ok)
}

func TestGrowthRatePctClamping(t *testing.T) {
	tests := []struct {
		name         string
		cagr         float64
		neighborhood float64
		style        string
		want         float64
	}{
		{"низкий CAGR поднимается до нижней границы", -5, 0.75, "Ranch", 2 + 1.5},
		{"высокий CAGR зажимается в 6", 12, 0.75, "Ranch", 6 + 1.5},
		{"лучший район и растущий тип", 6, 0.95, domain.StyleMultiFamily, 6 + 1.9 + 0.08},
		{"кооператив тянет вниз", 4, 0.75, domain.StyleCoop, 4 + 1.5 - 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, growthRatePct(tt.cagr, tt.neighborhood, tt.style), 1e-9)
		})
	}
}
