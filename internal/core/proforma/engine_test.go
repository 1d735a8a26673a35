package proforma

import (
	"testing"
	"time"

	"invest-project/internal/core/domain"
	"invest-project/internal/core/rentindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineAsOf = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

// regressionIndex: единственный индекс 10001 с плоской арендой 3000,
// без истории роста и сезонности.
func regressionIndex() *rentindex.Index {
	return rentindex.Build([]string{"2024-07"}, []rentindex.Row{
		{Zip: "10001", State: "NY", Values: map[string]float64{"2024-07": 3000}},
	})
}

func regressionRecord() domain.PropertyRecord {
	return domain.PropertyRecord{
		PropertyID: "reg-1",
		Address:    "350 W 31st St",
		City:       "New York",
		State:      "NY",
		ZipCode:    "10001",
		Beds:       2,
		FullBaths:  2,
		Sqft:       1200,
		YearBuilt:  2015,
		Style:      domain.StyleCondo,
		ListPrice:  500000,
	}
}

func TestAnalyzeRegression(t *testing.T) {
	engine := NewEngine(regressionIndex(), engineAsOf)
	pf := engine.Analyze(regressionRecord())

	require.True(t, pf.HasEstimate)
	assert.Equal(t, "reg-1", pf.PropertyID)

	// Смесь: 1.15*0.35 + 1.1*0.25 + 1.1*0.15 + 1.0*0.15 + 1.15*0.10 = 1.1075
	assert.InDelta(t, 3322.5, pf.MonthlyRent, 0.001)
	assert.InDelta(t, 39870, pf.AnnualRent, 0.001)
	assert.InDelta(t, 12.54, pf.GrossRentMultiplier, 0.001)

	// CAGR без истории → 2, район 10001 даёт +1.8, Condo +0.05.
	assert.InDelta(t, 3.85, pf.GrowthRatePct, 0.001)
	assert.InDelta(t, 3322.5, pf.RentByYear[0], 0.001)
	assert.InDelta(t, 3450.42, pf.RentByYear[1], 0.001)

	// Подставленные операционные расходы.
	assert.InDelta(t, 5000, pf.TaxUsed, 0.001)
	assert.InDelta(t, 62.5, pf.HOAFeeUsed, 0.001)

	// Финансирование для 500000 в районе 0.9.
	assert.InDelta(t, 0.4425, pf.DownPaymentPct, 1e-9)
	assert.InDelta(t, 7.35, pf.InterestRatePct, 1e-9)
	assert.Equal(t, 20, pf.LoanTermYears)
	assert.InDelta(t, 5000, pf.TransactionCost, 0.001)
	assert.InDelta(t, 223462.5, pf.CashEquity, 0.001)
	assert.InDelta(t, 281537.5, pf.LoanAmount, 0.001)

	// NOI года 1 = 39870 - 750; cap rate и cash yield от него.
	assert.InDelta(t, 39120, pf.NOIByYear[0], 0.001)
	assert.InDelta(t, 34120, pf.UCFByYear[0], 0.001)
	assert.InDelta(t, 7.82, pf.CapRatePct, 0.001)
	assert.InDelta(t, 15.27, pf.CashYieldPct, 0.001)

	// Расширение ставки выхода: 0.01 - 0.00225 - 0.00425 = 0.0035.
	assert.InDelta(t, 8.17, pf.ExitCapRatePct, 0.001)
	assert.Greater(t, pf.ExitValue, 0.0)

	// LCF и связанные агрегаты сходятся между собой.
	accumulated := 0.0
	for year := 0; year < domain.HoldingYears; year++ {
		assert.InDelta(t, pf.UCFByYear[year]-pf.AnnualDebtService, pf.LCFByYear[year], 0.02, "year %d", year+1)
		accumulated += pf.LCFByYear[year]
	}
	assert.InDelta(t, accumulated, pf.AccumulatedCashFlow, 0.05)
	assert.InDelta(t, pf.ExitValue-pf.FinalLoanBalance+pf.AccumulatedCashFlow, pf.EquityAtExit, 0.05)

	// Остаток долга не растёт по годам.
	prev := pf.LoanAmount
	for year := 0; year < domain.HoldingYears; year++ {
		assert.LessOrEqual(t, pf.LoanBalanceByYear[year], prev)
		prev = pf.LoanBalanceByYear[year]
	}

	if pf.CashOnCash > 0 {
		assert.Greater(t, pf.IRRPct, 0.0)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	engine := NewEngine(regressionIndex(), engineAsOf)
	rec := regressionRecord()

	first := engine.Analyze(rec)
	second := engine.Analyze(rec)
	assert.Equal(t, first, second)
}

func TestAnalyzeMultiFamily(t *testing.T) {
	ix := rentindex.Build([]string{"2024-07"}, []rentindex.Row{
		{Zip: "99999", State: "XX", Values: map[string]float64{"2024-07": 2000}},
	})
	engine := NewEngine(ix, engineAsOf)

	pf := engine.Analyze(domain.PropertyRecord{
		PropertyID: "mf-1",
		ZipCode:    "99999",
		State:      "XX",
		Beds:       6,
		FullBaths:  2,
		Style:      domain.StyleMultiFamily,
		ListPrice:  900000,
	})

	require.True(t, pf.HasEstimate)
	// 3 юнита с мультиюнит-дисконтом, смесь факторов не применяется.
	assert.InDelta(t, 2000*3*0.85, pf.MonthlyRent, 0.001)
}

func TestAnalyzeZeroListPrice(t *testing.T) {
	engine := NewEngine(regressionIndex(), engineAsOf)

	rec := regressionRecord()
	rec.ListPrice = 0
	pf := engine.Analyze(rec)

	// Аренда оценивается, метрики доходности нулевые.
	require.True(t, pf.HasEstimate)
	assert.Greater(t, pf.MonthlyRent, 0.0)
	assert.Equal(t, 0.0, pf.CapRatePct)
	assert.Equal(t, 0.0, pf.CashYieldPct)
	assert.Equal(t, 0.0, pf.CashOnCash)
	assert.Equal(t, 0.0, pf.IRRPct)
	assert.Equal(t, 0.0, pf.LoanAmount)
	assert.Equal(t, 0.0, pf.CashEquity)
}

func TestAnalyzeUnresolvableLocation(t *testing.T) {
	engine := NewEngine(regressionIndex(), engineAsOf)

	pf := engine.Analyze(domain.PropertyRecord{
		PropertyID: "na-1",
		ZipCode:    "",
		State:      "ZZ",
		ListPrice:  500000,
	})

	assert.False(t, pf.HasEstimate)
	assert.Equal(t, "na-1", pf.PropertyID)
	assert.Equal(t, 0.0, pf.MonthlyRent)
	assert.Equal(t, 0.0, pf.CapRatePct)
	assert.Equal(t, 0.0, pf.LoanAmount)
}
