package proforma

import (
	"math"
	"time"

	"invest-project/internal/constants"
	"invest-project/internal/core/domain"
	"invest-project/internal/core/rentindex"
)

// Engine считает полную инвестиционную про-форму объекта. Движок
// полностью детерминирован: "текущий" месяц сезонности и год для
// возраста здания берутся из asOf, а не из системных часов, поэтому
// повторный прогон по тем же данным даёт побитово тот же результат.
// Engine безопасен для параллельного использования: индекс после
// построения только читается.
type Engine struct {
	index *rentindex.Index
	asOf  time.Time
}

// NewEngine создаёт движок над построенным индексом аренды.
func NewEngine(index *rentindex.Index, asOf time.Time) *Engine {
	return &Engine{index: index, asOf: asOf}
}

// Analyze строит про-форму по одному листингу. Ошибок не возвращает:
// неразрешимая локация даёт запись без оценки, нулевая цена — запись
// с арендой, но нулевыми метриками доходности.
func (e *Engine) Analyze(rec domain.PropertyRecord) domain.ProFormaRecord {
	pf := domain.ProFormaRecord{
		PropertyID: rec.PropertyID,
		Address:    rec.Address,
		City:       rec.City,
		State:      rec.State,
		ZipCode:    rec.ZipCode,
		Beds:       rec.Beds,
		FullBaths:  rec.FullBaths,
		HalfBaths:  rec.HalfBaths,
		Sqft:       rec.Sqft,
		YearBuilt:  rec.YearBuilt,
		Style:      rec.Style,
		ListPrice:  rec.ListPrice,
	}

	est, ok := EstimateRent(rec, e.index, e.asOf)
	if !ok {
		return pf
	}

	pf.HasEstimate = true
	pf.MonthlyRent = round2(est.MonthlyRent)
	pf.AnnualRent = round2(est.AnnualRent)
	pf.GrowthRatePct = round2(est.GrowthRatePct)
	pf.GrossRentMultiplier = round2(est.GrossRentMultiplier)
	for i, rent := range est.RentByYear {
		pf.RentByYear[i] = round2(rent)
	}

	if rec.ListPrice <= 0 {
		// Без цены нет ни финансирования, ни метрик доходности.
		return pf
	}

	// Для финансирования и выхода фактор района берётся от индекса
	// самого объекта, не от разрешённой записи.
	neighborhood := constants.NeighborhoodFactor(rec.ZipCode)

	taxUsed, hoaUsed := ResolveOperatingExpenses(rec.ListPrice, rec.Tax, rec.HOAFee)
	cf := ProjectCashFlow(rec.ListPrice, est.AnnualRent, est.GrowthRatePct, taxUsed, hoaUsed)
	fin := FinanceProperty(rec.ListPrice, neighborhood)

	pf.TaxUsed = round2(cf.TaxUsed)
	pf.HOAFeeUsed = round2(cf.HOAFeeUsed)
	pf.CapRatePct = round2(cf.CapRatePct)

	pf.DownPaymentPct = fin.DownPaymentPct
	pf.InterestRatePct = fin.InterestRatePct
	pf.LoanTermYears = fin.LoanTermYears
	pf.TransactionCost = round2(fin.TransactionCost)
	pf.CashEquity = round2(fin.CashEquity)
	pf.LoanAmount = round2(fin.LoanAmount)
	pf.MonthlyPayment = round2(fin.MonthlyPayment)
	pf.AnnualDebtService = round2(fin.AnnualDebtService)
	pf.TotalPrincipalPaid = round2(fin.TotalPrincipalPaid)
	pf.FinalLoanBalance = round2(fin.FinalLoanBalance)

	accumulated := 0.0
	for year := 0; year < domain.HoldingYears; year++ {
		lcf := cf.UCFByYear[year] - fin.AnnualDebtService
		accumulated += lcf

		pf.NOIByYear[year] = round2(cf.NOIByYear[year])
		pf.UCFByYear[year] = round2(cf.UCFByYear[year])
		pf.LCFByYear[year] = round2(lcf)
		pf.PrincipalPaidByYear[year] = round2(fin.PrincipalPaidByYear[year])
		pf.LoanBalanceByYear[year] = round2(fin.LoanBalanceByYear[year])
	}
	pf.AccumulatedCashFlow = round2(accumulated)

	if fin.CashEquity > 0 {
		pf.CashYieldPct = round2(cf.UCFByYear[0] / fin.CashEquity * 100)
	}

	exitCap := ExitCapRate(cf.CapRatePct/100, est.GrowthRatePct/100, neighborhood)
	pf.ExitCapRatePct = round2(exitCap * 100)

	exitValue := 0.0
	if exitCap > 0 {
		exitValue = cf.NOIByYear[domain.HoldingYears-1] / exitCap
	}
	pf.ExitValue = round2(exitValue)

	equityAtExit := exitValue - fin.FinalLoanBalance + accumulated
	pf.EquityAtExit = round2(equityAtExit)

	if fin.CashEquity > 0 {
		coc := equityAtExit / fin.CashEquity
		pf.CashOnCash = round2(coc)
		if coc > 0 {
			// Упрощённый IRR: годовая ставка из пятилетнего
			// мультипликатора, без учёта сроков промежуточных
			// потоков.
			pf.IRRPct = round2((math.Pow(coc, 1.0/float64(domain.HoldingYears)) - 1) * 100)
		}
	}

	return pf
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
