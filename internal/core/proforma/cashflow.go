package proforma

import "invest-project/internal/core/domain"

// Оценки операционных расходов при отсутствии данных в листинге:
// налог — 1% от цены в год, HOA — 0.15% от цены в год.
const (
	estimatedTaxRate = 0.01
	estimatedHOARate = 0.0015
)

// CashFlow — операционные расходы и погодовые потоки до обслуживания долга.
type CashFlow struct {
	// Фактически применённые расходы; при нулевом входе сюда
	// попадает подставленная оценка, и это видно в результате.
	TaxUsed    float64 // годовой налог
	HOAFeeUsed float64 // месячный взнос HOA

	NOIByYear  [domain.HoldingYears]float64
	UCFByYear  [domain.HoldingYears]float64
	CapRatePct float64
}

// ResolveOperatingExpenses — детерминированная цепочка фолбэков:
// берём значение листинга, при нуле подставляем оценку от цены.
func ResolveOperatingExpenses(listPrice, tax, hoaMonthly float64) (taxUsed, hoaUsed float64) {
	taxUsed = tax
	if taxUsed == 0 {
		taxUsed = estimatedTaxRate * listPrice
	}
	hoaUsed = hoaMonthly
	if hoaUsed == 0 {
		hoaUsed = estimatedHOARate * listPrice / 12
	}
	return taxUsed, hoaUsed
}

// ProjectCashFlow строит NOI и нелевереджированный поток по годам.
// Аренда накручивается темпом роста, год 1 — базовая годовая аренда.
func ProjectCashFlow(listPrice, annualRent, growthRatePct, taxUsed, hoaUsedMonthly float64) CashFlow {
	cf := CashFlow{
		TaxUsed:    taxUsed,
		HOAFeeUsed: hoaUsedMonthly,
	}

	rent := annualRent
	for year := 0; year < domain.HoldingYears; year++ {
		cf.NOIByYear[year] = rent - hoaUsedMonthly*12
		cf.UCFByYear[year] = cf.NOIByYear[year] - taxUsed
		rent *= 1 + growthRatePct/100
	}

	if listPrice > 0 {
		cf.CapRatePct = cf.NOIByYear[0] / listPrice * 100
	}
	return cf
}

// ExitCapRate — ставка капитализации на выходе в долях. Базовое
// расширение в 1 пункт сокращается для лучших районов и объектов с
// высоким ростом, но не опускается ниже входной ставки; итог всегда
// в [4%, 10%]. Ставка и результат — десятичные, процентная
// конвенция вариантов исходных расчётов здесь не используется.
func ExitCapRate(entryCapRate, growthRate, neighborhoodFactor float64) float64 {
	const baseExpansion = 0.01

	expansion := baseExpansion -
		(neighborhoodFactor-0.75)*0.015 -
		(growthRate-0.03)*0.5
	if expansion < 0 {
		expansion = 0
	}
	return clamp(entryCapRate+expansion, 0.04, 0.10)
}
