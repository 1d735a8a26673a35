package proforma

import (
	"math"
	"time"

	"invest-project/internal/constants"
	"invest-project/internal/core/domain"
	"invest-project/internal/core/rentindex"
)

// Веса факторов в итоговой корректировке базовой аренды.
const (
	weightBedBath   = 0.35
	weightSize      = 0.25
	weightCondition = 0.15
	weightAmenity   = 0.15
	weightType      = 0.10
)

// CAGR по умолчанию, когда аренда взята из средней по штату и
// истории конкретного индекса нет.
const defaultMarketCAGR = 3.0

// RentEstimate — оценка аренды одного объекта с пятилетней проекцией.
type RentEstimate struct {
	MonthlyRent         float64
	AnnualRent          float64
	GrowthRatePct       float64
	GrossRentMultiplier float64
	// Год 1 равен базовой аренде, годы 2-5 накручены темпом роста.
	RentByYear [domain.HoldingYears]float64
}

// EstimateRent оценивает месячную аренду объекта по рыночному
// индексу и характеристикам. ok == false означает, что локацию не
// удалось разрешить и оценки для объекта нет.
func EstimateRent(rec domain.PropertyRecord, ix *rentindex.Index, asOf time.Time) (RentEstimate, bool) {
	baseRent, entry, ok := ix.Resolve(rec.ZipCode, rec.State)
	if !ok || baseRent <= 0 {
		return RentEstimate{}, false
	}

	var monthlyRent float64
	if rec.Style == domain.StyleMultiFamily && rec.Beds >= 4 {
		// Многоквартирный дом: считаем его набором отдельных юнитов,
		// а не одним большим жильём. Взвешенная смесь факторов здесь
		// не применяется.
		units := math.Floor(rec.Beds / 2)
		if units < 2 {
			units = 2
		}
		monthlyRent = baseRent * units * 0.85 // дисконт за мультиюнит
	} else {
		adjustment := BedBathFactor(rec.Beds, rec.Baths())*weightBedBath +
			SizeFactor(rec.Sqft)*weightSize +
			ConditionFactor(rec.YearBuilt, asOf)*weightCondition +
			AmenityScore(rec)*weightAmenity +
			constants.RentTypeModifier(rec.Style)*weightType

		adjustment *= 1 + ix.Seasonality(int(asOf.Month()))/100
		monthlyRent = baseRent * adjustment
	}

	// Рост считаем от разрешённой локации: если сработал фолбэк по
	// штату, у объекта нет записи индекса и берутся значения по
	// умолчанию.
	marketCAGR := defaultMarketCAGR
	neighborhood := constants.DefaultNeighborhoodQuality
	if entry != nil {
		marketCAGR = entry.FiveYearCAGRPct
		neighborhood = constants.NeighborhoodFactor(entry.Zip)
	}
	growthPct := growthRatePct(marketCAGR, neighborhood, rec.Style)

	est := RentEstimate{
		MonthlyRent:   monthlyRent,
		AnnualRent:    monthlyRent * 12,
		GrowthRatePct: growthPct,
	}

	est.RentByYear[0] = monthlyRent
	for year := 1; year < domain.HoldingYears; year++ {
		est.RentByYear[year] = est.RentByYear[year-1] * (1 + growthPct/100)
	}

	if est.AnnualRent > 0 {
		est.GrossRentMultiplier = rec.ListPrice / est.AnnualRent
	}

	return est, true
}

// growthRatePct — годовой темп роста аренды в процентах: рыночный
// CAGR, зажатый в [2,6], плюс небольшие надбавки за район и тип
// недвижимости, итог всегда в [2,10].
func growthRatePct(marketCAGRPct, neighborhoodFactor float64, style string) float64 {
	base := clamp(marketCAGRPct, 2.0, 6.0)
	rate := base + neighborhoodFactor*2 + (constants.GrowthTypeModifier(style)-1.0)*1
	return clamp(rate, 2.0, 10.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
