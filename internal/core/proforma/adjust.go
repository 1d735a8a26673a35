// Package proforma реализует движок инвестиционного анализа:
// оценку аренды по рыночному индексу и характеристикам объекта,
// модель финансирования и расчёт денежных потоков с метриками
// доходности за пятилетний горизонт владения.
package proforma

import (
	"strings"
	"time"

	"invest-project/internal/constants"
	"invest-project/internal/core/domain"
)

// Все функции-факторы чистые и переносят отсутствующие или нулевые
// входы, возвращая нейтральное значение вместо ошибки.

// BedBathFactor — множитель аренды за конфигурацию спален и санузлов.
func BedBathFactor(beds, baths float64) float64 {
	// Нелинейная ценность спален: студия дешевле базы,
	// после четырёх спален — затухающая отдача.
	bedValue := 1.0
	switch {
	case beds == 0:
		bedValue = 0.85
	case beds == 1:
		bedValue = 1.0
	case beds == 2:
		bedValue = 1.2
	case beds == 3:
		bedValue = 1.35
	case beds >= 4:
		bedValue = 1.45
	}

	bathValue := 1.0
	switch {
	case baths < 1:
		bathValue = 0.9
	case baths == 1:
		bathValue = 1.0
	case baths == 1.5:
		bathValue = 1.05
	case baths == 2:
		bathValue = 1.1
	case baths <= 3:
		bathValue = 1.2
	default:
		bathValue = 1.25
	}

	factor := (bedValue + bathValue) / 2

	// Премия за высокое отношение санузлов к спальням.
	if beds > 0 && baths/beds >= 1.5 {
		factor *= 1.05
	}
	return factor
}

// SizeFactor — множитель аренды за площадь, с затухающей отдачей
// для больших объектов. Неизвестная площадь нейтральна.
func SizeFactor(sqft float64) float64 {
	if sqft <= 0 {
		return 1.0
	}
	switch {
	case sqft < 500:
		return 0.85
	case sqft < 750:
		return 0.95
	case sqft < 1000:
		return 1.0
	case sqft < 1500:
		return 1.1
	case sqft < 2000:
		return 1.2
	case sqft < 3000:
		return 1.3
	default:
		return 1.4
	}
}

// ConditionFactor — множитель за возраст здания на момент asOf.
// Неизвестный год постройки нейтрален.
func ConditionFactor(yearBuilt float64, asOf time.Time) float64 {
	if yearBuilt <= 0 {
		return 1.0
	}
	age := float64(asOf.Year()) - yearBuilt
	switch {
	case age < 3:
		return 1.15 // премия за новостройку
	case age < 10:
		return 1.1
	case age < 20:
		return 1.05
	case age < 40:
		return 1.0
	case age < 75:
		return 0.95
	default:
		return 0.9
	}
}

// AmenityScore — множитель за удобства: ключевые слова премиального
// сегмента в описании (до +20%), гараж и размер HOA-взноса как
// прокси инфраструктуры дома.
func AmenityScore(rec domain.PropertyRecord) float64 {
	score := 1.0

	description := strings.ToLower(rec.Description)
	keywordCount := 0
	for _, keyword := range constants.LuxuryKeywords {
		if strings.Contains(description, keyword) {
			keywordCount++
		}
	}
	boost := 0.01 * float64(keywordCount)
	if boost > 0.2 {
		boost = 0.2
	}
	score += boost

	if rec.ParkingGarage > 0 {
		score += 0.05
	}

	switch {
	case rec.HOAFee > 1000:
		score += 0.10
	case rec.HOAFee > 500:
		score += 0.05
	}

	return score
}
