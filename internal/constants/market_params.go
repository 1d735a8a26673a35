package constants

import "invest-project/internal/core/domain"

// Факторы качества района по почтовым индексам.
// Выше значение — лучше район: выше потенциал роста, ниже риск.
// Диапазон [0.75, 0.95]; индексы вне таблицы получают значение по умолчанию.
const DefaultNeighborhoodQuality = 0.75

var NeighborhoodQuality = map[string]float64{
	// Премиальные районы Манхэттена
	"10001": 0.9, "10011": 0.95, "10014": 0.95, "10016": 0.9, "10017": 0.9,
	"10018": 0.9, "10019": 0.92, "10021": 0.95, "10022": 0.95, "10023": 0.95,
	"10024": 0.95, "10025": 0.9, "10028": 0.95, "10075": 0.95,
	// Премиальные районы Бруклина
	"11201": 0.9, "11215": 0.88, "11217": 0.88, "11231": 0.85, "11238": 0.85,
}

// NeighborhoodFactor возвращает фактор качества района для индекса.
// Каждый индекс всегда разрешается ровно в один фактор.
func NeighborhoodFactor(zipCode string) float64 {
	if f, ok := NeighborhoodQuality[zipCode]; ok {
		return f
	}
	return DefaultNeighborhoodQuality
}

// Модификаторы аренды по типу недвижимости.
var RentTypeModifiers = map[string]float64{
	domain.StyleCondo:        1.15, // премия за удобства и состояние
	domain.StyleCoop:         0.95, // дисконт за ограничения кооперативов
	domain.StyleSingleFamily: 1.05,
	domain.StyleMultiFamily:  0.90, // дисконт за юнит в многоквартирном
	domain.StyleTownhouse:    1.10,
	domain.StyleLuxury:       1.25,
}

// Модификаторы темпа роста по типу недвижимости.
var GrowthTypeModifiers = map[string]float64{
	domain.StyleCondo:        1.05,
	domain.StyleCoop:         0.95,
	domain.StyleSingleFamily: 1.02,
	domain.StyleMultiFamily:  1.08,
	domain.StyleTownhouse:    1.04,
}

// RentTypeModifier возвращает арендный модификатор типа;
// неизвестный тип нейтрален.
func RentTypeModifier(style string) float64 {
	if m, ok := RentTypeModifiers[style]; ok {
		return m
	}
	return 1.0
}

// GrowthTypeModifier возвращает модификатор роста типа;
// неизвестный тип нейтрален.
func GrowthTypeModifier(style string) float64 {
	if m, ok := GrowthTypeModifiers[style]; ok {
		return m
	}
	return 1.0
}

// Ключевые слова премиального сегмента для оценки удобств
// по текстовому описанию объявления (поиск подстроки без
// учёта регистра).
var LuxuryKeywords = []string{
	"doorman", "concierge", "luxury", "high-end", "renovated",
	"marble", "stainless", "premium", "upscale", "views", "pool",
	"gym", "fitness", "modern", "updated", "granite", "new appliances",
}
