package domain

// Style определяет тип недвижимости в листинге
const (
	StyleCondo        = "Condo"
	StyleCoop         = "Co-op"
	StyleSingleFamily = "Single Family"
	StyleMultiFamily  = "Multi Family"
	StyleTownhouse    = "Townhouse"
	StyleLuxury       = "Luxury"
)

// PropertyRecord представляет одно объявление о продаже.
// Запись неизменяема: этапы конвейера только читают её и
// порождают собственные структуры результата.
type PropertyRecord struct {
	PropertyID string `json:"property_id"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`

	Beds      float64 `json:"beds"`
	FullBaths float64 `json:"full_baths"`
	HalfBaths float64 `json:"half_baths"`
	Sqft      float64 `json:"sqft"`
	LotSqft   float64 `json:"lot_sqft"`
	YearBuilt float64 `json:"year_built"`
	Style     string  `json:"style"`

	ListPrice     float64 `json:"list_price"`
	PricePerSqft  float64 `json:"price_per_sqft"`
	Tax           float64 `json:"tax"`
	HOAFee        float64 `json:"hoa_fee"`
	ParkingGarage float64 `json:"parking_garage"`

	Description string `json:"description,omitempty"`
}

// Baths возвращает общее число санузлов (половинные считаются за 0.5).
func (r PropertyRecord) Baths() float64 {
	return r.FullBaths + 0.5*r.HalfBaths
}
