package domain

// HoldingYears — фиксированный горизонт владения. Все погодовые
// массивы ниже содержат ровно столько элементов (годы 1-5,
// внутри индексируются 0-4).
const HoldingYears = 5

// ProFormaRecord — результат инвестиционного анализа одного объекта.
// Считается заново от начала до конца при каждом прогоне и никогда
// не обновляется по частям. Развёртывание погодовых массивов в
// именованные колонки (noi_year1..noi_year5 и т.д.) — забота
// адаптеров хранения, не ядра.
type ProFormaRecord struct {
	// Идентификация объекта: результат должен джойниться
	// обратно к листингу по property_id.
	PropertyID string  `json:"property_id"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	ZipCode    string  `json:"zip_code"`
	Beds       float64 `json:"beds"`
	FullBaths  float64 `json:"full_baths"`
	HalfBaths  float64 `json:"half_baths"`
	Sqft       float64 `json:"sqft"`
	YearBuilt  float64 `json:"year_built"`
	Style      string  `json:"style"`
	ListPrice  float64 `json:"list_price"`

	// HasEstimate == false означает, что локацию объекта не удалось
	// разрешить ни напрямую, ни через ближайший индекс, ни через
	// средние по штату. Арендные поля тогда сериализуются как NULL.
	HasEstimate bool `json:"has_estimate"`

	// Аренда
	MonthlyRent         float64                `json:"monthly_rent"`
	AnnualRent          float64                `json:"annual_rent"`
	GrowthRatePct       float64                `json:"growth_rate"`
	GrossRentMultiplier float64                `json:"gross_rent_multiplier"`
	RentByYear          [HoldingYears]float64  `json:"rent_by_year"`

	// Фактически использованные операционные расходы: если входной
	// налог или HOA отсутствовали, сюда попадает подставленная оценка.
	TaxUsed    float64 `json:"tax_used"`
	HOAFeeUsed float64 `json:"hoa_fee_used"`

	// Финансирование
	DownPaymentPct    float64 `json:"down_payment_pct"`
	InterestRatePct   float64 `json:"interest_rate"`
	LoanTermYears     int     `json:"loan_term"`
	TransactionCost   float64 `json:"transaction_cost"`
	CashEquity        float64 `json:"cash_equity"`
	LoanAmount        float64 `json:"loan_amount"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	AnnualDebtService float64 `json:"annual_debt_service"`

	// Денежные потоки по годам
	NOIByYear           [HoldingYears]float64 `json:"noi_by_year"`
	UCFByYear           [HoldingYears]float64 `json:"ucf_by_year"`
	LCFByYear           [HoldingYears]float64 `json:"lcf_by_year"`
	PrincipalPaidByYear [HoldingYears]float64 `json:"principal_paid_by_year"`
	LoanBalanceByYear   [HoldingYears]float64 `json:"loan_balance_by_year"`
	TotalPrincipalPaid  float64               `json:"total_principal_paid"`
	FinalLoanBalance    float64               `json:"final_loan_balance"`
	AccumulatedCashFlow float64               `json:"accumulated_cash_flow"`

	// Итоговые метрики доходности
	CapRatePct     float64 `json:"cap_rate"`
	CashYieldPct   float64 `json:"cash_yield"`
	ExitCapRatePct float64 `json:"exit_cap_rate"`
	ExitValue      float64 `json:"exit_value"`
	EquityAtExit   float64 `json:"equity_at_exit"`
	CashOnCash     float64 `json:"cash_on_cash"`
	IRRPct         float64 `json:"irr"`
}

// QueryFilter задаёт параметры выборки готовых результатов из хранилища.
type QueryFilter struct {
	State      string
	MinCapRate float64
	MaxPrice   float64
	SortBy     string // один из: cap_rate, cash_yield, irr, list_price
	Limit      int
}

// ProFormaSummary — проекция полей, которые отдают читающие
// эндпоинты (поиск по городу/индексу).
type ProFormaSummary struct {
	PropertyID  string  `json:"property_id"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zip_code"`
	Beds        float64 `json:"beds"`
	FullBaths   float64 `json:"full_baths"`
	Sqft        float64 `json:"sqft"`
	ListPrice   float64 `json:"list_price"`
	MonthlyRent float64 `json:"monthly_rent"`
	CapRate     float64 `json:"cap_rate"`
	CashYield   float64 `json:"cash_yield"`
	IRR         float64 `json:"irr"`
	CashOnCash  float64 `json:"cash_on_cash"`
}
