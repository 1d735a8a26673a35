package proforma

import (
	"math"

	"invest-project/internal/core/domain"
)

// Транзакционные издержки покупки — 1% от цены листинга.
const transactionCostRate = 0.01

// Financing — условия кредита и график погашения на горизонте владения.
type Financing struct {
	DownPaymentPct    float64
	InterestRatePct   float64
	LoanTermYears     int
	TransactionCost   float64
	CashEquity        float64
	LoanAmount        float64
	MonthlyPayment    float64
	AnnualDebtService float64

	PrincipalPaidByYear [domain.HoldingYears]float64
	LoanBalanceByYear   [domain.HoldingYears]float64
	TotalPrincipalPaid  float64
	FinalLoanBalance    float64
}

// DownPaymentPct — доля первоначального взноса: базовая ставка по
// ценовому диапазону, скидка за качество района, итог в [30%, 60%].
func DownPaymentPct(listPrice, neighborhoodFactor float64) float64 {
	var pct float64
	switch {
	case listPrice < 200000:
		pct = 0.35
	case listPrice < 500000:
		pct = 0.40
	case listPrice < 750000:
		pct = 0.45
	case listPrice < 1000000:
		pct = 0.50
	default:
		pct = 0.55
	}

	// Лучшие районы получают более мягкое финансирование.
	pct -= (neighborhoodFactor - 0.75) * 0.05

	return clamp(pct, 0.30, 0.60)
}

// MortgageTerms — процентная ставка (годовых, в процентах) и срок
// кредита в годах по ценовому диапазону и качеству района.
func MortgageTerms(listPrice, neighborhoodFactor float64) (ratePct float64, termYears int) {
	switch {
	case listPrice < 250000:
		ratePct = 8.000
	case listPrice < 500000:
		ratePct = 7.750
	case listPrice < 750000:
		ratePct = 7.500
	case listPrice < 1000000:
		ratePct = 7.250
	default:
		ratePct = 7.000
	}

	// До 0.2 пункта скидки за лучший район.
	ratePct -= (neighborhoodFactor - 0.75) * 1.0
	ratePct = clamp(ratePct, 6.0, 9.0)

	switch {
	case listPrice < 500000:
		termYears = 15
	case listPrice < 750000:
		termYears = 20
	default:
		termYears = 25
	}
	return ratePct, termYears
}

// FinanceProperty собирает условия кредита и амортизирует его на
// горизонт владения. Сумма кредита берётся от полной стоимости
// покупки (цена плюс транзакционные издержки).
func FinanceProperty(listPrice, neighborhoodFactor float64) Financing {
	fin := Financing{
		DownPaymentPct:  DownPaymentPct(listPrice, neighborhoodFactor),
		TransactionCost: transactionCostRate * listPrice,
	}
	fin.InterestRatePct, fin.LoanTermYears = MortgageTerms(listPrice, neighborhoodFactor)

	totalCost := listPrice + fin.TransactionCost
	fin.CashEquity = fin.DownPaymentPct * totalCost
	fin.LoanAmount = totalCost * (1 - fin.DownPaymentPct)

	monthlyRate := fin.InterestRatePct / 100 / 12
	totalPeriods := fin.LoanTermYears * 12
	if monthlyRate > 0 && totalPeriods > 0 {
		fin.MonthlyPayment = annuityPayment(fin.LoanAmount, monthlyRate, totalPeriods)
		fin.AnnualDebtService = fin.MonthlyPayment * 12
	}

	// Стандартная помесячная амортизация: часть платежа сверх
	// процентов гасит тело кредита. Накапливаем по годам владения.
	balance := fin.LoanAmount
	for year := 0; year < domain.HoldingYears; year++ {
		principalPaid := 0.0
		for month := 0; month < 12; month++ {
			interest := balance * monthlyRate
			principal := fin.MonthlyPayment - interest
			principalPaid += principal
			balance -= principal
		}
		fin.PrincipalPaidByYear[year] = principalPaid
		fin.LoanBalanceByYear[year] = balance
		fin.TotalPrincipalPaid += principalPaid
	}
	fin.FinalLoanBalance = balance

	return fin
}

// annuityPayment — фиксированный месячный платёж по стандартной
// аннуитетной формуле.
func annuityPayment(loanAmount, monthlyRate float64, periods int) float64 {
	return loanAmount * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(periods)))
}
