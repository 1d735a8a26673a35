package filestorage

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"invest-project/internal/core/domain"
)

// ProFormaFileStorageAdapter реализует ProFormaStoragePort для сохранения
// в CSV-файл. Дублирует колоночную раскладку таблицы proformas, так что
// файл можно загрузить в базу как есть.
type ProFormaFileStorageAdapter struct {
	filename string
	mu       sync.Mutex // для безопасной записи в файл из нескольких горутин
}

var csvHeader = []string{
	"property_id", "address", "city", "state", "zip_code",
	"beds", "full_baths", "half_baths", "sqft", "year_built", "style", "list_price",
	"has_estimate",
	"monthly_rent", "annual_rent", "growth_rate", "gross_rent_multiplier",
	"rent_year1", "rent_year2", "rent_year3", "rent_year4", "rent_year5",
	"tax_used", "hoa_fee_used",
	"down_payment_pct", "interest_rate", "loan_term", "transaction_cost",
	"cash_equity", "loan_amount", "monthly_payment", "annual_debt_service",
	"noi_year1", "noi_year2", "noi_year3", "noi_year4", "noi_year5",
	"ucf_year1", "ucf_year2", "ucf_year3", "ucf_year4", "ucf_year5",
	"lcf_year1", "lcf_year2", "lcf_year3", "lcf_year4", "lcf_year5",
	"principal_paid_year1", "principal_paid_year2", "principal_paid_year3", "principal_paid_year4", "principal_paid_year5",
	"loan_balance_year1", "loan_balance_year2", "loan_balance_year3", "loan_balance_year4", "loan_balance_year5",
	"total_principal_paid", "final_loan_balance", "accumulated_cash_flow",
	"cap_rate", "cash_yield", "exit_cap_rate", "exit_value", "equity_at_exit", "cash_on_cash", "irr",
}

// NewProFormaFileStorageAdapter создает новый адаптер
func NewProFormaFileStorageAdapter(filename string) (*ProFormaFileStorageAdapter, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}
	return &ProFormaFileStorageAdapter{
		filename: filename,
	}, nil
}

// Save дописывает одну про-форму в CSV-файл. Заголовок пишется один
// раз при создании файла.
func (a *ProFormaFileStorageAdapter) Save(_ context.Context, record domain.ProFormaRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	info, statErr := os.Stat(a.filename)
	writeHeader := statErr != nil || info.Size() == 0

	file, err := os.OpenFile(a.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file '%s': %w", a.filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if writeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header to '%s': %w", a.filename, err)
		}
	}

	if err := writer.Write(a.recordToRow(record)); err != nil {
		return fmt.Errorf("failed to write record for property ID %s to '%s': %w", record.PropertyID, a.filename, err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file '%s': %w", a.filename, err)
	}

	log.Printf("FileStorageAdapter: Saved pro forma for property ID %s to %s\n", record.PropertyID, a.filename)
	return nil
}

func (a *ProFormaFileStorageAdapter) recordToRow(r domain.ProFormaRecord) []string {
	// Арендные поля без оценки остаются пустыми ячейками.
	rentCell := func(v float64) string {
		if !r.HasEstimate {
			return ""
		}
		return num(v)
	}

	row := []string{
		r.PropertyID, r.Address, r.City, r.State, r.ZipCode,
		num(r.Beds), num(r.FullBaths), num(r.HalfBaths), num(r.Sqft), num(r.YearBuilt), r.Style, num(r.ListPrice),
		strconv.FormatBool(r.HasEstimate),
		rentCell(r.MonthlyRent), rentCell(r.AnnualRent), rentCell(r.GrowthRatePct), rentCell(r.GrossRentMultiplier),
		rentCell(r.RentByYear[0]), rentCell(r.RentByYear[1]), rentCell(r.RentByYear[2]), rentCell(r.RentByYear[3]), rentCell(r.RentByYear[4]),
		num(r.TaxUsed), num(r.HOAFeeUsed),
		num(r.DownPaymentPct), num(r.InterestRatePct), strconv.Itoa(r.LoanTermYears), num(r.TransactionCost),
		num(r.CashEquity), num(r.LoanAmount), num(r.MonthlyPayment), num(r.AnnualDebtService),
	}
	for _, arr := range [][domain.HoldingYears]float64{r.NOIByYear, r.UCFByYear, r.LCFByYear, r.PrincipalPaidByYear, r.LoanBalanceByYear} {
		for _, v := range arr {
			row = append(row, num(v))
		}
	}
	row = append(row,
		num(r.TotalPrincipalPaid), num(r.FinalLoanBalance), num(r.AccumulatedCashFlow),
		num(r.CapRatePct), num(r.CashYieldPct), num(r.ExitCapRatePct), num(r.ExitValue), num(r.EquityAtExit), num(r.CashOnCash), num(r.IRRPct),
	)
	return row
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
