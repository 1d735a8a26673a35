package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"invest-project/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProFormaStorageAdapter реализует ProFormaStoragePort для PostgreSQL.
type PostgresProFormaStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresProFormaStorageAdapter создает новый экземпляр адаптера.
func NewPostgresProFormaStorageAdapter(pool *pgxpool.Pool) (*PostgresProFormaStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresProFormaStorageAdapter{
		pool: pool,
	}, nil
}

// Save сохраняет одну про-форму в базу данных.
// Используем ON CONFLICT DO UPDATE ("UPSERT") по property_id: каждый
// прогон пересчитывает объект целиком и перезаписывает прошлый результат.
func (a *PostgresProFormaStorageAdapter) Save(ctx context.Context, record domain.ProFormaRecord) error {
	// Погодовые массивы разворачиваются в именованные колонки
	// (noi_year1..noi_year5 и т.д.) — так по ним можно фильтровать
	// и сортировать обычным SQL.
	columns := []string{
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
		"updated_at",
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	values := []interface{}{
		record.PropertyID, record.Address, record.City, record.State, record.ZipCode,
		record.Beds, record.FullBaths, record.HalfBaths, record.Sqft, record.YearBuilt, record.Style, record.ListPrice,
		record.HasEstimate,
		nullable(record.MonthlyRent, record.HasEstimate), nullable(record.AnnualRent, record.HasEstimate),
		nullable(record.GrowthRatePct, record.HasEstimate), nullable(record.GrossRentMultiplier, record.HasEstimate),
		nullable(record.RentByYear[0], record.HasEstimate), nullable(record.RentByYear[1], record.HasEstimate),
		nullable(record.RentByYear[2], record.HasEstimate), nullable(record.RentByYear[3], record.HasEstimate),
		nullable(record.RentByYear[4], record.HasEstimate),
		record.TaxUsed, record.HOAFeeUsed,
		record.DownPaymentPct, record.InterestRatePct, record.LoanTermYears, record.TransactionCost,
		record.CashEquity, record.LoanAmount, record.MonthlyPayment, record.AnnualDebtService,
		record.NOIByYear[0], record.NOIByYear[1], record.NOIByYear[2], record.NOIByYear[3], record.NOIByYear[4],
		record.UCFByYear[0], record.UCFByYear[1], record.UCFByYear[2], record.UCFByYear[3], record.UCFByYear[4],
		record.LCFByYear[0], record.LCFByYear[1], record.LCFByYear[2], record.LCFByYear[3], record.LCFByYear[4],
		record.PrincipalPaidByYear[0], record.PrincipalPaidByYear[1], record.PrincipalPaidByYear[2], record.PrincipalPaidByYear[3], record.PrincipalPaidByYear[4],
		record.LoanBalanceByYear[0], record.LoanBalanceByYear[1], record.LoanBalanceByYear[2], record.LoanBalanceByYear[3], record.LoanBalanceByYear[4],
		record.TotalPrincipalPaid, record.FinalLoanBalance, record.AccumulatedCashFlow,
		record.CapRatePct, record.CashYieldPct, record.ExitCapRatePct, record.ExitValue, record.EquityAtExit, record.CashOnCash, record.IRRPct,
		time.Now(),
	}

	// Все колонки кроме ключа обновляются из EXCLUDED.
	updates := make([]string, 0, len(columns)-1)
	for _, col := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	sql := fmt.Sprintf(
		`INSERT INTO proformas (%s) VALUES (%s) ON CONFLICT (property_id) DO UPDATE SET %s`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := a.pool.Exec(ctx, sql, values...)
	if err != nil {
		return fmt.Errorf("failed to upsert pro forma into db (property_id: %s): %w", record.PropertyID, err)
	}

	return nil
}

// nullable возвращает NULL вместо значения, когда оценка аренды
// для объекта не состоялась.
func nullable(v float64, ok bool) interface{} {
	if !ok {
		return nil
	}
	return v
}
