package postgres

import (
	"context"
	"fmt"
	"log"
	"strings"

	"invest-project/internal/core/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryLimit = 50

// Разрешённые ключи сортировки. Всё остальное молча заменяется на
// cap_rate — ключ приходит из внешнего запроса и в SQL напрямую
// попадать не должен.
var allowedSortColumns = map[string]bool{
	"cap_rate":   true,
	"cash_yield": true,
	"irr":        true,
	"list_price": true,
}

// PostgresProFormaQueryAdapter реализует ProFormaQueryPort для PostgreSQL.
type PostgresProFormaQueryAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresProFormaQueryAdapter создает новый экземпляр адаптера.
func NewPostgresProFormaQueryAdapter(pool *pgxpool.Pool) (*PostgresProFormaQueryAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresProFormaQueryAdapter{
		pool: pool,
	}, nil
}

// ListByCity возвращает результаты анализа по городу (без учета регистра),
// отфильтрованные и отсортированные согласно filter.
func (a *PostgresProFormaQueryAdapter) ListByCity(ctx context.Context, city string, filter domain.QueryFilter) ([]domain.ProFormaSummary, error) {
	conditions := []string{"LOWER(city) = LOWER($1)"}
	args := []interface{}{city}

	if filter.State != "" {
		args = append(args, filter.State)
		conditions = append(conditions, fmt.Sprintf("UPPER(state) = UPPER($%d)", len(args)))
	}

	return a.list(ctx, conditions, args, filter)
}

// ListByZip возвращает результаты анализа по почтовому индексу.
func (a *PostgresProFormaQueryAdapter) ListByZip(ctx context.Context, zipCode string, filter domain.QueryFilter) ([]domain.ProFormaSummary, error) {
	conditions := []string{"zip_code = $1"}
	args := []interface{}{zipCode}

	return a.list(ctx, conditions, args, filter)
}

func (a *PostgresProFormaQueryAdapter) list(ctx context.Context, conditions []string, args []interface{}, filter domain.QueryFilter) ([]domain.ProFormaSummary, error) {
	// Записи без оценки аренды в выборки не попадают: их метрики NULL.
	conditions = append(conditions, "has_estimate = TRUE")

	if filter.MinCapRate > 0 {
		args = append(args, filter.MinCapRate)
		conditions = append(conditions, fmt.Sprintf("cap_rate >= $%d", len(args)))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("list_price <= $%d", len(args)))
	}

	sortBy := filter.SortBy
	if !allowedSortColumns[sortBy] {
		sortBy = "cap_rate"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)

	sql := fmt.Sprintf(
		`SELECT property_id, address, city, state, zip_code,
		        beds, full_baths, sqft, list_price,
		        monthly_rent, cap_rate, cash_yield, irr, cash_on_cash
		 FROM proformas
		 WHERE %s
		 ORDER BY %s DESC
		 LIMIT $%d`,
		strings.Join(conditions, " AND "),
		sortBy,
		len(args),
	)

	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pro formas: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ProFormaSummary
	for rows.Next() {
		var s domain.ProFormaSummary
		err := rows.Scan(
			&s.PropertyID, &s.Address, &s.City, &s.State, &s.ZipCode,
			&s.Beds, &s.FullBaths, &s.Sqft, &s.ListPrice,
			&s.MonthlyRent, &s.CapRate, &s.CashYield, &s.IRR, &s.CashOnCash,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pro forma summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pro forma rows: %w", err)
	}

	log.Printf("PostgresProFormaQueryAdapter: Query returned %d results (sort: %s)\n", len(summaries), sortBy)
	return summaries, nil
}
