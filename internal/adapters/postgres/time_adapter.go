package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLastRunRepository реализует LastRunRepositoryPort для PostgreSQL.
//
// Схема:
//
//	CREATE TABLE IF NOT EXISTS dataset_last_runs (
//	    dataset_name VARCHAR(255) PRIMARY KEY,
//	    last_run_timestamp TIMESTAMPTZ NOT NULL
//	);
type PostgresLastRunRepository struct {
	dbPool *pgxpool.Pool
}

// NewPostgresLastRunRepository создает новый экземпляр PostgresLastRunRepository.
func NewPostgresLastRunRepository(dbPool *pgxpool.Pool) (*PostgresLastRunRepository, error) {
	if dbPool == nil {
		return nil, fmt.Errorf("postgres last run repository: dbPool cannot be nil")
	}
	return &PostgresLastRunRepository{dbPool: dbPool}, nil
}

// GetLastRunTimestamp извлекает время последней загрузки указанного набора данных.
// Отсутствие записи не считается ошибкой: возвращается нулевое время.
func (r *PostgresLastRunRepository) GetLastRunTimestamp(ctx context.Context, datasetName string) (time.Time, error) {
	var lastRun time.Time
	query := `SELECT last_run_timestamp FROM dataset_last_runs WHERE dataset_name = $1`

	err := r.dbPool.QueryRow(ctx, query, datasetName).Scan(&lastRun)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("PostgresLastRunRepo: No last run timestamp found for dataset '%s'.", datasetName)
			return time.Time{}, nil
		}

		log.Printf("PostgresLastRunRepo: Error getting last run timestamp for dataset '%s': %v\n", datasetName, err)
		return time.Time{}, fmt.Errorf("error querying last run for dataset '%s': %w", datasetName, err)
	}

	log.Printf("PostgresLastRunRepo: Found last run timestamp for dataset '%s': %s\n", datasetName, lastRun.Format(time.RFC3339))
	return lastRun, nil
}

// SetLastRunTimestamp устанавливает или обновляет время последней загрузки набора данных.
func (r *PostgresLastRunRepository) SetLastRunTimestamp(ctx context.Context, datasetName string, t time.Time) error {
	// ON CONFLICT (UPSERT) — атомарная вставка-или-обновление.
	query := `
        INSERT INTO dataset_last_runs (dataset_name, last_run_timestamp)
        VALUES ($1, $2)
        ON CONFLICT (dataset_name) DO UPDATE SET last_run_timestamp = EXCLUDED.last_run_timestamp
    `

	_, err := r.dbPool.Exec(ctx, query, datasetName, t)
	if err != nil {
		log.Printf("PostgresLastRunRepo: Error setting last run timestamp for dataset '%s': %v\n", datasetName, err)
		return fmt.Errorf("error setting last run for dataset '%s': %w", datasetName, err)
	}

	log.Printf("PostgresLastRunRepo: Set last run timestamp for dataset '%s' to %s\n", datasetName, t.Format(time.RFC3339))
	return nil
}
