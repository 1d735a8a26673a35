package port

import (
	"context"
	"time"
)

// LastRunRepositoryPort определяет контракт для хранения и получения
// времени последней успешной загрузки набора данных.
type LastRunRepositoryPort interface {
	GetLastRunTimestamp(ctx context.Context, datasetName string) (time.Time, error)
	SetLastRunTimestamp(ctx context.Context, datasetName string, t time.Time) error
}
