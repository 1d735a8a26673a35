package port

import (
	"context"
	"invest-project/internal/core/domain"
)

// AnalysisQueuePort определяет контракт для отправки листингов
// в очередь задач анализа.
type AnalysisQueuePort interface {
	Enqueue(ctx context.Context, record domain.PropertyRecord) error
}
