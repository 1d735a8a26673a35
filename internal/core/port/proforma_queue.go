package port

import (
	"context"
	"invest-project/internal/core/domain"
)

// ProFormaQueuePort определяет контракт для отправки готовых
// про-форм в очередь на сохранение.
type ProFormaQueuePort interface {
	Enqueue(ctx context.Context, record domain.ProFormaRecord) error
}
