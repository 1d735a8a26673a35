package port

import (
	"context"
	"invest-project/internal/core/domain"
)

// ProFormaStoragePort определяет контракт для сохранения
// посчитанной про-формы в постоянное хранилище.
type ProFormaStoragePort interface {
	Save(ctx context.Context, record domain.ProFormaRecord) error
}
