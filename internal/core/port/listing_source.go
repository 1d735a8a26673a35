package port

import (
	"context"
	"invest-project/internal/core/domain"
)

// ListingSourcePort определяет контракт для получения таблицы
// листингов. Источник пропускает непригодные строки сам и никогда
// не прерывает выдачу из-за одной плохой записи.
type ListingSourcePort interface {
	FetchProperties(ctx context.Context) ([]domain.PropertyRecord, error)
}
