package port

import (
	"context"
	"invest-project/internal/core/rentindex"
)

// RentIndexSourcePort определяет контракт для загрузки рыночного
// индекса аренды. Индекс строится один раз на запуск.
type RentIndexSourcePort interface {
	LoadRentIndex(ctx context.Context) (*rentindex.Index, error)
}
