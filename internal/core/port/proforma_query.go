package port

import (
	"context"
	"invest-project/internal/core/domain"
)

// ProFormaQueryPort — читающая сторона хранилища: выборки для
// внешних эндпоинтов поиска по городу и почтовому индексу.
type ProFormaQueryPort interface {
	ListByCity(ctx context.Context, city string, filter domain.QueryFilter) ([]domain.ProFormaSummary, error)
	ListByZip(ctx context.Context, zipCode string, filter domain.QueryFilter) ([]domain.ProFormaSummary, error)
}
