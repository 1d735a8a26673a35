package port

import "context"

// EventListenerPort — входящий адаптер, слушающий внешний источник
// событий (очередь) и вызывающий ядро. Start блокируется до отмены
// контекста или фатальной ошибки слушателя.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
