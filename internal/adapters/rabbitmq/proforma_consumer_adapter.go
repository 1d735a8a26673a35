package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"invest-project/internal/core/domain"
	"invest-project/internal/core/usecase"
	"invest-project/pkg/rabbitmq/rabbitmq_consumer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ProFormaConsumerAdapter - это входящий адаптер, который слушает очередь
// рассчитанных про-форм и вызывает use case для их сохранения.
type ProFormaConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  *usecase.SaveProFormaUseCase
}

// NewProFormaConsumerAdapter создает новый адаптер.
func NewProFormaConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase *usecase.SaveProFormaUseCase,
) (*ProFormaConsumerAdapter, error) {
	if useCase == nil {
		return nil, fmt.Errorf("pro forma consumer adapter: use case cannot be nil")
	}

	adapter := &ProFormaConsumerAdapter{
		useCase: useCase,
	}

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.messageHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for pro formas: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *ProFormaConsumerAdapter) messageHandler(d amqp.Delivery) (ack bool, requeueOnError bool, err error) {
	var proForma domain.ProFormaRecord
	if err := json.Unmarshal(d.Body, &proForma); err != nil {
		log.Printf("ProFormaConsumerAdapter: Error unmarshalling: %v. NACK (no requeue).\n", err)
		return false, false, fmt.Errorf("unmarshal error: %w", err)
	}

	err = a.useCase.Execute(context.Background(), proForma)
	if err != nil {
		if d.Redelivered {
			log.Printf("ProFormaConsumerAdapter: Repeated save failure for property ID %s. Discarding message (Tag: %d).", proForma.PropertyID, d.DeliveryTag)
			return false, false, err
		}

		log.Printf("ProFormaConsumerAdapter: Use case failed for property ID %s: %v. Requeueing task.", proForma.PropertyID, err)
		return false, true, err
	}

	return true, false, nil
}

// Start реализует EventListenerPort
func (a *ProFormaConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort
func (a *ProFormaConsumerAdapter) Close() error {
	return a.consumer.Close()
}
