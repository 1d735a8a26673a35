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

// AnalysisConsumerAdapter - это входящий адаптер, который слушает очередь
// задач на анализ и вызывает use case для расчета про-формы.
type AnalysisConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  *usecase.AnalyzePropertyUseCase
}

// NewAnalysisConsumerAdapter создает новый адаптер.
func NewAnalysisConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase *usecase.AnalyzePropertyUseCase,
) (*AnalysisConsumerAdapter, error) {
	if useCase == nil {
		return nil, fmt.Errorf("analysis consumer adapter: use case cannot be nil")
	}

	adapter := &AnalysisConsumerAdapter{
		useCase: useCase,
	}

	// Consumer получает метод этого адаптера как обработчик.
	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.messageHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for analysis tasks: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *AnalysisConsumerAdapter) messageHandler(d amqp.Delivery) (ack bool, requeueOnError bool, err error) {
	var record domain.PropertyRecord
	if err := json.Unmarshal(d.Body, &record); err != nil {
		log.Printf("AnalysisConsumerAdapter: Error unmarshalling: %v. NACK (no requeue).\n", err)
		return false, false, fmt.Errorf("unmarshal error: %w", err)
	}

	err = a.useCase.Execute(context.Background(), record)
	if err != nil {
		if d.Redelivered {
			// Повторная ошибка на том же сообщении — дальше не гоняем.
			log.Printf("AnalysisConsumerAdapter: Repeated failure for property ID %s. Discarding message (Tag: %d).", record.PropertyID, d.DeliveryTag)
			return false, false, err
		}

		log.Printf("AnalysisConsumerAdapter: Use case failed for property ID %s: %v. Requeueing task.", record.PropertyID, err)
		return false, true, err
	}

	return true, false, nil
}

// Start реализует EventListenerPort
func (a *AnalysisConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort
func (a *AnalysisConsumerAdapter) Close() error {
	return a.consumer.Close()
}
